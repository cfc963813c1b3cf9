package module

import (
	"time"

	"backoffice/internal/platform/config"
)

// Options holds configuration settings for the brands module
type Options struct {
	CacheTTL      time.Duration
	CacheCapacity int
	LoadingDelay  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("BRANDS_")
	return Options{
		CacheTTL:      bf.MayDuration("CACHE_TTL", 30*time.Second),
		CacheCapacity: bf.MayInt("CACHE_CAPACITY", 32),
		LoadingDelay:  bf.MayDuration("LOADING_DELAY", 300*time.Millisecond),
	}
}
