package module

import (
	"time"

	"backoffice/internal/platform/config"
)

// Options holds configuration settings for the users module
type Options struct {
	CacheTTL      time.Duration
	CacheCapacity int
	LoadingDelay  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	uf := cfg.Prefix("USERS_")
	return Options{
		CacheTTL:      uf.MayDuration("CACHE_TTL", 30*time.Second),
		CacheCapacity: uf.MayInt("CACHE_CAPACITY", 32),
		LoadingDelay:  uf.MayDuration("LOADING_DELAY", 300*time.Millisecond),
	}
}
