// Package service provides the brands store implementation
package service

import (
	"time"

	"backoffice/internal/platform/track"
	"backoffice/internal/platform/validate"
	"backoffice/internal/services/brands/domain"
	"backoffice/internal/storekit"
)

// Config for the brands service
type Config struct {
	CacheTTL      time.Duration
	CacheCapacity int
	LoadingDelay  time.Duration
	OnLoading     func(bool)
}

// Service implements domain.StorePort on top of the generic store
type Service struct {
	*storekit.Store[domain.Brand]
}

// New constructs the brands store around a required client binder.
// aborter is normally the REST client; notify may be nil
func New(client storekit.Client[domain.Brand], aborter track.Aborter, notify storekit.Notifier, cfg Config) *Service {
	st := storekit.New(storekit.Options[domain.Brand]{
		Name:          "brands",
		Client:        client,
		Aborter:       aborter,
		Notify:        notify,
		Validate:      func(b domain.Brand) error { return validate.Struct(b) },
		MatchKeyword:  domain.MatchKeyword,
		MatchFilters:  domain.MatchFilters,
		CacheTTL:      cfg.CacheTTL,
		CacheCapacity: cfg.CacheCapacity,
		LoadingDelay:  cfg.LoadingDelay,
		OnLoading:     cfg.OnLoading,
	})
	return &Service{Store: st}
}
