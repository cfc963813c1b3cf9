// Package service provides the users store implementation
package service

import (
	"time"

	"backoffice/internal/platform/track"
	"backoffice/internal/platform/validate"
	"backoffice/internal/services/users/domain"
	"backoffice/internal/storekit"
)

// Config for the users service
type Config struct {
	CacheTTL      time.Duration
	CacheCapacity int
	LoadingDelay  time.Duration
	OnLoading     func(bool)
}

// Service implements domain.StorePort on top of the generic store
type Service struct {
	*storekit.Store[domain.User]
}

// New constructs the users store around a required client binder.
// aborter is normally the REST client; notify may be nil
func New(client storekit.Client[domain.User], aborter track.Aborter, notify storekit.Notifier, cfg Config) *Service {
	st := storekit.New(storekit.Options[domain.User]{
		Name:          "users",
		Client:        client,
		Aborter:       aborter,
		Notify:        notify,
		Validate:      func(u domain.User) error { return validate.Struct(u) },
		MatchKeyword:  domain.MatchKeyword,
		MatchFilters:  domain.MatchFilters,
		CacheTTL:      cfg.CacheTTL,
		CacheCapacity: cfg.CacheCapacity,
		LoadingDelay:  cfg.LoadingDelay,
		OnLoading:     cfg.OnLoading,
	})
	return &Service{Store: st}
}
