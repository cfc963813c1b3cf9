// Package module implements the users service module
package module

import (
	"backoffice/internal/modkit"
	"backoffice/internal/services/users/domain"
	"backoffice/internal/services/users/repo"
	"backoffice/internal/services/users/service"
)

// Ports exposed by the users module
type Ports struct {
	Store domain.StorePort
}

// Module implements the users service module
type Module struct {
	deps modkit.Deps
	svc  *service.Service
}

// New constructs a new users module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewREST(deps.REST)
	svc := service.New(binder, deps.REST, deps.Notify, service.Config{
		CacheTTL:      opts.CacheTTL,
		CacheCapacity: opts.CacheCapacity,
		LoadingDelay:  opts.LoadingDelay,
	})

	return &Module{deps: deps, svc: svc}
}

// Name satisfies module.Module
func (m *Module) Name() string { return "users" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return Ports{Store: m.svc} }

// Close satisfies module.Module
func (m *Module) Close() { m.svc.Close() }
