// Package modkit provides module wiring and core deps.
// The module contract itself lives in the sibling module package so a
// service module can also export its own ports type without import knots
package modkit

import (
	"backoffice/internal/adapters/restapi"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	"backoffice/internal/storekit"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	REST   *restapi.Client
	Notify storekit.Notifier
}
