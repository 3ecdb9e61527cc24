// Package modkit provides module wiring and core deps
package modkit

import (
	"spacebio/internal/modkit/repokit"
	"spacebio/internal/platform/config"
	"spacebio/internal/platform/logger"
	"spacebio/internal/platform/metrics"
	"spacebio/internal/platform/session"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	PG       repokit.TxRunner
	Sessions *session.Store
	// Metrics may be nil, every recorder on it is nil safe
	Metrics *metrics.Metrics
}
