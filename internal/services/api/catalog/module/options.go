package module

import (
	"time"

	"spacebio/internal/platform/config"
)

// Options controls catalog exposure and caching
type Options struct {
	Public           bool          // serve the catalog without a session
	StatsTTL         time.Duration // in process stats cache lifetime
	StatementTimeout time.Duration // per statement bound inside a search
}

// FromConfig reads CATALOG_PUBLIC, STATS_TTL and SEARCH_TIMEOUT
func FromConfig(cfg config.Conf) Options {
	return Options{
		Public:           cfg.MayBool("CATALOG_PUBLIC", false),
		StatsTTL:         cfg.MayDuration("STATS_TTL", 5*time.Minute),
		StatementTimeout: cfg.MayDuration("SEARCH_TIMEOUT", 5*time.Second),
	}
}
