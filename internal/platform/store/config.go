package store

import (
	"time"

	"spacebio/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// ConfigFrom reads postgres keys from pgc, usually config.New().Prefix("SERVICE_PGSQL_")
// DBURL is required unless ENABLED is false
func ConfigFrom(pgc config.Conf, appName string) Config {
	c := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pgc.MayBool("ENABLED", true),
			MaxConns:       int32(pgc.MayInt("MAX_CONNS", 10)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 250),
			ConnectRetries: pgc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
	if c.PG.Enabled {
		c.PG.URL = pgc.MustString("DBURL")
	}
	return c
}
