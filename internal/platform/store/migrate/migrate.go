// Package migrate applies the embedded schema and seed migrations
package migrate

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"spacebio/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Status is the schema version after a run
type Status struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Up applies every pending migration against dbURL
// dbURL may use the postgres:// or postgresql:// scheme
func Up(ctx context.Context, dbURL string) (Status, error) {
	log := logger.Named("migrate")

	m, err := newMigrator(dbURL)
	if err != nil {
		return Status{}, err
	}
	defer func() {
		if serr, derr := m.Close(); serr != nil || derr != nil {
			log.Warn().AnErr("source", serr).AnErr("database", derr).Msg("migrator close")
		}
	}()

	stop := context.AfterFunc(ctx, func() { m.GracefulStop <- true })
	defer stop()

	st := Status{Changed: true}
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return st, fmt.Errorf("migrate up: %w", err)
		}
		st.Changed = false
	}

	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return st, fmt.Errorf("migrate version: %w", err)
	}
	st.Version, st.Dirty = v, dirty
	if dirty {
		log.Warn().Uint("version", v).Msg("schema is dirty")
	} else {
		log.Info().Uint("version", v).Bool("changed", st.Changed).Msg("schema up to date")
	}
	return st, nil
}

// Down rolls back every migration, used by tests to reset a database
func Down(dbURL string) error {
	m, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func newMigrator(dbURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, driverURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("open migrator: %w", err)
	}
	return m, nil
}

// driverURL rewrites a libpq style URL to the pgx5 scheme the driver registers
func driverURL(u string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(u, p) {
			return "pgx5://" + strings.TrimPrefix(u, p)
		}
	}
	return u
}
