//go:build integration_pg

// Package pgtest starts a disposable Postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"spacebio/internal/platform/store"
	"spacebio/internal/platform/store/migrate"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the postgres image used by integration tests
const Image = "postgres:16-alpine"

// Start launches Postgres and returns its DSN
// the container is terminated on test cleanup
func Start(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "spacebio",
				"POSTGRES_PASSWORD": "spacebio",
				"POSTGRES_DB":       "spacebio",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://spacebio:spacebio@%s:%s/spacebio?sslmode=disable", host, port.Port())
}

// StartMigrated is Start with the embedded schema and seed applied
func StartMigrated(t *testing.T) string {
	t.Helper()
	dsn := Start(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := migrate.Up(ctx, dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dsn
}

// OpenStore returns a Store on a freshly migrated database, closed on cleanup
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := StartMigrated(t)
	st, err := store.Open(context.Background(), store.Config{
		AppName: "spacebio-it",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4, SlowQueryMs: 1000},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}
