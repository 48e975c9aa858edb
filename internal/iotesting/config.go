// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/gnames/gntaxdump/internal/iodb"
	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/gnames/gntaxdump/pkg/db"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// Tests never run against the configured database.
	TestDatabaseName = "gntaxdump_test"
)

// Config returns a configuration suitable for integration tests.
// Database settings come from GNTAXDUMP_DATABASE_* environment variables
// or defaults. The database name is always TestDatabaseName.
func Config() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if v := os.Getenv("GNTAXDUMP_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("GNTAXDUMP_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("GNTAXDUMP_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("GNTAXDUMP_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// DatabaseConfig returns only the database part of Config.
func DatabaseConfig() *config.DatabaseConfig {
	return &Config().Database
}

// Connect returns a connected operator for integration tests. The test is
// skipped in short mode or when PostgreSQL is not reachable. The
// connection is closed on cleanup.
func Connect(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(context.Background(), DatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}
