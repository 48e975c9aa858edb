package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent.
type SchemaManager interface {
	// Create creates the database schema and its secondary indexes.
	// Existing tables are dropped first if drop is true.
	Create(ctx context.Context, drop bool) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error
}
