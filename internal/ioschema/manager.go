// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gntaxdump/pkg/db"
	"github.com/gnames/gntaxdump/pkg/lifecycle"
	"github.com/gnames/gntaxdump/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema using GORM AutoMigrate, sets "C"
// collation on name columns, creates secondary indexes and records the
// schema version. If drop is true, all existing tables are removed first.
func (m *manager) Create(ctx context.Context, drop bool) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	if drop {
		slog.Info("Dropping existing tables")
		if err := m.operator.DropAllTables(ctx); err != nil {
			return err
		}
	}

	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.setCollation(ctx); err != nil {
		return err
	}

	if err := m.createIndexes(ctx); err != nil {
		return err
	}

	return m.saveVersion(gormDB)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.createIndexes(ctx); err != nil {
		return err
	}

	return m.saveVersion(gormDB)
}

func (m *manager) gorm(ctx context.Context) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(m.operator.Pool())

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB.WithContext(ctx), nil
}

// saveVersion records the current schema version.
func (m *manager) saveVersion(gormDB *gorm.DB) error {
	sv := schema.SchemaVersion{
		Version:     schema.Version,
		Description: "taxa with classification breadcrumbs",
	}
	err := gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&sv).Error
	if err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

// setCollation sets "C" collation on varchar columns that keep
// scientific names and ranks.
func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()

	type columnDef struct {
		table, column string
		varchar       int
	}

	table := schema.Taxon{}.TableName()
	columns := []columnDef{
		{table, "name", 500},
		{table, "rank", 50},
		{table, "effective_rank", 50},
	}

	for _, col := range columns {
		q := formatCollationSQL(collationSQL, col.table,
			col.column, col.varchar)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}

func (m *manager) createIndexes(ctx context.Context) error {
	pool := m.operator.Pool()
	for _, ddl := range schema.IndexDDL() {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return IndexError(ddl, err)
		}
	}
	return nil
}
