package schema

import (
	"gorm.io/gorm"
)

// Version is the current version of the database schema.
const Version = "1"

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Taxon{},
		&SchemaVersion{},
	}
}

// IndexDDL collects CREATE INDEX statements of all models.
func IndexDDL() []string {
	var res []string
	for _, m := range AllModels() {
		if g, ok := m.(DDLGenerator); ok {
			res = append(res, g.IndexDDL()...)
		}
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
