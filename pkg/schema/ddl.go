package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Taxon DDL methods
func (t Taxon) TableDDL() string {
	return generateDDL(t, t.TableName())
}

func (t Taxon) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_taxa_parent_id ON taxa(parent_id);",
		"CREATE INDEX IF NOT EXISTS idx_taxa_name ON taxa(name);",
		"CREATE INDEX IF NOT EXISTS idx_taxa_name_id ON taxa(name_id);",
		"CREATE INDEX IF NOT EXISTS idx_taxa_effective_rank ON taxa(effective_rank);",
	}
}

func (t Taxon) TableName() string {
	return "taxa"
}

// SchemaVersion DDL methods
func (sv SchemaVersion) TableDDL() string {
	return generateDDL(sv, sv.TableName())
}

func (sv SchemaVersion) IndexDDL() []string {
	return []string{}
}

func (sv SchemaVersion) TableName() string {
	return "schema_versions"
}
