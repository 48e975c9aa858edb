package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/gntaxdump/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTaxonTableDDL tests DDL generation for Taxon model
func TestTaxonTableDDL(t *testing.T) {
	tx := schema.Taxon{}
	ddl := tx.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE taxa")
	assert.Contains(t, ddl, "id INT PRIMARY KEY")
	assert.Contains(t, ddl, "parent_id INT NOT NULL")
	assert.Contains(t, ddl, "effective_rank VARCHAR(50) NOT NULL")
	assert.Contains(t, ddl, "name_id UUID NOT NULL")

	// breadcrumbs
	assert.Contains(t, ddl, "classification TEXT")
	assert.Contains(t, ddl, "classification_ranks TEXT")
	assert.Contains(t, ddl, "classification_ids TEXT")
}

func TestTaxonIndexDDL(t *testing.T) {
	indexes := schema.Taxon{}.IndexDDL()
	require.NotEmpty(t, indexes)

	all := strings.Join(indexes, "\n")
	assert.Contains(t, all, "taxa(parent_id)")
	assert.Contains(t, all, "taxa(name)")
	for _, v := range indexes {
		assert.True(t, strings.HasPrefix(v, "CREATE INDEX IF NOT EXISTS"), v)
	}
}

func TestSchemaVersionDDL(t *testing.T) {
	sv := schema.SchemaVersion{}
	assert.Equal(t, "schema_versions", sv.TableName())
	assert.Contains(t, sv.TableDDL(), "version TEXT PRIMARY KEY")
	assert.Empty(t, sv.IndexDDL())
}

// TestAllModelsImplementDDLGenerator verifies every model can describe
// its own table.
func TestAllModelsImplementDDLGenerator(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 2)
	for _, m := range models {
		_, ok := m.(schema.DDLGenerator)
		assert.True(t, ok, "%T should implement DDLGenerator", m)
	}
	assert.Equal(t, schema.Taxon{}.IndexDDL(), schema.IndexDDL())
}
