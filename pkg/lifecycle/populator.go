// Package lifecycle declares the stages of moving NCBI taxonomy into
// PostgreSQL: schema management and population.
package lifecycle

import (
	"context"

	"github.com/gnames/gntaxdump/pkg/taxonomy"
)

// Populator imports a taxonomy tree into the database.
type Populator interface {
	// Populate replaces the content of the taxa table with nodes of the
	// tree. It returns the number of imported taxa.
	Populate(ctx context.Context, tree *taxonomy.Tree) (int, error)
}
