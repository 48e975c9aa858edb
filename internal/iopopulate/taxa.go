package iopopulate

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/gntaxdump/pkg/schema"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
	"github.com/gnames/gnuuid"
)

// taxaColumns are the columns filled by CopyFrom, in the order of values
// returned by taxonRow.
var taxaColumns = []string{
	"id", "parent_id", "rank", "effective_rank", "name", "name_id",
	"division_id", "genetic_code_id",
	"classification", "classification_ranks", "classification_ids",
}

// breadcrumbs are pipe-delimited names, ranks and taxids from the top of
// the tree down to a node.
type breadcrumbs struct {
	names, ranks, ids string
}

// getBreadcrumbs builds classification of a taxid. Nodes with a broken
// parent chain get empty breadcrumbs.
func getBreadcrumbs(tree *taxonomy.Tree, id int) breadcrumbs {
	var res breadcrumbs
	lineage, err := tree.LineageTaxIDs(id)
	if err != nil {
		slog.Warn("Cannot build classification", "taxid", id, "error", err)
		return res
	}

	names := make([]string, len(lineage))
	ranks := make([]string, len(lineage))
	ids := make([]string, len(lineage))
	for i, v := range lineage {
		names[i], _ = tree.Name(v)
		ranks[i], _ = tree.EffectiveRank(v)
		ids[i] = strconv.Itoa(v)
	}

	res.names = strings.Join(names, "|")
	res.ranks = strings.Join(ranks, "|")
	res.ids = strings.Join(ids, "|")
	return res
}

// taxonRow converts a node of the tree to values for the taxa table.
func taxonRow(tree *taxonomy.Tree, id int) []any {
	parent, _ := tree.Parent(id)
	info, _ := tree.Info(id)
	rank, _ := tree.EffectiveRank(id)
	name, _ := tree.Name(id)
	bc := getBreadcrumbs(tree, id)

	return []any{
		id,
		parent,
		info.Rank,
		rank,
		name,
		gnuuid.New(name).String(),
		info.DivisionID,
		info.GeneticCodeID,
		bc.names,
		bc.ranks,
		bc.ids,
	}
}

// taxaWorker converts taxids from chIn to table rows.
func taxaWorker(
	ctx context.Context,
	tree *taxonomy.Tree,
	chIn <-chan int,
	chOut chan<- []any,
) error {
	for id := range chIn {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- taxonRow(tree, id):
		}
	}
	return nil
}

func taxaTable() string {
	return schema.Taxon{}.TableName()
}
