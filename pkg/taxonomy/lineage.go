package taxonomy

import (
	"log/slog"
	"slices"
)

// RankSet is a set of ranks used to filter lineages. A nil RankSet lets
// all ranks through.
type RankSet map[string]struct{}

// NewRankSet creates a RankSet from a list of ranks.
func NewRankSet(ranks ...string) RankSet {
	res := make(RankSet, len(ranks))
	for _, v := range ranks {
		res[v] = struct{}{}
	}
	return res
}

// Has is true if the rank passes the filter.
func (rs RankSet) Has(rank string) bool {
	if rs == nil {
		return true
	}
	_, ok := rs[rank]
	return ok
}

// LineageTaxIDs returns taxids from the top of the tree down to the given
// taxid inclusive. The root itself is not included unless id is the root.
// A broken parent chain returns TaxIDNotFoundError.
func (t *Tree) LineageTaxIDs(id int) ([]int, error) {
	var res []int
	visited := make(map[int]struct{})

	curr := id
	for {
		if _, ok := visited[curr]; ok {
			return nil, CycleError(id)
		}
		visited[curr] = struct{}{}
		res = append(res, curr)

		parent, ok := t.Parent(curr)
		if !ok {
			return nil, TaxIDNotFoundError(curr)
		}
		if parent == RootID {
			break
		}
		curr = parent
	}

	slices.Reverse(res)
	return res, nil
}

// Lineage returns names of the ancestors of a taxid (the taxid included)
// ordered from the root down. Only nodes with effective rank in want are
// used. The root is never part of a lineage.
//
// If the walk meets a taxid unknown to the tree, it logs a warning and
// returns what it collected so far.
func (t *Tree) Lineage(id int, want RankSet) []string {
	var res []string
	t.walk(id, func(rank, name string) {
		if want.Has(rank) {
			res = append(res, name)
		}
	})
	slices.Reverse(res)
	return res
}

// LineageMap is like Lineage, but returns names keyed by effective rank.
// If several ancestors share a rank, the one closest to the root wins.
func (t *Tree) LineageMap(id int, want RankSet) map[string]string {
	res := make(map[string]string)
	t.walk(id, func(rank, name string) {
		if want.Has(rank) {
			res[rank] = name
		}
	})
	return res
}

// walk goes from a taxid towards the root and calls fn for every node
// with its effective rank and name. It stops before the root, on an
// unknown taxid, or on a repeated taxid.
func (t *Tree) walk(id int, fn func(rank, name string)) {
	visited := make(map[int]struct{})
	curr := id
	for curr != RootID {
		if _, ok := visited[curr]; ok {
			slog.Warn("Cycle in taxonomy, lineage is truncated",
				"taxid", id, "repeated_taxid", curr)
			return
		}
		visited[curr] = struct{}{}

		rank, ok := t.EffectiveRank(curr)
		if !ok {
			slog.Warn("Cannot find taxid, lineage is truncated",
				"taxid", id, "missing_taxid", curr)
			return
		}
		name, _ := t.Name(curr)
		fn(rank, name)

		curr, ok = t.Parent(curr)
		if !ok {
			return
		}
	}
}

// LowestLineage finds the taxid at the lowest rank from want that all
// given taxids agree on. Ranks are checked in the order of want, and the
// last rank present in any lineage is chosen. If that rank holds more than
// one taxid, AmbiguousRankError is returned. If none of the ranks is found,
// RootID is returned.
func (t *Tree) LowestLineage(ids []int, want []string) (int, error) {
	found, err := t.ranksFound(ids)
	if err != nil {
		return 0, err
	}

	res := []int{RootID}
	var resRank string
	for _, rank := range want {
		if bucket := found[rank]; len(bucket) > 0 {
			res = bucket
			resRank = rank
		}
	}

	if len(res) != 1 {
		return 0, AmbiguousRankError(resRank, res)
	}
	return res[0], nil
}

// ranksFound collects all ancestors of given taxids into buckets keyed by
// effective rank. Taxids inside a bucket are unique and sorted.
func (t *Tree) ranksFound(ids []int) (map[string][]int, error) {
	sets := make(map[string]map[int]struct{})
	for _, id := range ids {
		lineage, err := t.LineageTaxIDs(id)
		if err != nil {
			return nil, err
		}
		for _, v := range lineage {
			rank, _ := t.EffectiveRank(v)
			if sets[rank] == nil {
				sets[rank] = make(map[int]struct{})
			}
			sets[rank][v] = struct{}{}
		}
	}

	res := make(map[string][]int, len(sets))
	for rank, set := range sets {
		bucket := make([]int, 0, len(set))
		for v := range set {
			bucket = append(bucket, v)
		}
		slices.Sort(bucket)
		res[rank] = bucket
	}
	return res, nil
}
