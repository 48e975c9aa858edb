package taxonomy

import (
	"slices"
)

// Disagreement describes the first rank where taxids stop agreeing.
type Disagreement struct {
	// Rank is the last rank checked before the disagreement.
	Rank string
	// TaxID represents Rank: the smallest taxid found at that rank,
	// or RootID if nothing was found there.
	TaxID int
	// DisagreeRank is the rank holding more than one taxid.
	DisagreeRank string
	// TaxIDs are the distinct taxids found at DisagreeRank, sorted.
	TaxIDs []int
}

// FindLCA returns the lowest common ancestor of the given taxids.
// It returns RootID for an empty input. Unknown parents are treated as the
// root, so taxids missing from the tree do not cause errors.
func (t *Tree) FindLCA(ids []int) int {
	if len(ids) == 0 {
		return RootID
	}

	seen := make(map[int]struct{}, len(ids))
	uniq := make([]int, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			uniq = append(uniq, v)
		}
	}

	path := t.lenientPath(uniq[0], nil)
	for _, id := range uniq[1:] {
		common := make(map[int]struct{}, len(path))
		for _, v := range path {
			common[v] = struct{}{}
		}
		path = t.lenientPath(id, common)
	}

	if len(path) == 0 {
		return RootID
	}
	return path[len(path)-1]
}

// lenientPath returns the path from the root (excluded) down to id. If keep
// is not nil, only taxids from keep make it into the path. Missing parents
// end the path as if they were the root.
func (t *Tree) lenientPath(id int, keep map[int]struct{}) []int {
	var res []int
	visited := make(map[int]struct{})
	for id != RootID {
		if _, ok := visited[id]; ok {
			break
		}
		visited[id] = struct{}{}

		if keep == nil {
			res = append(res, id)
		} else if _, ok := keep[id]; ok {
			res = append(res, id)
		}

		parent, ok := t.Parent(id)
		if !ok {
			parent = RootID
		}
		id = parent
	}
	slices.Reverse(res)
	return res
}

// FirstDisagreement finds the first rank from want where given taxids have
// more than one distinct ancestor. The second returned value is false when
// taxids agree on all ranks. One taxid being an ancestor of another is not
// a disagreement.
func (t *Tree) FirstDisagreement(
	ids []int,
	want []string,
) (Disagreement, bool, error) {
	var res Disagreement
	if len(want) == 0 {
		return res, false, nil
	}

	found, err := t.ranksFound(ids)
	if err != nil {
		return res, false, err
	}

	lastRank := want[0]
	for _, rank := range want {
		if len(found[rank]) > 1 {
			res = Disagreement{
				Rank:         lastRank,
				TaxID:        RootID,
				DisagreeRank: rank,
				TaxIDs:       found[rank],
			}
			if last := found[lastRank]; len(last) > 0 {
				res.TaxID = last[0]
			}
			return res, true, nil
		}
		lastRank = rank
	}

	return res, false, nil
}
