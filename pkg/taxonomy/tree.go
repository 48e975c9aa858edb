// Package taxonomy keeps NCBI taxonomy in memory as a parent-pointer tree
// and answers lineage and consensus queries over it.
//
// This is a pure package: it parses dump content from io.Reader and never
// touches the file system. Opening files, gzip and caching live in
// internal/iotaxdump.
package taxonomy

import (
	"slices"
)

const (
	// RootID is the taxid of the root of NCBI taxonomy. In nodes.dmp the
	// root is its own parent.
	RootID = 1

	// NoRank is the rank NCBI gives to unclassified levels.
	NoRank = "no rank"
	// SpeciesRank is the rank of species.
	SpeciesRank = "species"
	// StrainRank is the pseudo-rank of a "no rank" node under a species.
	StrainRank = "strain"
)

// Tree is an immutable NCBI taxonomy. It is safe for concurrent reads.
type Tree struct {
	parents map[int]int
	info    map[int]NodeInfo
	names   map[int]Name
}

// New creates a Tree from the results of ParseNodes and ParseNames.
// Every node with info must have a scientific name, otherwise
// MissingNameError is returned.
func New(
	parents map[int]int,
	info map[int]NodeInfo,
	names map[int]Name,
) (*Tree, error) {
	ids := make([]int, 0, len(info))
	for id := range info {
		if _, ok := names[id]; !ok {
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		return nil, MissingNameError(slices.Min(ids))
	}

	res := Tree{
		parents: parents,
		info:    info,
		names:   names,
	}
	return &res, nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.info)
}

// TaxIDs returns all taxids of the tree in ascending order.
func (t *Tree) TaxIDs() []int {
	res := make([]int, 0, len(t.info))
	for id := range t.info {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}

// Parent returns the parent taxid. The second value is false if the taxid
// is not in the tree.
func (t *Tree) Parent(id int) (int, bool) {
	res, ok := t.parents[id]
	return res, ok
}

// Info returns nodes.dmp data of a taxid.
func (t *Tree) Info(id int) (NodeInfo, bool) {
	res, ok := t.info[id]
	return res, ok
}

// Rank returns the rank as it is given in nodes.dmp.
func (t *Tree) Rank(id int) (string, bool) {
	info, ok := t.info[id]
	if !ok {
		return "", false
	}
	return info.Rank, true
}

// Name returns the scientific name of a taxid.
func (t *Tree) Name(id int) (string, bool) {
	if _, ok := t.info[id]; !ok {
		return "", false
	}
	// New guarantees a name for every node with info.
	return t.names[id].Name, true
}

// IsStrain is true when a node has "no rank" and its parent is a species.
func (t *Tree) IsStrain(id int) bool {
	rank, ok := t.Rank(id)
	if !ok || rank != NoRank {
		return false
	}
	parent, ok := t.Parent(id)
	if !ok {
		return false
	}
	parentRank, ok := t.Rank(parent)
	return ok && parentRank == SpeciesRank
}

// EffectiveRank returns the rank of a taxid, with strains reported as
// "strain" instead of "no rank".
func (t *Tree) EffectiveRank(id int) (string, bool) {
	rank, ok := t.Rank(id)
	if !ok {
		return "", false
	}
	if t.IsStrain(id) {
		return StrainRank, true
	}
	return rank, true
}
