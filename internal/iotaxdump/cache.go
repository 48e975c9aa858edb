package iotaxdump

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/gnames/gntaxdump/pkg/taxonomy"
)

type treeKey struct {
	nodes, names string
}

// Cache keeps loaded trees in memory, one per pair of dump files. It is
// safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	loader *Loader
	trees  map[treeKey]*taxonomy.Tree
}

// NewCache creates an empty Cache that loads trees with the given Loader.
func NewCache(l *Loader) *Cache {
	res := Cache{
		loader: l,
		trees:  make(map[treeKey]*taxonomy.Tree),
	}
	return &res
}

// GetOrLoad returns the tree for the dump files, loading it on the first
// request. A failed load is not remembered.
func (c *Cache) GetOrLoad(
	ctx context.Context,
	nodesPath, namesPath string,
) (*taxonomy.Tree, error) {
	key := treeKey{
		nodes: filepath.Clean(nodesPath),
		names: filepath.Clean(namesPath),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tree, ok := c.trees[key]; ok {
		return tree, nil
	}

	tree, err := c.loader.Load(ctx, key.nodes, key.names)
	if err != nil {
		return nil, err
	}
	c.trees[key] = tree
	return tree, nil
}

// Len returns the number of trees in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.trees)
}
