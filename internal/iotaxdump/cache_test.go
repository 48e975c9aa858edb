package iotaxdump

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad(t *testing.T) {
	dir := t.TempDir()
	nodes, names := writeDumps(t, dir)
	c := NewCache(newLoader(".cache", ModeOff))
	ctx := context.Background()

	tree1, err := c.GetOrLoad(ctx, nodes, names)
	require.NoError(t, err)
	checkTree(t, tree1)

	// dumps are not read again
	require.NoError(t, os.Remove(nodes))
	tree2, err := c.GetOrLoad(ctx, filepath.Join(dir, ".", "nodes.dmp"), names)
	require.NoError(t, err)
	assert.Same(t, tree1, tree2)
	assert.Equal(t, 1, c.Len())
}

func TestGetOrLoad_Concurrent(t *testing.T) {
	nodes, names := writeDumps(t, t.TempDir())
	c := NewCache(newLoader(".cache", ModeReadWrite))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.GetOrLoad(context.Background(), nodes, names)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, c.Len())
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(newLoader(".cache", ModeOff))
	nodes := filepath.Join(dir, "nodes.dmp")
	names := filepath.Join(dir, "names.dmp")

	_, err := c.GetOrLoad(context.Background(), nodes, names)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	writeDumps(t, dir)
	tree, err := c.GetOrLoad(context.Background(), nodes, names)
	require.NoError(t, err)
	checkTree(t, tree)
}
