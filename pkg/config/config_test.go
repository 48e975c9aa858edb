package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gntaxdump"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gntaxdump"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gntaxdump", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gntaxdump", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "nodes.dmp", cfg.Taxdump.NodesPath)
		assert.Equal(t, "names.dmp", cfg.Taxdump.NamesPath)
		assert.Equal(t, ".cache", cfg.Taxdump.CacheSuffix)
		assert.Equal(t, "readwrite", cfg.Taxdump.CacheMode)

		assert.Equal(t, config.DefaultRanks, cfg.Lineage.Ranks)
		assert.False(t, cfg.Lineage.Canonical)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "ncbi_taxonomy", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 50_000, cfg.Database.BatchSize)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})

	t.Run("ranks are not shared with defaults", func(t *testing.T) {
		cfg.Lineage.Ranks[0] = "kingdom"
		assert.Equal(t, "superkingdom", config.DefaultRanks[0])
	})
}

func TestOptionTaxdumpPaths(t *testing.T) {
	tests := []struct {
		name      string
		nodes     string
		names     string
		wantNodes string
		wantNames string
	}{
		{
			name:      "sets paths",
			nodes:     "/data/nodes.dmp.gz",
			names:     "/data/names.dmp.gz",
			wantNodes: "/data/nodes.dmp.gz",
			wantNames: "/data/names.dmp.gz",
		},
		{
			name:      "trims whitespace",
			nodes:     "  /data/nodes.dmp ",
			names:     " /data/names.dmp",
			wantNodes: "/data/nodes.dmp",
			wantNames: "/data/names.dmp",
		},
		{
			name:      "ignores empty string",
			nodes:     "",
			names:     "   ",
			wantNodes: "nodes.dmp",
			wantNames: "names.dmp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptTaxdumpNodesPath(tt.nodes),
				config.OptTaxdumpNamesPath(tt.names),
			})
			assert.Equal(t, tt.wantNodes, cfg.Taxdump.NodesPath)
			assert.Equal(t, tt.wantNames, cfg.Taxdump.NamesPath)
		})
	}
}

func TestOptionTaxdumpCache(t *testing.T) {
	tests := []struct {
		name       string
		suffix     string
		mode       string
		wantSuffix string
		wantMode   string
	}{
		{"gzip suffix", ".cache.gz", "readonly", ".cache.gz", "readonly"},
		{"mode is case insensitive", ".bin", "OFF", ".bin", "off"},
		{"suffix without dot", "cache", "readwrite", ".cache", "readwrite"},
		{"unknown mode", ".cache", "sometimes", ".cache", "readwrite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptTaxdumpCacheSuffix(tt.suffix),
				config.OptTaxdumpCacheMode(tt.mode),
			})
			assert.Equal(t, tt.wantSuffix, cfg.Taxdump.CacheSuffix)
			assert.Equal(t, tt.wantMode, cfg.Taxdump.CacheMode)
		})
	}
}

func TestOptionLineageRanks(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "sets ranks",
			input: []string{"phylum", "genus", "species"},
			want:  []string{"phylum", "genus", "species"},
		},
		{
			name:  "normalizes case and drops empty",
			input: []string{" Genus ", "", "SPECIES"},
			want:  []string{"genus", "species"},
		},
		{
			name:  "ignores empty list",
			input: nil,
			want:  config.DefaultRanks,
		},
		{
			name:  "rejects repeated rank",
			input: []string{"genus", "species", "genus"},
			want:  config.DefaultRanks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLineageRanks(tt.input)})
			assert.Equal(t, tt.want, cfg.Lineage.Ranks)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets require", "require", "require"},
		{"case insensitive", "VERIFY-FULL", "verify-full"},
		{"rejects invalid", "maybe", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLog(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("printer"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionPositiveInts(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptJobsNumber(3),
		config.OptDatabaseBatchSize(1000),
		config.OptDatabasePort(6543),
	})
	assert.Equal(t, 3, cfg.JobsNumber)
	assert.Equal(t, 1000, cfg.Database.BatchSize)
	assert.Equal(t, 6543, cfg.Database.Port)

	cfg.Update([]config.Option{
		config.OptJobsNumber(0),
		config.OptDatabaseBatchSize(-1),
		config.OptDatabasePort(0),
	})
	assert.Equal(t, 3, cfg.JobsNumber)
	assert.Equal(t, 1000, cfg.Database.BatchSize)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestAccessionIndexDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".cache", "gntaxdump", "accessions"),
		cfg.AccessionIndexDir(),
	)

	cfg.Update([]config.Option{config.OptAccessionIndexDir("/data/acc")})
	assert.Equal(t, "/data/acc", cfg.AccessionIndexDir())
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptTaxdumpNodesPath("/data/nodes.dmp"),
		config.OptTaxdumpCacheMode("off"),
		config.OptLineageRanks([]string{"family", "genus"}),
		config.OptDatabaseHost("db.example.org"),
		config.OptLogLevel("warn"),
		config.OptJobsNumber(2),
		config.OptHomeDir("/home/user"),
		config.OptLineageCanonical(true),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Taxdump, dst.Taxdump)
	assert.Equal(t, src.Lineage.Ranks, dst.Lineage.Ranks)
	assert.Equal(t, src.Database, dst.Database)
	assert.Equal(t, src.Log, dst.Log)
	assert.Equal(t, src.JobsNumber, dst.JobsNumber)

	// runtime-only fields do not travel
	assert.Empty(t, dst.HomeDir)
	assert.False(t, dst.Lineage.Canonical)
}
