// Package config provides configuration management for GNtaxdump.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Taxdump: nodes_path, names_path, cache_suffix, cache_mode
//   - Lineage: ranks
//   - Accession: index_dir
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Lineage.Canonical (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTAXDUMP_ prefix with underscores for nesting:
//
//	GNTAXDUMP_TAXDUMP_NODES_PATH=/data/taxdump/nodes.dmp
//	GNTAXDUMP_DATABASE_HOST=localhost
//	GNTAXDUMP_LOG_LEVEL=info
//	GNTAXDUMP_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// DefaultRanks is the rank list used for lineage export and consensus
// queries when nothing else is configured. Order goes from the root
// towards leaves.
var DefaultRanks = []string{
	"superkingdom",
	"phylum",
	"class",
	"order",
	"family",
	"genus",
	"species",
	"strain",
}

// Config represents the complete GNtaxdump configuration.
type Config struct {
	// Taxdump contains locations and cache settings of NCBI dump files.
	Taxdump TaxdumpConfig `mapstructure:"taxdump" yaml:"taxdump"`

	// Lineage contains settings for lineage export and consensus queries.
	Lineage LineageConfig `mapstructure:"lineage" yaml:"lineage"`

	// Accession contains settings of the persistent accession index.
	Accession AccessionConfig `mapstructure:"accession" yaml:"accession"`

	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// TaxdumpConfig describes where NCBI taxonomy dump files are and how their
// parsed form is cached.
type TaxdumpConfig struct {
	// NodesPath is the path to nodes.dmp (or nodes.dmp.gz).
	NodesPath string `mapstructure:"nodes_path" yaml:"nodes_path"`

	// NamesPath is the path to names.dmp (or names.dmp.gz).
	NamesPath string `mapstructure:"names_path" yaml:"names_path"`

	// CacheSuffix is appended to a dump path to get its binary cache file.
	// A suffix ending with ".gz" makes the cache gzip-compressed.
	CacheSuffix string `mapstructure:"cache_suffix" yaml:"cache_suffix"`

	// CacheMode controls the on-disk cache of parsed dumps.
	// Valid values: "readwrite", "readonly", "off".
	CacheMode string `mapstructure:"cache_mode" yaml:"cache_mode"`
}

// LineageConfig contains settings for lineage export and consensus queries.
type LineageConfig struct {
	// Ranks is the ordered list of ranks (root first) used for lineage
	// columns and consensus scans.
	Ranks []string `mapstructure:"ranks" yaml:"ranks"`

	// Canonical replaces scientific names with their simple canonical
	// form in exports. Runtime-only field.
	Canonical bool `mapstructure:"-" yaml:"-"`
}

// AccessionConfig contains settings of the persistent accession index.
type AccessionConfig struct {
	// IndexDir is the directory of the badger accession index.
	// Empty value means the default location inside the cache directory.
	IndexDir string `mapstructure:"index_dir" yaml:"index_dir"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of taxa sent to PostgreSQL per
	// CopyFrom call during populate.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Taxdump: TaxdumpConfig{
			NodesPath:   "nodes.dmp",
			NamesPath:   "names.dmp",
			CacheSuffix: ".cache",
			CacheMode:   "readwrite",
		},
		Lineage: LineageConfig{
			Ranks: append([]string(nil), DefaultRanks...),
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "ncbi_taxonomy",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
