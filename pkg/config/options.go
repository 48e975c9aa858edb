package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptTaxdumpNodesPath sets the path to nodes.dmp.
func OptTaxdumpNodesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxdump Nodes Path", s) {
			c.Taxdump.NodesPath = s
		}
	}
}

// OptTaxdumpNamesPath sets the path to names.dmp.
func OptTaxdumpNamesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxdump Names Path", s) {
			c.Taxdump.NamesPath = s
		}
	}
}

// OptTaxdumpCacheSuffix sets the suffix of binary cache files.
// The suffix must start with a dot.
func OptTaxdumpCacheSuffix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if !isValidString("Taxdump Cache Suffix", s) {
			return
		}
		if !strings.HasPrefix(s, ".") {
			warnInvalid("Taxdump Cache Suffix", s, "it must start with '.'")
			return
		}
		c.Taxdump.CacheSuffix = s
	}
}

// OptTaxdumpCacheMode sets how the on-disk cache of parsed dumps is used.
// Valid values: "readwrite", "readonly", "off".
func OptTaxdumpCacheMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Taxdump.CacheMode", s) {
			c.Taxdump.CacheMode = s
		}
	}
}

// OptLineageRanks sets the ordered list of ranks for lineage export and
// consensus queries. Empty entries are dropped, duplicates are rejected.
func OptLineageRanks(ss []string) Option {
	var ranks []string
	for _, v := range ss {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			ranks = append(ranks, v)
		}
	}
	return func(c *Config) {
		if len(ranks) == 0 {
			return
		}
		seen := make(map[string]struct{}, len(ranks))
		for _, v := range ranks {
			if _, ok := seen[v]; ok {
				warnInvalid("Lineage Ranks", v, "rank is repeated")
				return
			}
			seen[v] = struct{}{}
		}
		c.Lineage.Ranks = ranks
	}
}

// OptLineageCanonical sets whether exported names are converted to
// canonical forms.
// Runtime-only field - not in ToOptions().
func OptLineageCanonical(b bool) Option {
	return func(c *Config) {
		c.Lineage.Canonical = b
	}
}

// OptAccessionIndexDir sets the directory of the persistent accession
// index.
func OptAccessionIndexDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Accession Index Dir", s) {
			c.Accession.IndexDir = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of taxa per bulk insert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
