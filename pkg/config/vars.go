package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gntaxdump"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntaxdump by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gntaxdump by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gntaxdump/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gntaxdump/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// AccessionIndexDir returns the directory of the persistent accession
// index. A configured Accession.IndexDir wins over the default
// ~/.cache/gntaxdump/accessions.
func (c *Config) AccessionIndexDir() string {
	if c.Accession.IndexDir != "" {
		return c.Accession.IndexDir
	}
	return filepath.Join(CacheDir(c.HomeDir), "accessions")
}
