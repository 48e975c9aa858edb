/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/internal/iologger"
	app "github.com/gnames/gntaxdump/pkg"
	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command when called without any
// subcommands. Every call creates an independent command tree.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gntaxdump",
		Short:   "GNtaxdump finds lineages of NCBI taxa and sequence accessions",
		Long: `GNtaxdump reads NCBI taxonomy dump files (nodes.dmp, names.dmp) and
accession to taxid mappings, and answers lineage questions about them.

Commands:
  lineage     accession/taxid CSV to lineage CSV or SQLite table
  query       lineage, LCA, lowest shared rank, first disagreement
  accessions  accession names from a listing of index leaves
  acc2taxid   join accessions with accession2taxid files or the index
  index       build the persistent accession index
  assembly    assembly_summary.txt to accession/taxid TSV
  populate    load taxa with classifications into PostgreSQL

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNTAXDUMP_*)
  3. Config file (~/.config/gntaxdump/config.yaml)
  4. Built-in defaults

Examples of environment variables:
  GNTAXDUMP_TAXDUMP_NODES_PATH    path to nodes.dmp
  GNTAXDUMP_TAXDUMP_NAMES_PATH    path to names.dmp
  GNTAXDUMP_DATABASE_HOST         PostgreSQL host
  GNTAXDUMP_LOG_LEVEL             log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gntaxdump version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gntaxdump")

	rootCmd.AddCommand(
		getLineageCmd(),
		getQueryCmd(),
		getAccessionsCmd(),
		getAcc2TaxIDCmd(),
		getIndexCmd(),
		getAssemblyCmd(),
		getPopulateCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// runRoot prints the effective configuration.
func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)

	gn.Info(
		"Configuration file is <em>%s</em>",
		config.ConfigFilePath(homeDir),
	)
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	_ = iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Env variables are bound one by one, so it is clear which ones are
	// allowed. They match the fields of config.ToOptions(). With a single
	// argument BindEnv adds the prefix, "taxdump.nodes_path" becomes
	// GNTAXDUMP_TAXDUMP_NODES_PATH.
	v.SetEnvPrefix("GNTAXDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Taxdump configuration
	v.BindEnv("taxdump.nodes_path")
	v.BindEnv("taxdump.names_path")
	v.BindEnv("taxdump.cache_suffix")
	v.BindEnv("taxdump.cache_mode")

	// Lineage configuration
	v.BindEnv("lineage.ranks")

	// Accession configuration
	v.BindEnv("accession.index_dir")

	// Database configuration
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.database")
	v.BindEnv("database.ssl_mode")
	v.BindEnv("database.batch_size")

	// Log configuration
	v.BindEnv("log.level")
	v.BindEnv("log.format")
	v.BindEnv("log.destination")

	// General configuration
	v.BindEnv("jobs_number")

	v.AutomaticEnv()
}
