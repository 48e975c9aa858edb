package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gntaxdump/internal/iotaxdump"
	app "github.com/gnames/gntaxdump/pkg"
	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// addTaxdumpFlags adds flags that locate dump files.
func addTaxdumpFlags(cmd *cobra.Command) {
	cmd.Flags().String("nodes", "", "path to nodes.dmp (overrides config)")
	cmd.Flags().String("names", "", "path to names.dmp (overrides config)")
	cmd.Flags().String("cache-mode", "",
		"dump cache mode: readwrite, readonly or off")
}

// addRanksFlag adds the flag of the ordered rank list.
func addRanksFlag(cmd *cobra.Command) {
	cmd.Flags().StringSlice("ranks", nil,
		"comma-separated ranks from the root down (overrides config)")
}

// addIndexDirFlag adds the flag of the accession index location.
func addIndexDirFlag(cmd *cobra.Command) {
	cmd.Flags().String("index-dir", "",
		"accession index directory (overrides config)")
}

// flagOptions converts explicitly set common flags to config options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("nodes") {
		s, _ := flags.GetString("nodes")
		res = append(res, config.OptTaxdumpNodesPath(s))
	}
	if flags.Changed("names") {
		s, _ := flags.GetString("names")
		res = append(res, config.OptTaxdumpNamesPath(s))
	}
	if flags.Changed("cache-mode") {
		s, _ := flags.GetString("cache-mode")
		res = append(res, config.OptTaxdumpCacheMode(s))
	}
	if flags.Changed("ranks") {
		ss, _ := flags.GetStringSlice("ranks")
		res = append(res, config.OptLineageRanks(ss))
	}
	if flags.Changed("index-dir") {
		s, _ := flags.GetString("index-dir")
		res = append(res, config.OptAccessionIndexDir(s))
	}
	if flags.Changed("canonical") {
		b, _ := flags.GetBool("canonical")
		res = append(res, config.OptLineageCanonical(b))
	}
	if flags.Changed("jobs") {
		i, _ := flags.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}

// updateConfig applies explicitly set flags on top of the loaded
// configuration.
func updateConfig(cmd *cobra.Command) {
	if cfg == nil {
		cfg = config.New()
	}
	cfg.Update(flagOptions(cmd))
}

// signalContext is cancelled on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}

// trees keeps taxonomies loaded during the run.
var trees *iotaxdump.Cache

// loadTree loads the taxonomy configured in cfg.
func loadTree(ctx context.Context) (*taxonomy.Tree, error) {
	if trees == nil {
		trees = iotaxdump.NewCache(iotaxdump.NewLoader(cfg.Taxdump))
	}
	return trees.GetOrLoad(ctx, cfg.Taxdump.NodesPath, cfg.Taxdump.NamesPath)
}

// inputPath returns the first argument or "-" for stdin.
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
