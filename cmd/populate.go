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
	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/iodb"
	"github.com/gnames/gntaxdump/internal/iopopulate"
	"github.com/gnames/gntaxdump/internal/ioschema"
	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
func getPopulateCmd() *cobra.Command {
	var (
		drop      bool
		batchSize int
	)

	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Load NCBI taxonomy into PostgreSQL",
		Long: `Import the whole NCBI taxonomy into a PostgreSQL database.

This command:
  1. Loads nodes.dmp and names.dmp (or their cache)
  2. Connects to PostgreSQL using configuration settings
  3. Creates the schema if the database is empty, migrates it otherwise
  4. Replaces all rows of the taxa table, with precomputed
     classification breadcrumbs for every taxon

Use --drop to remove all existing tables before creating the schema.

Examples:
  gntaxdump populate
  gntaxdump populate --drop
  gntaxdump populate --nodes nodes.dmp --names names.dmp -j 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPopulate(cmd, drop, batchSize)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().BoolVar(&drop, "drop", false,
		"drop all existing tables before creating schema")
	populateCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"number of taxa per bulk insert (overrides config)")
	populateCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent workers (overrides config)")
	addTaxdumpFlags(populateCmd)

	return populateCmd
}

func runPopulate(cmd *cobra.Command, drop bool, batchSize int) error {
	ctx, cancel := signalContext()
	defer cancel()

	updateConfig(cmd)
	if cmd.Flags().Changed("batch-size") {
		cfg.Update([]config.Option{config.OptDatabaseBatchSize(batchSize)})
	}

	tree, err := loadTree(ctx)
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	sm := ioschema.NewManager(op)
	if drop || !hasTables {
		if err = sm.Create(ctx, drop); err != nil {
			return err
		}
	} else if err = sm.Migrate(ctx); err != nil {
		return err
	}

	_, err = iopopulate.New(cfg, op).Populate(ctx, tree)
	return err
}
