package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediacat/internal/dataset"
	"mediacat/internal/dedupe"
	"mediacat/internal/logging"
)

const (
	dedupeSampleRows  = 10
	dedupeRemovedRows = 5
)

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var (
		columns     string
		delimiter   string
		prune       bool
		showRemoved bool
	)

	cmd := &cobra.Command{
		Use:   "dedupe FILE",
		Short: "Remove rows that repeat a compound key",
		Long: "Write the input without duplicate rows to stdout. The key is the combination of --columns.\n" +
			"A summary is written to stderr.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "dedupe")

			delim, err := dataset.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}
			table, err := dataset.ReadFile(args[0], delim)
			if err != nil {
				return err
			}
			keys := dedupe.ParseColumns(columns)
			res, err := dedupe.Apply(table, dedupe.Options{Columns: keys, Prune: prune})
			if err != nil {
				return err
			}

			status := cmd.ErrOrStderr()
			fmt.Fprintf(status, "Checking for compound duplicates in columns: %s\n", strings.Join(keys, ", "))
			if len(table.Rows) > 0 {
				fmt.Fprintln(status, "Sample data:")
				fmt.Fprintln(status, renderTable(keys, res.KeyRows(table.Rows, dedupeSampleRows), nil))
			}
			fmt.Fprintf(status, "Found %d rows with compound duplicates\n", res.Duplicated)

			rows := res.Kept
			if showRemoved {
				rows = res.Removed
			}
			if err := dataset.Write(cmd.OutOrStdout(), delim, res.Header, rows); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(status, "Total rows: %d\n", res.Total)
			fmt.Fprintf(status, "Removed rows: %d\n", len(res.Removed))
			fmt.Fprintf(status, "Kept rows: %d\n", len(res.Kept))
			if len(res.Removed) > 0 {
				fmt.Fprintln(status, "Examples of removed compound duplicates:")
				fmt.Fprintln(status, renderTable(keys, res.KeyRows(res.Removed, dedupeRemovedRows), nil))
			}
			logger.Debug("dedupe complete",
				logging.FieldPath, args[0],
				"total", res.Total,
				"removed", len(res.Removed),
				"prune", prune,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated key columns")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", `Field delimiter (use "\t" for tab)`)
	cmd.Flags().BoolVar(&prune, "prune", false, "Drop every row whose key repeats, first occurrence included")
	cmd.Flags().BoolVar(&showRemoved, "show-removed", false, "Write the removed rows instead of the kept rows")
	_ = cmd.MarkFlagRequired("columns")
	return cmd
}
