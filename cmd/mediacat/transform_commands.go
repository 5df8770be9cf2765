package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediacat/internal/dataset"
	"mediacat/internal/dedupe"
	"mediacat/internal/fileutil"
	"mediacat/internal/logging"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Rewrite a delimited file with another delimiter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			fromDelim, err := dataset.ParseDelimiter(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			toDelim, err := dataset.ParseDelimiter(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			in, err := os.Open(args[0])
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("%w: %s", dataset.ErrMissingFile, args[0])
				}
				return err
			}
			defer in.Close()

			var buf bytes.Buffer
			count, err := dataset.Convert(in, &buf, fromDelim, toDelim)
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			if err := fileutil.WriteFileAtomic(args[1], buf.Bytes(), 0o644); err != nil {
				return err
			}
			logging.NewComponentLogger(logger, "convert").Debug("converted file", logging.FieldPath, args[1], "records", count)
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d records to %s\n", count, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", `Input delimiter (e.g. "," or "\t")`)
	cmd.Flags().StringVar(&to, "to", "", `Output delimiter (e.g. "," or "\t")`)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var columns, delimiter string

	cmd := &cobra.Command{
		Use:   "select INPUT OUTPUT",
		Short: "Keep only the named columns of a delimited file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("delimiter") {
				delimiter = cfg.Tables.SeriesDelimiter
			}
			delim, err := dataset.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}
			table, err := dataset.ReadFile(args[0], delim)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(table.Rows) == 0 {
				fmt.Fprintln(out, "No rows found in the input.")
				return nil
			}
			projected, err := table.Select(dedupe.ParseColumns(columns)...)
			if err != nil {
				return err
			}
			if err := dataset.WriteFile(args[1], delim, projected.Header, projected.Rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d rows to %s\n", len(projected.Rows), args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&columns, "columns", "id,series_id,name", "Comma-separated columns to keep, in output order")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "|", "Field delimiter for input and output (default tables.series_delimiter)")
	return cmd
}

func newAddIDCommand(ctx *commandContext) *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "add-id INPUT OUTPUT",
		Short: "Prepend a sequential 1-based id column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("delimiter") {
				delimiter = cfg.Tables.VideoDelimiter
			}
			delim, err := dataset.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}
			table, err := dataset.ReadFile(args[0], delim)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(table.Rows) == 0 {
				fmt.Fprintln(out, "No data found in the input.")
				return nil
			}
			numbered := dataset.AddID(table)
			if err := dataset.WriteFile(args[1], delim, numbered.Header, numbered.Rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d rows with ids to %s\n", len(numbered.Rows), args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", `\t`, "Field delimiter for input and output (default tables.video_delimiter)")
	return cmd
}
