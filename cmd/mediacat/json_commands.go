package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediacat/internal/dataset"
	"mediacat/internal/fetch"
	"mediacat/internal/jsonconv"
	"mediacat/internal/logging"
)

func newJSON2CSVCommand(ctx *commandContext) *cobra.Command {
	var (
		key       string
		addID     bool
		delimiter string
	)

	cmd := &cobra.Command{
		Use:   "json2csv INPUT OUTPUT",
		Short: `Flatten {"<key>": [objects]} into a delimited file`,
		Long: "Columns follow the keys of the first object in document order; list_url is dropped.\n" +
			"With --add-id a sequential id replaces any id field of the source.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			delim, err := dataset.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("%w: %s", dataset.ErrMissingFile, args[0])
				}
				return err
			}

			out := cmd.OutOrStdout()
			table, err := jsonconv.Convert(data, key, jsonconv.Options{AddID: addID})
			if errors.Is(err, jsonconv.ErrNoItems) {
				fmt.Fprintf(out, "No %s found in the input JSON.\n", key)
				return nil
			}
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			if err := dataset.WriteFile(args[1], delim, table.Header, table.Rows); err != nil {
				return err
			}
			logging.NewComponentLogger(logger, "json2csv").Debug("flattened json",
				logging.FieldPath, args[1], "rows", len(table.Rows), "columns", len(table.Header))
			fmt.Fprintf(out, "CSV written to %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", `Top-level key holding the item array (e.g. "maker" or "series")`)
	cmd.Flags().BoolVar(&addID, "add-id", false, "Prepend a sequential 1-based id column")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "Output field delimiter")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newFetchSeriesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-series OUTPUT",
		Short: "Download the full series catalog to a JSON file",
		Long: "Pages through the DMM SeriesSearch API until an empty page or an error response\n" +
			"and writes {\"series\": [...]} to OUTPUT. Credentials come from [dmm] or APP_ID/AFFILIATE_ID.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDMMCredentials(); err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			client, err := fetch.New(cfg.DMM.AppID, cfg.DMM.AffiliateID, cfg.DMM.BaseURL,
				fetch.WithLogger(logger),
				fetch.WithFloorID(cfg.DMM.FloorID),
				fetch.WithHits(cfg.DMM.Hits),
				fetch.WithTimeout(time.Duration(cfg.DMM.TimeoutSeconds)*time.Second),
			)
			if err != nil {
				return err
			}
			items, err := client.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			output := strings.TrimSpace(args[0])
			if err := fetch.WriteJSONFile(output, "series", items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d series to %s\n", len(items), output)
			return nil
		},
	}
	return cmd
}
