package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mediacat/internal/relate"
	"mediacat/internal/relation"
)

const previewSampleCodes = 3

func newRelateCommand(ctx *commandContext) *cobra.Command {
	var (
		makerAlias   string
		genreAlias   string
		seriesAlias  string
		createVideos bool
		videoOutput  string
		outDir       string
		sqlitePath   string
		previewLimit int
	)

	cmd := &cobra.Command{
		Use:   "relate VIDEOS ACTRESSES GENRES MAKERS SERIES",
		Short: "Build video relationship tables by resolving names to reference ids",
		Long: "Resolve the actress, genre, maker and series names of every video to reference ids.\n" +
			"Writes video-<kind>.tsv pair tables and video_<kinds>_not_found.tsv reports to the output directory.",
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			if strings.TrimSpace(outDir) == "" {
				outDir = cfg.Paths.OutputDir
			}
			if !cmd.Flags().Changed("preview-limit") {
				previewLimit = cfg.Report.PreviewLimit
			}
			opts := relate.Options{
				Delimiters: cfg.Delimiters(),
				OutputDir:  outDir,
				SQLitePath: strings.TrimSpace(sqlitePath),
				RunID:      ctx.runID(),
			}
			if createVideos {
				opts.VideoOutput = strings.TrimSpace(videoOutput)
				if opts.VideoOutput == "" {
					opts.VideoOutput = relate.DefaultVideoOutput(outDir)
				}
			}

			summary, err := relate.Run(cmd.Context(), relate.Inputs{
				Videos:      args[0],
				Actresses:   args[1],
				Genres:      args[2],
				Makers:      args[3],
				Series:      args[4],
				MakerAlias:  strings.TrimSpace(makerAlias),
				GenreAlias:  strings.TrimSpace(genreAlias),
				SeriesAlias: strings.TrimSpace(seriesAlias),
			}, opts, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, kind := range relation.Kinds {
				printNotFound(out, kind, summary, previewLimit, colorize)
			}
			printRelateSummary(out, summary, colorize)
			return nil
		},
	}

	cmd.Flags().StringVar(&makerAlias, "maker-alias", "", "Optional maker alias table (name, alias, alias_id)")
	cmd.Flags().StringVar(&genreAlias, "genre-alias", "", "Optional genre alias table (name, alias, alias_id)")
	cmd.Flags().StringVar(&seriesAlias, "series-alias", "", "Optional series alias table (name, alias, alias_id)")
	cmd.Flags().BoolVar(&createVideos, "create-video-dataset", false, "Also write the normalized video dataset")
	cmd.Flags().StringVar(&videoOutput, "video-output", "", "Video dataset path (default <out-dir>/videos.tsv)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (default paths.output_dir)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also export every table into this SQLite database")
	cmd.Flags().IntVar(&previewLimit, "preview-limit", 20, "Unresolved names shown per relation (0 shows all)")
	return cmd
}

func printNotFound(out io.Writer, kind relation.Kind, summary *relate.Summary, limit int, colorize bool) {
	report := summary.Report(kind)
	if len(report.Entries) == 0 {
		return
	}
	if limit <= 0 {
		limit = len(report.Entries)
	}
	entries, hidden := report.Preview(limit)

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderSectionHeader(strings.ToUpper(string(kind))+" NOT FOUND", colorize))
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			entry.Name,
			strconv.Itoa(entry.Count()),
			sampleCodes(entry.Codes),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Name", "Videos", "Codes"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	))
	if hidden > 0 {
		fmt.Fprintf(out, "... and %d more %s not shown\n", hidden, plural(hidden, "name", "names"))
	}
	if path := summary.NotFoundFiles[kind]; path != "" {
		fmt.Fprintf(out, "Complete %s list saved to: %s\n", kind, path)
	}
}

func sampleCodes(codes []string) string {
	if len(codes) <= previewSampleCodes {
		return strings.Join(codes, ", ")
	}
	return fmt.Sprintf("%s... and %d more", strings.Join(codes[:previewSampleCodes], ", "), len(codes)-previewSampleCodes)
}

func printRelateSummary(out io.Writer, summary *relate.Summary, colorize bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderSectionHeader("FINAL RESULTS", colorize))
	rows := make([][]string, 0, len(relation.Kinds)+1)
	for _, kind := range relation.Kinds {
		table := summary.Result.Table(kind)
		rows = append(rows, []string{
			string(kind),
			strconv.Itoa(summary.References[kind]),
			strconv.Itoa(len(table.Pairs)),
			strconv.Itoa(table.Unresolved.Occurrences()),
			filepath.Base(summary.PairFiles[kind]),
		})
	}
	rows = append(rows, []string{"total", "", strconv.Itoa(summary.Result.TotalPairs()), "", ""})
	fmt.Fprintln(out, renderTable(
		[]string{"Relation", "References", "Pairs", "Unresolved", "File"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "Videos processed: %d\n", summary.Result.Records)
	if dir := outputDir(summary); dir != "" {
		fmt.Fprintf(out, "Output directory: %s\n", dir)
	}
	if summary.VideoDataset != "" {
		fmt.Fprintf(out, "Video dataset: %s (%d videos)\n", summary.VideoDataset, summary.VideoRows)
	}
	if summary.SQLitePath != "" {
		fmt.Fprintf(out, "SQLite export: %s\n", summary.SQLitePath)
	}
}

func outputDir(summary *relate.Summary) string {
	if path := summary.PairFiles[relation.KindActress]; path != "" {
		return filepath.Dir(path)
	}
	return ""
}
