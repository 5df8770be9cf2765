package relate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"mediacat/internal/config"
	"mediacat/internal/dataset"
	"mediacat/internal/fileutil"
	"mediacat/internal/logging"
	"mediacat/internal/relation"
	"mediacat/internal/resolve"
	"mediacat/internal/store"
)

// Inputs names the files a run reads. Alias paths are optional.
type Inputs struct {
	Videos      string
	Actresses   string
	Genres      string
	Makers      string
	Series      string
	MakerAlias  string
	GenreAlias  string
	SeriesAlias string
}

// Options controls where a run writes.
type Options struct {
	Delimiters config.Delimiters
	OutputDir  string
	// VideoOutput, when set, receives the normalized video dataset.
	VideoOutput string
	// SQLitePath, when set, receives an export of every table.
	SQLitePath string
	RunID      string
}

// Summary describes a completed run.
type Summary struct {
	References    map[relation.Kind]int
	Aliases       map[relation.Kind]int
	Collisions    map[relation.Kind][]resolve.Collision
	Result        *relation.Result
	PairFiles     map[relation.Kind]string
	NotFoundFiles map[relation.Kind]string
	VideoDataset  string
	VideoRows     int
	SQLitePath    string
}

// Report returns the sorted not-found report for kind.
func (s *Summary) Report(kind relation.Kind) relation.Report {
	return relation.NewReport(s.Result.Table(kind).Unresolved)
}

func (in Inputs) validate() error {
	var missing []string
	for name, value := range map[string]string{
		"videos":    in.Videos,
		"actresses": in.Actresses,
		"genres":    in.Genres,
		"makers":    in.Makers,
		"series":    in.Series,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing input paths: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Run executes the batch.
func Run(ctx context.Context, in Inputs, opts Options, logger *slog.Logger) (*Summary, error) {
	logger = logging.NewComponentLogger(logger, "relate")
	if err := in.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, errors.New("output directory required")
	}
	if err := fileutil.CheckWritable(opts.OutputDir); err != nil {
		return nil, err
	}
	lock, err := fileutil.LockDir(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release output lock", logging.Error(err))
		}
	}()

	summary := &Summary{
		References:    make(map[relation.Kind]int, len(relation.Kinds)),
		Aliases:       make(map[relation.Kind]int),
		Collisions:    make(map[relation.Kind][]resolve.Collision),
		PairFiles:     make(map[relation.Kind]string, len(relation.Kinds)),
		NotFoundFiles: make(map[relation.Kind]string),
	}

	ix, err := loadIndexes(in, opts.Delimiters, summary, logger)
	if err != nil {
		return nil, err
	}

	videoTable, err := dataset.ReadFile(in.Videos, opts.Delimiters.Video)
	if err != nil {
		return nil, err
	}
	records, err := dataset.VideosFromTable(videoTable)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded videos", logging.FieldPath, in.Videos, "records", len(records))

	if opts.VideoOutput != "" {
		videos := dataset.BuildVideoDataset(videoTable, ix)
		if err := dataset.WriteFile(opts.VideoOutput, '\t', videos.Header, videos.Rows); err != nil {
			return nil, fmt.Errorf("write video dataset: %w", err)
		}
		summary.VideoDataset = opts.VideoOutput
		summary.VideoRows = len(videos.Rows)
		logger.Info("wrote video dataset", logging.FieldPath, opts.VideoOutput, "videos", len(videos.Rows))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := relation.Extract(records, ix)
	summary.Result = result

	for _, kind := range relation.Kinds {
		table := result.Table(kind)
		path, err := dataset.WritePairs(opts.OutputDir, kind, table.Pairs)
		if err != nil {
			return nil, fmt.Errorf("write %s relationships: %w", kind, err)
		}
		summary.PairFiles[kind] = path
		logger.Info("wrote relationships",
			logging.FieldRelation, string(kind),
			logging.FieldPath, path,
			"pairs", len(table.Pairs),
			"tokens", table.Tokens,
			"unresolved", table.Unresolved.Occurrences(),
		)
		for step, n := range table.Steps {
			logger.Debug("resolution step", logging.FieldRelation, string(kind), "step", step.String(), "count", n)
		}

		notFound, err := dataset.WriteNotFound(opts.OutputDir, kind, summary.Report(kind))
		if err != nil {
			return nil, fmt.Errorf("write %s not-found report: %w", kind, err)
		}
		if notFound != "" {
			summary.NotFoundFiles[kind] = notFound
		}
	}

	if opts.SQLitePath != "" {
		if err := export(ctx, opts.SQLitePath, opts.RunID, result); err != nil {
			return nil, err
		}
		summary.SQLitePath = opts.SQLitePath
		logger.Info("exported sqlite", logging.FieldPath, opts.SQLitePath)
	}
	return summary, nil
}

func export(ctx context.Context, path, runID string, result *relation.Result) error {
	if runID == "" {
		runID = uuid.NewString()
	}
	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Write(ctx, runID, result); err != nil {
		return fmt.Errorf("export sqlite: %w", err)
	}
	return nil
}

// DefaultVideoOutput is the video dataset path used when none is given.
func DefaultVideoOutput(outputDir string) string {
	return filepath.Join(outputDir, "videos.tsv")
}
