package dataset

import (
	"path/filepath"
	"strconv"
	"strings"

	"mediacat/internal/relation"
)

// PairHeader returns the header row of a relation table.
func PairHeader(kind relation.Kind) []string {
	return []string{"video_id", string(kind) + "_id"}
}

// PairFileName is the conventional file name of a relation table.
func PairFileName(kind relation.Kind) string {
	return "video-" + string(kind) + ".tsv"
}

// NotFoundFileName is the conventional file name of a not-found report.
func NotFoundFileName(kind relation.Kind) string {
	return "video_" + pluralKind(kind) + "_not_found.tsv"
}

func pluralKind(kind relation.Kind) string {
	switch kind {
	case relation.KindActress:
		return "actresses"
	case relation.KindSeries:
		return "series"
	default:
		return string(kind) + "s"
	}
}

// PairRows renders pairs as table rows.
func PairRows(pairs []relation.Pair) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{strconv.Itoa(p.PrimaryID), strconv.Itoa(p.ReferenceID)})
	}
	return rows
}

// WritePairs writes a relation table to dir and returns its path.
func WritePairs(dir string, kind relation.Kind, pairs []relation.Pair) (string, error) {
	path := filepath.Join(dir, PairFileName(kind))
	return path, WriteFile(path, '\t', PairHeader(kind), PairRows(pairs))
}

// NotFoundHeader is the header row of a not-found report.
var NotFoundHeader = []string{"name", "not_found_videos"}

// NotFoundRows renders a sorted report; codes are joined without spaces.
func NotFoundRows(report relation.Report) [][]string {
	rows := make([][]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		rows = append(rows, []string{e.Name, strings.Join(e.Codes, ",")})
	}
	return rows
}

// WriteNotFound writes a not-found report to dir and returns its path. An
// empty report writes nothing and returns "".
func WriteNotFound(dir string, kind relation.Kind, report relation.Report) (string, error) {
	if len(report.Entries) == 0 {
		return "", nil
	}
	path := filepath.Join(dir, NotFoundFileName(kind))
	return path, WriteFile(path, '\t', NotFoundHeader, NotFoundRows(report))
}
