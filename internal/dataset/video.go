package dataset

import (
	"strconv"
	"strings"

	"mediacat/internal/relation"
)

// VideoDatasetColumns is the layout of the normalized video table.
var VideoDatasetColumns = []string{
	"id",
	"code",
	"dmm_id",
	"title",
	"label",
	"release_date",
	"length",
	"description",
	"maker_id",
	"series_id",
}

// BuildVideoDataset renumbers the source video rows from 1 and attaches
// resolved maker and series IDs. Unresolved IDs are left empty.
func BuildVideoDataset(src *Table, ix relation.Indexes) *Table {
	out := NewTable(VideoDatasetColumns)
	out.Rows = make([][]string, 0, len(src.Rows))
	for i, row := range src.Rows {
		cell := func(name string) string {
			return strings.TrimSpace(src.Value(row, name))
		}
		makerID := ""
		if id, ok := relation.ResolveSingle(cell(ColumnMakers), ix.Maker, ix.MakerAlias); ok {
			makerID = strconv.Itoa(id)
		}
		seriesID := ""
		if id, ok := relation.ResolveSingle(cell(ColumnSeries), ix.Series, ix.SeriesAlias); ok {
			seriesID = strconv.Itoa(id)
		}
		out.Rows = append(out.Rows, []string{
			strconv.Itoa(i + 1),
			cell(ColumnDisplayID),
			cell("dmm_id"),
			cell("title"),
			cell("label"),
			cell("release_date"),
			cell("length"),
			cell("description"),
			makerID,
			seriesID,
		})
	}
	return out
}
