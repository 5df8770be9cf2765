package relate

import (
	"log/slog"

	"mediacat/internal/config"
	"mediacat/internal/dataset"
	"mediacat/internal/logging"
	"mediacat/internal/relation"
	"mediacat/internal/resolve"
)

type referenceSource struct {
	kind      relation.Kind
	path      string
	delim     rune
	secondary string
	target    **resolve.ReferenceIndex
}

type aliasSource struct {
	kind   relation.Kind
	path   string
	target **resolve.AliasIndex
}

func loadIndexes(in Inputs, delims config.Delimiters, summary *Summary, logger *slog.Logger) (relation.Indexes, error) {
	var ix relation.Indexes
	refs := []referenceSource{
		{relation.KindActress, in.Actresses, delims.Reference, dataset.ColumnDisplayName, &ix.Actress},
		{relation.KindGenre, in.Genres, delims.Reference, dataset.ColumnDisplayName, &ix.Genre},
		{relation.KindMaker, in.Makers, delims.Reference, dataset.ColumnDisplayName, &ix.Maker},
		{relation.KindSeries, in.Series, delims.Series, dataset.ColumnRuby, &ix.Series},
	}
	for _, src := range refs {
		records, err := dataset.LoadReferences(src.path, dataset.ReferenceOptions{
			Delimiter:      src.delim,
			SecondaryField: src.secondary,
		})
		if err != nil {
			return ix, err
		}
		index := resolve.BuildReferenceIndex(records)
		*src.target = index
		summary.References[src.kind] = index.DistinctIDs()
		logger.Info("loaded references",
			logging.FieldRelation, string(src.kind),
			logging.FieldPath, src.path,
			"unique_ids", index.DistinctIDs(),
			"names", index.Len(),
		)
		if collisions := index.Collisions(); len(collisions) > 0 {
			summary.Collisions[src.kind] = collisions
			logger.Warn("reference names map to more than one id; last row wins",
				logging.FieldRelation, string(src.kind),
				"collisions", len(collisions),
				"first", collisions[0].Name,
			)
		}
	}

	aliases := []aliasSource{
		{relation.KindMaker, in.MakerAlias, &ix.MakerAlias},
		{relation.KindGenre, in.GenreAlias, &ix.GenreAlias},
		{relation.KindSeries, in.SeriesAlias, &ix.SeriesAlias},
	}
	for _, src := range aliases {
		if src.path == "" {
			continue
		}
		records, err := dataset.LoadAliases(src.path, delims.Alias)
		if err != nil {
			return ix, err
		}
		index := resolve.BuildAliasIndex(records)
		*src.target = index
		summary.Aliases[src.kind] = index.Len()
		logger.Info("loaded aliases", logging.FieldRelation, string(src.kind), logging.FieldPath, src.path, "aliases", index.Len())
	}
	return ix, nil
}
