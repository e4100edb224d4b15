// Package column assembles decoded pages from a single column chunk into
// typed, record-aligned batches, and exposes the public per-column reader
// API used by both the flat and nested row-reading paths.
package column

import (
	"github.com/hardwood-go/parquet/levels"
	"github.com/hardwood-go/parquet/pagereader"
)

// TypedBatch is one assembled chunk of a column's values, spanning exactly
// RecordCount top-level records.
//
// For a flat column (MaxRepetitionLevel == 0), Values is placed: one slot
// per record, with null records left at the physical type's zero value
// (the corresponding ElementNulls bit, available from the owning
// ColumnReader, is how a caller tells a real zero from a null). ValueCount
// == RecordCount and RecordOffsets is nil.
//
// For a nested column, Values is dense: one slot per leaf value actually
// present (nulls and empty groups contribute no slot at all), and
// RecordOffsets is level 0 of the column's multi-level offsets. When
// MaxRepetitionLevel == 1, RecordOffsets[i] is the index into this dense
// array where record i's values begin; when it is greater than 1,
// RecordOffsets[i] is record i's first level-1 item index, and the dense
// value index is reached through the deeper levels of GetOffsets.
// DefinitionLevels/RepetitionLevels carry every encoded position (one per
// Dremel entry, length ValueCount), which may exceed the dense value
// count.
type TypedBatch struct {
	Values           pagereader.Values
	DefinitionLevels []int32
	RepetitionLevels []int32
	RecordOffsets    []int32
	RecordCount      int
	ValueCount       int
}

// PageSource is the page-producing dependency a ColumnReader assembles
// from; *pagereader.ColumnChunkReader satisfies it.
type PageSource interface {
	Next() (*pagereader.Page, error)
	Done() bool
}

// computeLevels runs the nested-level computer over one batch's full level
// streams. Safe to call for flat batches too (R == 0 short-circuits to
// just ElementNulls).
func computeLevels(b *TypedBatch, r, d int) *levels.ColumnLevels {
	return levels.Compute(b.RepetitionLevels, b.DefinitionLevels, b.RecordCount, r, d)
}
