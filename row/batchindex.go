package row

import (
	"github.com/hardwood-go/parquet/column"
)

// BatchIndex borrows the current batch's columns for the lifetime of one
// row batch; every flyweight cursor holds a reference to it rather than
// copying anything out of it.
type BatchIndex struct {
	columns     []*column.ColumnReader
	recordCount int
}

func (idx *BatchIndex) col(c int) *column.ColumnReader { return idx.columns[c] }

// recordStart resolves where column c's record rowIndex begins:
// RecordOffsets[rowIndex] when the column carries offsets (R > 0) — a
// dense value index when R == 1, a level-1 item index when R > 1 — or
// rowIndex directly for a flat column.
func (idx *BatchIndex) recordStart(c, rowIndex int) int {
	off := idx.columns[c].Batch().RecordOffsets
	if off == nil {
		return rowIndex
	}
	return int(off[rowIndex])
}

func (idx *BatchIndex) recordEnd(c, rowIndex int) (int, error) {
	cr := idx.columns[c]
	b := cr.Batch()
	if b.RecordOffsets == nil {
		return rowIndex + 1, nil
	}
	if rowIndex+1 < len(b.RecordOffsets) {
		return int(b.RecordOffsets[rowIndex+1]), nil
	}
	if cr.GetNestingDepth() > 1 {
		next, err := cr.GetOffsets(1)
		if err != nil {
			return 0, err
		}
		return len(next), nil
	}
	return b.Values.Len(), nil
}

// itemRange resolves the [start,end) range of children belonging to item i
// at level of column c's multi-level offsets: a range of dense value
// indices when level is the column's innermost (R-1), otherwise a range
// of item indices at level+1. The last item's end is taken from the next
// level's length, or from the dense value count (Values.Len(), not the raw
// position-stream ValueCount) at the innermost level (spec's "derived from
// the next level's length or valueCount").
func (idx *BatchIndex) itemRange(c, level, i int) (int, int, error) {
	cr := idx.columns[c]
	offs, err := cr.GetOffsets(level)
	if err != nil {
		return 0, 0, err
	}
	start := int(offs[i])
	if i+1 < len(offs) {
		return start, int(offs[i+1]), nil
	}
	if level+1 < cr.GetNestingDepth() {
		next, err := cr.GetOffsets(level + 1)
		if err != nil {
			return 0, 0, err
		}
		return start, len(next), nil
	}
	return start, cr.Batch().Values.Len(), nil
}

func (idx *BatchIndex) levelNull(c, level, i int) (bool, error) {
	if level < 0 {
		return false, nil
	}
	cr := idx.columns[c]
	bits, err := cr.GetLevelNulls(level)
	if err != nil {
		return false, err
	}
	if bits == nil {
		return false, nil
	}
	return bits.Test(i), nil
}

// belowThreshold reports whether dense value index v of column c has a
// definition level below threshold. A column with no definition levels
// at all (maxDefLevel == 0) can never be below any threshold.
func (idx *BatchIndex) belowThreshold(c, v, threshold int) bool {
	b := idx.columns[c].Batch()
	if b.DefinitionLevels == nil {
		return false
	}
	return int(b.DefinitionLevels[v]) < threshold
}

func (idx *BatchIndex) elementNull(c, v int) bool {
	bits := idx.columns[c].GetElementNulls()
	if bits == nil {
		return false
	}
	return bits.Test(v)
}
