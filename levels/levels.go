// Package levels turns a page's flat repetition/definition level streams
// into the per-record, per-group-level structure a column assembler needs:
// which leaf positions are null, where each record's values start and end,
// and, for a repeated leaf nested R levels deep, the offset/null bitmaps for
// every intermediate group level.
//
// The teacher repo assembles nested values with a tree-walking
// RecordAssembler instead of a flat offsets model, so nothing here is
// ported from it directly; the algorithm follows the flat repetition/
// definition level bookkeeping described for this reader's column layer.
package levels

// ColumnLevels is the decoded level structure for one leaf column over some
// run of input rows.
type ColumnLevels struct {
	// ElementNulls has one bit per input position (len(defLevels)), set
	// where the leaf value at that position is null. Nil when the leaf
	// can never be null (MaxDefinitionLevel == 0, or no position is
	// ever actually null).
	ElementNulls *BitSet

	// MultiLevelOffsets[k] holds one entry per item at nesting level k,
	// for k in [0, R). Nil when R == 0. Each entry is the start index
	// into the next finer-grained structure: for k < R-1, the start
	// index into MultiLevelOffsets[k+1]; for k == R-1, the start index
	// into the column's dense (non-null-only) leaf value array.
	MultiLevelOffsets [][]int32

	// LevelNulls[k] has one bit per item at level k, set where that
	// group is null (as opposed to merely empty). Entry k is nil if no
	// item at that level is ever null.
	LevelNulls []*BitSet

	// RecordOffsets is MultiLevelOffsets[0], one entry per record: the
	// record's first dense value index when R == 1, or its first level-1
	// item index when R > 1 (not a value index). Nil when R == 0.
	RecordOffsets []int32
}

// threshold is the definition-level cutoff marking a level-k group as
// present at all (as opposed to null). The last R definition-level slots
// correspond to the repeated ancestors, outermost to innermost, so the
// level-k boundary is null when its definition level falls short of the
// k-th slot in that run.
func threshold(maxDefLevel, r, k int) int {
	return maxDefLevel - r + k
}

// Compute derives a ColumnLevels from one column's flat repetition and
// definition level arrays. repLevels is nil when r == 0; defLevels is nil
// when d == 0. recordCount is the number of top-level records the caller
// expects (from the page/row-group row count), independent of how many of
// them produced a leaf position.
func Compute(repLevels, defLevels []int32, recordCount, r, d int) *ColumnLevels {
	cl := &ColumnLevels{}

	if r == 0 {
		if d > 0 {
			cl.ElementNulls = buildElementNulls(defLevels, d)
		}
		return cl
	}

	// For a repeated column, defLevel < maxDefLevel almost always means
	// some ancestor group is null or empty, not that the leaf itself (at
	// an otherwise fully-present path) is null; that per-group nullity
	// is what LevelNulls reports. Telling a genuinely optional leaf
	// apart from that would need the leaf's own definition-level
	// contribution separately from its ancestors', which Compute's
	// inputs don't carry, so ElementNulls is left unset for nested
	// columns.

	if r == 1 {
		computeFastPath(cl, repLevels, defLevels, recordCount, d)
	} else {
		computeGeneral(cl, repLevels, defLevels, d, r)
	}
	cl.RecordOffsets = cl.MultiLevelOffsets[0]
	return cl
}

func buildElementNulls(defLevels []int32, d int) *BitSet {
	bs := NewBitSet(len(defLevels))
	any := false
	for i, lvl := range defLevels {
		if int(lvl) < d {
			bs.Set(i)
			any = true
		}
	}
	if !any {
		return nil
	}
	return bs
}

// computeFastPath handles the common R==1 case with a single scan: every
// position with repLevels[i] == 0 starts a new record, and the record's
// only level (0) is simultaneously the leaf level, so its offset is the
// count of dense leaf values produced so far.
func computeFastPath(cl *ColumnLevels, repLevels, defLevels []int32, recordCount, d int) {
	offsets := make([]int32, 0, recordCount)
	nullFlags := make([]bool, 0, recordCount)
	any := false
	dense := int32(0)

	thresh := threshold(d, 1, 0)
	for i, rl := range repLevels {
		if rl == 0 {
			offsets = append(offsets, dense)
			null := int(defLevels[i]) < thresh
			nullFlags = append(nullFlags, null)
			any = any || null
		}
		if int(defLevels[i]) == d {
			dense++
		}
	}

	cl.MultiLevelOffsets = [][]int32{offsets}
	cl.LevelNulls = []*BitSet{nil}
	if any {
		bs := NewBitSet(len(nullFlags))
		for i, n := range nullFlags {
			if n {
				bs.Set(i)
			}
		}
		cl.LevelNulls[0] = bs
	}
}

// computeGeneral handles R>1 with the two-pass algorithm: pass one counts
// how many items land at each nesting level, pass two fills each level's
// offsets (and null flags) by walking positions in order and, for every
// level from the position's own repetition level down to the leaf level,
// starting a new item.
func computeGeneral(cl *ColumnLevels, repLevels, defLevels []int32, d, r int) {
	counts := make([]int, r)
	for _, rl := range repLevels {
		for k := int(rl); k < r; k++ {
			counts[k]++
		}
	}

	offsets := make([][]int32, r)
	nullFlags := make([][]bool, r)
	for k := 0; k < r; k++ {
		offsets[k] = make([]int32, 0, counts[k])
		nullFlags[k] = make([]bool, 0, counts[k])
	}

	itemCounts := make([]int, r)
	anyNull := make([]bool, r)
	dense := int32(0)

	for i, rl := range repLevels {
		start := int(rl)
		dl := int(defLevels[i])
		for k := start; k < r; k++ {
			if k == r-1 {
				offsets[k] = append(offsets[k], dense)
			} else {
				offsets[k] = append(offsets[k], int32(itemCounts[k+1]))
			}
			null := dl < threshold(d, r, k)
			nullFlags[k] = append(nullFlags[k], null)
			anyNull[k] = anyNull[k] || null
			itemCounts[k]++
		}
		if dl == d {
			dense++
		}
	}

	levelNulls := make([]*BitSet, r)
	for k := 0; k < r; k++ {
		if !anyNull[k] {
			continue
		}
		bs := NewBitSet(len(nullFlags[k]))
		for i, n := range nullFlags[k] {
			if n {
				bs.Set(i)
			}
		}
		levelNulls[k] = bs
	}

	cl.MultiLevelOffsets = offsets
	cl.LevelNulls = levelNulls
}
