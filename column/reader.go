package column

import (
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/levels"
	"github.com/hardwood-go/parquet/pagereader"
	"github.com/hardwood-go/parquet/parqueterr"
)

// ColumnReader pulls pages from a PageSource and assembles them into
// record-aligned TypedBatches, caching the nested-level computation for
// the current batch so repeated accessor calls don't redo it.
type ColumnReader struct {
	src          PageSource
	name         string
	physicalType format.Type
	typeLength   int
	maxRepLevel  int
	maxDefLevel  int

	batch  TypedBatch
	levels *levels.ColumnLevels

	cur         *pagereader.Page
	curPos      int
	curDenseOff int
}

// NewColumnReader constructs a reader over src for a leaf column with the
// given dotted path name, physical type, and repetition/definition level
// bounds. typeLength is the FIXED_LEN_BYTE_ARRAY element width; unused for
// every other physical type.
func NewColumnReader(src PageSource, name string, physicalType format.Type, typeLength, maxRepLevel, maxDefLevel int) *ColumnReader {
	return &ColumnReader{
		src:          src,
		name:         name,
		physicalType: physicalType,
		typeLength:   typeLength,
		maxRepLevel:  maxRepLevel,
		maxDefLevel:  maxDefLevel,
	}
}

// NextBatch pulls the next TypedBatch of up to maxRecords top-level
// records, stopping early only at chunk exhaustion. It returns false once
// no further records are available.
func (c *ColumnReader) NextBatch(maxRecords int) (bool, error) {
	c.batch = TypedBatch{Values: pagereader.Values{Type: c.physicalType, FixedLenSize: c.typeLength}}
	c.levels = nil

	if c.maxRepLevel == 0 {
		if err := c.fillFlat(maxRecords); err != nil {
			return false, err
		}
	} else {
		if err := c.fillNested(maxRecords); err != nil {
			return false, err
		}
	}

	if c.batch.RecordCount == 0 {
		return false, nil
	}

	switch {
	case c.maxDefLevel > 0:
		c.batch.ValueCount = len(c.batch.DefinitionLevels)
	case c.maxRepLevel > 0:
		c.batch.ValueCount = len(c.batch.RepetitionLevels)
	default:
		c.batch.ValueCount = c.batch.RecordCount
	}
	c.levels = computeLevels(&c.batch, c.maxRepLevel, c.maxDefLevel)
	c.batch.RecordOffsets = c.levels.RecordOffsets
	return true, nil
}

// advance pulls the next page from the source into cur, resetting the
// in-page cursors. Returns false at source exhaustion.
func (c *ColumnReader) advance() (bool, error) {
	if c.src.Done() {
		return false, nil
	}
	p, err := c.src.Next()
	if err != nil {
		if err == parqueterr.ErrExhausted {
			return false, nil
		}
		return false, err
	}
	c.cur = p
	c.curPos = 0
	c.curDenseOff = 0
	return true, nil
}

func (c *ColumnReader) fillFlat(maxRecords int) error {
	for c.batch.RecordCount < maxRecords {
		if c.cur == nil || c.curPos >= c.cur.NumValues {
			ok, err := c.advance()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		remaining := c.cur.NumValues - c.curPos
		need := maxRecords - c.batch.RecordCount
		take := remaining
		if need < take {
			take = need
		}

		var defSlice []int32
		if c.cur.DefinitionLevels != nil {
			defSlice = c.cur.DefinitionLevels[c.curPos : c.curPos+take]
			c.batch.DefinitionLevels = append(c.batch.DefinitionLevels, defSlice...)
		}

		consumed := appendPlacedRange(&c.batch.Values, &c.cur.Values, c.curDenseOff, defSlice, c.maxDefLevel, take)
		c.curDenseOff += consumed
		c.curPos += take
		c.batch.RecordCount += take
	}
	return nil
}

func (c *ColumnReader) fillNested(maxRecords int) error {
	for c.batch.RecordCount < maxRecords {
		if c.cur == nil || c.curPos >= c.cur.NumValues {
			ok, err := c.advance()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		need := maxRecords - c.batch.RecordCount
		cut := -1
		seen := 0
		for i := c.curPos; i < c.cur.NumValues; i++ {
			if c.cur.RepetitionLevels[i] == 0 {
				if i > c.curPos {
					seen++
					if seen == need {
						cut = i
						break
					}
				}
			}
		}
		if cut == -1 {
			cut = c.cur.NumValues
		}

		repSlice := c.cur.RepetitionLevels[c.curPos:cut]
		var defSlice []int32
		if c.cur.DefinitionLevels != nil {
			defSlice = c.cur.DefinitionLevels[c.curPos:cut]
			c.batch.DefinitionLevels = append(c.batch.DefinitionLevels, defSlice...)
		}
		c.batch.RepetitionLevels = append(c.batch.RepetitionLevels, repSlice...)

		nonNull := countNonNull(defSlice, c.maxDefLevel, cut-c.curPos)
		appendDense(&c.batch.Values, &c.cur.Values, c.curDenseOff, nonNull)
		c.curDenseOff += nonNull

		recordsHere := 0
		for _, rl := range repSlice {
			if rl == 0 {
				recordsHere++
			}
		}
		c.batch.RecordCount += recordsHere
		c.curPos = cut
	}
	return nil
}

// GetElementNulls returns the leaf null bitmap for the current batch, or
// nil if no leaf value is null.
func (c *ColumnReader) GetElementNulls() *levels.BitSet {
	if c.levels == nil {
		return nil
	}
	return c.levels.ElementNulls
}

// GetLevelNulls returns the group null bitmap at nesting level k for the
// current batch.
func (c *ColumnReader) GetLevelNulls(k int) (*levels.BitSet, error) {
	if c.maxRepLevel == 0 {
		return nil, &parqueterr.NotNested{Column: c.name}
	}
	if k < 0 || k >= c.maxRepLevel {
		return nil, &parqueterr.NotNested{Column: c.name}
	}
	if c.levels == nil {
		return nil, nil
	}
	return c.levels.LevelNulls[k], nil
}

// GetNestingDepth returns the column's maximum repetition level (R).
func (c *ColumnReader) GetNestingDepth() int { return c.maxRepLevel }

// GetOffsets returns the level-k offset array for the current batch.
func (c *ColumnReader) GetOffsets(k int) ([]int32, error) {
	if c.maxRepLevel == 0 || k < 0 || k >= c.maxRepLevel {
		return nil, &parqueterr.NotNested{Column: c.name}
	}
	if c.levels == nil {
		return nil, nil
	}
	return c.levels.MultiLevelOffsets[k], nil
}

// Batch returns the current TypedBatch.
func (c *ColumnReader) Batch() *TypedBatch { return &c.batch }

func (c *ColumnReader) typeMismatch(want format.Type) error {
	if c.physicalType != want {
		return &parqueterr.TypeMismatch{Column: c.name, Want: want.String(), Have: c.physicalType.String()}
	}
	return nil
}

// GetInts returns the batch's INT32 values.
func (c *ColumnReader) GetInts() ([]int32, error) {
	if err := c.typeMismatch(format.Int32); err != nil {
		return nil, err
	}
	return c.batch.Values.Int32, nil
}

// GetLongs returns the batch's INT64 values.
func (c *ColumnReader) GetLongs() ([]int64, error) {
	if err := c.typeMismatch(format.Int64); err != nil {
		return nil, err
	}
	return c.batch.Values.Int64, nil
}

// GetFloats returns the batch's FLOAT values.
func (c *ColumnReader) GetFloats() ([]float32, error) {
	if err := c.typeMismatch(format.Float); err != nil {
		return nil, err
	}
	return c.batch.Values.Float, nil
}

// GetDoubles returns the batch's DOUBLE values.
func (c *ColumnReader) GetDoubles() ([]float64, error) {
	if err := c.typeMismatch(format.Double); err != nil {
		return nil, err
	}
	return c.batch.Values.Double, nil
}

// GetBooleans returns the batch's BOOLEAN values.
func (c *ColumnReader) GetBooleans() ([]bool, error) {
	if err := c.typeMismatch(format.Boolean); err != nil {
		return nil, err
	}
	return c.batch.Values.Boolean, nil
}

// GetBinaries returns the batch's BYTE_ARRAY values as raw byte slices.
func (c *ColumnReader) GetBinaries() ([][]byte, error) {
	if err := c.typeMismatch(format.ByteArray); err != nil {
		return nil, err
	}
	out := make([][]byte, c.batch.Values.ByteArray.Len())
	for i := range out {
		out[i] = c.batch.Values.ByteArray.At(i)
	}
	return out, nil
}

// GetInt96s returns the batch's deprecated INT96 values as raw 12-byte
// arrays (8 bytes of nanosecond-of-day, 4 bytes of Julian day number).
func (c *ColumnReader) GetInt96s() ([][12]byte, error) {
	if err := c.typeMismatch(format.Int96); err != nil {
		return nil, err
	}
	return c.batch.Values.Int96, nil
}

// GetFixedLen returns the batch's FIXED_LEN_BYTE_ARRAY values as one flat
// slab plus the per-element width; element i occupies
// slab[i*width:(i+1)*width].
func (c *ColumnReader) GetFixedLen() ([]byte, int, error) {
	if err := c.typeMismatch(format.FixedLenByteArray); err != nil {
		return nil, 0, err
	}
	return c.batch.Values.FixedLen, c.batch.Values.FixedLenSize, nil
}

// GetStrings converts the batch's BYTE_ARRAY values to UTF-8 strings. It
// does not consult the null bitmap: on a flat column a null slot already
// holds the empty placeholder written during assembly, so it comes out as
// ""; GetElementNulls tells a true empty string from a null.
func (c *ColumnReader) GetStrings() ([]string, error) {
	if err := c.typeMismatch(format.ByteArray); err != nil {
		return nil, err
	}
	n := c.batch.Values.ByteArray.Len()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = string(c.batch.Values.ByteArray.At(i))
	}
	return out, nil
}
