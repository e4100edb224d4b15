package column_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/column"
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/pagereader"
	"github.com/hardwood-go/parquet/parqueterr"
)

// fakeSource replays a fixed slice of pages, mimicking
// *pagereader.ColumnChunkReader for tests that don't need real wire bytes.
type fakeSource struct {
	pages []*pagereader.Page
	i     int
}

func (f *fakeSource) Done() bool { return f.i >= len(f.pages) }

func (f *fakeSource) Next() (*pagereader.Page, error) {
	if f.Done() {
		return nil, parqueterr.ErrExhausted
	}
	p := f.pages[f.i]
	f.i++
	return p, nil
}

func byteArrayValues(strs ...string) pagereader.Values {
	v := pagereader.Values{Type: format.ByteArray}
	for _, s := range strs {
		v.ByteArray.Append([]byte(s))
	}
	return v
}

// TestFlatOptionalStrings mirrors {id: INT64 REQUIRED, name: BYTE_ARRAY
// OPTIONAL (STRING)} with rows (1,"alice"), (2,NULL), (3,"charlie").
func TestFlatOptionalStrings(t *testing.T) {
	src := &fakeSource{pages: []*pagereader.Page{
		{
			NumValues:        3,
			NonNullCount:     2,
			DefinitionLevels: []int32{1, 0, 1},
			Values:           byteArrayValues("alice", "charlie"),
		},
	}}

	cr := column.NewColumnReader(src, "name", format.ByteArray, 0, 0, 1)
	ok, err := cr.NextBatch(3)
	require.NoError(t, err)
	require.True(t, ok)

	strs, err := cr.GetStrings()
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "", "charlie"}, strs)

	en := cr.GetElementNulls()
	require.NotNil(t, en)
	require.True(t, en.Test(1))
	require.False(t, en.Test(0))
	require.False(t, en.Test(2))

	require.Equal(t, 3, cr.Batch().RecordCount)
	require.Equal(t, 3, cr.Batch().ValueCount)
	require.Nil(t, cr.Batch().RecordOffsets)

	ok, err = cr.NextBatch(3)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFlatRequiredInts(t *testing.T) {
	src := &fakeSource{pages: []*pagereader.Page{
		{NumValues: 3, NonNullCount: 3, Values: pagereader.Values{Type: format.Int64, Int64: []int64{1, 2, 3}}},
	}}

	cr := column.NewColumnReader(src, "id", format.Int64, 0, 0, 0)
	ok, err := cr.NextBatch(3)
	require.NoError(t, err)
	require.True(t, ok)

	longs, err := cr.GetLongs()
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, longs)
	require.Nil(t, cr.GetElementNulls())

	_, err = cr.GetInts()
	require.Error(t, err)
}

func TestFlatFixedLenByteArray(t *testing.T) {
	src := &fakeSource{pages: []*pagereader.Page{
		{NumValues: 2, NonNullCount: 2, Values: pagereader.Values{
			Type: format.FixedLenByteArray, FixedLen: []byte{1, 2, 3, 4, 5, 6, 7, 8}, FixedLenSize: 4,
		}},
	}}

	cr := column.NewColumnReader(src, "id", format.FixedLenByteArray, 4, 0, 0)
	ok, err := cr.NextBatch(2)
	require.NoError(t, err)
	require.True(t, ok)

	slab, width, err := cr.GetFixedLen()
	require.NoError(t, err)
	require.Equal(t, 4, width)
	require.Equal(t, []byte{1, 2, 3, 4}, slab[0:width])
	require.Equal(t, []byte{5, 6, 7, 8}, slab[width:2*width])
}

// TestNestedListOfDoubles mirrors fare_components: LIST<DOUBLE> with rows
// [[1,2],[],NULL,[3]]: R=1, D=2.
func TestNestedListOfDoubles(t *testing.T) {
	src := &fakeSource{pages: []*pagereader.Page{
		{
			NumValues:        5,
			NonNullCount:     3,
			RepetitionLevels: []int32{0, 1, 0, 0, 0},
			DefinitionLevels: []int32{2, 2, 1, 0, 2},
			Values:           pagereader.Values{Type: format.Double, Double: []float64{1, 2, 3}},
		},
	}}

	cr := column.NewColumnReader(src, "fare_components.list.element", format.Double, 0, 1, 2)
	ok, err := cr.NextBatch(4)
	require.NoError(t, err)
	require.True(t, ok)

	doubles, err := cr.GetDoubles()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, doubles)

	require.Equal(t, []int32{0, 2, 2, 2}, cr.Batch().RecordOffsets)
	require.Equal(t, 4, cr.Batch().RecordCount)
	require.Equal(t, 5, cr.Batch().ValueCount)

	offsets, err := cr.GetOffsets(0)
	require.NoError(t, err)
	require.Equal(t, []int32{0, 2, 2, 2}, offsets)

	ln, err := cr.GetLevelNulls(0)
	require.NoError(t, err)
	require.NotNil(t, ln)
	require.True(t, ln.Test(2))
	require.False(t, ln.Test(1))

	require.Equal(t, 1, cr.GetNestingDepth())

	_, err = cr.GetOffsets(1)
	require.Error(t, err)
}

// TestNestedBatchSplitAcrossPages checks that a batch request smaller than
// one page's record count leaves the remainder for the next call.
func TestNestedBatchSplitAcrossPages(t *testing.T) {
	src := &fakeSource{pages: []*pagereader.Page{
		{
			NumValues:        4,
			NonNullCount:     4,
			RepetitionLevels: []int32{0, 1, 0, 0},
			DefinitionLevels: []int32{1, 1, 1, 1},
			Values:           pagereader.Values{Type: format.Int32, Int32: []int32{10, 20, 30, 40}},
		},
	}}

	cr := column.NewColumnReader(src, "xs.list.element", format.Int32, 0, 1, 1)

	ok, err := cr.NextBatch(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, cr.Batch().RecordCount)
	ints, err := cr.GetInts()
	require.NoError(t, err)
	require.Equal(t, []int32{10, 20, 30}, ints)
	require.Equal(t, []int32{0, 2}, cr.Batch().RecordOffsets)

	ok, err = cr.NextBatch(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, cr.Batch().RecordCount)
	ints, err = cr.GetInts()
	require.NoError(t, err)
	require.Equal(t, []int32{40}, ints)
}
