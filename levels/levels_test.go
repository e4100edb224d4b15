package levels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeFlatColumn(t *testing.T) {
	// Flat optional column: four records, the third is null.
	defLevels := []int32{1, 1, 0, 1}
	cl := Compute(nil, defLevels, 4, 0, 1)
	require.Nil(t, cl.MultiLevelOffsets)
	require.Nil(t, cl.RecordOffsets)
	require.NotNil(t, cl.ElementNulls)
	require.True(t, cl.ElementNulls.Test(2))
	require.False(t, cl.ElementNulls.Test(0))
}

func TestComputeFlatColumnNoNulls(t *testing.T) {
	defLevels := []int32{1, 1, 1}
	cl := Compute(nil, defLevels, 3, 0, 1)
	require.Nil(t, cl.ElementNulls)
}

// TestComputeListOfDoubles mirrors a LIST<DOUBLE> column with rows
// [[1,2], [], NULL, [3]]: four records, R=1, D=2 (0 = list null, 1 = list
// present but empty, 2 = element present).
func TestComputeListOfDoubles(t *testing.T) {
	repLevels := []int32{0, 1, 0, 0, 0}
	defLevels := []int32{2, 2, 1, 0, 2}

	cl := Compute(repLevels, defLevels, 4, 1, 2)

	require.Len(t, cl.MultiLevelOffsets, 1)
	require.Equal(t, []int32{0, 2, 2, 2}, cl.MultiLevelOffsets[0])
	require.Equal(t, cl.MultiLevelOffsets[0], cl.RecordOffsets)

	require.Nil(t, cl.ElementNulls)

	require.Len(t, cl.LevelNulls, 1)
	require.NotNil(t, cl.LevelNulls[0])
	require.True(t, cl.LevelNulls[0].Test(2))
	require.False(t, cl.LevelNulls[0].Test(1))
	require.False(t, cl.LevelNulls[0].Test(0))
	require.False(t, cl.LevelNulls[0].Test(3))
}

// TestComputeNestedListOfInts mirrors a LIST<LIST<INT32>> column with rows
// [[[1,2],[3]], [[4]]]: two records, R=2, D=2, no nulls.
func TestComputeNestedListOfInts(t *testing.T) {
	repLevels := []int32{0, 2, 1, 0}
	defLevels := []int32{2, 2, 2, 2}

	cl := Compute(repLevels, defLevels, 2, 2, 2)

	require.Len(t, cl.MultiLevelOffsets, 2)
	require.Equal(t, []int32{0, 2}, cl.MultiLevelOffsets[0])
	require.Equal(t, []int32{0, 2, 3}, cl.MultiLevelOffsets[1])
	require.Equal(t, cl.MultiLevelOffsets[0], cl.RecordOffsets)

	for _, bs := range cl.LevelNulls {
		require.Nil(t, bs)
	}
}

func TestBitSet(t *testing.T) {
	bs := NewBitSet(130)
	require.False(t, bs.Any())
	bs.Set(0)
	bs.Set(129)
	require.True(t, bs.Test(0))
	require.True(t, bs.Test(129))
	require.False(t, bs.Test(1))
	require.True(t, bs.Any())
	require.Equal(t, 130, bs.Len())
}
