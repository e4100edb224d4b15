package row_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/column"
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/pagereader"
	"github.com/hardwood-go/parquet/parqueterr"
	"github.com/hardwood-go/parquet/row"
	"github.com/hardwood-go/parquet/schema"
)

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

func sourceFromNode(pages map[string][]*pagereader.Page) func(*schema.Node) column.PageSource {
	return func(n *schema.Node) column.PageSource {
		return &fakeSource{pages: pages[n.Name]}
	}
}

// TestFlatFastPath mirrors {id: INT64 REQUIRED, name: BYTE_ARRAY OPTIONAL}
// with rows (1,"alice"), (2,NULL), (3,"charlie").
func TestFlatFastPath(t *testing.T) {
	idLeaf := &schema.Node{Name: "id", Kind: schema.Primitive, PhysicalType: format.Int64}
	nameLeaf := &schema.Node{Name: "name", Kind: schema.Primitive, PhysicalType: format.ByteArray, MaxDefinitionLevel: 1}
	root := &schema.Node{Children: []*schema.Node{idLeaf, nameLeaf}}

	pages := map[string][]*pagereader.Page{
		"id":   {{NumValues: 3, NonNullCount: 3, Values: pagereader.Values{Type: format.Int64, Int64: []int64{1, 2, 3}}}},
		"name": {{NumValues: 3, NonNullCount: 2, DefinitionLevels: []int32{1, 0, 1}, Values: byteArrayValues("alice", "charlie")}},
	}

	rr, err := row.NewRowReader(root, []string{"id", "name"}, 3, sourceFromNode(pages))
	require.NoError(t, err)
	require.True(t, rr.Flat())

	var ids []int64
	var names []string
	var nils []bool
	for {
		ok, err := rr.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		id, null, err := rr.GetLong("id")
		require.NoError(t, err)
		require.False(t, null)
		ids = append(ids, id)

		name, null, err := rr.GetString("name")
		require.NoError(t, err)
		names = append(names, name)
		nils = append(nils, null)
	}

	require.Equal(t, []int64{1, 2, 3}, ids)
	require.Equal(t, []string{"alice", "", "charlie"}, names)
	require.Equal(t, []bool{false, true, false}, nils)

	_, err = rr.GetLong("missing")
	require.Error(t, err)
}

// TestGetUUID mirrors a FIXED_LEN_BYTE_ARRAY(16) column annotated UUID.
func TestGetUUID(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	idLeaf := &schema.Node{
		Name: "id", Kind: schema.Primitive, PhysicalType: format.FixedLenByteArray, TypeLength: 16,
		LogicalType: &format.LogicalType{UUID: &struct{}{}},
	}
	root := &schema.Node{Children: []*schema.Node{idLeaf}}

	slab := append(append([]byte{}, id1[:]...), id2[:]...)
	pages := map[string][]*pagereader.Page{
		"id": {{
			NumValues: 2, NonNullCount: 2,
			Values: pagereader.Values{Type: format.FixedLenByteArray, FixedLen: slab, FixedLenSize: 16},
		}},
	}

	rr, err := row.NewRowReader(root, []string{"id"}, 2, sourceFromNode(pages))
	require.NoError(t, err)

	ok, err := rr.Next()
	require.NoError(t, err)
	require.True(t, ok)
	v, null, err := rr.GetUUID("id")
	require.NoError(t, err)
	require.False(t, null)
	require.Equal(t, id1, v)

	ok, err = rr.Next()
	require.NoError(t, err)
	require.True(t, ok)
	v, null, err = rr.GetUUID("id")
	require.NoError(t, err)
	require.False(t, null)
	require.Equal(t, id2, v)
}

// TestGetInt96Time mirrors a legacy INT96 timestamp column.
func TestGetInt96Time(t *testing.T) {
	tsLeaf := &schema.Node{Name: "ts", Kind: schema.Primitive, PhysicalType: format.Int96}
	root := &schema.Node{Children: []*schema.Node{tsLeaf}}

	var raw [12]byte
	binary.LittleEndian.PutUint64(raw[0:8], 0)
	binary.LittleEndian.PutUint32(raw[8:12], 2440588) // 1970-01-01

	pages := map[string][]*pagereader.Page{
		"ts": {{NumValues: 1, NonNullCount: 1, Values: pagereader.Values{Type: format.Int96, Int96: [][12]byte{raw}}}},
	}

	rr, err := row.NewRowReader(root, []string{"ts"}, 1, sourceFromNode(pages))
	require.NoError(t, err)

	ok, err := rr.Next()
	require.NoError(t, err)
	require.True(t, ok)

	got, null, err := rr.GetInt96Time("ts")
	require.NoError(t, err)
	require.False(t, null)
	require.True(t, got.Equal(time.Unix(0, 0).UTC()))
}

// TestNestedListOfDoubles mirrors fare_components: LIST<DOUBLE> with rows
// [[1,2],[],NULL,[3]] (worked scenario C).
func TestNestedListOfDoubles(t *testing.T) {
	elemLeaf := &schema.Node{Name: "element", Kind: schema.Primitive, PhysicalType: format.Double, MaxRepetitionLevel: 1, MaxDefinitionLevel: 2}
	listGroup := &schema.Node{Name: "list", MaxRepetitionLevel: 1, MaxDefinitionLevel: 2, Children: []*schema.Node{elemLeaf}}
	fareComponents := &schema.Node{Name: "fare_components", Kind: schema.List, MaxDefinitionLevel: 1, Children: []*schema.Node{listGroup}}
	root := &schema.Node{Children: []*schema.Node{fareComponents}}

	pages := map[string][]*pagereader.Page{
		"element": {{
			NumValues:        5,
			NonNullCount:     3,
			RepetitionLevels: []int32{0, 1, 0, 0, 0},
			DefinitionLevels: []int32{2, 2, 1, 0, 2},
			Values:           pagereader.Values{Type: format.Double, Double: []float64{1, 2, 3}},
		}},
	}

	rr, err := row.NewRowReader(root, []string{"fare_components"}, 4, sourceFromNode(pages))
	require.NoError(t, err)
	require.False(t, rr.Flat())

	var lens []int
	var nulls []bool
	var all [][]float64
	for {
		ok, err := rr.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		lc, err := rr.GetList("fare_components")
		require.NoError(t, err)
		null, err := lc.IsNull()
		require.NoError(t, err)
		nulls = append(nulls, null)
		lens = append(lens, lc.Len())

		var row []float64
		for i := 0; i < lc.Len(); i++ {
			v, null, err := lc.GetDouble(i)
			require.NoError(t, err)
			require.False(t, null)
			row = append(row, v)
		}
		all = append(all, row)
	}

	require.Equal(t, []int{2, 0, 0, 1}, lens)
	require.Equal(t, []bool{false, false, true, false}, nulls)
	require.Equal(t, [][]float64{{1, 2}, nil, nil, {3}}, all)
}

// TestNestedListOfLists mirrors matrix: LIST<LIST<INT32>> with rows
// [[[1,2],[3]], [[4]]] (worked scenario D).
func TestNestedListOfLists(t *testing.T) {
	innerElem := &schema.Node{Name: "element", Kind: schema.Primitive, PhysicalType: format.Int32, MaxRepetitionLevel: 2, MaxDefinitionLevel: 2}
	innerList := &schema.Node{Name: "list", MaxRepetitionLevel: 2, MaxDefinitionLevel: 2, Children: []*schema.Node{innerElem}}
	outerElem := &schema.Node{Name: "element", Kind: schema.List, MaxRepetitionLevel: 1, MaxDefinitionLevel: 1, Children: []*schema.Node{innerList}}
	outerList := &schema.Node{Name: "list", MaxRepetitionLevel: 1, MaxDefinitionLevel: 1, Children: []*schema.Node{outerElem}}
	matrix := &schema.Node{Name: "matrix", Kind: schema.List, Children: []*schema.Node{outerList}}
	root := &schema.Node{Children: []*schema.Node{matrix}}

	pages := map[string][]*pagereader.Page{
		"element": {{
			NumValues:        4,
			NonNullCount:     4,
			RepetitionLevels: []int32{0, 2, 1, 0},
			DefinitionLevels: []int32{2, 2, 2, 2},
			Values:           pagereader.Values{Type: format.Int32, Int32: []int32{1, 2, 3, 4}},
		}},
	}

	rr, err := row.NewRowReader(root, []string{"matrix"}, 2, sourceFromNode(pages))
	require.NoError(t, err)

	var rows [][][]int32
	for {
		ok, err := rr.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		outer, err := rr.GetList("matrix")
		require.NoError(t, err)

		var record [][]int32
		for i := 0; i < outer.Len(); i++ {
			inner, err := outer.GetList(i)
			require.NoError(t, err)
			var sub []int32
			for j := 0; j < inner.Len(); j++ {
				v, null, err := inner.GetInt(j)
				require.NoError(t, err)
				require.False(t, null)
				sub = append(sub, v)
			}
			record = append(record, sub)
		}
		rows = append(rows, record)
	}

	require.Equal(t, [][][]int32{
		{{1, 2}, {3}},
		{{4}},
	}, rows)
}

// TestMapOfStringToInt mirrors attrs: MAP<STRING,INT32> with row
// {"x":10,"y":20} (worked scenario E).
func TestMapOfStringToInt(t *testing.T) {
	keyLeaf := &schema.Node{Name: "key", Kind: schema.Primitive, PhysicalType: format.ByteArray, MaxRepetitionLevel: 1, MaxDefinitionLevel: 1}
	valLeaf := &schema.Node{Name: "value", Kind: schema.Primitive, PhysicalType: format.Int32, MaxRepetitionLevel: 1, MaxDefinitionLevel: 1}
	keyValue := &schema.Node{Name: "key_value", MaxRepetitionLevel: 1, MaxDefinitionLevel: 1, Children: []*schema.Node{keyLeaf, valLeaf}}
	attrs := &schema.Node{Name: "attrs", Kind: schema.Map, Children: []*schema.Node{keyValue}}
	root := &schema.Node{Children: []*schema.Node{attrs}}

	pages := map[string][]*pagereader.Page{
		"key": {{
			NumValues:        2,
			NonNullCount:     2,
			RepetitionLevels: []int32{0, 1},
			DefinitionLevels: []int32{1, 1},
			Values:           byteArrayValues("x", "y"),
		}},
		"value": {{
			NumValues:        2,
			NonNullCount:     2,
			RepetitionLevels: []int32{0, 1},
			DefinitionLevels: []int32{1, 1},
			Values:           pagereader.Values{Type: format.Int32, Int32: []int32{10, 20}},
		}},
	}

	rr, err := row.NewRowReader(root, []string{"attrs"}, 1, sourceFromNode(pages))
	require.NoError(t, err)

	ok, err := rr.Next()
	require.NoError(t, err)
	require.True(t, ok)

	mc, err := rr.GetMap("attrs")
	require.NoError(t, err)
	null, err := mc.IsNull()
	require.NoError(t, err)
	require.False(t, null)
	require.Equal(t, 2, mc.Len())

	k0, err := mc.GetKeyString(0)
	require.NoError(t, err)
	v0, null, err := mc.GetValueInt(0)
	require.NoError(t, err)
	require.False(t, null)
	require.Equal(t, "x", k0)
	require.Equal(t, int32(10), v0)

	k1, err := mc.GetKeyString(1)
	require.NoError(t, err)
	v1, null, err := mc.GetValueInt(1)
	require.NoError(t, err)
	require.False(t, null)
	require.Equal(t, "y", k1)
	require.Equal(t, int32(20), v1)

	ok, err = rr.Next()
	require.NoError(t, err)
	require.False(t, ok)
}
