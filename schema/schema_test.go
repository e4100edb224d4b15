package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/schema"
)

func i32(v int32) *int32                              { return &v }
func rt(v format.FieldRepetitionType) *format.FieldRepetitionType { return &v }
func ct(v format.ConvertedType) *format.ConvertedType  { return &v }
func typ(v format.Type) *format.Type                   { return &v }

// Builds the flattened element list for:
//   message root {
//     required int64 id;
//     optional binary name (STRING);
//     required group fare_components (LIST) { repeated group list { required double element; } }
//   }
func flatListSchema() []format.SchemaElement {
	return []format.SchemaElement{
		{Name: "root", NumChildren: i32(3)},
		{Name: "id", Type: typ(format.Int64), RepetitionType: rt(format.Required)},
		{Name: "name", Type: typ(format.ByteArray), RepetitionType: rt(format.Optional), ConvertedType: ct(format.UTF8)},
		{Name: "fare_components", RepetitionType: rt(format.Required), ConvertedType: ct(format.List), NumChildren: i32(1)},
		{Name: "list", RepetitionType: rt(format.Repeated), NumChildren: i32(1)},
		{Name: "element", Type: typ(format.Double), RepetitionType: rt(format.Required)},
	}
}

func TestBuildTreeAssignsColumnIndices(t *testing.T) {
	root, err := schema.BuildTree(flatListSchema())
	require.NoError(t, err)

	leaves := root.Leaves()
	require.Len(t, leaves, 3)
	require.Equal(t, "id", leaves[0].Name)
	require.Equal(t, 0, leaves[0].ColumnIndex)
	require.Equal(t, "name", leaves[1].Name)
	require.Equal(t, 1, leaves[1].ColumnIndex)
	require.Equal(t, "element", leaves[2].Name)
	require.Equal(t, 2, leaves[2].ColumnIndex)
}

func TestBuildTreeComputesLevels(t *testing.T) {
	root, err := schema.BuildTree(flatListSchema())
	require.NoError(t, err)

	id := root.Children[0]
	require.Equal(t, 0, id.MaxRepetitionLevel)
	require.Equal(t, 0, id.MaxDefinitionLevel)

	name := root.Children[1]
	require.Equal(t, 0, name.MaxRepetitionLevel)
	require.Equal(t, 1, name.MaxDefinitionLevel)

	fareComponents := root.Children[2]
	require.Equal(t, schema.List, fareComponents.Kind)

	list := fareComponents.Children[0]
	require.Equal(t, 1, list.MaxRepetitionLevel)

	element := list.Children[0]
	require.Equal(t, 1, element.MaxRepetitionLevel)
	require.Equal(t, 1, element.MaxDefinitionLevel)
}

func TestProjectedSchemaStableOrder(t *testing.T) {
	root, err := schema.BuildTree(flatListSchema())
	require.NoError(t, err)

	ps, err := schema.NewProjectedSchema(root, []string{"name", "id"})
	require.NoError(t, err)
	require.Equal(t, 2, ps.Len())
	require.Equal(t, "name", ps.Columns[0].Name)
	require.Equal(t, "id", ps.Columns[1].Name)
	require.Equal(t, 0, ps.IndexOf("name"))
	require.Equal(t, 1, ps.IndexOf("id"))
	require.Equal(t, -1, ps.IndexOf("nope"))
}

func TestProjectedSchemaUnknownColumn(t *testing.T) {
	root, err := schema.BuildTree(flatListSchema())
	require.NoError(t, err)

	_, err = schema.NewProjectedSchema(root, []string{"missing"})
	require.Error(t, err)
}
