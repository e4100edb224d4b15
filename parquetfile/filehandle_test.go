package parquetfile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/schema"
)

func TestValidateSchemaMissingColumn(t *testing.T) {
	reference := &schema.Node{Children: []*schema.Node{
		{Name: "id", Kind: schema.Primitive, PhysicalType: format.Int64},
	}}
	have := &schema.Node{Children: []*schema.Node{
		{Name: "name", Kind: schema.Primitive, PhysicalType: format.ByteArray},
	}}
	h := &FileHandle{name: "b.parquet", root: have}

	err := h.ValidateSchema([]string{"id"}, reference)
	require.Error(t, err)
}

func TestValidateSchemaTypeMismatch(t *testing.T) {
	reference := &schema.Node{Children: []*schema.Node{
		{Name: "id", Kind: schema.Primitive, PhysicalType: format.Int64},
	}}
	have := &schema.Node{Children: []*schema.Node{
		{Name: "id", Kind: schema.Primitive, PhysicalType: format.Int32},
	}}
	h := &FileHandle{name: "b.parquet", root: have}

	err := h.ValidateSchema([]string{"id"}, reference)
	require.Error(t, err)
}

func TestValidateSchemaCompatible(t *testing.T) {
	reference := &schema.Node{Children: []*schema.Node{
		{Name: "id", Kind: schema.Primitive, PhysicalType: format.Int64},
		{Name: "name", Kind: schema.Primitive, PhysicalType: format.ByteArray},
	}}
	have := &schema.Node{Children: []*schema.Node{
		{Name: "id", Kind: schema.Primitive, PhysicalType: format.Int64},
		{Name: "name", Kind: schema.Primitive, PhysicalType: format.ByteArray},
		{Name: "extra", Kind: schema.Primitive, PhysicalType: format.Double},
	}}
	h := &FileHandle{name: "b.parquet", root: have}

	require.NoError(t, h.ValidateSchema([]string{"id", "name"}, reference))
}
