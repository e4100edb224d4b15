// Package row assembles decoded column batches into a row-oriented view:
// a flat fast path for schemas with no repetition, and flyweight
// Struct/List/Map cursors over a shared BatchIndex for nested ones.
package row

import (
	"strings"

	"github.com/hardwood-go/parquet/column"
	"github.com/hardwood-go/parquet/schema"
)

// Kind tags a FieldDesc's shape, the same tagged-variant convention the
// schema package uses for Node.
type Kind int

const (
	Primitive Kind = iota
	Struct
	ListOf
	MapOf
)

// FieldDesc is a projected field's precomputed access plan: which
// column(s) back it, and at what repetition depth its own items live.
// Built once per RowReader from the schema; reused across every batch.
type FieldDesc struct {
	Kind Kind
	Name string

	// Primitive
	ProjCol    int
	LeafSchema *schema.Node

	// Struct
	GroupSchema       *schema.Node
	Children          map[string]*FieldDesc
	ChildOrder        []string
	FirstPrimitiveCol int

	// ListOf. SubLevel indexes the element's own multiLevelOffsets level
	// (the repeated "list" group's nesting depth, minus one); -1 would
	// mean "elements are leaf values one level up", which never occurs
	// for a well-formed 3-level list (the middle group always adds one
	// level of its own).
	ElementSchema   *schema.Node
	Element         *FieldDesc
	FirstLeafProjCol int
	NullDefLevel    int
	ElementDefLevel int
	SubLevel        int

	// MapOf. The key is always a primitive leaf (the 3-level map
	// convention never nests a key); the value may itself be nested.
	KeyProjCol    int
	ValueDesc     *FieldDesc
	EntryDefLevel int
}

// builder assigns a monotonically increasing projected-column index to
// each primitive leaf it encounters and constructs its backing
// column.ColumnReader.
type builder struct {
	sourceFor func(*schema.Node) column.PageSource
	batchSize int
	columns   []*column.ColumnReader
}

func (b *builder) assign(leaf *schema.Node) int {
	name := strings.Join(leaf.Path, ".")
	cr := column.NewColumnReader(b.sourceFor(leaf), name, leaf.PhysicalType, int(leaf.TypeLength), leaf.MaxRepetitionLevel, leaf.MaxDefinitionLevel)
	b.columns = append(b.columns, cr)
	return len(b.columns) - 1
}

func (b *builder) build(n *schema.Node) *FieldDesc {
	switch n.Kind {
	case schema.Primitive:
		return &FieldDesc{Kind: Primitive, Name: n.Name, ProjCol: b.assign(n), LeafSchema: n}
	case schema.List:
		return b.buildList(n)
	case schema.Map:
		return b.buildMap(n)
	default:
		return b.buildStruct(n)
	}
}

func (b *builder) buildStruct(n *schema.Node) *FieldDesc {
	children := make(map[string]*FieldDesc, len(n.Children))
	order := make([]string, 0, len(n.Children))
	firstPrim := -1
	for _, c := range n.Children {
		cd := b.build(c)
		children[c.Name] = cd
		order = append(order, c.Name)
		if firstPrim == -1 {
			firstPrim = anchorCol(cd)
		}
	}
	return &FieldDesc{
		Kind: Struct, Name: n.Name, GroupSchema: n,
		Children: children, ChildOrder: order, FirstPrimitiveCol: firstPrim,
	}
}

func (b *builder) buildList(n *schema.Node) *FieldDesc {
	middle := n.Children[0]
	elem := middle.Children[0]
	elementDesc := b.build(elem)
	return &FieldDesc{
		Kind: ListOf, Name: n.Name, GroupSchema: n, ElementSchema: elem,
		Element:          elementDesc,
		FirstLeafProjCol: anchorCol(elementDesc),
		NullDefLevel:     n.MaxDefinitionLevel,
		ElementDefLevel:  middle.MaxDefinitionLevel,
		SubLevel:         middle.MaxRepetitionLevel - 1,
	}
}

func (b *builder) buildMap(n *schema.Node) *FieldDesc {
	middle := n.Children[0]
	keyNode := middle.ChildByName("key")
	valNode := middle.ChildByName("value")
	keyDesc := b.build(keyNode)
	valDesc := b.build(valNode)
	return &FieldDesc{
		Kind: MapOf, Name: n.Name, GroupSchema: n,
		KeyProjCol:    keyDesc.ProjCol,
		ValueDesc:     valDesc,
		EntryDefLevel: middle.MaxDefinitionLevel,
		SubLevel:      middle.MaxRepetitionLevel - 1,
	}
}

// anchorCol returns a representative projected column used to resolve a
// field's own nullity/offsets: the field's column if primitive, or a
// descendant's otherwise.
func anchorCol(fd *FieldDesc) int {
	switch fd.Kind {
	case Primitive:
		return fd.ProjCol
	case Struct:
		return fd.FirstPrimitiveCol
	case ListOf:
		return fd.FirstLeafProjCol
	case MapOf:
		return fd.KeyProjCol
	default:
		return -1
	}
}

// flat reports whether this field and everything beneath it is free of
// repetition, making it eligible for the flat fast path.
func (fd *FieldDesc) flat() bool {
	switch fd.Kind {
	case Primitive:
		return fd.LeafSchema.MaxRepetitionLevel == 0
	case Struct:
		for _, name := range fd.ChildOrder {
			if !fd.Children[name].flat() {
				return false
			}
		}
		return true
	default:
		return false
	}
}
