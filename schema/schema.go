// Package schema builds the Parquet schema tree from a file's flattened
// SchemaElement list and computes the per-node coordinates (repetition
// level, definition level, leaf column index) that the rest of the reader
// depends on.
package schema

import (
	"fmt"

	"github.com/hardwood-go/parquet/format"
)

// Kind tags the shape a Node represents. Rather than an interface
// hierarchy for PrimitiveNode/GroupNode/ListNode/MapNode, one Node struct
// carries a Kind discriminator: the same flat-struct-plus-tag shape the
// file footer itself uses (a SchemaElement is a leaf or a group depending
// on NumChildren, never a distinct Go type).
type Kind int

const (
	Primitive Kind = iota
	Group
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "PRIMITIVE"
	case Group:
		return "GROUP"
	case List:
		return "LIST"
	case Map:
		return "MAP"
	default:
		return "UNKNOWN"
	}
}

// Node is one element of the schema tree.
type Node struct {
	Name           string
	Kind           Kind
	PhysicalType   format.Type
	TypeLength     int32
	ConvertedType  *format.ConvertedType
	LogicalType    *format.LogicalType
	Repetition     format.FieldRepetitionType
	Scale          int32
	Precision      int32

	MaxRepetitionLevel int
	MaxDefinitionLevel int
	Path               []string

	// ColumnIndex is the leaf's position in the file's depth-first column
	// order. -1 for non-primitive nodes.
	ColumnIndex int

	Parent   *Node
	Children []*Node
}

// Optional reports whether this node may be absent from its parent.
func (n *Node) Optional() bool { return n.Repetition == format.Optional }

// Repeated reports whether this node is the repeated element of a list or
// a bare (non-LIST-annotated) repeated group.
func (n *Node) Repeated() bool { return n.Repetition == format.Repeated }

// ChildByName looks up a direct child by name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Leaves returns every primitive descendant in depth-first order, the
// order Parquet itself assigns column indices in.
func (n *Node) Leaves() []*Node {
	return n.appendLeaves(nil)
}

func (n *Node) appendLeaves(leaves []*Node) []*Node {
	if n.Kind == Primitive {
		return append(leaves, n)
	}
	for _, c := range n.Children {
		leaves = c.appendLeaves(leaves)
	}
	return leaves
}

// BuildTree parses a file's flattened SchemaElement list (pre-order,
// self-reporting NumChildren) into a Node tree rooted at a synthetic group
// representing the message, and assigns every computed coordinate.
//
// Grounded on the depth-first flatten/unflatten convention Parquet uses to
// serialize its schema tree in FileMetaData.Schema.
func BuildTree(elements []format.SchemaElement) (*Node, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("schema: empty schema")
	}

	root := &Node{}
	consumed, err := buildRecurse(root, elements)
	if err != nil {
		return nil, err
	}
	if consumed != len(elements) {
		return nil, fmt.Errorf("schema: expected to consume %d elements, consumed %d", len(elements), consumed)
	}

	nextColumn := 0
	compute(root, &nextColumn)
	return root, nil
}

func buildRecurse(n *Node, left []format.SchemaElement) (int, error) {
	if len(left) == 0 {
		return 0, fmt.Errorf("schema: truncated schema element list")
	}
	el := left[0]

	n.Name = el.Name
	if el.Type != nil {
		n.PhysicalType = *el.Type
	}
	if el.TypeLength != nil {
		n.TypeLength = *el.TypeLength
	}
	n.ConvertedType = el.ConvertedType
	n.LogicalType = el.LogicalType
	if el.RepetitionType != nil {
		n.Repetition = *el.RepetitionType
	}
	if el.Scale != nil {
		n.Scale = *el.Scale
	}
	if el.Precision != nil {
		n.Precision = *el.Precision
	}

	numChildren := int32(0)
	if el.NumChildren != nil {
		numChildren = *el.NumChildren
	}
	n.Children = make([]*Node, numChildren)

	offset := 1
	for i := int32(0); i < numChildren; i++ {
		child := &Node{Parent: n}
		n.Children[i] = child
		consumed, err := buildRecurse(child, left[offset:])
		if err != nil {
			return 0, err
		}
		offset += consumed
	}
	return offset, nil
}

// compute fills repetition/definition levels, path, kind, and leaf column
// indices in a single depth-first walk.
func compute(n *Node, nextColumn *int) {
	if n.Parent != nil {
		n.MaxRepetitionLevel = n.Parent.MaxRepetitionLevel
		n.MaxDefinitionLevel = n.Parent.MaxDefinitionLevel
		n.Path = appendPath(n.Parent.Path, n.Name)
	}
	if n.Repeated() {
		n.MaxRepetitionLevel++
	}
	if !isRequired(n) {
		n.MaxDefinitionLevel++
	}

	n.Kind = classify(n)
	if n.Kind == Primitive {
		n.ColumnIndex = *nextColumn
		*nextColumn++
	} else {
		n.ColumnIndex = -1
	}

	for _, c := range n.Children {
		compute(c, nextColumn)
	}
}

func isRequired(n *Node) bool {
	return n.Parent == nil || n.Repetition == format.Required
}

func classify(n *Node) Kind {
	if len(n.Children) == 0 {
		return Primitive
	}
	if n.ConvertedType != nil {
		switch *n.ConvertedType {
		case format.Map, format.MapKeyValue:
			return Map
		case format.List:
			return List
		}
	}
	if n.LogicalType != nil {
		if n.LogicalType.Map != nil {
			return Map
		}
		if n.LogicalType.List != nil {
			return List
		}
	}
	if n.Repeated() {
		return List
	}
	return Group
}

func appendPath(path []string, name string) []string {
	p := make([]string, len(path)+1)
	copy(p, path)
	p[len(path)] = name
	return p
}
