package schema

import "fmt"

// ProjectedSchema names a set of primitive leaves selected for read,
// assigning each a projectedColumnIndex in the stable order requested by
// the caller. Schema projection *parsing* (dotted-path syntax) is a
// caller concern; this type consumes the already-resolved leaf paths.
type ProjectedSchema struct {
	Root    *Node
	Columns []*Node // Columns[projectedColumnIndex] is that leaf's Node.

	byPath map[string]int
}

// NewProjectedSchema resolves each dotted leaf path against root's leaves
// and assigns projected column indices in the order the paths are given.
func NewProjectedSchema(root *Node, paths []string) (*ProjectedSchema, error) {
	leaves := root.Leaves()
	byFullPath := make(map[string]*Node, len(leaves))
	for _, leaf := range leaves {
		byFullPath[joinPath(leaf.Path)] = leaf
	}

	ps := &ProjectedSchema{
		Root:    root,
		Columns: make([]*Node, 0, len(paths)),
		byPath:  make(map[string]int, len(paths)),
	}
	for _, p := range paths {
		leaf, ok := byFullPath[p]
		if !ok {
			return nil, fmt.Errorf("schema: projected column %q not found", p)
		}
		ps.byPath[p] = len(ps.Columns)
		ps.Columns = append(ps.Columns, leaf)
	}
	return ps, nil
}

// IndexOf returns the projectedColumnIndex of a leaf path, or -1.
func (ps *ProjectedSchema) IndexOf(path string) int {
	if i, ok := ps.byPath[path]; ok {
		return i
	}
	return -1
}

// Len returns the number of projected columns.
func (ps *ProjectedSchema) Len() int { return len(ps.Columns) }

func joinPath(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}
