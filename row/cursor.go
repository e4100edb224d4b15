package row

import (
	"github.com/hardwood-go/parquet/parqueterr"
)

// StructCursor is a flyweight view of one struct instance: either "record
// mode" (resolved fresh from rowIndex on every access, used for fields
// reached with no intervening list/map) or "position mode" (a fixed dense
// valueIndex, used for a struct reached as a list element or map value).
type StructCursor struct {
	idx        *BatchIndex
	desc       *FieldDesc
	recordMode bool
	rowIndex   int
	valueIndex int
}

func (s *StructCursor) anchorIndex(anchorCol int) int {
	if s.recordMode {
		return s.idx.recordStart(anchorCol, s.rowIndex)
	}
	return s.valueIndex
}

// IsNull reports whether this struct instance is itself absent. A struct
// with no primitive descendant in the projection is defined non-null.
func (s *StructCursor) IsNull() bool {
	if s.desc.FirstPrimitiveCol < 0 {
		return false
	}
	vi := s.anchorIndex(s.desc.FirstPrimitiveCol)
	return s.idx.belowThreshold(s.desc.FirstPrimitiveCol, vi, s.desc.GroupSchema.MaxDefinitionLevel)
}

func (s *StructCursor) child(name string) (*FieldDesc, error) {
	cd, ok := s.desc.Children[name]
	if !ok {
		return nil, &parqueterr.UnknownField{Name: name}
	}
	return cd, nil
}

// GetInt, GetLong, etc. read a primitive child field by name.
func (s *StructCursor) GetInt(name string) (int32, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveInt(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

func (s *StructCursor) GetLong(name string) (int64, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveLong(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

func (s *StructCursor) GetFloat(name string) (float32, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveFloat(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

func (s *StructCursor) GetDouble(name string) (float64, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveDouble(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

func (s *StructCursor) GetBool(name string) (bool, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return false, false, err
	}
	return primitiveBool(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

func (s *StructCursor) GetString(name string) (string, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return "", false, err
	}
	return primitiveString(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

func (s *StructCursor) GetBinary(name string) ([]byte, bool, error) {
	cd, err := s.child(name)
	if err != nil {
		return nil, false, err
	}
	return primitiveBinary(s.idx, cd, s.anchorIndex(cd.ProjCol))
}

// GetStruct returns a flyweight cursor over a nested struct field.
func (s *StructCursor) GetStruct(name string) (*StructCursor, error) {
	cd, err := s.child(name)
	if err != nil {
		return nil, err
	}
	if cd.Kind != Struct {
		return nil, &parqueterr.WrongFieldKind{Name: name, Want: "struct", Have: kindName(cd.Kind)}
	}
	if s.recordMode {
		return &StructCursor{idx: s.idx, desc: cd, recordMode: true, rowIndex: s.rowIndex}, nil
	}
	return &StructCursor{idx: s.idx, desc: cd, valueIndex: s.valueIndex}, nil
}

// GetList returns a flyweight cursor over a nested list field.
func (s *StructCursor) GetList(name string) (*ListCursor, error) {
	cd, err := s.child(name)
	if err != nil {
		return nil, err
	}
	if cd.Kind != ListOf {
		return nil, &parqueterr.WrongFieldKind{Name: name, Want: "list", Have: kindName(cd.Kind)}
	}
	return newListCursor(s.idx, cd, s.recordMode, s.rowIndex, s.valueIndex)
}

// GetMap returns a flyweight cursor over a nested map field.
func (s *StructCursor) GetMap(name string) (*MapCursor, error) {
	cd, err := s.child(name)
	if err != nil {
		return nil, err
	}
	if cd.Kind != MapOf {
		return nil, &parqueterr.WrongFieldKind{Name: name, Want: "map", Have: kindName(cd.Kind)}
	}
	return newMapCursor(s.idx, cd, s.recordMode, s.rowIndex, s.valueIndex)
}

func kindName(k Kind) string {
	switch k {
	case Primitive:
		return "primitive"
	case Struct:
		return "struct"
	case ListOf:
		return "list"
	case MapOf:
		return "map"
	default:
		return "unknown"
	}
}

// ListCursor is a flyweight view over one list instance's elements:
// positions [start,end) at the anchor column's desc.SubLevel. itemIndex is
// the index this cursor's own nullity/emptiness was resolved at (the same
// index used to compute start/end).
type ListCursor struct {
	idx        *BatchIndex
	desc       *FieldDesc
	start, end int
	itemIndex  int
}

func newListCursor(idx *BatchIndex, desc *FieldDesc, recordMode bool, rowIndex, parentValueIndex int) (*ListCursor, error) {
	if recordMode {
		start := idx.recordStart(desc.FirstLeafProjCol, rowIndex)
		end, err := idx.recordEnd(desc.FirstLeafProjCol, rowIndex)
		if err != nil {
			return nil, err
		}
		return &ListCursor{idx: idx, desc: desc, start: start, end: end, itemIndex: rowIndex}, nil
	}
	start, end, err := idx.itemRange(desc.FirstLeafProjCol, desc.SubLevel-1, parentValueIndex)
	if err != nil {
		return nil, err
	}
	return &ListCursor{idx: idx, desc: desc, start: start, end: end, itemIndex: parentValueIndex}, nil
}

// IsNull reports whether the list itself is absent (as opposed to empty).
func (lc *ListCursor) IsNull() (bool, error) {
	bits, err := lc.idx.col(lc.desc.FirstLeafProjCol).GetLevelNulls(lc.desc.SubLevel)
	if err != nil {
		return false, err
	}
	if bits == nil {
		return false, nil
	}
	return bits.Test(lc.itemIndex), nil
}

// Len reports the number of elements; 0 with IsNull() false means an
// empty, present list.
func (lc *ListCursor) Len() int { return lc.end - lc.start }

func (lc *ListCursor) pos(i int) int { return lc.start + i }

func (lc *ListCursor) checkElementKind(want Kind, wantName string) error {
	if lc.desc.Element.Kind != want {
		return &parqueterr.WrongFieldKind{Name: lc.desc.Name, Want: wantName, Have: kindName(lc.desc.Element.Kind)}
	}
	return nil
}

func (lc *ListCursor) GetInt(i int) (int32, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveInt(lc.idx, lc.desc.Element, lc.pos(i))
}

func (lc *ListCursor) GetLong(i int) (int64, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveLong(lc.idx, lc.desc.Element, lc.pos(i))
}

func (lc *ListCursor) GetFloat(i int) (float32, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveFloat(lc.idx, lc.desc.Element, lc.pos(i))
}

func (lc *ListCursor) GetDouble(i int) (float64, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveDouble(lc.idx, lc.desc.Element, lc.pos(i))
}

func (lc *ListCursor) GetBool(i int) (bool, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return false, false, err
	}
	return primitiveBool(lc.idx, lc.desc.Element, lc.pos(i))
}

func (lc *ListCursor) GetString(i int) (string, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return "", false, err
	}
	return primitiveString(lc.idx, lc.desc.Element, lc.pos(i))
}

func (lc *ListCursor) GetBinary(i int) ([]byte, bool, error) {
	if err := lc.checkElementKind(Primitive, "primitive"); err != nil {
		return nil, false, err
	}
	return primitiveBinary(lc.idx, lc.desc.Element, lc.pos(i))
}

// GetStruct returns element i as a struct cursor, valid when the list's
// elements are LIST<STRUCT<...>>.
func (lc *ListCursor) GetStruct(i int) (*StructCursor, error) {
	if err := lc.checkElementKind(Struct, "struct"); err != nil {
		return nil, err
	}
	return &StructCursor{idx: lc.idx, desc: lc.desc.Element, valueIndex: lc.pos(i)}, nil
}

// GetList returns element i as a nested list cursor, valid for
// LIST<LIST<...>>.
func (lc *ListCursor) GetList(i int) (*ListCursor, error) {
	if err := lc.checkElementKind(ListOf, "list"); err != nil {
		return nil, err
	}
	child := lc.desc.Element
	start, end, err := lc.idx.itemRange(child.FirstLeafProjCol, child.SubLevel, lc.pos(i))
	if err != nil {
		return nil, err
	}
	return &ListCursor{idx: lc.idx, desc: child, start: start, end: end, itemIndex: lc.pos(i)}, nil
}

// GetMap returns element i as a nested map cursor, valid for
// LIST<MAP<...>>.
func (lc *ListCursor) GetMap(i int) (*MapCursor, error) {
	if err := lc.checkElementKind(MapOf, "map"); err != nil {
		return nil, err
	}
	child := lc.desc.Element
	start, end, err := lc.idx.itemRange(child.KeyProjCol, child.SubLevel, lc.pos(i))
	if err != nil {
		return nil, err
	}
	return &MapCursor{idx: lc.idx, desc: child, start: start, end: end, itemIndex: lc.pos(i)}, nil
}

// MapCursor is a flyweight view over one map instance's entries:
// positions [start,end) in the key/value leaf columns.
type MapCursor struct {
	idx        *BatchIndex
	desc       *FieldDesc
	start, end int
	itemIndex  int
}

func newMapCursor(idx *BatchIndex, desc *FieldDesc, recordMode bool, rowIndex, parentValueIndex int) (*MapCursor, error) {
	if recordMode {
		start := idx.recordStart(desc.KeyProjCol, rowIndex)
		end, err := idx.recordEnd(desc.KeyProjCol, rowIndex)
		if err != nil {
			return nil, err
		}
		return &MapCursor{idx: idx, desc: desc, start: start, end: end, itemIndex: rowIndex}, nil
	}
	start, end, err := idx.itemRange(desc.KeyProjCol, desc.SubLevel-1, parentValueIndex)
	if err != nil {
		return nil, err
	}
	return &MapCursor{idx: idx, desc: desc, start: start, end: end, itemIndex: parentValueIndex}, nil
}

func (mc *MapCursor) IsNull() (bool, error) {
	bits, err := mc.idx.col(mc.desc.KeyProjCol).GetLevelNulls(mc.desc.SubLevel)
	if err != nil {
		return false, err
	}
	if bits == nil {
		return false, nil
	}
	return bits.Test(mc.itemIndex), nil
}

func (mc *MapCursor) Len() int { return mc.end - mc.start }

func (mc *MapCursor) keyPos(i int) int { return mc.start + i }

// GetKeyString reads entry i's key, assuming a STRING/BYTE_ARRAY key (the
// common case, and the only one exercised by this reader; the 3-level map
// convention never nests or re-annotates the key's physical type).
func (mc *MapCursor) GetKeyString(i int) (string, error) {
	cr := mc.idx.col(mc.desc.KeyProjCol)
	s, err := cr.GetStrings()
	if err != nil {
		return "", err
	}
	return s[mc.keyPos(i)], nil
}

func (mc *MapCursor) checkValueKind(want Kind, wantName string) error {
	if mc.desc.ValueDesc.Kind != want {
		return &parqueterr.WrongFieldKind{Name: mc.desc.Name, Want: wantName, Have: kindName(mc.desc.ValueDesc.Kind)}
	}
	return nil
}

func (mc *MapCursor) GetValueInt(i int) (int32, bool, error) {
	if err := mc.checkValueKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveInt(mc.idx, mc.desc.ValueDesc, mc.keyPos(i))
}

func (mc *MapCursor) GetValueLong(i int) (int64, bool, error) {
	if err := mc.checkValueKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveLong(mc.idx, mc.desc.ValueDesc, mc.keyPos(i))
}

func (mc *MapCursor) GetValueDouble(i int) (float64, bool, error) {
	if err := mc.checkValueKind(Primitive, "primitive"); err != nil {
		return 0, false, err
	}
	return primitiveDouble(mc.idx, mc.desc.ValueDesc, mc.keyPos(i))
}

func (mc *MapCursor) GetValueString(i int) (string, bool, error) {
	if err := mc.checkValueKind(Primitive, "primitive"); err != nil {
		return "", false, err
	}
	return primitiveString(mc.idx, mc.desc.ValueDesc, mc.keyPos(i))
}

// GetValueStruct returns entry i's value as a struct cursor, valid for
// MAP<_, STRUCT<...>>.
func (mc *MapCursor) GetValueStruct(i int) (*StructCursor, error) {
	if err := mc.checkValueKind(Struct, "struct"); err != nil {
		return nil, err
	}
	return &StructCursor{idx: mc.idx, desc: mc.desc.ValueDesc, valueIndex: mc.keyPos(i)}, nil
}
