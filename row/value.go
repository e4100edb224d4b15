package row

import (
	"time"

	"github.com/google/uuid"

	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/parqueterr"
)

// primitiveInt, etc. read column desc.ProjCol at dense index pos, checking
// physical type and the leaf's own nullity via its definition levels.
func primitiveInt(idx *BatchIndex, desc *FieldDesc, pos int) (int32, bool, error) {
	cr := idx.col(desc.ProjCol)
	vals, err := cr.GetInts()
	if err != nil {
		return 0, false, err
	}
	return vals[pos], leafNull(idx, desc, pos), nil
}

func primitiveLong(idx *BatchIndex, desc *FieldDesc, pos int) (int64, bool, error) {
	cr := idx.col(desc.ProjCol)
	vals, err := cr.GetLongs()
	if err != nil {
		return 0, false, err
	}
	return vals[pos], leafNull(idx, desc, pos), nil
}

func primitiveFloat(idx *BatchIndex, desc *FieldDesc, pos int) (float32, bool, error) {
	cr := idx.col(desc.ProjCol)
	vals, err := cr.GetFloats()
	if err != nil {
		return 0, false, err
	}
	return vals[pos], leafNull(idx, desc, pos), nil
}

func primitiveDouble(idx *BatchIndex, desc *FieldDesc, pos int) (float64, bool, error) {
	cr := idx.col(desc.ProjCol)
	vals, err := cr.GetDoubles()
	if err != nil {
		return 0, false, err
	}
	return vals[pos], leafNull(idx, desc, pos), nil
}

func primitiveBool(idx *BatchIndex, desc *FieldDesc, pos int) (bool, bool, error) {
	cr := idx.col(desc.ProjCol)
	vals, err := cr.GetBooleans()
	if err != nil {
		return false, false, err
	}
	return vals[pos], leafNull(idx, desc, pos), nil
}

func primitiveString(idx *BatchIndex, desc *FieldDesc, pos int) (string, bool, error) {
	cr := idx.col(desc.ProjCol)
	if err := typeMismatchFor(desc, format.ByteArray); err != nil {
		return "", false, err
	}
	return string(cr.Batch().Values.ByteArray.At(pos)), leafNull(idx, desc, pos), nil
}

func primitiveBinary(idx *BatchIndex, desc *FieldDesc, pos int) ([]byte, bool, error) {
	cr := idx.col(desc.ProjCol)
	if err := typeMismatchFor(desc, format.ByteArray); err != nil {
		return nil, false, err
	}
	return cr.Batch().Values.ByteArray.At(pos), leafNull(idx, desc, pos), nil
}

// primitiveUUID reads a FIXED_LEN_BYTE_ARRAY(16) leaf annotated with the
// UUID logical type (spec §6) as a uuid.UUID.
func primitiveUUID(idx *BatchIndex, desc *FieldDesc, pos int) (uuid.UUID, bool, error) {
	cr := idx.col(desc.ProjCol)
	slab, width, err := cr.GetFixedLen()
	if err != nil {
		return uuid.UUID{}, false, err
	}
	if width != 16 {
		return uuid.UUID{}, false, &parqueterr.TypeMismatch{Column: desc.Name, Want: "UUID (16-byte FIXED_LEN_BYTE_ARRAY)", Have: desc.LeafSchema.PhysicalType.String()}
	}
	var id uuid.UUID
	copy(id[:], slab[pos*width:(pos+1)*width])
	return id, leafNull(idx, desc, pos), nil
}

// primitiveInt96Time reads an INT96 leaf and converts it via the legacy
// Julian-day/nanosecond-of-day convention.
func primitiveInt96Time(idx *BatchIndex, desc *FieldDesc, pos int) (time.Time, bool, error) {
	cr := idx.col(desc.ProjCol)
	vals, err := cr.GetInt96s()
	if err != nil {
		return time.Time{}, false, err
	}
	return int96ToTime(vals[pos]), leafNull(idx, desc, pos), nil
}

// leafNull reports a leaf's own nullity. pos indexes Values directly, which
// for a flat (R == 0) column is the same raw position DefinitionLevels uses,
// so belowThreshold is exact there. For a nested leaf, Values holds only the
// dense (non-null) entries and pos is a dense index into them — a different
// index space than the raw, per-position DefinitionLevels array — so an
// individual element's own nullability inside a repeated group isn't
// resolvable from pos alone and is reported as always present; only the
// enclosing list/map/struct's own nullity (via ListCursor/MapCursor/
// StructCursor.IsNull) is tracked for nested fields.
func leafNull(idx *BatchIndex, desc *FieldDesc, pos int) bool {
	if desc.LeafSchema.MaxRepetitionLevel > 0 {
		return false
	}
	return idx.belowThreshold(desc.ProjCol, pos, desc.LeafSchema.MaxDefinitionLevel)
}

func typeMismatchFor(desc *FieldDesc, want format.Type) error {
	if desc.LeafSchema.PhysicalType != want {
		return &parqueterr.TypeMismatch{Column: desc.Name, Want: want.String(), Have: desc.LeafSchema.PhysicalType.String()}
	}
	return nil
}
