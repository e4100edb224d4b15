package row

import (
	"time"

	"github.com/google/uuid"

	"github.com/hardwood-go/parquet/column"
	"github.com/hardwood-go/parquet/internal/debug"
	"github.com/hardwood-go/parquet/internal/parallel"
	"github.com/hardwood-go/parquet/parqueterr"
	"github.com/hardwood-go/parquet/schema"
)

// RowReader is a row-oriented cursor over a projected set of top-level
// fields, backed by one column.ColumnReader per leaf. It advances in
// lockstep batches: every leaf column is asked for the same maxRecords,
// and the resulting record counts are assumed equal (true whenever every
// projected column comes from the same row group, since every column
// chunk in a row group carries the same row count).
type RowReader struct {
	fields  []*FieldDesc
	byName  map[string]*FieldDesc
	columns []*column.ColumnReader

	batchSize int
	idx       *BatchIndex
	rowIndex  int
}

// NewRowReader projects fieldNames (direct children of root) into a
// RowReader. sourceFor supplies the page source for a given leaf schema
// node; batchSize bounds how many top-level records are pulled per
// underlying NextBatch call.
func NewRowReader(root *schema.Node, fieldNames []string, batchSize int, sourceFor func(*schema.Node) column.PageSource) (*RowReader, error) {
	b := &builder{sourceFor: sourceFor, batchSize: batchSize}
	fields := make([]*FieldDesc, 0, len(fieldNames))
	byName := make(map[string]*FieldDesc, len(fieldNames))
	for _, name := range fieldNames {
		n := root.ChildByName(name)
		if n == nil {
			return nil, &parqueterr.UnknownField{Name: name}
		}
		fd := b.build(n)
		fields = append(fields, fd)
		byName[name] = fd
	}
	return &RowReader{fields: fields, byName: byName, columns: b.columns, batchSize: batchSize, rowIndex: -1}, nil
}

// NextBatch pulls a fresh BatchIndex, advancing every backing column in
// parallel — one decode task per column, joined by a fork-join barrier
// before the batch is exposed, since the columns' underlying page reads
// are independent CPU/IO-bound work that must not block on each other.
// Returns false once any column is exhausted.
func (r *RowReader) NextBatch() (bool, error) {
	ok := make([]bool, len(r.columns))
	err := parallel.Run(len(r.columns), func(i int) error {
		advanced, err := r.columns[i].NextBatch(r.batchSize)
		ok[i] = advanced
		return err
	})
	if err != nil {
		return false, err
	}
	for _, advanced := range ok {
		if !advanced {
			r.idx = nil
			return false, nil
		}
	}
	recordCount := 0
	if len(r.columns) > 0 {
		recordCount = r.columns[0].Batch().RecordCount
	}
	debug.Logf("batch-join: %d columns, %d records", len(r.columns), recordCount)
	r.idx = &BatchIndex{columns: r.columns, recordCount: recordCount}
	r.rowIndex = 0
	return recordCount > 0, nil
}

// Next advances to the next row, crossing a batch boundary if needed.
// Returns false when the underlying column chunks are exhausted.
func (r *RowReader) Next() (bool, error) {
	if r.idx != nil {
		r.rowIndex++
		if r.rowIndex < r.idx.recordCount {
			return true, nil
		}
	}
	return r.NextBatch()
}

func (r *RowReader) field(name string) (*FieldDesc, error) {
	fd, ok := r.byName[name]
	if !ok {
		return nil, &parqueterr.UnknownField{Name: name}
	}
	return fd, nil
}

// primitiveValueIndex resolves the dense value index for a projected
// field's column at the current row: recordOffsets[col][rowIndex] when
// the column carries offsets, rowIndex directly for a flat column — the
// same rule the flat fast path and the nested path share.
func (r *RowReader) primitiveValueIndex(col int) int {
	return r.idx.recordStart(col, r.rowIndex)
}

func (r *RowReader) GetInt(name string) (int32, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveInt(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

func (r *RowReader) GetLong(name string) (int64, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveLong(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

func (r *RowReader) GetFloat(name string) (float32, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveFloat(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

func (r *RowReader) GetDouble(name string) (float64, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return 0, false, err
	}
	return primitiveDouble(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

func (r *RowReader) GetBool(name string) (bool, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return false, false, err
	}
	return primitiveBool(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

func (r *RowReader) GetString(name string) (string, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return "", false, err
	}
	return primitiveString(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

func (r *RowReader) GetBinary(name string) ([]byte, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return nil, false, err
	}
	return primitiveBinary(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

// GetUUID reads a top-level FIXED_LEN_BYTE_ARRAY(16) field annotated with
// the UUID logical type.
func (r *RowReader) GetUUID(name string) (uuid.UUID, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return uuid.UUID{}, false, err
	}
	return primitiveUUID(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

// GetInt96Time reads a top-level legacy INT96 field as a UTC time.Time.
func (r *RowReader) GetInt96Time(name string) (time.Time, bool, error) {
	fd, err := r.field(name)
	if err != nil {
		return time.Time{}, false, err
	}
	return primitiveInt96Time(r.idx, fd, r.primitiveValueIndex(fd.ProjCol))
}

// GetStruct returns a flyweight cursor over a top-level struct field.
func (r *RowReader) GetStruct(name string) (*StructCursor, error) {
	fd, err := r.field(name)
	if err != nil {
		return nil, err
	}
	if fd.Kind != Struct {
		return nil, &parqueterr.WrongFieldKind{Name: name, Want: "struct", Have: kindName(fd.Kind)}
	}
	return &StructCursor{idx: r.idx, desc: fd, recordMode: true, rowIndex: r.rowIndex}, nil
}

// GetList returns a flyweight cursor over a top-level list field.
func (r *RowReader) GetList(name string) (*ListCursor, error) {
	fd, err := r.field(name)
	if err != nil {
		return nil, err
	}
	if fd.Kind != ListOf {
		return nil, &parqueterr.WrongFieldKind{Name: name, Want: "list", Have: kindName(fd.Kind)}
	}
	return newListCursor(r.idx, fd, true, r.rowIndex, 0)
}

// GetMap returns a flyweight cursor over a top-level map field.
func (r *RowReader) GetMap(name string) (*MapCursor, error) {
	fd, err := r.field(name)
	if err != nil {
		return nil, err
	}
	if fd.Kind != MapOf {
		return nil, &parqueterr.WrongFieldKind{Name: name, Want: "map", Have: kindName(fd.Kind)}
	}
	return newMapCursor(r.idx, fd, true, r.rowIndex, 0)
}

// Flat reports whether every projected field is free of repetition,
// meaning by-name/by-index accessors are a direct array read with no
// BatchIndex offset chase involved (spec's flat fast-path equivalence).
func (r *RowReader) Flat() bool {
	for _, fd := range r.fields {
		if !fd.flat() {
			return false
		}
	}
	return true
}
