package pagereader

import (
	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/format"
)

// Values is the dense (non-null-only) value payload of one page, in the
// column's physical type.
type Values struct {
	Type format.Type

	Int32     []int32
	Int64     []int64
	Int96     [][12]byte
	Float     []float32
	Double    []float64
	Boolean   []bool
	ByteArray encoding.ByteArrayBuffer
	FixedLen  []byte

	FixedLenSize int
}

// Len reports the number of dense values held.
func (v *Values) Len() int {
	switch v.Type {
	case format.Boolean:
		return len(v.Boolean)
	case format.Int32:
		return len(v.Int32)
	case format.Int64:
		return len(v.Int64)
	case format.Int96:
		return len(v.Int96)
	case format.Float:
		return len(v.Float)
	case format.Double:
		return len(v.Double)
	case format.ByteArray:
		return v.ByteArray.Len()
	case format.FixedLenByteArray:
		if v.FixedLenSize == 0 {
			return 0
		}
		return len(v.FixedLen) / v.FixedLenSize
	default:
		return 0
	}
}

// Page is one decoded data page: its repetition/definition level streams
// (nil when the corresponding max level is 0) and the dense decoded
// values, in declaration order.
type Page struct {
	RepetitionLevels []int32
	DefinitionLevels []int32
	NumValues        int
	NonNullCount     int
	Values           Values
}
