// Package encoding defines the per-value decoder contract implemented by
// each parquet value encoding (PLAIN, RLE/bit-packed hybrid, dictionary,
// the three DELTA variants, and BYTE_STREAM_SPLIT), plus ByteArrayBuffer,
// the shared representation for decoded variable-length values.
//
// Decoders in this package are dense: a page's non-null values decode into
// a contiguous output starting at offset 0, in the order they appear on the
// wire. Placing them at their final, level-aware row positions (spec
// §4.2's "values interleaved with skipped nulls") is the column reader's
// job (ColumnReader.fillFlat / ColumnReader.fillNested): it already has the
// definition levels decoded and can derive null positions from them in one
// pass, so teaching every decoder to understand levels would duplicate
// that bookkeeping across nine implementations for no benefit.
package encoding

import (
	"fmt"

	"github.com/hardwood-go/parquet/format"
)

// Decoder decodes one page's worth of values of a single physical type.
// Every Decode* method returns the number of values written to dst.
type Decoder interface {
	Encoding() format.Encoding

	DecodeBoolean(dst []bool, src []byte) (int, error)
	DecodeInt32(dst []int32, src []byte) (int, error)
	DecodeInt64(dst []int64, src []byte) (int, error)
	DecodeInt96(dst [][12]byte, src []byte) (int, error)
	DecodeFloat(dst []float32, src []byte) (int, error)
	DecodeDouble(dst []float64, src []byte) (int, error)
	DecodeByteArray(dst *ByteArrayBuffer, src []byte) (int, error)
	DecodeFixedLenByteArray(dst []byte, size int, src []byte) (int, error)
}

// NotSupported can be embedded in a Decoder implementation to satisfy the
// interface for physical types that encoding doesn't apply to (e.g. RLE
// never carries FLOAT values); every embedded method reports a descriptive
// error instead of panicking on a type assertion deep in the call stack.
type NotSupported struct{}

func unsupported(kind string) error {
	return fmt.Errorf("encoding: %s values are not supported by this encoding", kind)
}

func (NotSupported) DecodeBoolean(_ []bool, _ []byte) (int, error)    { return 0, unsupported("BOOLEAN") }
func (NotSupported) DecodeInt32(_ []int32, _ []byte) (int, error)     { return 0, unsupported("INT32") }
func (NotSupported) DecodeInt64(_ []int64, _ []byte) (int, error)     { return 0, unsupported("INT64") }
func (NotSupported) DecodeInt96(_ [][12]byte, _ []byte) (int, error)  { return 0, unsupported("INT96") }
func (NotSupported) DecodeFloat(_ []float32, _ []byte) (int, error)   { return 0, unsupported("FLOAT") }
func (NotSupported) DecodeDouble(_ []float64, _ []byte) (int, error)  { return 0, unsupported("DOUBLE") }
func (NotSupported) DecodeByteArray(_ *ByteArrayBuffer, _ []byte) (int, error) {
	return 0, unsupported("BYTE_ARRAY")
}
func (NotSupported) DecodeFixedLenByteArray(_ []byte, _ int, _ []byte) (int, error) {
	return 0, unsupported("FIXED_LEN_BYTE_ARRAY")
}

// ByteArrayBuffer accumulates variable-length values as a flat byte pool
// plus one end-offset per value (offsets[i-1]..offsets[i] for i > 0,
// 0..offsets[0] for the first value) — the same flattened representation
// TypedBatch uses for a BYTE_ARRAY column's Values field, so a decoded page
// can be appended directly onto a batch's buffer without another copy.
type ByteArrayBuffer struct {
	Bytes   []byte
	Offsets []int32
}

// Reset empties the buffer for reuse.
func (b *ByteArrayBuffer) Reset() {
	b.Bytes = b.Bytes[:0]
	b.Offsets = b.Offsets[:0]
}

// Append adds one value to the buffer.
func (b *ByteArrayBuffer) Append(v []byte) {
	b.Bytes = append(b.Bytes, v...)
	b.Offsets = append(b.Offsets, int32(len(b.Bytes)))
}

// Len reports the number of values currently buffered.
func (b *ByteArrayBuffer) Len() int { return len(b.Offsets) }

// At returns the i'th value.
func (b *ByteArrayBuffer) At(i int) []byte {
	start := int32(0)
	if i > 0 {
		start = b.Offsets[i-1]
	}
	return b.Bytes[start:b.Offsets[i]]
}
