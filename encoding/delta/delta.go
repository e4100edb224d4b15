// Package delta implements the three DELTA_* parquet encodings:
// DELTA_BINARY_PACKED (INT32/INT64), DELTA_LENGTH_BYTE_ARRAY, and
// DELTA_BYTE_ARRAY (front-compression over DELTA_LENGTH_BYTE_ARRAY).
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#delta-encoding-delta_binary_packed--5
package delta

import (
	"fmt"

	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/format"
)

// BinaryPackedDecoder decodes DELTA_BINARY_PACKED INT32/INT64 pages.
type BinaryPackedDecoder struct{ encoding.NotSupported }

func (d *BinaryPackedDecoder) Encoding() format.Encoding { return format.EncodingDeltaBinaryPacked }

func (d *BinaryPackedDecoder) DecodeInt32(dst []int32, src []byte) (int, error) {
	values, _, err := decodeBinaryPacked(src, len(dst))
	for i, v := range values {
		dst[i] = int32(v)
	}
	return len(values), err
}

func (d *BinaryPackedDecoder) DecodeInt64(dst []int64, src []byte) (int, error) {
	values, _, err := decodeBinaryPacked(src, len(dst))
	copy(dst, values)
	return len(values), err
}

// LengthByteArrayDecoder decodes DELTA_LENGTH_BYTE_ARRAY pages: an
// initial DELTA_BINARY_PACKED stream of value lengths, followed by the
// concatenated value bytes.
type LengthByteArrayDecoder struct{ encoding.NotSupported }

func (d *LengthByteArrayDecoder) Encoding() format.Encoding {
	return format.EncodingDeltaLengthByteArray
}

func (d *LengthByteArrayDecoder) DecodeByteArray(dst *encoding.ByteArrayBuffer, src []byte) (int, error) {
	lengths, rest, err := splitLengthStream(src)
	if err != nil {
		return 0, fmt.Errorf("delta: %w", err)
	}
	pos := 0
	for _, n := range lengths {
		if n < 0 || int(n) > len(rest)-pos {
			return 0, fmt.Errorf("delta: value length %d exceeds remaining input", n)
		}
		dst.Append(rest[pos : pos+int(n)])
		pos += int(n)
	}
	return len(lengths), nil
}

// ByteArrayDecoder decodes DELTA_BYTE_ARRAY pages: a DELTA_BINARY_PACKED
// stream of shared-prefix lengths, a DELTA_BINARY_PACKED stream of suffix
// lengths, then the concatenated suffix bytes.
type ByteArrayDecoder struct{ encoding.NotSupported }

func (d *ByteArrayDecoder) Encoding() format.Encoding { return format.EncodingDeltaByteArray }

func (d *ByteArrayDecoder) DecodeByteArray(dst *encoding.ByteArrayBuffer, src []byte) (int, error) {
	prefixes, rest, err := splitLengthStream(src)
	if err != nil {
		return 0, fmt.Errorf("delta: decoding prefix lengths: %w", err)
	}
	suffixes, rest, err := splitLengthStream(rest)
	if err != nil {
		return 0, fmt.Errorf("delta: decoding suffix lengths: %w", err)
	}
	if len(prefixes) != len(suffixes) {
		return 0, fmt.Errorf("delta: prefix/suffix length mismatch: %d != %d", len(prefixes), len(suffixes))
	}

	var last []byte
	pos := 0
	for i := range prefixes {
		p := int(prefixes[i])
		n := int(suffixes[i])
		if p < 0 || p > len(last) {
			return 0, fmt.Errorf("delta: prefix length %d exceeds last value of size %d", p, len(last))
		}
		if n < 0 || n > len(rest)-pos {
			return 0, fmt.Errorf("delta: suffix length %d exceeds remaining input", n)
		}
		start := len(dst.Bytes)
		dst.Bytes = append(dst.Bytes, last[:p]...)
		dst.Bytes = append(dst.Bytes, rest[pos:pos+n]...)
		dst.Offsets = append(dst.Offsets, int32(len(dst.Bytes)))
		last = dst.Bytes[start:]
		pos += n
	}
	return len(prefixes), nil
}

// splitLengthStream decodes one DELTA_BINARY_PACKED length stream from the
// front of src and returns the decoded lengths alongside the bytes that
// follow the stream's header-declared extent.
func splitLengthStream(src []byte) ([]int32, []byte, error) {
	values, consumed, err := decodeBinaryPacked(src, 1<<31-1)
	if err != nil {
		return nil, nil, err
	}
	lengths := make([]int32, len(values))
	for i, v := range values {
		lengths[i] = int32(v)
	}
	return lengths, src[consumed:], nil
}
