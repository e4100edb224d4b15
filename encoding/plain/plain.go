// Package plain implements the PLAIN parquet encoding: values packed
// back-to-back with no framing beyond BYTE_ARRAY's own 4-byte length
// prefix.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"fmt"

	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/internal/unsafecast"
)

type Decoder struct{ encoding.NotSupported }

func (d *Decoder) Encoding() format.Encoding { return format.EncodingPlain }

func (d *Decoder) DecodeBoolean(dst []bool, src []byte) (int, error) {
	n := len(dst)
	if need := (n + 7) / 8; len(src) < need {
		n = len(src) * 8
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i/8]&(1<<uint(i%8)) != 0
	}
	return n, nil
}

func (d *Decoder) DecodeInt32(dst []int32, src []byte) (int, error) {
	if len(src)%4 != 0 {
		return 0, fmt.Errorf("plain: INT32 input length %d is not a multiple of 4", len(src))
	}
	n := copy(dst, unsafecast.BytesToInt32(src))
	return n, nil
}

func (d *Decoder) DecodeInt64(dst []int64, src []byte) (int, error) {
	if len(src)%8 != 0 {
		return 0, fmt.Errorf("plain: INT64 input length %d is not a multiple of 8", len(src))
	}
	n := copy(dst, unsafecast.BytesToInt64(src))
	return n, nil
}

func (d *Decoder) DecodeInt96(dst [][12]byte, src []byte) (int, error) {
	if len(src)%12 != 0 {
		return 0, fmt.Errorf("plain: INT96 input length %d is not a multiple of 12", len(src))
	}
	n := len(src) / 12
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		copy(dst[i][:], src[i*12:i*12+12])
	}
	return n, nil
}

func (d *Decoder) DecodeFloat(dst []float32, src []byte) (int, error) {
	if len(src)%4 != 0 {
		return 0, fmt.Errorf("plain: FLOAT input length %d is not a multiple of 4", len(src))
	}
	n := copy(dst, unsafecast.BytesToFloat32(src))
	return n, nil
}

func (d *Decoder) DecodeDouble(dst []float64, src []byte) (int, error) {
	if len(src)%8 != 0 {
		return 0, fmt.Errorf("plain: DOUBLE input length %d is not a multiple of 8", len(src))
	}
	n := copy(dst, unsafecast.BytesToFloat64(src))
	return n, nil
}

func (d *Decoder) DecodeByteArray(dst *encoding.ByteArrayBuffer, src []byte) (int, error) {
	n := 0
	for len(src) > 0 {
		if len(src) < 4 {
			return n, fmt.Errorf("plain: truncated BYTE_ARRAY length prefix")
		}
		length := int(binary.LittleEndian.Uint32(src))
		src = src[4:]
		if length < 0 || length > len(src) {
			return n, fmt.Errorf("plain: BYTE_ARRAY value length %d exceeds remaining input", length)
		}
		dst.Append(src[:length])
		src = src[length:]
		n++
	}
	return n, nil
}

func (d *Decoder) DecodeFixedLenByteArray(dst []byte, size int, src []byte) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("plain: invalid FIXED_LEN_BYTE_ARRAY size %d", size)
	}
	if len(src)%size != 0 {
		return 0, fmt.Errorf("plain: FIXED_LEN_BYTE_ARRAY input length %d is not a multiple of %d", len(src), size)
	}
	n := copy(dst, src)
	return n / size, nil
}
