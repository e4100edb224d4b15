// Package bytestreamsplit implements the BYTE_STREAM_SPLIT parquet
// encoding: each value's bytes are split across N "byte streams" (one per
// byte position), which tends to compress far better than interleaved
// bytes for floating point columns.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#byte-stream-split-byte_stream_split--9
package bytestreamsplit

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/format"
)

type Decoder struct{ encoding.NotSupported }

func (d *Decoder) Encoding() format.Encoding { return format.EncodingByteStreamSplit }

func (d *Decoder) DecodeFloat(dst []float32, src []byte) (int, error) {
	n, err := decodeStreams(src, 4, len(dst))
	for i := 0; i < n; i++ {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(gather(src, 4, n, i)))
	}
	return n, err
}

func (d *Decoder) DecodeDouble(dst []float64, src []byte) (int, error) {
	n, err := decodeStreams(src, 8, len(dst))
	for i := 0; i < n; i++ {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(gather(src, 8, n, i)))
	}
	return n, err
}

func decodeStreams(src []byte, width, limit int) (int, error) {
	if len(src)%width != 0 {
		return 0, fmt.Errorf("bytestreamsplit: input length %d is not a multiple of %d", len(src), width)
	}
	n := len(src) / width
	if n > limit {
		n = limit
	}
	return n, nil
}

// gather reassembles the width bytes of value i by reading byte position b
// from stream b, each of length n, laid out back-to-back in src.
func gather(src []byte, width, n, i int) []byte {
	var buf [8]byte
	for b := 0; b < width; b++ {
		buf[b] = src[b*n+i]
	}
	return buf[:width]
}
