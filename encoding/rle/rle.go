// Package rle implements parquet's hybrid RLE / bit-packed run encoding,
// the format used for repetition levels, definition levels, dictionary
// indices, and (rarely, directly) BOOLEAN columns.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#run-length-encoding--bit-packing-hybrid-rle--3
package rle

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/format"
)

// DecodeHybrid decodes a run-length/bit-packed hybrid stream with no
// length prefix, stopping once len(dst) values have been produced or src is
// exhausted. It returns the number of values written.
func DecodeHybrid(dst []int32, bitWidth int, src []byte) (int, error) {
	if bitWidth < 0 || bitWidth > 32 {
		return 0, fmt.Errorf("rle: invalid bit width %d", bitWidth)
	}
	if bitWidth == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return len(dst), nil
	}

	pos := 0
	for pos < len(dst) && len(src) > 0 {
		header, n := binary.Uvarint(src)
		if n <= 0 {
			return pos, fmt.Errorf("rle: truncated run header")
		}
		src = src[n:]

		if header&1 == 0 {
			runLen := int(header >> 1)
			width := (bitWidth + 7) / 8
			if len(src) < width {
				return pos, fmt.Errorf("rle: truncated RLE run value")
			}
			var value uint64
			for i := 0; i < width; i++ {
				value |= uint64(src[i]) << (8 * i)
			}
			src = src[width:]
			if runLen > len(dst)-pos {
				runLen = len(dst) - pos
			}
			v := int32(value)
			for i := 0; i < runLen; i++ {
				dst[pos+i] = v
			}
			pos += runLen
		} else {
			numGroups := int(header >> 1)
			numValues := numGroups * 8
			byteCount := (numValues * bitWidth) / 8
			if len(src) < byteCount {
				return pos, fmt.Errorf("rle: truncated bit-packed run")
			}
			packed := src[:byteCount]
			src = src[byteCount:]

			want := numValues
			if want > len(dst)-pos {
				want = len(dst) - pos
			}
			unpackInto(dst[pos:pos+want], bitWidth, packed)
			pos += want
		}
	}
	return pos, nil
}

// unpackInto unpacks len(dst) bitWidth-wide, LSB-first packed values from
// packed into dst.
func unpackInto(dst []int32, bitWidth int, packed []byte) {
	var bitBuf uint64
	var bitCount uint
	bytePos := 0

	for i := 0; i < len(dst); i++ {
		for bitCount < uint(bitWidth) && bytePos < len(packed) {
			bitBuf |= uint64(packed[bytePos]) << bitCount
			bitCount += 8
			bytePos++
		}
		mask := uint64(1)<<uint(bitWidth) - 1
		dst[i] = int32(bitBuf & mask)
		bitBuf >>= uint(bitWidth)
		bitCount -= uint(bitWidth)
	}
}

// BitWidthFor returns the number of bits needed to represent values in
// [0, maxValue], matching the width a writer would have chosen for a
// column's repetition/definition levels or dictionary index stream.
func BitWidthFor(maxValue int) int {
	if maxValue <= 0 {
		return 0
	}
	return bits.Len(uint(maxValue))
}

// DecodeLevels decodes the length-prefixed hybrid stream layout used for
// DATA_PAGE (v1) repetition/definition levels: a 4-byte little-endian
// length, followed by that many bytes of hybrid-encoded values. It returns
// the values written to dst and the total number of input bytes consumed
// (4 + the declared length). When bitWidth is 0 no stream is present: dst
// is filled with zeros and consumed is 0.
func DecodeLevels(dst []int32, bitWidth int, src []byte) (n, consumed int, err error) {
	if bitWidth == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return len(dst), 0, nil
	}
	if len(src) < 4 {
		return 0, 0, fmt.Errorf("rle: truncated level stream length prefix")
	}
	length := int(binary.LittleEndian.Uint32(src))
	if length < 0 || length > len(src)-4 {
		return 0, 0, fmt.Errorf("rle: level stream length %d exceeds input", length)
	}
	n, err = DecodeHybrid(dst, bitWidth, src[4:4+length])
	return n, 4 + length, err
}

// DecodeDictionaryIndices decodes a PLAIN_DICTIONARY/RLE_DICTIONARY page
// body: a one-byte bit width, followed by a hybrid stream with no length
// prefix (the page's own compressed/uncompressed size already bounds it).
func DecodeDictionaryIndices(dst []int32, src []byte) (int, error) {
	if len(src) < 1 {
		return 0, fmt.Errorf("rle: truncated dictionary index bit width")
	}
	bitWidth := int(src[0])
	return DecodeHybrid(dst, bitWidth, src[1:])
}

// Decoder implements the rarely-seen case of a BOOLEAN column encoded
// directly with the top-level RLE encoding (bit width fixed at 1).
type Decoder struct{ encoding.NotSupported }

func (d *Decoder) Encoding() format.Encoding { return format.EncodingRLE }

func (d *Decoder) DecodeBoolean(dst []bool, src []byte) (int, error) {
	levels := make([]int32, len(dst))
	n, _, err := DecodeLevels(levels, 1, src)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		dst[i] = levels[i] != 0
	}
	return n, nil
}
