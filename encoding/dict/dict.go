// Package dict decodes DICTIONARY_PAGE bodies (always PLAIN-encoded,
// spec §4.3) into a typed Dictionary, and expands RLE/bit-packed index
// streams (PLAIN_DICTIONARY/RLE_DICTIONARY pages) against one.
package dict

import (
	"fmt"

	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/encoding/plain"
	"github.com/hardwood-go/parquet/format"
)

// Dictionary holds one column chunk's dictionary page, decoded once and
// shared by every data page in the chunk that references it by index.
type Dictionary struct {
	Type         format.Type
	FixedLenSize int

	Int32     []int32
	Int64     []int64
	Int96     [][12]byte
	Float     []float32
	Double    []float64
	Boolean   []bool
	ByteArray encoding.ByteArrayBuffer
	FixedLen  []byte
}

// Len reports the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	switch d.Type {
	case format.Int32:
		return len(d.Int32)
	case format.Int64:
		return len(d.Int64)
	case format.Int96:
		return len(d.Int96)
	case format.Float:
		return len(d.Float)
	case format.Double:
		return len(d.Double)
	case format.Boolean:
		return len(d.Boolean)
	case format.ByteArray:
		return d.ByteArray.Len()
	case format.FixedLenByteArray:
		if d.FixedLenSize == 0 {
			return 0
		}
		return len(d.FixedLen) / d.FixedLenSize
	default:
		return 0
	}
}

// Decode parses a PLAIN-encoded dictionary page body of numValues entries.
func Decode(typ format.Type, typeLength int, numValues int, src []byte) (*Dictionary, error) {
	d := &Dictionary{Type: typ, FixedLenSize: typeLength}
	dec := &plain.Decoder{}
	var err error
	switch typ {
	case format.Boolean:
		d.Boolean = make([]bool, numValues)
		_, err = dec.DecodeBoolean(d.Boolean, src)
	case format.Int32:
		d.Int32 = make([]int32, numValues)
		_, err = dec.DecodeInt32(d.Int32, src)
	case format.Int64:
		d.Int64 = make([]int64, numValues)
		_, err = dec.DecodeInt64(d.Int64, src)
	case format.Int96:
		d.Int96 = make([][12]byte, numValues)
		_, err = dec.DecodeInt96(d.Int96, src)
	case format.Float:
		d.Float = make([]float32, numValues)
		_, err = dec.DecodeFloat(d.Float, src)
	case format.Double:
		d.Double = make([]float64, numValues)
		_, err = dec.DecodeDouble(d.Double, src)
	case format.ByteArray:
		_, err = dec.DecodeByteArray(&d.ByteArray, src)
	case format.FixedLenByteArray:
		d.FixedLen = make([]byte, numValues*typeLength)
		_, err = dec.DecodeFixedLenByteArray(d.FixedLen, typeLength, src)
	default:
		return nil, fmt.Errorf("dict: unsupported physical type %s", typ)
	}
	if err != nil {
		return nil, fmt.Errorf("dict: decoding dictionary page: %w", err)
	}
	return d, nil
}

// LookupInt32 expands indices against the dictionary into dst.
func (d *Dictionary) LookupInt32(dst []int32, indices []int32) {
	for i, idx := range indices {
		dst[i] = d.Int32[idx]
	}
}

// LookupInt64 expands indices against the dictionary into dst.
func (d *Dictionary) LookupInt64(dst []int64, indices []int32) {
	for i, idx := range indices {
		dst[i] = d.Int64[idx]
	}
}

// LookupFloat expands indices against the dictionary into dst.
func (d *Dictionary) LookupFloat(dst []float32, indices []int32) {
	for i, idx := range indices {
		dst[i] = d.Float[idx]
	}
}

// LookupDouble expands indices against the dictionary into dst.
func (d *Dictionary) LookupDouble(dst []float64, indices []int32) {
	for i, idx := range indices {
		dst[i] = d.Double[idx]
	}
}

// LookupInt96 expands indices against the dictionary into dst.
func (d *Dictionary) LookupInt96(dst [][12]byte, indices []int32) {
	for i, idx := range indices {
		dst[i] = d.Int96[idx]
	}
}

// LookupBoolean expands indices against the dictionary into dst.
func (d *Dictionary) LookupBoolean(dst []bool, indices []int32) {
	for i, idx := range indices {
		dst[i] = d.Boolean[idx]
	}
}

// LookupByteArray appends each indexed entry onto dst in order.
func (d *Dictionary) LookupByteArray(dst *encoding.ByteArrayBuffer, indices []int32) {
	for _, idx := range indices {
		dst.Append(d.ByteArray.At(int(idx)))
	}
}

// LookupFixedLenByteArray expands indices against the dictionary into dst.
func (d *Dictionary) LookupFixedLenByteArray(dst []byte, indices []int32) {
	size := d.FixedLenSize
	for i, idx := range indices {
		copy(dst[i*size:(i+1)*size], d.FixedLen[int(idx)*size:(int(idx)+1)*size])
	}
}
