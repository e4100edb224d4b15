// Package snappy implements the SNAPPY parquet compression codec.
//
// Parquet uses the raw snappy block format rather than the framed format a
// generic io.Reader-based snappy stream would expect, so decoding is a
// direct call rather than something built on the shared Decompressor pool.
package snappy

import (
	"github.com/klauspost/compress/snappy"

	"github.com/hardwood-go/parquet/format"
)

type Codec struct{}

func (c *Codec) String() string { return "SNAPPY" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Snappy }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst[:0], src)
}
