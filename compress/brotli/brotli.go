// Package brotli implements the BROTLI parquet compression codec.
package brotli

import (
	"io"

	"github.com/andybalholm/brotli"

	"github.com/hardwood-go/parquet/compress"
	"github.com/hardwood-go/parquet/format"
)

type Codec struct {
	pool compress.Decompressor
}

func (c *Codec) String() string { return "BROTLI" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Brotli }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.pool.Decode(dst, src, c.newReader)
}

func (c *Codec) newReader(r io.Reader) (compress.Reader, error) {
	return reader{brotli.NewReader(r)}, nil
}

type reader struct{ *brotli.Reader }

func (r reader) Close() error { return nil }

func (r reader) Reset(rr io.Reader) error { r.Reader.Reset(rr); return nil }
