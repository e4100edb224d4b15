// Package zstd implements the ZSTD parquet compression codec.
package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/hardwood-go/parquet/compress"
	"github.com/hardwood-go/parquet/format"
)

// Codec decodes ZSTD pages. Decoder concurrency is pinned to 1: parallelism
// in this reader comes from decoding many pages/columns at once, not from
// parallelizing a single frame.
type Codec struct {
	pool compress.Decompressor
}

func (c *Codec) String() string { return "ZSTD" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Zstd }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.pool.Decode(dst, src, c.newReader)
}

func (c *Codec) newReader(r io.Reader) (compress.Reader, error) {
	z, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

type reader struct{ *zstd.Decoder }

func (r reader) Close() error { r.Decoder.Close(); return nil }

func (r reader) Reset(rr io.Reader) error {
	if rr == nil {
		rr = emptyReader{}
	}
	return r.Decoder.Reset(rr)
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }
