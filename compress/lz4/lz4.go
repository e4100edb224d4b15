// Package lz4 implements the LZ4_RAW parquet compression codec, and the
// legacy LZ4 codec as the same raw block format: the original "Hadoop LZ4"
// framing was never interoperable in practice and every reader ecosystem
// has converged on treating LZ4 pages as raw LZ4 blocks.
package lz4

import (
	"github.com/pierrec/lz4/v4"

	"github.com/hardwood-go/parquet/format"
)

// RawCodec decodes LZ4_RAW pages.
type RawCodec struct{}

func (c *RawCodec) String() string { return "LZ4_RAW" }

func (c *RawCodec) CompressionCodec() format.CompressionCodec { return format.Lz4Raw }

func (c *RawCodec) Decode(dst, src []byte) ([]byte, error) {
	return decodeBlock(dst, src)
}

// LegacyCodec decodes LZ4 pages as raw LZ4 blocks (see package doc).
type LegacyCodec struct{}

func (c *LegacyCodec) String() string { return "LZ4" }

func (c *LegacyCodec) CompressionCodec() format.CompressionCodec { return format.Lz4 }

func (c *LegacyCodec) Decode(dst, src []byte) ([]byte, error) {
	return decodeBlock(dst, src)
}

func decodeBlock(dst, src []byte) ([]byte, error) {
	if cap(dst) < 4*len(src) {
		dst = make([]byte, 4*len(src))
	} else {
		dst = dst[:cap(dst)]
	}
	for {
		n, err := lz4.UncompressBlock(src, dst)
		if err == nil {
			return dst[:n], nil
		}
		if len(dst) > 1<<30 {
			return nil, err
		}
		dst = make([]byte, 2*len(dst))
	}
}
