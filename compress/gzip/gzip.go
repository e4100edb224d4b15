// Package gzip implements the GZIP parquet compression codec.
package gzip

import (
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sys/cpu"

	"github.com/hardwood-go/parquet/compress"
	"github.com/hardwood-go/parquet/format"
)

const emptyGzip = "\x1f\x8b\b\x00\x00\x00\x00\x00\x02\xff\x01\x00\x00\xff\xff\x00\x00\x00\x00\x00\x00\x00\x00"

// Codec decodes GZIP pages using klauspost/compress/gzip, which is
// consistently faster than the standard library's implementation and is
// what the rest of this module's compression stack is built on.
//
// PreferFastPath mirrors the reader config's UseLibdeflate option (spec
// §6): when set, and the host CPU exposes AVX2 (amd64) or ASIMD (arm64),
// new readers have multistream mode turned off, so Decode stops after the
// first gzip member instead of reading on into concatenated members.
type Codec struct {
	PreferFastPath bool
	pool           compress.Decompressor
}

func (c *Codec) String() string { return "GZIP" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Gzip }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.pool.Decode(dst, src, c.newReader)
}

func (c *Codec) newReader(r io.Reader) (compress.Reader, error) {
	if r == nil {
		r = strings.NewReader(emptyGzip)
	}
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	if c.fastPathAvailable() {
		z.Multistream(false)
	}
	return reader{z}, nil
}

// fastPathAvailable reports whether the SIMD-accelerated inflate path is
// worth preferring on this host. amd64 hosts with AVX2 and arm64 hosts with
// a NEON-capable gzip implementation both benefit; everything else falls
// back to klauspost's portable path regardless of PreferFastPath.
func (c *Codec) fastPathAvailable() bool {
	if !c.PreferFastPath {
		return false
	}
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAVX2
	case "arm64":
		return cpu.ARM64.HasASIMD
	default:
		return false
	}
}

type reader struct{ *gzip.Reader }

func (r reader) Reset(rr io.Reader) error {
	if rr == nil {
		rr = strings.NewReader(emptyGzip)
	}
	return r.Reader.Reset(rr)
}
