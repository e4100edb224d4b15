// Package compress provides the generic APIs implemented by each supported
// parquet compression codec, plus a registry mapping format.CompressionCodec
// values to a Codec implementation (spec §4.3, §6: decompress(codec, src,
// expectedUncompressedLen) -> bytes).
//
// https://github.com/apache/parquet-format/blob/master/Compression.md
package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/parqueterr"
)

// Codec is implemented by each compress sub-package. Implementations must be
// safe to use concurrently from multiple goroutines: the decode pool calls
// Decode from many column readers at once.
type Codec interface {
	// String returns a human-readable name for the codec.
	String() string

	// CompressionCodec returns the format code this Codec decodes.
	CompressionCodec() format.CompressionCodec

	// Decode writes the uncompressed version of src to dst and returns it,
	// reallocating dst if its capacity is too small. Callers preallocate dst
	// from the page header's declared uncompressed size.
	Decode(dst, src []byte) ([]byte, error)
}

// Reader is the subset of codec-specific streaming decompressors the
// Decompressor helper pools and reuses.
type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

// Decompressor pools per-codec Reader instances so repeated page decodes in
// the same column reader don't reallocate a decompressor per page.
type Decompressor struct {
	readers sync.Pool
}

// Decode decompresses src into dst using a pooled Reader obtained from
// newReader, growing dst as needed.
func (d *Decompressor) Decode(dst, src []byte, newReader func(io.Reader) (Reader, error)) ([]byte, error) {
	input := bytes.NewReader(src)

	r, _ := d.readers.Get().(Reader)
	if r != nil {
		if err := r.Reset(input); err != nil {
			return dst, err
		}
	} else {
		var err error
		if r, err = newReader(input); err != nil {
			return dst, err
		}
	}

	defer func() {
		if err := r.Reset(nil); err == nil {
			d.readers.Put(r)
		}
	}()

	output := bytes.NewBuffer(dst[:0])
	_, err := output.ReadFrom(r)
	return output.Bytes(), err
}

// Registry maps format.CompressionCodec values to their Codec.
type Registry struct {
	codecs map[format.CompressionCodec]Codec
}

// NewRegistry builds a Registry pre-populated with every codec this reader
// supports. LZO has no entry: Decompress reports *parqueterr.UnsupportedCodec
// for it, matching the format's own long-standing LZO interoperability gap.
func NewRegistry(useLibdeflate bool) *Registry {
	r := &Registry{codecs: make(map[format.CompressionCodec]Codec, 8)}
	for _, c := range builtinCodecs(useLibdeflate) {
		r.codecs[c.CompressionCodec()] = c
	}
	return r
}

// Decompress looks up the codec for the given format code and decodes src
// into dst, reusing dst's capacity and growing it when needed.
func (r *Registry) Decompress(codec format.CompressionCodec, dst, src []byte) ([]byte, error) {
	if codec == format.Uncompressed {
		return append(dst[:0], src...), nil
	}
	c, ok := r.codecs[codec]
	if !ok {
		return nil, &parqueterr.UnsupportedCodec{Codec: codec.String()}
	}
	out, err := c.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("parquet: decompressing with codec %s: %w", codec, err)
	}
	return out, nil
}
