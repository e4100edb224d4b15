package compress

import (
	"github.com/hardwood-go/parquet/compress/brotli"
	"github.com/hardwood-go/parquet/compress/gzip"
	"github.com/hardwood-go/parquet/compress/lz4"
	"github.com/hardwood-go/parquet/compress/snappy"
	"github.com/hardwood-go/parquet/compress/zstd"
)

// builtinCodecs lists every codec this reader ships. UNCOMPRESSED has no
// entry; it's handled directly by Registry.Decompress. LZO has no entry by
// design (spec: unsupported).
func builtinCodecs(useLibdeflate bool) []Codec {
	return []Codec{
		&snappy.Codec{},
		&gzip.Codec{PreferFastPath: useLibdeflate},
		&brotli.Codec{},
		&zstd.Codec{},
		&lz4.RawCodec{},
		&lz4.LegacyCodec{},
	}
}
