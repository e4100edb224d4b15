// Package pagereader iterates the pages of one column chunk, handling the
// v1/v2 layout split, dictionary page caching, decompression, and value
// decoding across the standard Parquet encodings.
package pagereader

// ByteSource is random-access read access to one underlying Parquet file.
// A memory-mapped file is the expected implementation but not required;
// any implementation backed by pread/ReadAt semantics works.
type ByteSource interface {
	ReadAt(buf []byte, offset int64) (int, error)
	Size() int64
}
