// Package parquet reads Apache Parquet files: columnar, nested, dictionary-
// and run-length-encoded data laid out in row groups and column chunks
// behind a Thrift Compact Protocol footer. Open a set of files and pull
// rows out of the returned StreamReader in order.
package parquet

import (
	"github.com/hardwood-go/parquet/config"
	"github.com/hardwood-go/parquet/pagereader"
	"github.com/hardwood-go/parquet/parquetfile"
)

// Open opens the named local files in order and returns a StreamReader
// projecting fields from each, validating every file after the first
// against the first file's schema (spec §4.8).
func Open(fields []string, names []string, options ...config.Option) (*parquetfile.StreamReader, error) {
	cfg := config.Default()
	cfg.Apply(options...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	manager := parquetfile.NewFileManager(names, openLocal, cfg)
	return parquetfile.NewStreamReader(manager, fields, cfg)
}

func openLocal(name string) (pagereader.ByteSource, error) {
	return parquetfile.OpenOSFile(name)
}
