package parquetfile

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/hardwood-go/parquet/column"
	"github.com/hardwood-go/parquet/compress"
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/internal/parallel"
	"github.com/hardwood-go/parquet/pagereader"
	"github.com/hardwood-go/parquet/parqueterr"
	"github.com/hardwood-go/parquet/schema"
)

const magic = "PAR1"

// FileHandle is one opened, footer-parsed Parquet file: magic bytes
// checked, Thrift footer decoded, schema tree built. Column chunks and
// pages are left untouched until a row group is actually read, mirroring
// the teacher's OpenFile ("only the parquet magic bytes and footer are
// read").
type FileHandle struct {
	name     string
	src      pagereader.ByteSource
	registry *compress.Registry

	meta *format.FileMetaData
	root *schema.Node
}

// Open reads and validates the footer of src, named name for error
// messages, and builds its schema tree.
func Open(name string, src pagereader.ByteSource, registry *compress.Registry) (*FileHandle, error) {
	size := src.Size()
	if size < int64(len(magic))*2+4 {
		return nil, &parqueterr.CorruptMetadata{Reason: fmt.Sprintf("file %q too small to be a parquet file", name)}
	}

	header := make([]byte, 4)
	if _, err := src.ReadAt(header, 0); err != nil {
		return nil, &parqueterr.IoFailure{Op: "reading magic header", Err: err}
	}
	if string(header) != magic {
		return nil, &parqueterr.CorruptMetadata{Reason: fmt.Sprintf("file %q: bad magic header %q", name, header)}
	}

	footerTail := make([]byte, 8)
	if _, err := src.ReadAt(footerTail, size-8); err != nil {
		return nil, &parqueterr.IoFailure{Op: "reading magic footer", Err: err}
	}
	if string(footerTail[4:]) != magic {
		return nil, &parqueterr.CorruptMetadata{Reason: fmt.Sprintf("file %q: bad magic footer %q", name, footerTail[4:])}
	}

	footerSize := int64(binary.LittleEndian.Uint32(footerTail[:4]))
	if footerSize < 0 || footerSize > size-8 {
		return nil, &parqueterr.CorruptMetadata{Reason: fmt.Sprintf("file %q: implausible footer size %d", name, footerSize)}
	}

	footer := make([]byte, footerSize)
	if _, err := src.ReadAt(footer, size-8-footerSize); err != nil {
		return nil, &parqueterr.IoFailure{Op: "reading footer", Err: err}
	}

	meta, err := format.DecodeFileMetaData(footer)
	if err != nil {
		return nil, &parqueterr.CorruptMetadata{Reason: fmt.Sprintf("decoding footer of %q", name), Err: err}
	}

	root, err := schema.BuildTree(meta.Schema)
	if err != nil {
		return nil, &parqueterr.CorruptMetadata{Reason: fmt.Sprintf("building schema tree of %q", name), Err: err}
	}

	return &FileHandle{name: name, src: src, registry: registry, meta: meta, root: root}, nil
}

// Name returns the identifier Open was called with.
func (h *FileHandle) Name() string { return h.name }

// Root returns the file's schema tree.
func (h *FileHandle) Root() *schema.Node { return h.root }

// NumRowGroups reports how many row groups the footer declares.
func (h *FileHandle) NumRowGroups() int { return len(h.meta.RowGroups) }

// NumRows reports the row group's declared row count.
func (h *FileHandle) NumRows(rowGroup int) int64 { return h.meta.RowGroups[rowGroup].NumRows }

// ValidateSchema checks that every named top-level field exists in this
// file with the same leaf physical types (by position) as the same field
// in reference, scanning one field per goroutine since the checks are
// independent (spec: "fail with SchemaIncompatible if the column is
// missing or its physical type differs").
func (h *FileHandle) ValidateSchema(fields []string, reference *schema.Node) error {
	return parallel.Run(len(fields), func(i int) error {
		name := fields[i]
		have := h.root.ChildByName(name)
		if have == nil {
			return &parqueterr.SchemaIncompatible{File: h.name, Column: name, Reason: "column missing"}
		}
		want := reference.ChildByName(name)
		if want == nil {
			return nil
		}
		return compareLeaves(h.name, name, want, have)
	})
}

func compareLeaves(file, field string, want, have *schema.Node) error {
	wl, hl := want.Leaves(), have.Leaves()
	if len(wl) != len(hl) {
		return &parqueterr.SchemaIncompatible{File: file, Column: field, Reason: "leaf structure differs"}
	}
	for i := range wl {
		if wl[i].PhysicalType != hl[i].PhysicalType {
			return &parqueterr.SchemaIncompatible{
				File:   file,
				Column: strings.Join(hl[i].Path, "."),
				Reason: fmt.Sprintf("physical type %s, expected %s", hl[i].PhysicalType, wl[i].PhysicalType),
			}
		}
	}
	return nil
}

// SourceFor returns a source-of-PageSource closure for row group rg,
// suitable as row.NewRowReader's sourceFor argument: looking up a leaf's
// column chunk metadata by its computed ColumnIndex and wrapping it in a
// pagereader.ColumnChunkReader over this file's bytes.
func (h *FileHandle) SourceFor(rg int) func(*schema.Node) column.PageSource {
	group := h.meta.RowGroups[rg]
	return func(n *schema.Node) column.PageSource {
		chunk := group.Columns[n.ColumnIndex]
		cr := pagereader.NewColumnChunkReader(h.src, h.registry, n.ColumnIndex, chunk.MetaData, n.MaxRepetitionLevel, n.MaxDefinitionLevel)
		if n.PhysicalType == format.FixedLenByteArray {
			cr.SetTypeLength(int(n.TypeLength))
		}
		return cr
	}
}

// Close releases the underlying byte source, if it supports closing.
func (h *FileHandle) Close() error {
	if c, ok := h.src.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
