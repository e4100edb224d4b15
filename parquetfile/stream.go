package parquetfile

import (
	"github.com/hardwood-go/parquet/config"
	"github.com/hardwood-go/parquet/parqueterr"
	"github.com/hardwood-go/parquet/row"
	"github.com/hardwood-go/parquet/schema"
)

// StreamReader chains row groups within a file, then files in the order
// given to the FileManager, behind a single row.RowReader: file N+1's rows
// never become visible until file N's last row group is exhausted (spec
// §5), and every file after the first is validated against the first
// file's schema (spec §4.8) before any of its rows are read.
type StreamReader struct {
	manager *FileManager
	fields  []string
	cfg     *config.Config

	reference *schema.Node

	fileIndex int
	rowGroup  int
	current   *FileHandle
	rr        *row.RowReader

	closed bool
}

// NewStreamReader opens the manager's first file and its first row group,
// projecting fields.
func NewStreamReader(manager *FileManager, fields []string, cfg *config.Config) (*StreamReader, error) {
	s := &StreamReader{manager: manager, fields: fields, cfg: cfg, rowGroup: -1}
	if err := s.openFile(0); err != nil {
		return nil, err
	}
	if err := s.advanceRowGroup(); err != nil {
		return nil, err
	}
	return s, nil
}

// openFile fetches file i from the manager, validating its schema against
// the first file opened (the reference) once one exists.
func (s *StreamReader) openFile(i int) error {
	handle, err := s.manager.Get(i)
	if err != nil {
		return err
	}
	if s.reference == nil {
		s.reference = handle.Root()
	} else if err := handle.ValidateSchema(s.fields, s.reference); err != nil {
		return err
	}
	s.fileIndex = i
	s.current = handle
	s.rowGroup = -1
	return nil
}

// advanceRowGroup moves to the next row group of the current file, opening
// the next file (and skipping empty files) when the current one is
// exhausted. Returns ErrExhausted once every file's every row group has
// been consumed.
func (s *StreamReader) advanceRowGroup() error {
	for {
		s.rowGroup++
		if s.rowGroup < s.current.NumRowGroups() {
			rr, err := row.NewRowReader(s.current.Root(), s.fields, s.cfg.BatchSize, s.current.SourceFor(s.rowGroup))
			if err != nil {
				return err
			}
			s.rr = rr
			return nil
		}

		next := s.fileIndex + 1
		if next >= s.manager.NumFiles() {
			s.rr = nil
			return parqueterr.ErrExhausted
		}
		if err := s.openFile(next); err != nil {
			return err
		}
	}
}

// Next advances to the next row, crossing row group and file boundaries
// transparently. Returns false once every file is exhausted.
func (s *StreamReader) Next() (bool, error) {
	if s.closed {
		return false, parqueterr.ErrExhausted
	}
	for {
		if s.rr == nil {
			return false, nil
		}
		ok, err := s.rr.Next()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if err := s.advanceRowGroup(); err != nil {
			if err == parqueterr.ErrExhausted {
				return false, nil
			}
			return false, err
		}
	}
}

// Row returns the RowReader backing the current row, for typed field
// access — StreamReader forwards to it rather than re-exposing every
// GetInt/GetString/GetList/... accessor itself.
func (s *StreamReader) Row() *row.RowReader { return s.rr }

// Close releases every file the manager has opened or started opening.
func (s *StreamReader) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.rr = nil
	return s.manager.Close()
}
