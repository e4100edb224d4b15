package parquetfile

import "os"

// OSFile adapts *os.File to pagereader.ByteSource, the same minimal
// ReaderAt-plus-Size shape the teacher's own pio.File adapter wraps
// *os.File in for its MultiReadAt fan-out. Unlike pio.File, OSFile issues
// one pread per call rather than batching several offsets into a single
// syscall: the decode pool already parallelizes independent column reads
// across goroutines (internal/parallel), so a second, kernel-level batching
// layer over the same reads would duplicate that concurrency story without
// a caller that needs it (see DESIGN.md).
type OSFile struct {
	f    *os.File
	size int64
}

// OpenOSFile opens path and stats it once, so Size is free afterward.
func OpenOSFile(path string) (*OSFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &OSFile{f: f, size: info.Size()}, nil
}

func (o *OSFile) ReadAt(buf []byte, offset int64) (int, error) { return o.f.ReadAt(buf, offset) }
func (o *OSFile) Size() int64                                  { return o.size }
func (o *OSFile) Close() error                                 { return o.f.Close() }
