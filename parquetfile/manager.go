package parquetfile

import (
	"fmt"
	"sync"

	"github.com/hardwood-go/parquet/compress"
	"github.com/hardwood-go/parquet/config"
	"github.com/hardwood-go/parquet/internal/debug"
	"github.com/hardwood-go/parquet/pagereader"
	"github.com/hardwood-go/parquet/parqueterr"
)

// Opener turns one of a FileManager's names into a readable byte source.
// OpenOSFile satisfies this for local files.
type Opener func(name string) (pagereader.ByteSource, error)

// FileManager owns the set of files a stream reads in order, opening and
// footer-parsing each one in the background: serving file N always starts
// file N+1 loading too, so its footer is already decoded by the time the
// stream reaches it (spec §5's cross-file prefetch). Futures are keyed by
// file index and upserted idempotently — calling ensureLoading twice for
// the same index is a no-op the second time.
type FileManager struct {
	names    []string
	opener   Opener
	registry *compress.Registry

	mu      sync.Mutex
	futures map[int]*fileFuture
}

type fileFuture struct {
	done   chan struct{}
	handle *FileHandle
	err    error
}

// NewFileManager builds a manager over names, using cfg's UseLibdeflate
// setting for the shared decompressor registry every file reads through.
func NewFileManager(names []string, opener Opener, cfg *config.Config) *FileManager {
	return &FileManager{
		names:    names,
		opener:   opener,
		registry: compress.NewRegistry(cfg.UseLibdeflate),
		futures:  make(map[int]*fileFuture),
	}
}

// NumFiles reports how many files this manager was constructed with.
func (m *FileManager) NumFiles() int { return len(m.names) }

// ensureLoading starts opening file i if no future exists for it yet,
// returning the (possibly already in-flight, possibly already resolved)
// future either way.
func (m *FileManager) ensureLoading(i int) *fileFuture {
	m.mu.Lock()
	f, ok := m.futures[i]
	if ok {
		m.mu.Unlock()
		return f
	}
	f = &fileFuture{done: make(chan struct{})}
	m.futures[i] = f
	m.mu.Unlock()

	debug.Logf("prefetch-launch: file %d (%s)", i, m.names[i])
	go func() {
		defer close(f.done)
		src, err := m.opener(m.names[i])
		if err != nil {
			f.err = &parqueterr.IoFailure{Op: fmt.Sprintf("opening %q", m.names[i]), Err: err}
			return
		}
		f.handle, f.err = Open(m.names[i], src, m.registry)
	}()
	return f
}

// Get blocks until file i's footer has been parsed, launching file i+1's
// load first so it overlaps with the wait for file i.
func (m *FileManager) Get(i int) (*FileHandle, error) {
	if i < 0 || i >= len(m.names) {
		return nil, parqueterr.ErrExhausted
	}
	f := m.ensureLoading(i)
	if i+1 < len(m.names) {
		m.ensureLoading(i + 1)
	}
	<-f.done
	return f.handle, f.err
}

// Close releases every file opened so far. Outstanding futures that
// haven't resolved yet are left to finish on their own goroutine and
// closed once resolved; Close does not cancel in-flight opens, matching
// the "outstanding futures must not write to shared state after close"
// requirement by simply not touching the future slots again.
func (m *FileManager) Close() error {
	m.mu.Lock()
	futures := make([]*fileFuture, 0, len(m.futures))
	for _, f := range m.futures {
		futures = append(futures, f)
	}
	m.futures = make(map[int]*fileFuture)
	m.mu.Unlock()

	var first error
	for _, f := range futures {
		<-f.done
		if f.handle != nil {
			if err := f.handle.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
