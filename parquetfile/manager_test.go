package parquetfile

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/config"
	"github.com/hardwood-go/parquet/pagereader"
)

type tinySource struct{ b []byte }

func (s *tinySource) ReadAt(buf []byte, offset int64) (int, error) {
	return copy(buf, s.b[offset:]), nil
}
func (s *tinySource) Size() int64 { return int64(len(s.b)) }

// countingOpener records, in call order, which names were opened; every
// call returns a source too small to be a valid parquet file, so Open
// always fails deterministically without needing a hand-built footer.
type countingOpener struct {
	mu    sync.Mutex
	calls []string
}

func (o *countingOpener) open(name string) (pagereader.ByteSource, error) {
	o.mu.Lock()
	o.calls = append(o.calls, name)
	o.mu.Unlock()
	return &tinySource{b: []byte("short")}, nil
}

func (o *countingOpener) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.calls)
}

func TestFileManagerPrefetchesNextFile(t *testing.T) {
	opener := &countingOpener{}
	m := NewFileManager([]string{"a", "b", "c"}, opener.open, config.Default())

	_, err := m.Get(0)
	require.Error(t, err)

	require.Eventually(t, func() bool { return opener.callCount() >= 2 }, time.Second, time.Millisecond)
	opener.mu.Lock()
	calls := append([]string(nil), opener.calls...)
	opener.mu.Unlock()
	require.Contains(t, calls, "a")
	require.Contains(t, calls, "b")
	require.NotContains(t, calls, "c")
}

func TestFileManagerEnsureLoadingIsIdempotent(t *testing.T) {
	opener := &countingOpener{}
	m := NewFileManager([]string{"a"}, opener.open, config.Default())

	var wg sync.WaitGroup
	var errs int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Get(0); err != nil {
				atomic.AddInt32(&errs, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 8, errs)
	require.Equal(t, 1, opener.callCount())
}

func TestFileManagerGetOutOfRange(t *testing.T) {
	opener := &countingOpener{}
	m := NewFileManager([]string{"a"}, opener.open, config.Default())
	_, err := m.Get(5)
	require.Error(t, err)
	require.Equal(t, 0, opener.callCount())
}
