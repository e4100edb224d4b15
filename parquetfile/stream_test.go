package parquetfile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/config"
)

func TestNewStreamReaderPropagatesOpenFailure(t *testing.T) {
	opener := &countingOpener{}
	m := NewFileManager([]string{"a"}, opener.open, config.Default())

	_, err := NewStreamReader(m, []string{"id"}, config.Default())
	require.Error(t, err)
}

func TestStreamReaderNextAfterCloseIsExhausted(t *testing.T) {
	s := &StreamReader{closed: true}
	ok, err := s.Next()
	require.False(t, ok)
	require.Error(t, err)
}
