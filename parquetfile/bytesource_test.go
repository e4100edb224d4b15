package parquetfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/parquetfile"
)

func TestOSFileReadAtAndSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	want := []byte("hello parquet world")
	require.NoError(t, os.WriteFile(path, want, 0o600))

	f, err := parquetfile.OpenOSFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.EqualValues(t, len(want), f.Size())

	buf := make([]byte, 5)
	n, err := f.ReadAt(buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "parqu", string(buf))
}

func TestOpenOSFileMissing(t *testing.T) {
	_, err := parquetfile.OpenOSFile(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
