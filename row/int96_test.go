package row

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInt96ToTimeEpoch(t *testing.T) {
	var b [12]byte
	binary.LittleEndian.PutUint64(b[0:8], 0)
	binary.LittleEndian.PutUint32(b[8:12], julianUnixEpochDay)

	got := int96ToTime(b)
	require.True(t, got.Equal(time.Unix(0, 0).UTC()))
}

func TestInt96ToTimeOneDayLater(t *testing.T) {
	var b [12]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(90*time.Second))
	binary.LittleEndian.PutUint32(b[8:12], julianUnixEpochDay+1)

	got := int96ToTime(b)
	want := time.Unix(86400, 0).UTC().Add(90 * time.Second)
	require.True(t, got.Equal(want))
}
