package pagereader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/encoding/dict"
	"github.com/hardwood-go/parquet/format"
)

func TestDecodeValuesPlainInt32(t *testing.T) {
	r := &ColumnChunkReader{physicalType: format.Int32}

	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(10)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(20)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(30)))

	var values Values
	err := r.decodeValues(&values, format.EncodingPlain, 3, buf)
	require.NoError(t, err)
	require.Equal(t, []int32{10, 20, 30}, values.Int32)
}

func TestDecodeValuesDictionary(t *testing.T) {
	d, err := dict.Decode(format.Int64, 0, 3, plainInt64(1, 2, 3))
	require.NoError(t, err)

	r := &ColumnChunkReader{physicalType: format.Int64, dictionary: d}

	// RLE_DICTIONARY body: 1-byte bit width, then one bit-packed group (8
	// values) of indices [0, 1, 2, 0, 0, 0, 0, 0] with bit width 2.
	// header byte: (1 group << 1) | 1 = 3; packed LSB-first, 2 bits each:
	// byte0 = v0 | v1<<2 | v2<<4 | v3<<6 = 0 | 4 | 32 | 0 = 0x24,
	// byte1 = 0 (v4..v7 all zero).
	body := []byte{2, 3, 0x24, 0x00}

	var values Values
	err = r.decodeValues(&values, format.EncodingRLEDictionary, 4, body)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 1}, values.Int64)
}

func TestDecodeValuesMissingDictionary(t *testing.T) {
	r := &ColumnChunkReader{physicalType: format.Int64, column: 7}
	var values Values
	err := r.decodeValues(&values, format.EncodingPlainDictionary, 1, []byte{0, 1})
	require.Error(t, err)
}

func plainInt64(values ...int64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], uint64(v))
	}
	return buf
}
