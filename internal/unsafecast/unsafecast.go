// Package unsafecast provides zero-copy conversions between byte slices and
// typed numeric slices, used on the PLAIN decode hot path to avoid per-value
// boxing (spec §9: "typed column arrays, no boxing").
package unsafecast

import "unsafe"

// BytesToInt32 reinterprets a byte slice as a slice of little-endian int32
// values without copying. len(b) must be a multiple of 4.
func BytesToInt32(b []byte) []int32 {
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/4)
}

// BytesToInt64 reinterprets a byte slice as a slice of little-endian int64
// values without copying. len(b) must be a multiple of 8.
func BytesToInt64(b []byte) []int64 {
	return unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/8)
}

// BytesToFloat32 reinterprets a byte slice as a slice of float32 values.
func BytesToFloat32(b []byte) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/4)
}

// BytesToFloat64 reinterprets a byte slice as a slice of float64 values.
func BytesToFloat64(b []byte) []float64 {
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/8)
}

// Int32ToBytes reinterprets a slice of int32 values as bytes.
func Int32ToBytes(data []int32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), 4*len(data))
}

// Int64ToBytes reinterprets a slice of int64 values as bytes.
func Int64ToBytes(data []int64) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), 8*len(data))
}
