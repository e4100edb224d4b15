package delta

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// The format does not bound block size, but an unbounded value here would
// let a corrupt header drive an unbounded allocation.
const maxSupportedBlockSize = 65536

// decodeBinaryPacked decodes a DELTA_BINARY_PACKED stream (spec: used for
// INT32/INT64 columns) by calling observe once per decoded value, in order,
// for up to limit values, and returns the number of input bytes the stream
// occupied (its header's own totalValues count decides this, independent of
// limit, so callers that embed a length stream ahead of raw bytes — the two
// byte-array variants below — can locate what follows it).
func decodeBinaryPacked(src []byte, limit int) (values []int64, consumed int, err error) {
	origLen := len(src)
	blockSz, numMini, totalValues, firstValue, src, err := decodeBinaryPackedHeader(src)
	if err != nil {
		return nil, 0, err
	}
	observed := make([]int64, 0, minInt(totalValues, limit))
	observe := func(v int64) {
		if len(observed) < limit {
			observed = append(observed, v)
		}
	}
	remaining := totalValues
	if remaining == 0 {
		return observed, origLen - len(src), nil
	}

	observe(firstValue)
	remaining--
	lastValue := firstValue
	numValuesInMiniBlock := blockSz / numMini

	block := make([]int64, blockSz)
	miniBlockData := make([]byte, 256)

	for remaining > 0 && len(src) > 0 {
		var minDelta int64
		var bitWidths []byte
		minDelta, bitWidths, src, err = decodeBinaryPackedBlock(src, numMini)
		if err != nil {
			return nil, 0, err
		}

		blockOffset := 0
		for i := range block {
			block[i] = 0
		}

		for _, bitWidth := range bitWidths {
			if bitWidth == 0 {
				n := numValuesInMiniBlock
				if n > remaining {
					n = remaining
				}
				blockOffset += n
				remaining -= n
			} else {
				miniSize := (numValuesInMiniBlock * int(bitWidth)) / 8
				if cap(miniBlockData) < miniSize {
					miniBlockData = make([]byte, miniSize)
				} else {
					miniBlockData = miniBlockData[:miniSize]
				}

				n := copy(miniBlockData, src)
				src = src[n:]
				bitOffset := uint(0)

				for count := numValuesInMiniBlock; count > 0 && remaining > 0; count-- {
					delta := int64(0)
					for b := uint(0); b < uint(bitWidth); b++ {
						x := (bitOffset + b) / 8
						y := (bitOffset + b) % 8
						delta |= int64((miniBlockData[x]>>y)&1) << b
					}
					block[blockOffset] = delta
					blockOffset++
					remaining--
					bitOffset += uint(bitWidth)
				}
			}

			if remaining == 0 {
				break
			}
		}

		for i := range block[:blockOffset] {
			block[i] += minDelta
		}
		if blockOffset > 0 {
			block[0] += lastValue
			for i := 1; i < blockOffset; i++ {
				block[i] += block[i-1]
			}
			for _, v := range block[:blockOffset] {
				observe(v)
			}
			lastValue = block[blockOffset-1]
		}
	}

	if remaining > 0 {
		return nil, 0, fmt.Errorf("delta: %d missing values: %w", remaining, io.ErrUnexpectedEOF)
	}
	return observed, origLen - len(src), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func decodeBinaryPackedHeader(src []byte) (blockSz, numMini, totalValues int, firstValue int64, next []byte, err error) {
	u := uint64(0)
	n := 0
	i := 0

	if u, n, err = decodeUvarint(src[i:], "block size"); err != nil {
		return
	}
	i += n
	blockSz = int(u)

	if u, n, err = decodeUvarint(src[i:], "number of mini-blocks"); err != nil {
		return
	}
	i += n
	numMini = int(u)

	if u, n, err = decodeUvarint(src[i:], "total values"); err != nil {
		return
	}
	i += n
	totalValues = int(u)

	if firstValue, n, err = decodeVarint(src[i:], "first value"); err != nil {
		return
	}
	i += n

	switch {
	case numMini == 0:
		err = fmt.Errorf("delta: invalid number of mini blocks (%d)", numMini)
	case blockSz <= 0 || blockSz%128 != 0:
		err = fmt.Errorf("delta: block size is not a multiple of 128 (%d)", blockSz)
	case blockSz > maxSupportedBlockSize:
		err = fmt.Errorf("delta: block size is too large (%d)", blockSz)
	case (numMini <= 0) || (blockSz/numMini)%32 != 0:
		err = fmt.Errorf("delta: mini block size is not a multiple of 32 (%d)", blockSz/numMini)
	case totalValues < 0:
		err = fmt.Errorf("delta: total number of values is negative (%d)", totalValues)
	case totalValues > math.MaxInt32:
		err = fmt.Errorf("delta: too many values: %d", totalValues)
	}

	return blockSz, numMini, totalValues, firstValue, src[i:], err
}

func decodeBinaryPackedBlock(src []byte, numMini int) (minDelta int64, bitWidths, next []byte, err error) {
	minDelta, n, err := decodeVarint(src, "min delta")
	if err != nil {
		return 0, nil, src, err
	}
	src = src[n:]
	if len(src) < numMini {
		bitWidths, next = src, nil
	} else {
		bitWidths, next = src[:numMini], src[numMini:]
	}
	return minDelta, bitWidths, next, nil
}

func decodeUvarint(buf []byte, what string) (u uint64, n int, err error) {
	u, n = binary.Uvarint(buf)
	if n == 0 {
		return 0, 0, fmt.Errorf("delta: decoding %s: %w", what, io.ErrUnexpectedEOF)
	}
	if n < 0 {
		return 0, 0, fmt.Errorf("delta: overflow decoding %s", what)
	}
	return u, n, nil
}

func decodeVarint(buf []byte, what string) (v int64, n int, err error) {
	v, n = binary.Varint(buf)
	if n == 0 {
		return 0, 0, fmt.Errorf("delta: decoding %s: %w", what, io.ErrUnexpectedEOF)
	}
	if n < 0 {
		return 0, 0, fmt.Errorf("delta: overflow decoding %s", what)
	}
	return v, n, nil
}
