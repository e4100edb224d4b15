package column

import (
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/pagereader"
)

// appendDense copies n consecutive dense values from src (starting at
// start) onto the end of dst, value for value, with no placement.
func appendDense(dst, src *pagereader.Values, start, n int) {
	switch dst.Type {
	case format.Boolean:
		dst.Boolean = append(dst.Boolean, src.Boolean[start:start+n]...)
	case format.Int32:
		dst.Int32 = append(dst.Int32, src.Int32[start:start+n]...)
	case format.Int64:
		dst.Int64 = append(dst.Int64, src.Int64[start:start+n]...)
	case format.Int96:
		dst.Int96 = append(dst.Int96, src.Int96[start:start+n]...)
	case format.Float:
		dst.Float = append(dst.Float, src.Float[start:start+n]...)
	case format.Double:
		dst.Double = append(dst.Double, src.Double[start:start+n]...)
	case format.ByteArray:
		for i := start; i < start+n; i++ {
			dst.ByteArray.Append(src.ByteArray.At(i))
		}
	case format.FixedLenByteArray:
		size := src.FixedLenSize
		dst.FixedLen = append(dst.FixedLen, src.FixedLen[start*size:(start+n)*size]...)
	}
}

func appendOne(dst, src *pagereader.Values, i int) {
	appendDense(dst, src, i, 1)
}

func appendZero(dst *pagereader.Values) {
	switch dst.Type {
	case format.Boolean:
		dst.Boolean = append(dst.Boolean, false)
	case format.Int32:
		dst.Int32 = append(dst.Int32, 0)
	case format.Int64:
		dst.Int64 = append(dst.Int64, 0)
	case format.Int96:
		dst.Int96 = append(dst.Int96, [12]byte{})
	case format.Float:
		dst.Float = append(dst.Float, 0)
	case format.Double:
		dst.Double = append(dst.Double, 0)
	case format.ByteArray:
		dst.ByteArray.Append(nil)
	case format.FixedLenByteArray:
		dst.FixedLen = append(dst.FixedLen, make([]byte, dst.FixedLenSize)...)
	}
}

// appendPlacedRange appends n dst slots, one per record: the next dense
// source value where defLevels[i] == maxDef, a zero/null placeholder
// otherwise. defLevels is nil when the column can never be null (maxDef
// == 0), in which case every one of the n records gets a real value.
// denseStart is src's dense cursor at the start of this range; it returns
// how many dense values were consumed.
func appendPlacedRange(dst, src *pagereader.Values, denseStart int, defLevels []int32, maxDef, n int) int {
	if defLevels == nil {
		appendDense(dst, src, denseStart, n)
		return n
	}
	consumed := 0
	for _, d := range defLevels {
		if int(d) == maxDef {
			appendOne(dst, src, denseStart+consumed)
			consumed++
		} else {
			appendZero(dst)
		}
	}
	return consumed
}

// countNonNull reports how many of defLevels equal maxDef. When defLevels
// is nil (maxDef == 0, the column can never be null), every one of the n
// positions is non-null by construction.
func countNonNull(defLevels []int32, maxDef, n int) int {
	if defLevels == nil {
		return n
	}
	count := 0
	for _, d := range defLevels {
		if int(d) == maxDef {
			count++
		}
	}
	return count
}
