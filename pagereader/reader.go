package pagereader

import (
	"fmt"

	"github.com/hardwood-go/parquet/compress"
	"github.com/hardwood-go/parquet/encoding"
	"github.com/hardwood-go/parquet/encoding/bytestreamsplit"
	"github.com/hardwood-go/parquet/encoding/delta"
	"github.com/hardwood-go/parquet/encoding/dict"
	"github.com/hardwood-go/parquet/encoding/plain"
	"github.com/hardwood-go/parquet/encoding/rle"
	"github.com/hardwood-go/parquet/format"
	"github.com/hardwood-go/parquet/internal/debug"
	"github.com/hardwood-go/parquet/parqueterr"
)

const (
	initialHeaderWindow = 256
	maxHeaderWindow      = 1 << 20
)

// ColumnChunkReader iterates the pages of one column chunk in a row group,
// in file order, returning decoded data pages and transparently caching
// the chunk's dictionary page (if any).
type ColumnChunkReader struct {
	src      ByteSource
	registry *compress.Registry

	column       int
	physicalType format.Type
	typeLength   int
	codec        format.CompressionCodec

	maxRepetitionLevel int
	maxDefinitionLevel int

	offset    int64
	end       int64
	numValues int64
	valuesRead int64

	dictionary *dict.Dictionary

	headerBuf []byte
	bodyBuf   []byte
	plainBuf  []byte
}

// NewColumnChunkReader constructs a reader over meta's byte range.
// maxRepetitionLevel/maxDefinitionLevel come from the schema node for this
// leaf column.
func NewColumnChunkReader(src ByteSource, registry *compress.Registry, column int, meta *format.ColumnMetaData, maxRepetitionLevel, maxDefinitionLevel int) *ColumnChunkReader {
	start := meta.DataPageOffset
	if meta.DictionaryPageOffset != nil && *meta.DictionaryPageOffset > 0 && *meta.DictionaryPageOffset < start {
		start = *meta.DictionaryPageOffset
	}
	return &ColumnChunkReader{
		src:                src,
		registry:           registry,
		column:             column,
		physicalType:       meta.Type,
		codec:              meta.Codec,
		maxRepetitionLevel: maxRepetitionLevel,
		maxDefinitionLevel: maxDefinitionLevel,
		offset:             start,
		end:                start + meta.TotalCompressedSize,
		numValues:          meta.NumValues,
	}
}

// SetTypeLength records the FIXED_LEN_BYTE_ARRAY element width; unused for
// every other physical type.
func (r *ColumnChunkReader) SetTypeLength(n int) { r.typeLength = n }

// Done reports whether every value declared in the chunk's metadata has
// been produced.
func (r *ColumnChunkReader) Done() bool { return r.valuesRead >= r.numValues }

// Next decodes and returns the next data page, transparently consuming and
// caching any dictionary page encountered first. Returns
// parqueterr.ErrExhausted once the chunk's declared value count has been
// produced.
func (r *ColumnChunkReader) Next() (*Page, error) {
	for {
		if r.Done() {
			return nil, parqueterr.ErrExhausted
		}

		header, headerLen, err := r.readHeader()
		if err != nil {
			return nil, err
		}
		r.offset += int64(headerLen)

		body, err := r.readBody(int(header.CompressedPageSize))
		if err != nil {
			return nil, err
		}
		r.offset += int64(header.CompressedPageSize)

		switch header.Type {
		case format.DictionaryPage:
			if err := r.readDictionaryPage(header, body); err != nil {
				return nil, err
			}
			continue
		case format.DataPage:
			page, err := r.readDataPageV1(header, body)
			if err != nil {
				return nil, err
			}
			r.valuesRead += int64(page.NumValues)
			debug.Logf("page-fetch: column %d, %d values, %d/%d read", r.column, page.NumValues, r.valuesRead, r.numValues)
			return page, nil
		case format.DataPageV2:
			page, err := r.readDataPageV2(header, body)
			if err != nil {
				return nil, err
			}
			r.valuesRead += int64(page.NumValues)
			debug.Logf("page-fetch: column %d, %d values, %d/%d read", r.column, page.NumValues, r.valuesRead, r.numValues)
			return page, nil
		default:
			return nil, &parqueterr.CorruptPage{Column: r.column, Reason: fmt.Sprintf("unexpected page type %s", header.Type)}
		}
	}
}

// readHeader decodes the Thrift PageHeader at the current offset, growing
// its read window until the decode succeeds or the chunk's remaining bytes
// are exhausted.
func (r *ColumnChunkReader) readHeader() (*format.PageHeader, int, error) {
	window := initialHeaderWindow
	for {
		avail := r.end - r.offset
		if avail <= 0 {
			return nil, 0, &parqueterr.CorruptPage{Column: r.column, Reason: "no bytes remaining for page header"}
		}
		size := window
		if int64(size) > avail {
			size = int(avail)
		}
		if cap(r.headerBuf) < size {
			r.headerBuf = make([]byte, size)
		} else {
			r.headerBuf = r.headerBuf[:size]
		}
		if _, err := r.src.ReadAt(r.headerBuf, r.offset); err != nil {
			return nil, 0, &parqueterr.IoFailure{Op: "reading page header", Err: err}
		}

		header, n, err := format.DecodePageHeader(r.headerBuf)
		if err == nil {
			return header, n, nil
		}
		if int64(size) >= avail || window >= maxHeaderWindow {
			return nil, 0, &parqueterr.CorruptMetadata{Reason: "decoding page header", Err: err}
		}
		window *= 2
	}
}

func (r *ColumnChunkReader) readBody(size int) ([]byte, error) {
	if cap(r.bodyBuf) < size {
		r.bodyBuf = make([]byte, size)
	} else {
		r.bodyBuf = r.bodyBuf[:size]
	}
	if size == 0 {
		return r.bodyBuf, nil
	}
	if _, err := r.src.ReadAt(r.bodyBuf, r.offset); err != nil {
		return nil, &parqueterr.IoFailure{Op: "reading page body", Err: err}
	}
	return r.bodyBuf, nil
}

func (r *ColumnChunkReader) decompress(src []byte, uncompressedSize int) ([]byte, error) {
	dst := make([]byte, 0, uncompressedSize)
	out, err := r.registry.Decompress(r.codec, dst, src)
	if err != nil {
		return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "decompressing page", Err: err}
	}
	return out, nil
}

func (r *ColumnChunkReader) readDictionaryPage(header *format.PageHeader, body []byte) error {
	dh := header.DictionaryPageHeader
	if dh == nil {
		return &parqueterr.CorruptPage{Column: r.column, Reason: "dictionary page missing DictionaryPageHeader"}
	}
	plainBytes, err := r.decompress(body, int(header.UncompressedPageSize))
	if err != nil {
		return err
	}
	d, err := dict.Decode(r.physicalType, r.typeLength, int(dh.NumValues), plainBytes)
	if err != nil {
		return &parqueterr.CorruptPage{Column: r.column, Reason: "decoding dictionary page", Err: err}
	}
	r.dictionary = d
	return nil
}

func (r *ColumnChunkReader) readDataPageV1(header *format.PageHeader, body []byte) (*Page, error) {
	dh := header.DataPageHeader
	if dh == nil {
		return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "data page missing DataPageHeader"}
	}
	uncompressed, err := r.decompress(body, int(header.UncompressedPageSize))
	if err != nil {
		return nil, err
	}

	numValues := int(dh.NumValues)
	page := &Page{NumValues: numValues}
	rest := uncompressed

	if r.maxRepetitionLevel > 0 {
		levels := make([]int32, numValues)
		bitWidth := rle.BitWidthFor(r.maxRepetitionLevel)
		n, consumed, err := rle.DecodeLevels(levels, bitWidth, rest)
		if err != nil {
			return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "decoding repetition levels", Err: err}
		}
		page.RepetitionLevels = levels[:n]
		rest = rest[consumed:]
	}

	if r.maxDefinitionLevel > 0 {
		levels := make([]int32, numValues)
		bitWidth := rle.BitWidthFor(r.maxDefinitionLevel)
		n, consumed, err := rle.DecodeLevels(levels, bitWidth, rest)
		if err != nil {
			return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "decoding definition levels", Err: err}
		}
		page.DefinitionLevels = levels[:n]
		rest = rest[consumed:]
	}

	nonNullCount := numValues
	if page.DefinitionLevels != nil {
		nonNullCount = 0
		for _, d := range page.DefinitionLevels {
			if int(d) == r.maxDefinitionLevel {
				nonNullCount++
			}
		}
	}
	page.NonNullCount = nonNullCount

	if err := r.decodeValues(&page.Values, dh.Encoding, nonNullCount, rest); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *ColumnChunkReader) readDataPageV2(header *format.PageHeader, body []byte) (*Page, error) {
	dh := header.DataPageHeaderV2
	if dh == nil {
		return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "data page v2 missing DataPageHeaderV2"}
	}

	numValues := int(dh.NumValues)
	page := &Page{NumValues: numValues, NonNullCount: numValues - int(dh.NumNulls)}

	repLen := int(dh.RepetitionLevelsByteLength)
	defLen := int(dh.DefinitionLevelsByteLength)
	if repLen+defLen > len(body) {
		return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "v2 level lengths exceed page body"}
	}
	levelBytes := body[:repLen+defLen]
	valuesSection := body[repLen+defLen:]

	if r.maxRepetitionLevel > 0 {
		levels := make([]int32, numValues)
		bitWidth := rle.BitWidthFor(r.maxRepetitionLevel)
		if _, err := rle.DecodeHybrid(levels, bitWidth, levelBytes[:repLen]); err != nil {
			return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "decoding v2 repetition levels", Err: err}
		}
		page.RepetitionLevels = levels
	}
	if r.maxDefinitionLevel > 0 {
		levels := make([]int32, numValues)
		bitWidth := rle.BitWidthFor(r.maxDefinitionLevel)
		if _, err := rle.DecodeHybrid(levels, bitWidth, levelBytes[repLen:repLen+defLen]); err != nil {
			return nil, &parqueterr.CorruptPage{Column: r.column, Reason: "decoding v2 definition levels", Err: err}
		}
		page.DefinitionLevels = levels
	}

	var values []byte
	if dh.IsCompressed && len(valuesSection) > 0 {
		uncompressedLen := int(header.UncompressedPageSize) - repLen - defLen
		v, err := r.decompress(valuesSection, uncompressedLen)
		if err != nil {
			return nil, err
		}
		values = v
	} else {
		values = valuesSection
	}

	if err := r.decodeValues(&page.Values, dh.Encoding, page.NonNullCount, values); err != nil {
		return nil, err
	}
	return page, nil
}

// decodeValues dispatches on encoding to fill dst with nonNullCount dense
// values from src, using the cached dictionary where needed.
func (r *ColumnChunkReader) decodeValues(dst *Values, enc format.Encoding, nonNullCount int, src []byte) error {
	dst.Type = r.physicalType
	dst.FixedLenSize = r.typeLength

	switch enc {
	case format.EncodingPlainDictionary, format.EncodingRLEDictionary:
		if r.dictionary == nil {
			return &parqueterr.MissingDictionary{Column: r.column}
		}
		indices := make([]int32, nonNullCount)
		if _, err := rle.DecodeDictionaryIndices(indices, src); err != nil {
			return &parqueterr.CorruptPage{Column: r.column, Reason: "decoding dictionary indices", Err: err}
		}
		return r.lookupDictionary(dst, indices)
	default:
		dec, err := r.decoderFor(enc)
		if err != nil {
			return err
		}
		return r.decodeDense(dst, dec, nonNullCount, src)
	}
}

func (r *ColumnChunkReader) lookupDictionary(dst *Values, indices []int32) error {
	size := r.dictionary.Len()
	for _, idx := range indices {
		if idx < 0 || int(idx) >= size {
			return &parqueterr.CorruptPage{Column: r.column, Reason: fmt.Sprintf("dictionary index %d out of range [0,%d)", idx, size)}
		}
	}
	n := len(indices)
	switch r.physicalType {
	case format.Boolean:
		dst.Boolean = make([]bool, n)
		r.dictionary.LookupBoolean(dst.Boolean, indices)
	case format.Int32:
		dst.Int32 = make([]int32, n)
		r.dictionary.LookupInt32(dst.Int32, indices)
	case format.Int64:
		dst.Int64 = make([]int64, n)
		r.dictionary.LookupInt64(dst.Int64, indices)
	case format.Int96:
		dst.Int96 = make([][12]byte, n)
		r.dictionary.LookupInt96(dst.Int96, indices)
	case format.Float:
		dst.Float = make([]float32, n)
		r.dictionary.LookupFloat(dst.Float, indices)
	case format.Double:
		dst.Double = make([]float64, n)
		r.dictionary.LookupDouble(dst.Double, indices)
	case format.ByteArray:
		r.dictionary.LookupByteArray(&dst.ByteArray, indices)
	case format.FixedLenByteArray:
		dst.FixedLen = make([]byte, n*r.typeLength)
		r.dictionary.LookupFixedLenByteArray(dst.FixedLen, indices)
	default:
		return &parqueterr.CorruptPage{Column: r.column, Reason: fmt.Sprintf("dictionary lookup on unsupported physical type %s", r.physicalType)}
	}
	return nil
}

func (r *ColumnChunkReader) decoderFor(enc format.Encoding) (encoding.Decoder, error) {
	switch enc {
	case format.EncodingPlain:
		return &plain.Decoder{}, nil
	case format.EncodingRLE:
		return &rle.Decoder{}, nil
	case format.EncodingDeltaBinaryPacked:
		return &delta.BinaryPackedDecoder{}, nil
	case format.EncodingDeltaLengthByteArray:
		return &delta.LengthByteArrayDecoder{}, nil
	case format.EncodingDeltaByteArray:
		return &delta.ByteArrayDecoder{}, nil
	case format.EncodingByteStreamSplit:
		return &bytestreamsplit.Decoder{}, nil
	default:
		return nil, &parqueterr.UnsupportedEncoding{Encoding: enc.String()}
	}
}

func (r *ColumnChunkReader) decodeDense(dst *Values, dec encoding.Decoder, n int, src []byte) (err error) {
	switch r.physicalType {
	case format.Boolean:
		dst.Boolean = make([]bool, n)
		_, err = dec.DecodeBoolean(dst.Boolean, src)
	case format.Int32:
		dst.Int32 = make([]int32, n)
		_, err = dec.DecodeInt32(dst.Int32, src)
	case format.Int64:
		dst.Int64 = make([]int64, n)
		_, err = dec.DecodeInt64(dst.Int64, src)
	case format.Int96:
		dst.Int96 = make([][12]byte, n)
		_, err = dec.DecodeInt96(dst.Int96, src)
	case format.Float:
		dst.Float = make([]float32, n)
		_, err = dec.DecodeFloat(dst.Float, src)
	case format.Double:
		dst.Double = make([]float64, n)
		_, err = dec.DecodeDouble(dst.Double, src)
	case format.ByteArray:
		_, err = dec.DecodeByteArray(&dst.ByteArray, src)
	case format.FixedLenByteArray:
		dst.FixedLen = make([]byte, n*r.typeLength)
		_, err = dec.DecodeFixedLenByteArray(dst.FixedLen, r.typeLength, src)
	default:
		return &parqueterr.CorruptPage{Column: r.column, Reason: fmt.Sprintf("unsupported physical type %s", r.physicalType)}
	}
	if err != nil {
		return &parqueterr.CorruptPage{Column: r.column, Reason: "decoding page values", Err: err}
	}
	return nil
}
