package format

// KeyValue is a single entry of a file or column's free-form key/value
// metadata map.
type KeyValue struct {
	Key   string `thrift:"1,required"`
	Value string `thrift:"2,optional"`
}

// SortingColumn records one column of a row group's declared sort order.
type SortingColumn struct {
	ColumnIdx  int32 `thrift:"1,required"`
	Descending bool  `thrift:"2,required"`
	NullsFirst bool  `thrift:"3,required"`
}

// TypeDefinedOrder is the (only) concrete variant of ColumnOrder: values are
// ordered using the column's natural physical-type comparator.
type TypeDefinedOrder struct{}

// ColumnOrder is a Thrift union; TypeOrder is set when the union's
// TYPE_ORDER branch (field 1) was present.
type ColumnOrder struct {
	TypeOrder *TypeDefinedOrder `thrift:"1,optional"`
}

// DecimalType carries the scale/precision of a DECIMAL logical type.
type DecimalType struct {
	Scale     int32 `thrift:"1,required"`
	Precision int32 `thrift:"2,required"`
}

// TimeType carries the resolution and UTC-adjustment of a TIME logical type.
type TimeType struct {
	IsAdjustedToUTC bool     `thrift:"1,required"`
	Unit            TimeUnit `thrift:"2,required"`
}

// TimestampType carries the resolution and UTC-adjustment of a TIMESTAMP
// logical type.
type TimestampType struct {
	IsAdjustedToUTC bool     `thrift:"1,required"`
	Unit            TimeUnit `thrift:"2,required"`
}

// IntType carries the bit width and signedness of an INTEGER logical type.
type IntType struct {
	BitWidth int8 `thrift:"1,required"`
	IsSigned bool `thrift:"2,required"`
}

// LogicalType is a Thrift union of the "new style" type annotations; at
// most one field is set. Nil/zero-valued pointer fields mean "not this
// variant" (spec §4.6: the reader falls back to ConvertedType when this is
// entirely unset).
type LogicalType struct {
	String    *struct{}      `thrift:"1,optional"`
	Map       *struct{}      `thrift:"2,optional"`
	List      *struct{}      `thrift:"3,optional"`
	Enum      *struct{}      `thrift:"4,optional"`
	Decimal   *DecimalType   `thrift:"5,optional"`
	Date      *struct{}      `thrift:"6,optional"`
	Time      *TimeType      `thrift:"7,optional"`
	Timestamp *TimestampType `thrift:"8,optional"`
	Integer   *IntType       `thrift:"10,optional"`
	Unknown   *struct{}      `thrift:"11,optional"`
	Json      *struct{}      `thrift:"12,optional"`
	Bson      *struct{}      `thrift:"13,optional"`
	UUID      *struct{}      `thrift:"14,optional"`
}

// SchemaElement is one flattened node of the schema tree, in the
// pre-order-with-num_children encoding used by the file footer.
type SchemaElement struct {
	Type           *Type                `thrift:"1,optional"`
	TypeLength     *int32               `thrift:"2,optional"`
	RepetitionType *FieldRepetitionType `thrift:"3,optional"`
	Name           string               `thrift:"4,required"`
	NumChildren    *int32               `thrift:"5,optional"`
	ConvertedType  *ConvertedType       `thrift:"6,optional"`
	Scale          *int32               `thrift:"7,optional"`
	Precision      *int32               `thrift:"8,optional"`
	FieldID        *int32               `thrift:"9,optional"`
	LogicalType    *LogicalType         `thrift:"10,optional"`
}

// PageEncodingStats summarizes how many pages of a given type used a given
// encoding within a column chunk.
type PageEncodingStats struct {
	PageType PageType `thrift:"1,required"`
	Encoding Encoding `thrift:"2,required"`
	Count    int32    `thrift:"3,required"`
}

// Statistics carries per-column-chunk or per-page min/max/null/distinct
// summaries. MinValue/MaxValue are the current (unsigned-comparison-safe)
// fields; Min/Max are the deprecated originals, read only as a fallback.
type Statistics struct {
	Max             []byte `thrift:"1,optional"`
	Min             []byte `thrift:"2,optional"`
	NullCount       *int64 `thrift:"3,optional"`
	DistinctCount   *int64 `thrift:"4,optional"`
	MaxValue        []byte `thrift:"5,optional"`
	MinValue        []byte `thrift:"6,optional"`
	IsMaxValueExact *bool  `thrift:"7,optional"`
	IsMinValueExact *bool  `thrift:"8,optional"`
}

// ColumnMetaData is the per-chunk metadata embedded in each ColumnChunk.
type ColumnMetaData struct {
	Type                  Type                `thrift:"1,required"`
	Encodings             []Encoding          `thrift:"2,required"`
	PathInSchema          []string            `thrift:"3,required"`
	Codec                 CompressionCodec    `thrift:"4,required"`
	NumValues             int64               `thrift:"5,required"`
	TotalUncompressedSize int64               `thrift:"6,required"`
	TotalCompressedSize   int64               `thrift:"7,required"`
	KeyValueMetadata      []KeyValue          `thrift:"8,optional"`
	DataPageOffset        int64               `thrift:"9,required"`
	IndexPageOffset       *int64              `thrift:"10,optional"`
	DictionaryPageOffset  *int64              `thrift:"11,optional"`
	Statistics            *Statistics         `thrift:"12,optional"`
	EncodingStats         []PageEncodingStats `thrift:"13,optional"`
	BloomFilterOffset     *int64              `thrift:"14,optional"`
	BloomFilterLength     *int32              `thrift:"15,optional"`
}

// ColumnChunk locates one column's data within a row group, either inline
// (MetaData set) or in a separate file (FilePath set).
type ColumnChunk struct {
	FilePath   *string         `thrift:"1,optional"`
	FileOffset int64           `thrift:"2,required"`
	MetaData   *ColumnMetaData `thrift:"3,optional"`
}

// RowGroup is one horizontal partition of the file's rows.
type RowGroup struct {
	Columns              []ColumnChunk   `thrift:"1,required"`
	TotalByteSize        int64           `thrift:"2,required"`
	NumRows              int64           `thrift:"3,required"`
	SortingColumns       []SortingColumn `thrift:"4,optional"`
	FileOffset           *int64          `thrift:"5,optional"`
	TotalCompressedSize  *int64          `thrift:"6,optional"`
	Ordinal              *int16          `thrift:"7,optional"`
}

// FileMetaData is the fully decoded Thrift footer.
type FileMetaData struct {
	Version          int32           `thrift:"1,required"`
	Schema           []SchemaElement `thrift:"2,required"`
	NumRows          int64           `thrift:"3,required"`
	RowGroups        []RowGroup      `thrift:"4,required"`
	KeyValueMetadata []KeyValue      `thrift:"5,optional"`
	CreatedBy        *string         `thrift:"6,optional"`
	ColumnOrders     []ColumnOrder   `thrift:"7,optional"`
}

// DataPageHeader describes a DATA_PAGE (v1) body.
type DataPageHeader struct {
	NumValues                int32       `thrift:"1,required"`
	Encoding                 Encoding    `thrift:"2,required"`
	DefinitionLevelEncoding  Encoding    `thrift:"3,required"`
	RepetitionLevelEncoding  Encoding    `thrift:"4,required"`
	Statistics               *Statistics `thrift:"5,optional"`
}

// IndexPageHeader is currently an empty placeholder in the format; index
// pages are not emitted by modern writers.
type IndexPageHeader struct{}

// DictionaryPageHeader describes a DICTIONARY_PAGE body.
type DictionaryPageHeader struct {
	NumValues int32    `thrift:"1,required"`
	Encoding  Encoding `thrift:"2,required"`
	IsSorted  *bool    `thrift:"3,optional"`
}

// DataPageHeaderV2 describes a DATA_PAGE_V2 body: unlike v1, levels are
// always RLE-encoded, never compressed, and their byte lengths are given
// up front so the value section can be located without decoding them.
type DataPageHeaderV2 struct {
	NumValues                  int32       `thrift:"1,required"`
	NumNulls                   int32       `thrift:"2,required"`
	NumRows                    int32       `thrift:"3,required"`
	Encoding                   Encoding    `thrift:"4,required"`
	DefinitionLevelsByteLength int32       `thrift:"5,required"`
	RepetitionLevelsByteLength int32       `thrift:"6,required"`
	IsCompressed               bool        `thrift:"7,optional"` // default true when absent
	Statistics                 *Statistics `thrift:"8,optional"`
}

// PageHeader is the common envelope preceding every page's bytes.
type PageHeader struct {
	Type                 PageType              `thrift:"1,required"`
	UncompressedPageSize int32                 `thrift:"2,required"`
	CompressedPageSize   int32                 `thrift:"3,required"`
	CRC                  *int32                `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader       `thrift:"5,optional"`
	IndexPageHeader      *IndexPageHeader      `thrift:"6,optional"`
	DictionaryPageHeader *DictionaryPageHeader `thrift:"7,optional"`
	DataPageHeaderV2     *DataPageHeaderV2     `thrift:"8,optional"`
}
