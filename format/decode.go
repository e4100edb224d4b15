package format

import (
	"fmt"

	"github.com/hardwood-go/parquet/internal/thriftcompact"
)

// DecodeFileMetaData parses a Thrift Compact Protocol FileMetaData struct,
// the payload of the footer located by the trailing 4-byte length + "PAR1"
// magic (spec §4.8).
func DecodeFileMetaData(buf []byte) (*FileMetaData, error) {
	c := thriftcompact.NewCursor(buf)
	m := &FileMetaData{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			m.Version = v
			return err
		case 2:
			return readList(c, func() error {
				el, err := decodeSchemaElement(c)
				if err == nil {
					m.Schema = append(m.Schema, el)
				}
				return err
			})
		case 3:
			v, err := c.Zigzag64()
			m.NumRows = v
			return err
		case 4:
			return readList(c, func() error {
				rg, err := decodeRowGroup(c)
				if err == nil {
					m.RowGroups = append(m.RowGroups, rg)
				}
				return err
			})
		case 5:
			return readList(c, func() error {
				kv, err := decodeKeyValue(c)
				if err == nil {
					m.KeyValueMetadata = append(m.KeyValueMetadata, kv)
				}
				return err
			})
		case 6:
			s, err := c.String()
			m.CreatedBy = &s
			return err
		case 7:
			return readList(c, func() error {
				co, err := decodeColumnOrder(c)
				if err == nil {
					m.ColumnOrders = append(m.ColumnOrders, co)
				}
				return err
			})
		default:
			return c.Skip(fh.Type)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("format: decoding FileMetaData: %w", err)
	}
	return m, nil
}

// DecodePageHeader parses one PageHeader and reports the number of bytes it
// consumed from buf, so the caller can locate the following page body.
func DecodePageHeader(buf []byte) (*PageHeader, int, error) {
	c := thriftcompact.NewCursor(buf)
	h := &PageHeader{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			h.Type = PageType(v)
			return err
		case 2:
			v, err := c.Zigzag32()
			h.UncompressedPageSize = v
			return err
		case 3:
			v, err := c.Zigzag32()
			h.CompressedPageSize = v
			return err
		case 4:
			v, err := c.Zigzag32()
			h.CRC = &v
			return err
		case 5:
			v, err := decodeDataPageHeader(c)
			h.DataPageHeader = v
			return err
		case 6:
			c.StructBegin()
			if err := skipToStop(c); err != nil {
				return err
			}
			c.StructEnd()
			h.IndexPageHeader = &IndexPageHeader{}
			return nil
		case 7:
			v, err := decodeDictionaryPageHeader(c)
			h.DictionaryPageHeader = v
			return err
		case 8:
			v, err := decodeDataPageHeaderV2(c)
			h.DataPageHeaderV2 = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	if err != nil {
		return nil, 0, fmt.Errorf("format: decoding PageHeader: %w", err)
	}
	return h, c.Offset(), nil
}

// readStruct drives a STRUCT body: pushes the field-id stack, repeatedly
// reads field headers and dispatches to fn until STOP, then pops the stack.
// fn is invoked for every field before STOP and is responsible for
// consuming exactly the body of the field it was given; a bool-valued
// field has no body, its value travels in the field header.
func readStruct(c *thriftcompact.Cursor, fn func(thriftcompact.FieldHeader) error) error {
	c.StructBegin()
	defer c.StructEnd()
	for {
		fh, err := c.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Stop {
			return nil
		}
		if err := fn(fh); err != nil {
			return err
		}
	}
}

func skipToStop(c *thriftcompact.Cursor) error {
	for {
		fh, err := c.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Stop {
			return nil
		}
		if err := c.Skip(fh.Type); err != nil {
			return err
		}
	}
}

func readList(c *thriftcompact.Cursor, fn func() error) error {
	lh, err := c.ReadListBegin()
	if err != nil {
		return err
	}
	for i := 0; i < lh.Size; i++ {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func decodeKeyValue(c *thriftcompact.Cursor) (KeyValue, error) {
	var kv KeyValue
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.String()
			kv.Key = v
			return err
		case 2:
			v, err := c.String()
			kv.Value = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return kv, err
}

func decodeSortingColumn(c *thriftcompact.Cursor) (SortingColumn, error) {
	var sc SortingColumn
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			sc.ColumnIdx = v
			return err
		case 2:
			sc.Descending = fh.BoolValue
			return nil
		case 3:
			sc.NullsFirst = fh.BoolValue
			return nil
		default:
			return c.Skip(fh.Type)
		}
	})
	return sc, err
}

func decodeColumnOrder(c *thriftcompact.Cursor) (ColumnOrder, error) {
	var co ColumnOrder
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			c.StructBegin()
			if err := skipToStop(c); err != nil {
				return err
			}
			c.StructEnd()
			co.TypeOrder = &TypeDefinedOrder{}
			return nil
		default:
			return c.Skip(fh.Type)
		}
	})
	return co, err
}

func decodeDecimalType(c *thriftcompact.Cursor) (*DecimalType, error) {
	d := &DecimalType{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			d.Scale = v
			return err
		case 2:
			v, err := c.Zigzag32()
			d.Precision = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return d, err
}

func decodeTimeUnit(c *thriftcompact.Cursor) (TimeUnit, error) {
	var unit TimeUnit
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1, 2, 3:
			unit = TimeUnit(fh.ID)
			c.StructBegin()
			if err := skipToStop(c); err != nil {
				return err
			}
			c.StructEnd()
			return nil
		default:
			return c.Skip(fh.Type)
		}
	})
	return unit, err
}

func decodeTimeType(c *thriftcompact.Cursor) (*TimeType, error) {
	t := &TimeType{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			t.IsAdjustedToUTC = fh.BoolValue
			return nil
		case 2:
			u, err := decodeTimeUnit(c)
			t.Unit = u
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return t, err
}

func decodeTimestampType(c *thriftcompact.Cursor) (*TimestampType, error) {
	t := &TimestampType{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			t.IsAdjustedToUTC = fh.BoolValue
			return nil
		case 2:
			u, err := decodeTimeUnit(c)
			t.Unit = u
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return t, err
}

func decodeIntType(c *thriftcompact.Cursor) (*IntType, error) {
	t := &IntType{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Byte()
			t.BitWidth = v
			return err
		case 2:
			t.IsSigned = fh.BoolValue
			return nil
		default:
			return c.Skip(fh.Type)
		}
	})
	return t, err
}

func decodeEmptyVariant(c *thriftcompact.Cursor) (*struct{}, error) {
	c.StructBegin()
	err := skipToStop(c)
	c.StructEnd()
	return &struct{}{}, err
}

func decodeLogicalType(c *thriftcompact.Cursor) (*LogicalType, error) {
	lt := &LogicalType{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		var err error
		switch fh.ID {
		case 1:
			lt.String, err = decodeEmptyVariant(c)
		case 2:
			lt.Map, err = decodeEmptyVariant(c)
		case 3:
			lt.List, err = decodeEmptyVariant(c)
		case 4:
			lt.Enum, err = decodeEmptyVariant(c)
		case 5:
			lt.Decimal, err = decodeDecimalType(c)
		case 6:
			lt.Date, err = decodeEmptyVariant(c)
		case 7:
			lt.Time, err = decodeTimeType(c)
		case 8:
			lt.Timestamp, err = decodeTimestampType(c)
		case 10:
			lt.Integer, err = decodeIntType(c)
		case 11:
			lt.Unknown, err = decodeEmptyVariant(c)
		case 12:
			lt.Json, err = decodeEmptyVariant(c)
		case 13:
			lt.Bson, err = decodeEmptyVariant(c)
		case 14:
			lt.UUID, err = decodeEmptyVariant(c)
		default:
			err = c.Skip(fh.Type)
		}
		return err
	})
	return lt, err
}

func decodeSchemaElement(c *thriftcompact.Cursor) (SchemaElement, error) {
	var el SchemaElement
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			t := Type(v)
			el.Type = &t
			return err
		case 2:
			v, err := c.Zigzag32()
			el.TypeLength = &v
			return err
		case 3:
			v, err := c.Zigzag32()
			r := FieldRepetitionType(v)
			el.RepetitionType = &r
			return err
		case 4:
			v, err := c.String()
			el.Name = v
			return err
		case 5:
			v, err := c.Zigzag32()
			el.NumChildren = &v
			return err
		case 6:
			v, err := c.Zigzag32()
			ct := ConvertedType(v)
			el.ConvertedType = &ct
			return err
		case 7:
			v, err := c.Zigzag32()
			el.Scale = &v
			return err
		case 8:
			v, err := c.Zigzag32()
			el.Precision = &v
			return err
		case 9:
			v, err := c.Zigzag32()
			el.FieldID = &v
			return err
		case 10:
			v, err := decodeLogicalType(c)
			el.LogicalType = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return el, err
}

func decodePageEncodingStats(c *thriftcompact.Cursor) (PageEncodingStats, error) {
	var s PageEncodingStats
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			s.PageType = PageType(v)
			return err
		case 2:
			v, err := c.Zigzag32()
			s.Encoding = Encoding(v)
			return err
		case 3:
			v, err := c.Zigzag32()
			s.Count = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return s, err
}

func decodeStatistics(c *thriftcompact.Cursor) (*Statistics, error) {
	s := &Statistics{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Binary()
			s.Max = v
			return err
		case 2:
			v, err := c.Binary()
			s.Min = v
			return err
		case 3:
			v, err := c.Zigzag64()
			s.NullCount = &v
			return err
		case 4:
			v, err := c.Zigzag64()
			s.DistinctCount = &v
			return err
		case 5:
			v, err := c.Binary()
			s.MaxValue = v
			return err
		case 6:
			v, err := c.Binary()
			s.MinValue = v
			return err
		case 7:
			v := fh.BoolValue
			s.IsMaxValueExact = &v
			return nil
		case 8:
			v := fh.BoolValue
			s.IsMinValueExact = &v
			return nil
		default:
			return c.Skip(fh.Type)
		}
	})
	return s, err
}

func decodeColumnMetaData(c *thriftcompact.Cursor) (*ColumnMetaData, error) {
	m := &ColumnMetaData{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			m.Type = Type(v)
			return err
		case 2:
			return readList(c, func() error {
				v, err := c.Zigzag32()
				if err == nil {
					m.Encodings = append(m.Encodings, Encoding(v))
				}
				return err
			})
		case 3:
			return readList(c, func() error {
				v, err := c.String()
				if err == nil {
					m.PathInSchema = append(m.PathInSchema, v)
				}
				return err
			})
		case 4:
			v, err := c.Zigzag32()
			m.Codec = CompressionCodec(v)
			return err
		case 5:
			v, err := c.Zigzag64()
			m.NumValues = v
			return err
		case 6:
			v, err := c.Zigzag64()
			m.TotalUncompressedSize = v
			return err
		case 7:
			v, err := c.Zigzag64()
			m.TotalCompressedSize = v
			return err
		case 8:
			return readList(c, func() error {
				kv, err := decodeKeyValue(c)
				if err == nil {
					m.KeyValueMetadata = append(m.KeyValueMetadata, kv)
				}
				return err
			})
		case 9:
			v, err := c.Zigzag64()
			m.DataPageOffset = v
			return err
		case 10:
			v, err := c.Zigzag64()
			m.IndexPageOffset = &v
			return err
		case 11:
			v, err := c.Zigzag64()
			m.DictionaryPageOffset = &v
			return err
		case 12:
			v, err := decodeStatistics(c)
			m.Statistics = v
			return err
		case 13:
			return readList(c, func() error {
				s, err := decodePageEncodingStats(c)
				if err == nil {
					m.EncodingStats = append(m.EncodingStats, s)
				}
				return err
			})
		case 14:
			v, err := c.Zigzag64()
			m.BloomFilterOffset = &v
			return err
		case 15:
			v, err := c.Zigzag32()
			m.BloomFilterLength = &v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return m, err
}

func decodeColumnChunk(c *thriftcompact.Cursor) (ColumnChunk, error) {
	var cc ColumnChunk
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.String()
			cc.FilePath = &v
			return err
		case 2:
			v, err := c.Zigzag64()
			cc.FileOffset = v
			return err
		case 3:
			v, err := decodeColumnMetaData(c)
			cc.MetaData = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return cc, err
}

func decodeRowGroup(c *thriftcompact.Cursor) (RowGroup, error) {
	var rg RowGroup
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			return readList(c, func() error {
				cc, err := decodeColumnChunk(c)
				if err == nil {
					rg.Columns = append(rg.Columns, cc)
				}
				return err
			})
		case 2:
			v, err := c.Zigzag64()
			rg.TotalByteSize = v
			return err
		case 3:
			v, err := c.Zigzag64()
			rg.NumRows = v
			return err
		case 4:
			return readList(c, func() error {
				sc, err := decodeSortingColumn(c)
				if err == nil {
					rg.SortingColumns = append(rg.SortingColumns, sc)
				}
				return err
			})
		case 5:
			v, err := c.Zigzag64()
			rg.FileOffset = &v
			return err
		case 6:
			v, err := c.Zigzag64()
			rg.TotalCompressedSize = &v
			return err
		case 7:
			v, err := c.Zigzag32()
			v16 := int16(v)
			rg.Ordinal = &v16
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return rg, err
}

func decodeDataPageHeader(c *thriftcompact.Cursor) (*DataPageHeader, error) {
	h := &DataPageHeader{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			h.NumValues = v
			return err
		case 2:
			v, err := c.Zigzag32()
			h.Encoding = Encoding(v)
			return err
		case 3:
			v, err := c.Zigzag32()
			h.DefinitionLevelEncoding = Encoding(v)
			return err
		case 4:
			v, err := c.Zigzag32()
			h.RepetitionLevelEncoding = Encoding(v)
			return err
		case 5:
			v, err := decodeStatistics(c)
			h.Statistics = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return h, err
}

func decodeDataPageHeaderV2(c *thriftcompact.Cursor) (*DataPageHeaderV2, error) {
	h := &DataPageHeaderV2{IsCompressed: true}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			h.NumValues = v
			return err
		case 2:
			v, err := c.Zigzag32()
			h.NumNulls = v
			return err
		case 3:
			v, err := c.Zigzag32()
			h.NumRows = v
			return err
		case 4:
			v, err := c.Zigzag32()
			h.Encoding = Encoding(v)
			return err
		case 5:
			v, err := c.Zigzag32()
			h.DefinitionLevelsByteLength = v
			return err
		case 6:
			v, err := c.Zigzag32()
			h.RepetitionLevelsByteLength = v
			return err
		case 7:
			h.IsCompressed = fh.BoolValue
			return nil
		case 8:
			v, err := decodeStatistics(c)
			h.Statistics = v
			return err
		default:
			return c.Skip(fh.Type)
		}
	})
	return h, err
}

func decodeDictionaryPageHeader(c *thriftcompact.Cursor) (*DictionaryPageHeader, error) {
	h := &DictionaryPageHeader{}
	err := readStruct(c, func(fh thriftcompact.FieldHeader) error {
		switch fh.ID {
		case 1:
			v, err := c.Zigzag32()
			h.NumValues = v
			return err
		case 2:
			v, err := c.Zigzag32()
			h.Encoding = Encoding(v)
			return err
		case 3:
			v := fh.BoolValue
			h.IsSorted = &v
			return nil
		default:
			return c.Skip(fh.Type)
		}
	})
	return h, err
}
