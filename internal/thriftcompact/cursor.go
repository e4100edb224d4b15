// Package thriftcompact implements a read-only, allocation-light decoder for
// the Thrift Compact Protocol, the wire format used by Parquet for its file
// and page metadata (spec §4.1). It is a pure functional decoder over a byte
// cursor: no connections, no transports, just []byte in, typed fields out.
package thriftcompact

import (
	"errors"
	"fmt"
)

// Compact protocol type codes, as they appear in field headers and list/map
// element headers.
const (
	typeStop   = 0x0
	typeBoolTrue  = 0x1
	typeBoolFalse = 0x2
	typeByte   = 0x3
	typeI16    = 0x4
	typeI32    = 0x5
	typeI64    = 0x6
	typeDouble = 0x7
	typeBinary = 0x8
	typeList   = 0x9
	typeSet    = 0xA
	typeMap    = 0xB
	typeStruct = 0xC
)

// ErrTruncated is returned when the cursor runs out of bytes mid-value.
var ErrTruncated = errors.New("thriftcompact: truncated input")

// Cursor is a forward-only reader over an in-memory compact-protocol blob.
// Zero value is not usable; construct with NewCursor.
type Cursor struct {
	buf   []byte
	pos   int
	stack []int16 // field-id stack, one entry pushed per STRUCT begin
	lastFieldID int16
}

// NewCursor wraps buf for compact-protocol decoding starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.pos }

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.buf) - c.pos }

func (c *Cursor) byte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrTruncated
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *Cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, ErrTruncated
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Uvarint reads an unsigned LEB128 varint, as used for field-header deltas,
// collection sizes and (after zigzag-decoding) signed integers.
func (c *Cursor) Uvarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := c.byte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, fmt.Errorf("thriftcompact: varint overflow")
		}
	}
}

func zigzagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Zigzag32 reads a zigzag-encoded varint and returns it as int32.
func (c *Cursor) Zigzag32() (int32, error) {
	u, err := c.Uvarint()
	if err != nil {
		return 0, err
	}
	return int32(zigzagDecode64(u)), nil
}

// Zigzag64 reads a zigzag-encoded varint and returns it as int64.
func (c *Cursor) Zigzag64() (int64, error) {
	u, err := c.Uvarint()
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(u), nil
}

// Byte reads a raw signed byte body (compact BYTE type).
func (c *Cursor) Byte() (int8, error) {
	b, err := c.byte()
	return int8(b), err
}

// Binary reads a length-prefixed byte string (compact BINARY/STRING type).
func (c *Cursor) Binary() ([]byte, error) {
	n, err := c.Uvarint()
	if err != nil {
		return nil, err
	}
	return c.bytes(int(n))
}

// String reads a length-prefixed UTF-8 string.
func (c *Cursor) String() (string, error) {
	b, err := c.Binary()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Double reads a little-endian IEEE-754 double.
func (c *Cursor) Double() (float64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	var u uint64
	for i := 7; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	return float64FromBits(u), nil
}

// FieldHeader is the result of reading one compact field header: either the
// STOP marker (Stop == true), a boolean-valued field whose value is already
// known from the header byte (HasBoolValue), or a regular (ID, Type) pair
// whose body must still be read.
type FieldHeader struct {
	ID           int16
	Type         byte
	Stop         bool
	HasBoolValue bool
	BoolValue    bool
}

// ReadFieldBegin reads the next field header within the struct at the top of
// the field-id stack, using the compact short-form (4-bit delta) or long-form
// (zigzag field id) encoding.
func (c *Cursor) ReadFieldBegin() (FieldHeader, error) {
	b, err := c.byte()
	if err != nil {
		return FieldHeader{}, err
	}
	if b == typeStop {
		return FieldHeader{Stop: true}, nil
	}

	typ := b & 0x0f
	delta := (b & 0xf0) >> 4

	var id int16
	if delta == 0 {
		v, err := c.Zigzag32()
		if err != nil {
			return FieldHeader{}, err
		}
		id = int16(v)
	} else {
		id = c.lastFieldID + int16(delta)
	}
	c.lastFieldID = id

	switch typ {
	case typeBoolTrue:
		return FieldHeader{ID: id, Type: typeBoolTrue, HasBoolValue: true, BoolValue: true}, nil
	case typeBoolFalse:
		return FieldHeader{ID: id, Type: typeBoolFalse, HasBoolValue: true, BoolValue: false}, nil
	default:
		return FieldHeader{ID: id, Type: typ}, nil
	}
}

// StructBegin pushes the current field-id delta state so a nested struct
// starts its own delta tracking, restored by StructEnd.
func (c *Cursor) StructBegin() {
	c.stack = append(c.stack, c.lastFieldID)
	c.lastFieldID = 0
}

// StructEnd restores the enclosing struct's field-id delta state. Call after
// consuming the STOP marker of a nested struct.
func (c *Cursor) StructEnd() {
	n := len(c.stack)
	c.lastFieldID = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// ListHeader describes a decoded list/set header: ElemType is a compact type
// code, Size is the element count.
type ListHeader struct {
	ElemType byte
	Size     int
}

// ReadListBegin reads a list or set header: a 4-bit size prefix with a
// varint overflow form for sizes >= 15.
func (c *Cursor) ReadListBegin() (ListHeader, error) {
	b, err := c.byte()
	if err != nil {
		return ListHeader{}, err
	}
	size := int((b & 0xf0) >> 4)
	elemType := b & 0x0f
	if size == 15 {
		v, err := c.Uvarint()
		if err != nil {
			return ListHeader{}, err
		}
		size = int(v)
	}
	return ListHeader{ElemType: elemType, Size: size}, nil
}

// MapHeader describes a decoded map header.
type MapHeader struct {
	KeyType, ValueType byte
	Size               int
}

// ReadMapBegin reads a map header: a varint size (0 means no following type
// byte), then a single byte packing key/value compact type codes.
func (c *Cursor) ReadMapBegin() (MapHeader, error) {
	size, err := c.Uvarint()
	if err != nil {
		return MapHeader{}, err
	}
	if size == 0 {
		return MapHeader{Size: 0}, nil
	}
	b, err := c.byte()
	if err != nil {
		return MapHeader{}, err
	}
	return MapHeader{KeyType: (b & 0xf0) >> 4, ValueType: b & 0x0f, Size: int(size)}, nil
}

// Skip discards the body of a value of the given compact type, used to skip
// struct fields the reader does not recognize (spec §4.1: "unknown struct
// fields are skipped by reading a body of the declared compact type").
// Skip fails with an error for unknown list/map element types, since those
// cannot be sized without understanding their layout.
func (c *Cursor) Skip(typ byte) error {
	switch typ {
	case typeBoolTrue, typeBoolFalse:
		return nil
	case typeByte:
		_, err := c.byte()
		return err
	case typeI16, typeI32, typeI64:
		_, err := c.Uvarint()
		return err
	case typeDouble:
		_, err := c.bytes(8)
		return err
	case typeBinary:
		_, err := c.Binary()
		return err
	case typeStruct:
		c.StructBegin()
		for {
			fh, err := c.ReadFieldBegin()
			if err != nil {
				return err
			}
			if fh.Stop {
				break
			}
			if err := c.Skip(fh.Type); err != nil {
				return err
			}
		}
		c.StructEnd()
		return nil
	case typeList, typeSet:
		lh, err := c.ReadListBegin()
		if err != nil {
			return err
		}
		for i := 0; i < lh.Size; i++ {
			if err := c.Skip(lh.ElemType); err != nil {
				return err
			}
		}
		return nil
	case typeMap:
		mh, err := c.ReadMapBegin()
		if err != nil {
			return err
		}
		for i := 0; i < mh.Size; i++ {
			if err := c.Skip(mh.KeyType); err != nil {
				return err
			}
			if err := c.Skip(mh.ValueType); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("thriftcompact: cannot skip unknown compact type %#x", typ)
	}
}
