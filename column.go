package litepage

import (
	"fmt"

	"github.com/pkg/errors"
)

// ColumnType is the type of a record column, derived from its serial type.
type ColumnType byte

// Column types.
const (
	InvalidColumn ColumnType = iota
	Null
	Int8
	Int16
	Int24
	Int32
	Int48
	Int64
	Float64
	ConstZero
	ConstOne
	Reserved1
	Reserved2
	Blob
	Text
)

// fixed maps serial types 0..11 to column types.
var fixed = [...]ColumnType{Null, Int8, Int16, Int24, Int32, Int48, Int64, Float64, ConstZero, ConstOne, Reserved1, Reserved2}

// intWidths holds the value width of integer columns.
var intWidths = map[ColumnType]int{
	Int8:  1,
	Int16: 2,
	Int24: 3,
	Int32: 4,
	Int48: 6,
	Int64: 8,
}

func (t ColumnType) String() string {
	switch t {
	case Null:
		return "NULL"
	case Int8:
		return "INT8"
	case Int16:
		return "INT16"
	case Int24:
		return "INT24"
	case Int32:
		return "INT32"
	case Int48:
		return "INT48"
	case Int64:
		return "INT64"
	case Float64:
		return "FLOAT64"
	case ConstZero:
		return "ZERO"
	case ConstOne:
		return "ONE"
	case Reserved1:
		return "RESERVED1"
	case Reserved2:
		return "RESERVED2"
	case Blob:
		return "BLOB"
	case Text:
		return "TEXT"
	}
	return "INVALID"
}

// Column describes a single record column. Length is only set for Blob
// and Text columns and is always derived from the serial type.
type Column struct {
	Type   ColumnType
	Length int
}

// ColumnFromSerial resolves a serial type code:
//
//	0..11        fixed types, 10 and 11 are reserved
//	>=12, even   Blob of (code-12)/2 bytes
//	>=13, odd    Text of (code-13)/2 bytes
//
// Negative codes are invalid.
func ColumnFromSerial(code int64) (Column, error) {
	switch {
	case code < 0:
		return Column{}, errors.Wrapf(ErrInvalidEnum, "serial type %d", code)
	case code < int64(len(fixed)):
		return Column{Type: fixed[code]}, nil
	case code%2 == 0:
		return Column{Type: Blob, Length: int((code - 12) / 2)}, nil
	default:
		return Column{Type: Text, Length: int((code - 13) / 2)}, nil
	}
}

// Serial returns the serial type code of the column.
func (c Column) Serial() int64 {
	switch c.Type {
	case Blob:
		return int64(c.Length)*2 + 12
	case Text:
		return int64(c.Length)*2 + 13
	}
	for i, t := range fixed {
		if t == c.Type {
			return int64(i)
		}
	}
	return -1
}

// Size returns the number of bytes occupied by the column value.
func (c Column) Size() int {
	switch c.Type {
	case Blob, Text:
		return c.Length
	case Float64:
		return 8
	}
	return intWidths[c.Type]
}

func (c Column) String() string {
	switch c.Type {
	case Blob, Text:
		return fmt.Sprintf("%s(%d)", c.Type, c.Length)
	}
	return c.Type.String()
}
