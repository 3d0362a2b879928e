package litepage

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// RecordOptions define record decoding options.
type RecordOptions struct {
	// Encoding is the text encoding of the database, see FileHeader.
	// Default: UTF8.
	Encoding TextEncoding
}

func (o *RecordOptions) norm() *RecordOptions {
	var oo RecordOptions
	if o != nil {
		oo = *o
	}

	if !oo.Encoding.isValid() {
		oo.Encoding = UTF8
	}
	return &oo
}

// Record is a decoded cell payload.
type Record struct {
	Columns []Column
	// Values holds one value per column: nil, int64, []byte or string.
	// Blob values are sub-slices of the payload.
	Values []interface{}
}

// ParseRecord decodes a record from a cell payload.
func ParseRecord(payload []byte, o *RecordOptions) (*Record, error) {
	o = o.norm()

	hlen, n, err := ReadVarint(payload, 0)
	if err != nil {
		return nil, errors.WithMessage(err, "record header length")
	}
	if hlen > uint64(len(payload)) {
		return nil, errors.Wrapf(ErrBounds, "record header of %d bytes, payload size %d", hlen, len(payload))
	}

	rec := new(Record)
	for pos := n; pos < int(hlen); {
		code, n, err := ReadVarint(payload[:hlen], pos)
		if err != nil {
			return nil, errors.WithMessagef(err, "serial type of column %d", len(rec.Columns))
		}
		pos += n

		col, err := ColumnFromSerial(int64(code))
		if err != nil {
			return nil, err
		}
		rec.Columns = append(rec.Columns, col)
	}

	rec.Values = make([]interface{}, len(rec.Columns))
	for i, pos := 0, int(hlen); i < len(rec.Columns); i++ {
		v, next, err := readValue(rec.Columns[i], payload, pos, o.Encoding)
		if err != nil {
			return nil, errors.WithMessagef(err, "column %d", i)
		}
		rec.Values[i] = v
		pos = next
	}
	return rec, nil
}

// ReadValue decodes a single UTF-8 column value at pos, returning the value
// and the cursor position after it.
func ReadValue(col Column, buf []byte, pos int) (interface{}, int, error) {
	return readValue(col, buf, pos, UTF8)
}

func readValue(col Column, buf []byte, pos int, enc TextEncoding) (interface{}, int, error) {
	switch col.Type {
	case Float64, Reserved1, Reserved2:
		return nil, pos, errors.Wrapf(ErrUnsupportedColumnType, "%s", col.Type)
	case InvalidColumn:
		return nil, pos, errors.Wrapf(ErrInvalidEnum, "column type %d", col.Type)
	}

	size := col.Size()
	if pos < 0 || size > len(buf)-pos {
		return nil, pos, errors.Wrapf(ErrBounds, "%s value at %d, buffer length %d", col, pos, len(buf))
	}
	end := pos + size

	switch col.Type {
	case Null:
		return nil, end, nil
	case ConstZero:
		return int64(0), end, nil
	case ConstOne:
		return int64(1), end, nil
	case Blob:
		return buf[pos:end:end], end, nil
	case Text:
		s, err := decodeText(buf[pos:end], enc)
		if err != nil {
			return nil, pos, err
		}
		return s, end, nil
	}

	var v uint64
	for _, c := range buf[pos:end] {
		v = v<<8 | uint64(c)
	}
	return int64(v), end, nil
}

func decodeText(b []byte, enc TextEncoding) (string, error) {
	switch enc {
	case UTF16LE, UTF16BE:
		if len(b)%2 != 0 {
			return "", errors.Wrapf(ErrInvalidText, "odd %s length %d", enc, len(b))
		}

		order, units := unicode.LittleEndian, binary.ByteOrder(binary.LittleEndian)
		if enc == UTF16BE {
			order, units = unicode.BigEndian, binary.BigEndian
		}
		if pos := unpairedSurrogate(b, units); pos > -1 {
			return "", errors.Wrapf(ErrInvalidText, "unpaired %s surrogate at byte %d", enc, pos)
		}

		p, err := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder().Bytes(b)
		if err != nil {
			return "", errors.Wrap(ErrInvalidText, err.Error())
		}
		return string(p), nil
	}

	if !utf8.Valid(b) {
		return "", errors.Wrapf(ErrInvalidText, "invalid UTF-8 sequence %q", b)
	}
	return string(b), nil
}

// unpairedSurrogate returns the byte position of the first surrogate code
// unit which is not part of a high/low pair, or -1.
func unpairedSurrogate(b []byte, order binary.ByteOrder) int {
	for i := 0; i+1 < len(b); i += 2 {
		u := rune(order.Uint16(b[i:]))
		if !utf16.IsSurrogate(u) {
			continue
		}
		if u >= 0xdc00 || i+3 >= len(b) {
			return i
		}
		if l := rune(order.Uint16(b[i+2:])); l < 0xdc00 || l > 0xdfff {
			return i
		}
		i += 2
	}
	return -1
}
