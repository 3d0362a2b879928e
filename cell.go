package litepage

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Cell is a table-leaf cell.
type Cell struct {
	PayloadSize uint64 // total payload size in bytes
	RowID       int64  // the integer primary key
	Payload     []byte // a sub-slice of the page, must not be modified
	End         int    // cursor position immediately after the payload
}

// ParseCell decodes a table-leaf cell starting at offset. Payloads which
// extend beyond the page are continued on overflow pages and are rejected
// with ErrOverflowNotSupported.
func ParseCell(page []byte, offset int) (*Cell, error) {
	size, n, err := ReadVarint(page, offset)
	if err != nil {
		return nil, errors.WithMessage(err, "payload size")
	}
	pos := offset + n

	rowID, n, err := ReadVarint(page, pos)
	if err != nil {
		return nil, errors.WithMessage(err, "row id")
	}
	pos += n

	if size > uint64(len(page)-pos) {
		return nil, errors.Wrapf(ErrOverflowNotSupported, "cell at %d: payload of %d bytes exceeds page by %d bytes", offset, size, size-uint64(len(page)-pos))
	}
	end := pos + int(size)

	return &Cell{
		PayloadSize: size,
		RowID:       int64(rowID),
		Payload:     page[pos:end:end],
		End:         end,
	}, nil
}

// Record decodes the cell payload.
func (c *Cell) Record(o *RecordOptions) (*Record, error) {
	return ParseRecord(c.Payload, o)
}

// --------------------------------------------------------------------

// ChildCell is a table-interior cell, pointing to a child page which holds
// all rows with keys less than or equal to RowID. Child pages are not
// followed.
type ChildCell struct {
	Offset    int
	ChildPage uint32
	RowID     int64
	Err       error
}

func parseChildCell(page []byte, offset int) ChildCell {
	c := ChildCell{Offset: offset}
	if offset < 0 || offset+4 > len(page) {
		c.Err = errors.Wrapf(ErrBounds, "child pointer at %d, page size %d", offset, len(page))
		return c
	}
	c.ChildPage = binary.BigEndian.Uint32(page[offset:])

	key, _, err := ReadVarint(page, offset+4)
	if err != nil {
		c.Err = errors.WithMessage(err, "child key")
		return c
	}
	c.RowID = int64(key)
	return c
}
