package litepage

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Node is a single decoded b-tree page.
type Node struct {
	Type            NodeType
	FirstFreeblock  uint16 // offset of the first freeblock, 0 if none
	NumCells        uint16
	CellOffset      int // start of the cell content area
	FragmentedBytes uint8
	RightChild      uint32 // right-most child page, interior pages only

	// Pointers holds the absolute page offset of each cell.
	Pointers []int
	// Cells holds one result per pointer on table-leaf pages.
	Cells []CellResult
	// Children holds one result per pointer on table-interior pages.
	Children []ChildCell
}

// CellResult is the outcome of decoding a single table-leaf cell. A
// malformed cell does not prevent its siblings from being decoded.
type CellResult struct {
	Offset int
	*Cell
	Err error
}

// ParseNode decodes a page. Set hasFileHeader for page 1, which is prefixed
// by the 100-byte file header.
//
// Index pages are decoded up to their cell pointer array only.
func ParseNode(page []byte, hasFileHeader bool) (*Node, error) {
	base := 0
	if hasFileHeader {
		base = HeaderSize
	}
	if base >= len(page) {
		return nil, errors.Wrapf(ErrBounds, "page header at %d, page size %d", base, len(page))
	}

	typ := NodeType(page[base])
	if !typ.isValid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "node type %d", page[base])
	}

	hlen := typ.HeaderSize()
	if base+hlen > len(page) {
		return nil, errors.Wrapf(ErrBounds, "%s page header at %d needs %d bytes, page size %d", typ, base, hlen, len(page))
	}

	n := &Node{
		Type:            typ,
		FirstFreeblock:  binary.BigEndian.Uint16(page[base+1:]),
		NumCells:        binary.BigEndian.Uint16(page[base+3:]),
		CellOffset:      int(binary.BigEndian.Uint16(page[base+5:])),
		FragmentedBytes: page[base+7],
	}
	if !typ.IsLeaf() {
		n.RightChild = binary.BigEndian.Uint32(page[base+8:])
	}
	if n.CellOffset > len(page) {
		return nil, errors.Wrapf(ErrBounds, "cell content area at %d, page size %d", n.CellOffset, len(page))
	}

	ptrs := base + hlen
	if end := ptrs + 2*int(n.NumCells); end > len(page) {
		return nil, errors.Wrapf(ErrBounds, "%d cell pointers end at %d, page size %d", n.NumCells, end, len(page))
	}

	n.Pointers = make([]int, int(n.NumCells))
	for i := range n.Pointers {
		n.Pointers[i] = int(binary.BigEndian.Uint16(page[ptrs+2*i:]))
	}

	switch typ {
	case TableLeaf:
		n.Cells = make([]CellResult, len(n.Pointers))
		for i, off := range n.Pointers {
			n.Cells[i] = parseCellResult(page, off)
		}
	case TableInterior:
		n.Children = make([]ChildCell, len(n.Pointers))
		for i, off := range n.Pointers {
			n.Children[i] = parseChildCell(page, off)
		}
	}
	return n, nil
}

// HasRightChild returns true if the node carries a right-most child pointer.
func (n *Node) HasRightChild() bool { return !n.Type.IsLeaf() }

// Err returns the first cell error, if any.
func (n *Node) Err() error {
	for _, c := range n.Cells {
		if c.Err != nil {
			return c.Err
		}
	}
	for _, c := range n.Children {
		if c.Err != nil {
			return c.Err
		}
	}
	return nil
}

func parseCellResult(page []byte, off int) CellResult {
	res := CellResult{Offset: off}
	if off >= len(page) {
		res.Err = errors.Wrapf(ErrBounds, "cell pointer %d, page size %d", off, len(page))
		return res
	}
	res.Cell, res.Err = ParseCell(page, off)
	return res
}
