package litepage

import "errors"

var magic = []byte("SQLite format 3\x00")

// HeaderSize is the size of the database file header which precedes the
// first page header.
const HeaderSize = 100

const (
	minPageSize = 512
	maxPageSize = 65536
)

// Error kinds. Detail is attached by wrapping, match with errors.Is.
var (
	// ErrFormat is returned when the magic byte sequence does not match.
	ErrFormat = errors.New("litepage: bad magic byte sequence")
	// ErrInvalidEnum is returned for unrecognised node types, format
	// versions, schema formats, text encodings or serial types.
	ErrInvalidEnum = errors.New("litepage: invalid enum value")
	// ErrBounds is returned when a read would exceed the supplied buffer.
	ErrBounds = errors.New("litepage: out of bounds")
	// ErrUnsupportedColumnType is returned when reading float or reserved columns.
	ErrUnsupportedColumnType = errors.New("litepage: unsupported column type")
	// ErrOverflowNotSupported is returned when a payload spills onto overflow pages.
	ErrOverflowNotSupported = errors.New("litepage: overflow pages are not supported")
	// ErrInvalidText is returned when a text column cannot be decoded.
	ErrInvalidText = errors.New("litepage: invalid text")
)

// Reader errors.
var (
	// ErrPageNotFound is returned when a page number is outside the file.
	ErrPageNotFound = errors.New("litepage: page not found")
	// ErrReadOnly is returned by all write operations.
	ErrReadOnly = errors.New("litepage: read-only")
	// ErrMultiPageSchema is returned when the schema table does not fit on page 1.
	ErrMultiPageSchema = errors.New("litepage: schema spans multiple pages")
	// ErrNotTableLeaf is returned when rows are requested from any other page type.
	ErrNotTableLeaf = errors.New("litepage: not a table-leaf page")
)

// --------------------------------------------------------------------

// FileFormatVersion is the file format read/write version.
type FileFormatVersion byte

// Supported file format versions.
const (
	Legacy FileFormatVersion = 1
	WAL    FileFormatVersion = 2
)

func (v FileFormatVersion) isValid() bool {
	return v == Legacy || v == WAL
}

func (v FileFormatVersion) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case WAL:
		return "wal"
	}
	return "unknown"
}

// SchemaFormat is the schema format number.
type SchemaFormat uint32

// Supported schema formats.
const (
	Format1 SchemaFormat = iota + 1
	Format2
	Format3
	Format4
)

func (f SchemaFormat) isValid() bool {
	return f >= Format1 && f <= Format4
}

// TextEncoding is the database text encoding.
type TextEncoding uint32

// Supported text encodings.
const (
	UTF8 TextEncoding = iota + 1
	UTF16LE
	UTF16BE
)

func (e TextEncoding) isValid() bool {
	return e >= UTF8 && e <= UTF16BE
}

func (e TextEncoding) String() string {
	switch e {
	case 0:
		return "unset"
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16le"
	case UTF16BE:
		return "UTF-16be"
	}
	return "unknown"
}

// --------------------------------------------------------------------

// NodeType is the b-tree page type.
type NodeType byte

// Valid node types.
const (
	IndexInterior NodeType = 2
	TableInterior NodeType = 5
	IndexLeaf     NodeType = 10
	TableLeaf     NodeType = 13
)

func (t NodeType) isValid() bool {
	switch t {
	case IndexInterior, TableInterior, IndexLeaf, TableLeaf:
		return true
	}
	return false
}

// IsLeaf returns true for leaf pages.
func (t NodeType) IsLeaf() bool { return t == IndexLeaf || t == TableLeaf }

// IsTable returns true for table (integer key) pages.
func (t NodeType) IsTable() bool { return t == TableInterior || t == TableLeaf }

// HeaderSize returns the size of the page header, 8 bytes for leaves and
// 12 bytes for interior pages.
func (t NodeType) HeaderSize() int {
	if t.IsLeaf() {
		return 8
	}
	return 12
}

func (t NodeType) String() string {
	switch t {
	case IndexInterior:
		return "index-interior"
	case TableInterior:
		return "table-interior"
	case IndexLeaf:
		return "index-leaf"
	case TableLeaf:
		return "table-leaf"
	}
	return "unknown"
}
