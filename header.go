package litepage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Version is the library version which last wrote the file.
type Version struct {
	Major, Minor, Patch uint32
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// FileHeader is the decoded 100-byte database file header.
type FileHeader struct {
	PageSize     uint32 // page size in bytes, a stored value of 1 means 65536
	WriteVersion FileFormatVersion
	ReadVersion  FileFormatVersion

	ReservedSpace       uint8 // unused bytes at the end of each page
	MaxPayloadFraction  uint8
	MinPayloadFraction  uint8
	LeafPayloadFraction uint8

	ChangeCounter      uint32
	DatabaseSize       uint32 // in pages
	FirstFreelistTrunk uint32
	FreelistPages      uint32
	SchemaCookie       uint32
	SchemaFormat       SchemaFormat
	DefaultCacheSize   uint32
	LargestRootPage    uint32
	TextEncoding       TextEncoding
	UserVersion        uint32
	VacuumMode         uint32
	ApplicationID      uint32
	VersionValidFor    uint32
	Version            Version
}

// ParseHeader decodes the file header from the first 100 bytes of b.
func ParseHeader(b []byte) (*FileHeader, error) {
	if len(b) < HeaderSize {
		return nil, errors.Wrapf(ErrBounds, "header requires %d bytes, got %d", HeaderSize, len(b))
	}
	if !bytes.Equal(b[:len(magic)], magic) {
		return nil, errors.Wrapf(ErrFormat, "got %q", b[:len(magic)])
	}

	h := &FileHeader{
		PageSize:     uint32(binary.BigEndian.Uint16(b[16:])),
		WriteVersion: FileFormatVersion(b[18]),
		ReadVersion:  FileFormatVersion(b[19]),

		ReservedSpace:       b[20],
		MaxPayloadFraction:  b[21],
		MinPayloadFraction:  b[22],
		LeafPayloadFraction: b[23],

		ChangeCounter:      binary.BigEndian.Uint32(b[24:]),
		DatabaseSize:       binary.BigEndian.Uint32(b[28:]),
		FirstFreelistTrunk: binary.BigEndian.Uint32(b[32:]),
		FreelistPages:      binary.BigEndian.Uint32(b[36:]),
		SchemaCookie:       binary.BigEndian.Uint32(b[40:]),
		SchemaFormat:       SchemaFormat(binary.BigEndian.Uint32(b[44:])),
		DefaultCacheSize:   binary.BigEndian.Uint32(b[48:]),
		LargestRootPage:    binary.BigEndian.Uint32(b[52:]),
		TextEncoding:       TextEncoding(binary.BigEndian.Uint32(b[56:])),
		UserVersion:        binary.BigEndian.Uint32(b[60:]),
		VacuumMode:         binary.BigEndian.Uint32(b[64:]),
		ApplicationID:      binary.BigEndian.Uint32(b[68:]),
		VersionValidFor:    binary.BigEndian.Uint32(b[92:]),
	}
	if h.PageSize == 1 {
		h.PageSize = maxPageSize
	}

	if !h.WriteVersion.isValid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "write version %d", h.WriteVersion)
	}
	if !h.ReadVersion.isValid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "read version %d", h.ReadVersion)
	}
	// Both are zero until the first schema object is created.
	if h.SchemaFormat != 0 && !h.SchemaFormat.isValid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "schema format %d", h.SchemaFormat)
	}
	if h.TextEncoding != 0 && !h.TextEncoding.isValid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "text encoding %d", h.TextEncoding)
	}

	v := binary.BigEndian.Uint32(b[96:])
	h.Version = Version{
		Major: v / 1000000,
		Minor: (v % 1000000) / 1000,
		Patch: v % 1000,
	}
	return h, nil
}

// Usable returns the number of usable bytes per page.
func (h *FileHeader) Usable() int {
	return int(h.PageSize) - int(h.ReservedSpace)
}
