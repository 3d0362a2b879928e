package litepage

import (
	"io"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options define reader specific options.
type Options struct {
	// CacheSize is the maximum number of pages to keep in memory.
	// Default: 0 (no caching).
	CacheSize int64

	// Logger receives debug output on page reads and skipped rows.
	// Default: no-op.
	Logger *zap.Logger
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.CacheSize < 0 {
		oo.CacheSize = 0
	}
	if oo.Logger == nil {
		oo.Logger = zap.NewNop()
	}
	return &oo
}

// Reader instances decode pages of a database file. Readers are safe for
// concurrent use, but Close must not be called while other calls are in
// progress.
type Reader struct {
	r io.ReaderAt
	o *Options

	header   *FileHeader
	numPages int
	cache    *ristretto.Cache[uint32, []byte]
}

// NewReader opens a reader.
func NewReader(r io.ReaderAt, size int64, o *Options) (*Reader, error) {
	o = o.norm()

	if size < HeaderSize {
		return nil, errors.Wrapf(ErrBounds, "file of %d bytes is too small", size)
	}

	tmp := make([]byte, HeaderSize)
	if n, err := r.ReadAt(tmp, 0); err != nil && !(err == io.EOF && n == len(tmp)) {
		return nil, errors.Wrap(err, "litepage: read header")
	}

	header, err := ParseHeader(tmp)
	if err != nil {
		return nil, err
	}
	if header.PageSize < minPageSize || header.PageSize > maxPageSize || header.PageSize&(header.PageSize-1) != 0 {
		return nil, errors.Wrapf(ErrFormat, "invalid page size %d", header.PageSize)
	}

	numPages := int(size / int64(header.PageSize))
	if n := int(header.DatabaseSize); n != 0 && n < numPages {
		numPages = n
	}

	var cache *ristretto.Cache[uint32, []byte]
	if o.CacheSize > 0 {
		cache, err = ristretto.NewCache(&ristretto.Config[uint32, []byte]{
			NumCounters:        10 * o.CacheSize,
			MaxCost:            o.CacheSize,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, errors.Wrap(err, "litepage: init page cache")
		}
	}

	o.Logger.Debug("opened database",
		zap.Uint32("page_size", header.PageSize),
		zap.Int("pages", numPages),
		zap.Stringer("encoding", header.TextEncoding),
		zap.Stringer("version", header.Version),
	)

	return &Reader{
		r: r,
		o: o,

		header:   header,
		numPages: numPages,
		cache:    cache,
	}, nil
}

// Header returns the file header.
func (r *Reader) Header() *FileHeader { return r.header }

// PageSize returns the page size in bytes.
func (r *Reader) PageSize() int { return int(r.header.PageSize) }

// NumPages returns the number of pages in the file.
func (r *Reader) NumPages() int { return r.numPages }

// ReadPage returns the raw bytes of page n, counting from 1. The returned
// slice is owned by the caller.
func (r *Reader) ReadPage(n uint32) ([]byte, error) {
	if n == 0 || int64(n) > int64(r.numPages) {
		return nil, errors.Wrapf(ErrPageNotFound, "page %d of %d", n, r.numPages)
	}

	if r.cache != nil {
		if p, ok := r.cache.Get(n); ok {
			r.o.Logger.Debug("page cache hit", zap.Uint32("page", n))
			return append([]byte(nil), p...), nil
		}
	}

	page := make([]byte, r.header.PageSize)
	if m, err := r.r.ReadAt(page, r.offset(n)); err != nil && !(err == io.EOF && m == len(page)) {
		return nil, errors.Wrapf(err, "litepage: read page %d", n)
	}
	r.o.Logger.Debug("read page", zap.Uint32("page", n), zap.Int64("offset", r.offset(n)))

	if r.cache != nil {
		r.cache.Set(n, append([]byte(nil), page...), 1)
	}
	return page, nil
}

// WritePage is not supported, it always returns ErrReadOnly.
func (r *Reader) WritePage(n uint32, p []byte) error {
	return errors.Wrapf(ErrReadOnly, "write page %d", n)
}

// Node decodes page n.
func (r *Reader) Node(n uint32) (*Node, error) {
	page, err := r.ReadPage(n)
	if err != nil {
		return nil, err
	}

	node, err := ParseNode(page, n == 1)
	if err != nil {
		return nil, errors.WithMessagef(err, "page %d", n)
	}
	return node, nil
}

// Row is a decoded table-leaf cell.
type Row struct {
	RowID int64
	*Record
	Err error
}

// Rows decodes all rows stored on table-leaf page n. Malformed rows are
// returned with their error set; they do not abort the page.
func (r *Reader) Rows(n uint32) ([]Row, error) {
	node, err := r.Node(n)
	if err != nil {
		return nil, err
	}
	if node.Type != TableLeaf {
		return nil, errors.Wrapf(ErrNotTableLeaf, "page %d is a %s page", n, node.Type)
	}

	o := &RecordOptions{Encoding: r.header.TextEncoding}
	rows := make([]Row, len(node.Cells))
	for i, c := range node.Cells {
		if c.Err != nil {
			rows[i].Err = c.Err
			r.o.Logger.Debug("skipped cell", zap.Uint32("page", n), zap.Int("offset", c.Offset), zap.Error(c.Err))
			continue
		}

		rows[i].RowID = c.RowID
		rows[i].Record, rows[i].Err = c.Record(o)
		if rows[i].Err != nil {
			r.o.Logger.Debug("skipped row", zap.Uint32("page", n), zap.Int64("rowid", c.RowID), zap.Error(rows[i].Err))
		}
	}
	return rows, nil
}

// Close releases the page cache. Pages read after Close bypass the cache.
func (r *Reader) Close() error {
	if r.cache != nil {
		r.cache.Close()
	}
	return nil
}

func (r *Reader) offset(n uint32) int64 {
	return int64(n-1) * int64(r.header.PageSize)
}
