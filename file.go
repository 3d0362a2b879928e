package litepage

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
)

// File is a reader over a database file on disk.
type File struct {
	*Reader
	f *os.File
}

// Open opens a database file for reading. Snapshots with a .sz (snappy
// framed) or .xz suffix are decompressed into memory.
func Open(name string, o *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	var decompress func(io.Reader) (io.Reader, error)
	switch filepath.Ext(name) {
	case ".sz":
		decompress = func(r io.Reader) (io.Reader, error) { return snappy.NewReader(r), nil }
	case ".xz":
		decompress = func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) }
	}

	if decompress == nil {
		fi, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, err
		}

		r, err := NewReader(f, fi.Size(), o)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &File{Reader: r, f: f}, nil
	}
	defer f.Close()

	zr, err := decompress(f)
	if err != nil {
		return nil, errors.Wrapf(err, "litepage: open %s", name)
	}
	data, err := ioutil.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(err, "litepage: decompress %s", name)
	}
	if o != nil && o.Logger != nil {
		o.Logger.Debug("decompressed snapshot", zap.String("name", name), zap.Int("size", len(data)))
	}

	r, err := NewReader(bytes.NewReader(data), int64(len(data)), o)
	if err != nil {
		return nil, err
	}
	return &File{Reader: r}, nil
}

// Close closes the reader and the underlying file.
func (f *File) Close() error {
	err := f.Reader.Close()
	if f.f != nil {
		if e := f.f.Close(); e != nil && err == nil {
			err = e
		}
		f.f = nil
	}
	return err
}
