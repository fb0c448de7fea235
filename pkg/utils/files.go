// Package utils collects small host-filesystem and hashing helpers used
// by the cartridge loader and the cmd/goadvance CLI.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// IsSize reports whether the file at filename has exactly the given size,
// used to sanity-check save files against the backup type they imply.
func IsSize(filename string, size int64) bool {
	fi, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return fi.Size() == size
}

// LoadFile loads the given file, transparently decompressing .gz, .zip and
// .7z archives and returning the first entry's contents. Plain ROM/save/BIOS
// dumps are returned as-is.
func LoadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch ext := filepath.Ext(filename); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	case ".zip":
		zipReader, err := zip.NewReader(readerAt(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(zipReader.File) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		decoder, err = zipReader.File[0].Open()
		if err != nil {
			return nil, err
		}
	case ".7z":
		r, err := sevenzip.NewReader(readerAt(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, err
		}
	default:
		return data, nil
	}

	return io.ReadAll(decoder)
}

// readerAt adapts an in-memory byte slice to io.ReaderAt, since both
// archive/zip and sevenzip want random access rather than a stream.
type readerAt []byte

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r)) {
		return 0, io.EOF
	}
	n := copy(p, r[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
