package rpt

import (
	"compress/gzip"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/alchip/ptsum/errors"
)

// Open opens a timing report for reading, transparently decompressing
// files with a .gz suffix. Closing the returned reader closes both
// the decompressor and the underlying file.
func Open(fsys afero.Fs, path string) (io.ReadCloser, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open report %s", path)
	}
	if filepath.Ext(path) != ".gz" {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "failed to read gzip header of %s", path)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

// ScanFile opens path on fsys and returns all path records in it.
func ScanFile(fsys afero.Fs, path string, pats *Patterns) ([]PathRecord, error) {
	r, err := Open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	recs, err := ScanAllWithPatterns(r, pats)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan report %s", path)
	}
	return recs, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  afero.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
