package registry

import (
	"compress/bzip2" // For reading .bz2 snapshots
	"compress/gzip"  // For reading .gz snapshots
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z snapshots
	"github.com/xi2/xz"          // For reading .xz snapshots

	"jarvis/internal/logger"
)

// ErrReadOnly is returned when saving to a compressed snapshot. Snapshots can
// be listed and shown but never rewritten.
var ErrReadOnly = errors.New("compressed database is read-only")

// compressedExts lists the snapshot extensions openDatabase understands.
var compressedExts = []string{".gz", ".bz2", ".xz", ".7z"}

// IsCompressed reports whether path names a compressed, read-only snapshot.
func IsCompressed(path string) bool {
	for _, ext := range compressedExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// stackedReader reads from the innermost decoder and closes every layer,
// innermost first, when done.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openDatabase routes to the right decoder based on the file extension and
// returns a reader over the raw JSON document. The caller must Close it.
func openDatabase(path string) (io.ReadCloser, error) {
	if strings.HasSuffix(path, ".7z") {
		logger.Debug("[DEBUG] database %s is a 7z archive\n", path)
		return open7z(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		logger.Debug("[DEBUG] database %s is gzip compressed\n", path)
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &stackedReader{Reader: gr, closers: []io.Closer{f, gr}}, nil
	case strings.HasSuffix(path, ".bz2"):
		logger.Debug("[DEBUG] database %s is bzip2 compressed\n", path)
		return &stackedReader{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	case strings.HasSuffix(path, ".xz"):
		logger.Debug("[DEBUG] database %s is xz compressed\n", path)
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		return &stackedReader{Reader: xzr, closers: []io.Closer{f}}, nil
	}
	return f, nil
}

// open7z opens the JSON document stored in a .7z archive. The first regular
// file ending in .json wins; an archive holding a single file is accepted
// whatever that file is called.
func open7z(path string) (io.ReadCloser, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}

	var files []*sevenzip.File
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}

	var member *sevenzip.File
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f.Name), ".json") {
			member = f
			break
		}
	}
	if member == nil && len(files) == 1 {
		member = files[0]
	}
	if member == nil {
		r.Close()
		return nil, fmt.Errorf("no JSON database found in %s", path)
	}

	logger.Debug("[DEBUG] reading %s from %s\n", member.Name, path)
	rc, err := member.Open()
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("open %s in archive: %w", member.Name, err)
	}
	return &stackedReader{Reader: rc, closers: []io.Closer{r, rc}}, nil
}
