package catalog

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// openDecompressed opens path and, based on its extension, transparently
// wraps it in a gzip or bzip2 reader.
func openDecompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotReadableError{Path: path, Err: err}
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, &NotReadableError{Path: path, Err: fmt.Errorf("gzip: %w", err)}
		}
		return &gzipReadCloser{gz: gz, f: f}, nil
	case strings.HasSuffix(path, ".bz2"):
		return &bzip2ReadCloser{r: bzip2.NewReader(f), f: f}, nil
	default:
		return f, nil
	}
}

type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gerr := g.gz.Close()
	ferr := g.f.Close()
	if gerr != nil {
		return gerr
	}
	return ferr
}

type bzip2ReadCloser struct {
	r io.Reader
	f *os.File
}

func (b *bzip2ReadCloser) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *bzip2ReadCloser) Close() error { return b.f.Close() }
