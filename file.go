package phyloxml

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadFile parses the phyloXML document at path. Gzip-compressed files are
// detected by their magic bytes and decompressed transparently.
func ReadFile(path string) (*Phyloxml, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := decompressed(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// ParseFile iterates over the phylogenies in the file at path, with the same
// semantics as Parse. The file is closed when the iteration stops.
func ParseFile(path string) iter.Seq2[*Phylogeny, error] {
	return func(yield func(*Phylogeny, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()
		r, err := decompressed(f)
		if err != nil {
			yield(nil, fmt.Errorf("parse %s: %w", path, err))
			return
		}
		for phy, err := range Parse(r) {
			if !yield(phy, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// WriteFile serializes v to path with Write semantics, gzip-compressing when
// the path ends in ".gz".
func WriteFile(v any, path string, opts ...WriteOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if err := Write(v, w, opts...); err != nil {
		f.Close()
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

const gzipMagic = "\x1f\x8b"

// decompressed wraps r with a gzip reader when the stream starts with the
// gzip magic bytes.
func decompressed(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err == nil && string(magic) == gzipMagic {
		return gzip.NewReader(br)
	}
	return br, nil
}
