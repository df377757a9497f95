package parser

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"

	// Load supported quad formats.
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"

	"github.com/ontojson/ontojson/owl"
)

const (
	gzipMagic = "\x1f\x8b"
	bzipMagic = "BZh"
)

// decompress detects gzip and bzip2 input and unwraps it, passing everything
// else through untouched.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	buf, err := br.Peek(3)
	if err != nil {
		if err == io.EOF {
			return br, nil
		}
		return nil, err
	}
	switch {
	case bytes.HasPrefix(buf, []byte(gzipMagic)):
		return gzip.NewReader(br)
	case bytes.HasPrefix(buf, []byte(bzipMagic)):
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}

// formatFor resolves an explicit format name or guesses from the file name,
// skipping a trailing compression extension.
func formatFor(path, name string) (*quad.Format, error) {
	if name != "" {
		f := quad.FormatByName(name)
		if f == nil {
			return nil, fmt.Errorf("unknown quad format %q", name)
		}
		return f, nil
	}
	ext := filepath.Ext(path)
	if ext == ".gz" || ext == ".bz2" {
		ext = filepath.Ext(strings.TrimSuffix(path, ext))
	}
	if f := quad.FormatByExt(ext); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot detect quad format of %q; use an explicit format", path)
}

// ReadQuads reads every quad from r in the given format.
func ReadQuads(r io.Reader, format *quad.Format) ([]quad.Quad, error) {
	if format == nil || format.Reader == nil {
		return nil, fmt.Errorf("reading of this format is not supported")
	}
	dr, err := decompress(r)
	if err != nil {
		return nil, err
	}
	qr := format.Reader(dr)
	defer qr.Close()
	return quad.ReadAll(qr)
}

// ReadFile reads all statements of an ontology document ("-" for stdin).
// An empty formatName auto-detects by file extension.
func ReadFile(path, formatName string) ([]quad.Quad, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open file %q: %v", path, err)
		}
		defer f.Close()
		r = f
	}
	format, err := formatFor(path, formatName)
	if err != nil {
		return nil, err
	}
	quads, err := ReadQuads(r, format)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %v", path, err)
	}
	return quads, nil
}

// ParseFile reads an ontology document and parses it into a model.
func ParseFile(path, formatName string) (*owl.Model, error) {
	quads, err := ReadFile(path, formatName)
	if err != nil {
		return nil, err
	}
	return Parse(quads), nil
}
