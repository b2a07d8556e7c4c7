// Package loader turns files into jsondiff values. JSON & YAML documents keep
// their mapping key order, XML documents are converted with the common
// xmltodict conventions: attributes become "@name" keys & element text
// sitting next to attributes or children is stored under "#text"
package loader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qri-io/jsondiff"
	"golang.org/x/sync/errgroup"
)

// Format is a document encoding
type Format string

const (
	JSON = Format("json")
	XML  = Format("xml")
	YAML = Format("yaml")
)

// ParseFormat reads a format name. The empty string is returned as-is, meaning
// "detect from the file extension"
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", JSON, XML, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", &UnsupportedFormatError{Format: s}
}

// FormatFromPath picks a format from a file extension. Unknown extensions are
// read as JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return XML
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Load reads the file at path. An empty format is detected from the path.
// A missing file returns *NotFoundError, a malformed one *ParseError
func Load(path string, format Format) (jsondiff.Value, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	v, err := Decode(f, format)
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}
	return v, nil
}

// Decode reads a single document from r
func Decode(r io.Reader, format Format) (jsondiff.Value, error) {
	switch format {
	case JSON:
		return decodeJSON(r)
	case XML:
		return decodeXML(r)
	case YAML:
		return decodeYAML(r)
	}
	return nil, &UnsupportedFormatError{Format: string(format)}
}

// LoadPair loads the two sides of a comparison concurrently. The first error
// encountered is returned
func LoadPair(ctx context.Context, leftPath, rightPath string, format Format) (left, right jsondiff.Value, err error) {
	g, ctx := errgroup.WithContext(ctx)
	load := func(path string, dst *jsondiff.Value) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := Load(path, format)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		}
	}

	g.Go(load(leftPath, &left))
	g.Go(load(rightPath, &right))
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
