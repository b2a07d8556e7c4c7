package loader

import "fmt"

// NotFoundError means a document file doesn't exist
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: file not found", e.Path)
}

// ParseError means a document couldn't be decoded in its declared format
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Path, e.Format, e.Err)
}

// Unwrap returns the decoder error
func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedFormatError is returned for a format this package can't read
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q, expected one of json, xml, yaml", e.Format)
}
