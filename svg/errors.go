package svg

import "errors"

// Sentinel errors for SVG parsing.
var (
	// ErrInvalidDocument is returned when the source does not parse as
	// well-formed XML.
	ErrInvalidDocument = errors.New("svg: invalid document")

	// ErrNoRootElement is returned when the document contains no svg
	// root element.
	ErrNoRootElement = errors.New("svg: no svg root element")
)
