package shapefield

import "errors"

// Sentinel errors for the shapefield package.
var (
	// ErrInvalidPathData is returned when SVG path data cannot be parsed.
	ErrInvalidPathData = errors.New("shapefield: invalid path data")

	// ErrInvalidTransform is returned when an SVG transform attribute
	// cannot be parsed.
	ErrInvalidTransform = errors.New("shapefield: invalid transform")

	// ErrRendererUnavailable is returned when an operation requires a
	// renderer and none is attached.
	ErrRendererUnavailable = errors.New("shapefield: renderer unavailable")

	// ErrNoMeshFound is returned when an imported model document
	// contains no usable mesh geometry.
	ErrNoMeshFound = errors.New("shapefield: no mesh found in model")

	// ErrLoadError is returned when model data cannot be decoded at all.
	ErrLoadError = errors.New("shapefield: failed to load model")
)
