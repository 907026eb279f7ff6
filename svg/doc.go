// Package svg parses SVG documents into flat path descriptors.
//
// The parser walks the document once and normalizes every drawable
// element (rect, circle, ellipse, polygon, polyline, line, path) into
// an SVG path data string, together with the element's accumulated
// ancestor transforms and fill/stroke flags. Styling, gradients, text,
// and rendering concerns are ignored; the output is exactly what a
// point sampler needs and nothing more.
//
// Descriptors keep their geometry as strings so this package stays
// free of geometry dependencies; the root shapefield package compiles
// Data and Transform back into paths and matrices.
package svg
