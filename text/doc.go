// Package text provides font loading, shaping-based measurement, and
// glyph rasterization for the sampling pipeline.
//
// A FontSource wraps a parsed TTF or OTF font and hands out lightweight
// Face values at specific sizes. Measurement goes through HarfBuzz
// shaping (go-text/typesetting) so that kerning, ligatures, and
// right-to-left runs report the same advances the rasterizer produces.
//
// The package is deliberately small. It exists to answer two questions:
// how wide is this line, and what does it look like as pixel coverage.
package text
