package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has internal
// mutable state and is NOT safe for concurrent use, but reusing across
// sequential calls avoids reallocating its buffers.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// shapeAdvance shapes a single-direction run and returns the sum of the
// glyph advances in pixels. Returns 0 if the font cannot be shaped.
func shapeAdvance(run string, face Face, rtl bool) float64 {
	if run == "" {
		return 0
	}

	gt, err := face.source.shapingFont()
	if err != nil {
		return 0
	}

	// gtfont.Face is not safe for concurrent use; NewFace is cheap and
	// wraps the shared thread-safe *Font.
	gtFace := gtfont.NewFace(gt)

	runes := []rune(run)
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gtFace,
		Size:      floatToFixed(face.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	var total fixed.Int26_6
	for _, g := range output.Glyphs {
		total += g.XAdvance
	}
	return fixedToFloat(total)
}

// detectScript inspects the runes and returns the script of the first
// non-space character. For mixed-script text this is a heuristic, which
// is acceptable for advance measurement.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
