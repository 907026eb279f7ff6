package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Face is a FontSource at a specific size. Face is a lightweight value
// and can be created freely; the heavyweight parsed font lives on the
// shared FontSource.
type Face struct {
	source *FontSource
	size   float64
}

// Size returns the face size in pixels.
func (f Face) Size() float64 { return f.size }

// Source returns the FontSource this face was created from.
func (f Face) Source() *FontSource { return f.source }

// Metrics returns the font metrics scaled to the face size.
func (f Face) Metrics() Metrics {
	otFace, err := f.newRasterFace()
	if err != nil {
		return Metrics{}
	}
	defer func() { _ = otFace.Close() }()

	m := otFace.Metrics()
	// Hinted Height can come back smaller than ascent+descent; a line
	// gap is never negative.
	gap := fixedToFloat(m.Height - m.Ascent - m.Descent)
	if gap < 0 {
		gap = 0
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		LineGap: gap,
	}
}

// Advance returns the horizontal advance of text in pixels, measured
// through HarfBuzz shaping so kerning and ligatures are accounted for.
// Bidirectional text is split into runs and each run is shaped with its
// resolved direction.
func (f Face) Advance(text string) float64 {
	if text == "" || f.source == nil {
		return 0
	}

	var total float64
	for _, run := range segmentByDirection(text) {
		total += shapeAdvance(run.Text, f, run.RTL)
	}
	return total
}

// newRasterFace creates an x/image opentype face for rasterization.
// The caller must Close it.
func (f Face) newRasterFace() (font.Face, error) {
	f.source.copyCheck()
	return opentype.NewFace(f.source.sfnt, &opentype.FaceOptions{
		Size:    f.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
