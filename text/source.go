package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	data []byte

	// sfnt is used for rasterization and metrics (golang.org/x/image).
	sfnt *sfnt.Font

	// mu protects gt, which is parsed lazily on first shaping call.
	// gtfont.Font is read-only and safe for concurrent use once built.
	mu sync.Mutex
	gt *gtfont.Font
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}

	s := &FontSource{data: dataCopy, sfnt: parsed}
	s.addr = s
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Face creates a Face at the specified size (in pixels).
// Multiple faces can be created from the same FontSource.
//
// Face is a lightweight value that shares state with the FontSource.
// Panics if s is nil (e.g. when NewFontSourceFromFile error was ignored).
func (s *FontSource) Face(size float64) Face {
	if s == nil {
		panic("text: FontSource is nil, did you check the error from NewFontSourceFromFile?")
	}
	s.copyCheck()
	return Face{source: s, size: size}
}

// shapingFont returns the go-text font for this source, parsing it on
// first use. The returned *gtfont.Font is safe for concurrent use.
func (s *FontSource) shapingFont() (*gtfont.Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gt != nil {
		return s.gt, nil
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(s.data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	s.gt = face.Font
	return s.gt, nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
