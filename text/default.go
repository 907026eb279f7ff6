package text

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultOnce   sync.Once
	defaultSource *FontSource
)

// DefaultSource returns a shared FontSource backed by the Go Regular
// typeface. It is used when no font is configured and in tests.
func DefaultSource() *FontSource {
	defaultOnce.Do(func() {
		s, err := NewFontSource(goregular.TTF)
		if err != nil {
			// goregular.TTF is embedded and known-valid.
			panic("text: failed to parse embedded default font: " + err.Error())
		}
		defaultSource = s
	})
	return defaultSource
}
