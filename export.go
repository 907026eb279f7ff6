package shapefield

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// Export renders one frame at scale times the current canvas resolution
// and returns the pixels. The surface is resized, the field rebuilt and
// stepped once at the scaled size, the frame drawn and read back, and
// the original size restored with a final rebuild. The whole operation
// is synchronous and blocking.
func Export(s *SceneState, scale float64) (image.Image, error) {
	if s.renderer == nil {
		return nil, ErrRendererUnavailable
	}
	if scale <= 0 {
		scale = 1
	}

	origW, origH := s.width, s.height
	exportW := int(float64(origW) * scale)
	exportH := int(float64(origH) * scale)

	if err := s.renderer.Resize(exportW, exportH); err != nil {
		return nil, err
	}
	s.Resize(exportW, exportH)
	s.Step(s.lastStep)

	var img image.Image
	err := s.Push()
	if err == nil {
		img, err = s.renderer.ReadPixels()
	}

	// Restore the on-screen size even when the draw failed.
	if rerr := s.renderer.Resize(origW, origH); rerr != nil && err == nil {
		err = rerr
	}
	s.Resize(origW, origH)
	s.Step(s.lastStep)

	if err != nil {
		return nil, err
	}
	return img, nil
}

// ExportPNG runs Export and encodes the result as PNG.
func ExportPNG(w io.Writer, s *SceneState, scale float64) error {
	img, err := Export(s, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("shapefield: failed to encode export: %w", err)
	}
	return nil
}
