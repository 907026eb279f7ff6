package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ViewBox defines the user-space region mapped onto the canvas.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// PathDescriptor is one drawable element normalized to path form.
// Descriptors are immutable once produced.
type PathDescriptor struct {
	// Data is the element's geometry as SVG path data.
	Data string

	// Transform is the space-joined concatenation of every ancestor's
	// transform attribute plus the element's own, outermost first,
	// reflecting standard SVG cascading.
	Transform string

	// HasFill reports whether the element paints a fill region
	// (fill is not "none"; the SVG default is a black fill).
	HasFill bool

	// HasStroke reports whether the element paints its outline.
	HasStroke bool

	// EvenOdd selects the even-odd fill rule instead of non-zero.
	EvenOdd bool
}

// Document is the result of parsing an SVG source.
type Document struct {
	Paths   []PathDescriptor
	ViewBox ViewBox
}

// Parse parses an SVG document into path descriptors. It fails with
// ErrInvalidDocument when the source is not well-formed XML and with
// ErrNoRootElement when no svg element exists. Drawable elements whose
// geometry cannot be determined (missing required attributes) are
// skipped silently.
func Parse(src []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	doc := &Document{}
	sawRoot := false

	// One transform entry per open element, aligned with nesting depth.
	var transforms []string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			transforms = append(transforms, attrValue(t, "transform"))

			if t.Name.Local == "svg" && !sawRoot {
				sawRoot = true
				doc.ViewBox = resolveViewBox(t)
				continue
			}
			if !sawRoot {
				continue
			}
			if data, ok := elementToPath(t); ok {
				doc.Paths = append(doc.Paths, PathDescriptor{
					Data:      data,
					Transform: joinTransforms(transforms),
					HasFill:   hasFill(t),
					HasStroke: hasStroke(t),
					EvenOdd:   attrValue(t, "fill-rule") == "evenodd",
				})
			}

		case xml.EndElement:
			if len(transforms) > 0 {
				transforms = transforms[:len(transforms)-1]
			}
		}
	}

	if !sawRoot {
		return nil, ErrNoRootElement
	}
	return doc, nil
}

// joinTransforms joins the non-empty entries of the transform stack,
// outermost first.
func joinTransforms(stack []string) string {
	var parts []string
	for _, t := range stack {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// resolveViewBox uses the viewBox attribute when present, otherwise
// derives a zero-origin box from width/height, defaulting both to 100.
func resolveViewBox(el xml.StartElement) ViewBox {
	if vb := attrValue(el, "viewBox"); vb != "" {
		fields := splitNumbers(vb)
		if len(fields) == 4 {
			return ViewBox{
				MinX:  fields[0],
				MinY:  fields[1],
				Width: fields[2], Height: fields[3],
			}
		}
	}

	w, okW := parseLength(attrValue(el, "width"))
	h, okH := parseLength(attrValue(el, "height"))
	if !okW {
		w = 100
	}
	if !okH {
		h = 100
	}
	return ViewBox{Width: w, Height: h}
}

func hasFill(el xml.StartElement) bool {
	return attrValue(el, "fill") != "none"
}

func hasStroke(el xml.StartElement) bool {
	s := attrValue(el, "stroke")
	return s != "" && s != "none"
}

// attrValue returns the value of the named attribute, ignoring
// namespaces, or "" when absent.
func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// numericAttr parses a float attribute. The second result is false when
// the attribute is missing or malformed.
func numericAttr(el xml.StartElement, name string) (float64, bool) {
	v := attrValue(el, name)
	if v == "" {
		return 0, false
	}
	return parseLength(v)
}

// parseLength parses a numeric value, tolerating a trailing unit
// suffix such as "px".
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		end--
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// splitNumbers parses a whitespace- or comma-separated number list.
// Malformed entries are dropped.
func splitNumbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
