package svg

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// elementToPath converts a drawable element into path data. The second
// result is false for non-drawable elements and for drawable elements
// whose geometry cannot be determined.
func elementToPath(el xml.StartElement) (string, bool) {
	switch el.Name.Local {
	case "rect":
		return rectToPath(el)
	case "circle":
		return circleToPath(el)
	case "ellipse":
		return ellipseToPath(el)
	case "polygon":
		return polyToPath(el, true)
	case "polyline":
		return polyToPath(el, false)
	case "line":
		return lineToPath(el)
	case "path":
		d := strings.TrimSpace(attrValue(el, "d"))
		return d, d != ""
	}
	return "", false
}

// rectToPath emits a four-segment closed rectangle, or the
// eight-segment rounded variant with quadratic corner approximations
// when rx or ry is positive.
func rectToPath(el xml.StartElement) (string, bool) {
	w, okW := numericAttr(el, "width")
	h, okH := numericAttr(el, "height")
	if !okW || !okH {
		return "", false
	}
	x, _ := numericAttr(el, "x")
	y, _ := numericAttr(el, "y")

	rx, okRX := numericAttr(el, "rx")
	ry, okRY := numericAttr(el, "ry")
	// A single specified radius applies to both axes.
	if okRX && !okRY {
		ry = rx
	} else if okRY && !okRX {
		rx = ry
	}

	if rx <= 0 && ry <= 0 {
		return fmt.Sprintf("M%g,%g L%g,%g L%g,%g L%g,%g Z",
			x, y, x+w, y, x+w, y+h, x, y+h), true
	}

	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	return fmt.Sprintf("M%g,%g L%g,%g Q%g,%g %g,%g L%g,%g Q%g,%g %g,%g L%g,%g Q%g,%g %g,%g L%g,%g Q%g,%g %g,%g Z",
		x+rx, y,
		x+w-rx, y,
		x+w, y, x+w, y+ry,
		x+w, y+h-ry,
		x+w, y+h, x+w-rx, y+h,
		x+rx, y+h,
		x, y+h, x, y+h-ry,
		x, y+ry,
		x, y, x+rx, y), true
}

// circleToPath emits two half arcs sharing their endpoints, forming a
// closed loop.
func circleToPath(el xml.StartElement) (string, bool) {
	r, ok := numericAttr(el, "r")
	if !ok || r <= 0 {
		return "", false
	}
	cx, _ := numericAttr(el, "cx")
	cy, _ := numericAttr(el, "cy")
	return twoArcLoop(cx, cy, r, r), true
}

func ellipseToPath(el xml.StartElement) (string, bool) {
	rx, okX := numericAttr(el, "rx")
	ry, okY := numericAttr(el, "ry")
	if !okX || !okY || rx <= 0 || ry <= 0 {
		return "", false
	}
	cx, _ := numericAttr(el, "cx")
	cy, _ := numericAttr(el, "cy")
	return twoArcLoop(cx, cy, rx, ry), true
}

func twoArcLoop(cx, cy, rx, ry float64) string {
	return fmt.Sprintf("M%g,%g A%g,%g 0 1 0 %g,%g A%g,%g 0 1 0 %g,%g Z",
		cx-rx, cy,
		rx, ry, cx+rx, cy,
		rx, ry, cx-rx, cy)
}

// polyToPath emits line segments through all vertex pairs; polygons
// close, polylines do not.
func polyToPath(el xml.StartElement, closed bool) (string, bool) {
	nums := splitNumbers(attrValue(el, "points"))
	if len(nums) < 4 {
		return "", false
	}
	// An odd trailing coordinate is dropped.
	nums = nums[:len(nums)&^1]

	var b strings.Builder
	fmt.Fprintf(&b, "M%g,%g", nums[0], nums[1])
	for i := 2; i < len(nums); i += 2 {
		fmt.Fprintf(&b, " L%g,%g", nums[i], nums[i+1])
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String(), true
}

// lineToPath emits a single two-point segment. Missing endpoint
// attributes default to zero, as in the SVG attribute definitions.
func lineToPath(el xml.StartElement) (string, bool) {
	x1, _ := numericAttr(el, "x1")
	y1, _ := numericAttr(el, "y1")
	x2, _ := numericAttr(el, "x2")
	y2, _ := numericAttr(el, "y2")
	if x1 == x2 && y1 == y2 {
		return "", false
	}
	return fmt.Sprintf("M%g,%g L%g,%g", x1, y1, x2, y2), true
}
