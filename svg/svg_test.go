package svg

import (
	"encoding/xml"
	"errors"
	"testing"
)

func TestParse_RectToPath(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 20 20"><rect x="0" y="0" width="10" height="10"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(doc.Paths))
	}

	want := "M0,0 L10,0 L10,10 L0,10 Z"
	if doc.Paths[0].Data != want {
		t.Errorf("rect path = %q, want %q", doc.Paths[0].Data, want)
	}
}

func TestElementToPath(t *testing.T) {
	tests := []struct {
		name   string
		el     xml.StartElement
		want   string
		wantOK bool
	}{
		{
			name: "rect",
			el:   startElement("rect", "x", "0", "y", "0", "width", "10", "height", "10"),
			want: "M0,0 L10,0 L10,10 L0,10 Z", wantOK: true,
		},
		{
			name: "rect missing height skipped",
			el:   startElement("rect", "width", "10"),
		},
		{
			name: "circle",
			el:   startElement("circle", "cx", "5", "cy", "5", "r", "3"),
			want: "M2,5 A3,3 0 1 0 8,5 A3,3 0 1 0 2,5 Z", wantOK: true,
		},
		{
			name: "circle missing radius skipped",
			el:   startElement("circle", "cx", "5", "cy", "5"),
		},
		{
			name: "ellipse",
			el:   startElement("ellipse", "cx", "0", "cy", "0", "rx", "4", "ry", "2"),
			want: "M-4,0 A4,2 0 1 0 4,0 A4,2 0 1 0 -4,0 Z", wantOK: true,
		},
		{
			name: "polygon closes",
			el:   startElement("polygon", "points", "0,0 10,0 5,8"),
			want: "M0,0 L10,0 L5,8 Z", wantOK: true,
		},
		{
			name: "polyline stays open",
			el:   startElement("polyline", "points", "0,0 10,0 5,8"),
			want: "M0,0 L10,0 L5,8", wantOK: true,
		},
		{
			name: "polygon single point skipped",
			el:   startElement("polygon", "points", "3,4"),
		},
		{
			name: "line",
			el:   startElement("line", "x1", "1", "y1", "2", "x2", "3", "y2", "4"),
			want: "M1,2 L3,4", wantOK: true,
		},
		{
			name: "line defaults missing coords to zero",
			el:   startElement("line", "x2", "5"),
			want: "M0,0 L5,0", wantOK: true,
		},
		{
			name: "path passthrough",
			el:   startElement("path", "d", "M0,0 C1,1 2,2 3,3"),
			want: "M0,0 C1,1 2,2 3,3", wantOK: true,
		},
		{
			name: "path without data skipped",
			el:   startElement("path"),
		},
		{
			name: "non-drawable element",
			el:   startElement("desc"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := elementToPath(tt.el)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElementToPath_RoundedRect(t *testing.T) {
	got, ok := elementToPath(startElement("rect",
		"x", "0", "y", "0", "width", "10", "height", "10", "rx", "2"))
	if !ok {
		t.Fatal("rounded rect skipped")
	}
	want := "M2,0 L8,0 Q10,0 10,2 L10,8 Q10,10 8,10 L2,10 Q0,10 0,8 L0,2 Q0,0 2,0 Z"
	if got != want {
		t.Errorf("rounded rect = %q, want %q", got, want)
	}
}

func TestParse_TransformConcatenation(t *testing.T) {
	src := `<svg viewBox="0 0 100 100">
	  <g transform="translate(10,10)">
	    <g transform="scale(2)">
	      <rect width="5" height="5" transform="rotate(45)"/>
	    </g>
	  </g>
	</svg>`

	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(doc.Paths))
	}

	want := "translate(10,10) scale(2) rotate(45)"
	if doc.Paths[0].Transform != want {
		t.Errorf("transform = %q, want %q (root-to-element order)", doc.Paths[0].Transform, want)
	}
}

func TestParse_FillAndStroke(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
	  <rect width="5" height="5"/>
	  <rect width="5" height="5" fill="none" stroke="black"/>
	  <rect width="5" height="5" fill="red" fill-rule="evenodd"/>
	</svg>`

	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(doc.Paths))
	}

	if !doc.Paths[0].HasFill || doc.Paths[0].HasStroke {
		t.Errorf("default paint: HasFill=%v HasStroke=%v, want true/false",
			doc.Paths[0].HasFill, doc.Paths[0].HasStroke)
	}
	if doc.Paths[1].HasFill || !doc.Paths[1].HasStroke {
		t.Errorf("fill=none stroke=black: HasFill=%v HasStroke=%v, want false/true",
			doc.Paths[1].HasFill, doc.Paths[1].HasStroke)
	}
	if !doc.Paths[2].EvenOdd {
		t.Error("fill-rule=evenodd not recorded")
	}
}

func TestParse_ViewBox(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ViewBox
	}{
		{
			name: "explicit viewBox",
			src:  `<svg viewBox="-5 -5 50 40"/>`,
			want: ViewBox{MinX: -5, MinY: -5, Width: 50, Height: 40},
		},
		{
			name: "width and height fallback",
			src:  `<svg width="320" height="240"/>`,
			want: ViewBox{Width: 320, Height: 240},
		},
		{
			name: "unit suffixes tolerated",
			src:  `<svg width="320px" height="240px"/>`,
			want: ViewBox{Width: 320, Height: 240},
		},
		{
			name: "default 100x100",
			src:  `<svg/>`,
			want: ViewBox{Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if doc.ViewBox != tt.want {
				t.Errorf("ViewBox = %+v, want %+v", doc.ViewBox, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("malformed XML", func(t *testing.T) {
		_, err := Parse([]byte(`<svg><rect`))
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("error = %v, want ErrInvalidDocument", err)
		}
	})

	t.Run("no svg root", func(t *testing.T) {
		_, err := Parse([]byte(`<html><body/></html>`))
		if !errors.Is(err, ErrNoRootElement) {
			t.Errorf("error = %v, want ErrNoRootElement", err)
		}
	})
}

func TestParse_SkipsMalformedElements(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
	  <rect width="5"/>
	  <circle cx="1" cy="1"/>
	  <rect width="5" height="5"/>
	</svg>`

	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Paths) != 1 {
		t.Errorf("got %d paths, want 1 (malformed elements skipped, not fatal)", len(doc.Paths))
	}
}

func startElement(name string, attrs ...string) xml.StartElement {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr = append(el.Attr, xml.Attr{
			Name:  xml.Name{Local: attrs[i]},
			Value: attrs[i+1],
		})
	}
	return el
}
