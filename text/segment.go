package text

import "golang.org/x/text/unicode/bidi"

// directionRun is a contiguous span of text with a single resolved
// direction.
type directionRun struct {
	Text string
	RTL  bool
}

// segmentByDirection splits text into direction runs using the Unicode
// bidirectional algorithm. Pure-LTR text comes back as a single run.
func segmentByDirection(text string) []directionRun {
	if text == "" {
		return nil
	}

	p := bidi.Paragraph{}
	_, _ = p.SetString(text, bidi.DefaultDirection(bidi.Neutral))

	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() <= 1 {
		rtl := false
		if err == nil && ordering.NumRuns() == 1 {
			run := ordering.Run(0)
			rtl = run.Direction() == bidi.RightToLeft
		}
		return []directionRun{{Text: text, RTL: rtl}}
	}

	runes := []rune(text)
	runs := make([]directionRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		// Pos returns rune indices, start and end inclusive.
		start, end := run.Pos()
		if start < 0 || end >= len(runes) {
			continue
		}
		runs = append(runs, directionRun{
			Text: string(runes[start : end+1]),
			RTL:  run.Direction() == bidi.RightToLeft,
		})
	}
	return runs
}
