package ebitensink

import "strings"

// Measurer matches the fixed-advance debug font DrawText uses.
// The requested size is ignored, as DebugPrintAt draws at one size.
type Measurer struct{}

func (Measurer) Measure(text string, size float32) (w, h float32) {
	const charW, lineH = 6, 16
	lines := strings.Split(text, "\n")
	longest := 0
	for _, ln := range lines {
		if len(ln) > longest {
			longest = len(ln)
		}
	}
	return float32(longest * charW), float32(len(lines) * lineH)
}
