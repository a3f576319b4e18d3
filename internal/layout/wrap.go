package layout

import (
	"iter"
	"slices"
	"strings"
)

// Measurer reports the rendered width of a string in the active font.
type Measurer interface {
	Width(s string) float64
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(s string) float64

// Width implements Measurer.
func (f MeasureFunc) Width(s string) float64 { return f(s) }

// Lines yields text broken greedily at spaces so that every line fits
// maxWidth. A word wider than maxWidth is yielded alone rather than split.
// The sequence holds no state between iterations and can be ranged over again.
func Lines(text string, maxWidth float64, m Measurer) iter.Seq[string] {
	return func(yield func(string) bool) {
		var line string
		for _, word := range strings.Fields(text) {
			if line == "" {
				line = word
				continue
			}
			candidate := line + " " + word
			if m.Width(candidate) <= maxWidth {
				line = candidate
				continue
			}
			if !yield(line) {
				return
			}
			line = word
		}
		if line != "" {
			yield(line)
		}
	}
}

// Wrap collects Lines into a slice.
func Wrap(text string, maxWidth float64, m Measurer) []string {
	return slices.Collect(Lines(text, maxWidth, m))
}
