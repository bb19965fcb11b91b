package enhance

import (
	"strings"
	"unicode/utf8"
)

// Measurer computes the content height of a text area in pixels.
// rows is the declared visible row count; the result never falls below it.
type Measurer interface {
	Height(value string, rows int) int
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(value string, rows int) int

func (f MeasurerFunc) Height(value string, rows int) int {
	return f(value, rows)
}

// LineMeasurer estimates height from line count. Lines longer than Columns
// characters wrap; a zero Columns disables wrapping.
type LineMeasurer struct {
	LineHeight int
	Padding    int
	Columns    int
}

// DefaultMeasurer matches a 16px font with 1.5 line height and 8px padding.
func DefaultMeasurer() LineMeasurer {
	return LineMeasurer{LineHeight: 24, Padding: 16, Columns: 60}
}

func (m LineMeasurer) Height(value string, rows int) int {
	lines := m.lines(value)
	if rows > lines {
		lines = rows
	}
	return lines*m.LineHeight + m.Padding
}

func (m LineMeasurer) lines(value string) int {
	total := 0
	for _, line := range strings.Split(value, "\n") {
		n := utf8.RuneCountInString(line)
		if m.Columns <= 0 || n <= m.Columns {
			total++
			continue
		}
		total += (n + m.Columns - 1) / m.Columns
	}
	return total
}
