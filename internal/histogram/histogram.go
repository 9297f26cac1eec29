// Package histogram renders ranked pairs for the terminal.
package histogram

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/cognicore/bigrams/pkg/bigram"
)

const (
	// DefaultWidth is used when the output is not a terminal.
	DefaultWidth = 80

	maxLabel = 20
	minBar   = 10
	// " | " before the bar plus room for a short count after it
	chrome = 6
)

var (
	barColor   = color.New(color.FgGreen)
	countColor = color.New(color.FgHiBlack)
)

// TerminalWidth returns the column count of the terminal on fd, or
// DefaultWidth.
func TerminalWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// List writes one "(a, b): n" line per entry.
func List(w io.Writer, entries []bigram.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %d\n", e.Pair, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// Render draws a horizontal bar chart scaled to width columns. The most
// frequent pair fills the bar column; any non-zero count gets at least
// one mark.
func Render(w io.Writer, entries []bigram.Entry, width int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "*** no data ***")
		return err
	}

	labelWidth := 0
	maxCount := 0
	for _, e := range entries {
		labelWidth = max(labelWidth, len(e.Pair.Label()))
		maxCount = max(maxCount, e.Count)
	}
	labelWidth = min(maxLabel, labelWidth)
	barWidth := max(minBar, width-labelWidth-chrome)

	for _, e := range entries {
		label := truncate(e.Pair.Label(), labelWidth)
		n := bars(e.Count, maxCount, barWidth)
		_, err := fmt.Fprintf(w, "%-*s | %s %s\n",
			labelWidth, label,
			barColor.Sprint(strings.Repeat("#", n)),
			countColor.Sprint(e.Count))
		if err != nil {
			return err
		}
	}
	return nil
}

func bars(count, maxCount, barWidth int) int {
	if count == maxCount {
		return barWidth
	}
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(count)/float64(maxCount)*float64(barWidth))))
}

func truncate(label string, width int) string {
	if len(label) <= width {
		return label
	}
	if width <= 3 {
		return label[:width]
	}
	return label[:width-3] + "..."
}
