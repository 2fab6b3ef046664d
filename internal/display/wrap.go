package display

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultWidth = 80

	ellipsis = "…"
)

// Wrap word-wraps text to width, preserving ANSI escape sequences.
func Wrap(text string, width int) string {
	return wordwrap.String(text, width)
}

// Cell clips s to exactly width printable cells, padding short values.
func Cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.PrintableRuneWidth(s) > width {
		s = truncate.StringWithTail(s, uint(width), ellipsis)
	}
	return padding.String(s, uint(width))
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
