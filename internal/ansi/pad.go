package ansi

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PadEnd appends spaces to s until its visible length is width. Strings
// already at or past width are returned unchanged.
func PadEnd(s string, width int) string {
	return s + spaces(width-VisibleLength(s))
}

// PadStart prepends spaces to s until its visible length is width.
func PadStart(s string, width int) string {
	return spaces(width-VisibleLength(s)) + s
}

// Width is the number of terminal cells s occupies once escape runs are
// removed. Wide runes count as two cells.
func Width(s string) int {
	return runewidth.StringWidth(Strip(s))
}

// PadEndCells is PadEnd measured in terminal cells rather than bytes.
func PadEndCells(s string, width int) string {
	return s + spaces(width-Width(s))
}

// PadStartCells is PadStart measured in terminal cells rather than bytes.
func PadStartCells(s string, width int) string {
	return spaces(width-Width(s)) + s
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
