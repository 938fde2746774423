package diff

import (
	"strings"

	"github.com/codalotl/textdiffy/internal/q/uni"
)

const (
	sideSeparator = " │ "
	sideEllipsis  = "…"
	minSideWidth  = 24
)

// RenderSideBySide renders entries as two columns, old on the left and new on the right, in a total of width terminal cells (at least minSideWidth). Each cell starts with a
// marker ("-", "+", "~" or " ") and is cut on grapheme boundaries to fit its column; tabs are expanded to four spaces. If color, changed cells are colored red (removed), green
// (added) or yellow (modified).
func RenderSideBySide(entries []Entry, width int, color bool) string {
	if width < minSideWidth {
		width = minSideWidth
	}
	colWidth := (width - uni.TextWidth(sideSeparator, nil)) / 2

	cell := func(marker, text, code string) string {
		text = strings.ReplaceAll(text, "\t", "    ")
		s := uni.PadRight(uni.Truncate(marker+text, colWidth, sideEllipsis, nil), colWidth, nil)
		if !color || code == "" {
			return s
		}
		return code + s + reset
	}
	blank := strings.Repeat(" ", colWidth)

	var out []string
	for _, e := range entries {
		var left, right string
		switch e.Kind {
		case KindSame:
			left = cell(" ", e.Line, "")
			right = left
		case KindAdd:
			left = blank
			right = cell("+", e.Line, green)
		case KindRemove:
			left = cell("-", e.Line, red)
			right = blank
		case KindModify:
			left = cell("~", e.Old, yellow)
			right = cell("~", e.New, yellow)
		}
		out = append(out, strings.TrimRight(left+sideSeparator+right, " "))
	}
	return strings.Join(out, "\n")
}
