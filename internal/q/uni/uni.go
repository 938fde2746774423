// Package uni measures and cuts text in user-perceived characters (extended grapheme clusters) for monospace terminals.
package uni

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the width of str in terminal cells. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// Graphemes splits str into extended grapheme clusters. Concatenating the result reproduces str. An empty str yields nil.
func Graphemes(str string) []string {
	var out []string
	iter := graphemes.FromString(str)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// Truncate returns the longest prefix of str, cut on grapheme boundaries, whose width is at most width. If str had to be cut and tail is non-empty, the prefix is shortened further
// so that prefix+tail fits, and tail is appended.
func Truncate(str string, width int, tail string, opts *Options) string {
	cond := conditionFromOptions(opts)
	if cond.StringWidth(str) <= width {
		return str
	}
	budget := width - cond.StringWidth(tail)
	if budget < 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	iter := graphemes.FromString(str)
	for iter.Next() {
		w := cond.StringWidth(iter.Value())
		if used+w > budget {
			break
		}
		b.WriteString(iter.Value())
		used += w
	}
	b.WriteString(tail)
	return b.String()
}

// PadRight appends spaces to str until it is width cells wide. str is returned unchanged if it is already at least that wide.
func PadRight(str string, width int, opts *Options) string {
	w := TextWidth(str, opts)
	if w >= width {
		return str
	}
	return str + strings.Repeat(" ", width-w)
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
