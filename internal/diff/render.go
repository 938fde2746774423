package diff

import (
	"fmt"
	"strings"
)

// ANSI codes shared by the renderers.
const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	red       = "\x1b[31m"
	green     = "\x1b[32m"
	yellow    = "\x1b[33m"
	magenta   = "\x1b[35m"
	cyanBold  = "\x1b[1;36m"
	pinkLine  = "\x1b[48;5;224m" // light pink for removed lines
	pinkSpan  = "\x1b[48;5;217m" // slightly darker pink for removed spans
	greenLine = "\x1b[48;5;194m" // light green for added lines
	greenSpan = "\x1b[48;5;114m" // slightly darker green for added spans
)

// Line markers used by RenderPretty.
const (
	markSame   = " "
	markAdd    = "+"
	markRemove = "−" // U+2212 MINUS SIGN
	markModify = "~"
)

// RenderPlain returns a plain-text transcript of entries: "  " before same lines, "+ " before added lines and "- " before removed lines. A modify is written as a "- " line with
// the old text and a "+ " line with the new text, followed, if it has parts, by a "~ " line concatenating the parts as text (same), {+text+} (add), and {-text-} (remove).
//
// Lines are joined with "\n"; there is no trailing newline.
func RenderPlain(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case KindSame:
			lines = append(lines, "  "+e.Line)
		case KindAdd:
			lines = append(lines, "+ "+e.Line)
		case KindRemove:
			lines = append(lines, "- "+e.Line)
		case KindModify:
			lines = append(lines, "- "+e.Old, "+ "+e.New)
			if e.Parts != nil {
				lines = append(lines, "~ "+markupParts(e.Parts))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func markupParts(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		switch p.Kind {
		case PartAdd:
			b.WriteString("{+" + p.Text + "+}")
		case PartRemove:
			b.WriteString("{-" + p.Text + "-}")
		default:
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// RenderPretty returns a human-oriented rendering of entries, one output line per same/add/remove entry and two per modify entry. Each line starts with a marker and a space:
// " " for same, "+" for add, "−" (U+2212) for remove and "~" for both lines of a modify. The first modify line is the old text, the second the new text.
//
// If color, removed lines get a pink background and added lines a green one; within a modify, the old line shows its removed parts in darker pink and the new line shows its added
// parts in darker green. Without color, the output is the bare text.
func RenderPretty(entries []Entry, color bool) string {
	wrap := func(bg, s string) string {
		if !color {
			return s
		}
		return blackFG + bg + s + reset
	}

	// Render one side of a modify, emphasizing the parts that belong only to that side.
	renderSide := func(parts []Part, keep PartKind, baseBg, spanBg string) string {
		var b strings.Builder
		for _, p := range parts {
			switch p.Kind {
			case PartSame:
				b.WriteString(p.Text)
			case keep:
				if !color {
					b.WriteString(p.Text)
					continue
				}
				// Emphasize: darker background, then reapply base.
				b.WriteString(reset)
				b.WriteString(blackFG)
				b.WriteString(spanBg)
				b.WriteString(p.Text)
				b.WriteString(reset)
				b.WriteString(blackFG)
				b.WriteString(baseBg)
			}
		}
		return b.String()
	}

	var out []string
	for _, e := range entries {
		switch e.Kind {
		case KindSame:
			out = append(out, markSame+" "+e.Line)
		case KindAdd:
			out = append(out, wrap(greenLine, markAdd+" "+e.Line))
		case KindRemove:
			out = append(out, wrap(pinkLine, markRemove+" "+e.Line))
		case KindModify:
			oldText, newText := e.Old, e.New
			if e.Parts != nil {
				oldText = renderSide(e.Parts, PartRemove, pinkLine, pinkSpan)
				newText = renderSide(e.Parts, PartAdd, greenLine, greenSpan)
			}
			out = append(out, wrap(pinkLine, markModify+" "+oldText))
			out = append(out, wrap(greenLine, markModify+" "+newText))
		}
	}
	return strings.Join(out, "\n")
}

// RenderUnified returns a unified diff of entries. A modify is shown as a "-" line followed by a "+" line. contextSize controls how many unchanged lines are shown around each
// change; two changes separated by at most 2*contextSize unchanged lines share a hunk. If color, the diff includes ANSI colors.
//
// If entries contain no changes, only the file headers are returned.
func RenderUnified(entries []Entry, fromFilename, toFilename string, contextSize int, color bool) string {
	if contextSize < 0 {
		contextSize = 0
	}

	colorize := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	type outLine struct {
		tag  byte   // ' ', '+', '-'
		text string // line content
	}

	// Flatten entries into tagged lines.
	var flat []outLine
	for _, e := range entries {
		switch e.Kind {
		case KindSame:
			flat = append(flat, outLine{tag: ' ', text: e.Line})
		case KindAdd:
			flat = append(flat, outLine{tag: '+', text: e.Line})
		case KindRemove:
			flat = append(flat, outLine{tag: '-', text: e.Line})
		case KindModify:
			flat = append(flat, outLine{tag: '-', text: e.Old}, outLine{tag: '+', text: e.New})
		}
	}

	out := []string{
		colorize("--- "+fromFilename, cyanBold),
		colorize("+++ "+toFilename, cyanBold),
	}

	// 1-based positions in old and new text at flat[i].
	oldPos := make([]int, len(flat)+1)
	newPos := make([]int, len(flat)+1)
	oldPos[0], newPos[0] = 1, 1
	for i, ol := range flat {
		oldPos[i+1], newPos[i+1] = oldPos[i], newPos[i]
		if ol.tag != '+' {
			oldPos[i+1]++
		}
		if ol.tag != '-' {
			newPos[i+1]++
		}
	}

	i := 0
	for i < len(flat) {
		if flat[i].tag == ' ' {
			i++
			continue
		}

		// Pre-context.
		start := i - contextSize
		if start < 0 {
			start = 0
		}
		for k := i - 1; k >= start; k-- {
			if flat[k].tag != ' ' {
				start = k + 1
				break
			}
		}

		// Extend over changes while the unchanged gap to the next change is small enough.
		end := i
		for end < len(flat) {
			if flat[end].tag != ' ' {
				end++
				continue
			}
			gap := end
			for gap < len(flat) && flat[gap].tag == ' ' {
				gap++
			}
			if gap < len(flat) && gap-end <= 2*contextSize {
				end = gap
				continue
			}
			// Post-context, then stop this hunk.
			post := gap - end
			if post > contextSize {
				post = contextSize
			}
			end += post
			break
		}

		oldCount, newCount := 0, 0
		for _, ol := range flat[start:end] {
			if ol.tag != '+' {
				oldCount++
			}
			if ol.tag != '-' {
				newCount++
			}
		}
		oldStart, newStart := oldPos[start], newPos[start]
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}

		out = append(out, colorize(fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount), magenta))
		for _, ol := range flat[start:end] {
			line := string(ol.tag) + ol.text
			switch ol.tag {
			case '+':
				out = append(out, colorize(line, green))
			case '-':
				out = append(out, colorize(line, red))
			default:
				out = append(out, line)
			}
		}
		i = end
	}

	return strings.Join(out, "\n")
}
