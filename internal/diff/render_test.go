package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlain(t *testing.T) {
	entries := []Entry{
		{Kind: KindSame, Line: "keep"},
		{Kind: KindRemove, Line: "gone"},
		{Kind: KindAdd, Line: "new"},
		{Kind: KindModify, Old: "foo bar", New: "foo baz", Parts: []Part{
			{Kind: PartSame, Text: "foo "},
			{Kind: PartRemove, Text: "bar"},
			{Kind: PartAdd, Text: "baz"},
		}},
		{Kind: KindModify, Old: "x", New: "y"},
	}

	exp := strings.Join([]string{
		"  keep",
		"- gone",
		"+ new",
		"- foo bar",
		"+ foo baz",
		"~ foo {-bar-}{+baz+}",
		"- x",
		"+ y",
	}, "\n")

	assert.Equal(t, exp, RenderPlain(entries))
	assert.Equal(t, "", RenderPlain(nil))
}

func TestRenderPretty_NoColor(t *testing.T) {
	entries := Build("a\nfoo bar\nc", "a\nfoo baz\nc\nd", withGranularity(GranularityWord))

	exp := strings.Join([]string{
		"  a",
		"~ foo bar",
		"~ foo baz",
		"  c",
		"+ d",
	}, "\n")

	assert.Equal(t, exp, RenderPretty(entries, false))
}

func TestRenderPretty_Color(t *testing.T) {
	entries := []Entry{
		{Kind: KindSame, Line: "a"},
		{Kind: KindRemove, Line: "r"},
		{Kind: KindModify, Old: "ab", New: "ac", Parts: []Part{
			{Kind: PartSame, Text: "a"},
			{Kind: PartRemove, Text: "b"},
			{Kind: PartAdd, Text: "c"},
		}},
	}

	// Methodology: if the Println looks good, grab actual from the assert.Equal failure and paste into exp.
	rendered := RenderPretty(entries, true)
	// fmt.Println(rendered)
	exp := strings.Join([]string{
		"  a",
		"\x1b[30m\x1b[48;5;224m\u2212 r\x1b[0m",
		"\x1b[30m\x1b[48;5;224m~ a\x1b[0m\x1b[30m\x1b[48;5;217mb\x1b[0m\x1b[30m\x1b[48;5;224m\x1b[0m",
		"\x1b[30m\x1b[48;5;194m~ a\x1b[0m\x1b[30m\x1b[48;5;114mc\x1b[0m\x1b[30m\x1b[48;5;194m\x1b[0m",
	}, "\n")
	assert.Equal(t, exp, rendered)
}

func TestRenderUnified_SimpleReplace_NoColor(t *testing.T) {
	entries := Build("a\nb\nc\n", "a\nX\nc\n", DefaultOptions())

	r := RenderUnified(entries, "old.txt", "new.txt", 1, false)

	exp := strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+X",
		" c",
	}, "\n")

	assert.Equal(t, exp, r)
}

func TestRenderUnified_SimpleReplace_Color(t *testing.T) {
	entries := Build("a\nb\nc\n", "a\nX\nc\n", DefaultOptions())

	r := RenderUnified(entries, "old.txt", "new.txt", 1, true)

	exp := strings.Join([]string{
		cyanBold + "--- old.txt" + reset,
		cyanBold + "+++ new.txt" + reset,
		magenta + "@@ -1,3 +1,3 @@" + reset,
		" a",
		red + "-b" + reset,
		green + "+X" + reset,
		" c",
	}, "\n")

	assert.Equal(t, exp, r)
}

func TestRenderUnified_MergeBridgedChanges(t *testing.T) {
	entries := Build("a\nb\nc\nd\ne\n", "a\nX\nc\nY\ne\n", DefaultOptions())

	r := RenderUnified(entries, "a.txt", "a.txt", 1, false)

	exp := strings.Join([]string{
		"--- a.txt",
		"+++ a.txt",
		"@@ -1,5 +1,5 @@",
		" a",
		"-b",
		"+X",
		" c",
		"-d",
		"+Y",
		" e",
	}, "\n")

	assert.Equal(t, exp, r)
}

func TestRenderUnified_SeparateHunks(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8"
	new := "1\nX\n3\n4\n5\n6\nY\n8"
	entries := Build(old, new, DefaultOptions())

	r := RenderUnified(entries, "f", "f", 1, false)

	exp := strings.Join([]string{
		"--- f",
		"+++ f",
		"@@ -1,3 +1,3 @@",
		" 1",
		"-2",
		"+X",
		" 3",
		"@@ -6,3 +6,3 @@",
		" 6",
		"-7",
		"+Y",
		" 8",
	}, "\n")

	assert.Equal(t, exp, r)
}

func TestRenderUnified_PureInsertAndNoChanges(t *testing.T) {
	entries := []Entry{{Kind: KindAdd, Line: "x"}}
	assert.Equal(t, "--- a\n+++ b\n@@ -0,0 +1,1 @@\n+x", RenderUnified(entries, "a", "b", 3, false))

	same := Build("a\nb", "a\nb", DefaultOptions())
	assert.Equal(t, "--- a\n+++ b", RenderUnified(same, "a", "b", 3, false))

	// Negative context behaves as zero.
	entries = Build("a\nb\nc", "a\nx\nc", DefaultOptions())
	assert.Equal(t, "--- a\n+++ b\n@@ -2,1 +2,1 @@\n-b\n+x", RenderUnified(entries, "a", "b", -4, false))
}

func TestRenderSideBySide(t *testing.T) {
	entries := []Entry{
		{Kind: KindSame, Line: "same"},
		{Kind: KindRemove, Line: "old"},
		{Kind: KindAdd, Line: "new"},
		{Kind: KindModify, Old: "a very long old line", New: "b\tc"},
	}

	// Widths below 24 are raised to 24: columns of (24-3)/2 = 10 cells.
	got := RenderSideBySide(entries, 10, false)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, " same      │  same", lines[0])
	assert.Equal(t, "-old       │", lines[1])
	assert.Equal(t, "           │ +new", lines[2])
	assert.Equal(t, "~a very l… │ ~b    c", lines[3])
}

func TestRenderSideBySide_Color(t *testing.T) {
	got := RenderSideBySide([]Entry{{Kind: KindRemove, Line: "x"}}, 24, true)
	assert.Equal(t, red+"-x        "+reset+" │", got)
}

func TestStats(t *testing.T) {
	entries := Build("a\nb\nc\nd", "a\nB\nc\ne\nf", DefaultOptions())
	s := Summarize(entries)
	assert.Equal(t, Stats{Same: 2, Added: 1, Modified: 2}, s)
	assert.True(t, s.Changed())
	assert.False(t, Summarize(Build("x", "x", DefaultOptions())).Changed())
}
