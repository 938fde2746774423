package diff

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withGranularity(g Granularity) Options {
	o := DefaultOptions()
	o.Granularity = g
	return o
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		opts Options
		want []Entry
	}{
		{
			name: "modified middle line",
			a:    "a\nb\nc",
			b:    "a\nx\nc",
			opts: DefaultOptions(),
			want: []Entry{
				{Kind: KindSame, Line: "a"},
				{Kind: KindModify, Old: "b", New: "x"},
				{Kind: KindSame, Line: "c"},
			},
		},
		{
			name: "word parts",
			a:    "foo bar",
			b:    "foo baz",
			opts: withGranularity(GranularityWord),
			want: []Entry{
				{Kind: KindModify, Old: "foo bar", New: "foo baz", Parts: []Part{
					{Kind: PartSame, Text: "foo"},
					{Kind: PartSame, Text: " "},
					{Kind: PartRemove, Text: "bar"},
					{Kind: PartAdd, Text: "baz"},
				}},
			},
		},
		{
			name: "char parts keep suffix order",
			a:    "cat",
			b:    "cut",
			opts: withGranularity(GranularityChar),
			want: []Entry{
				{Kind: KindModify, Old: "cat", New: "cut", Parts: []Part{
					{Kind: PartSame, Text: "c"},
					{Kind: PartRemove, Text: "a"},
					{Kind: PartAdd, Text: "u"},
					{Kind: PartSame, Text: "t"},
				}},
			},
		},
		{
			name: "whitespace insensitive shows old line",
			a:    "a  b",
			b:    "a b",
			opts: Options{WhitespaceSensitive: false, CaseSensitive: true},
			want: []Entry{{Kind: KindSame, Line: "a  b"}},
		},
		{
			name: "case insensitive",
			a:    "Hello\nWorld",
			b:    "hello\nworld",
			opts: Options{WhitespaceSensitive: true, CaseSensitive: false},
			want: []Entry{{Kind: KindSame, Line: "Hello"}, {Kind: KindSame, Line: "World"}},
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			opts: DefaultOptions(),
			want: []Entry{{Kind: KindSame, Line: ""}},
		},
		{
			name: "removed line",
			a:    "a\nb\nc",
			b:    "a\nc",
			opts: DefaultOptions(),
			want: []Entry{{Kind: KindSame, Line: "a"}, {Kind: KindRemove, Line: "b"}, {Kind: KindSame, Line: "c"}},
		},
		{
			name: "added line",
			a:    "a\nc",
			b:    "a\nb\nc",
			opts: DefaultOptions(),
			want: []Entry{{Kind: KindSame, Line: "a"}, {Kind: KindAdd, Line: "b"}, {Kind: KindSame, Line: "c"}},
		},
		{
			name: "trailing newline is an empty line",
			a:    "a\n",
			b:    "a",
			opts: DefaultOptions(),
			want: []Entry{{Kind: KindSame, Line: "a"}, {Kind: KindRemove, Line: ""}},
		},
		{
			name: "crlf equals lf",
			a:    "a\r\nb",
			b:    "a\nb",
			opts: DefaultOptions(),
			want: []Entry{{Kind: KindSame, Line: "a"}, {Kind: KindSame, Line: "b"}},
		},
		{
			name: "empty old line modified",
			a:    "a\n\nc",
			b:    "a\nb\nc",
			opts: withGranularity(GranularityWord),
			want: []Entry{
				{Kind: KindSame, Line: "a"},
				{Kind: KindModify, Old: "", New: "b", Parts: []Part{{Kind: PartAdd, Text: "b"}}},
				{Kind: KindSame, Line: "c"},
			},
		},
		{
			name: "whole file added",
			a:    "",
			b:    "x\ny",
			opts: DefaultOptions(),
			want: []Entry{{Kind: KindModify, Old: "", New: "x"}, {Kind: KindAdd, Line: "y"}},
		},
		{
			name: "invalid granularity behaves as line",
			a:    "foo bar",
			b:    "foo baz",
			opts: Options{WhitespaceSensitive: true, CaseSensitive: true, Granularity: Granularity(99)},
			want: []Entry{{Kind: KindModify, Old: "foo bar", New: "foo baz"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Build(tc.a, tc.b, tc.opts)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuild_GraphemeVersusChar(t *testing.T) {
	oldLine := "cafe\u0301"
	newLine := "cafe"

	got := Build(oldLine, newLine, withGranularity(GranularityGrapheme))
	require.Len(t, got, 1)
	assert.Equal(t, []Part{
		{Kind: PartSame, Text: "c"},
		{Kind: PartSame, Text: "a"},
		{Kind: PartSame, Text: "f"},
		{Kind: PartRemove, Text: "e\u0301"},
		{Kind: PartAdd, Text: "e"},
	}, got[0].Parts)

	got = Build(oldLine, newLine, withGranularity(GranularityChar))
	require.Len(t, got, 1)
	assert.Equal(t, []Part{
		{Kind: PartSame, Text: "c"},
		{Kind: PartSame, Text: "a"},
		{Kind: PartSame, Text: "f"},
		{Kind: PartSame, Text: "e"},
		{Kind: PartRemove, Text: "\u0301"},
	}, got[0].Parts)
}

func TestBuild_RepeatedLines(t *testing.T) {
	a := "h1\nr\nr\nr\nmid\nr\nt1"
	b := "h2\nr\nr\nmid\nr\nr\nt2"

	got := Build(a, b, DefaultOptions())

	assert.Contains(t, got, Entry{Kind: KindSame, Line: "mid"})
	assert.Equal(t, Stats{Same: 4, Added: 1, Removed: 1, Modified: 2}, Summarize(got))
}

func TestBuild_WhitespaceFolding(t *testing.T) {
	opts := Options{WhitespaceSensitive: false, CaseSensitive: true}

	got := Build("a b", "a\ufeffb", opts)
	assert.Equal(t, []Entry{{Kind: KindSame, Line: "a b"}}, got)

	got = Build("a b", "a\u0085b", opts)
	require.Len(t, got, 1)
	assert.Equal(t, KindModify, got[0].Kind)
}

func TestBuildContext_Canceled(t *testing.T) {
	var a, b strings.Builder
	for i := 0; i < 3*yieldEvery; i++ {
		fmt.Fprintf(&a, "line %d\n", i)
		fmt.Fprintf(&b, "line %d\n", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := BuildContext(ctx, a.String(), b.String(), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, entries)

	entries, err = BuildContext(context.Background(), a.String(), b.String(), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, entries, 3*yieldEvery+1)
}

func TestBuild_OptionsAreASnapshot(t *testing.T) {
	opts := withGranularity(GranularityWord)
	got := Build("foo bar", "foo baz", opts)
	opts.Granularity = GranularityLine
	assert.NotNil(t, got[0].Parts)
}

// TestBuild_Invariants runs Build over random inputs. Build validates its own output and panics on a violation, so this mostly checks that it doesn't panic.
func TestBuild_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lines := []string{"alpha beta", "Alpha  beta", "gamma", "", "  gamma ", "delta_1 + 2", "\u0414\u0415\u041b\u042c\u0422\u0410", "\u0434\u0435\u043b\u044c\u0442\u0430"}
	gen := func() string {
		n := rng.Intn(10)
		parts := make([]string, n)
		for i := range parts {
			parts[i] = lines[rng.Intn(len(lines))]
		}
		return strings.Join(parts, "\n")
	}

	for iter := 0; iter < 300; iter++ {
		a, b := gen(), gen()
		opts := Options{
			WhitespaceSensitive: rng.Intn(2) == 0,
			CaseSensitive:       rng.Intn(2) == 0,
			Granularity:         Granularity(rng.Intn(4)),
		}
		require.NotPanics(t, func() {
			entries := Build(a, b, opts)
			require.NotEmpty(t, entries)
		}, "a=%q b=%q opts=%+v", a, b, opts)
	}
}
