package diff

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reconstruct returns the A side (non-Insert left operands) and B side (non-Delete right operands) of edits.
func reconstruct[T any](edits []Edit[T]) ([]T, []T) {
	var a, b []T
	for _, e := range edits {
		switch e := e.(type) {
		case Equal[T]:
			a = append(a, e.A)
			b = append(b, e.B)
		case Insert[T]:
			b = append(b, e.B)
		case Delete[T]:
			a = append(a, e.A)
		case Modify[T]:
			a = append(a, e.Old)
			b = append(b, e.New)
		}
	}
	return a, b
}

func ops[T any](edits []Edit[T]) []Op {
	out := make([]Op, 0, len(edits))
	for _, e := range edits {
		out = append(out, e.Op())
	}
	return out
}

func TestPatience_Scripts(t *testing.T) {
	type eq = Equal[string]
	type ins = Insert[string]
	type del = Delete[string]

	tests := []struct {
		name string
		a    []string
		b    []string
		want []Edit[string]
	}{
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: nil,
		},
		{
			name: "only inserts",
			a:    nil,
			b:    []string{"x", "y"},
			want: []Edit[string]{ins{B: "x"}, ins{B: "y"}},
		},
		{
			name: "only deletes",
			a:    []string{"x", "y"},
			b:    nil,
			want: []Edit[string]{del{A: "x"}, del{A: "y"}},
		},
		{
			name: "replace middle",
			a:    []string{"a", "b", "c"},
			b:    []string{"a", "x", "c"},
			want: []Edit[string]{eq{A: "a", B: "a"}, del{A: "b"}, ins{B: "x"}, eq{A: "c", B: "c"}},
		},
		{
			name: "suffix keeps original order",
			a:    []string{"x", "c", "d"},
			b:    []string{"y", "c", "d"},
			want: []Edit[string]{del{A: "x"}, ins{B: "y"}, eq{A: "c", B: "c"}, eq{A: "d", B: "d"}},
		},
		{
			name: "suffix inside a gap stays inside the gap",
			a:    []string{"p", "z", "z", "M", "q"},
			b:    []string{"r", "z", "M", "s"},
			want: []Edit[string]{
				del{A: "p"}, del{A: "z"}, ins{B: "r"}, eq{A: "z", B: "z"},
				eq{A: "M", B: "M"},
				del{A: "q"}, ins{B: "s"},
			},
		},
		{
			name: "crossing anchors keep the longest increasing run",
			a:    []string{"A", "B", "C"},
			b:    []string{"C", "A", "B"},
			want: []Edit[string]{ins{B: "C"}, eq{A: "A", B: "A"}, eq{A: "B", B: "B"}, del{A: "C"}},
		},
		{
			name: "later candidate wins a pile",
			a:    []string{"A", "B"},
			b:    []string{"B", "A"},
			want: []Edit[string]{del{A: "A"}, eq{A: "B", B: "B"}, ins{B: "A"}},
		},
		{
			name: "insert between anchors",
			a:    []string{"a", "b", "c", "d", "e"},
			b:    []string{"a", "b", "z", "c", "e"},
			want: []Edit[string]{
				eq{A: "a", B: "a"}, eq{A: "b", B: "b"}, ins{B: "z"}, eq{A: "c", B: "c"}, del{A: "d"}, eq{A: "e", B: "e"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Patience(tc.a, tc.b, nil)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPatience_Identity(t *testing.T) {
	x := []string{"a", "b", "a", "", "c", "b"}
	got := Patience(x, x, nil)
	require.Len(t, got, len(x))
	for i, e := range got {
		assert.Equal(t, Equal[string]{A: x[i], B: x[i]}, e)
	}
}

func TestPatience_Disjoint(t *testing.T) {
	a := []string{"a", "b", "a"}
	b := []string{"x", "y", "x", "z"}
	got := Patience(a, b, nil)
	assert.Equal(t, []Op{OpDelete, OpDelete, OpDelete, OpInsert, OpInsert, OpInsert, OpInsert}, ops(got))
}

func TestPatience_CustomEqual(t *testing.T) {
	got := Patience([]string{"Foo", "bar"}, []string{"foo", "BAR"}, strings.EqualFold)
	assert.Equal(t, []Edit[string]{
		Equal[string]{A: "Foo", B: "foo"},
		Equal[string]{A: "bar", B: "BAR"},
	}, got)
}

func TestPatience_Ints(t *testing.T) {
	got := Patience([]int{1, 2, 3, 4}, []int{1, 3, 4, 5}, nil)
	assert.Equal(t, []Op{OpEqual, OpDelete, OpEqual, OpEqual, OpInsert}, ops(got))
}

func TestPatience_RepeatedLinesWithUniqueAnchor(t *testing.T) {
	a := []string{"h1", "r", "r", "r", "mid", "r", "t1"}
	b := []string{"h2", "r", "r", "mid", "r", "r", "t2"}

	got := Patience(a, b, nil)

	gotA, gotB := reconstruct(got)
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
	assert.Contains(t, got, Edit[string](Equal[string]{A: "mid", B: "mid"}))

	equals := 0
	for _, e := range got {
		if e.Op() == OpEqual {
			equals++
		}
	}
	assert.Equal(t, 4, equals)
}

func TestPatience_Reconstructs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []string{"a", "b", "c", "d", "e", ""}
	gen := func() []string {
		n := rng.Intn(12)
		out := make([]string, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return out
	}

	for iter := 0; iter < 500; iter++ {
		a, b := gen(), gen()
		got := Patience(a, b, nil)
		gotA, gotB := reconstruct(got)
		require.Equal(t, len(a), len(gotA), "a=%q b=%q", a, b)
		require.Equal(t, len(b), len(gotB), "a=%q b=%q", a, b)
		for i := range a {
			require.Equal(t, a[i], gotA[i], "a=%q b=%q", a, b)
		}
		for i := range b {
			require.Equal(t, b[i], gotB[i], "a=%q b=%q", a, b)
		}

		// Deterministic for the same input.
		require.Equal(t, got, Patience(a, b, nil))
	}
}

func TestLongestIncreasing(t *testing.T) {
	assert.Nil(t, longestIncreasing(nil))

	cands := []anchor{{i: 0, j: 3}, {i: 1, j: 1}, {i: 2, j: 4}, {i: 3, j: 2}, {i: 4, j: 5}}
	// Piles by j: [3] -> [1] -> [1,4] -> [1,2] -> [1,2,5].
	assert.Equal(t, []anchor{{i: 1, j: 1}, {i: 3, j: 2}, {i: 4, j: 5}}, longestIncreasing(cands))
}

func TestCollapseToModify(t *testing.T) {
	type eq = Equal[string]
	type ins = Insert[string]
	type del = Delete[string]
	type mod = Modify[string]

	tests := []struct {
		name  string
		edits []Edit[string]
		want  []Edit[string]
	}{
		{
			name:  "empty",
			edits: nil,
			want:  []Edit[string]{},
		},
		{
			name:  "delete then insert",
			edits: []Edit[string]{del{A: "a"}, ins{B: "b"}},
			want:  []Edit[string]{mod{Old: "a", New: "b"}},
		},
		{
			name:  "only the last delete pairs",
			edits: []Edit[string]{del{A: "a"}, del{A: "b"}, ins{B: "c"}},
			want:  []Edit[string]{del{A: "a"}, mod{Old: "b", New: "c"}},
		},
		{
			name:  "extra insert passes through",
			edits: []Edit[string]{del{A: "a"}, ins{B: "b"}, ins{B: "c"}},
			want:  []Edit[string]{mod{Old: "a", New: "b"}, ins{B: "c"}},
		},
		{
			name:  "insert before delete is not paired",
			edits: []Edit[string]{ins{B: "b"}, del{A: "a"}},
			want:  []Edit[string]{ins{B: "b"}, del{A: "a"}},
		},
		{
			name:  "non-adjacent pair is not merged",
			edits: []Edit[string]{del{A: "a"}, eq{A: "x", B: "x"}, ins{B: "b"}},
			want:  []Edit[string]{del{A: "a"}, eq{A: "x", B: "x"}, ins{B: "b"}},
		},
		{
			name:  "two pairs",
			edits: []Edit[string]{del{A: "a"}, ins{B: "b"}, eq{A: "x", B: "x"}, del{A: "c"}, ins{B: "d"}},
			want:  []Edit[string]{mod{Old: "a", New: "b"}, eq{A: "x", B: "x"}, mod{Old: "c", New: "d"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CollapseToModify(tc.edits))
		})
	}
}
