package diff

import (
	"context"
	"fmt"
	"runtime"
)

// yieldEvery is how many walk steps BuildContext takes between yields to the scheduler.
const yieldEvery = 2000

// Build computes the structured diff from textA (old) to textB (new) under opts. It never fails; see BuildContext for the cancellable form.
//
// Example: Build("a\nb\nc", "a\nx\nc", DefaultOptions()) yields same "a", modify "b" -> "x", same "c".
func Build(textA, textB string, opts Options) []Entry {
	entries, _ := BuildContext(context.Background(), textA, textB, opts)
	return entries
}

// BuildContext is Build that periodically yields the processor while emitting entries and stops early with ctx.Err() if ctx is done. With a context that is never done, the
// error is always nil.
//
// Lines are aligned by their Normalize keys. Entries carry original text: a same entry shows the line from textA. For modified lines at a granularity finer than line, the original
// old and new lines are tokenized and diffed again (with plain equality) to produce Parts.
func BuildContext(ctx context.Context, textA, textB string, opts Options) ([]Entry, error) {
	linesA := splitLines(textA)
	linesB := splitLines(textB)

	norm := newNormalizer(opts)
	normA := norm.normalizeAll(linesA)
	normB := norm.normalizeAll(linesB)

	edits := CollapseToModify(Patience(normA, normB, nil))

	entries := make([]Entry, 0, len(edits))
	ia, ib := 0, 0
	for step, e := range edits {
		switch e.(type) {
		case Equal[string]:
			entries = append(entries, Entry{Kind: KindSame, Line: linesA[ia]})
			ia++
			ib++
		case Insert[string]:
			entries = append(entries, Entry{Kind: KindAdd, Line: linesB[ib]})
			ib++
		case Delete[string]:
			entries = append(entries, Entry{Kind: KindRemove, Line: linesA[ia]})
			ia++
		case Modify[string]:
			oldLine, newLine := linesA[ia], linesB[ib]
			entries = append(entries, Entry{
				Kind:  KindModify,
				Old:   oldLine,
				New:   newLine,
				Parts: granularParts(oldLine, newLine, opts.Granularity),
			})
			ia++
			ib++
		}

		if (step+1)%yieldEvery == 0 {
			runtime.Gosched()
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	if err := validate(linesA, linesB, entries, norm); err != nil {
		panic(fmt.Errorf("Build: validate failed with %v", err))
	}
	return entries, nil
}

// granularParts diffs oldLine against newLine at g. It returns nil for GranularityLine (and for invalid granularities, which are treated as line). The single "" unit that
// Tokenize returns for an empty line produces no part.
func granularParts(oldLine, newLine string, g Granularity) []Part {
	if g == GranularityLine || !g.Valid() {
		return nil
	}
	edits := Patience(Tokenize(oldLine, g), Tokenize(newLine, g), nil)
	parts := make([]Part, 0, len(edits))
	for _, e := range edits {
		switch e := e.(type) {
		case Equal[string]:
			if e.A == "" {
				continue
			}
			parts = append(parts, Part{Kind: PartSame, Text: e.A})
		case Insert[string]:
			if e.B == "" {
				continue
			}
			parts = append(parts, Part{Kind: PartAdd, Text: e.B})
		case Delete[string]:
			if e.A == "" {
				continue
			}
			parts = append(parts, Part{Kind: PartRemove, Text: e.A})
		}
	}
	return parts
}
