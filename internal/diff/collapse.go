package diff

// CollapseToModify returns a copy of edits where every Delete immediately followed by an Insert is replaced by a single Modify. Pairing is strictly local and 1:1: a run of
// three deletes followed by two inserts yields delete, delete, modify, insert. All other edits pass through unchanged.
func CollapseToModify[T any](edits []Edit[T]) []Edit[T] {
	out := make([]Edit[T], 0, len(edits))
	for i := 0; i < len(edits); i++ {
		if del, ok := edits[i].(Delete[T]); ok && i+1 < len(edits) {
			if ins, ok := edits[i+1].(Insert[T]); ok {
				out = append(out, Modify[T]{Old: del.A, New: ins.B})
				i++
				continue
			}
		}
		out = append(out, edits[i])
	}
	return out
}
