// Package diff computes and renders structured, human-reviewable diffs between an "old" and a "new" text.
//
// Engine: Patience aligns two sequences of comparable units into an edit script of Equal, Insert and Delete edits, anchoring on units that occur exactly once on both sides and
// recursing into the gaps between anchors. CollapseToModify then pairs each Delete immediately followed by an Insert into a Modify. Both are generic and are used for lines and for
// tokens alike.
//
// Structured diffs: Build splits both texts into lines, compares them by their Normalize key (optionally ignoring whitespace runs and case), and emits one Entry per line:
//   - KindSame: unchanged line (shown as in the old text)
//   - KindAdd: line only in the new text
//   - KindRemove: line only in the old text
//   - KindModify: a changed line; at word, char or grapheme granularity, Parts breaks it into same/add/remove spans (see Tokenize)
//
// Invariants of Build:
//   - same, remove and modify entries reconstruct the old text's lines in order; same, add and modify entries reconstruct the new text's lines (a same entry compares equal under the Options)
//   - concat(Parts that are same or remove) == Old and concat(Parts that are same or add) == New
//
// Getting a diff:
//
//	entries := diff.Build(oldText, newText, diff.Options{WhitespaceSensitive: true, CaseSensitive: true, Granularity: diff.GranularityWord})
//	fmt.Println(diff.RenderPlain(entries))
//
// Rendering:
//   - RenderPlain emits a plain transcript with "  ", "+ ", "- " and "~ " line markers and {+added+}/{-removed-} part markup.
//   - RenderPretty emits a colorized view with " ", "+", "−" and "~" markers and highlighted parts.
//   - RenderUnified emits a unified diff with @@ hunk headers.
//   - RenderSideBySide emits two width-aware columns.
//
// Newlines: "\r\n" and "\r" are treated as "\n". A trailing newline produces a final empty line, so "a\n" and "a" differ by one added or removed empty line.
package diff
