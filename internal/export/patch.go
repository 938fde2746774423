package export

import (
	"errors"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrPatchFailed is returned by Apply when some hunks of a patch could not be placed.
var ErrPatchFailed = errors.New("patch did not apply cleanly")

// Patch returns a diff-match-patch patch (the %-encoded "@@ -l,s +l,s @@" text format) that turns oldText into newText. Identical texts give "".
func Patch(oldText, newText string) string {
	dmp := diffmatchpatch.New()

	// Line mode: hunks read like a line diff.
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupMerge(diffs)

	return dmp.PatchToText(dmp.PatchMake(oldText, diffs))
}

// Apply applies patchText (as produced by Patch) to text. Hunks are located fuzzily, so text may have drifted from the original old text. If any hunk cannot be placed, Apply
// returns the partially patched text and an error wrapping ErrPatchFailed that says how many hunks failed.
func Apply(text, patchText string) (string, error) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return "", fmt.Errorf("parse patch: %w", err)
	}

	out, applied := dmp.PatchApply(patches, text)
	failed := 0
	for _, ok := range applied {
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		return out, fmt.Errorf("%w: %d of %d hunks failed", ErrPatchFailed, failed, len(applied))
	}
	return out, nil
}
