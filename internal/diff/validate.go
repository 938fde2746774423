package diff

import (
	"fmt"
	"strings"
)

// validate checks the Build invariants for entries computed from linesA/linesB and returns an error on the first violation:
//   - same, remove and modify(old) lines reconstruct linesA in order
//   - same, add and modify(new) lines reconstruct linesB in order, where a same entry matches its B line by normalized key
//   - modify parts reconstruct Old (same+remove) and New (same+add)
func validate(linesA, linesB []string, entries []Entry, norm *normalizer) error {
	ia, ib := 0, 0
	takeA := func(ei int, line string) error {
		if ia >= len(linesA) {
			return fmt.Errorf("entry[%d]: consumes more lines than the old text has", ei)
		}
		if linesA[ia] != line {
			return fmt.Errorf("entry[%d]: old line %d mismatch", ei, ia)
		}
		ia++
		return nil
	}
	takeB := func(ei int, line string, byKey bool) error {
		if ib >= len(linesB) {
			return fmt.Errorf("entry[%d]: consumes more lines than the new text has", ei)
		}
		if byKey {
			if norm.normalize(linesB[ib]) != norm.normalize(line) {
				return fmt.Errorf("entry[%d]: new line %d does not compare equal", ei, ib)
			}
		} else if linesB[ib] != line {
			return fmt.Errorf("entry[%d]: new line %d mismatch", ei, ib)
		}
		ib++
		return nil
	}

	for ei, e := range entries {
		var err error
		switch e.Kind {
		case KindSame:
			if e.Parts != nil {
				return fmt.Errorf("entry[%d]: same requires Parts==nil", ei)
			}
			if err = takeA(ei, e.Line); err == nil {
				err = takeB(ei, e.Line, true)
			}
		case KindAdd:
			err = takeB(ei, e.Line, false)
		case KindRemove:
			err = takeA(ei, e.Line)
		case KindModify:
			if err = takeA(ei, e.Old); err == nil {
				err = takeB(ei, e.New, false)
			}
			if err == nil && e.Parts != nil {
				err = validateParts(ei, e)
			}
		default:
			err = fmt.Errorf("entry[%d]: unknown kind %d", ei, e.Kind)
		}
		if err != nil {
			return err
		}
	}

	if ia != len(linesA) {
		return fmt.Errorf("diff: entries do not reconstruct the old text (%d of %d lines)", ia, len(linesA))
	}
	if ib != len(linesB) {
		return fmt.Errorf("diff: entries do not reconstruct the new text (%d of %d lines)", ib, len(linesB))
	}
	return nil
}

func validateParts(ei int, e Entry) error {
	var oldBuf, newBuf strings.Builder
	for pi, p := range e.Parts {
		switch p.Kind {
		case PartSame:
			oldBuf.WriteString(p.Text)
			newBuf.WriteString(p.Text)
		case PartRemove:
			oldBuf.WriteString(p.Text)
		case PartAdd:
			newBuf.WriteString(p.Text)
		default:
			return fmt.Errorf("entry[%d].part[%d]: unknown kind %d", ei, pi, p.Kind)
		}
	}
	if oldBuf.String() != e.Old {
		return fmt.Errorf("entry[%d]: parts do not reconstruct Old", ei)
	}
	if newBuf.String() != e.New {
		return fmt.Errorf("entry[%d]: parts do not reconstruct New", ei)
	}
	return nil
}
