package diff

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the key used to compare line under opts. It is only used to decide equality; Build never shows it.
//
// If !opts.WhitespaceSensitive, every run of whitespace (as defined by isSpace) becomes one space and the result is trimmed. If !opts.CaseSensitive, the result is then lowercased with full
// Unicode case mapping. Normalize is idempotent.
func Normalize(line string, opts Options) string {
	return newNormalizer(opts).normalize(line)
}

// normalizer holds the per-build case mapper. cases.Caser is stateful, so each build gets its own.
type normalizer struct {
	foldSpace bool
	lower     cases.Caser
	foldCase  bool
}

func newNormalizer(opts Options) *normalizer {
	n := &normalizer{
		foldSpace: !opts.WhitespaceSensitive,
		foldCase:  !opts.CaseSensitive,
	}
	if n.foldCase {
		n.lower = cases.Lower(language.Und)
	}
	return n
}

func (n *normalizer) normalize(line string) string {
	out := line
	if n.foldSpace {
		out = strings.Join(strings.FieldsFunc(out, isSpace), " ")
	}
	if n.foldCase {
		out = n.lower.String(out)
	}
	return out
}

func (n *normalizer) normalizeAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = n.normalize(l)
	}
	return out
}

// isSpace reports whether r is whitespace for folding and word tokenizing: the Unicode White_Space property plus U+FEFF (zero width no-break space), minus U+0085 (next line).
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.Is(unicode.White_Space, r)
}
