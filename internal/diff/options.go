package diff

import (
	"fmt"
	"strings"
)

// Granularity is the unit size at which modified lines are compared.
type Granularity int

// Granularities. GranularityLine produces no intra-line parts.
const (
	GranularityLine Granularity = iota
	GranularityWord
	GranularityChar
	GranularityGrapheme
)

var granularityNames = []string{"line", "word", "char", "grapheme"}

func (g Granularity) String() string {
	if g < 0 || int(g) >= len(granularityNames) {
		return fmt.Sprintf("granularity(%d)", int(g))
	}
	return granularityNames[g]
}

// Valid reports whether g is one of the declared granularities.
func (g Granularity) Valid() bool {
	return g >= 0 && int(g) < len(granularityNames)
}

// Granularities returns the names of all granularities, in declaration order.
func Granularities() []string {
	out := make([]string, len(granularityNames))
	copy(out, granularityNames)
	return out
}

// ParseGranularity parses a granularity name (case-insensitive, surrounding space ignored).
func ParseGranularity(s string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range granularityNames {
		if n == name {
			return Granularity(i), nil
		}
	}
	return GranularityLine, fmt.Errorf("unknown granularity %q (want one of %s)", s, strings.Join(granularityNames, ", "))
}

// Options controls how two texts are compared. It is passed by value: a build works on its own snapshot.
type Options struct {
	WhitespaceSensitive bool        // if false, runs of whitespace compare equal to a single space, and leading/trailing whitespace is ignored.
	CaseSensitive       bool        // if false, lines are compared after Unicode lowercasing.
	Granularity         Granularity // granularity of the parts of modified lines.
}

// DefaultOptions returns whitespace- and case-sensitive options at line granularity.
func DefaultOptions() Options {
	return Options{
		WhitespaceSensitive: true,
		CaseSensitive:       true,
		Granularity:         GranularityLine,
	}
}

// Validate returns an error if o cannot be honored exactly. Build itself treats an invalid granularity as GranularityLine; callers that accept options from users should Validate first.
func (o Options) Validate() error {
	if !o.Granularity.Valid() {
		return fmt.Errorf("invalid options: %v", o.Granularity)
	}
	return nil
}
