// Package config loads textdiffy's settings from layered sources with predictable precedence.
//
// Sources, from lowest to highest priority:
//   - built-in defaults
//   - the user file: the first of ~/.textdiffy/config.yaml, config.yml, config.toml, config.json
//   - the project file: the nearest .textdiffy.yaml, .textdiffy.yml, .textdiffy.toml or .textdiffy.json, searched upward from the working directory
//   - environment variables (TEXTDIFFY_GRANULARITY, TEXTDIFFY_IGNORE_WHITESPACE, TEXTDIFFY_IGNORE_CASE, TEXTDIFFY_COLOR, TEXTDIFFY_CONTEXT, TEXTDIFFY_FORMAT)
//   - command-line flags, applied by the caller with Config.Set
//
// Missing, unreadable and empty files are skipped, and unknown keys are ignored. A file that cannot be parsed, or a value that cannot be coerced or is out of range, is an error wrapping
// ErrInvalid and naming its source. Every field records the Provenance of the value it ended up with.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/codalotl/textdiffy/internal/diff"
)

// ErrInvalid is wrapped by every error caused by a bad configuration value or file.
var ErrInvalid = errors.New("invalid configuration")

// Keys, as used in files and by Set.
const (
	KeyGranularity      = "granularity"
	KeyIgnoreWhitespace = "ignore_whitespace"
	KeyIgnoreCase       = "ignore_case"
	KeyColor            = "color"
	KeyContext          = "context"
	KeyFormat           = "format"
	KeyExportFile       = "export_file"
	KeyWatch            = "watch"
)

// Keys lists every configuration key in display order.
var Keys = []string{KeyGranularity, KeyIgnoreWhitespace, KeyIgnoreCase, KeyColor, KeyContext, KeyFormat, KeyExportFile, KeyWatch}

// Color selects when output is colorized.
type Color string

const (
	ColorAuto   Color = "auto" // colorize when stdout is a terminal
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// Format selects how the diff command prints entries.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatPlain   Format = "plain"
	FormatUnified Format = "unified"
	FormatSide    Format = "side"
	FormatJSON    Format = "json"
)

var (
	colors  = []Color{ColorAuto, ColorAlways, ColorNever}
	formats = []Format{FormatPretty, FormatPlain, FormatUnified, FormatSide, FormatJSON}
)

// Provenance says where a value came from.
type Provenance struct {
	SourceType       string // ex: "default", "file", "env", "flag"
	SourceIdentifier string // ex: "/home/me/.textdiffy/config.yaml" or "TEXTDIFFY_COLOR". Can be "" (defaults, flags).
}

func (p Provenance) String() string {
	if p.SourceIdentifier == "" {
		return p.SourceType
	}
	return p.SourceType + " " + p.SourceIdentifier
}

// Config is the effective configuration.
type Config struct {
	Granularity      diff.Granularity
	IgnoreWhitespace bool
	IgnoreCase       bool
	Color            Color
	Context          int    // lines of context in unified output; never negative
	Format           Format // output of the root command
	ExportFile       string // default output file of the export command
	Watch            bool   // whether the viewer reloads files when they change

	provenance map[string]Provenance
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{
		Granularity: diff.GranularityLine,
		Color:       ColorAuto,
		Context:     3,
		Format:      FormatPretty,
		ExportFile:  "textdiffy-diff.txt",
		provenance:  map[string]Provenance{},
	}
	for _, k := range Keys {
		c.provenance[k] = Provenance{SourceType: "default"}
	}
	return c
}

// Options returns the diff options described by c.
func (c *Config) Options() diff.Options {
	return diff.Options{
		WhitespaceSensitive: !c.IgnoreWhitespace,
		CaseSensitive:       !c.IgnoreCase,
		Granularity:         c.Granularity,
	}
}

// ProvenanceOf returns where the value of key came from. Unknown keys have a zero Provenance.
func (c *Config) ProvenanceOf(key string) Provenance {
	return c.provenance[key]
}

// Value returns the value of key formatted as it would be written in a file, and false for unknown keys.
func (c *Config) Value(key string) (string, bool) {
	switch key {
	case KeyGranularity:
		return c.Granularity.String(), true
	case KeyIgnoreWhitespace:
		return strconv.FormatBool(c.IgnoreWhitespace), true
	case KeyIgnoreCase:
		return strconv.FormatBool(c.IgnoreCase), true
	case KeyColor:
		return string(c.Color), true
	case KeyContext:
		return strconv.Itoa(c.Context), true
	case KeyFormat:
		return string(c.Format), true
	case KeyExportFile:
		return c.ExportFile, true
	case KeyWatch:
		return strconv.FormatBool(c.Watch), true
	}
	return "", false
}

// Set assigns raw to key, coercing it to the field's type (ex: "true" for a bool, "5" or 5.0 for an int), validates the result, and records prov. Unknown keys are ignored. On error,
// c is unchanged and the error wraps ErrInvalid.
func (c *Config) Set(key string, raw any, prov Provenance) error {
	key = strings.ToLower(strings.TrimSpace(key))

	var err error
	switch key {
	case KeyGranularity:
		var s string
		if s, err = coerceString(raw); err == nil {
			var g diff.Granularity
			if g, err = diff.ParseGranularity(s); err == nil {
				c.Granularity = g
			}
		}
	case KeyIgnoreWhitespace:
		var b bool
		if b, err = coerceBool(raw); err == nil {
			c.IgnoreWhitespace = b
		}
	case KeyIgnoreCase:
		var b bool
		if b, err = coerceBool(raw); err == nil {
			c.IgnoreCase = b
		}
	case KeyColor:
		var s string
		if s, err = coerceString(raw); err == nil {
			var col Color
			if col, err = parseOneOf(s, colors); err == nil {
				c.Color = col
			}
		}
	case KeyContext:
		var n int
		if n, err = coerceInt(raw); err == nil {
			if n < 0 {
				err = fmt.Errorf("must not be negative, got %d", n)
			} else {
				c.Context = n
			}
		}
	case KeyFormat:
		var s string
		if s, err = coerceString(raw); err == nil {
			var f Format
			if f, err = parseOneOf(s, formats); err == nil {
				c.Format = f
			}
		}
	case KeyExportFile:
		var s string
		if s, err = coerceString(raw); err == nil {
			if strings.TrimSpace(s) == "" {
				err = errors.New("must not be empty")
			} else {
				c.ExportFile = s
			}
		}
	case KeyWatch:
		var b bool
		if b, err = coerceBool(raw); err == nil {
			c.Watch = b
		}
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	if c.provenance == nil {
		c.provenance = map[string]Provenance{}
	}
	c.provenance[key] = prov
	return nil
}

func parseOneOf[T ~string](s string, allowed []T) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	names := make([]string, len(allowed))
	for i, a := range allowed {
		if string(a) == s {
			return a, nil
		}
		names[i] = string(a)
	}
	return "", fmt.Errorf("unknown value %q (want one of %s)", s, strings.Join(names, ", "))
}

func coerceString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("cannot use %T as a string", raw)
	}
}

func coerceBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("cannot parse %q as a bool", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot use %T as a bool", raw)
	}
}

func coerceInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, fmt.Errorf("%d is out of range", v)
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%d is out of range", v)
		}
		return int(v), nil
	case float64:
		if v >= math.MaxInt || v < math.MinInt {
			return 0, fmt.Errorf("%v is out of range", v)
		}
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as an integer", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot use %T as an integer", raw)
	}
}
