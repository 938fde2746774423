// Package export turns a structured diff into files: a plain transcript, indented JSON, an HTML report, or a diff-match-patch patch that Apply can replay onto the old text.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codalotl/textdiffy/internal/diff"
)

// Format is an export format.
type Format string

const (
	FormatPlain Format = "plain" // diff.RenderPlain transcript
	FormatJSON  Format = "json"  // {"old","new","stats","entries"}
	FormatHTML  Format = "html"  // standalone HTML report
	FormatPatch Format = "patch" // diff-match-patch patch text
)

var formats = []Format{FormatPlain, FormatJSON, FormatHTML, FormatPatch}

// Formats returns the names of all formats.
func Formats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want one of %s)", s, strings.Join(Formats(), ", "))
}

// FormatForPath guesses a format from a file extension: .json, .html/.htm, .patch/.diff; anything else is plain.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".html", ".htm":
		return FormatHTML
	case ".patch", ".diff":
		return FormatPatch
	default:
		return FormatPlain
	}
}

// Input is what gets exported. Old and New are the full texts; Entries is diff.Build(Old, New, ...). The names label the two sides and may be "".
type Input struct {
	OldName string
	NewName string
	Old     string
	New     string
	Entries []diff.Entry
}

// Render returns in encoded as f. Plain, JSON and HTML output ends with a newline.
func Render(f Format, in Input) ([]byte, error) {
	switch f {
	case FormatPlain:
		return Plain(in.Entries), nil
	case FormatJSON:
		return JSON(in, false)
	case FormatHTML:
		return HTML(in)
	case FormatPatch:
		return []byte(Patch(in.Old, in.New)), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", string(f))
	}
}

// Plain returns diff.RenderPlain(entries) followed by a newline.
func Plain(entries []diff.Entry) []byte {
	return []byte(diff.RenderPlain(entries) + "\n")
}

// WriteFile renders in as f and writes it to path, creating or truncating the file. It returns the number of bytes written.
func WriteFile(path string, f Format, in Input) (int, error) {
	if path == "" {
		return 0, errors.New("export: empty path")
	}
	data, err := Render(f, in)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	return len(data), nil
}
