package diff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/codalotl/textdiffy/internal/q/uni"
)

// Tokenize splits text into units at granularity g. Concatenating the units reproduces text, except for GranularityLine, where "\r\n" and "\r" are normalized to "\n" and
// the separators are dropped.
//
// An empty text always yields [""], never an empty slice. For lines this follows from splitting on the separator: "a\n" yields ["a", ""].
//
// Word units are maximal runs of word characters (letters, numbers, '_'), maximal runs of whitespace, or single other characters. Char units are code points. Grapheme units are
// extended grapheme clusters (code points, if text is not valid UTF-8). An invalid granularity tokenizes as GranularityLine.
func Tokenize(text string, g Granularity) []string {
	if text == "" {
		return []string{""}
	}
	switch g {
	case GranularityWord:
		return tokenizeWords(text)
	case GranularityChar:
		return tokenizeChars(text)
	case GranularityGrapheme:
		if !utf8.ValidString(text) {
			return tokenizeChars(text)
		}
		return uni.Graphemes(text)
	default:
		return splitLines(text)
	}
}

// splitLines normalizes CRLF and CR to LF and splits on LF, keeping empty lines.
func splitLines(text string) []string {
	if strings.IndexByte(text, '\r') >= 0 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return strings.Split(text, "\n")
}

func tokenizeChars(text string) []string {
	out := make([]string, 0, len(text))
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		out = append(out, text[i:i+size])
		i += size
	}
	return out
}

type charClass int

const (
	classOther charClass = iota
	classWord
	classSpace
)

// tokenizeWords classifies with Unicode tables when text is valid UTF-8. Otherwise code points are not well-defined and it falls back to classifying bytes as ASCII; non-ASCII
// bytes then become single-byte "other" tokens. Either way the whole string is tokenized.
func tokenizeWords(text string) []string {
	next := nextUnicode
	if !utf8.ValidString(text) {
		next = nextASCII
	}

	var out []string
	start := 0
	prev := classOther
	for i := 0; i < len(text); {
		class, size := next(text[i:])
		if i > start && (class != prev || class == classOther) {
			out = append(out, text[start:i])
			start = i
		}
		prev = class
		i += size
	}
	out = append(out, text[start:])
	return out
}

func nextUnicode(s string) (charClass, int) {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
		return classWord, size
	case isSpace(r):
		return classSpace, size
	default:
		return classOther, size
	}
}

func nextASCII(s string) (charClass, int) {
	c := s[0]
	switch {
	case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
		return classWord, 1
	case c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r':
		return classSpace, 1
	default:
		return classOther, 1
	}
}
