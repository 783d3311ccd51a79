package strings

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// NormalizeLowerTrimSpace trims surrounding whitespace and lowercases the input.
func NormalizeLowerTrimSpace(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeNewlines replaces CRLF and CR with LF.
func NormalizeNewlines(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}

// SplitFirstWord splits value at its first run of whitespace.
// Leading whitespace is ignored and the remainder is returned trimmed.
func SplitFirstWord(value string) (string, string) {
	value = strings.TrimLeftFunc(value, unicode.IsSpace)
	idx := strings.IndexFunc(value, unicode.IsSpace)
	if idx < 0 {
		return value, ""
	}
	return value[:idx], strings.TrimSpace(value[idx:])
}

// CutMarker splits value around the first occurrence of marker, matched
// case-insensitively. Both halves are trimmed.
//
// The match is found on value's own bytes, so the cut offsets stay valid even
// when lowercasing would change the byte length of surrounding runes.
func CutMarker(value, marker string) (string, string, bool) {
	idx := indexFold(value, marker)
	if idx < 0 {
		return strings.TrimSpace(value), "", false
	}
	return strings.TrimSpace(value[:idx]), strings.TrimSpace(value[idx+len(marker):]), true
}

// indexFold returns the byte offset of the first case-insensitive match of
// marker in value, or -1. Only windows that start and end on rune boundaries
// are compared.
func indexFold(value, marker string) int {
	if marker == "" {
		return 0
	}
	for i := 0; i+len(marker) <= len(value); i++ {
		if !utf8.RuneStart(value[i]) {
			continue
		}
		end := i + len(marker)
		if end < len(value) && !utf8.RuneStart(value[end]) {
			continue
		}
		if strings.EqualFold(value[i:end], marker) {
			return i
		}
	}
	return -1
}
