package model

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s.]+`)

// commonInitialisms are kept upper-case when converting wire names to Go.
var commonInitialisms = map[string]struct{}{
	"API": {}, "HTML": {}, "HTTP": {}, "HTTPS": {}, "ID": {}, "IP": {},
	"JSON": {}, "SQL": {}, "TLS": {}, "TTL": {}, "UI": {}, "URI": {},
	"URL": {}, "UUID": {}, "XML": {},
}

// ExportedName upper-cases the first rune of an identifier.
func ExportedName(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// StorageName returns the unexported builder field name for a record field.
// Leading initialisms are lowered as a block (URL -> url, HTTPClient ->
// httpClient) and Go keywords get a trailing underscore.
func StorageName(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
	case upper == 1 || upper == len(runes):
		for i := 0; i < upper; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		// Keep the last capital when it starts the next word: HTTPClient.
		end := upper
		if unicode.IsLower(runes[upper]) {
			end = upper - 1
		}
		for i := 0; i < end; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	out := string(runes)
	if token.IsKeyword(out) {
		out += "_"
	}
	return out
}

// GoFieldName converts a wire name such as "user_id" or "created-at" into an
// exported Go identifier ("UserID", "CreatedAt").
func GoFieldName(wire string) string {
	words := splitWordsPattern.Split(strings.TrimSpace(wire), -1)
	var b strings.Builder
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range splitCamel(word) {
			upper := strings.ToUpper(part)
			if _, ok := commonInitialisms[upper]; ok {
				b.WriteString(upper)
				continue
			}
			b.WriteString(ExportedName(part))
		}
	}
	out := b.String()
	if out == "" {
		return ""
	}
	if r, _ := utf8.DecodeRuneInString(out); !unicode.IsLetter(r) {
		out = "X" + out
	}
	return out
}

func splitCamel(input string) []string {
	var (
		parts []string
		start int
	)
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			parts = append(parts, input[start:i])
			start = i
		}
	}
	return append(parts, input[start:])
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
