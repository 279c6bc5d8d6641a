package pongo

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
)

var defaultFilters sync.Once

func registerDefaultFilters() {
	defaultFilters.Do(func() {
		register("trim", filterTrim)
		register("lowerfirst", filterLowerFirst)
		register("upperfirst", filterUpperFirst)
		register("gocomment", filterGoComment)
	})
}

func register(name string, fn pongo2.FilterFunction) {
	if !pongo2.FilterExists(name) {
		_ = pongo2.RegisterFilter(name, fn)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(mapFirst(in.String(), unicode.ToLower)), nil
}

func filterUpperFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(mapFirst(in.String(), unicode.ToUpper)), nil
}

// filterGoComment turns text into a block of "// " line comments.
func filterGoComment(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	text := strings.TrimSpace(in.String())
	if text == "" {
		return pongo2.AsValue(""), nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			lines[i] = "//"
			continue
		}
		lines[i] = "// " + line
	}
	return pongo2.AsValue(strings.Join(lines, "\n")), nil
}

func mapFirst(s string, fn func(rune) rune) string {
	idx := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if idx < 0 {
		return s
	}
	r, size := utf8.DecodeRuneInString(s[idx:])
	return s[:idx] + string(fn(r)) + s[idx+size:]
}
