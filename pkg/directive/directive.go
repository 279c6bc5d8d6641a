// Package directive parses per-field builder directives into a closed set.
//
// The only recognised directive is each=<name>, which marks a slice field as
// repeated and names its single-item accessor. Anything else is rejected with
// a diagnostic; parsing never aborts the surrounding pass.
package directive

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/diag"
)

// Kind names a directive variant.
type Kind string

// KindEach is the repeated-field directive.
const KindEach Kind = "each"

// Directive is a recognised, structured instruction.
type Directive struct {
	Kind     Kind   `json:"kind"`
	Accessor string `json:"accessor"`
}

// Each returns an each directive for the given accessor name.
func Each(accessor string) *Directive {
	return &Directive{Kind: KindEach, Accessor: accessor}
}

// Result is the outcome of parsing one field's tokens.
type Result struct {
	// Directive is set only when a single valid each directive was found.
	Directive *Directive
	// Malformed is true when an each key was present but unusable. Such fields
	// get no accessor.
	Malformed   bool
	Diagnostics diag.List
}

// Parse parses the raw tokens attached to field. Unknown keys are reported and
// discarded; malformed each directives are reported and mark the result.
func Parse(field string, pos token.Position, tokens []string) Result {
	var res Result
	var seenEach bool

	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		key, value, hasValue := strings.Cut(tok, "=")
		key = strings.TrimSpace(key)

		if key != string(KindEach) {
			res.Diagnostics = append(res.Diagnostics, diag.UnrecognizedDirective(field, pos, key))
			continue
		}
		if seenEach {
			res.Malformed = true
			res.Diagnostics = append(res.Diagnostics, diag.MalformedDirective(field, pos, "duplicate each directive"))
			continue
		}
		seenEach = true

		if !hasValue {
			res.Malformed = true
			res.Diagnostics = append(res.Diagnostics, diag.MalformedDirective(field, pos, "expected `each = \"<name>\"`, missing `=`"))
			continue
		}
		name, err := accessorName(value)
		if err != nil {
			res.Malformed = true
			res.Diagnostics = append(res.Diagnostics, diag.MalformedDirective(field, pos, err.Error()))
			continue
		}
		res.Directive = Each(name)
	}

	if res.Malformed {
		res.Directive = nil
	}
	return res
}

func accessorName(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("missing accessor name")
	}

	switch v[0] {
	case '"':
		unquoted, err := strconv.Unquote(v)
		if err != nil {
			return "", fmt.Errorf("invalid quoted value %s", v)
		}
		v = unquoted
	case '\'':
		if len(v) < 2 || v[len(v)-1] != '\'' {
			return "", fmt.Errorf("unterminated quoted value %s", v)
		}
		v = v[1 : len(v)-1]
	}

	if v == "_" || !token.IsIdentifier(v) {
		return "", fmt.Errorf("accessor name %q is not an identifier", v)
	}
	return v, nil
}
