// Package diag collects generation-time diagnostics. Diagnostics are values:
// the pipeline records them and keeps going so that every problem in a type
// surfaces in a single pass.
package diag

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"strings"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// KindStructuralShape reports a type that is not a flat named-field record.
	// It is fatal for the whole type.
	KindStructuralShape Kind = "structural_shape"
	// KindUnrecognizedDirective reports a directive key other than "each".
	KindUnrecognizedDirective Kind = "unrecognized_directive"
	// KindMalformedDirective reports an "each" directive with invalid syntax.
	KindMalformedDirective Kind = "malformed_directive"
	// KindUnsupportedFieldShape reports an "each" directive on a non-slice field.
	KindUnsupportedFieldShape Kind = "unsupported_field_shape"
	// KindAccessorCollision reports two accessors resolving to the same method name.
	KindAccessorCollision Kind = "accessor_collision"
)

// Fatal reports whether the kind aborts generation of the enclosing type.
func (k Kind) Fatal() bool {
	return k == KindStructuralShape
}

// Diagnostic is a single generation-time report anchored to a field (or to the
// type itself when Field is empty).
type Diagnostic struct {
	Type    string         `json:"type"`
	Field   string         `json:"field,omitempty"`
	Pos     token.Position `json:"pos"`
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
}

// String renders the diagnostic the way go vet does: position first.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("buildergen: ")
	b.WriteString(string(d.Kind))
	b.WriteString(": ")
	if d.Field != "" {
		fmt.Fprintf(&b, "field %s.%s: ", d.Type, d.Field)
	} else if d.Type != "" {
		fmt.Fprintf(&b, "type %s: ", d.Type)
	}
	b.WriteString(d.Message)
	return b.String()
}

// List is an ordered collection of diagnostics that implements error.
type List []Diagnostic

// Error summarises the first few diagnostics.
func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(l), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := l[i]
		if it.Field != "" {
			fmt.Fprintf(b, "%s at %s.%s", it.Kind, it.Type, it.Field)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Kind, it.Type)
		}
	}
	if len(l) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(l))
	}
	return b.String()
}

// Err returns the list as an error, or nil when empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// HasFatal reports whether any diagnostic aborts generation of its type.
func (l List) HasFatal() bool {
	for _, d := range l {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}

// ForField returns the diagnostics anchored to the named field.
func (l List) ForField(name string) List {
	var out List
	for _, d := range l {
		if d.Field == name {
			out = append(out, d)
		}
	}
	return out
}

// Kinds lists the kinds in report order.
func (l List) Kinds() []Kind {
	out := make([]Kind, 0, len(l))
	for _, d := range l {
		out = append(out, d.Kind)
	}
	return out
}

// AsList extracts a List from an error chain.
func AsList(err error) (List, bool) {
	if err == nil {
		return nil, false
	}
	var l List
	if errors.As(err, &l) {
		return l, true
	}
	return nil, false
}

// Format writes one diagnostic per line.
func Format(w io.Writer, l List) error {
	for _, d := range l {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}
