package diag

import (
	"fmt"
	"go/token"
)

// Reporter accumulates diagnostics for one generation pass. It is not safe for
// concurrent use; each pass owns its own Reporter.
type Reporter struct {
	typeName string
	list     List
}

// NewReporter creates a Reporter scoped to the named type.
func NewReporter(typeName string) *Reporter {
	return &Reporter{typeName: typeName}
}

// Add records the supplied diagnostics, filling in the type name when missing.
func (r *Reporter) Add(ds ...Diagnostic) {
	for _, d := range ds {
		if d.Type == "" {
			d.Type = r.typeName
		}
		r.list = append(r.list, d)
	}
}

// Reportf records a diagnostic built from a format string.
func (r *Reporter) Reportf(kind Kind, field string, pos token.Position, format string, args ...any) {
	r.Add(Diagnostic{
		Type:    r.typeName,
		Field:   field,
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns a copy of everything recorded so far.
func (r *Reporter) Diagnostics() List {
	if len(r.list) == 0 {
		return nil
	}
	return append(List(nil), r.list...)
}

// StructuralShape builds the fatal diagnostic for a type that is not a flat
// named-field record.
func StructuralShape(typeName string, pos token.Position, reason string) Diagnostic {
	return Diagnostic{Type: typeName, Pos: pos, Kind: KindStructuralShape, Message: reason}
}

// UnrecognizedDirective builds the diagnostic for an unknown directive key.
func UnrecognizedDirective(field string, pos token.Position, key string) Diagnostic {
	return Diagnostic{
		Field:   field,
		Pos:     pos,
		Kind:    KindUnrecognizedDirective,
		Message: fmt.Sprintf("unrecognized directive %q, expected `builder:\"each=<name>\"`", key),
	}
}

// MalformedDirective builds the diagnostic for an "each" directive that could
// not be parsed.
func MalformedDirective(field string, pos token.Position, reason string) Diagnostic {
	return Diagnostic{
		Field:   field,
		Pos:     pos,
		Kind:    KindMalformedDirective,
		Message: "malformed each directive: " + reason,
	}
}

// UnsupportedFieldShape builds the diagnostic for a directive applied to a
// field whose type cannot honour it.
func UnsupportedFieldShape(field string, pos token.Position, reason string) Diagnostic {
	return Diagnostic{Field: field, Pos: pos, Kind: KindUnsupportedFieldShape, Message: reason}
}

// AccessorCollision builds the diagnostic for an accessor whose method name is
// already taken.
func AccessorCollision(field string, pos token.Position, method, owner string) Diagnostic {
	msg := fmt.Sprintf("accessor %s collides with the accessor generated for %s", method, owner)
	if owner == "" {
		msg = fmt.Sprintf("accessor %s collides with a reserved builder method", method)
	}
	return Diagnostic{Field: field, Pos: pos, Kind: KindAccessorCollision, Message: msg}
}
