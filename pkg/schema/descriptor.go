package schema

import "go/token"

// Origin records which host produced a TypeDescriptor.
type Origin string

const (
	// OriginGo marks types declared in Go source; the generated builder lives
	// next to the existing declaration.
	OriginGo Origin = "go"
	// OriginOpenAPI marks types derived from an OpenAPI component schema; no Go
	// declaration exists yet, so renderers emit the struct as well.
	OriginOpenAPI Origin = "openapi"
)

// Shape is the coarse structure of a declared field type.
type Shape string

const (
	ShapeNamed   Shape = "named"
	ShapePointer Shape = "pointer"
	ShapeSlice   Shape = "slice"
)

// TypeExpr is a declared field type: its Go spelling plus enough structure to
// recognise the optional (*T) and collection ([]T) wrappers.
type TypeExpr struct {
	Shape Shape     `json:"shape"`
	Expr  string    `json:"expr"`
	Elem  *TypeExpr `json:"elem,omitempty"`
}

// Named returns a TypeExpr that is neither a pointer nor a slice.
func Named(expr string) TypeExpr {
	return TypeExpr{Shape: ShapeNamed, Expr: expr}
}

// PointerTo wraps elem in a pointer.
func PointerTo(elem TypeExpr) TypeExpr {
	e := elem
	return TypeExpr{Shape: ShapePointer, Expr: "*" + elem.Expr, Elem: &e}
}

// SliceOf wraps elem in a slice.
func SliceOf(elem TypeExpr) TypeExpr {
	e := elem
	return TypeExpr{Shape: ShapeSlice, Expr: "[]" + elem.Expr, Elem: &e}
}

// String returns the Go spelling of the type.
func (t TypeExpr) String() string { return t.Expr }

// Inner returns the wrapped type for pointers and slices, and the type itself
// otherwise.
func (t TypeExpr) Inner() TypeExpr {
	if t.Elem == nil {
		return t
	}
	return *t.Elem
}

// Import is an import spec of the file declaring a type.
type Import struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
}

// FieldDescriptor describes one declared field. It is produced once per field
// by an Extractor and treated as immutable afterwards.
type FieldDescriptor struct {
	Name       string         `json:"name"`
	Type       TypeExpr       `json:"type"`
	Directives []string       `json:"directives,omitempty"`
	Pos        token.Position `json:"pos"`
	Doc        string         `json:"doc,omitempty"`
	// WireName is the serialised key for OpenAPI-derived fields.
	WireName string `json:"wireName,omitempty"`
	Embedded bool   `json:"embedded,omitempty"`
}

// TypeDescriptor describes a flat named-field record in declaration order.
type TypeDescriptor struct {
	Name    string            `json:"name"`
	Package string            `json:"package"`
	Origin  Origin            `json:"origin"`
	Pos     token.Position    `json:"pos"`
	Doc     string            `json:"doc,omitempty"`
	Fields  []FieldDescriptor `json:"fields"`
	Imports []Import          `json:"imports,omitempty"`
}

// Field returns the descriptor with the given name.
func (t TypeDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
