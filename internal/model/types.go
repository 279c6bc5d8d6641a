package model

import (
	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// SlotKind classifies how a field is stored and mutated on the builder.
type SlotKind string

const (
	// SlotRequired fields must be set before Build succeeds.
	SlotRequired SlotKind = "required"
	// SlotOptional fields are declared as *T and may stay unset.
	SlotOptional SlotKind = "optional"
	// SlotRepeated fields are []T grown one item at a time.
	SlotRepeated SlotKind = "repeated"
)

// Slot is the classification of a single field. Inner is T for every kind:
// the declared type for required fields, the pointee for optional fields and
// the item type for repeated fields.
type Slot struct {
	Kind     SlotKind        `json:"kind"`
	Inner    schema.TypeExpr `json:"inner"`
	Accessor string          `json:"accessor,omitempty"`
}

// ClassifiedField pairs a descriptor with its slot and the names used on the
// builder. Dropped fields keep their slot but get no storage or accessor.
type ClassifiedField struct {
	Descriptor  schema.FieldDescriptor `json:"descriptor"`
	Slot        Slot                   `json:"slot"`
	Method      string                 `json:"method,omitempty"`
	Storage     string                 `json:"storage,omitempty"`
	StorageType string                 `json:"storageType,omitempty"`
	Default     string                 `json:"default"`
	Dropped     bool                   `json:"dropped,omitempty"`
}

// Name returns the record field name.
func (f ClassifiedField) Name() string {
	return f.Descriptor.Name
}

// AccessorKind distinguishes setters from appenders.
type AccessorKind string

const (
	AccessorSet    AccessorKind = "set"
	AccessorAppend AccessorKind = "append"
)

// Accessor is one fluent builder method.
type Accessor struct {
	Method    string       `json:"method"`
	Kind      AccessorKind `json:"kind"`
	Field     string       `json:"field"`
	Storage   string       `json:"storage"`
	Param     string       `json:"param"`
	ParamType string       `json:"paramType"`
	Doc       string       `json:"doc,omitempty"`
}

// StorageField is one field of the generated builder struct.
type StorageField struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

// BuildStep is one field assignment performed by Build, in declaration order.
type BuildStep struct {
	Field    string   `json:"field"`
	Storage  string   `json:"storage"`
	Kind     SlotKind `json:"kind"`
	ItemType string   `json:"itemType,omitempty"`
}

// DeclField is a struct field emitted for types with no Go declaration yet.
type DeclField struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
	Doc  string `json:"doc,omitempty"`
}

// BuilderModel is everything a renderer needs to emit a builder for one type.
type BuilderModel struct {
	TypeName    string            `json:"typeName"`
	BuilderName string            `json:"builderName"`
	Constructor string            `json:"constructor"`
	BuildMethod string            `json:"buildMethod"`
	Package     string            `json:"package"`
	Origin      schema.Origin     `json:"origin"`
	Doc         string            `json:"doc,omitempty"`
	Imports     []schema.Import   `json:"imports,omitempty"`
	Fields      []ClassifiedField `json:"fields"`
	Storage     []StorageField    `json:"storage"`
	Accessors   []Accessor        `json:"accessors"`
	Steps       []BuildStep       `json:"steps"`
	Declaration []DeclField       `json:"declaration,omitempty"`
	Diagnostics diag.List         `json:"diagnostics,omitempty"`
}

// Field returns the classified field with the given record name.
func (m BuilderModel) Field(name string) (ClassifiedField, bool) {
	for _, f := range m.Fields {
		if f.Name() == name {
			return f, true
		}
	}
	return ClassifiedField{}, false
}

// Accessor returns the accessor with the given method name.
func (m BuilderModel) Accessor(method string) (Accessor, bool) {
	for _, a := range m.Accessors {
		if a.Method == method {
			return a, true
		}
	}
	return Accessor{}, false
}

// EmitDeclaration reports whether renderers must emit the record struct too.
func (m BuilderModel) EmitDeclaration() bool {
	return m.Origin == schema.OriginOpenAPI && len(m.Declaration) > 0
}
