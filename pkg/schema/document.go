package schema

import (
	"errors"
	"go/ast"
	"go/token"
)

// Document wraps a loaded schema payload and its origin. File-like sources
// carry raw bytes; package sources carry the syntax loaded by go/packages.
type Document struct {
	source  Source
	raw     []byte
	fset    *token.FileSet
	files   []*ast.File
	pkgName string
}

// NewDocument constructs a Document from raw bytes.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// NewSyntaxDocument constructs a Document from already-parsed Go files.
func NewSyntaxDocument(src Source, fset *token.FileSet, pkgName string, files []*ast.File) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if fset == nil || len(files) == 0 {
		return Document{}, errors.New("schema: package syntax is empty")
	}
	return Document{
		source:  src,
		fset:    fset,
		files:   append([]*ast.File(nil), files...),
		pkgName: pkgName,
	}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload. Empty for syntax documents.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Syntax returns the parsed files and their FileSet when the loader already
// produced them.
func (d Document) Syntax() (*token.FileSet, []*ast.File, bool) {
	if d.fset == nil || len(d.files) == 0 {
		return nil, nil, false
	}
	return d.fset, d.files, true
}

// PackageName returns the Go package name recorded by the loader, if any.
func (d Document) PackageName() string {
	return d.pkgName
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
