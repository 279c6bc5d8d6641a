// Package testsupport holds fixture and golden helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// LoadDocument reads a fixture into a schema.Document. Go files get a file
// source; .yaml, .yml and .json fixtures get an OpenAPI source.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	src := schema.SourceFromFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		src = schema.SourceFromOpenAPI(path)
	}
	doc, err := schema.NewDocument(src, data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// BuildModel runs the default model builder over desc.
func BuildModel(t *testing.T, desc schema.TypeDescriptor, options ...model.BuilderOption) model.BuilderModel {
	t.Helper()

	m, err := model.NewBuilder(options...).Build(desc)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

// DecodeModels parses the payload written by the json renderer.
func DecodeModels(t *testing.T, data []byte) []model.BuilderModel {
	t.Helper()

	var payload struct {
		Models []model.BuilderModel `json:"models"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode models: %v", err)
	}
	return payload.Models
}

// GoDecls parses Go source and returns every top-level declaration printed
// by go/format with doc comments stripped, keyed by name. Methods are keyed
// as "(Recv).Name". Comparing two files this way ignores comment wording.
func GoDecls(t *testing.T, src []byte) map[string]string {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, 0)
	if err != nil {
		t.Fatalf("parse go source: %v", err)
	}
	out := make(map[string]string)
	for _, decl := range file.Decls {
		var key string
		switch d := decl.(type) {
		case *ast.FuncDecl:
			d.Doc = nil
			key = d.Name.Name
			if d.Recv != nil && len(d.Recv.List) > 0 {
				key = "(" + recvTypeName(d.Recv.List[0].Type) + ")." + key
			}
		case *ast.GenDecl:
			if d.Tok != token.TYPE || len(d.Specs) != 1 {
				continue
			}
			d.Doc = nil
			key = "type " + d.Specs[0].(*ast.TypeSpec).Name.Name
		}
		var buf bytes.Buffer
		if err := format.Node(&buf, fset, decl); err != nil {
			t.Fatalf("format %s: %v", key, err)
		}
		out[key] = buf.String()
	}
	return out
}

func recvTypeName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
