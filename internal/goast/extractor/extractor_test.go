package extractor_test

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/internal/goast/extractor"
	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const commandSource = `package command

import (
	"io"
	"time"
)

// Command describes a process to launch.
type Command struct {
	// Executable is the program path.
	Executable string
	Args       []string ` + "`builder:\"each=arg\"`" + `
	Env        *string
	Dir        *string // working directory
	Stdin, Stdout io.Reader
	_          int
	Timeout    time.Duration ` + "`json:\"timeout\" builder:\"each=\\\"tick\\\", other\"`" + `
}

type Shape interface{ Area() float64 }

type IDs []int

type Alias = Command

type Box[T any] struct{ V T }

type Wrapper struct {
	*Command
	io.Writer
}
`

func extract(t *testing.T, typeName string) (schema.TypeDescriptor, diag.List) {
	t.Helper()
	doc := schema.MustNewDocument(schema.SourceFromFile("command.go"), []byte(commandSource))
	ex := extractor.New(schema.NewExtractorOptions())
	desc, diags, err := ex.Extract(context.Background(), doc, typeName)
	if err != nil {
		t.Fatalf("extract %s: %v", typeName, err)
	}
	return desc, diags
}

func TestExtractPreservesDeclarationOrder(t *testing.T) {
	desc, diags := extract(t, "Command")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if desc.Package != "command" || desc.Origin != schema.OriginGo {
		t.Fatalf("unexpected descriptor header: %+v", desc)
	}
	if desc.Doc != "Command describes a process to launch." {
		t.Fatalf("unexpected doc: %q", desc.Doc)
	}

	var names []string
	for _, f := range desc.Fields {
		names = append(names, f.Name)
	}
	want := []string{"Executable", "Args", "Env", "Dir", "Stdin", "Stdout", "Timeout"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTypesAndDirectives(t *testing.T) {
	desc, _ := extract(t, "Command")

	args, _ := desc.Field("Args")
	if args.Type.Shape != schema.ShapeSlice || args.Type.Expr != "[]string" || args.Type.Inner().Expr != "string" {
		t.Fatalf("unexpected Args type: %+v", args.Type)
	}
	if diff := cmp.Diff([]string{"each=arg"}, args.Directives); diff != "" {
		t.Fatalf("Args directives mismatch (-want +got):\n%s", diff)
	}

	env, _ := desc.Field("Env")
	if env.Type.Shape != schema.ShapePointer || env.Type.Expr != "*string" {
		t.Fatalf("unexpected Env type: %+v", env.Type)
	}

	timeout, _ := desc.Field("Timeout")
	if timeout.Type.Expr != "time.Duration" {
		t.Fatalf("unexpected Timeout type: %+v", timeout.Type)
	}
	if diff := cmp.Diff([]string{`each="tick"`, "other"}, timeout.Directives); diff != "" {
		t.Fatalf("Timeout directives mismatch (-want +got):\n%s", diff)
	}

	exe, _ := desc.Field("Executable")
	if exe.Doc != "Executable is the program path." {
		t.Fatalf("unexpected field doc: %q", exe.Doc)
	}
	if exe.Pos.Filename != "command.go" || exe.Pos.Line == 0 {
		t.Fatalf("expected a source position, got %v", exe.Pos)
	}
	dir, _ := desc.Field("Dir")
	if dir.Doc != "working directory" {
		t.Fatalf("trailing comment should be used as doc, got %q", dir.Doc)
	}

	wantImports := []schema.Import{{Path: "io"}, {Path: "time"}}
	if diff := cmp.Diff(wantImports, desc.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractEmbeddedFields(t *testing.T) {
	desc, diags := extract(t, "Wrapper")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(desc.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(desc.Fields))
	}
	if f := desc.Fields[0]; f.Name != "Command" || !f.Embedded || f.Type.Shape != schema.ShapePointer {
		t.Fatalf("unexpected embedded pointer field: %+v", f)
	}
	if f := desc.Fields[1]; f.Name != "Writer" || f.Type.Expr != "io.Writer" {
		t.Fatalf("unexpected embedded selector field: %+v", f)
	}
}

func TestExtractStructuralShapes(t *testing.T) {
	for _, name := range []string{"Shape", "IDs", "Alias", "Box", "Missing"} {
		t.Run(name, func(t *testing.T) {
			_, diags := extract(t, name)
			if len(diags) != 1 || diags[0].Kind != diag.KindStructuralShape {
				t.Fatalf("expected a single structural_shape diagnostic, got %v", diags)
			}
			if diags[0].Type != name {
				t.Fatalf("diagnostic should name the type, got %q", diags[0].Type)
			}
			if !diags.HasFatal() {
				t.Fatalf("structural diagnostic must be fatal")
			}
		})
	}
}

func TestExtractFromSyntaxDocument(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "command.go", commandSource, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc, err := schema.NewSyntaxDocument(schema.SourceFromPackage("."), fset, "cmdpkg", []*ast.File{file})
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	desc, diags, err := extractor.New(schema.NewExtractorOptions(schema.WithDocs(false))).Extract(context.Background(), doc, "Command")
	if err != nil || len(diags) != 0 {
		t.Fatalf("extract: %v %v", err, diags)
	}
	if desc.Package != "command" {
		t.Fatalf("declaring file package should win, got %q", desc.Package)
	}
	if desc.Doc != "" || desc.Fields[0].Doc != "" {
		t.Fatalf("docs should be skipped when disabled")
	}
}

func TestExtractPackageFromDeclaringFile(t *testing.T) {
	fset := token.NewFileSet()
	var files []*ast.File
	for name, src := range map[string]string{
		"a/a.go": "package a\n\ntype A struct{ Name string }\n",
		"b/b.go": "package b\n\ntype B struct{ Name string }\n",
	} {
		file, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		files = append(files, file)
	}
	doc, err := schema.NewSyntaxDocument(schema.SourceFromPackage("./..."), fset, "a", files)
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	ex := extractor.New(schema.NewExtractorOptions())
	for typeName, want := range map[string]string{"A": "a", "B": "b"} {
		desc, diags, err := ex.Extract(context.Background(), doc, typeName)
		if err != nil || len(diags) != 0 {
			t.Fatalf("extract %s: %v %v", typeName, err, diags)
		}
		if desc.Package != want {
			t.Fatalf("type %s: expected package %q, got %q", typeName, want, desc.Package)
		}
	}
}

func TestExtractKeepsAnonymousStructTags(t *testing.T) {
	src := "package p\n\ntype T struct {\n\tMeta struct{ A string `json:\"a\"` }\n\tRefs []*struct{ ID int `json:\"id\"` }\n}\n"
	doc := schema.MustNewDocument(schema.SourceFromFile("t.go"), []byte(src))
	desc, diags, err := extractor.New(schema.NewExtractorOptions()).Extract(context.Background(), doc, "T")
	if err != nil || len(diags) != 0 {
		t.Fatalf("extract: %v %v", err, diags)
	}

	meta, refs := desc.Fields[0].Type, desc.Fields[1].Type
	if meta.Shape != schema.ShapeNamed || !strings.Contains(meta.Expr, "`json:\"a\"`") {
		t.Fatalf("anonymous struct lost its tag: %+v", meta)
	}
	if refs.Shape != schema.ShapeSlice || !strings.HasPrefix(refs.Expr, "[]*struct") || !strings.Contains(refs.Expr, "`json:\"id\"`") {
		t.Fatalf("nested anonymous struct lost its tag: %+v", refs)
	}
}

func TestExtractCustomTagKey(t *testing.T) {
	src := "package p\n\ntype T struct {\n\tItems []int `gen:\"each=item\"`\n}\n"
	doc := schema.MustNewDocument(schema.SourceFromFile("t.go"), []byte(src))
	desc, _, err := extractor.New(schema.NewExtractorOptions(schema.WithTagKey("gen"))).Extract(context.Background(), doc, "T")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if diff := cmp.Diff([]string{"each=item"}, desc.Fields[0].Directives); diff != "" {
		t.Fatalf("directives mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractParseError(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("bad.go"), []byte("package p\ntype T struct {"))
	if _, _, err := extractor.New(schema.NewExtractorOptions()).Extract(context.Background(), doc, "T"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestExtractHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := schema.MustNewDocument(schema.SourceFromFile("command.go"), []byte(commandSource))
	if _, _, err := extractor.New(schema.NewExtractorOptions()).Extract(ctx, doc, "Command"); err == nil {
		t.Fatalf("expected context error")
	}
}
