package golang_test

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func commandModel(t *testing.T) model.BuilderModel {
	t.Helper()
	str := schema.Named("string")
	desc := schema.TypeDescriptor{
		Name:    "Command",
		Package: "command",
		Origin:  schema.OriginGo,
		Imports: []schema.Import{{Path: "time"}, {Path: "io"}},
		Fields: []schema.FieldDescriptor{
			{Name: "Executable", Type: str},
			{Name: "Args", Type: schema.SliceOf(str), Directives: []string{"each=arg"}},
			{Name: "Env", Type: schema.PointerTo(str)},
			{Name: "Timeout", Type: schema.Named("time.Duration")},
		},
	}
	m, err := model.NewBuilder().Build(desc)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

func renderModels(t *testing.T, opts render.RenderOptions, models ...model.BuilderModel) string {
	t.Helper()
	r, err := golang.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), models, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func declNames(t *testing.T, src string) (*ast.File, []string) {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "out.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				name = "(" + recvName(d.Recv.List[0].Type) + ")." + name
			}
			names = append(names, name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					names = append(names, "type "+ts.Name.Name)
				}
			}
		}
	}
	return file, names
}

func recvName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		return "*" + recvName(star.X)
	}
	return expr.(*ast.Ident).Name
}

func TestRenderCommandBuilder(t *testing.T) {
	src := renderModels(t, render.RenderOptions{SourceName: "command.go"}, commandModel(t))

	file, names := declNames(t, src)
	want := []string{
		"type CommandBuilder",
		"NewCommandBuilder",
		"(*CommandBuilder).Executable",
		"(*CommandBuilder).Arg",
		"(*CommandBuilder).Env",
		"(*CommandBuilder).Timeout",
		"(*CommandBuilder).Build",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
	if file.Name.Name != "command" {
		t.Fatalf("unexpected package %s", file.Name.Name)
	}

	if !strings.HasPrefix(src, "// Code generated by buildergen from command.go. DO NOT EDIT.\n") {
		t.Fatalf("missing generated header:\n%s", src)
	}

	var paths []string
	for _, imp := range file.Imports {
		paths = append(paths, strings.Trim(imp.Path.Value, `"`))
	}
	sort.Strings(paths)
	if diff := cmp.Diff([]string{render.DefaultRuntimeImport, "time"}, paths); diff != "" {
		t.Fatalf("imports mismatch, unused imports should be pruned (-want +got):\n%s", diff)
	}

	for _, snippet := range []string{
		"args: []string{},",
		"b.executable = &v",
		"b.args = append(b.args, item)",
		`return nil, buildererr.MissingField("Command", "Executable")`,
		"out.Executable = *b.executable",
		"out.Args = make([]string, len(b.args))",
		"copy(out.Args, b.args)",
		"out.Env = b.env",
		"func (b *CommandBuilder) Timeout(v time.Duration) *CommandBuilder",
	} {
		if !strings.Contains(src, snippet) {
			t.Errorf("generated code is missing %q", snippet)
		}
	}
}

func TestRenderRequiredChecksFollowDeclarationOrder(t *testing.T) {
	src := renderModels(t, render.RenderOptions{}, commandModel(t))
	exe := strings.Index(src, `MissingField("Command", "Executable")`)
	timeout := strings.Index(src, `MissingField("Command", "Timeout")`)
	if exe < 0 || timeout < 0 || exe > timeout {
		t.Fatalf("required checks out of order:\n%s", src)
	}
}

func TestRenderOpenAPIDeclaration(t *testing.T) {
	str := schema.Named("string")
	desc := schema.TypeDescriptor{
		Name:   "Pet",
		Origin: schema.OriginOpenAPI,
		Doc:    "Pet is a pet.",
		Fields: []schema.FieldDescriptor{
			{Name: "Name", Type: str, WireName: "name"},
			{Name: "Tags", Type: schema.SliceOf(str), WireName: "tags", Directives: []string{"each=tag"}},
		},
	}
	m, err := model.NewBuilder().Build(desc)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}

	src := renderModels(t, render.RenderOptions{Package: "petstore", BuildTags: "!skipgen"}, m)
	file, names := declNames(t, src)
	if file.Name.Name != "petstore" {
		t.Fatalf("package override not applied: %s", file.Name.Name)
	}
	if len(names) == 0 || names[0] != "type Pet" {
		t.Fatalf("expected the struct declaration first, got %v", names)
	}
	if !strings.Contains(src, "//go:build !skipgen") {
		t.Fatalf("missing build constraint:\n%s", src)
	}
	if !strings.Contains(src, "`json:\"name\"`") || !strings.Contains(src, "`json:\"tags,omitempty\"`") {
		t.Fatalf("missing json tags:\n%s", src)
	}
}

func TestRenderRequiresPackage(t *testing.T) {
	m := model.BuilderModel{TypeName: "Pet", BuilderName: "PetBuilder", Constructor: "NewPetBuilder", BuildMethod: "Build"}
	r, err := golang.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), []model.BuilderModel{m}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error without package name")
	}
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{Package: "p"}); err == nil {
		t.Fatalf("expected error without models")
	}
}

func TestRenderWithoutFormatting(t *testing.T) {
	r, err := golang.New(golang.WithoutFormatting())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), []model.BuilderModel{commandModel(t)}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `"io"`) {
		t.Fatalf("raw output should keep every source import")
	}
	if r.Name() != "go" || !strings.HasPrefix(r.ContentType(), "text/x-go") {
		t.Fatalf("unexpected renderer identity")
	}
}
