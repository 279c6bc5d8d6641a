package orchestrator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/logging"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const commandSource = "package command\n\n" +
	"type Command struct {\n" +
	"\tExecutable string\n" +
	"\tArgs []string `builder:\"each=arg\"`\n" +
	"\tEnv *string\n" +
	"}\n\n" +
	"type Job struct {\n" +
	"\tName string `builder:\"each=name\"`\n" +
	"\tRetries int\n" +
	"}\n\n" +
	"type Runner interface{ Run() error }\n"

func document(t *testing.T, name, src string) *schema.Document {
	t.Helper()
	doc, err := schema.NewDocument(schema.SourceFromFile(name), []byte(src))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	return &doc
}

func TestGenerateGoBuilder(t *testing.T) {
	var logs bytes.Buffer
	gen := orchestrator.New(orchestrator.WithLogger(logging.NewLogger(&logging.Config{Level: logging.DebugLevel, Output: &logs})))

	res, err := gen.Generate(context.Background(), orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Command"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	code := string(res.Code)
	for _, want := range []string{
		"// Code generated by buildergen from command.go. DO NOT EDIT.",
		"package command",
		"func NewCommandBuilder() *CommandBuilder",
		"func (b *CommandBuilder) Arg(item string) *CommandBuilder",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
	if !strings.HasPrefix(res.ContentType, "text/x-go") {
		t.Fatalf("unexpected content type %q", res.ContentType)
	}
	if !strings.Contains(logs.String(), "generated builders") {
		t.Fatalf("expected progress log, got %q", logs.String())
	}
}

func TestGenerateUsesDeclaringPackage(t *testing.T) {
	fset := token.NewFileSet()
	var files []*ast.File
	for _, f := range []struct{ name, src string }{
		{"a/a.go", "package a\n\ntype A struct{ Name string }\n"},
		{"b/b.go", "package b\n\ntype B struct{ Name string }\n"},
	} {
		file, err := parser.ParseFile(fset, f.name, f.src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", f.name, err)
		}
		files = append(files, file)
	}
	doc, err := schema.NewSyntaxDocument(schema.SourceFromPackage("./..."), fset, "a", files)
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	res, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{Document: &doc, TypeNames: []string{"B"}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if !strings.Contains(string(res.Code), "\npackage b\n") {
		t.Fatalf("expected package b clause:\n%s", res.Code)
	}
}

func TestGenerateKeepsAnonymousStructTags(t *testing.T) {
	src := "package p\n\ntype T struct {\n\tMeta struct{ A string `json:\"a\"` }\n\tOpt *struct{ A string `json:\"a\"` }\n}\n"

	res, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Document:  document(t, "t.go", src),
		TypeNames: []string{"T"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	code := string(res.Code)
	if untagged := regexp.MustCompile(`struct\s*\{\s*A\s+string\s*\}`); untagged.MatchString(code) {
		t.Fatalf("anonymous struct lost its tag:\n%s", code)
	}
	if !strings.Contains(code, `json:"a"`) {
		t.Fatalf("expected tagged struct type in output:\n%s", code)
	}
}

func TestGenerateLogsToContextLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewLogger(&logging.Config{Level: logging.DebugLevel, Output: &logs})
	ctx := logging.ContextWithLogger(context.Background(), logger)

	_, err := orchestrator.New().Generate(ctx, orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Command"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(logs.String(), "generated builders") {
		t.Fatalf("expected context logger to receive progress, got %q", logs.String())
	}

	// An injected logger takes precedence over the context.
	logs.Reset()
	var injected bytes.Buffer
	gen := orchestrator.New(orchestrator.WithLogger(logging.NewLogger(&logging.Config{Level: logging.DebugLevel, Output: &injected})))
	if _, err := gen.Generate(ctx, orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Command"},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if logs.Len() != 0 || !strings.Contains(injected.String(), "generated builders") {
		t.Fatalf("injected logger should win, context got %q", logs.String())
	}
}

func TestGenerateCollectsFieldDiagnosticsAndStillRenders(t *testing.T) {
	res, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Command,Job"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(res.Models))
	}
	if diff := cmp.Diff([]diag.Kind{diag.KindUnsupportedFieldShape}, res.Diagnostics.Kinds()); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	if res.Err() == nil {
		t.Fatalf("diagnostics must surface as an error")
	}
	code := string(res.Code)
	if !strings.Contains(code, "func (b *JobBuilder) Retries(v int) *JobBuilder") {
		t.Fatalf("sibling field should still get its accessor:\n%s", code)
	}
	if strings.Contains(code, "func (b *JobBuilder) Name(") {
		t.Fatalf("dropped field must not get an accessor:\n%s", code)
	}
}

func TestGenerateStructuralShapeSkipsType(t *testing.T) {
	res, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Runner"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Code != nil || len(res.Models) != 0 {
		t.Fatalf("no code expected for a structural failure")
	}
	if !res.Diagnostics.HasFatal() {
		t.Fatalf("expected fatal diagnostic, got %v", res.Diagnostics)
	}
}

func TestGenerateOpenAPIDocument(t *testing.T) {
	spec := `openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name: {type: string}
        tags:
          type: array
          items: {type: string}
          x-builder: each=tag
`
	res, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Document:      document(t, "petstore.yaml", spec),
		TypeNames:     []string{"Pet"},
		RenderOptions: render.RenderOptions{Package: "petstore"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	code := string(res.Code)
	for _, want := range []string{"type Pet struct", "func (b *PetBuilder) Tag(item string) *PetBuilder", "package petstore"} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateFromFSSourceWithPreset(t *testing.T) {
	src := "package vendor\n\ntype Options struct {\n\tHosts []string\n\tDebug bool\n\tSecret string\n}\n"
	fsys := fstest.MapFS{"vendor/options.go": {Data: []byte(src)}}

	preset, err := orchestrator.NewPresetTransformer([]byte(`
types:
  Options:
    fields:
      Hosts:
        directives: ["each=host"]
      Secret:
        skip: true
`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	gen := orchestrator.New(
		orchestrator.WithLoader(newFSLoader(fsys)),
		orchestrator.WithTransformer(preset),
	)
	res, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:    schema.SourceFromFS("vendor/options.go"),
		TypeNames: []string{"Options"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	m := res.Models[0]
	if _, ok := m.Accessor("Host"); !ok {
		t.Fatalf("preset directive should produce the Host accessor")
	}
	if _, ok := m.Field("Secret"); ok {
		t.Fatalf("skipped field should be removed")
	}
}

func TestPresetUnknownField(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"types":{"Command":{"fields":{"Nope":{"skip":true}}}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	desc := schema.TypeDescriptor{Name: "Command", Fields: []schema.FieldDescriptor{{Name: "Executable"}}}
	if err := preset.Transform(context.Background(), &desc); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestInspectRendersJSON(t *testing.T) {
	res, err := orchestrator.New().Inspect(context.Background(), orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Command"},
	})
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(res.Code, &payload); err != nil {
		t.Fatalf("inspect output is not JSON: %v", err)
	}
}

func TestGenerateDecoratorsRun(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithDecorators(model.DecoratorFunc(func(m *model.BuilderModel) error {
		m.Doc = "decorated"
		return nil
	})))
	res, err := gen.Generate(context.Background(), orchestrator.Request{
		Document:  document(t, "command.go", commandSource),
		TypeNames: []string{"Command"},
		Renderer:  "json",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Models[0].Doc != "decorated" {
		t.Fatalf("decorator did not run")
	}
}

func TestGenerateRequestValidation(t *testing.T) {
	gen := orchestrator.New()
	ctx := context.Background()

	if _, err := gen.Generate(ctx, orchestrator.Request{Document: document(t, "c.go", commandSource)}); err == nil {
		t.Fatalf("expected error without type names")
	}
	if _, err := gen.Generate(ctx, orchestrator.Request{TypeNames: []string{"Command"}}); err == nil {
		t.Fatalf("expected error without source")
	}
	if _, err := gen.Generate(ctx, orchestrator.Request{Document: document(t, "c.go", commandSource), TypeNames: []string{"not valid"}}); err == nil {
		t.Fatalf("expected error for invalid type name")
	}
	if _, err := gen.Generate(ctx, orchestrator.Request{Document: document(t, "c.go", commandSource), TypeNames: []string{"Command"}, Renderer: "pdf"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}
