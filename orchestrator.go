package buildergen

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// RenderOptions aliases render.RenderOptions for callers that only import the
// root package.
type RenderOptions = render.RenderOptions

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Diagnostics aliases diag.List.
type Diagnostics = diag.List

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateBuilders loads source and renders Go builders for the named types
// into a single file. Problems with the types are returned in
// Result.Diagnostics; the error covers I/O and rendering failures.
func GenerateBuilders(ctx context.Context, source schema.Source, typeNames []string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:    source,
		TypeNames: typeNames,
	})
}

// GenerateBuildersFromDocument renders builders from a pre-loaded document,
// bypassing the loader stage.
func GenerateBuildersFromDocument(ctx context.Context, doc schema.Document, typeNames []string, rendererName string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:  &doc,
		TypeNames: typeNames,
		Renderer:  rendererName,
	})
}

// GenerateFromSource parses a single Go file held in memory and renders
// builders for the named types. name is used for positions in diagnostics.
func GenerateFromSource(ctx context.Context, name string, src []byte, typeNames ...string) (Result, error) {
	doc, err := schema.NewDocument(schema.SourceFromFile(name), src)
	if err != nil {
		return Result{}, err
	}
	return GenerateBuildersFromDocument(ctx, doc, typeNames, "")
}
