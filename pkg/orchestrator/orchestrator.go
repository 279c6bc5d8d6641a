package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	goextractor "github.com/goliatone/go-buildergen/internal/goast/extractor"
	internalLoader "github.com/goliatone/go-buildergen/internal/goast/loader"
	oasextractor "github.com/goliatone/go-buildergen/internal/openapi/extractor"
	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/logging"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/renderers/htmldoc"
	"github.com/goliatone/go-buildergen/pkg/renderers/jsonmodel"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const defaultRendererName = golang.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom source loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithGoExtractor injects the extractor used for Go sources.
func WithGoExtractor(extractor schema.Extractor) Option {
	return func(o *Orchestrator) {
		o.goExtractor = extractor
	}
}

// WithOpenAPIExtractor injects the extractor used for OpenAPI documents.
func WithOpenAPIExtractor(extractor schema.Extractor) Option {
	return func(o *Orchestrator) {
		o.openAPIExtractor = extractor
	}
}

// WithExtractorOptions configures the built-in extractors (tag key, docs).
// Ignored for extractors injected explicitly.
func WithExtractorOptions(options ...schema.ExtractorOption) Option {
	return func(o *Orchestrator) {
		o.extractorOptions = append(o.extractorOptions, options...)
	}
}

// WithModelBuilder injects a custom builder model synthesizer.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can rewrite type descriptors
// after extraction but before classification.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against each builder model
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger sets the logger used for stage progress. Without it each call
// logs to the logger carried by its context (see logging.ContextWithLogger),
// or nowhere.
func WithLogger(logger logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from a source to rendered
// builders. It applies sensible defaults (Go renderer, built-in extractors)
// while remaining open to dependency injection.
type Orchestrator struct {
	loader           schema.Loader
	goExtractor      schema.Extractor
	openAPIExtractor schema.Extractor
	extractorOptions []schema.ExtractorOption
	builder          model.Builder
	registry         *render.Registry
	defaultRenderer  string
	transformer      Transformer
	decorators       []model.Decorator
	logger           logging.Logger
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs for one generation pass.
type Request struct {
	// Source identifies where the schema lives. Optional when Document is
	// supplied.
	Source schema.Source

	// Document allows callers to bypass the loader.
	Document *schema.Document

	// TypeNames selects the record types to generate builders for. Output for
	// all of them lands in one file.
	TypeNames []string

	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	// RenderOptions carries output settings such as the package clause.
	RenderOptions render.RenderOptions
}

// Result is the outcome of a generation pass.
type Result struct {
	// Code is the rendered output. It is best-effort when Diagnostics is not
	// empty and nil when no type could be generated.
	Code        []byte
	ContentType string
	Models      []model.BuilderModel
	Diagnostics diag.List
}

// Err returns the diagnostics as an error, or nil when generation was clean.
func (r Result) Err() error {
	return r.Diagnostics.Err()
}

// Generate executes loader → extractor → model builder → renderer. The error
// return covers infrastructure failures; problems with the types themselves
// are reported through Result.Diagnostics.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	names, err := normalizeTypeNames(req.TypeNames)
	if err != nil {
		return Result{}, err
	}

	logger := o.loggerFor(ctx)
	doc, err := o.resolveDocument(ctx, logger, req)
	if err != nil {
		return Result{}, err
	}
	extractor := o.extractorFor(doc)

	var result Result
	for _, name := range names {
		m, diags, ok, err := o.buildType(ctx, logger, extractor, doc, name)
		if err != nil {
			return Result{}, err
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
		if ok {
			result.Models = append(result.Models, m)
		}
	}

	if len(result.Models) == 0 {
		logger.Warn("no builders generated", "types", strings.Join(names, ","), "diagnostics", len(result.Diagnostics))
		return result, nil
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	options := req.RenderOptions
	if src := doc.Source(); options.SourceName == "" && src != nil && src.Kind() != schema.SourceKindPackage {
		options.SourceName = filepath.Base(doc.Location())
	}

	code, err := renderer.Render(ctx, result.Models, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	result.Code = code
	result.ContentType = renderer.ContentType()

	logger.Info("generated builders",
		"types", strings.Join(names, ","),
		"renderer", renderer.Name(),
		"bytes", len(code),
		"diagnostics", len(result.Diagnostics),
	)
	return result, nil
}

// Inspect runs the pipeline up to the model stage and skips rendering.
func (o *Orchestrator) Inspect(ctx context.Context, req Request) (Result, error) {
	req.Renderer = jsonmodel.Name
	return o.Generate(ctx, req)
}

func (o *Orchestrator) buildType(ctx context.Context, logger logging.Logger, extractor schema.Extractor, doc schema.Document, name string) (model.BuilderModel, diag.List, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.BuilderModel{}, nil, false, err
	}

	desc, diags, err := extractor.Extract(ctx, doc, name)
	if err != nil {
		return model.BuilderModel{}, nil, false, fmt.Errorf("orchestrator: extract %s: %w", name, err)
	}
	if diags.HasFatal() {
		logger.Warn("type skipped", "type", name, "reason", diags[0].Message)
		return model.BuilderModel{}, diags, false, nil
	}
	logger.Debug("extracted type", "type", name, "fields", len(desc.Fields), "origin", desc.Origin)

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &desc); err != nil {
			return model.BuilderModel{}, nil, false, fmt.Errorf("orchestrator: transform %s: %w", name, err)
		}
	}

	m, err := o.builder.Build(desc)
	if err != nil {
		return model.BuilderModel{}, nil, false, fmt.Errorf("orchestrator: build model %s: %w", name, err)
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&m); err != nil {
			return model.BuilderModel{}, nil, false, fmt.Errorf("orchestrator: decorate %s: %w", name, err)
		}
	}

	diags = append(diags, m.Diagnostics...)
	for _, d := range m.Diagnostics {
		logger.Debug("diagnostic", "type", name, "field", d.Field, "kind", d.Kind)
	}
	return m, diags, true, nil
}

func normalizeTypeNames(in []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if !token.IsIdentifier(name) {
				return nil, fmt.Errorf("orchestrator: invalid type name %q", name)
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("orchestrator: at least one type name is required")
	}
	return out, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, logger logging.Logger, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	logger.Debug("loaded source", "kind", req.Source.Kind(), "location", req.Source.Location())
	return doc, nil
}

func (o *Orchestrator) loggerFor(ctx context.Context) logging.Logger {
	if o.logger != nil {
		return o.logger
	}
	return logging.FromContext(ctx)
}

// extractorFor picks the OpenAPI extractor for OpenAPI sources, or for raw
// payloads that look like an OpenAPI document, and the Go extractor otherwise.
func (o *Orchestrator) extractorFor(doc schema.Document) schema.Extractor {
	if src := doc.Source(); src != nil && src.Kind() == schema.SourceKindOpenAPI {
		return o.openAPIExtractor
	}
	if _, _, ok := doc.Syntax(); ok {
		return o.goExtractor
	}
	if looksLikeOpenAPI(doc.Raw()) {
		return o.openAPIExtractor
	}
	return o.goExtractor
}

func looksLikeOpenAPI(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 512 {
		trimmed = trimmed[:512]
	}
	return bytes.HasPrefix(trimmed, []byte("openapi:")) ||
		(bytes.HasPrefix(trimmed, []byte("{")) && bytes.Contains(trimmed, []byte(`"openapi"`)))
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	extractorOptions := schema.NewExtractorOptions(o.extractorOptions...)
	if o.goExtractor == nil {
		o.goExtractor = goextractor.New(extractorOptions)
	}
	if o.openAPIExtractor == nil {
		o.openAPIExtractor = oasextractor.New(extractorOptions)
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := registerDefaults(o.registry); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func registerDefaults(registry *render.Registry) error {
	goRenderer, err := golang.New()
	if err != nil {
		return err
	}
	docRenderer, err := htmldoc.New()
	if err != nil {
		return err
	}
	for _, r := range []render.Renderer{goRenderer, docRenderer, jsonmodel.New()} {
		if err := registry.Register(r); err != nil {
			return err
		}
	}
	return nil
}
