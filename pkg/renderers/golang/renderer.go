// Package golang renders builder models as Go source.
package golang

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	rendertemplate "github.com/goliatone/go-buildergen/pkg/render/template"
	"github.com/goliatone/go-buildergen/pkg/render/template/pongo"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Name is the registry name of the Go renderer.
const Name = "go"

const fileTemplate = "templates/file.tmpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	skipFormat       bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/file.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithoutFormatting returns template output as is, skipping goimports. Meant
// for debugging templates.
func WithoutFormatting() Option {
	return func(cfg *config) {
		cfg.skipFormat = true
	}
}

// Renderer emits one Go file holding a builder per model.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	skipFormat bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the Go renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("go renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, skipFormat: cfg.skipFormat}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/x-go; charset=utf-8"
}

// Render emits the builders for models into a single formatted Go file.
func (r *Renderer) Render(ctx context.Context, models []model.BuilderModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("go renderer: template renderer is nil")
	}
	if len(models) == 0 {
		return nil, errors.New("go renderer: no models to render")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options = options.WithDefaults()

	pkgName, err := packageName(models, options.Package)
	if err != nil {
		return nil, err
	}

	runtime := toImportView(schema.Import{Path: options.RuntimeImport})
	data := fileView{
		Source:      options.SourceName,
		BuildTags:   options.BuildTags,
		Package:     pkgName,
		Imports:     collectImports(models, runtime),
		RuntimeName: assumedName(options.RuntimeImport),
	}
	for _, m := range models {
		data.Models = append(data.Models, typeView{BuilderModel: m, Declare: m.EmitDeclaration()})
	}

	result, err := r.templates.RenderTemplate(fileTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("go renderer: render template: %w", err)
	}
	if r.skipFormat {
		return []byte(result), nil
	}

	filename := options.SourceName
	if filename == "" {
		filename = strings.ToLower(models[0].TypeName) + "_builder.go"
	}
	formatted, err := imports.Process(filename, []byte(result), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("go renderer: format output: %w", err)
	}
	return formatted, nil
}

type importView struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
}

type typeView struct {
	model.BuilderModel
	Declare bool `json:"declare"`
}

type fileView struct {
	Source      string       `json:"source,omitempty"`
	BuildTags   string       `json:"buildTags,omitempty"`
	Package     string       `json:"package"`
	Imports     []importView `json:"imports"`
	RuntimeName string       `json:"runtimeName"`
	Models      []typeView   `json:"models"`
}

func packageName(models []model.BuilderModel, override string) (string, error) {
	if override != "" {
		if !token.IsIdentifier(override) {
			return "", fmt.Errorf("go renderer: invalid package name %q", override)
		}
		return override, nil
	}
	name := ""
	for _, m := range models {
		if m.Package == "" {
			continue
		}
		if name != "" && name != m.Package {
			return "", fmt.Errorf("go renderer: models span packages %s and %s", name, m.Package)
		}
		name = m.Package
	}
	if name == "" {
		return "", errors.New("go renderer: package name is required for types without a Go package")
	}
	return name, nil
}

// collectImports merges the declaring files' imports with the runtime
// package. goimports prunes whatever the builders end up not using.
func collectImports(models []model.BuilderModel, runtime importView) []importView {
	seen := map[string]importView{runtime.Path: runtime}
	for _, m := range models {
		for _, imp := range m.Imports {
			if imp.Name == "_" || imp.Name == "." {
				continue
			}
			if _, ok := seen[imp.Path]; ok {
				continue
			}
			seen[imp.Path] = toImportView(imp)
		}
	}
	out := make([]importView, 0, len(seen))
	for _, imp := range seen {
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func toImportView(imp schema.Import) importView {
	v := importView{Name: imp.Name, Path: imp.Path}
	if name := assumedName(imp.Path); v.Name == "" && name != path.Base(imp.Path) {
		v.Name = name
	}
	return v
}

// assumedName guesses the package name of an import path the way goimports
// does: the last element, skipping a major version suffix, minus any
// "go-" prefix and non-identifier characters.
func assumedName(importPath string) string {
	base := path.Base(importPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(importPath))
	}
	base = strings.TrimPrefix(base, "go-")
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
