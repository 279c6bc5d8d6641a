// Package htmldoc renders an HTML API reference for generated builders.
package htmldoc

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	rendertemplate "github.com/goliatone/go-buildergen/pkg/render/template"
	"github.com/goliatone/go-buildergen/pkg/render/template/pongo"
)

// Name is the registry name of the HTML reference renderer.
const Name = "htmldoc"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Option configures the renderer.
type Option func(*Renderer)

// WithPolicy replaces the sanitiser applied to doc comments. The default is
// bluemonday's UGC policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(r *Renderer) {
		if renderer != nil {
			r.templates = renderer
		}
	}
}

// Renderer emits a standalone HTML page describing each builder's API.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{policy: bluemonday.UGCPolicy()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := pongo.New(pongo.WithFS(embeddedTemplates), pongo.WithName("htmldoc"))
		if err != nil {
			return nil, fmt.Errorf("htmldoc renderer: configure template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type accessorView struct {
	Method    string `json:"method"`
	Field     string `json:"field"`
	Slot      string `json:"slot"`
	Param     string `json:"param"`
	ParamType string `json:"paramType"`
	DocHTML   string `json:"docHTML"`
}

type diagnosticView struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type modelView struct {
	TypeName    string           `json:"typeName"`
	BuilderName string           `json:"builderName"`
	Constructor string           `json:"constructor"`
	BuildMethod string           `json:"buildMethod"`
	DocHTML     string           `json:"docHTML"`
	Accessors   []accessorView   `json:"accessors"`
	Diagnostics []diagnosticView `json:"diagnostics"`
}

// Render emits one section per model.
func (r *Renderer) Render(ctx context.Context, models []model.BuilderModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("htmldoc renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := options.Title
	if title == "" {
		title = "Builder reference"
	}

	views := make([]modelView, 0, len(models))
	for _, m := range models {
		views = append(views, r.view(m))
	}

	result, err := r.templates.RenderTemplate("templates/reference.tmpl", map[string]any{
		"title":  title,
		"models": views,
	})
	if err != nil {
		return nil, fmt.Errorf("htmldoc renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) view(m model.BuilderModel) modelView {
	v := modelView{
		TypeName:    m.TypeName,
		BuilderName: m.BuilderName,
		Constructor: m.Constructor,
		BuildMethod: m.BuildMethod,
		DocHTML:     r.policy.Sanitize(m.Doc),
	}
	for _, a := range m.Accessors {
		slot := string(model.SlotRequired)
		doc := a.Doc
		if f, ok := m.Field(a.Field); ok {
			slot = string(f.Slot.Kind)
			if f.Descriptor.Doc != "" {
				doc = f.Descriptor.Doc
			}
		}
		v.Accessors = append(v.Accessors, accessorView{
			Method:    a.Method,
			Field:     a.Field,
			Slot:      slot,
			Param:     a.Param,
			ParamType: a.ParamType,
			DocHTML:   r.policy.Sanitize(doc),
		})
	}
	for _, d := range m.Diagnostics {
		v.Diagnostics = append(v.Diagnostics, diagnosticView{Kind: string(d.Kind), Text: d.String()})
	}
	return v
}
