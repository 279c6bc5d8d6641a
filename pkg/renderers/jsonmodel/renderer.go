// Package jsonmodel renders builder models as indented JSON. It backs the
// inspect command and is handy for snapshotting the classification.
package jsonmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
)

// Name is the registry name of the JSON renderer.
const Name = "json"

// Renderer marshals models as a JSON document.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a renderer indenting with two spaces. An explicit indent of ""
// produces compact output.
func New(indent ...string) *Renderer {
	r := &Renderer{indent: "  "}
	if len(indent) > 0 {
		r.indent = indent[0]
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type document struct {
	Package string               `json:"package,omitempty"`
	Models  []model.BuilderModel `json:"models"`
}

// Render writes {"package": ..., "models": [...]} followed by a newline.
func (r *Renderer) Render(ctx context.Context, models []model.BuilderModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if models == nil {
		models = []model.BuilderModel{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(document{Package: options.Package, Models: models}); err != nil {
		return nil, fmt.Errorf("json renderer: encode: %w", err)
	}
	return buf.Bytes(), nil
}
