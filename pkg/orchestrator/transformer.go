package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Transformer rewrites a TypeDescriptor after extraction and before the
// directive parser and classifier see it.
type Transformer interface {
	Transform(ctx context.Context, desc *schema.TypeDescriptor) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, desc *schema.TypeDescriptor) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, desc *schema.TypeDescriptor) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, desc)
}

// PresetTransformer attaches directives to fields declaratively, for types
// whose source cannot carry struct tags (vendored or generated code). The
// document is JSON or YAML:
//
//	types:
//	  Command:
//	    fields:
//	      Args:
//	        directives: ["each=arg"]
//	      Internal:
//	        skip: true
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Types map[string]presetType `json:"types" yaml:"types"`
}

type presetType struct {
	Doc    string                 `json:"doc" yaml:"doc"`
	Fields map[string]fieldPreset `json:"fields" yaml:"fields"`
}

type fieldPreset struct {
	// Directives replace whatever the source declared.
	Directives []string `json:"directives" yaml:"directives"`
	// Skip removes the field from the builder; Build leaves it zero.
	Skip bool   `json:"skip" yaml:"skip"`
	Doc  string `json:"doc" yaml:"doc"`
}

// NewPresetTransformer parses a JSON or YAML preset document.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse json: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse yaml: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset for desc.Name, if any. Presets naming fields
// the type does not have are an error so typos surface early.
func (t *PresetTransformer) Transform(ctx context.Context, desc *schema.TypeDescriptor) error {
	if desc == nil {
		return errors.New("preset transformer: descriptor is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	preset, ok := t.document.Types[desc.Name]
	if !ok {
		return nil
	}
	if preset.Doc != "" {
		desc.Doc = preset.Doc
	}

	for name := range preset.Fields {
		if _, ok := desc.Field(name); !ok {
			return fmt.Errorf("preset transformer: field %s.%s not found", desc.Name, name)
		}
	}

	fields := make([]schema.FieldDescriptor, 0, len(desc.Fields))
	for _, field := range desc.Fields {
		patch, ok := preset.Fields[field.Name]
		if !ok {
			fields = append(fields, field)
			continue
		}
		if patch.Skip {
			continue
		}
		if patch.Directives != nil {
			field.Directives = append([]string(nil), patch.Directives...)
		}
		if patch.Doc != "" {
			field.Doc = patch.Doc
		}
		fields = append(fields, field)
	}
	desc.Fields = fields
	return nil
}
