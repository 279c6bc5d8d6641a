package model

import (
	"errors"
	"go/token"

	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

var errTypeNameMissing = errors.New("model builder: type name is required")

// Builder converts type descriptors into builder models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	return &Builder{opts: options.withDefaults()}
}

// Build classifies every field of desc and synthesises the builder layout.
// Field-level problems are recorded on BuilderModel.Diagnostics; the returned
// error is reserved for descriptors that cannot be processed at all.
func (b *Builder) Build(desc schema.TypeDescriptor) (BuilderModel, error) {
	if desc.Name == "" {
		return BuilderModel{}, errTypeNameMissing
	}
	if !token.IsIdentifier(desc.Name) {
		return BuilderModel{}, errors.New("model builder: type name " + desc.Name + " is not an identifier")
	}

	reporter := diag.NewReporter(desc.Name)
	fields := Classify(desc, b.opts, reporter)
	m := Synthesize(desc, fields, b.opts)
	m.Diagnostics = reporter.Diagnostics()
	return m, nil
}
