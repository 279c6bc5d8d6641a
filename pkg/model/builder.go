package model

import (
	"github.com/goliatone/go-buildergen/internal/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Builder converts type descriptors into builder models.
type Builder interface {
	Build(desc schema.TypeDescriptor) (BuilderModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*model.Options)

// WithBuilderSuffix overrides the "Builder" suffix of generated type names.
func WithBuilderSuffix(suffix string) BuilderOption {
	return func(opts *model.Options) {
		opts.BuilderSuffix = suffix
	}
}

// WithConstructorPrefix overrides the "New" prefix of the constructor.
func WithConstructorPrefix(prefix string) BuilderOption {
	return func(opts *model.Options) {
		opts.ConstructorPrefix = prefix
	}
}

// WithBuildMethod renames the assembly method.
func WithBuildMethod(name string) BuilderOption {
	return func(opts *model.Options) {
		opts.BuildMethod = name
	}
}

// WithReservedMethods lists method names accessors must never take, for
// builders that are extended by hand in the same package.
func WithReservedMethods(names ...string) BuilderOption {
	return func(opts *model.Options) {
		opts.Reserved = append(opts.Reserved, names...)
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := model.Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return model.New(cfg)
}
