package schema

import (
	"context"
	"io/fs"
)

// Loader resolves a Source into a Document. Implementations live under
// internal/goast/loader but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS; nil disables fs sources.
	FileSystem fs.FS

	// Dir is the working directory for package patterns. Empty means the
	// process working directory.
	Dir string

	// BuildFlags are passed to the go command when loading packages
	// (for example "-tags=integration").
	BuildFlags []string

	// Tests includes _test.go files when loading packages.
	Tests bool
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Dir = dir
	}
}

// WithBuildFlags appends go command build flags used for package loading.
func WithBuildFlags(flags ...string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.BuildFlags = append(opts.BuildFlags, flags...)
	}
}

// WithTests toggles loading _test.go files for package sources.
func WithTests(enabled bool) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Tests = enabled
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
