package render

import "strings"

// DefaultRuntimeImport is the package generated builders import for
// MissingField errors.
const DefaultRuntimeImport = "github.com/goliatone/go-buildergen/pkg/buildererr"

// RenderOptions carry per-request output settings that do not belong on the
// models themselves.
type RenderOptions struct {
	// Package overrides the package clause of generated Go files. Required for
	// types that carry no package of their own (OpenAPI schemas).
	Package string
	// RuntimeImport is the import path of the error package used by Build.
	RuntimeImport string
	// BuildTags, when set, is emitted as a //go:build constraint.
	BuildTags string
	// SourceName names the input in the generated header.
	SourceName string
	// Title is used by document renderers as the page heading.
	Title string
}

// WithDefaults fills unset options.
func (o RenderOptions) WithDefaults() RenderOptions {
	o.Package = strings.TrimSpace(o.Package)
	o.RuntimeImport = strings.TrimSpace(o.RuntimeImport)
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
	o.BuildTags = strings.TrimSpace(o.BuildTags)
	return o
}
