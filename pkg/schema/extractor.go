package schema

import (
	"context"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/diag"
)

// DefaultTagKey is the struct tag key carrying builder directives.
const DefaultTagKey = "builder"

// Extractor produces the ordered field list of a named record type.
//
// Structural problems (the type is not a flat named-field record) are reported
// as a fatal diagnostic, not as an error; the error return is reserved for
// infrastructure failures such as unparsable input.
type Extractor interface {
	Extract(ctx context.Context, doc Document, typeName string) (TypeDescriptor, diag.List, error)
}

// ExtractorOptions configures extraction.
type ExtractorOptions struct {
	// TagKey is the struct tag key read for directives.
	TagKey string

	// IncludeDocs copies field doc comments onto descriptors.
	IncludeDocs bool
}

// ExtractorOption mutates ExtractorOptions during construction.
type ExtractorOption func(*ExtractorOptions)

// WithTagKey overrides the struct tag key holding directives.
func WithTagKey(key string) ExtractorOption {
	return func(opts *ExtractorOptions) {
		key = strings.TrimSpace(key)
		if key != "" {
			opts.TagKey = key
		}
	}
}

// WithDocs toggles copying doc comments.
func WithDocs(enabled bool) ExtractorOption {
	return func(opts *ExtractorOptions) {
		opts.IncludeDocs = enabled
	}
}

// NewExtractorOptions applies ExtractorOption functions over the defaults.
func NewExtractorOptions(options ...ExtractorOption) ExtractorOptions {
	cfg := ExtractorOptions{
		TagKey:      DefaultTagKey,
		IncludeDocs: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// SplitDirectives splits a raw directive string ("each=arg, other") into
// trimmed tokens, dropping empty entries. Commas inside quotes are kept.
func SplitDirectives(raw string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
	)
	flush := func() {
		tok := strings.TrimSpace(cur.String())
		if tok != "" {
			out = append(out, tok)
		}
		cur.Reset()
	}
	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == ',':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
