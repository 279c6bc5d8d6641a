package buildergen

import (
	goextractor "github.com/goliatone/go-buildergen/internal/goast/extractor"
	internalLoader "github.com/goliatone/go-buildergen/internal/goast/loader"
	oasextractor "github.com/goliatone/go-buildergen/internal/openapi/extractor"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

// NewExtractor constructs the Go struct extractor.
func NewExtractor(options ...schema.ExtractorOption) schema.Extractor {
	return goextractor.New(schema.NewExtractorOptions(options...))
}

// NewOpenAPIExtractor constructs the extractor for components.schemas in an
// OpenAPI 3 document.
func NewOpenAPIExtractor(options ...schema.ExtractorOption) schema.Extractor {
	return oasextractor.New(schema.NewExtractorOptions(options...))
}
