package render

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/model"
)

// Renderer converts builder models into a byte representation (Go source,
// HTML reference, JSON). All models passed in one call end up in one output.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, models []model.BuilderModel, options RenderOptions) ([]byte, error)
}
