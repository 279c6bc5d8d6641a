package buildergen

import (
	"io/fs"

	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
)

// EmbeddedTemplates exposes the built-in Go renderer templates so callers can
// copy or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return golang.TemplatesFS()
}
