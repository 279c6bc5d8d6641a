package orchestrator_test

import (
	"io/fs"

	"github.com/goliatone/go-buildergen/internal/goast/loader"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func newFSLoader(fsys fs.FS) schema.Loader {
	return loader.New(schema.NewLoaderOptions(schema.WithFileSystem(fsys)))
}
