package loader

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"io/fs"
	"os"

	"golang.org/x/tools/go/packages"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Loader implements schema.Loader by delegating to file, fs.FS, or go/packages
// strategies. Construction helpers live in the top-level buildergen package.
type Loader struct {
	fs         fs.FS
	dir        string
	buildFlags []string
	tests      bool
}

// Ensure the implementation satisfies the public interface.
var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options schema.LoaderOptions) schema.Loader {
	return &Loader{
		fs:         options.FileSystem,
		dir:        options.Dir,
		buildFlags: append([]string(nil), options.BuildFlags...),
		tests:      options.Tests,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case schema.SourceKindFile, schema.SourceKindOpenAPI:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindPackage:
		return l.loadPackage(ctx, src)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}

	return schema.NewDocument(src, data)
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) loadPackage(ctx context.Context, src schema.Source) (schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:        l.dir,
		Fset:       fset,
		BuildFlags: l.buildFlags,
		Tests:      l.tests,
	}
	pkgs, err := packages.Load(cfg, src.Location())
	if err != nil {
		return schema.Document{}, fmt.Errorf("loader: load package %s: %w", src.Location(), err)
	}
	if len(pkgs) == 0 {
		return schema.Document{}, fmt.Errorf("loader: package %s matched nothing", src.Location())
	}

	var (
		files   []*ast.File
		pkgName string
		errs    []error
	)
	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			// Type errors are common mid-generation (the builder file may not
			// exist yet); only list errors abort.
			if perr.Kind == packages.ListError {
				errs = append(errs, perr)
			}
		}
		if pkgName == "" {
			pkgName = pkg.Name
		}
		files = append(files, pkg.Syntax...)
	}
	if len(errs) > 0 {
		return schema.Document{}, fmt.Errorf("loader: package %s: %w", src.Location(), errors.Join(errs...))
	}

	return schema.NewSyntaxDocument(src, fset, pkgName, files)
}
