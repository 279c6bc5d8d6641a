package extractor

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Extractor implements schema.Extractor over Go source.
type Extractor struct {
	options schema.ExtractorOptions
}

// Ensure the implementation satisfies the public interface.
var _ schema.Extractor = (*Extractor)(nil)

// New constructs an Extractor with the given options.
func New(options schema.ExtractorOptions) schema.Extractor {
	if options.TagKey == "" {
		options.TagKey = schema.DefaultTagKey
	}
	return &Extractor{options: options}
}

// Extract locates typeName in the document and returns its fields in
// declaration order.
func (e *Extractor) Extract(ctx context.Context, doc schema.Document, typeName string) (schema.TypeDescriptor, diag.List, error) {
	if err := ctx.Err(); err != nil {
		return schema.TypeDescriptor{}, nil, err
	}

	fset, files, ok := doc.Syntax()
	if !ok {
		raw := doc.Raw()
		if len(raw) == 0 {
			return schema.TypeDescriptor{}, nil, fmt.Errorf("extractor: document %s is empty", doc.Location())
		}
		fset = token.NewFileSet()
		file, err := parser.ParseFile(fset, doc.Location(), raw, parser.ParseComments)
		if err != nil {
			return schema.TypeDescriptor{}, nil, fmt.Errorf("extractor: parse %s: %w", doc.Location(), err)
		}
		files = []*ast.File{file}
	}

	r := diag.NewReporter(typeName)
	desc := schema.TypeDescriptor{Name: typeName, Origin: schema.OriginGo, Package: doc.PackageName()}

	file, gen, spec := findType(files, typeName)
	if spec == nil {
		r.Reportf(diag.KindStructuralShape, "", token.Position{Filename: doc.Location()},
			"type %s is not declared in %s", typeName, doc.Location())
		return desc, r.Diagnostics(), nil
	}

	// A package pattern may load several packages; the declaring file wins.
	desc.Package = file.Name.Name
	desc.Pos = fset.Position(spec.Pos())
	if e.options.IncludeDocs {
		desc.Doc = docText(spec.Doc, gen.Doc)
	}
	desc.Imports = fileImports(file)

	if reason := shapeProblem(spec); reason != "" {
		r.Add(diag.StructuralShape(typeName, desc.Pos, reason))
		return desc, r.Diagnostics(), nil
	}

	st := spec.Type.(*ast.StructType)
	for _, field := range st.Fields.List {
		if err := ctx.Err(); err != nil {
			return schema.TypeDescriptor{}, nil, err
		}
		desc.Fields = append(desc.Fields, e.fieldDescriptors(fset, field)...)
	}

	return desc, r.Diagnostics(), nil
}

func (e *Extractor) fieldDescriptors(fset *token.FileSet, field *ast.Field) []schema.FieldDescriptor {
	typ := convertType(fset, field.Type)
	directives := tagDirectives(field.Tag, e.options.TagKey)

	var doc string
	if e.options.IncludeDocs {
		doc = docText(field.Doc, field.Comment)
	}

	if len(field.Names) == 0 {
		return []schema.FieldDescriptor{{
			Name:       embeddedName(field.Type),
			Type:       typ,
			Directives: directives,
			Pos:        fset.Position(field.Type.Pos()),
			Doc:        doc,
			Embedded:   true,
		}}
	}

	out := make([]schema.FieldDescriptor, 0, len(field.Names))
	for _, name := range field.Names {
		if name.Name == "_" {
			continue
		}
		out = append(out, schema.FieldDescriptor{
			Name:       name.Name,
			Type:       typ,
			Directives: append([]string(nil), directives...),
			Pos:        fset.Position(name.Pos()),
			Doc:        doc,
		})
	}
	return out
}

func findType(files []*ast.File, name string) (*ast.File, *ast.GenDecl, *ast.TypeSpec) {
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, s := range gen.Specs {
				spec, ok := s.(*ast.TypeSpec)
				if ok && spec.Name.Name == name {
					return file, gen, spec
				}
			}
		}
	}
	return nil, nil, nil
}

// shapeProblem explains why spec is not a flat named-field record, or returns
// "" when it is.
func shapeProblem(spec *ast.TypeSpec) string {
	if spec.Assign.IsValid() {
		return "type aliases are not supported, declare a struct type"
	}
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return "generic types are not supported"
	}
	switch t := spec.Type.(type) {
	case *ast.StructType:
		return ""
	case *ast.InterfaceType:
		return "interface types are variant-like and have no named fields"
	default:
		return fmt.Sprintf("underlying type %s is not a struct", types.ExprString(t))
	}
}

func convertType(fset *token.FileSet, expr ast.Expr) schema.TypeExpr {
	switch t := expr.(type) {
	case *ast.ParenExpr:
		return convertType(fset, t.X)
	case *ast.StarExpr:
		return schema.PointerTo(convertType(fset, t.X))
	case *ast.ArrayType:
		if t.Len == nil {
			return schema.SliceOf(convertType(fset, t.Elt))
		}
	}
	return schema.Named(exprSource(fset, expr))
}

// exprSource prints expr as written. types.ExprString drops struct tags,
// which changes the identity of anonymous struct types.
func exprSource(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, expr); err != nil {
		return types.ExprString(expr)
	}
	return buf.String()
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return types.ExprString(expr)
}

func tagDirectives(tag *ast.BasicLit, key string) []string {
	if tag == nil {
		return nil
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return nil
	}
	value, ok := reflect.StructTag(raw).Lookup(key)
	if !ok {
		return nil
	}
	return schema.SplitDirectives(value)
}

func fileImports(file *ast.File) []schema.Import {
	if len(file.Imports) == 0 {
		return nil
	}
	out := make([]schema.Import, 0, len(file.Imports))
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := schema.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		out = append(out, imp)
	}
	return out
}

func docText(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g == nil {
			continue
		}
		if text := strings.TrimSpace(g.Text()); text != "" {
			return text
		}
	}
	return ""
}
