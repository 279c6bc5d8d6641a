// Package extractor reads record types from OpenAPI component schemas.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-buildergen/internal/model"
	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const (
	extOrder   = "x-order"
	extBuilder = "x-builder"
	extGoType  = "x-go-type"
)

// Extractor implements schema.Extractor using kin-openapi.
type Extractor struct {
	options schema.ExtractorOptions
}

// Ensure the implementation satisfies the public interface.
var _ schema.Extractor = (*Extractor)(nil)

// New constructs an Extractor with the given options.
func New(options schema.ExtractorOptions) schema.Extractor {
	return &Extractor{options: options}
}

// Extract converts components.schemas[typeName] into a TypeDescriptor.
func (e *Extractor) Extract(ctx context.Context, doc schema.Document, typeName string) (schema.TypeDescriptor, diag.List, error) {
	if err := ctx.Err(); err != nil {
		return schema.TypeDescriptor{}, nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return schema.TypeDescriptor{}, nil, fmt.Errorf("openapi extractor: document %s is empty", doc.Location())
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.TypeDescriptor{}, nil, fmt.Errorf("openapi extractor: load document: %w", err)
	}

	pos := token.Position{Filename: doc.Location()}
	r := diag.NewReporter(typeName)
	desc := schema.TypeDescriptor{Name: typeName, Origin: schema.OriginOpenAPI, Pos: pos}

	var ref *openapi3.SchemaRef
	if spec.Components != nil {
		ref = spec.Components.Schemas[typeName]
	}
	if ref == nil || ref.Value == nil {
		r.Reportf(diag.KindStructuralShape, "", pos, "schema %s is not declared in components.schemas", typeName)
		return desc, r.Diagnostics(), nil
	}

	src := ref.Value
	if e.options.IncludeDocs {
		desc.Doc = strings.TrimSpace(firstNonEmpty(src.Description, src.Title))
	}

	properties, required, reason := flatten(src)
	if reason != "" {
		r.Add(diag.StructuralShape(typeName, pos, reason))
		return desc, r.Diagnostics(), nil
	}

	needsTime := false
	taken := map[string]bool{}
	for _, wire := range orderedNames(properties) {
		prop := properties[wire]
		typ := goType(prop)
		if !required[wire] && typ.Shape != schema.ShapeSlice {
			typ = schema.PointerTo(typ)
		}
		if strings.Contains(typ.Expr, "time.Time") {
			needsTime = true
		}

		fd := schema.FieldDescriptor{
			Name:     uniqueName(model.GoFieldName(wire), taken),
			Type:     typ,
			Pos:      pos,
			WireName: wire,
		}
		if prop.Value != nil {
			fd.Directives = builderDirectives(prop.Value.Extensions)
			if e.options.IncludeDocs {
				fd.Doc = strings.TrimSpace(prop.Value.Description)
			}
		}
		desc.Fields = append(desc.Fields, fd)
	}
	if needsTime {
		desc.Imports = []schema.Import{{Path: "time"}}
	}

	return desc, r.Diagnostics(), nil
}

// uniqueName suffixes name with a counter when another property already maps
// to the same Go identifier (user_id and userId both become UserID).
func uniqueName(name string, taken map[string]bool) string {
	out := name
	for n := 2; taken[out]; n++ {
		out = name + strconv.Itoa(n)
	}
	taken[out] = true
	return out
}

// flatten merges allOf members into a single property set. It returns a
// non-empty reason when the schema is not a flat object.
func flatten(src *openapi3.Schema) (map[string]*openapi3.SchemaRef, map[string]bool, string) {
	if len(src.OneOf) > 0 || len(src.AnyOf) > 0 {
		return nil, nil, "oneOf and anyOf schemas are variant-like and have no fixed field set"
	}

	properties := make(map[string]*openapi3.SchemaRef)
	required := make(map[string]bool)
	for _, member := range src.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		props, req, reason := flatten(member.Value)
		if reason != "" {
			return nil, nil, reason
		}
		for name, prop := range props {
			properties[name] = prop
		}
		for name := range req {
			required[name] = true
		}
	}

	typ := firstSchemaType(src.Type)
	if typ != "" && typ != openapi3.TypeObject {
		return nil, nil, fmt.Sprintf("schema type %q is not an object", typ)
	}
	for name, prop := range src.Properties {
		properties[name] = prop
	}
	for _, name := range src.Required {
		required[name] = true
	}
	if len(properties) == 0 && len(src.AllOf) == 0 && typ == "" {
		return nil, nil, "schema declares neither a type nor properties"
	}
	return properties, required, ""
}

func orderedNames(properties map[string]*openapi3.SchemaRef) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := order(properties[names[i]])
		oj, jok := order(properties[names[j]])
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})
	return names
}

func order(ref *openapi3.SchemaRef) (float64, bool) {
	if ref == nil || ref.Value == nil {
		return 0, false
	}
	value, ok := ref.Value.Extensions[extOrder]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func builderDirectives(ext map[string]any) []string {
	value, ok := ext[extBuilder]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case string:
		return schema.SplitDirectives(v)
	case []any:
		var out []string
		for _, item := range v {
			out = append(out, schema.SplitDirectives(fmt.Sprint(item))...)
		}
		return out
	}
	return schema.SplitDirectives(fmt.Sprint(value))
}

// goType maps a property schema onto a Go type expression.
func goType(ref *openapi3.SchemaRef) schema.TypeExpr {
	if ref == nil {
		return schema.Named("any")
	}
	if ref.Value != nil {
		if override, ok := ref.Value.Extensions[extGoType].(string); ok && strings.TrimSpace(override) != "" {
			return parseOverride(strings.TrimSpace(override))
		}
	}
	if ref.Ref != "" {
		return schema.Named(refName(ref.Ref))
	}
	src := ref.Value
	if src == nil {
		return schema.Named("any")
	}

	switch firstSchemaType(src.Type) {
	case openapi3.TypeString:
		switch src.Format {
		case "date-time", "date":
			return schema.Named("time.Time")
		case "byte", "binary":
			return schema.SliceOf(schema.Named("byte"))
		}
		return schema.Named("string")
	case openapi3.TypeInteger:
		switch src.Format {
		case "int32":
			return schema.Named("int32")
		case "int64":
			return schema.Named("int64")
		}
		return schema.Named("int")
	case openapi3.TypeNumber:
		if src.Format == "float" {
			return schema.Named("float32")
		}
		return schema.Named("float64")
	case openapi3.TypeBoolean:
		return schema.Named("bool")
	case openapi3.TypeArray:
		return schema.SliceOf(goType(src.Items))
	case openapi3.TypeObject:
		if src.AdditionalProperties.Schema != nil {
			return schema.Named("map[string]" + goType(src.AdditionalProperties.Schema).Expr)
		}
		return schema.Named("map[string]any")
	}
	return schema.Named("any")
}

// parseOverride keeps pointer and slice structure visible for x-go-type
// values such as "[]net.IP" or "*big.Int".
func parseOverride(expr string) schema.TypeExpr {
	switch {
	case strings.HasPrefix(expr, "*"):
		return schema.PointerTo(parseOverride(expr[1:]))
	case strings.HasPrefix(expr, "[]"):
		return schema.SliceOf(parseOverride(expr[2:]))
	}
	return schema.Named(expr)
}

func refName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
