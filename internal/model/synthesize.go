package model

import (
	"fmt"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Synthesize lays out the builder for classified fields: storage, defaults,
// accessors and Build steps, all in declaration order.
func Synthesize(desc schema.TypeDescriptor, fields []ClassifiedField, opts Options) BuilderModel {
	opts = opts.withDefaults()

	m := BuilderModel{
		TypeName:    desc.Name,
		BuilderName: desc.Name + opts.BuilderSuffix,
		Constructor: opts.ConstructorPrefix + desc.Name + opts.BuilderSuffix,
		BuildMethod: opts.BuildMethod,
		Package:     desc.Package,
		Origin:      desc.Origin,
		Doc:         desc.Doc,
		Imports:     append([]schema.Import(nil), desc.Imports...),
		Fields:      fields,
		Storage:     []StorageField{},
		Accessors:   []Accessor{},
		Steps:       []BuildStep{},
	}

	declared := map[string]bool{}
	for _, cf := range fields {
		// A dropped duplicate cannot be declared a second time.
		if desc.Origin == schema.OriginOpenAPI && !(cf.Dropped && declared[cf.Name()]) {
			declared[cf.Name()] = true
			m.Declaration = append(m.Declaration, declField(cf))
		}
		if cf.Dropped {
			continue
		}

		m.Storage = append(m.Storage, StorageField{
			Name:    cf.Storage,
			Type:    cf.StorageType,
			Default: cf.Default,
		})
		m.Accessors = append(m.Accessors, accessorFor(desc.Name, m.BuilderName, cf))
		step := BuildStep{Field: cf.Name(), Storage: cf.Storage, Kind: cf.Slot.Kind}
		if cf.Slot.Kind == SlotRepeated {
			step.ItemType = cf.Slot.Inner.Expr
		}
		m.Steps = append(m.Steps, step)
	}
	return m
}

func accessorFor(typeName, builderName string, cf ClassifiedField) Accessor {
	a := Accessor{
		Method:    cf.Method,
		Field:     cf.Name(),
		Storage:   cf.Storage,
		ParamType: cf.Slot.Inner.Expr,
	}
	switch cf.Slot.Kind {
	case SlotRepeated:
		a.Kind = AccessorAppend
		a.Param = "item"
		a.Doc = fmt.Sprintf("%s appends item to %s.%s and returns the %s for chaining.", cf.Method, typeName, cf.Name(), builderName)
	case SlotOptional:
		a.Kind = AccessorSet
		a.Param = "v"
		a.Doc = fmt.Sprintf("%s sets the optional %s.%s field and returns the %s for chaining.", cf.Method, typeName, cf.Name(), builderName)
	default:
		a.Kind = AccessorSet
		a.Param = "v"
		a.Doc = fmt.Sprintf("%s sets the required %s.%s field and returns the %s for chaining.", cf.Method, typeName, cf.Name(), builderName)
	}
	return a
}

func declField(cf ClassifiedField) DeclField {
	fd := cf.Descriptor
	df := DeclField{Name: fd.Name, Type: fd.Type.Expr, Doc: fd.Doc}
	if fd.WireName != "" {
		opt := ""
		if cf.Slot.Kind != SlotRequired {
			opt = ",omitempty"
		}
		df.Tag = fmt.Sprintf("`json:%q`", fd.WireName+opt)
	}
	return df
}
