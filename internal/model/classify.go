package model

import (
	"strconv"

	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/directive"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const unsupportedEachShape = "each directive requires a collection-typed field"

// Classify parses directives and assigns a slot to every field, in declaration
// order. Problems are reported to r; classification itself never fails.
func Classify(desc schema.TypeDescriptor, opts Options, r *diag.Reporter) []ClassifiedField {
	opts = opts.withDefaults()

	fields := make([]ClassifiedField, 0, len(desc.Fields))
	for _, fd := range desc.Fields {
		parsed := directive.Parse(fd.Name, fd.Pos, fd.Directives)
		r.Add(parsed.Diagnostics...)
		fields = append(fields, classifyField(fd, parsed, r))
	}

	assignNames(fields, opts, r)
	return fields
}

// classifyField applies the decision order: optional wrapper, then a valid
// each directive, then required.
func classifyField(fd schema.FieldDescriptor, parsed directive.Result, r *diag.Reporter) ClassifiedField {
	cf := ClassifiedField{Descriptor: fd, Dropped: parsed.Malformed}

	switch {
	case fd.Type.Shape == schema.ShapePointer:
		cf.Slot = Slot{Kind: SlotOptional, Inner: fd.Type.Inner()}
		cf.StorageType = fd.Type.Expr
		cf.Default = "nil"

	case parsed.Directive != nil:
		cf.Slot = Slot{Kind: SlotRepeated, Inner: fd.Type.Inner(), Accessor: parsed.Directive.Accessor}
		if fd.Type.Shape != schema.ShapeSlice {
			r.Add(diag.UnsupportedFieldShape(fd.Name, fd.Pos, unsupportedEachShape))
			cf.Dropped = true
			return cf
		}
		cf.StorageType = fd.Type.Expr
		cf.Default = fd.Type.Expr + "{}"

	default:
		cf.Slot = Slot{Kind: SlotRequired, Inner: fd.Type}
		cf.StorageType = "*" + fd.Type.Expr
		cf.Default = "nil"
	}
	return cf
}

// assignNames picks method and storage names. A method name that is reserved
// or already claimed by an earlier field drops the later field. Storage names
// avoid every method name, which matters when the first rune has no case.
func assignNames(fields []ClassifiedField, opts Options, r *diag.Reporter) {
	methods := make(map[string]string, len(fields)+len(opts.reserved()))
	for _, name := range opts.reserved() {
		methods[name] = ""
	}

	for i := range fields {
		cf := &fields[i]
		if cf.Dropped {
			continue
		}

		method := ExportedName(cf.Name())
		if cf.Slot.Kind == SlotRepeated {
			method = ExportedName(cf.Slot.Accessor)
		}
		if owner, taken := methods[method]; taken {
			r.Add(diag.AccessorCollision(cf.Name(), cf.Descriptor.Pos, method, owner))
			cf.Dropped = true
			continue
		}
		methods[method] = cf.Name()
		cf.Method = method
	}

	taken := make(map[string]struct{}, len(fields)+len(methods))
	for name := range methods {
		taken[name] = struct{}{}
	}
	for i := range fields {
		cf := &fields[i]
		if cf.Dropped {
			continue
		}
		name := StorageName(cf.Name())
		base := name
		for n := 2; ; n++ {
			if _, ok := taken[name]; !ok {
				break
			}
			name = base + strconv.Itoa(n)
		}
		taken[name] = struct{}{}
		cf.Storage = name
	}
}
