package model_test

import (
	"testing"

	"github.com/goliatone/go-buildergen/pkg/diag"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func TestNewBuilderAppliesNamingOptions(t *testing.T) {
	desc := schema.TypeDescriptor{
		Name: "Server",
		Fields: []schema.FieldDescriptor{
			{Name: "Addr", Type: schema.Named("string")},
			{Name: "Finish", Type: schema.Named("bool")},
			{Name: "Reset", Type: schema.Named("bool")},
		},
	}

	b := model.NewBuilder(
		model.WithBuilderSuffix("Spec"),
		model.WithConstructorPrefix("Make"),
		model.WithBuildMethod("Finish"),
		model.WithReservedMethods("Reset"),
	)
	m, err := b.Build(desc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if m.BuilderName != "ServerSpec" || m.Constructor != "MakeServerSpec" || m.BuildMethod != "Finish" {
		t.Fatalf("unexpected names: %s %s %s", m.BuilderName, m.Constructor, m.BuildMethod)
	}
	if got := m.Diagnostics.Kinds(); len(got) != 2 || got[0] != diag.KindAccessorCollision || got[1] != diag.KindAccessorCollision {
		t.Fatalf("expected two collisions, got %v", m.Diagnostics)
	}
	if len(m.Accessors) != 1 || m.Accessors[0].Method != "Addr" {
		t.Fatalf("unexpected accessors: %+v", m.Accessors)
	}
}

func TestDecoratorFunc(t *testing.T) {
	var d model.Decorator = model.DecoratorFunc(func(m *model.BuilderModel) error {
		m.Doc = "decorated"
		return nil
	})
	m := model.BuilderModel{}
	if err := d.Decorate(&m); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if m.Doc != "decorated" {
		t.Fatalf("decorator did not run")
	}
}
