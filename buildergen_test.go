package buildergen_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-buildergen"
	"github.com/goliatone/go-buildergen/pkg/diag"
)

const commandSource = `package command

type Command struct {
	Executable string
	Args       []string ` + "`builder:\"each=arg\"`" + `
	Env        *string
}
`

func TestGenerateFromSource(t *testing.T) {
	res, err := buildergen.GenerateFromSource(context.Background(), "command.go", []byte(commandSource), "Command")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	code := string(res.Code)
	for _, want := range []string{
		"// Code generated by buildergen from command.go. DO NOT EDIT.",
		"func NewCommandBuilder() *CommandBuilder",
		"func (b *CommandBuilder) Arg(item string) *CommandBuilder",
		`buildererr.MissingField("Command", "Executable")`,
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated code missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateFromSourceReportsStructuralShape(t *testing.T) {
	src := []byte("package shapes\n\ntype Shape interface{ Area() float64 }\n")
	res, err := buildergen.GenerateFromSource(context.Background(), "shapes.go", src, "Shape")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Code != nil {
		t.Fatalf("no code expected for a skipped type")
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != diag.KindStructuralShape {
		t.Fatalf("expected structural_shape, got %v", res.Diagnostics)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(buildergen.EmbeddedTemplates(), "templates/file.tmpl"); err != nil {
		t.Fatalf("embedded template missing: %v", err)
	}
}
