package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/goliatone/go-buildergen/pkg/diag"
)

// errDiagnostics makes the process exit non-zero after diagnostics have been
// printed.
type errDiagnostics struct {
	count int
}

func (e errDiagnostics) Error() string {
	if e.count == 1 {
		return "1 diagnostic reported"
	}
	return fmt.Sprintf("%d diagnostics reported", e.count)
}

func kindColor(k diag.Kind) *color.Color {
	switch k {
	case diag.KindStructuralShape:
		return color.New(color.FgRed, color.Bold)
	case diag.KindAccessorCollision:
		return color.New(color.FgHiMagenta)
	default:
		return color.New(color.FgYellow)
	}
}

func printDiagnostics(w io.Writer, list diag.List) {
	for _, d := range list {
		loc := ""
		if d.Pos.IsValid() {
			loc = color.New(color.Faint).Sprint(d.Pos.String()) + ": "
		}
		subject := "type " + d.Type
		if d.Field != "" {
			subject = "field " + d.Type + "." + d.Field
		}
		fmt.Fprintf(w, "%s%s %s: %s\n", loc, kindColor(d.Kind).Sprint(string(d.Kind)), subject, d.Message)
	}
}
