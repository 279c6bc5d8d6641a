package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/pkg/logging"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write builders for the named types",
		Long: `Generate builders for one or more types into a single file.

Typical go:generate usage, next to the struct declaration:

  //go:generate go run github.com/goliatone/go-buildergen/cmd/buildergen generate -t Command

Diagnostics are printed to stderr and make the command exit with status 1.
The output file is not written when any diagnostic is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			ctx := r.logContext(cmd, flags.logJSON)
			gen, err := r.orchestrator()
			if err != nil {
				return err
			}

			res, err := gen.Generate(ctx, r.request())
			if err != nil {
				return err
			}
			if len(res.Diagnostics) > 0 {
				printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
				return errDiagnostics{count: len(res.Diagnostics)}
			}

			if r.cfg.Output == "" {
				_, err := cmd.OutOrStdout().Write(res.Code)
				return err
			}
			if err := os.WriteFile(r.cfg.Output, res.Code, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logging.FromContext(ctx).Debug("wrote output", "path", r.cfg.Output, "bytes", len(res.Code))
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}
