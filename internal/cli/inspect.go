package cli

import (
	"github.com/spf13/cobra"
)

// InspectCmd returns the inspect command.
func InspectCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the classified builder model as JSON",
		Long: `Inspect runs extraction and classification without emitting Go code and
prints the resulting models, including per-field slot kinds and diagnostics.
Diagnostics are also printed to stderr but do not change the exit status.`,
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
			res, err := gen.Inspect(ctx, r.request())
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
			_, err = cmd.OutOrStdout().Write(res.Code)
			return err
		},
	}
	flags.bind(cmd)
	return cmd
}
