// Package cli wires the buildergen commands onto cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/internal/prompt"
)

// Option customises the command tree.
type Option func(*settings)

type settings struct {
	version string
	driver  prompt.Driver
}

// WithVersion sets the version reported by --version.
func WithVersion(v string) Option {
	return func(s *settings) {
		s.version = v
	}
}

// WithPromptDriver replaces the survey driver used by init.
func WithPromptDriver(d prompt.Driver) Option {
	return func(s *settings) {
		s.driver = d
	}
}

// NewRootCmd builds the buildergen command tree.
func NewRootCmd(options ...Option) *cobra.Command {
	s := &settings{version: "dev"}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	root := &cobra.Command{
		Use:     "buildergen",
		Short:   "Generate builder types for Go structs",
		Version: s.version,
		Long: `buildergen reads Go struct declarations (or OpenAPI component schemas) and
writes a companion builder for each type: a fluent setter per field, append
accessors for fields tagged builder:"each=<name>", and a Build method that
reports the first missing required field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(GenerateCmd())
	root.AddCommand(InspectCmd())
	root.AddCommand(InitCmd(s.driver))
	return root
}
