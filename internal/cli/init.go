package cli

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/internal/prompt"
	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/renderers/htmldoc"
	"github.com/goliatone/go-buildergen/pkg/renderers/jsonmodel"
)

var inputKinds = []string{"Go file", "Go package", "OpenAPI document"}

var rendererNames = []string{golang.Name, htmldoc.Name, jsonmodel.Name}

// InitCmd returns the init command. A nil driver prompts on the terminal.
func InitCmd(driver prompt.Driver) *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.DefaultFileName + " interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := driver
			if d == nil {
				d = prompt.NewSurveyDriver(survey.WithStdio(os.Stdin, os.Stdout, os.Stderr))
			}
			ctx := cmd.Context()

			if _, err := os.Stat(path); err == nil && !force {
				ok, err := d.Confirm(ctx, prompt.ConfirmConfig{
					Message: fmt.Sprintf("%s exists. Overwrite?", path),
				})
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing written.")
					return nil
				}
			}

			cfg, err := askConfig(cmd, d)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Write(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
			fmt.Fprintln(cmd.OutOrStdout(), "  buildergen generate")
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", config.DefaultFileName, "config file to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite without asking")
	return cmd
}

func askConfig(cmd *cobra.Command, d prompt.Driver) (config.Config, error) {
	ctx := cmd.Context()
	cfg := config.Default()

	kind, err := d.Select(ctx, prompt.SelectConfig{
		Message: "Where are the types declared?",
		Options: inputKinds,
	})
	if err != nil {
		return cfg, err
	}
	kind = max(kind, 0)

	defaultInput := os.Getenv(goFileEnv)
	switch kind {
	case 1:
		defaultInput = "."
	case 2:
		defaultInput = "openapi.yaml"
	}
	input, err := d.Input(ctx, prompt.InputConfig{
		Message:   inputKinds[kind] + " path",
		Default:   defaultInput,
		Validator: nonEmpty,
	})
	if err != nil {
		return cfg, err
	}
	switch kind {
	case 0:
		cfg.Source = input
	case 1:
		cfg.Package = input
	case 2:
		cfg.OpenAPI = input
	}

	types, err := d.Input(ctx, prompt.InputConfig{
		Message:   "Type names (comma separated)",
		Validator: validTypeList,
	})
	if err != nil {
		return cfg, err
	}
	cfg.Types = splitList(types)

	r, err := d.Select(ctx, prompt.SelectConfig{
		Message: "Renderer",
		Options: rendererNames,
	})
	if err != nil {
		return cfg, err
	}
	cfg.Renderer = rendererNames[max(r, 0)]

	output, err := d.Input(ctx, prompt.InputConfig{
		Message: "Output file (empty for stdout)",
		Default: defaultOutput(cfg),
	})
	if err != nil {
		return cfg, err
	}
	cfg.Output = strings.TrimSpace(output)

	if kind == 2 && cfg.Renderer == golang.Name {
		pkg, err := d.Input(ctx, prompt.InputConfig{
			Message:   "Package name for generated code",
			Validator: validIdentifier,
		})
		if err != nil {
			return cfg, err
		}
		cfg.OutputPackage = pkg
	}
	return cfg, nil
}

func defaultOutput(cfg config.Config) string {
	if cfg.Renderer != golang.Name {
		return ""
	}
	if cfg.Source != "" {
		return strings.TrimSuffix(cfg.Source, filepath.Ext(cfg.Source)) + "_builder.go"
	}
	if len(cfg.Types) > 0 {
		return strings.ToLower(cfg.Types[0]) + "_builder.go"
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func validIdentifier(s string) error {
	if !token.IsIdentifier(strings.TrimSpace(s)) {
		return fmt.Errorf("%q is not a Go identifier", s)
	}
	return nil
}

func validTypeList(s string) error {
	names := splitList(s)
	if len(names) == 0 {
		return errors.New("at least one type name is required")
	}
	for _, name := range names {
		if err := validIdentifier(name); err != nil {
			return err
		}
	}
	return nil
}
