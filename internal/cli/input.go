package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen"
	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/logging"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// goFileEnv is set by `go generate` to the file holding the directive.
const goFileEnv = "GOFILE"

// inputFlags are shared by generate and inspect.
type inputFlags struct {
	configPath    string
	source        string
	pkg           string
	openapi       string
	types         []string
	output        string
	renderer      string
	outputPackage string
	runtimeImport string
	buildTags     string
	tagKey        string
	preset        string
	logLevel      string
	logJSON       bool
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "config file (default ./"+config.DefaultFileName+" when present)")
	fl.StringVarP(&f.source, "source", "s", "", "Go file declaring the types (default $GOFILE)")
	fl.StringVarP(&f.pkg, "package", "p", "", "Go package pattern to load instead of a single file")
	fl.StringVar(&f.openapi, "openapi", "", "OpenAPI 3 document whose component schemas describe the types")
	fl.StringSliceVarP(&f.types, "type", "t", nil, "type names to generate builders for (repeatable, comma separated)")
	fl.StringVarP(&f.output, "output", "o", "", "output file (stdout when empty)")
	fl.StringVarP(&f.renderer, "renderer", "r", "", "renderer: go, htmldoc or json")
	fl.StringVar(&f.outputPackage, "output-package", "", "package clause for generated Go code")
	fl.StringVar(&f.runtimeImport, "runtime-import", "", "import path of the missing-field error helpers")
	fl.StringVar(&f.buildTags, "tags", "", "build constraint written at the top of generated files")
	fl.StringVar(&f.tagKey, "tag-key", "", "struct tag key holding builder directives")
	fl.StringVar(&f.preset, "preset", "", "directive preset file (JSON or YAML)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fl.BoolVar(&f.logJSON, "log-json", false, "log as JSON")
}

// resolved is the outcome of merging the config file, flags and environment.
type resolved struct {
	cfg config.Config
	// dir anchors package patterns; empty means the working directory.
	dir string
	// fromGoFile marks a source taken from $GOFILE.
	fromGoFile bool
}

func (f *inputFlags) resolve(cmd *cobra.Command) (resolved, error) {
	var out resolved

	cfg, dir, err := f.loadConfig()
	if err != nil {
		return out, err
	}
	out.dir = dir

	changed := cmd.Flags().Changed
	// An input flag replaces whatever input the file selected.
	if changed("source") || changed("package") || changed("openapi") {
		cfg.Source, cfg.Package, cfg.OpenAPI = f.source, f.pkg, f.openapi
		out.dir = ""
	}
	if changed("type") {
		cfg.Types = f.types
	}
	overrides := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"output", &cfg.Output, f.output},
		{"renderer", &cfg.Renderer, f.renderer},
		{"output-package", &cfg.OutputPackage, f.outputPackage},
		{"runtime-import", &cfg.RuntimeImport, f.runtimeImport},
		{"tags", &cfg.BuildTags, f.buildTags},
		{"tag-key", &cfg.TagKey, f.tagKey},
		{"preset", &cfg.Preset, f.preset},
		{"log-level", &cfg.LogLevel, f.logLevel},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			*o.dst = o.val
		}
	}

	if cfg.Input() == nil {
		goFile := os.Getenv(goFileEnv)
		if goFile == "" {
			return out, errors.New("no input: pass --source, --package or --openapi, or run via go generate")
		}
		cfg.Source = goFile
		out.fromGoFile = true
		if cfg.Output == "" {
			cfg.Output = strings.TrimSuffix(goFile, filepath.Ext(goFile)) + "_builder.go"
		}
	}
	if len(cfg.Types) == 0 {
		return out, errors.New("no types: pass --type or list types in the config file")
	}
	if err := cfg.Validate(); err != nil {
		return out, err
	}
	out.cfg = cfg
	return out, nil
}

func (f *inputFlags) loadConfig() (config.Config, string, error) {
	path := f.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err != nil {
			return config.Default(), "", nil
		}
		path = config.DefaultFileName
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, filepath.Dir(path), nil
}

// logContext returns the command context carrying the configured logger. The
// orchestrator picks it up from there.
func (r resolved) logContext(cmd *cobra.Command, json bool) context.Context {
	level, _ := logging.ParseLevel(r.cfg.LogLevel)
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Output = cmd.ErrOrStderr()
	lc.JSON = json
	return logging.ContextWithLogger(cmd.Context(), logging.NewLogger(lc))
}

func (r resolved) orchestrator() (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLoader(buildergen.NewLoader(schema.WithDir(r.dir))),
		orchestrator.WithExtractorOptions(schema.WithTagKey(r.cfg.TagKey)),
	}
	if r.cfg.Preset != "" {
		data, err := os.ReadFile(r.cfg.Preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", r.cfg.Preset, err)
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	return orchestrator.New(options...), nil
}

func (r resolved) request() orchestrator.Request {
	return orchestrator.Request{
		Source:        r.cfg.Input(),
		TypeNames:     r.cfg.Types,
		Renderer:      r.cfg.Renderer,
		RenderOptions: r.cfg.RenderOptions(),
	}
}
