// Package config loads buildergen.yaml, the per-directory generation
// settings the CLI reads before applying flag overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/logging"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "buildergen.yaml"

// Config mirrors buildergen.yaml. Exactly one of Source, Package and OpenAPI
// selects the input.
type Config struct {
	// Source is a Go file declaring the types.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Package is a go list pattern such as "." or "./model".
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	// OpenAPI is an OpenAPI 3 document whose components.schemas hold the types.
	OpenAPI string `json:"openapi,omitempty" yaml:"openapi,omitempty"`

	Types    []string `json:"types" yaml:"types"`
	Output   string   `json:"output,omitempty" yaml:"output,omitempty"`
	Renderer string   `json:"renderer,omitempty" yaml:"renderer,omitempty"`

	// OutputPackage overrides the package clause of generated Go code.
	OutputPackage string `json:"outputPackage,omitempty" yaml:"outputPackage,omitempty"`
	RuntimeImport string `json:"runtimeImport,omitempty" yaml:"runtimeImport,omitempty"`
	BuildTags     string `json:"buildTags,omitempty" yaml:"buildTags,omitempty"`
	TagKey        string `json:"tagKey,omitempty" yaml:"tagKey,omitempty"`
	// Preset points at a directive preset document (see orchestrator.PresetTransformer).
	Preset   string `json:"preset,omitempty" yaml:"preset,omitempty"`
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Renderer:      "go",
		RuntimeImport: render.DefaultRuntimeImport,
		TagKey:        schema.DefaultTagKey,
		LogLevel:      string(logging.InfoLevel),
	}
}

// Load reads and validates the config at path. Relative input and output
// paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes JSON or YAML over Default. source names the payload in errors.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}
	cfg = Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks the settings are coherent. A config without any input is
// valid: the CLI falls back to $GOFILE.
func (c Config) Validate() error {
	var errs []error

	inputs := 0
	for _, v := range []string{c.Source, c.Package, c.OpenAPI} {
		if strings.TrimSpace(v) != "" {
			inputs++
		}
	}
	if inputs > 1 {
		errs = append(errs, errors.New("only one of source, package and openapi may be set"))
	}
	for _, name := range c.Types {
		if !token.IsIdentifier(strings.TrimSpace(name)) {
			errs = append(errs, fmt.Errorf("type %q is not a Go identifier", name))
		}
	}
	if c.OutputPackage != "" && !token.IsIdentifier(c.OutputPackage) {
		errs = append(errs, fmt.Errorf("outputPackage %q is not a Go identifier", c.OutputPackage))
	}
	if c.TagKey != "" && strings.ContainsAny(c.TagKey, " :\"") {
		errs = append(errs, fmt.Errorf("tagKey %q is not a valid struct tag key", c.TagKey))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Input returns the schema.Source selected by the config, or nil when none is
// set.
func (c Config) Input() schema.Source {
	switch {
	case c.Source != "":
		return schema.SourceFromFile(c.Source)
	case c.Package != "":
		return schema.SourceFromPackage(c.Package)
	case c.OpenAPI != "":
		return schema.SourceFromOpenAPI(c.OpenAPI)
	}
	return nil
}

// RenderOptions maps the output settings onto render options.
func (c Config) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Package:       c.OutputPackage,
		RuntimeImport: c.RuntimeImport,
		BuildTags:     c.BuildTags,
	}
}

// Write stores the config as YAML.
func (c Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Source = resolve(c.Source)
	c.OpenAPI = resolve(c.OpenAPI)
	c.Output = resolve(c.Output)
	c.Preset = resolve(c.Preset)
}
