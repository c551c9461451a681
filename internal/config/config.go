// Package config loads the ember tool settings from TOML or YAML files.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ember "go.ember.dev/pkg"
)

// Format is the configuration file format.
type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

const (
	BuilderProduction = "production"
	BuilderTracing    = "tracing"
	BuilderNull       = "null"

	EmitSource = "source"
	EmitLLVM   = "llvm"
)

// Config holds the tool settings. The zero value is not valid; use Default.
type Config struct {
	Builder     string `toml:"builder" yaml:"builder"`
	Emit        string `toml:"emit" yaml:"emit"`
	TraceOutput string `toml:"trace_output" yaml:"trace_output"`
	Function    string `toml:"function" yaml:"function"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Builder:     BuilderProduction,
		Emit:        EmitSource,
		TraceOutput: "stderr",
		Function:    "main",
		LogLevel:    "info",
	}
}

// Load reads path, detecting the format from its extension. Unset keys keep
// their defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config: empty path")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}

	return cfg, nil
}

// Parse decodes content in the given format over the defaults and validates
// the result. FormatAuto is treated as TOML.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, errors.Wrap(err, "parse toml")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

func (c *Config) Validate() error {
	switch c.Builder {
	case BuilderProduction, BuilderTracing, BuilderNull:
	default:
		return errors.Errorf("invalid builder %q: expected %s, %s or %s",
			c.Builder, BuilderProduction, BuilderTracing, BuilderNull)
	}

	switch c.Emit {
	case EmitSource, EmitLLVM:
	default:
		return errors.Errorf("invalid emit %q: expected %s or %s", c.Emit, EmitSource, EmitLLVM)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log_level %q", c.LogLevel)
	}

	if strings.TrimSpace(c.Function) == "" {
		return errors.New("function name cannot be empty")
	}

	return nil
}

// NodeFactory returns the builder selected by the configuration. Traces go
// to trace.
func (c *Config) NodeFactory(trace io.Writer) ember.NodeFactory {
	switch c.Builder {
	case BuilderTracing:
		return ember.NewTracingBuilder(trace)
	case BuilderNull:
		return ember.NewNullBuilder()
	default:
		return ember.NewProductionBuilder()
	}
}

// OpenTrace opens the trace destination. The returned close function is
// always safe to call.
func (c *Config) OpenTrace() (io.Writer, func() error, error) {
	switch c.TraceOutput {
	case "", "stderr":
		return os.Stderr, func() error { return nil }, nil
	case "stdout":
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(c.TraceOutput)
	if err != nil {
		return nil, nil, errors.Wrap(err, "config: open trace output")
	}

	return f, f.Close, nil
}
