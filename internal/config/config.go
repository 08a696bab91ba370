// Package config loads the data-driven equivalent of merilang/cli.py's
// run-time flags (--debug, --ir, --no-semantic, error language) from a
// YAML file, since argument parsing itself is out of scope.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"merilang.dev/pkg"
)

// Config mirrors the toggles cli.py threads through a single run.
type Config struct {
	Lang           string `yaml:"lang"`            // "english", "hindi", or "bilingual"
	Debug          bool   `yaml:"debug"`           // dump tokens/AST before running
	EmitIR         bool   `yaml:"emit_ir"`         // run the IR generator and print its dump
	RunSemantic    bool   `yaml:"run_semantic"`    // skip with --no-semantic equivalent
	RunInterpreter bool   `yaml:"run_interpreter"`
}

// Default mirrors cli.py's defaults: semantic analysis and interpretation
// both run, diagnostics are bilingual, IR and debug dumping are off.
func Default() Config {
	return Config{Lang: "bilingual", RunSemantic: true, RunInterpreter: true}
}

// Load reads and parses a YAML config file. A missing file is not an
// error — it is treated the same as passing no flags, returning Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config file")
	}
	return cfg, nil
}

// ErrorLanguage resolves the configured language string to the pkg enum,
// defaulting to bilingual for an unrecognized or empty value.
func (c Config) ErrorLanguage() meri.ErrorLanguage {
	switch c.Lang {
	case "english":
		return meri.ErrorLanguageEnglish
	case "hindi":
		return meri.ErrorLanguageHindi
	default:
		return meri.ErrorLanguageBilingual
	}
}

// CompilerOptions adapts this Config to the shape pkg.Compiler expects.
func (c Config) CompilerOptions() meri.CompilerOptions {
	return meri.CompilerOptions{
		Lang:           c.ErrorLanguage(),
		EmitIR:         c.EmitIR,
		RunSemantic:    c.RunSemantic,
		RunInterpreter: c.RunInterpreter,
	}
}
