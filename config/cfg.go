package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"sitec/common"
	"sitec/compile"
	"sitec/compile/bundle"
	"sitec/compile/stylesheet"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	BlocksConfig struct {
		Path   string        `yaml:"path" sanitize:"path_clean" validate:"required"`
		Layout common.Layout `yaml:"layout" validate:"oneof=current legacy"`
	}

	IconsConfig struct {
		Path string `yaml:"path,omitempty" validate:"omitempty,dir"`
	}

	StylesheetConfig struct {
		Href        string   `yaml:"href" validate:"required,startswith=/"`
		CacheBust   bool     `yaml:"cache_bust"`
		Targets     []string `yaml:"targets" validate:"dive,required"`
		Minify      bool     `yaml:"minify"`
		ScopeBlocks bool     `yaml:"scope_blocks"`
	}

	ScriptConfig struct {
		Href        string `yaml:"href" validate:"required,startswith=/"`
		Target      string `yaml:"target" validate:"required"`
		Minify      bool   `yaml:"minify"`
		SourceMap   bool   `yaml:"sourcemap"`
		DebugGlobal string `yaml:"debug_global,omitempty" validate:"omitempty,alphanum"`
	}

	HTMLConfig struct {
		Minify bool `yaml:"minify"`
	}

	CompileConfig struct {
		Blocks     BlocksConfig     `yaml:"blocks"`
		Icons      IconsConfig      `yaml:"icons"`
		Stylesheet StylesheetConfig `yaml:"stylesheet"`
		Script     ScriptConfig     `yaml:"script"`
		HTML       HTMLConfig       `yaml:"html"`
	}

	ServerConfig struct {
		Listen string `yaml:"listen" validate:"required,hostname_port"`
		Static string `yaml:"static,omitempty" validate:"omitempty,dir"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Compile   CompileConfig  `yaml:"compile"`
		Server    ServerConfig   `yaml:"server"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Options converts compile section into compiler options.
func (c *CompileConfig) Options() compile.Options {
	return compile.Options{
		StylesheetHref: c.Stylesheet.Href,
		ScriptHref:     c.Script.Href,
		CacheBust:      c.Stylesheet.CacheBust,
		MinifyHTML:     c.HTML.Minify,
		Stylesheet: stylesheet.Options{
			Targets:     c.Stylesheet.Targets,
			Minify:      c.Stylesheet.Minify,
			ScopeBlocks: c.Stylesheet.ScopeBlocks,
		},
		Script: bundle.Options{
			Target:    c.Script.Target,
			Minify:    c.Script.Minify,
			SourceMap: c.Script.SourceMap,
			Global:    c.Script.DebugGlobal,
		},
	}
}

// NOTE: must match yaml field name above, value goes to the runtime verbatim.
const debugGlobalFieldName = "debug_global"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(debugGlobalFieldName),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are accepted, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
