package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"sitec/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return name
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	c := cfg.Compile
	if c.Blocks.Path != "." || c.Blocks.Layout != common.LayoutCurrent {
		t.Errorf("Blocks = %+v", c.Blocks)
	}
	if c.Stylesheet.Href != "/styles.css" || !c.Stylesheet.CacheBust || !c.Stylesheet.Minify || c.Stylesheet.ScopeBlocks {
		t.Errorf("Stylesheet = %+v", c.Stylesheet)
	}
	if len(c.Stylesheet.Targets) != 5 || c.Stylesheet.Targets[0] != "chrome90" {
		t.Errorf("Stylesheet.Targets = %v", c.Stylesheet.Targets)
	}
	if c.Script.Href != "/app.js" || c.Script.Target != "es2019" || !c.Script.Minify || c.Script.SourceMap || c.Script.DebugGlobal != "" {
		t.Errorf("Script = %+v", c.Script)
	}
	if c.HTML.Minify {
		t.Error("HTML.Minify should be off by default")
	}
	if cfg.Server.Listen != "localhost:8080" || cfg.Server.Static != "" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Reporting.Destination == "" {
		t.Error("Reporting destination is empty")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	icons := t.TempDir()
	name := writeConfig(t, `version: 1
compile:
  blocks:
    path: ./lib/../library.zip
    layout: legacy
  icons:
    path: `+icons+`
  stylesheet:
    href: /assets/site.css
    cache_bust: false
    targets: ["chrome100", "safari15"]
    scope_blocks: true
  script:
    href: /assets/site.js
    target: es2020
    sourcemap: true
    debug_global: sitecDebug
  html:
    minify: true
server:
  listen: "127.0.0.1:9000"
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(name)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	c := cfg.Compile
	if c.Blocks.Path != "library.zip" {
		t.Errorf("Blocks.Path = %q, want cleaned path", c.Blocks.Path)
	}
	if c.Blocks.Layout != common.LayoutLegacy {
		t.Errorf("Blocks.Layout = %q", c.Blocks.Layout)
	}
	if c.Icons.Path != icons {
		t.Errorf("Icons.Path = %q", c.Icons.Path)
	}
	if c.Stylesheet.CacheBust || !c.Stylesheet.ScopeBlocks || !c.Stylesheet.Minify {
		t.Errorf("Stylesheet = %+v", c.Stylesheet)
	}
	if strings.Join(c.Stylesheet.Targets, ",") != "chrome100,safari15" {
		t.Errorf("Stylesheet.Targets = %v", c.Stylesheet.Targets)
	}
	if c.Script.Target != "es2020" || !c.Script.SourceMap || c.Script.DebugGlobal != "sitecDebug" {
		t.Errorf("Script = %+v", c.Script)
	}
	if !c.HTML.Minify {
		t.Error("HTML.Minify not set")
	}
	if cfg.Server.Listen != "127.0.0.1:9000" {
		t.Errorf("Server.Listen = %q", cfg.Server.Listen)
	}
	// untouched values keep defaults
	if cfg.Logging.FileLogger.Level != "none" || cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ncompile:\n  html: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown nested field", "version: 1\ncompile:\n  script:\n    bundler: rollup\n"},
		{"version", "version: 2\n"},
		{"layout", "version: 1\ncompile:\n  blocks:\n    layout: flat\n"},
		{"relative href", "version: 1\ncompile:\n  stylesheet:\n    href: styles.css\n"},
		{"empty target", "version: 1\ncompile:\n  stylesheet:\n    targets: [\"chrome90\", \"\"]\n"},
		{"debug global", "version: 1\ncompile:\n  script:\n    debug_global: \"window.x\"\n"},
		{"listen", "version: 1\nserver:\n  listen: \"8080\"\n"},
		{"missing static dir", "version: 1\nserver:\n  static: /nonexistent/static\n"},
		{"console level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfiguration() expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// prepared file must load on its own
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Compile.Blocks.Layout = common.LayoutLegacy
	cfg.Compile.Script.DebugGlobal = "dbg"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "layout: legacy") {
		t.Errorf("Dump() layout not marshaled as text:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Compile.Blocks.Layout != common.LayoutLegacy || cfg2.Compile.Script.DebugGlobal != "dbg" {
		t.Errorf("Dump() lost values: %+v", cfg2.Compile)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}
		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte(`invalid: [yaml`), &Config{}, false); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestCompileConfig_Options(t *testing.T) {
	c := CompileConfig{
		Stylesheet: StylesheetConfig{
			Href:        "/s.css",
			CacheBust:   true,
			Targets:     []string{"firefox100"},
			Minify:      true,
			ScopeBlocks: true,
		},
		Script: ScriptConfig{
			Href:        "/js/a.js",
			Target:      "es2022",
			SourceMap:   true,
			DebugGlobal: "dbg",
		},
		HTML: HTMLConfig{Minify: true},
	}
	o := c.Options()
	if o.StylesheetHref != "/s.css" || o.ScriptHref != "/js/a.js" || !o.CacheBust || !o.MinifyHTML {
		t.Errorf("Options() = %+v", o)
	}
	if len(o.Stylesheet.Targets) != 1 || !o.Stylesheet.Minify || !o.Stylesheet.ScopeBlocks {
		t.Errorf("Options().Stylesheet = %+v", o.Stylesheet)
	}
	if o.Script.Target != "es2022" || o.Script.Minify || !o.Script.SourceMap || o.Script.Global != "dbg" {
		t.Errorf("Options().Script = %+v", o.Script)
	}
}
