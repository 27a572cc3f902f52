package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommands(t *testing.T) {
	want := map[string]bool{"compile": true, "serve": true, "icons": true, "dumpconfig": true}
	for _, c := range commands() {
		if !want[c.Name] {
			t.Errorf("unexpected command %q", c.Name)
		}
		if c.Action == nil {
			t.Errorf("command %q has no action", c.Name)
		}
		delete(want, c.Name)
	}
	if len(want) != 0 {
		t.Errorf("missing commands: %v", want)
	}
}

func TestWriteConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sitec.yaml")
	if err := writeConfig(name, []byte("version: 1\n")); err != nil {
		t.Fatalf("writeConfig() error = %v", err)
	}
	if data, err := os.ReadFile(name); err != nil || string(data) != "version: 1\n" {
		t.Errorf("config = %q, %v", data, err)
	}
	if err := writeConfig(filepath.Join(t.TempDir(), "no", "such", "dir.yaml"), nil); err == nil {
		t.Error("writeConfig() into missing directory expected error")
	}
}
