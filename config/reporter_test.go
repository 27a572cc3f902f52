package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readReport(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for i, f := range zr.File {
		if i == 0 && f.Name != "MANIFEST" {
			t.Errorf("first report entry = %s, want MANIFEST", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %s, want %s", r.Name(), conf.Destination)
	}

	logName := filepath.Join(dir, "sitec.log")
	if err := os.WriteFile(logName, []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(filepath.Join(out, "assets"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(out, "index.html"), []byte("<html>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(out, "assets", "app.js"), []byte("js"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("sitec.log", logName)
	r.Store("missing.log", filepath.Join(dir, "missing.log"))
	r.StoreData("plan.txt", []byte("plan"))
	if err := r.StoreCopy("output", out); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// snapshot must not see later changes, plain Store must
	if err := os.WriteFile(filepath.Join(out, "index.html"), []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(logName, []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := readReport(t, conf.Destination)
	want := map[string]string{
		"sitec.log":            "second",
		"plan.txt":             "plan",
		"output/index.html":    "<html>",
		"output/assets/app.js": "js",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("report %s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["missing.log"]; ok {
		t.Error("absent file should be skipped")
	}
	manifest := got["MANIFEST"]
	for _, name := range []string{"missing.log", "output", "plan.txt", "sitec.log"} {
		if !strings.Contains(manifest, "\t"+name+"\t") {
			t.Errorf("MANIFEST misses %s:\n%s", name, manifest)
		}
	}
}

func TestReport_StoreCopyVersioned(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(name, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	r := &Report{entries: make(map[string]entry), name: filepath.Join(dir, "r.zip")}
	for range 2 {
		if err := r.StoreCopy("a", name); err != nil {
			t.Fatalf("StoreCopy() error = %v", err)
		}
	}
	if len(r.entries) != 2 {
		t.Errorf("entries = %d, want 2", len(r.entries))
	}
	if err := r.StoreCopy("b", filepath.Join(dir, "nope")); err == nil {
		t.Error("StoreCopy() of missing path expected error")
	}
}

func TestReport_Overwrite(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("log", "/tmp/a.log")
	r.Store("log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("Store() with different path should panic")
		}
	}()
	r.Store("log", "/tmp/b.log")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report: %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy() on nil report: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
}

func TestReporterConfig_PrepareFallback(t *testing.T) {
	conf := ReporterConfig{Destination: filepath.Join(t.TempDir(), "missing", "dir", "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	defer os.Remove(r.Name())
	if !strings.Contains(filepath.Base(r.Name()), "sitec-report.") {
		t.Errorf("Name() = %s, want temporary report", r.Name())
	}
}
