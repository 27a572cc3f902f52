package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/maruel/natural"

	"sitec/archive"
	"sitec/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter. Destination is created right
// away, when it is not writable report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	return &Report{entries: make(map[string]entry), name: name}, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	// snapshot taken by StoreData or StoreCopy, names are relative to entry name
	files []archive.Entry
}

// Report accumulates information necessary to prepare full debug report:
// log files, configuration, compile plan and produced artifacts.
// NOTE: not to be used concurrently.
type Report struct {
	entries map[string]entry
	name    string
}

// Close writes report archive. Nil report is valid and does nothing, this
// means no report has been requested.
func (r *Report) Close() error {
	if r == nil || r.name == "" {
		return nil
	}
	return r.finalize()
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Store remembers file or directory to be read when report is finalized.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}
	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData puts data into report under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.entries[name] = entry{
		stamp: time.Now(),
		files: []archive.Entry{{Data: data}},
	}
}

// StoreCopy snapshots file or directory content at the time of the call.
// Repeated names are versioned with timestamps, so the same path may be
// stored several times.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}
	e := entry{stamp: time.Now(), original: path}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	e.actual = abs

	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	if e.files, err = snapshot(abs); err != nil {
		return err
	}
	r.entries[name] = e
	return nil
}

// snapshot reads regular file or every regular file under directory.
func snapshot(name string) ([]archive.Entry, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.Mode().IsRegular() {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return []archive.Entry{{Data: data}}, nil
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []archive.Entry
	err = filepath.WalkDir(name, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			// links, sockets, directories
			return nil
		}
		rel, err := filepath.Rel(name, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, archive.Entry{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	return files, err
}

// finalize writes report archive: MANIFEST followed by stored items in the
// same order. Absent files are skipped.
func (r *Report) finalize() error {
	names, manifest := prepareManifest(r.entries)
	files := []archive.Entry{{Name: "MANIFEST", Data: manifest.Bytes()}}

	for _, name := range names {
		e := r.entries[name]
		content := e.files
		if content == nil && e.actual != "" {
			var err error
			if content, err = snapshot(e.actual); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return err
			}
		}
		for _, f := range content {
			files = append(files, archive.Entry{Name: path.Join(name, f.Name), Data: f.Data})
		}
	}
	return archive.WriteBundle(r.name, time.Now(), files...)
}

func prepareManifest(entries map[string]entry) ([]string, *bytes.Buffer) {
	now := time.Now()

	buf := new(bytes.Buffer)
	if len(entries) == 0 {
		return nil, buf
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))

	for _, k := range keys {
		e := entries[k]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), k, e.original, e.actual)
	}
	return keys, buf
}
