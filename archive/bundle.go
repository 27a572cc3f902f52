package archive

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
)

// Entry is a single file of the site bundle.
type Entry struct {
	Name string
	Data []byte
}

// WriteBundle packs entries into zip archive at path. Entries are stored in
// the given order with stamp as modification time. Resulting archive has no
// data descriptors so it could be consumed by streaming unpackers.
func WriteBundle(name string, stamp time.Time, entries ...Entry) (err error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), ".bundle-*.zip")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		err = multierr.Append(err, removeIfExists(tmpName))
	}()

	zw := zip.NewWriter(tmp)
	for _, e := range entries {
		if !isSafePath(e.Name) {
			tmp.Close()
			return fmt.Errorf("bundle entry %q: unsafe path", e.Name)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: stamp,
		})
		if err != nil {
			tmp.Close()
			return fmt.Errorf("unable to add %s: %w", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			tmp.Close()
			return fmt.Errorf("unable to write %s: %w", e.Name, err)
		}
	}
	if err := multierr.Combine(zw.Close(), tmp.Close()); err != nil {
		return fmt.Errorf("unable to finish bundle: %w", err)
	}
	return copyZipWithoutDataDescriptors(tmpName, name)
}

func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func removeIfExists(name string) error {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
