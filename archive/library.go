package archive

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Library is a block library packed into zip archive. When every entry
// lives under a single top level directory (other than "blocks") the library
// is rooted there, so both "blocks/hero/..." and "lib/blocks/hero/..." layouts
// work.
type Library struct {
	fs.FS
	rc   *zip.ReadCloser
	root string
}

// Open opens zip archive and validates its entries.
func Open(name string) (*Library, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open library archive: %w", err)
	}

	tops := make(map[string]struct{})
	nested := true
	for f, err := range files(&rc.Reader, "") {
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		top, _, found := strings.Cut(f.Name, "/")
		if !found {
			nested = false
		}
		tops[top] = struct{}{}
	}

	lib := &Library{FS: &rc.Reader, rc: rc}
	var top string
	for t := range tops {
		top = t
	}
	if nested && len(tops) == 1 && top != "blocks" {
		lib.root = top
		sub, err := fs.Sub(&rc.Reader, lib.root)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		lib.FS = sub
	}
	return lib, nil
}

// Root returns directory inside archive library is rooted at, empty when
// library occupies the whole archive.
func (l *Library) Root() string {
	return l.root
}

// Files lists names of files under dir relative to library root, sorted.
func (l *Library) Files(dir string) ([]string, error) {
	prefix := path.Join(l.root, dir)
	if prefix != "" && prefix != "." {
		prefix += "/"
	} else {
		prefix = ""
	}
	var names []string
	for f, err := range files(&l.rc.Reader, prefix) {
		if err != nil {
			return nil, err
		}
		names = append(names, strings.TrimPrefix(strings.TrimPrefix(f.Name, l.root), "/"))
	}
	sort.Strings(names)
	return names, nil
}

func (l *Library) Close() error {
	return l.rc.Close()
}
