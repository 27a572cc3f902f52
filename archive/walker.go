// Package archive exposes zipped block libraries as file systems and packs
// compiled sites into a single deployable zip.
package archive

import (
	"archive/zip"
	"fmt"
	"iter"
	"path"
	"strings"
)

// files yields regular files with names starting with prefix. Metadata
// added by archivers (__MACOSX, .DS_Store) is skipped. An entry which could
// escape extraction directory ends iteration with error.
func files(r *zip.Reader, prefix string) iter.Seq2[*zip.File, error] {
	return func(yield func(*zip.File, error) bool) {
		for _, f := range r.File {
			if !isSafePath(f.Name) {
				yield(nil, fmt.Errorf("zip entry %q: unsafe path", f.Name))
				return
			}
			if f.FileInfo().IsDir() || isMetadata(f.Name) || !strings.HasPrefix(f.Name, prefix) {
				continue
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

func isMetadata(name string) bool {
	return strings.HasPrefix(name, "__MACOSX/") || path.Base(name) == ".DS_Store"
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
