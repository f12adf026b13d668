package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/hardlinker/internal/naming"
)

// Discover lists the files under root whose extension is in exts. It
// descends at most maxDepth directory levels below root (0 = root only)
// and skips every directory whose path contains one of the exclude
// substrings, root included. Extensions match case-sensitively.
//
// Files are returned in directory-listing order. Unreadable subdirectories
// and broken symlinks with a wanted extension do not stop the walk: they are joined into the
// returned error alongside whatever files were found. An unreadable root
// returns no files.
func Discover(root string, exts, exclude []string, maxDepth int) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[e] = true
	}

	var (
		files []string
		errs  []error
	)
	if err := walk(root, want, exclude, maxDepth, &files, &errs); err != nil {
		return nil, err
	}
	return files, errors.Join(errs...)
}

// walk visits dir with depth levels of recursion left. A non-nil return
// means dir itself could not be listed.
func walk(dir string, want map[string]bool, exclude []string, depth int, files *[]string, errs *[]error) error {
	if excluded(dir, exclude) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil {
				if want[naming.Ext(e.Name())] {
					*errs = append(*errs, fmt.Errorf("broken symlink %s: %w", path, err))
				}
				continue
			}
			isDir = fi.IsDir()
		}

		if isDir {
			if depth > 0 {
				if err := walk(path, want, exclude, depth-1, files, errs); err != nil {
					*errs = append(*errs, err)
				}
			}
			continue
		}
		if want[naming.Ext(e.Name())] {
			*files = append(*files, path)
		}
	}
	return nil
}

func excluded(path string, exclude []string) bool {
	for _, x := range exclude {
		if x != "" && strings.Contains(path, x) {
			return true
		}
	}
	return false
}
