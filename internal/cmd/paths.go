package cmd

import (
	"os"
	"path/filepath"
	"strings"
)

// pathsOverlap reports whether one path is equal to or nested inside the
// other. Relative paths are resolved against the working directory.
func pathsOverlap(path1, path2 string) bool {
	return isWithin(path1, path2) || isWithin(path2, path1)
}

// isWithin reports whether child is parent or lies below it.
func isWithin(child, parent string) bool {
	c, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	p, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// resolveIn returns p unchanged when absolute, otherwise joined to dir.
func resolveIn(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// cleanDir removes everything inside dir but keeps dir itself.
func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
