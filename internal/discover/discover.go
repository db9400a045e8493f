// Package discover locates rock descriptor files under a directory tree.
package discover

import (
	"fmt"
	"io/fs"

	"github.com/rockplan/rockplan/internal/fsops"
)

// Directories that never contain rocks worth building.
var defaultIgnoreDirs = map[string]struct{}{
	".git":   {},
	".svn":   {},
	".hg":    {},
	"_build": {},
}

// Descriptors walks root and returns the paths of every file named filename,
// skipping VCS and build-output directories. filepath.WalkDir walks in
// lexical order, so the result is deterministic for a given tree.
func Descriptors(root, filename string, ops fsops.Ops) ([]string, error) {
	absRoot, err := ops.Path.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discover: resolve root: %w", err)
	}

	fi, err := ops.OS.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("discover: %s is not a directory", root)
	}

	var found []string
	err = ops.Walker.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if _, skip := defaultIgnoreDirs[d.Name()]; skip && path != absRoot {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == filename {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover: walk %s: %w", root, err)
	}

	return found, nil
}
