package pipeline

import (
	"io/fs"
	"path/filepath"
	"slices"
)

// FindSourceFiles walks root and returns every file whose extension appears
// in extensions, skipping any directory whose base name appears in
// excludedDirs (at any depth). Results are in walk order, which is
// deterministic (lexical) for a given tree.
func FindSourceFiles(root string, extensions, excludedDirs []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(excludedDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(extensions, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
