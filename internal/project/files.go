package project

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var skippedDirs = map[string]bool{
	"__pycache__":   true,
	"site-packages": true,
	".git":          true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	"node_modules":  true,
}

// DiscoverFiles walks root and returns every Python source file, sorted.
// Stub files shadow their runtime module: when both mod.py and mod.pyi
// exist, only the stub is returned. Hidden directories, virtual
// environments and any path matching an exclude glob are skipped.
func DiscoverFiles(root string, excludes []string) ([]string, error) {
	found := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			name := d.Name()
			if path != root && (skippedDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			if excluded(rel, excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".py" && ext != ".pyi" {
			return nil
		}
		if excluded(rel, excludes) {
			return nil
		}
		stem := strings.TrimSuffix(path, ext)
		if prev, ok := found[stem]; ok {
			// .pyi wins over .py
			if filepath.Ext(prev) == ".pyi" {
				return nil
			}
		}
		found[stem] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(found))
	for _, path := range found {
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}

func excluded(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		if ok, err := filepath.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, filepath.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
