package site

import (
	"io/fs"
	"path/filepath"
	"strings"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
)

// Source is one discovered content file.
type Source struct {
	// Path is the absolute (or workdir-relative) path of the file.
	Path string
	// RelPath is the path relative to the content directory.
	RelPath string
}

// Discover walks the content directory and returns all Markdown sources in
// walk order. Hidden directories (dot-prefixed) are skipped.
func Discover(contentDir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != contentDir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		sources = append(sources, Source{Path: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return nil, pberrors.WrapError(err, pberrors.CategoryFileSystem, "failed to discover content").
			WithContext("dir", contentDir)
	}

	return sources, nil
}
