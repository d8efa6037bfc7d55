// Package linkcheck audits rendered HTML output for dangling local links.
package linkcheck

import (
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
)

// Broken describes one dangling local reference.
type Broken struct {
	// Page is the HTML file containing the link, relative to the output dir.
	Page string
	// Target is the link destination as written.
	Target string
}

// ExtractRefs returns the href/src destinations of anchors and images in an
// HTML document, in document order.
func ExtractRefs(r io.Reader) ([]string, error) {
	var refs []string

	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return refs, nil
			}
			return refs, tokenizer.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			var attr string
			switch token.Data {
			case "a":
				attr = "href"
			case "img":
				attr = "src"
			default:
				continue
			}
			for _, a := range token.Attr {
				if a.Key == attr && a.Val != "" {
					refs = append(refs, a.Val)
				}
			}
		}
	}
}

// Audit walks the output directory and reports local links whose target file
// does not exist. Absolute URLs, fragments, and mailto links are ignored.
func Audit(outputDir string) ([]Broken, error) {
	var broken []Broken

	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}

		// #nosec G304 -- path comes from the output directory walk.
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		refs, err := ExtractRefs(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		for _, ref := range refs {
			if !isLocal(ref) {
				continue
			}
			if !targetExists(outputDir, rel, ref) {
				broken = append(broken, Broken{Page: rel, Target: ref})
			}
		}
		return nil
	})
	if err != nil {
		return nil, pberrors.WrapError(err, pberrors.CategoryFileSystem, "failed to audit links").
			WithContext("dir", outputDir)
	}

	return broken, nil
}

func isLocal(ref string) bool {
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func targetExists(outputDir, page, ref string) bool {
	target := ref
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return true
	}

	var path string
	if strings.HasPrefix(target, "/") {
		path = filepath.Join(outputDir, filepath.FromSlash(target))
	} else {
		path = filepath.Join(outputDir, filepath.Dir(page), filepath.FromSlash(target))
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	// A directory target counts when it holds an index page.
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(path, "index.html"))
		return err == nil
	}
	return true
}
