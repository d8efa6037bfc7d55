// Package layout assembles rendered pages from metadata and body HTML.
//
// Layouts are named html/template documents. Builtins cover the common post
// and page shapes; an optional layouts directory can add or override layouts.
// Selecting a layout name that is not registered is the only hard failure in
// the rendering pipeline.
package layout

import (
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
)

// SiteData carries site-wide fields available to every layout.
type SiteData struct {
	Title   string
	BaseURL string
	Author  string
}

// PageData is the placeholder set substituted into a layout.
type PageData struct {
	Site       SiteData
	Title      string
	Author     string
	Summary    string
	ImageURL   string
	Topic      string
	Date       time.Time
	Tags       []string
	Categories []string
	// Params exposes all frontmatter fields, including unrecognized keys.
	Params map[string]any
	// Content is the rendered body. It is trusted HTML produced by the body
	// renderer, never user-controlled input from elsewhere.
	Content template.HTML
}

var layoutFuncs = template.FuncMap{
	"dateFormat": func(format string, t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(format)
	},
	"join": strings.Join,
}

// Engine holds the registered layouts.
type Engine struct {
	templates map[string]*template.Template
}

// Options configures layout loading.
type Options struct {
	// Dir is an optional directory of *.html layout files. File base names
	// (without extension) become layout names and override builtins.
	Dir string
}

// NewEngine builds an Engine with builtin layouts plus any on-disk layouts.
func NewEngine(opts Options) (*Engine, error) {
	e := &Engine{templates: make(map[string]*template.Template)}

	for name, text := range builtinLayouts {
		tpl, err := template.New(name).Funcs(layoutFuncs).Parse(text)
		if err != nil {
			return nil, pberrors.WrapError(err, pberrors.CategoryInternal, "failed to parse builtin layout").
				WithContext("layout", name)
		}
		e.templates[name] = tpl
	}

	if opts.Dir != "" {
		if err := e.loadDir(opts.Dir); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return pberrors.WrapError(err, pberrors.CategoryConfig, "failed to read layouts directory").
			WithContext("dir", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		path := filepath.Join(dir, entry.Name())

		// #nosec G304 -- path comes from the configured layouts directory.
		content, err := os.ReadFile(path)
		if err != nil {
			return pberrors.ReadFailed(err, path)
		}

		tpl, err := template.New(name).Funcs(layoutFuncs).Parse(string(content))
		if err != nil {
			return pberrors.WrapError(err, pberrors.CategoryConfig, "failed to parse layout").
				WithContext("layout", name).
				WithContext("path", path)
		}
		e.templates[name] = tpl
	}

	return nil
}

// Has reports whether a layout name is registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.templates[name]
	return ok
}

// Names returns all registered layout names, sorted.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Assemble substitutes page data into the named layout and returns the final
// page. An unknown layout name is a fatal configuration error; there is no
// sensible default rendering for it.
func (e *Engine) Assemble(name string, data PageData) (string, error) {
	tpl, ok := e.templates[name]
	if !ok {
		return "", pberrors.UnknownLayout(name)
	}

	var out strings.Builder
	if err := tpl.Execute(&out, data); err != nil {
		return "", pberrors.WrapError(err, pberrors.CategoryLayout, "failed to execute layout").
			WithContext("layout", name)
	}
	return out.String(), nil
}
