// Package markdown renders post bodies to HTML.
//
// Bodies are split into tagged regions first (see SplitRegions): ordinary
// Markdown text, highlighted code regions, and raw passthrough regions. Text
// goes through goldmark, code through a Highlighter, and raw regions are
// emitted untouched. Rendering is total: every input produces some output.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Options configures a Renderer.
type Options struct {
	// HighlightStyle names the chroma style used for fenced code blocks and,
	// when Highlighter is nil, the default chroma highlighter.
	HighlightStyle string

	// Highlighter renders highlighted code regions. Defaults to a chroma
	// highlighter with HighlightStyle.
	Highlighter Highlighter
}

// Renderer converts Markdown bodies into HTML.
type Renderer struct {
	md          goldmark.Markdown
	highlighter Highlighter
}

// NewRenderer builds a Renderer.
//
// Unsafe HTML rendering is enabled deliberately: post bodies embed literal
// HTML (iframes, inline tags) that must survive Markdown processing.
func NewRenderer(opts Options) *Renderer {
	style := opts.HighlightStyle
	if style == "" {
		style = "github"
	}

	hl := opts.Highlighter
	if hl == nil {
		hl = NewChromaHighlighter(style)
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)

	return &Renderer{md: md, highlighter: hl}
}

// Render converts a post body (frontmatter already removed) into HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var out strings.Builder

	for _, seg := range SplitRegions(string(body)) {
		switch seg.Kind {
		case KindRaw:
			// Byte-identical passthrough; no escaping, no Markdown.
			out.WriteString(seg.Content)
		case KindCode:
			html, err := r.highlighter.Highlight(seg.Lang, seg.Content)
			if err != nil {
				return "", fmt.Errorf("highlight region: %w", err)
			}
			out.WriteString(html)
		default:
			var buf bytes.Buffer
			if err := r.md.Convert([]byte(seg.Content), &buf); err != nil {
				return "", fmt.Errorf("convert markdown: %w", err)
			}
			out.WriteString(buf.String())
		}
	}

	return out.String(), nil
}
