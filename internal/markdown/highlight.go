package markdown

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter turns (language, code) pairs into highlighted HTML. The renderer
// treats it as a pure function; implementations must not hold state across
// calls.
type Highlighter interface {
	Highlight(lang, code string) (string, error)
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// PlainHighlighter emits the code verbatim inside a <pre> block, with the
// language recorded in the class attribute for client-side highlighting.
// Only `&`, `<` and `>` are entity-escaped; no Markdown processing occurs.
type PlainHighlighter struct{}

func (PlainHighlighter) Highlight(lang, code string) (string, error) {
	escaped := htmlEscaper.Replace(code)
	if lang == "" {
		return fmt.Sprintf("<pre><code>%s</code></pre>", escaped), nil
	}
	return fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>", lang, escaped), nil
}

// ChromaHighlighter highlights code server-side using chroma.
type ChromaHighlighter struct {
	style string
}

// NewChromaHighlighter creates a highlighter using the named chroma style.
// Unknown style names fall back to chroma's default.
func NewChromaHighlighter(style string) *ChromaHighlighter {
	return &ChromaHighlighter{style: style}
}

func (h *ChromaHighlighter) Highlight(lang, code string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(h.style)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise code block: %w", err)
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("format code block: %w", err)
	}
	return buf.String(), nil
}
