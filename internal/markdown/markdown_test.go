package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPlainRenderer() *Renderer {
	return NewRenderer(Options{Highlighter: PlainHighlighter{}})
}

func TestRender_BasicMarkdown(t *testing.T) {
	html, err := newPlainRenderer().Render([]byte("Hello **world**\n"))
	require.NoError(t, err)
	require.Equal(t, "<p>Hello <strong>world</strong></p>", strings.TrimSpace(html))
}

func TestRender_HeadingsAndLinks(t *testing.T) {
	html, err := newPlainRenderer().Render([]byte("# Animations\n\nSee [the docs](https://angular.io).\n"))
	require.NoError(t, err)
	require.Contains(t, html, "<h1")
	require.Contains(t, html, "Animations</h1>")
	require.Contains(t, html, `<a href="https://angular.io">the docs</a>`)
}

func TestRender_CodeRegion_EscapesAndRecordsLanguage(t *testing.T) {
	body := "{% highlight html %}<div class=\"box\" & more>{% endhighlight %}"

	html, err := newPlainRenderer().Render([]byte(body))
	require.NoError(t, err)
	require.Contains(t, html, `class="language-html"`)
	require.Contains(t, html, "&lt;div class=\"box\" &amp; more&gt;")
	require.NotContains(t, html, "<div class=\"box\"")
}

func TestRender_CodeRegion_NoMarkdownProcessingInside(t *testing.T) {
	body := "{% highlight text %}**not bold**{% endhighlight %}"

	html, err := newPlainRenderer().Render([]byte(body))
	require.NoError(t, err)
	require.Contains(t, html, "**not bold**")
	require.NotContains(t, html, "<strong>")
}

func TestRender_RawRegion_ByteIdenticalPassthrough(t *testing.T) {
	raw := `<iframe width="100%" height="300" src="//jsfiddle.net/demo/embedded/"></iframe>`
	body := "intro\n{% raw %}" + raw + "{% endraw %}\noutro\n"

	html, err := newPlainRenderer().Render([]byte(body))
	require.NoError(t, err)
	require.Contains(t, html, raw)
}

func TestRender_RawRegion_NoMarkdownTransformation(t *testing.T) {
	body := "{% raw %}*stays literal* <u>kept</u>{% endraw %}"

	html, err := newPlainRenderer().Render([]byte(body))
	require.NoError(t, err)
	require.Contains(t, html, "*stays literal* <u>kept</u>")
}

func TestRender_UnterminatedCodeMarker_RendersAsText(t *testing.T) {
	body := "{% highlight go %}\nstill visible text\n"

	html, err := newPlainRenderer().Render([]byte(body))
	require.NoError(t, err)
	require.Contains(t, html, "still visible text")
	require.NotContains(t, html, "language-go")
}

func TestRender_InlineHTMLPassthrough(t *testing.T) {
	// Goldmark is configured unsafe so literal HTML in prose survives.
	html, err := newPlainRenderer().Render([]byte("some <u>underlined</u> text\n"))
	require.NoError(t, err)
	require.Contains(t, html, "<u>underlined</u>")
}

func TestRender_FencedCodeBlock(t *testing.T) {
	html, err := newPlainRenderer().Render([]byte("```go\nfmt.Println(1)\n```\n"))
	require.NoError(t, err)
	require.Contains(t, html, "<pre")
	require.Contains(t, html, "fmt.Println")
}

func TestPlainHighlighter_NoLanguage(t *testing.T) {
	out, err := PlainHighlighter{}.Highlight("", "a < b")
	require.NoError(t, err)
	require.Equal(t, "<pre><code>a &lt; b</code></pre>", out)
}

func TestChromaHighlighter_EmitsClasses(t *testing.T) {
	out, err := NewChromaHighlighter("github").Highlight("go", "package main\n")
	require.NoError(t, err)
	require.Contains(t, out, "chroma")
	require.Contains(t, out, "<pre")
}

func TestChromaHighlighter_UnknownLanguageFallsBack(t *testing.T) {
	out, err := NewChromaHighlighter("github").Highlight("no-such-lang", "plain text\n")
	require.NoError(t, err)
	require.Contains(t, out, "plain text")
}
