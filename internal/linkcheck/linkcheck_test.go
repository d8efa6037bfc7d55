package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractRefs(t *testing.T) {
	doc := `<html><body>
<a href="/about.html">about</a>
<a href="https://example.com">external</a>
<img src="/images/pic.png">
<a>no href</a>
</body></html>`

	refs, err := ExtractRefs(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"/about.html", "https://example.com", "/images/pic.png"}, refs)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAudit_ReportsDanglingLocalLinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<a href="/posts/hello.html">ok</a> <a href="/posts/missing.html">bad</a>`)
	writeFile(t, dir, "posts/hello.html", `<a href="https://example.com">external ok</a> <a href="#section">fragment ok</a>`)

	broken, err := Audit(dir)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "index.html", broken[0].Page)
	require.Equal(t, "/posts/missing.html", broken[0].Target)
}

func TestAudit_RelativeLinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/a.html", `<a href="b.html">sibling</a> <a href="gone.html">missing</a>`)
	writeFile(t, dir, "posts/b.html", `ok`)

	broken, err := Audit(dir)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "gone.html", broken[0].Target)
}

func TestAudit_DirectoryWithIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<a href="/posts/">listing</a>`)
	writeFile(t, dir, "posts/index.html", `ok`)

	broken, err := Audit(dir)
	require.NoError(t, err)
	require.Empty(t, broken)
}
