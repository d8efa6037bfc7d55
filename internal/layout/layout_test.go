package layout

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
)

func TestNewEngine_Builtins(t *testing.T) {
	engine, err := NewEngine(Options{})
	require.NoError(t, err)
	require.True(t, engine.Has("post"))
	require.True(t, engine.Has("page"))
	require.Equal(t, []string{"page", "post"}, engine.Names())
}

func TestAssemble_PostLayout(t *testing.T) {
	engine, err := NewEngine(Options{})
	require.NoError(t, err)

	out, err := engine.Assemble("post", PageData{
		Site:       SiteData{Title: "My Blog"},
		Title:      "Angular 2 Animations",
		Author:     "lyes",
		Date:       time.Date(2016, 4, 8, 0, 0, 0, 0, time.UTC),
		Tags:       []string{"angular", "animation"},
		Categories: []string{"web"},
		Content:    template.HTML("<p>Hello <strong>world</strong></p>"),
	})
	require.NoError(t, err)

	require.Contains(t, out, "<title>Angular 2 Animations | My Blog</title>")
	require.Contains(t, out, "<h1>Angular 2 Animations</h1>")
	require.Contains(t, out, "<p>Hello <strong>world</strong></p>")
	require.Contains(t, out, `datetime="2016-04-08"`)
	require.Contains(t, out, "<li>angular</li>")
}

func TestAssemble_ContentNotEscaped(t *testing.T) {
	engine, err := NewEngine(Options{})
	require.NoError(t, err)

	out, err := engine.Assemble("page", PageData{
		Content: template.HTML(`<iframe src="/demo"></iframe>`),
	})
	require.NoError(t, err)
	require.Contains(t, out, `<iframe src="/demo"></iframe>`)
}

func TestAssemble_UnknownLayout_IsConfigurationError(t *testing.T) {
	engine, err := NewEngine(Options{})
	require.NoError(t, err)

	out, err := engine.Assemble("fancy", PageData{Title: "x"})
	require.Error(t, err)
	require.Empty(t, out, "no partial render on unknown layout")
	require.True(t, pberrors.IsConfiguration(err))
}

func TestNewEngine_DirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := `<html><body class="custom">{{ .Content }}</body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.html"), []byte(custom), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minimal.html"), []byte("{{ .Title }}"), 0o644))

	engine, err := NewEngine(Options{Dir: dir})
	require.NoError(t, err)
	require.True(t, engine.Has("minimal"))

	out, err := engine.Assemble("post", PageData{Content: template.HTML("<p>x</p>")})
	require.NoError(t, err)
	require.Contains(t, out, `class="custom"`)

	out, err = engine.Assemble("minimal", PageData{Title: "Hi"})
	require.NoError(t, err)
	require.Equal(t, "Hi", out)
}

func TestNewEngine_MissingDir_Fails(t *testing.T) {
	_, err := NewEngine(Options{Dir: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	require.True(t, pberrors.IsConfiguration(err))
}
