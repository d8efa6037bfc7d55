package layout

// Builtin layout templates. On-disk layouts with the same name override these.
var builtinLayouts = map[string]string{
	"post": postLayout,
	"page": pageLayout,
}

const postLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}{{ if .Site.Title }} | {{ .Site.Title }}{{ end }}</title>
  {{ if .Summary }}<meta name="description" content="{{ .Summary }}">{{ end }}
  {{ if .ImageURL }}<meta property="og:image" content="{{ .ImageURL }}">{{ end }}
</head>
<body>
  <article>
    <header>
      <h1>{{ .Title }}</h1>
      <p class="meta">
        {{ if not .Date.IsZero }}<time datetime="{{ dateFormat "2006-01-02" .Date }}">{{ dateFormat "Jan 2, 2006" .Date }}</time>{{ end }}
        {{ if .Author }}<span class="author">{{ .Author }}</span>{{ end }}
      </p>
      {{ if .Categories }}
      <ul class="categories">
        {{ range .Categories }}<li>{{ . }}</li>{{ end }}
      </ul>
      {{ end }}
    </header>
    <div class="content">
      {{ .Content }}
    </div>
    {{ if .Tags }}
    <footer>
      <ul class="tags">
        {{ range .Tags }}<li>{{ . }}</li>{{ end }}
      </ul>
    </footer>
    {{ end }}
  </article>
</body>
</html>`

const pageLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}{{ if .Site.Title }} | {{ .Site.Title }}{{ end }}</title>
</head>
<body>
  <main>
    {{ if .Title }}<h1>{{ .Title }}</h1>{{ end }}
    <div class="content">
      {{ .Content }}
    </div>
  </main>
</body>
</html>`
