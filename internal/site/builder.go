// Package site builds a full output tree from a directory of Markdown posts.
//
// Each document renders independently and deterministically from its source
// bytes, so a build fans the discovered sources out to a bounded worker pool
// with no coordination beyond result collection.
package site

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	"git.home.luguber.info/inful/postbuilder/internal/docmodel"
	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
	"git.home.luguber.info/inful/postbuilder/internal/layout"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
)

// Builder renders all discovered posts into the output directory.
type Builder struct {
	cfg       *config.Config
	renderer  *markdown.Renderer
	layouts   *layout.Engine
	recorder  metrics.Recorder
	publisher *Publisher
	state     *StateStore
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithPublisher injects a build-event publisher.
func WithPublisher(p *Publisher) Option {
	return func(b *Builder) { b.publisher = p }
}

// WithStateStore injects an incremental-build state store.
func WithStateStore(s *StateStore) Option {
	return func(b *Builder) { b.state = s }
}

// WithHighlighter overrides the code-region highlighter (used by tests and by
// deployments that delegate highlighting to the client).
func WithHighlighter(h markdown.Highlighter) Option {
	return func(b *Builder) {
		b.renderer = markdown.NewRenderer(markdown.Options{
			HighlightStyle: b.cfg.Render.HighlightStyle,
			Highlighter:    h,
		})
	}
}

// NewBuilder constructs a Builder from configuration.
func NewBuilder(cfg *config.Config, opts ...Option) (*Builder, error) {
	layouts, err := layout.NewEngine(layout.Options{Dir: cfg.Content.LayoutsDir})
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:      cfg,
		renderer: markdown.NewRenderer(markdown.Options{HighlightStyle: cfg.Render.HighlightStyle}),
		layouts:  layouts,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// RenderPage renders one parsed document into a final HTML page.
func (b *Builder) RenderPage(doc *docmodel.Document) (string, error) {
	bodyHTML, err := b.renderer.Render(doc.Body())
	if err != nil {
		return "", pberrors.WrapError(err, pberrors.CategoryRender, "failed to render body")
	}

	meta := doc.Metadata()
	data := layout.PageData{
		Site: layout.SiteData{
			Title:   b.cfg.Site.Title,
			BaseURL: b.cfg.Site.BaseURL,
			Author:  b.cfg.Site.Author,
		},
		Title:      meta.Title(),
		Author:     meta.Author(),
		Summary:    meta.Summary(),
		ImageURL:   meta.ImageURL(),
		Topic:      meta.Topic(),
		Date:       meta.Date(),
		Tags:       meta.Tags(),
		Categories: meta.Categories(),
		Params:     meta.Params(),
		Content:    template.HTML(bodyHTML), // #nosec G203 -- renderer output, not raw user input
	}

	return b.layouts.Assemble(meta.Layout(), data)
}

// RenderFile reads, parses, and renders a single file without touching the
// output tree or build state.
func (b *Builder) RenderFile(path string) (string, error) {
	doc, err := docmodel.ParseFile(path)
	if err != nil {
		return "", err
	}
	return b.RenderPage(doc)
}

// PageResult describes the outcome for one source file.
type PageResult struct {
	Source  string
	Output  string
	Skipped bool
	Err     error
}

// Report summarizes one build.
type Report struct {
	BuildID  string
	Pages    int
	Skipped  int
	Failed   int
	Duration time.Duration
	Results  []PageResult
}

// Build renders every discovered source into the output directory.
//
// Per-page render failures are logged and counted but do not stop the build;
// configuration errors (unknown layout) abort it, since every remaining page
// using that layout would fail the same way.
func (b *Builder) Build(ctx context.Context, force bool) (*Report, error) {
	start := time.Now()
	buildID := uuid.NewString()

	slog.Info("Starting build",
		logfields.BuildID(buildID),
		logfields.Path(b.cfg.Content.Dir),
		logfields.Output(b.cfg.Output.Directory))

	sources, err := Discover(b.cfg.Content.Dir)
	if err != nil {
		return nil, err
	}

	if b.cfg.Output.Clean {
		if err := os.RemoveAll(b.cfg.Output.Directory); err != nil {
			return nil, pberrors.WrapError(err, pberrors.CategoryFileSystem, "failed to clean output directory").
				WithContext("dir", b.cfg.Output.Directory)
		}
		force = true
	}
	if err := os.MkdirAll(b.cfg.Output.Directory, 0o750); err != nil {
		return nil, pberrors.WrapError(err, pberrors.CategoryFileSystem, "failed to create output directory").
			WithContext("dir", b.cfg.Output.Directory)
	}

	workers := b.cfg.Render.Workers
	if workers < 1 {
		workers = 1
	}
	b.recorder.SetWorkerCount(workers)

	jobs := make(chan Source)
	results := make(chan PageResult, len(sources))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				results <- b.renderSource(ctx, buildID, src, force)
			}
		}()
	}

feed:
	for _, src := range sources {
		select {
		case jobs <- src:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	report := &Report{BuildID: buildID}
	var fatal error
	for res := range results {
		report.Results = append(report.Results, res)
		switch {
		case res.Err != nil:
			report.Failed++
			b.recorder.IncPageResult(metrics.ResultFailed)
			if pberrors.IsConfiguration(res.Err) && fatal == nil {
				fatal = res.Err
			}
			slog.Error("Page render failed", logfields.Path(res.Source), logfields.Error(res.Err))
		case res.Skipped:
			report.Skipped++
			b.recorder.IncPageResult(metrics.ResultSkipped)
		default:
			report.Pages++
			b.recorder.IncPageResult(metrics.ResultSuccess)
		}
	}

	report.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(report.Duration)

	if err := ctx.Err(); err != nil && fatal == nil {
		fatal = pberrors.WrapError(err, pberrors.CategoryRuntime, "build canceled")
	}

	outcome := "success"
	if fatal != nil {
		outcome = "failed"
	}
	b.recorder.IncBuildOutcome(outcome)

	if b.publisher != nil {
		evt := BuildCompletedEvent{
			BuildID:   buildID,
			Pages:     report.Pages,
			Skipped:   report.Skipped,
			Failed:    report.Failed,
			Duration:  report.Duration,
			Completed: time.Now(),
		}
		if err := b.publisher.BuildCompleted(evt); err != nil {
			slog.Warn("Failed to publish build event", logfields.Error(err))
		}
	}

	slog.Info("Build finished",
		logfields.BuildID(buildID),
		logfields.Pages(report.Pages),
		logfields.Skipped(report.Skipped),
		slog.Int("failed", report.Failed),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))

	return report, fatal
}

func (b *Builder) renderSource(ctx context.Context, buildID string, src Source, force bool) PageResult {
	start := time.Now()

	// #nosec G304 -- src comes from the discovery walk of the content dir.
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return PageResult{Source: src.Path, Err: pberrors.ReadFailed(err, src.Path)}
	}

	doc := docmodel.Parse(content)
	outPath := b.outputPath(src, doc)

	hash := Hash(content)
	if !force && b.state != nil {
		prev, ok, err := b.state.Lookup(ctx, src.Path)
		if err != nil {
			slog.Warn("State lookup failed, rendering anyway", logfields.Path(src.Path), logfields.Error(err))
		} else if ok && prev == hash {
			if _, err := os.Stat(outPath); err == nil {
				return PageResult{Source: src.Path, Output: outPath, Skipped: true}
			}
		}
	}

	page, err := b.RenderPage(doc)
	if err != nil {
		return PageResult{Source: src.Path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return PageResult{Source: src.Path, Err: pberrors.WriteFailed(err, outPath)}
	}
	// #nosec G306 -- rendered pages are public assets
	if err := os.WriteFile(outPath, []byte(page), 0644); err != nil {
		return PageResult{Source: src.Path, Err: pberrors.WriteFailed(err, outPath)}
	}

	if b.state != nil {
		if err := b.state.Record(ctx, src.Path, hash, outPath); err != nil {
			slog.Warn("Failed to record build state", logfields.Path(src.Path), logfields.Error(err))
		}
	}

	if b.publisher != nil {
		evt := PageRenderedEvent{
			BuildID:  buildID,
			Source:   src.Path,
			Output:   outPath,
			Title:    doc.Metadata().Title(),
			Layout:   doc.Metadata().Layout(),
			Rendered: time.Now(),
		}
		if err := b.publisher.PageRendered(evt); err != nil {
			slog.Warn("Failed to publish page event", logfields.Path(src.Path), logfields.Error(err))
		}
	}

	b.recorder.ObservePageDuration(time.Since(start))
	return PageResult{Source: src.Path, Output: outPath}
}

// outputPath maps a source file to its output location. The directory
// structure mirrors the content tree; the file name slugs the title when one
// is present, falling back to the source file name.
func (b *Builder) outputPath(src Source, doc *docmodel.Document) string {
	name := Slugify(doc.Metadata().Title())
	if name == "" {
		base := filepath.Base(src.RelPath)
		name = Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	relDir := filepath.Dir(src.RelPath)
	if relDir == "." {
		return filepath.Join(b.cfg.Output.Directory, name+".html")
	}
	return filepath.Join(b.cfg.Output.Directory, relDir, name+".html")
}
