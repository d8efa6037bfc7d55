package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	"git.home.luguber.info/inful/postbuilder/internal/docmodel"
	"git.home.luguber.info/inful/postbuilder/internal/git"
	"git.home.luguber.info/inful/postbuilder/internal/linkcheck"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/preview"
	"git.home.luguber.info/inful/postbuilder/internal/site"
	"git.home.luguber.info/inful/postbuilder/internal/version"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Build struct {
		Output     string `short:"o" help:"Output directory override"`
		Force      bool   `short:"f" help:"Render every page even when unchanged"`
		CheckLinks bool   `help:"Audit the rendered output for dangling local links"`
	} `cmd:"" help:"Build the site from the content directory"`

	Render struct {
		File   string `arg:"" help:"Markdown file to render"`
		Output string `short:"o" help:"Write the page here instead of stdout"`
	} `cmd:"" help:"Render a single Markdown file to an HTML page"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Preview struct {
		Port         int           `short:"p" help:"HTTP port to serve on" default:"8080"`
		RebuildEvery time.Duration `help:"Periodic full rebuild interval (0 disables)"`
	} `cmd:"" help:"Serve the site locally and rebuild when content changes"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.String()})

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if CLI.Build.Output != "" {
			cfg.Output.Directory = CLI.Build.Output
		}
		if err := runBuild(cfg, CLI.Build.Force, CLI.Build.CheckLinks); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "render <file>":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runRender(cfg, CLI.Render.File, CLI.Render.Output); err != nil {
			slog.Error("Render failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
	case "preview":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runPreview(cfg, CLI.Preview.Port, CLI.Preview.RebuildEvery); err != nil {
			slog.Error("Preview failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

func runBuild(cfg *config.Config, force, checkLinks bool) error {
	slog.Info("Starting site build",
		logfields.Output(cfg.Output.Directory),
		"content", cfg.Content.Dir,
		"force", force)

	if cfg.Content.Repo != "" {
		slog.Info("Syncing content repository",
			logfields.Repository(cfg.Content.Repo),
			"branch", cfg.Content.Branch)
		client := git.NewClient(cfg.Content.Dir)
		if err := client.Sync(cfg.Content.Repo, cfg.Content.Branch); err != nil {
			return err
		}
	}

	builder, cleanup, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := builder.Build(context.Background(), force)
	if err != nil {
		return err
	}

	slog.Info("Build finished",
		logfields.BuildID(report.BuildID),
		logfields.Pages(report.Pages),
		logfields.Skipped(report.Skipped),
		"failed", report.Failed,
		logfields.DurationMS(float64(report.Duration.Milliseconds())))

	if checkLinks {
		broken, err := linkcheck.Audit(cfg.Output.Directory)
		if err != nil {
			return err
		}
		for _, b := range broken {
			slog.Warn("Dangling local link", "page", b.Page, "target", b.Target)
		}
		slog.Info("Link audit finished", "broken", len(broken))
	}
	return nil
}

func runRender(cfg *config.Config, file, output string) error {
	builder, cleanup, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := docmodel.ParseFile(file)
	if err != nil {
		return err
	}
	page, err := builder.RenderPage(doc)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Print(page)
		return nil
	}
	return os.WriteFile(output, []byte(page), 0o644)
}

func runInit(configPath string, force bool) error {
	slog.Info("Initializing configuration", logfields.Path(configPath), "force", force)
	return config.Init(configPath, force)
}

func runPreview(cfg *config.Config, port int, rebuildEvery time.Duration) error {
	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	builder, cleanup, err := newBuilder(cfg, site.WithRecorder(recorder))
	if err != nil {
		return err
	}
	defer cleanup()

	server := preview.NewServer(cfg, builder, port, registry)
	server.RebuildEvery = rebuildEvery

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

// newBuilder wires the optional state store and event publisher in from the
// configuration. The returned cleanup closes whatever was opened.
func newBuilder(cfg *config.Config, opts ...site.Option) (*site.Builder, func(), error) {
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Render.StateDB != "" {
		store, err := site.NewStateStore(cfg.Render.StateDB)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close state store", logfields.Error(err))
			}
		})
		opts = append(opts, site.WithStateStore(store))
	}

	if cfg.Publish != nil && cfg.Publish.NATSURL != "" {
		publisher, err := site.NewPublisher(cfg.Publish.NATSURL, cfg.Publish.SubjectPrefix)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, publisher.Close)
		opts = append(opts, site.WithPublisher(publisher))
	}

	builder, err := site.NewBuilder(cfg, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return builder, cleanup, nil
}
