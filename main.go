package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"github.com/cbdev/portfolio/internal/config"
	"github.com/cbdev/portfolio/internal/hydrate"
	"github.com/cbdev/portfolio/internal/page"
	"github.com/cbdev/portfolio/internal/sections"
)

// CLI is the root command. Site flags are shared by every subcommand.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Data     string `short:"d" env:"DATA_PATH" default:"${data_path}" help:"Content document: a local path or an http(s) URL."`
	Host     string `env:"HOST_PATH" help:"Host markup file (defaults to the embedded page)."`
	Tagline  string `env:"TAGLINE" default:"${tagline}" help:"Hero tagline."`
	Resume   string `env:"RESUME_PATH" default:"${resume_path}" help:"Link used by resume buttons without an href."`
	Location string `name:"fallback-location" env:"FALLBACK_LOCATION" default:"${fallback_location}" help:"Hero location when no institution has one."`
	Isolate  bool   `name:"isolate-sections" env:"ISOLATE_SECTIONS" help:"Skip a faulty section instead of abandoning the whole page."`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Serve the portfolio over HTTP"`
	Render RenderCmd `cmd:"" help:"Render the page once to a file"`
	Check  CheckCmd  `cmd:"" help:"Hydrate the page and report what each section produced"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Site returns the validated site settings.
func (c *CLI) Site() (config.Site, error) {
	site := config.Site{
		DataPath:         c.Data,
		HostPath:         c.Host,
		ResumePath:       c.Resume,
		Tagline:          c.Tagline,
		FallbackLocation: c.Location,
		IsolateSections:  c.Isolate,
	}
	if err := site.Validate(); err != nil {
		return config.Site{}, err
	}
	return site, nil
}

// deps is what every command needs to run a hydration pass.
type deps struct {
	site    config.Site
	host    *page.Host
	fetcher hydrate.Fetcher
}

func (c *CLI) deps() (*deps, error) {
	site, err := c.Site()
	if err != nil {
		return nil, err
	}
	host, err := page.LoadHost(site.HostPath)
	if err != nil {
		return nil, err
	}
	return &deps{site: site, host: host, fetcher: hydrate.NewFetcher(site.DataPath, http.DefaultClient)}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("portfolio"),
		kong.Description(Description),
		kong.UsageOnError(),
		kong.Vars{
			"data_path":         DataPath,
			"tagline":           Tagline,
			"resume_path":       ResumePath,
			"fallback_location": sections.DefaultFallbackLocation,
		},
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
