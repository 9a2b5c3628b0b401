package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cbdev/portfolio/internal/hydrate"
	"github.com/cbdev/portfolio/internal/logfields"
	"github.com/cbdev/portfolio/internal/metrics"
	"github.com/cbdev/portfolio/internal/page"
)

// RenderCmd writes the hydrated page to a file.
type RenderCmd struct {
	Out    string `short:"o" default:"public/index.html" help:"Output file."`
	Format string `enum:"html,markdown" default:"html" help:"Output format (html or markdown)."`
	Watch  bool   `short:"w" help:"Re-render whenever the content document or host markup changes."`
}

func (r *RenderCmd) Run(cli *CLI) error {
	d, err := cli.deps()
	if err != nil {
		return err
	}

	if err := r.renderOnce(context.Background(), d); err != nil {
		if !r.Watch {
			return err
		}
		slog.Error("Render failed", logfields.Error(err))
	}
	if !r.Watch {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return r.watch(ctx, d)
}

// renderOnce runs one pass and writes the result. A failed pass still
// writes the skeleton so the output file is never stale content.
func (r *RenderCmd) renderOnce(ctx context.Context, d *deps) error {
	root, res, herr := d.loadPage(ctx, metrics.NoopRecorder{}, time.Now())
	if root == nil {
		return herr
	}

	var (
		body []byte
		err  error
	)
	switch r.Format {
	case "markdown":
		body, err = page.Markdown(root)
	default:
		body, err = page.Render(root)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(r.Out, body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", r.Out, err)
	}
	slog.Info("Rendered page", logfields.Path(r.Out), logfields.State(res.State.String()))
	return herr
}

func (r *RenderCmd) watch(ctx context.Context, d *deps) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := watchTargets(d)
	if len(targets) == 0 {
		slog.Warn("Nothing local to watch; content is remote and the host page is embedded")
		<-ctx.Done()
		return nil
	}
	dirs := map[string]bool{}
	for _, t := range targets {
		dirs[filepath.Dir(t)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	b := &rebuilder{render: func(ctx context.Context) error { return r.rerender(ctx, d) }}
	const debounce = 300 * time.Millisecond
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched(targets, event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { b.run(ctx) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// rerender reloads the host markup, which may have changed too, and
// renders again.
func (r *RenderCmd) rerender(ctx context.Context, d *deps) error {
	if d.site.HostPath != "" {
		host, err := page.LoadHost(d.site.HostPath)
		if err != nil {
			return fmt.Errorf("reloading host markup: %w", err)
		}
		d.host = host
	}
	return r.renderOnce(ctx, d)
}

// rebuilder runs one render at a time. A debounced change that fires while
// a render is in flight waits for it to finish.
type rebuilder struct {
	mu     sync.Mutex
	render func(context.Context) error
}

func (b *rebuilder) run(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err := b.render(ctx); err != nil {
		slog.Error("Render failed", logfields.Error(err))
	}
}

// watchTargets lists the local files a render depends on.
func watchTargets(d *deps) []string {
	var targets []string
	if f, ok := d.fetcher.(*hydrate.FileFetcher); ok {
		targets = append(targets, filepath.Clean(f.Path))
	}
	if d.site.HostPath != "" {
		targets = append(targets, filepath.Clean(d.site.HostPath))
	}
	return targets
}

func watched(targets []string, name string) bool {
	name = filepath.Clean(name)
	for _, t := range targets {
		if t == name {
			return true
		}
	}
	return false
}

// CheckCmd runs one pass and reports what every mount received.
type CheckCmd struct{}

func (c *CheckCmd) Run(cli *CLI) error {
	d, err := cli.deps()
	if err != nil {
		return err
	}
	_, res, herr := d.loadPage(context.Background(), metrics.NoopRecorder{}, time.Now())
	if res != nil {
		report(os.Stdout, res)
	}
	return herr
}

// report prints a pass summary.
func report(w io.Writer, res *hydrate.Result) {
	fmt.Fprintf(w, "pass %s: %s from %s in %s\n", res.ID, res.State, res.Source, res.Duration.Round(time.Millisecond))

	mounts := make([]string, 0, len(res.Mounted))
	for m := range res.Mounted {
		mounts = append(mounts, m)
	}
	sort.Strings(mounts)
	for _, m := range mounts {
		fmt.Fprintf(w, "  #%-18s %d\n", m, res.Mounted[m])
	}
	for _, f := range res.Faults {
		fmt.Fprintf(w, "  skipped: %v\n", f)
	}
	if res.Err != nil {
		fmt.Fprintf(w, "  %s error: %v\n", hydrate.KindOf(res.Err), res.Err)
	}
}
