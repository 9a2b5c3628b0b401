package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/animate"
	"github.com/cbdev/portfolio/internal/hydrate"
	"github.com/cbdev/portfolio/internal/logfields"
	"github.com/cbdev/portfolio/internal/metrics"
	"github.com/cbdev/portfolio/internal/page"
	"github.com/cbdev/portfolio/internal/sections"
	"github.com/cbdev/portfolio/internal/store"
)

// loadPage parses a fresh host tree, runs one hydration pass over it and
// applies the footer chrome. Nodes registered for the entrance animation
// are listed in an inline manifest read by the page observer. A failed
// pass still returns the tree, left as the empty skeleton, together with
// the error.
func (d *deps) loadPage(ctx context.Context, recorder metrics.Recorder, now time.Time) (*html.Node, *hydrate.Result, error) {
	root, err := d.host.Parse()
	if err != nil {
		return nil, nil, err
	}

	reveal := animate.NewManifest(animate.DefaultThreshold)
	opts := []hydrate.Option{
		hydrate.WithSections(sections.Default(d.site.SectionOptions())),
		hydrate.WithRegistrar(reveal),
		hydrate.WithRecorder(recorder),
		hydrate.WithLogger(slog.Default()),
	}
	if d.site.IsolateSections {
		opts = append(opts, hydrate.WithSectionIsolation())
	}

	res, herr := hydrate.New(d.fetcher, opts...).Hydrate(ctx, root)
	if err := reveal.Inject(root); err != nil {
		slog.Error("Unable to write animation manifest", logfields.Pass(res.ID), logfields.Error(err))
	}
	page.ApplyChrome(root, now, d.site.ResumePath)
	return root, res, herr
}

// hydrationRecord converts a pass result for the store.
func hydrationRecord(res *hydrate.Result) store.HydrationRecord {
	rec := store.HydrationRecord{
		PassID:     res.ID,
		State:      res.State.String(),
		Source:     res.Source,
		Faults:     len(res.Faults),
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		rec.Kind = string(hydrate.KindOf(res.Err))
		rec.Error = res.Err.Error()
	}
	return rec
}
