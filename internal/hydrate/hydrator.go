// Package hydrate runs the one-shot pass that fetches the content document
// and populates a host page with every section.
package hydrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/animate"
	"github.com/cbdev/portfolio/internal/content"
	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/logfields"
	"github.com/cbdev/portfolio/internal/metrics"
	"github.com/cbdev/portfolio/internal/sections"
)

// State is a hydration pass state.
type State int

const (
	Idle State = iota
	Fetching
	Parsing
	Rendering
	Hydrated
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Parsing:
		return "parsing"
	case Rendering:
		return "rendering"
	case Hydrated:
		return "hydrated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool { return s == Hydrated || s == Failed }

// Result describes one hydration pass.
type Result struct {
	ID       string
	State    State
	Source   string
	Document *content.Document
	// Mounted counts the nodes written per mount point.
	Mounted  map[string]int
	Animated []*html.Node
	// Faults holds the sections skipped under section isolation.
	Faults   []*RenderFault
	Err      error
	Duration time.Duration
}

// Option configures a Hydrator.
type Option func(*Hydrator)

// WithSections replaces the default section list.
func WithSections(s []sections.Section) Option {
	return func(h *Hydrator) { h.sections = s }
}

// WithRegistrar sets the animation registrar notified after a successful pass.
func WithRegistrar(r animate.Registrar) Option {
	return func(h *Hydrator) { h.registrar = r }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(h *Hydrator) {
		if r != nil {
			h.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hydrator) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSectionIsolation skips a faulty section instead of aborting the pass.
func WithSectionIsolation() Option {
	return func(h *Hydrator) { h.isolate = true }
}

// WithStateListener is called on every state transition.
func WithStateListener(fn func(State)) Option {
	return func(h *Hydrator) { h.listener = fn }
}

// Hydrator fetches, parses, renders and mounts a content document.
type Hydrator struct {
	fetcher   Fetcher
	sections  []sections.Section
	registrar animate.Registrar
	recorder  metrics.Recorder
	logger    *slog.Logger
	isolate   bool
	listener  func(State)
}

// New creates a Hydrator that renders sections.Default with zero options
// unless WithSections is given.
func New(fetcher Fetcher, opts ...Option) *Hydrator {
	h := &Hydrator{
		fetcher:  fetcher,
		sections: sections.Default(sections.Options{}),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type pass struct {
	h      *Hydrator
	result *Result
	start  time.Time
	log    *slog.Logger
}

// Hydrate runs one pass against root, the parsed host page. On failure the
// page is left exactly as it was and the returned Result carries the error.
func (h *Hydrator) Hydrate(ctx context.Context, root *html.Node) (*Result, error) {
	p := &pass{
		h:      h,
		result: &Result{ID: uuid.NewString(), State: Idle, Source: h.fetcher.Source(), Mounted: map[string]int{}},
		start:  time.Now(),
	}
	p.log = h.logger.With(logfields.Pass(p.result.ID), logfields.Source(p.result.Source))

	p.transition(Fetching)
	payload, err := h.fetcher.Fetch(ctx)
	if err != nil {
		if KindOf(err) != KindFetch {
			err = &FetchError{Source: p.result.Source, Err: err}
		}
		return p.fail(err)
	}

	p.transition(Parsing)
	doc, err := content.Decode(payload.Body, payload.Format)
	if err != nil {
		return p.fail(&ParseError{Source: p.result.Source, Err: err})
	}
	p.result.Document = doc

	p.transition(Rendering)
	if err := p.render(root, doc); err != nil {
		return p.fail(err)
	}

	p.transition(Hydrated)
	p.result.Animated = animate.Register(h.registrar, root)
	p.finish()
	p.log.Info("Hydration complete",
		logfields.Count(len(p.result.Animated)),
		logfields.DurationMS(float64(p.result.Duration.Microseconds())/1000))
	return p.result, nil
}

type staged struct {
	container *html.Node
	mount     string
	nodes     []*html.Node
}

// render builds every section first and mounts only once all builds have
// settled, so a fault under fail-fast leaves the page untouched.
func (p *pass) render(root *html.Node, doc *content.Document) error {
	var plan []staged
	for _, s := range p.h.sections {
		frags, err := renderSection(s, doc)
		var ready []staged
		if err == nil {
			ready, err = resolve(root, s.Name, frags)
		}
		if err != nil {
			fault := asFault(s.Name, err)
			if !p.h.isolate {
				p.h.recorder.IncSectionResult(s.Name, metrics.ResultFault)
				return fault
			}
			p.h.recorder.IncSectionResult(s.Name, metrics.ResultSkipped)
			p.log.Warn("Section skipped", logfields.Section(s.Name), logfields.Error(fault))
			p.result.Faults = append(p.result.Faults, fault)
			continue
		}
		p.h.recorder.IncSectionResult(s.Name, metrics.ResultSuccess)
		plan = append(plan, ready...)
	}

	for _, st := range plan {
		dom.Mount(st.container, st.nodes...)
		p.result.Mounted[st.mount] = len(st.nodes)
	}
	return nil
}

func renderSection(s sections.Section, doc *content.Document) (frags []sections.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Render(doc)
}

// resolve pairs fragments with their containers. Optional mounts that are
// absent are dropped; absent required mounts fault the section.
func resolve(root *html.Node, section string, frags []sections.Fragment) ([]staged, error) {
	out := make([]staged, 0, len(frags))
	for _, f := range frags {
		container := dom.FindByID(root, f.Mount)
		if container == nil {
			if f.Required {
				return nil, &RenderFault{Section: section, Mount: f.Mount, Err: ErrMissingMount}
			}
			continue
		}
		out = append(out, staged{container: container, mount: f.Mount, nodes: f.Nodes})
	}
	return out, nil
}

func asFault(section string, err error) *RenderFault {
	var fault *RenderFault
	if errors.As(err, &fault) {
		return fault
	}
	return &RenderFault{Section: section, Err: err}
}

func (p *pass) transition(s State) {
	p.result.State = s
	p.log.Debug("Hydration state", logfields.State(s.String()))
	if p.h.listener != nil {
		p.h.listener(s)
	}
}

func (p *pass) fail(err error) (*Result, error) {
	p.result.Err = err
	p.transition(Failed)
	p.finish()
	kind := KindOf(err)
	p.h.recorder.IncFailure(string(kind))
	p.log.Error("Hydration failed", logfields.Kind(string(kind)), logfields.Error(err))
	return p.result, err
}

func (p *pass) finish() {
	p.result.Duration = time.Since(p.start)
	state := p.result.State.String()
	p.h.recorder.IncPassOutcome(state)
	p.h.recorder.ObservePassDuration(state, p.result.Duration)
}
