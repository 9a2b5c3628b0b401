package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/config"
	"github.com/cbdev/portfolio/internal/hydrate"
	"github.com/cbdev/portfolio/internal/logfields"
	"github.com/cbdev/portfolio/internal/metrics"
	"github.com/cbdev/portfolio/internal/page"
	"github.com/cbdev/portfolio/internal/store"
	"github.com/cbdev/portfolio/internal/theme"
)

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	Port          int    `short:"p" env:"PORT" default:"8080" help:"Port to listen on."`
	DB            string `name:"db" env:"DB_PATH" default:"portfolio.db" help:"sqlite database for visitor and hydration records."`
	AdminUsername string `env:"ADMIN_USERNAME" help:"Admin login name."`
	AdminPassword string `env:"ADMIN_PASSWORD" help:"Admin password."`
	Static        string `default:"./static" help:"Directory served at /static."`
	Assets        string `default:"./assets" help:"Directory served at /assets."`
	Templates     string `default:"templates/*" help:"Glob of admin and privacy templates."`
}

func (s *ServeCmd) Run(cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d, err := cli.deps()
	if err != nil {
		return err
	}

	// Default credentials for development (set them in production)
	if s.AdminUsername == "" {
		s.AdminUsername = "admin"
		if gin.Mode() == gin.DebugMode {
			slog.Warn("Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if s.AdminPassword == "" {
		s.AdminPassword = "admin123"
		if gin.Mode() == gin.DebugMode {
			slog.Warn("Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	cfg := config.Server{
		Port:          s.Port,
		DBPath:        s.DB,
		AdminUsername: s.AdminUsername,
		AdminPassword: s.AdminPassword,
		StaticDir:     s.Static,
		AssetsDir:     s.Assets,
		TemplatesGlob: s.Templates,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	scheduler, err := startRetentionJob(st)
	if err != nil {
		return err
	}
	defer func() { _ = scheduler.Shutdown() }()

	recorder := metrics.NewPrometheusRecorder(nil)
	srv := newServer(d, cfg, st, recorder)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving portfolio", logfields.Path("http://localhost"+cfg.Addr()), logfields.Source(d.site.DataPath))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	slog.Info("Shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

// server serves the hydrated page and its companions.
type server struct {
	deps     *deps
	cfg      config.Server
	store    *store.Store
	recorder *metrics.PrometheusRecorder
	admin    *adminAuth
	now      func() time.Time
}

func newServer(d *deps, cfg config.Server, st *store.Store, recorder *metrics.PrometheusRecorder) *server {
	return &server{
		deps:     d,
		cfg:      cfg,
		store:    st,
		recorder: recorder,
		admin:    newAdminAuth(cfg.AdminUsername, cfg.AdminPassword, st),
		now:      time.Now,
	}
}

func (s *server) engine() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(s.cfg.TemplatesGlob)

	r.Use(s.admin.visitorTrackingMiddleware())

	if s.cfg.StaticDir != "" {
		r.Static("/static", s.cfg.StaticDir)
	}
	if s.cfg.AssetsDir != "" {
		r.Static("/assets", s.cfg.AssetsDir)
	}

	// Home page route
	r.GET("/", s.handleIndex)
	r.GET("/resume.md", s.handleMarkdown)
	r.GET("/resume.json", s.handleDocument)
	r.POST("/theme", s.handleTheme)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.recorder.Handler()))

	s.admin.setupRoutes(r)
	return r
}

// cookieStore persists the theme preference in a cookie.
type cookieStore struct {
	c *gin.Context
}

func (cs cookieStore) Get(key string) (string, error) {
	v, err := cs.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", nil
	}
	return v, err
}

func (cs cookieStore) Set(key, value string) error {
	cs.c.SetCookie(key, value, 3600*24*365, "/", "", false, true)
	return nil
}

const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

func prefersLight(c *gin.Context) bool {
	return c.GetHeader(colorSchemeHint) == "light"
}

// load runs a pass for this request and records its outcome.
func (s *server) load(c *gin.Context) (*pageLoad, error) {
	root, res, err := s.deps.loadPage(c.Request.Context(), s.recorder, s.now())
	if res != nil {
		s.recordHydration(res)
	}
	if root == nil {
		return nil, err
	}
	return &pageLoad{root: root, result: res}, err
}

func (s *server) recordHydration(res *hydrate.Result) {
	if s.store == nil {
		return
	}
	rec := hydrationRecord(res)
	go func() {
		if err := s.store.RecordHydration(context.Background(), rec); err != nil {
			slog.Error("Error recording hydration", logfields.Pass(rec.PassID), logfields.Error(err))
		}
	}()
}

func (s *server) handleIndex(c *gin.Context) {
	load, err := s.load(c)
	if load == nil {
		slog.Error("Unable to load host page", logfields.Error(err))
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}

	prefs := cookieStore{c}
	t := theme.Resolve(prefs, prefersLight(c))
	page.ApplyTheme(load.root, t)
	s.recorder.IncPageView(string(t))

	body, err := page.Render(load.root)
	if err != nil {
		slog.Error("Unable to render page", logfields.Error(err))
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	// The hint only matters until a preference is stored.
	if !theme.Stored(prefs) {
		c.Header("Accept-CH", colorSchemeHint)
		c.Header("Vary", colorSchemeHint)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *server) handleMarkdown(c *gin.Context) {
	load, err := s.load(c)
	if err != nil {
		c.String(http.StatusServiceUnavailable, "content unavailable")
		return
	}
	md, err := page.Markdown(load.root)
	if err != nil {
		slog.Error("Unable to export markdown", logfields.Error(err))
		c.String(http.StatusInternalServerError, "export failed")
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", md)
}

// handleDocument exposes the raw content document for local sources and
// redirects to it for remote ones.
func (s *server) handleDocument(c *gin.Context) {
	switch f := s.deps.fetcher.(type) {
	case *hydrate.FileFetcher:
		c.File(f.Path)
	case *hydrate.HTTPFetcher:
		c.Redirect(http.StatusFound, f.URL)
	default:
		c.Status(http.StatusNotFound)
	}
}

func (s *server) handleTheme(c *gin.Context) {
	next := theme.Flip(cookieStore{c}, prefersLight(c))
	slog.Debug("Theme toggled", slog.String("theme", string(next)))
	c.Redirect(http.StatusSeeOther, "/")
}

type pageLoad struct {
	root   *html.Node
	result *hydrate.Result
}
