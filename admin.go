// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"

	"github.com/cbdev/portfolio/internal/logfields"
	"github.com/cbdev/portfolio/internal/store"
	"github.com/cbdev/portfolio/internal/theme"
)

// visitorRetention is how long visitor records are kept.
const visitorRetention = 365 * 24 * time.Hour

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
	store    *store.Store
}

// newAdminAuth generates a fresh session token and IP hashing salt.
func newAdminAuth(username, password string, st *store.Store) *adminAuth {
	a := &adminAuth{
		token:    generateAdminToken(),
		salt:     generateAdminToken(),
		username: username,
		password: password,
		store:    st,
	}

	slog.Info("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		slog.Debug("Admin token (dev only)", slog.String("token", a.token))
	}
	slog.Info("Privacy: Visitor tracking enabled with hashed IP addresses")
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("failed to generate admin token: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// hashIP hashes an IP address with the per-process salt (consistent per IP).
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// authMiddleware checks the admin session cookie.
func (a *adminAuth) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTrackingMiddleware records page views with hashed IPs.
func (a *adminAuth) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, admin pages and tooling endpoints
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/assets/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			path == "/metrics" || path == "/healthz" ||
			c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" || a.store == nil {
			c.Next()
			return
		}

		visit := store.VisitorMetric{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		if t, ok := theme.Parse(readCookie(c, theme.Key)); ok {
			visit.Theme = string(t)
		}
		go a.trackVisitor(visit)
		c.Next()
	}
}

func (a *adminAuth) trackVisitor(v store.VisitorMetric) {
	if err := a.store.RecordVisit(context.Background(), v); err != nil {
		slog.Error("Error recording visitor", logfields.Path(v.Path), logfields.Error(err))
	}
}

func readCookie(c *gin.Context, name string) string {
	v, _ := c.Cookie(name)
	return v
}

// startRetentionJob removes visitor records older than visitorRetention
// now and every day after.
func startRetentionJob(st *store.Store) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(cleanupOldVisitorData, st),
		gocron.WithName("visitor-retention"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	s.Start()
	return s, nil
}

// cleanupOldVisitorData enforces the retention window.
func cleanupOldVisitorData(st *store.Store) {
	removed, err := st.CleanupVisitors(context.Background(), visitorRetention)
	if err != nil {
		slog.Error("Error cleaning up old visitor data", logfields.Error(err))
		return
	}
	if removed > 0 {
		slog.Info("Privacy cleanup: removed visitor records older than 12 months", logfields.Count(int(removed)))
	}
}

// setupRoutes registers the privacy page and the admin area.
func (a *adminAuth) setupRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
		if userOK && passOK {
			// Secure cookie (24 hours)
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			slog.Info("Admin login successful", slog.String("from", a.hashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		slog.Warn("Failed admin login attempt", slog.String("from", a.hashIP(c.ClientIP())))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Everything below needs the session cookie.
	adminGroup := r.Group("/admin")
	adminGroup.Use(a.authMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.stats(c)
		if err != nil {
			slog.Error("Error loading admin stats", logfields.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		if a.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
			return
		}
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 500)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, visitors)
	})

	adminGroup.GET("/hydrations", func(c *gin.Context) {
		if a.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
			return
		}
		records, err := a.store.RecentHydrations(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	})

	// Privacy compliance endpoint: enforce the retention window now
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		if a.store != nil {
			go cleanupOldVisitorData(a.store)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}

func (a *adminAuth) stats(c *gin.Context) (*store.Stats, error) {
	if a.store == nil {
		return &store.Stats{}, nil
	}
	return a.store.Stats(c.Request.Context())
}
