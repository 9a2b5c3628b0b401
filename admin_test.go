package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbdev/portfolio/internal/store"
	"github.com/cbdev/portfolio/internal/theme"
)

func TestHashIPIsStableAndSalted(t *testing.T) {
	a := newAdminAuth("admin", "secret", nil)
	b := newAdminAuth("admin", "secret", nil)

	h := a.hashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, a.hashIP("203.0.113.7"))
	assert.NotEqual(t, h, a.hashIP("203.0.113.8"))
	assert.NotEqual(t, h, b.hashIP("203.0.113.7"))
}

func TestAdminRequiresLogin(t *testing.T) {
	_, r := testServer(t, testDeps(t, sampleDocument), nil)

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/export/stats"} {
		w := get(r, path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	w := get(r, "/admin/dashboard", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: "forged"})
	})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminLogin(t *testing.T) {
	s, r := testServer(t, testDeps(t, sampleDocument), nil)

	w := postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, s.admin.token, cookies[0].Value)

	authed := func(req *http.Request) { req.AddCookie(cookies[0]) }
	w = get(r, "/admin/dashboard", authed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")

	w = get(r, "/admin/api/stats", authed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_visitors":0`)

	w = get(r, "/admin/hydrations", authed)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPrivacyPage(t *testing.T) {
	_, r := testServer(t, testDeps(t, sampleDocument), nil)

	w := get(r, "/privacy")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Privacy Policy")
}

func TestVisitorTracking(t *testing.T) {
	ctx := t.Context()
	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "visits.db"))
	require.NoError(t, err)
	defer st.Close()

	_, r := testServer(t, testDeps(t, sampleDocument), st)

	get(r, "/", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: theme.Key, Value: "light"})
	})
	get(r, "/", func(req *http.Request) { req.Header.Set("DNT", "1") })
	get(r, "/healthz")
	get(r, "/privacy")

	require.Eventually(t, func() bool {
		v, err := st.RecentVisitors(ctx, 10)
		return err == nil && len(v) == 1
	}, 2*time.Second, 20*time.Millisecond)

	// Give stray writes a moment to land before asserting nothing else did.
	time.Sleep(50 * time.Millisecond)
	visitors, err := st.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "/", visitors[0].Path)
	assert.Equal(t, "light", visitors[0].Theme)
	assert.Len(t, visitors[0].HashedIP, 16)
	assert.NotEqual(t, "192.0.2.1", visitors[0].HashedIP)
}

func TestRetentionJobRunsImmediately(t *testing.T) {
	ctx := t.Context()
	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "retention.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.RecordVisit(ctx, store.VisitorMetric{
		HashedIP:  "old",
		Path:      "/",
		Timestamp: time.Now().Add(-2 * visitorRetention),
	}))
	require.NoError(t, st.RecordVisit(ctx, store.VisitorMetric{
		HashedIP:  "new",
		Path:      "/",
		Timestamp: time.Now(),
	}))

	s, err := startRetentionJob(st)
	require.NoError(t, err)
	defer func() { _ = s.Shutdown() }()

	require.Eventually(t, func() bool {
		v, err := st.RecentVisitors(ctx, 10)
		return err == nil && len(v) == 1 && v[0].HashedIP == "new"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestLogoutClearsSession(t *testing.T) {
	_, r := testServer(t, testDeps(t, sampleDocument), nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_token", cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}
