package page

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/sections"
	"github.com/cbdev/portfolio/internal/theme"
)

func TestDefaultHostHasEveryMountPoint(t *testing.T) {
	root, err := DefaultHost().Parse()
	require.NoError(t, err)

	for _, id := range []string{
		sections.MountHeroName, sections.MountHeroTagline, sections.MountHeroSummary,
		sections.MountHeroLinks, sections.MountHeroFooterName, sections.MountProjects,
		sections.MountExperience, sections.MountEducation, sections.MountSkills,
		MountCurrentYear, SectionResume,
	} {
		assert.NotNil(t, dom.FindByID(root, id), id)
	}
}

func TestParseReturnsFreshTrees(t *testing.T) {
	host := DefaultHost()
	a, err := host.Parse()
	require.NoError(t, err)
	b, err := host.Parse()
	require.NoError(t, err)

	dom.Mount(dom.FindByID(a, sections.MountHeroName), dom.Text("changed"))
	assert.Empty(t, dom.TextContent(dom.FindByID(b, sections.MountHeroName)))
}

func TestApplyChrome(t *testing.T) {
	root, err := NewHost([]byte(`<html><body><section id="resume"><a class="btn"></a><a class="btn" href="/cv.pdf"></a><a></a></section><span id="current-year">1999</span></body></html>`)).Parse()
	require.NoError(t, err)

	ApplyChrome(root, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "assets/resume.pdf")

	assert.Equal(t, "2026", dom.TextContent(dom.FindByID(root, MountCurrentYear)))
	anchors := dom.Children(dom.FindByID(root, SectionResume))
	require.Len(t, anchors, 3)
	assert.Equal(t, "assets/resume.pdf", dom.GetAttr(anchors[0], "href"))
	assert.Equal(t, "/cv.pdf", dom.GetAttr(anchors[1], "href"))
	assert.False(t, dom.HasAttr(anchors[2], "href"))
}

func TestApplyChromeWithoutMounts(t *testing.T) {
	root, err := NewHost([]byte(`<html><body></body></html>`)).Parse()
	require.NoError(t, err)
	ApplyChrome(root, time.Now(), "assets/resume.pdf")
}

func TestApplyTheme(t *testing.T) {
	root, err := DefaultHost().Parse()
	require.NoError(t, err)
	body := dom.FindTag(root, "body")

	ApplyTheme(root, theme.Light)
	assert.True(t, dom.HasClass(body, theme.LightClass))
	ApplyTheme(root, theme.Dark)
	assert.False(t, dom.HasClass(body, theme.LightClass))
}

func TestRenderAndMarkdown(t *testing.T) {
	root, err := DefaultHost().Parse()
	require.NoError(t, err)
	dom.Mount(dom.FindByID(root, sections.MountHeroName), dom.Text("Hi, I'm Ava."))

	out, err := Render(root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<!DOCTYPE html>"))
	assert.Contains(t, string(out), "Hi, I&#39;m Ava.")

	md, err := Markdown(root)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Hi, I'm Ava.")
	assert.Contains(t, string(md), "## Projects")
}

func TestLoadHost(t *testing.T) {
	host, err := LoadHost("")
	require.NoError(t, err)
	assert.Equal(t, defaultHost, host.markup)

	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p id=x></p>"), 0o600))
	host, err = LoadHost(path)
	require.NoError(t, err)
	root, err := host.Parse()
	require.NoError(t, err)
	assert.NotNil(t, dom.FindByID(root, "x"))

	_, err = LoadHost(filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
}
