// Package page owns the host markup: parsing it, the footer chrome, the
// theme class and serialization to HTML or markdown.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/theme"
)

//go:embed host.html
var defaultHost []byte

// Host is the unparsed host markup. Each page load parses a fresh tree.
type Host struct {
	markup []byte
}

// DefaultHost returns the embedded host markup.
func DefaultHost() *Host {
	return &Host{markup: defaultHost}
}

// NewHost wraps custom host markup.
func NewHost(markup []byte) *Host {
	return &Host{markup: markup}
}

// LoadHost reads host markup from path, or returns the embedded default
// when path is empty.
func LoadHost(path string) (*Host, error) {
	if path == "" {
		return DefaultHost(), nil
	}
	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host markup %s: %w", path, err)
	}
	return NewHost(markup), nil
}

// Parse returns a fresh node tree of the host markup.
func (h *Host) Parse() (*html.Node, error) {
	root, err := html.Parse(bytes.NewReader(h.markup))
	if err != nil {
		return nil, fmt.Errorf("parse host markup: %w", err)
	}
	return root, nil
}

// Chrome IDs in the host markup.
const (
	MountCurrentYear = "current-year"
	SectionResume    = "resume"
)

// ApplyChrome fills the footer year and gives resume buttons without an
// href the resume path. It is independent of hydration.
func ApplyChrome(root *html.Node, now time.Time, resumePath string) {
	if year := dom.FindByID(root, MountCurrentYear); year != nil {
		dom.Mount(year, dom.Text(strconv.Itoa(now.Year())))
	}
	resume := dom.FindByID(root, SectionResume)
	if resume == nil || resumePath == "" {
		return
	}
	buttons := dom.FindAll(resume, func(n *html.Node) bool {
		return n.Data == "a" && dom.HasClass(n, "btn")
	})
	for _, btn := range buttons {
		if dom.GetAttr(btn, "href") == "" {
			dom.SetAttr(btn, "href", resumePath)
		}
	}
}

// ApplyTheme sets the body class for t.
func ApplyTheme(root *html.Node, t theme.Theme) {
	if body := dom.FindTag(root, "body"); body != nil {
		dom.SetClass(body, theme.LightClass, t == theme.Light)
	}
}

// Render serializes the whole page.
func Render(root *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown converts the page's main content to markdown.
func Markdown(root *html.Node) ([]byte, error) {
	node := dom.FindTag(root, "main")
	if node == nil {
		node = root
	}
	md, err := htmltomarkdown.ConvertNode(node)
	if err != nil {
		return nil, fmt.Errorf("failed to convert page to markdown: %w", err)
	}
	return md, nil
}
