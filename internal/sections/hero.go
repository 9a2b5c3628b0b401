package sections

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/content"
	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/format"
)

// DefaultFallbackLocation is used when no institution has a location.
const DefaultFallbackLocation = "New York, NY"

// Greeting is the hero headline for name.
func Greeting(name string) string {
	return fmt.Sprintf("Hi, I'm %s.", name)
}

// Summary is the one-line hero summary.
func Summary(doc *content.Document, fallbackLocation string) string {
	if fallbackLocation == "" {
		fallbackLocation = DefaultFallbackLocation
	}
	experiences := format.Count(doc.ExperienceCount(),
		"engineering experience", "engineering experiences", "multi-disciplinary experiences")
	projects := format.Count(doc.ProjectCount(), "experiment", "experiments", "countless experiments")
	return fmt.Sprintf("Based in %s, I merge artistic curiosity with rigorous systems thinking across %s and %s.",
		doc.PrimaryLocation(fallbackLocation), experiences, projects)
}

// IsExternal reports whether href is an absolute http(s) URI.
func IsExternal(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Anchor builds a link that opens external URIs in a new context with
// opener and referrer hardening, and everything else in place.
func Anchor(href, label string, attrs ...html.Attribute) *html.Node {
	attrs = append(attrs, dom.Attr("href", href))
	if IsExternal(href) {
		attrs = append(attrs, dom.Attr("target", "_blank"), dom.Attr("rel", "noopener noreferrer"))
	} else {
		attrs = append(attrs, dom.Attr("target", "_self"))
	}
	return dom.TextElement("a", label, attrs...)
}

// ContactAnchors returns one anchor per resolvable contact channel.
func ContactAnchors(contact content.Contact) []*html.Node {
	links := contact.Links()
	anchors := make([]*html.Node, 0, len(links))
	for _, link := range links {
		anchors = append(anchors, Anchor(link.Href, link.Label))
	}
	return anchors
}

// Hero renders the greeting, tagline, summary, contact links and footer name.
func Hero(doc *content.Document, opts Options) ([]Fragment, error) {
	if doc == nil || strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("hero requires a name")
	}
	return []Fragment{
		{Mount: MountHeroTagline, Required: true, Nodes: []*html.Node{dom.Text(opts.Tagline)}},
		{Mount: MountHeroName, Required: true, Nodes: []*html.Node{dom.Text(Greeting(doc.Name))}},
		{Mount: MountHeroSummary, Nodes: []*html.Node{dom.Text(Summary(doc, opts.FallbackLocation))}},
		{Mount: MountHeroLinks, Nodes: ContactAnchors(doc.Contact)},
		{Mount: MountHeroFooterName, Nodes: []*html.Node{dom.Text(doc.Name)}},
	}, nil
}
