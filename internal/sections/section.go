// Package sections turns a content document into detached node trees, one
// renderer per page section. Renderers never touch the host page; the
// hydrator mounts what they return.
package sections

import (
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/animate"
	"github.com/cbdev/portfolio/internal/content"
)

// Fragment is the content one section produces for one mount point.
type Fragment struct {
	Mount    string
	Required bool
	Nodes    []*html.Node
}

// Section is a named renderer.
type Section struct {
	Name   string
	Render func(doc *content.Document) ([]Fragment, error)
}

// Section names.
const (
	NameHero       = "hero"
	NameProjects   = "projects"
	NameExperience = "experience"
	NameEducation  = "education"
	NameSkills     = "skills"
)

// Mount point IDs in the host markup.
const (
	MountHeroName       = "hero-name"
	MountHeroTagline    = "hero-tagline"
	MountHeroSummary    = "hero-summary"
	MountHeroLinks      = "hero-links"
	MountHeroFooterName = "hero-footer-name"
	MountProjects       = "projects-grid"
	MountExperience     = "experience-list"
	MountEducation      = "education-cards"
	MountSkills         = "skills-groups"
)

// AnimateAttr marks nodes for the entrance animation.
const AnimateAttr = animate.Attr

// Options carries the copy the hero needs beyond the document.
type Options struct {
	Tagline          string
	FallbackLocation string
}

// Default returns the page sections in their fixed invocation order.
func Default(opts Options) []Section {
	return []Section{
		{Name: NameHero, Render: func(doc *content.Document) ([]Fragment, error) {
			return Hero(doc, opts)
		}},
		{Name: NameProjects, Render: func(doc *content.Document) ([]Fragment, error) {
			nodes, err := Projects(doc.Projects, doc.Contact)
			return single(MountProjects, nodes), err
		}},
		{Name: NameExperience, Render: func(doc *content.Document) ([]Fragment, error) {
			return single(MountExperience, Experience(doc.Experience)), nil
		}},
		{Name: NameEducation, Render: func(doc *content.Document) ([]Fragment, error) {
			nodes, err := Education(doc.Education)
			return single(MountEducation, nodes), err
		}},
		{Name: NameSkills, Render: func(doc *content.Document) ([]Fragment, error) {
			return single(MountSkills, Skills(doc.Skills)), nil
		}},
	}
}

func single(mount string, nodes []*html.Node) []Fragment {
	return []Fragment{{Mount: mount, Nodes: nodes}}
}
