// Package content holds the typed portfolio document and the accessors
// that apply its fallback policy.
package content

import "strings"

// Document is the root of a portfolio content file. Only Name is required;
// absent collections decode to nil and are treated as empty.
type Document struct {
	Name       string        `json:"name" yaml:"name" validate:"required"`
	Contact    Contact       `json:"contact" yaml:"contact"`
	Projects   []Project     `json:"projects" yaml:"projects"`
	Experience []Role        `json:"experience" yaml:"experience"`
	Education  []Institution `json:"education" yaml:"education"`
	Skills     Skills        `json:"skills" yaml:"skills"`
}

// Contact maps channel names to optional URI-like values.
type Contact struct {
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Email    string `json:"email" yaml:"email"`
}

// Link is a resolvable contact channel.
type Link struct {
	Label string
	Href  string
}

// Links returns the channels that have a value, in display order.
// Email addresses become mailto: URIs.
func (c Contact) Links() []Link {
	var links []Link
	if present(c.GitHub) {
		links = append(links, Link{Label: "GitHub", Href: strings.TrimSpace(c.GitHub)})
	}
	if present(c.LinkedIn) {
		links = append(links, Link{Label: "LinkedIn", Href: strings.TrimSpace(c.LinkedIn)})
	}
	if present(c.Email) {
		links = append(links, Link{Label: "Email", Href: "mailto:" + strings.TrimSpace(c.Email)})
	}
	return links
}

// Project is one portfolio entry. Name identifies the card.
type Project struct {
	Name        string `json:"name" yaml:"name"`
	Location    string `json:"location" yaml:"location"`
	Tech        Texts  `json:"tech" yaml:"tech"`
	Description Texts  `json:"description" yaml:"description"`
	Repo        string `json:"repo" yaml:"repo"`
	Link        string `json:"link" yaml:"link"`
}

// PlaceholderURI is used when a project has nowhere to link to.
const PlaceholderURI = "#"

// ActionURI resolves the project's action link: repo, then link, then the
// owner's GitHub profile, then PlaceholderURI.
func (p Project) ActionURI(contact Contact) string {
	for _, candidate := range []string{p.Repo, p.Link, contact.GitHub} {
		if present(candidate) {
			return strings.TrimSpace(candidate)
		}
	}
	return PlaceholderURI
}

// Role is one experience entry.
type Role struct {
	Title            string `json:"title" yaml:"title"`
	Company          string `json:"company" yaml:"company"`
	Location         string `json:"location" yaml:"location"`
	Date             Text   `json:"date" yaml:"date"`
	Responsibilities Texts  `json:"responsibilities" yaml:"responsibilities"`
}

// Institution is one education entry. School is required.
type Institution struct {
	School             string `json:"school" yaml:"school"`
	Degree             string `json:"degree" yaml:"degree"`
	Minor              string `json:"minor" yaml:"minor"`
	Location           string `json:"location" yaml:"location"`
	ExpectedGraduation Text   `json:"expectedGraduation" yaml:"expectedGraduation"`
	GPA                Text   `json:"gpa" yaml:"gpa"`
	Coursework         Texts  `json:"coursework" yaml:"coursework"`
}

// Skill category keys, in display order.
const (
	SkillLanguages       = "languages"
	SkillDeveloperTools  = "developerTools"
	SkillSpokenLanguages = "spokenLanguages"
)

// Skills groups skill tags by a fixed set of categories.
type Skills struct {
	Languages       Texts `json:"languages" yaml:"languages"`
	DeveloperTools  Texts `json:"developerTools" yaml:"developerTools"`
	SpokenLanguages Texts `json:"spokenLanguages" yaml:"spokenLanguages"`
}

// Group returns the tags for a category key, or nil for unknown keys.
func (s Skills) Group(key string) []string {
	switch key {
	case SkillLanguages:
		return s.Languages
	case SkillDeveloperTools:
		return s.DeveloperTools
	case SkillSpokenLanguages:
		return s.SpokenLanguages
	default:
		return nil
	}
}

// PrimaryLocation is the first institution's location, or fallback when
// there is no institution or it has no location.
func (d *Document) PrimaryLocation(fallback string) string {
	if d == nil || len(d.Education) == 0 || !present(d.Education[0].Location) {
		return fallback
	}
	return d.Education[0].Location
}

// ProjectCount is the number of projects, zero when absent.
func (d *Document) ProjectCount() int {
	if d == nil {
		return 0
	}
	return len(d.Projects)
}

// ExperienceCount is the number of roles, zero when absent.
func (d *Document) ExperienceCount() int {
	if d == nil {
		return 0
	}
	return len(d.Experience)
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
