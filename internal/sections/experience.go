package sections

import (
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/content"
	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/format"
)

// DefaultRoleHeading is shown for a role with neither title nor company.
const DefaultRoleHeading = "Experience"

// RoleHeading joins title and company, falling back to DefaultRoleHeading.
func RoleHeading(r content.Role) string {
	if heading, ok := format.Join(format.Dot, r.Title, r.Company); ok {
		return heading
	}
	return DefaultRoleHeading
}

// Experience renders one card per role in document order. No date sorting
// is applied.
func Experience(roles []content.Role) []*html.Node {
	cards := make([]*html.Node, 0, len(roles))
	for _, r := range roles {
		card := dom.Element("article", dom.Class("experience-card"), dom.Attr(AnimateAttr, "fade"))
		card.AppendChild(dom.TextElement("h3", RoleHeading(r)))
		if meta, ok := format.Join(format.Bullet, r.Location, r.Date.String()); ok {
			card.AppendChild(dom.TextElement("p", meta))
		}
		card.AppendChild(dom.List("ul", r.Responsibilities))
		cards = append(cards, card)
	}
	return cards
}
