package sections

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/content"
	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/format"
)

// ProjectActionLabel is the text of every project card's action control.
const ProjectActionLabel = "View on GitHub"

// Projects renders one card per project, preserving document order.
func Projects(projects []content.Project, contact content.Contact) ([]*html.Node, error) {
	cards := make([]*html.Node, 0, len(projects))
	for i, p := range projects {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("project %d has no name", i)
		}
		cards = append(cards, ProjectCard(p, contact))
	}
	return cards, nil
}

// ProjectCard renders a single project.
func ProjectCard(p content.Project, contact content.Contact) *html.Node {
	card := dom.Element("article", dom.Class("project-card"), dom.Attr(AnimateAttr, "fade"))
	card.AppendChild(dom.TextElement("h3", p.Name))

	techLine, _ := format.Join(format.Bullet, p.Tech...)
	if meta, ok := format.Join(format.Bullet, p.Location, techLine); ok {
		card.AppendChild(dom.TextElement("p", meta, dom.Class("project-meta")))
	}
	if len(p.Tech) > 0 {
		card.AppendChild(dom.List("ul", p.Tech, dom.Class("project-card__stack")))
	}
	if len(p.Description) > 0 {
		card.AppendChild(dom.List("ul", p.Description, dom.Class("project-card__details")))
	}

	href := p.ActionURI(contact)
	button := dom.TextElement("a", ProjectActionLabel,
		dom.Class("btn btn--ghost"),
		dom.Attr("href", href),
		dom.Attr("target", "_blank"),
		dom.Attr("rel", "noopener noreferrer"),
	)
	card.AppendChild(dom.Append(dom.Element("div", dom.Class("project-card__actions")), button))
	return card
}
