package sections

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/content"
	"github.com/cbdev/portfolio/internal/dom"
	"github.com/cbdev/portfolio/internal/format"
)

// CourseworkSummary labels the coursework disclosure.
const CourseworkSummary = "Highlighted coursework"

// Education renders one card per institution in document order.
func Education(entries []content.Institution) ([]*html.Node, error) {
	cards := make([]*html.Node, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.School) == "" {
			return nil, fmt.Errorf("education entry %d has no school", i)
		}
		cards = append(cards, EducationCard(e))
	}
	return cards, nil
}

// EducationCard renders a single institution. The coursework disclosure is
// always present, even when the list is empty.
func EducationCard(e content.Institution) *html.Node {
	card := dom.Element("article", dom.Class("education-card"), dom.Attr(AnimateAttr, "fade"))
	card.AppendChild(dom.TextElement("h3", e.School))

	if degree, ok := format.Join(format.Dot, e.Degree, format.Labeled("Minor in", e.Minor)); ok {
		card.AppendChild(dom.TextElement("p", degree))
	}
	meta, ok := format.Join(format.Bullet,
		e.Location,
		format.Labeled("Grad", e.ExpectedGraduation.String()),
		format.Labeled("GPA", e.GPA.String()),
	)
	if ok {
		card.AppendChild(dom.TextElement("p", meta))
	}

	coursework := dom.Element("details", dom.Class("coursework"))
	coursework.AppendChild(dom.TextElement("summary", CourseworkSummary))
	coursework.AppendChild(dom.List("ul", e.Coursework, dom.Class("coursework-list")))
	card.AppendChild(coursework)
	return card
}
