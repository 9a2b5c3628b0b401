package sections

import (
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/content"
	"github.com/cbdev/portfolio/internal/dom"
)

// SkillCategory pairs a document key with its display label.
type SkillCategory struct {
	Key   string
	Label string
}

// SkillCategories is the fixed display order of skill groups.
var SkillCategories = []SkillCategory{
	{Key: content.SkillLanguages, Label: "Languages"},
	{Key: content.SkillDeveloperTools, Label: "Developer Tools"},
	{Key: content.SkillSpokenLanguages, Label: "Spoken Languages"},
}

// Skills renders a labeled group per non-empty category. Iteration follows
// SkillCategories, not the document.
func Skills(skills content.Skills) []*html.Node {
	var groups []*html.Node
	for _, cat := range SkillCategories {
		tags := skills.Group(cat.Key)
		if len(tags) == 0 {
			continue
		}
		group := dom.Element("div", dom.Class("skill-group"), dom.Attr(AnimateAttr, "fade"))
		list := dom.Element("div", dom.Class("skill-tags"))
		for _, tag := range tags {
			list.AppendChild(dom.TextElement("span", tag, dom.Class("skill-tag")))
		}
		dom.Append(group, dom.TextElement("h3", cat.Label), list)
		groups = append(groups, group)
	}
	return groups
}
