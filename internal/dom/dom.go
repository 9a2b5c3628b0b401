// Package dom builds, queries and mounts golang.org/x/net/html node trees.
package dom

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is shorthand for an html.Attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Class is shorthand for a class attribute.
func Class(val string) html.Attribute {
	return Attr("class", val)
}

// Element creates a detached element node.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// TextElement creates an element holding a single text child.
func TextElement(tag, text string, attrs ...html.Attribute) *html.Node {
	return Append(Element(tag, attrs...), Text(text))
}

// Append adds children to parent and returns parent.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

// List builds a tag element with one li per item.
func List(tag string, items []string, attrs ...html.Attribute) *html.Node {
	list := Element(tag, attrs...)
	for _, item := range items {
		list.AppendChild(TextElement("li", item))
	}
	return list
}

// GetAttr returns the value of key on n, or "".
func GetAttr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether n carries key.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	return slices.ContainsFunc(n.Attr, func(a html.Attribute) bool { return a.Key == key })
}

// SetAttr sets or replaces key on n.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attr(key, val))
}

// HasClass reports whether n's class list contains class.
func HasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(GetAttr(n, "class")), class)
}

// SetClass adds or removes class from n's class list.
func SetClass(n *html.Node, class string, on bool) {
	classes := strings.Fields(GetAttr(n, "class"))
	has := slices.Contains(classes, class)
	switch {
	case on && !has:
		classes = append(classes, class)
	case !on && has:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == class })
	default:
		return
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}

// Walk visits n and its descendants depth first, in document order.
func Walk(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}

// FindAll returns every element under root matching pred, in document order.
func FindAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	Walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			found = append(found, n)
		}
	})
	return found
}

// FindByID returns the first element with the given id, or nil.
func FindByID(root *html.Node, id string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && GetAttr(root, "id") == id {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// FindTag returns the first element with the given tag, or nil.
func FindTag(root *html.Node, tag string) *html.Node {
	all := FindAll(root, func(n *html.Node) bool { return n.Data == tag })
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// TextContent concatenates all text under n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// Clear removes every child of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Mount replaces container's children with nodes. Mounting the same
// content twice leaves the container structurally identical.
func Mount(container *html.Node, nodes ...*html.Node) {
	Clear(container)
	Append(container, nodes...)
}

// Render serializes n.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
