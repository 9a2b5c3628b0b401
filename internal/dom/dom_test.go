package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return root
}

func TestMountReplacesChildren(t *testing.T) {
	root := parse(t, `<div id="grid"><p>stale</p><p>stale</p></div>`)
	grid := FindByID(root, "grid")
	require.NotNil(t, grid)

	Mount(grid, TextElement("h3", "one"), TextElement("h3", "two"))
	first, err := Render(grid)
	require.NoError(t, err)

	Mount(grid, TextElement("h3", "one"), TextElement("h3", "two"))
	second, err := Render(grid)
	require.NoError(t, err)

	assert.Equal(t, `<div id="grid"><h3>one</h3><h3>two</h3></div>`, first)
	assert.Equal(t, first, second)
}

func TestMountWithNothingEmptiesContainer(t *testing.T) {
	root := parse(t, `<ul id="list"><li>a</li></ul>`)
	list := FindByID(root, "list")
	Mount(list)
	assert.Nil(t, list.FirstChild)
}

func TestClassHelpers(t *testing.T) {
	n := Element("body", Class("dark"))
	SetClass(n, "light-theme", true)
	SetClass(n, "light-theme", true)
	assert.Equal(t, "dark light-theme", GetAttr(n, "class"))
	assert.True(t, HasClass(n, "light-theme"))

	SetClass(n, "dark", false)
	assert.Equal(t, "light-theme", GetAttr(n, "class"))
	assert.False(t, HasClass(n, "dark"))
}

func TestFindHelpers(t *testing.T) {
	root := parse(t, `<main><section id="a"><span class="x">1</span></section><span class="x y">2</span></main>`)
	assert.Nil(t, FindByID(root, "missing"))
	assert.Equal(t, "1", TextContent(FindByID(root, "a")))

	spans := FindAll(root, func(n *html.Node) bool { return HasClass(n, "x") })
	require.Len(t, spans, 2)
	assert.Equal(t, "2", TextContent(spans[1]))
	assert.Equal(t, "main", FindTag(root, "main").Data)
	assert.Len(t, Children(FindTag(root, "main")), 2)
}

func TestListAndAttrs(t *testing.T) {
	list := List("ul", []string{"a", "b"}, Class("stack"))
	SetAttr(list, "data-animate", "fade")
	out, err := Render(list)
	require.NoError(t, err)
	assert.Equal(t, `<ul class="stack" data-animate="fade"><li>a</li><li>b</li></ul>`, out)
	assert.True(t, HasAttr(list, "data-animate"))
	assert.False(t, HasAttr(nil, "data-animate"))
}
