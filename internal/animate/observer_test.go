package animate

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/dom"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return root
}

func TestRegisterSkipsVisibleNodes(t *testing.T) {
	root := parse(t, `<div data-animate="fade" id="a"></div><div data-animate="fade" class="visible" id="b"></div><div id="c"></div>`)

	m := NewManifest(0)
	nodes := Register(m, root)
	require.Len(t, nodes, 1)
	assert.Equal(t, "a", dom.GetAttr(nodes[0], "id"))
	assert.Equal(t, []string{"a1"}, m.Keys())
	assert.Equal(t, "a1", dom.GetAttr(nodes[0], KeyAttr))
	assert.Equal(t, DefaultThreshold, m.Threshold())
}

func TestRegisterWithoutRegistrar(t *testing.T) {
	root := dom.Append(dom.Element("main"), dom.Element("div", dom.Attr(Attr, "fade")))
	nodes := Register(nil, root)
	require.Len(t, nodes, 1)
	assert.False(t, dom.HasAttr(nodes[0], KeyAttr))
}

func TestObserveKeepsExistingKeys(t *testing.T) {
	n := dom.Element("article", dom.Attr(Attr, "fade"), dom.Attr(KeyAttr, "a7"))
	m := NewManifest(0.5)
	m.Observe(n)
	m.Observe(n)
	m.Observe(nil)
	assert.Equal(t, []string{"a7"}, m.Keys())
}

func manifestOf(t *testing.T, root *html.Node) manifestData {
	t.Helper()
	el := dom.FindByID(root, ManifestID)
	require.NotNil(t, el)
	assert.Equal(t, "application/json", dom.GetAttr(el, "type"))
	var data manifestData
	require.NoError(t, json.Unmarshal([]byte(dom.TextContent(el)), &data))
	return data
}

func TestInjectListsObservedCards(t *testing.T) {
	root := parse(t, `<html><body><div id="projects-grid">`+
		`<article class="project-card" data-animate="fade"></article>`+
		`<article class="project-card" data-animate="fade"></article>`+
		`</div></body></html>`)

	m := NewManifest(DefaultThreshold)
	cards := Register(m, root)
	require.NoError(t, m.Inject(root))

	data := manifestOf(t, root)
	assert.Equal(t, DefaultThreshold, data.Threshold)
	assert.Equal(t, KeyAttr, data.Attr)
	assert.Equal(t, VisibleClass, data.Visible)
	require.Len(t, data.Targets, 2)
	for i, card := range cards {
		assert.Equal(t, data.Targets[i], dom.GetAttr(card, KeyAttr))
	}

	runtime := dom.FindByID(root, RuntimeID)
	require.NotNil(t, runtime)
	assert.Contains(t, dom.TextContent(runtime), "IntersectionObserver")
	assert.Contains(t, dom.TextContent(runtime), "unobserve")
}

func TestInjectReplacesEarlierManifest(t *testing.T) {
	root := parse(t, `<html><body><div data-animate="fade"></div></body></html>`)

	for range 2 {
		m := NewManifest(0)
		Register(m, root)
		require.NoError(t, m.Inject(root))
	}

	scripts := dom.FindAll(root, func(n *html.Node) bool { return n.Data == "script" })
	assert.Len(t, scripts, 2)
	assert.Equal(t, []string{"a1"}, manifestOf(t, root).Targets)

	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, root))
	assert.Equal(t, 1, strings.Count(buf.String(), `id="`+ManifestID+`"`))
}

func TestInjectWithoutTargets(t *testing.T) {
	root := parse(t, `<html><body><div class="visible" data-animate="fade"></div></body></html>`)
	m := NewManifest(0)
	Register(m, root)
	require.NoError(t, m.Inject(root))
	assert.Nil(t, dom.FindByID(root, ManifestID))
	assert.Nil(t, dom.FindByID(root, RuntimeID))
}
