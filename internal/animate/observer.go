// Package animate tracks nodes flagged for the one-shot entrance animation
// and hands them to the page's intersection observer.
package animate

import (
	"fmt"
	"strconv"
	"sync"

	json "github.com/goccy/go-json"
	"golang.org/x/net/html"

	"github.com/cbdev/portfolio/internal/dom"
)

const (
	// Attr flags a node for the entrance animation.
	Attr = "data-animate"
	// KeyAttr identifies a registered node to the page observer.
	KeyAttr = "data-animate-key"
	// VisibleClass is applied once a node has been revealed.
	VisibleClass = "visible"
	// DefaultThreshold is the intersection ratio that reveals a node.
	DefaultThreshold = 0.2

	// ManifestID and RuntimeID are the ids of the injected script elements.
	ManifestID = "animate-manifest"
	RuntimeID  = "animate-runtime"
)

// Registrar receives freshly rendered nodes that should animate in.
type Registrar interface {
	Observe(n *html.Node)
}

// Pending returns the nodes under root that are flagged for animation and
// not yet visible.
func Pending(root *html.Node) []*html.Node {
	return dom.FindAll(root, func(n *html.Node) bool {
		return dom.HasAttr(n, Attr) && !dom.HasClass(n, VisibleClass)
	})
}

// Register hands every pending node under root to r and returns them.
func Register(r Registrar, root *html.Node) []*html.Node {
	nodes := Pending(root)
	if r == nil {
		return nodes
	}
	for _, n := range nodes {
		r.Observe(n)
	}
	return nodes
}

// Manifest is a Registrar that keys each observed node and writes the keys,
// with the reveal threshold, into the page. The injected runtime observes
// every listed node, adds VisibleClass the first time it intersects at or
// above the threshold and then stops observing it.
type Manifest struct {
	threshold float64

	mu   sync.Mutex
	keys []string
	seen map[string]struct{}
}

// NewManifest creates a Manifest. A non-positive threshold uses
// DefaultThreshold.
func NewManifest(threshold float64) *Manifest {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Manifest{threshold: threshold, seen: make(map[string]struct{})}
}

// Observe keys n and lists it. Visible nodes are ignored, and a node that
// already carries a key keeps it.
func (m *Manifest) Observe(n *html.Node) {
	if n == nil || dom.HasClass(n, VisibleClass) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dom.GetAttr(n, KeyAttr)
	if key == "" {
		key = "a" + strconv.Itoa(len(m.keys)+1)
		dom.SetAttr(n, KeyAttr, key)
	}
	if _, ok := m.seen[key]; ok {
		return
	}
	m.seen[key] = struct{}{}
	m.keys = append(m.keys, key)
}

// Keys returns the listed keys in registration order.
func (m *Manifest) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}

// Threshold is the reveal ratio written to the page.
func (m *Manifest) Threshold() float64 { return m.threshold }

type manifestData struct {
	Threshold float64  `json:"threshold"`
	Attr      string   `json:"attr"`
	Visible   string   `json:"visible"`
	Targets   []string `json:"targets"`
}

// Inject replaces any earlier manifest and runtime under root's <body>.
// Nothing is written when no node was observed or the page has no body.
func (m *Manifest) Inject(root *html.Node) error {
	for _, id := range []string{ManifestID, RuntimeID} {
		if old := dom.FindByID(root, id); old != nil && old.Parent != nil {
			old.Parent.RemoveChild(old)
		}
	}

	keys := m.Keys()
	body := dom.FindTag(root, "body")
	if len(keys) == 0 || body == nil {
		return nil
	}

	data, err := json.Marshal(manifestData{
		Threshold: m.threshold,
		Attr:      KeyAttr,
		Visible:   VisibleClass,
		Targets:   keys,
	})
	if err != nil {
		return fmt.Errorf("encode animation manifest: %w", err)
	}
	body.AppendChild(dom.TextElement("script", string(data),
		dom.Attr("type", "application/json"), dom.Attr("id", ManifestID)))
	body.AppendChild(dom.TextElement("script", runtime, dom.Attr("id", RuntimeID)))
	return nil
}

// runtime reveals listed nodes once. Browsers without IntersectionObserver
// show everything immediately.
const runtime = `(function () {
  var el = document.getElementById("` + ManifestID + `");
  if (!el) return;
  var m = JSON.parse(el.textContent);
  var nodes = m.targets.map(function (k) {
    return document.querySelector("[" + m.attr + "=\"" + k + "\"]");
  }).filter(function (n) { return n && !n.classList.contains(m.visible); });
  if (!("IntersectionObserver" in window)) {
    nodes.forEach(function (n) { n.classList.add(m.visible); });
    return;
  }
  var io = new IntersectionObserver(function (entries) {
    entries.forEach(function (e) {
      if (e.isIntersecting && e.intersectionRatio >= m.threshold) {
        e.target.classList.add(m.visible);
        io.unobserve(e.target);
      }
    });
  }, { threshold: m.threshold });
  nodes.forEach(function (n) { io.observe(n); });
})();`
