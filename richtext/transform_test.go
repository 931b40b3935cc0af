package richtext

import (
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// helpers building html trees directly - the parser splits nested anchors on
// its own, so the transformer tie-breaks can only be reached this way

func elem(a atom.Atom, tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag, Attr: attrs}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

func textNode(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

func href(url string) []html.Attribute {
	return []html.Attribute{{Key: "href", Val: url}}
}

func TestTransformNestedLink(t *testing.T) {
	log := zaptest.NewLogger(t)

	p := elem(atom.P, "p", nil,
		elem(atom.A, "a", href("https://outer.example"),
			textNode("before "),
			elem(atom.A, "a", href("https://inner.example"), textNode("inner")),
		),
	)

	nodes := transformInlineChildren(p, inlineContext{}, log)
	for _, n := range nodes {
		if n.Kind != NodeLink {
			t.Fatalf("expected link wrappers only, got %s", n.Kind)
		}
		if n.URL != "https://outer.example" {
			t.Fatalf("inner link attributes leaked through: %q", n.URL)
		}
	}
}

func TestTransformBlockInInlineDegrades(t *testing.T) {
	log := zaptest.NewLogger(t)

	strong := elem(atom.Strong, "strong", nil,
		elem(atom.P, "p", nil, textNode("inside")),
	)

	nodes := transformInline(strong, inlineContext{}, log)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(nodes))
	}
	leaf := nodes[0]
	if leaf.Kind != NodeText || leaf.Value != "inside" || !leaf.Marks.Bold {
		t.Fatalf("wrong leaf: %+v", leaf)
	}
}

func TestTransformMarksDoNotLeakAcrossSiblings(t *testing.T) {
	log := zaptest.NewLogger(t)

	p := elem(atom.P, "p", nil,
		elem(atom.Strong, "strong", nil, textNode("a")),
		textNode("b"),
	)

	nodes := transformInlineChildren(p, inlineContext{}, log)
	if len(nodes) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(nodes))
	}
	if !nodes[0].Marks.Bold || nodes[1].Marks.Bold {
		t.Fatalf("marks leaked: %+v %+v", nodes[0].Marks, nodes[1].Marks)
	}
}

func TestTransformLinkContextWrapsEveryLeaf(t *testing.T) {
	log := zaptest.NewLogger(t)

	a := elem(atom.A, "a", append(href("https://example.com"), html.Attribute{Key: "title", Val: "t"}),
		textNode("one"),
		elem(atom.Em, "em", nil, textNode("two")),
	)

	nodes := transformInline(a, inlineContext{}, log)
	if len(nodes) != 2 {
		t.Fatalf("expected 2 link wrappers before normalization, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n.Kind != NodeLink || n.URL != "https://example.com" || n.Title != "t" {
			t.Fatalf("wrong wrapper: %+v", n)
		}
	}
	if !nodes[1].Children[0].Marks.Italic {
		t.Fatalf("mark lost inside link")
	}
}
