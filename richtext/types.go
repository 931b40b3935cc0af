package richtext

import "strings"

// Type definitions for the Shopify Rich Text metafield schema.
// https://shopify.dev/docs/apps/build/custom-data/metafields/list-of-data-types#rich-text-formatting

// NodeKind distinguishes the different kinds of rich text nodes.
type NodeKind string

const (
	NodeRoot       NodeKind = "root"
	NodeParagraph  NodeKind = "paragraph"
	NodeHeading    NodeKind = "heading"
	NodeBlockquote NodeKind = "blockquote"
	NodeList       NodeKind = "list"
	NodeListItem   NodeKind = "list-item"
	NodeText       NodeKind = "text"
	NodeLink       NodeKind = "link"
)

// ListType distinguishes ordered and unordered lists.
type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// Marks is the closed set of inline formatting toggles a text leaf may
// carry. Marks stack independently, bold+italic on one leaf is valid.
type Marks struct {
	Bold   bool
	Italic bool
}

// Empty reports whether no mark is set.
func (m Marks) Empty() bool {
	return !m.Bold && !m.Italic
}

// Node stores a single rich text node, keeping the original ordering of its
// children. Which fields are meaningful depends on Kind: Level for headings,
// ListType for lists, Value and Marks for text leaves, URL/Title/Target for
// links. Everything except text leaves carries Children.
type Node struct {
	Kind NodeKind

	Level    int
	ListType ListType

	Value string
	Marks Marks

	URL    string
	Title  string
	Target string

	Children []*Node
}

// IsBlock reports whether the node may appear as a direct child of root,
// blockquote or list-item.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeParagraph, NodeHeading, NodeBlockquote, NodeList, NodeListItem:
		return true
	}
	return false
}

// IsInline reports whether the node may appear as a direct child of
// paragraph, heading or link.
func (n *Node) IsInline() bool {
	return n.Kind == NodeText || n.Kind == NodeLink
}

// SameLink reports whether two link nodes carry identical link attributes.
func (n *Node) SameLink(other *Node) bool {
	return n.Kind == NodeLink && other.Kind == NodeLink &&
		n.URL == other.URL && n.Title == other.Title && n.Target == other.Target
}

// AsPlainText extracts plain text content from the node and its children.
func (n *Node) AsPlainText() string {
	if n.Kind == NodeText {
		return n.Value
	}
	var buf strings.Builder
	for _, child := range n.Children {
		text := child.AsPlainText()
		if text == "" {
			continue
		}
		if buf.Len() > 0 && child.IsBlock() {
			buf.WriteString(" ")
		}
		buf.WriteString(text)
	}
	return buf.String()
}
