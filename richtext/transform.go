package richtext

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Recursive transformation of the parsed HTML tree into the rich text tree.
// The walk never fails, every odd construct degrades to one of the rules
// below and validity enforcement is left to normalization.

// linkAttrs carries the attributes of the innermost usable <a> ancestor.
type linkAttrs struct {
	url    string
	title  string
	target string
}

// inlineContext is the accumulated formatting state threaded through the
// walk. It is passed by value, so descending into a mark or link element
// produces a new context instead of mutating shared state.
type inlineContext struct {
	marks Marks
	link  *linkAttrs
}

// blockBuilder collects the block children of a container, grouping runs of
// bare inline content into implicit paragraphs so that root, blockquote and
// list-item always end up with block children only.
type blockBuilder struct {
	blocks []*Node
	inline []*Node
	log    *zap.Logger
}

func (b *blockBuilder) flush() {
	if len(b.inline) == 0 {
		return
	}
	b.blocks = append(b.blocks, &Node{Kind: NodeParagraph, Children: b.inline})
	b.inline = nil
}

func (b *blockBuilder) add(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.inline = append(b.inline, transformText(n, inlineContext{})...)
	case html.ElementNode:
		c := classify(n.DataAtom)
		switch c.class {
		case classBlock:
			b.flush()
			b.blocks = append(b.blocks, transformBlock(n, c, b.log))
		case classMark, classLink:
			b.inline = append(b.inline, transformInline(n, inlineContext{}, b.log)...)
		default:
			// transparent wrapper - splice its children in place
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				b.add(child)
			}
		}
	}
	// comments and doctypes contribute nothing
}

// transformBlocks converts the children of parent appearing in block
// position into a sequence of block nodes.
func transformBlocks(parent *html.Node, log *zap.Logger) []*Node {
	b := blockBuilder{log: log}
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		b.add(child)
	}
	b.flush()
	return b.blocks
}

func transformBlock(el *html.Node, c classification, log *zap.Logger) *Node {
	switch c.kind {
	case NodeParagraph:
		return &Node{Kind: NodeParagraph, Children: transformInlineChildren(el, inlineContext{}, log)}
	case NodeHeading:
		return &Node{Kind: NodeHeading, Level: c.level, Children: transformInlineChildren(el, inlineContext{}, log)}
	case NodeBlockquote:
		return &Node{Kind: NodeBlockquote, Children: transformBlocks(el, log)}
	case NodeList:
		return transformList(el, c.listType, log)
	case NodeListItem:
		return &Node{Kind: NodeListItem, Children: transformBlocks(el, log)}
	default:
		// this should never happen
		panic("unsupported block kind requested")
	}
}

// transformList builds a list from the direct li children of el. Anything
// else nested directly under ul/ol is skipped.
func transformList(el *html.Node, listType ListType, log *zap.Logger) *Node {
	list := &Node{Kind: NodeList, ListType: listType}
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Li {
			list.Children = append(list.Children, &Node{Kind: NodeListItem, Children: transformBlocks(child, log)})
			continue
		}
		if child.Type == html.ElementNode {
			log.Debug("Skipping non-item child of list", zap.String("list", el.Data), zap.String("tag", child.Data))
		}
	}
	return list
}

func transformInlineChildren(el *html.Node, ctx inlineContext, log *zap.Logger) []*Node {
	var nodes []*Node
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			nodes = append(nodes, transformText(child, ctx)...)
		case html.ElementNode:
			nodes = append(nodes, transformInline(child, ctx, log)...)
		}
	}
	return nodes
}

func transformInline(el *html.Node, ctx inlineContext, log *zap.Logger) []*Node {
	c := classify(el.DataAtom)
	switch c.class {
	case classMark:
		next := ctx
		next.marks.Bold = next.marks.Bold || c.mark.Bold
		next.marks.Italic = next.marks.Italic || c.mark.Italic
		return transformInlineChildren(el, next, log)
	case classLink:
		href := attrValue(el, "href")
		switch {
		case ctx.link != nil:
			// invalid nesting - the outer link wins
			log.Debug("Nested link inside an active link, ignoring its attributes", zap.String("href", href))
		case href == "":
			log.Debug("Link without usable href, unwrapping")
		default:
			next := ctx
			next.link = &linkAttrs{url: href, title: attrValue(el, "title"), target: attrValue(el, "target")}
			return transformInlineChildren(el, next, log)
		}
		return transformInlineChildren(el, ctx, log)
	case classBlock:
		// fragments are not expected to nest blocks inside inline runs,
		// degrade to transparent instead of emitting an illegal child
		log.Debug("Block element in inline content, treating as transparent", zap.String("tag", el.Data))
		return transformInlineChildren(el, ctx, log)
	default:
		return transformInlineChildren(el, ctx, log)
	}
}

func transformText(n *html.Node, ctx inlineContext) []*Node {
	value := strings.Trim(n.Data, "\n")
	if value == "" {
		return nil
	}
	leaf := &Node{Kind: NodeText, Value: value, Marks: ctx.marks}
	if ctx.link == nil {
		return []*Node{leaf}
	}
	// each leaf gets its own wrapper here, adjacent wrappers under the same
	// active link coalesce during normalization
	return []*Node{{
		Kind:     NodeLink,
		URL:      ctx.link.url,
		Title:    ctx.link.title,
		Target:   ctx.link.target,
		Children: []*Node{leaf},
	}}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
