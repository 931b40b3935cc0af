package richtext

import (
	"strings"

	"go.uber.org/zap"
)

// Normalization rules applied bottom-up over a raw transformed tree. The
// pass never fails and is idempotent: normalizing an already normalized tree
// yields an identical tree.
//
// Parent/child legality is not repaired here - the transformer guarantees it
// by construction, so finding an illegal child is a programming error and
// aborts loudly instead of quietly emitting an invalid document.

// Normalize returns a schema-legal tree for the raw transformed input. The
// input is left untouched.
func Normalize(root *Node, log *zap.Logger) *Node {
	return &Node{Kind: NodeRoot, Children: normalizeBlocks(root.Children, log)}
}

func normalizeBlocks(children []*Node, log *zap.Logger) []*Node {
	var result []*Node
	for _, child := range children {
		if !child.IsBlock() {
			log.Panic("Inline node in block position, transformer produced an illegal tree", zap.String("kind", string(child.Kind)))
		}
		if normalized := normalizeBlock(child, log); normalized != nil {
			result = append(result, normalized)
		}
	}
	return result
}

// normalizeBlock normalizes a single block node, returning nil when its
// children reduce to nothing. Emptiness is emptiness regardless of kind, an
// empty list or list-item is dropped like an empty paragraph.
func normalizeBlock(n *Node, log *zap.Logger) *Node {
	result := *n
	switch n.Kind {
	case NodeParagraph, NodeHeading:
		result.Children = normalizeInline(n.Children, log)
	case NodeBlockquote, NodeListItem:
		result.Children = normalizeBlocks(n.Children, log)
	case NodeList:
		result.Children = normalizeItems(n.Children, log)
	}
	if len(result.Children) == 0 {
		log.Debug("Dropping empty node", zap.String("kind", string(n.Kind)))
		return nil
	}
	return &result
}

func normalizeItems(children []*Node, log *zap.Logger) []*Node {
	var result []*Node
	for _, child := range children {
		if child.Kind != NodeListItem {
			log.Panic("List child is not a list-item, transformer produced an illegal tree", zap.String("kind", string(child.Kind)))
		}
		if normalized := normalizeBlock(child, log); normalized != nil {
			result = append(result, normalized)
		}
	}
	return result
}

func normalizeInline(children []*Node, log *zap.Logger) []*Node {
	return mergeInline(resolveWhitespace(children, log))
}

// resolveWhitespace drops empty leaves and structural whitespace, keeping a
// single space where a whitespace run separates two surviving siblings -
// intentional inter-word spacing is never collapsed away. Link children are
// normalized recursively and links left without content are dropped.
func resolveWhitespace(children []*Node, log *zap.Logger) []*Node {
	var (
		result  []*Node
		pending *Node // whitespace run awaiting a following survivor
	)
	for _, child := range children {
		if child.Kind == NodeLink {
			inner := normalizeInline(child.Children, log)
			if len(inner) == 0 {
				log.Debug("Dropping link without content", zap.String("url", child.URL))
				continue
			}
			link := *child
			link.Children = inner
			child = &link
		} else {
			if child.Kind != NodeText {
				log.Panic("Block node in inline position, transformer produced an illegal tree", zap.String("kind", string(child.Kind)))
			}
			if child.Value == "" {
				continue
			}
			if strings.TrimSpace(child.Value) == "" {
				if len(result) > 0 && pending == nil {
					space := *child
					space.Value = " "
					pending = &space
				}
				continue
			}
		}
		if pending != nil {
			result = append(result, pending)
			pending = nil
		}
		result = append(result, child)
	}
	// a trailing pending run has no following survivor and is dropped
	return result
}

// mergeInline merges adjacent text leaves carrying identical marks and
// adjacent link nodes carrying identical attributes.
func mergeInline(children []*Node) []*Node {
	var result []*Node
	for _, child := range children {
		if len(result) > 0 {
			last := result[len(result)-1]
			if last.Kind == NodeText && child.Kind == NodeText && last.Marks == child.Marks {
				merged := *last
				merged.Value += child.Value
				result[len(result)-1] = &merged
				continue
			}
			if last.SameLink(child) {
				merged := *last
				merged.Children = mergeInline(append(append([]*Node{}, last.Children...), child.Children...))
				result[len(result)-1] = &merged
				continue
			}
		}
		result = append(result, child)
	}
	return result
}
