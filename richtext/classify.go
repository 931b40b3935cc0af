package richtext

import "golang.org/x/net/html/atom"

// tagClass is the behavior class an HTML element resolves to. Every tag
// outside the supported set is classUnknown: the element is transparent and
// only its children are represented.
type tagClass int

const (
	classUnknown tagClass = iota
	classBlock
	classMark
	classLink
)

// classification is the result of resolving a tag once per element. For
// classBlock the kind (and level/listType where applicable) identifies the
// node to produce, for classMark the mark field carries the toggled mark.
type classification struct {
	class    tagClass
	kind     NodeKind
	level    int
	listType ListType
	mark     Marks
}

// classify maps a tag to its behavior class. Pure lookup, no errors -
// unrecognized tags never fail, they come back transparent.
func classify(tag atom.Atom) classification {
	switch tag {
	case atom.P:
		return classification{class: classBlock, kind: NodeParagraph}
	case atom.H1:
		return classification{class: classBlock, kind: NodeHeading, level: 1}
	case atom.H2:
		return classification{class: classBlock, kind: NodeHeading, level: 2}
	case atom.H3:
		return classification{class: classBlock, kind: NodeHeading, level: 3}
	case atom.H4:
		return classification{class: classBlock, kind: NodeHeading, level: 4}
	case atom.H5:
		return classification{class: classBlock, kind: NodeHeading, level: 5}
	case atom.H6:
		return classification{class: classBlock, kind: NodeHeading, level: 6}
	case atom.Blockquote:
		return classification{class: classBlock, kind: NodeBlockquote}
	case atom.Ul:
		return classification{class: classBlock, kind: NodeList, listType: ListUnordered}
	case atom.Ol:
		return classification{class: classBlock, kind: NodeList, listType: ListOrdered}
	case atom.Li:
		return classification{class: classBlock, kind: NodeListItem}
	case atom.Strong, atom.B:
		return classification{class: classMark, mark: Marks{Bold: true}}
	case atom.Em, atom.I:
		return classification{class: classMark, mark: Marks{Italic: true}}
	case atom.A:
		return classification{class: classLink}
	default:
		return classification{class: classUnknown}
	}
}
