package richtext

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Deterministic JSON serialization with the key order Shopify documents:
// "type" first, node-specific fields next, "children" last. The same tree
// always serializes to byte-identical output, which encoding/json with its
// struct-driven maps cannot promise for optional fields, so keys are written
// out by hand and encoding/json is used only to escape string literals.

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	n.encode(&buf)
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) {
	buf.WriteString(`{"type":`)
	writeJSONString(buf, string(n.Kind))

	switch n.Kind {
	case NodeHeading:
		buf.WriteString(`,"level":`)
		buf.WriteString(strconv.Itoa(n.Level))
	case NodeList:
		buf.WriteString(`,"listType":`)
		writeJSONString(buf, string(n.ListType))
	case NodeText:
		buf.WriteString(`,"value":`)
		writeJSONString(buf, n.Value)
		if n.Marks.Bold {
			buf.WriteString(`,"bold":true`)
		}
		if n.Marks.Italic {
			buf.WriteString(`,"italic":true`)
		}
		buf.WriteByte('}')
		return
	case NodeLink:
		buf.WriteString(`,"url":`)
		writeJSONString(buf, n.URL)
		if n.Title != "" {
			buf.WriteString(`,"title":`)
			writeJSONString(buf, n.Title)
		}
		if n.Target != "" {
			buf.WriteString(`,"target":`)
			writeJSONString(buf, n.Target)
		}
	}

	buf.WriteString(`,"children":[`)
	for i, child := range n.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		child.encode(buf)
	}
	buf.WriteString(`]}`)
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// json.Marshal cannot fail on a string
	b, _ := json.Marshal(s)
	buf.Write(b)
}
