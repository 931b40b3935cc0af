// Package richtext converts HTML fragments into documents conforming to
// Shopify's Rich Text metafield JSON schema.
//
// The conversion is a pure in-memory computation: one HTML fragment in, one
// schema-legal node tree out. Recognized block elements are p, h1..h6,
// blockquote, ul, ol and li; recognized inline formatting is strong/b, em/i
// and a. Everything else is transparent - its children are represented, the
// tag itself is not. The converter always produces a valid document for any
// parseable input, odd structure degrades instead of failing.
package richtext

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMalformedInput reports input that is not parseable text at all. It is
// the only user-facing error the converter produces.
var ErrMalformedInput = errors.New("malformed input")

// Convert parses the HTML fragment and returns the root of the normalized
// rich text tree. An empty fragment yields a root with no children.
func Convert(fragment string, log *zap.Logger) (*Node, error) {
	if !utf8.ValidString(fragment) {
		return nil, fmt.Errorf("%w: fragment is not valid UTF-8 text", ErrMalformedInput)
	}

	root := &Node{Kind: NodeRoot}
	if strings.TrimSpace(fragment) == "" {
		return root, nil
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse HTML fragment: %v", ErrMalformedInput, err)
	}

	root.Children = transformBlocks(findBody(doc), log)
	return Normalize(root, log), nil
}

// ConvertJSON converts the HTML fragment and serializes the result. The
// output is deterministic, converting the same fragment twice yields
// byte-identical JSON.
func ConvertJSON(fragment string, log *zap.Logger) ([]byte, error) {
	root, err := Convert(fragment, log)
	if err != nil {
		return nil, err
	}
	return root.MarshalJSON()
}

// findBody locates the body element the fragment was parsed into. The
// parser always fabricates html/head/body around a fragment, but fall back
// to the document root just in case.
func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	if body == nil {
		return doc
	}
	return body
}
