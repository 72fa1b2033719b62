// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez parses NCBI E-utilities XML responses into typed results.
package entrez

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultBaseURL is the NCBI E-utilities root endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// ErrUnsafeXML reports a document whose DTD declares entities. The decoder
// never resolves external entities on its own, and any custom entity
// reference fails strict decoding, but an inline entity declaration is an
// expansion payload and is rejected before parsing continues. Plain
// DOCTYPE declarations (which NCBI responses carry) pass through.
var ErrUnsafeXML = errors.New("unsafe XML: entity declarations are not accepted")

// Node is one XML element: its tag name, attributes, character data, and
// ordered child elements. Absent lookups return zero values, never errors,
// so field extraction stays total.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Parse reads a whole XML document into a Node tree. The decoder runs in
// strict mode, so undeclared entities and unbalanced markup fail the parse.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.Directive:
			if declaresEntities(t) {
				return nil, ErrUnsafeXML
			}
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing XML: document has no root element")
	}
	return root, nil
}

// declaresEntities reports whether a DTD directive carries inline entity
// declarations.
func declaresEntities(d xml.Directive) bool {
	return strings.Contains(strings.ToUpper(string(d)), "<!ENTITY")
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find walks a path of child names from n and returns the node at the end
// of the path, or nil if any hop is missing.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// String returns the text of the node at path and whether the node exists.
// A present-but-empty element yields ("", true), distinguishing it from an
// absent one.
func (n *Node) String(path ...string) (string, bool) {
	node := n.Find(path...)
	if node == nil {
		return "", false
	}
	return node.Text, true
}

// Int returns the integer value of the node at path. Absent or non-numeric
// values yield 0.
func (n *Node) Int(path ...string) int {
	s, ok := n.String(path...)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// Map converts the whole tree into a nested map keyed by tag name, suitable
// for JSON serialization. Text-only elements become strings, repeated child
// names become lists, and attributes become "@name" keys. Nothing from the
// document is dropped.
func (n *Node) Map() map[string]any {
	return map[string]any{n.Name: n.mapValue()}
}

func (n *Node) mapValue() any {
	if len(n.Children) == 0 && len(n.Attrs) == 0 {
		return n.Text
	}

	m := make(map[string]any)
	for _, a := range n.Attrs {
		m["@"+a.Name] = a.Value
	}
	for _, c := range n.Children {
		v := c.mapValue()
		switch existing := m[c.Name].(type) {
		case nil:
			m[c.Name] = v
		case []any:
			m[c.Name] = append(existing, v)
		default:
			m[c.Name] = []any{existing, v}
		}
	}
	if n.Text != "" {
		m["#text"] = n.Text
	}
	return m
}
