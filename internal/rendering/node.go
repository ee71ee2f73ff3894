// Package rendering maps ResumeData onto a template's layout tree and serializes it.
package rendering

import "strings"

// Kind identifies what a Node represents in the layout tree.
type Kind string

// Node kinds
const (
	KindDocument    Kind = "document"
	KindHeader      Kind = "header"
	KindName        Kind = "name"
	KindContact     Kind = "contact"
	KindContactItem Kind = "contact-item"
	KindColumn      Kind = "column"
	KindSection     Kind = "section"
	KindHeading     Kind = "heading"
	KindParagraph   Kind = "paragraph"
	KindList        Kind = "list"
	KindItem        Kind = "item"
	KindEntry       Kind = "entry"
	KindField       Kind = "field"
	KindTabs        Kind = "tabs"
	KindTab         Kind = "tab"
	KindPanel       Kind = "panel"
)

// Node is one element of the renderable layout tree.
//
// Key is derived from the data path the node renders ("experience", "experience.0",
// "experience.0.company"), so list indices are the only identity a node carries.
type Node struct {
	Kind     Kind    `json:"kind"`
	Key      string  `json:"key,omitempty"`
	Class    string  `json:"class,omitempty"`
	Text     string  `json:"text,omitempty"`
	Href     string  `json:"href,omitempty"`
	Active   bool    `json:"active,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func newNode(kind Kind, key, class string, children ...*Node) *Node {
	n := &Node{Kind: kind, Key: key, Class: class}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func textNode(kind Kind, key, class, text string) *Node {
	return &Node{Kind: kind, Key: key, Class: class, Text: text}
}

// Walk visits n and its descendants depth first. Returning false from fn skips the children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node, depth first, whose Key equals key.
func (n *Node) Find(key string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Key == key {
			found = c
			return false
		}
		return true
	})
	return found
}

// PlainText flattens every text-bearing node into newline separated plain text.
func (n *Node) PlainText() string {
	var lines []string
	n.Walk(func(c *Node) bool {
		if c.Text != "" {
			lines = append(lines, c.Text)
		}
		return true
	})
	return strings.Join(lines, "\n")
}
