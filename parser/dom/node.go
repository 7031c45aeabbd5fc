// Package dom carries the concrete node types produced by the HTML
// parser's builder adapter. It is a write-only sink for the parser:
// the parser mutates it through the adapter and never reads anything
// back except tree shape.
package dom

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
	// ScopeMarkerNode never appears in a document; the tree builder
	// uses it on the list of active formatting elements.
	ScopeMarkerNode
)

// Namespace URIs used during tree construction.
const (
	HTMLNamespace   = "http://www.w3.org/1999/xhtml"
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"
	SVGNamespace    = "http://www.w3.org/2000/svg"
	XLinkNamespace  = "http://www.w3.org/1999/xlink"
	XMLNamespace    = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace  = "http://www.w3.org/2000/xmlns/"
)

type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	Quirks        QuirksMode = "quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
)

// Attr is one attribute on an element. Order of appearance is
// preserved; Name is the qualified name as written (lowercased by the
// tokenizer for HTML, case-adjusted for foreign content).
type Attr struct {
	Namespace string
	Prefix    string
	LocalName string
	Name      string
	Value     string
}

// DocumentData holds the document-level state the parser writes.
type DocumentData struct {
	Mode         QuirksMode
	CharacterSet string
}

// Node is every kind of tree participant. Which fields are meaningful
// depends on Type, the same collapsed representation the reference
// DOM used for its parser-facing surface.
type Node struct {
	Type      NodeType
	Name      string
	Namespace string
	Data      string
	PublicID  string
	SystemID  string
	Attrs     []Attr

	Parent   *Node
	Children []*Node

	OwnerDocument *Node
	Document      *DocumentData

	// FormOwner is the parser-assigned form owner for
	// form-associated elements.
	FormOwner *Node

	// Contents is the separate tree that <template> elements own.
	Contents *Node
}

func NewDocument() *Node {
	d := &Node{
		Type:     DocumentNode,
		Name:     "#document",
		Document: &DocumentData{Mode: NoQuirks, CharacterSet: "utf-8"},
	}
	d.OwnerDocument = d
	return d
}

func NewFragment(owner *Node) *Node {
	return &Node{Type: DocumentFragmentNode, Name: "#document-fragment", OwnerDocument: owner}
}

func NewElement(owner *Node, namespace, name string) *Node {
	return &Node{Type: ElementNode, Name: name, Namespace: namespace, OwnerDocument: owner}
}

func NewText(owner *Node, data string) *Node {
	return &Node{Type: TextNode, Name: "#text", Data: data, OwnerDocument: owner}
}

func NewComment(owner *Node, data string) *Node {
	return &Node{Type: CommentNode, Name: "#comment", Data: data, OwnerDocument: owner}
}

func NewDoctype(owner *Node, name, publicID, systemID string) *Node {
	return &Node{
		Type:          DocumentTypeNode,
		Name:          name,
		PublicID:      publicID,
		SystemID:      systemID,
		OwnerDocument: owner,
	}
}

func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) childIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) PreviousSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.childIndex(n)
	if i <= 0 {
		return nil
	}
	return n.Parent.Children[i-1]
}

func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.childIndex(n)
	if i == -1 || i == len(n.Parent.Children)-1 {
		return nil
	}
	return n.Parent.Children[i+1]
}

// contains reports whether n is an inclusive ancestor of other.
func (n *Node) contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// AppendChild attaches child as the last child of n, detaching it
// from any previous parent first. Cyclic insertions are refused.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore attaches child immediately before ref, or at the end
// when ref is nil.
func (n *Node) InsertBefore(child, ref *Node) error {
	if child.contains(n) {
		return errors.Errorf("dom: cyclic insertion of <%s>", child.Name)
	}
	if ref != nil && ref.Parent != n {
		return errors.Errorf("dom: reference node <%s> is not a child", ref.Name)
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	if ref == nil {
		n.Children = append(n.Children, child)
	} else {
		i := n.childIndex(ref)
		n.Children = append(n.Children, nil)
		copy(n.Children[i+1:], n.Children[i:])
		n.Children[i] = child
	}
	child.Parent = n
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child.Parent != n {
		return errors.Errorf("dom: <%s> is not a child of <%s>", child.Name, n.Name)
	}
	n.detach(child)
	return nil
}

func (n *Node) detach(child *Node) {
	i := n.childIndex(child)
	if i == -1 {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.Parent = nil
}

// ReparentChildren moves every child of n under newParent, keeping
// order.
func (n *Node) ReparentChildren(newParent *Node) {
	for len(n.Children) > 0 {
		c := n.Children[0]
		n.detach(c)
		newParent.Children = append(newParent.Children, c)
		c.Parent = newParent
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

func (n *Node) SetAttribute(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, LocalName: name, Value: value})
}

func (n *Node) SetAttributeNS(namespace, prefix, local, value string) {
	name := local
	if prefix != "" {
		name = prefix + ":" + local
	}
	for i := range n.Attrs {
		if n.Attrs[i].Name == name && n.Attrs[i].Namespace == namespace {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{
		Namespace: namespace,
		Prefix:    prefix,
		LocalName: local,
		Name:      name,
		Value:     value,
	})
}

// ElementByID walks the tree under n for the first element whose id
// attribute equals id, in tree order. Template contents are not
// searched; the parser never associates across template boundaries.
func (n *Node) ElementByID(id string) *Node {
	if n.Type == ElementNode {
		if v, ok := n.GetAttribute("id"); ok && v == id {
			return n
		}
	}
	for _, c := range n.Children {
		if found := c.ElementByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Dump renders the tree in the html5lib tree-construction format,
// the same format the test fixtures use.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return strings.TrimRight(b.String(), "\n")
}

func (n *Node) dump(b *strings.Builder, depth int) {
	writeLine := func(depth int, s string) {
		b.WriteString("| ")
		for i := 0; i < depth; i++ {
			b.WriteString("  ")
		}
		b.WriteString(s)
		b.WriteString("\n")
	}

	switch n.Type {
	case DocumentNode:
		b.WriteString("#document\n")
		depth--
	case DocumentFragmentNode:
		b.WriteString("#document-fragment\n")
		depth--
	case DocumentTypeNode:
		s := "<!DOCTYPE " + n.Name
		if n.PublicID != "" || n.SystemID != "" {
			s += " \"" + n.PublicID + "\" \"" + n.SystemID + "\""
		}
		writeLine(depth, s+">")
	case ElementNode:
		name := n.Name
		switch n.Namespace {
		case SVGNamespace:
			name = "svg " + name
		case MathMLNamespace:
			name = "math " + name
		}
		writeLine(depth, "<"+name+">")
		attrs := make([]Attr, len(n.Attrs))
		copy(attrs, n.Attrs)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		for _, a := range attrs {
			an := a.Name
			if a.Prefix != "" {
				an = a.Prefix + " " + a.LocalName
			}
			writeLine(depth+1, an+"=\""+a.Value+"\"")
		}
		if n.Contents != nil {
			writeLine(depth+1, "content")
			for _, c := range n.Contents.Children {
				c.dump(b, depth+2)
			}
		}
	case TextNode:
		writeLine(depth, "\""+n.Data+"\"")
	case CommentNode:
		writeLine(depth, "<!-- "+n.Data+" -->")
	}

	for _, c := range n.Children {
		c.dump(b, depth+1)
	}
}
