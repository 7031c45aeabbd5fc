package parser

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// HTML fragment serialization, the inverse that innerHTML reads back.

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Basefont: true,
	atom.Bgsound: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Frame: true, atom.Hr: true,
	atom.Img: true, atom.Input: true, atom.Keygen: true,
	atom.Link: true, atom.Meta: true, atom.Param: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

func isVoidElement(n *dom.Node) bool {
	if n.Namespace != dom.HTMLNamespace {
		return false
	}
	return voidElements[atom.Lookup([]byte(n.Name))]
}

// rawTextContainers hold text that serializes without escaping.
var rawTextContainers = map[atom.Atom]bool{
	atom.Style: true, atom.Script: true, atom.Xmp: true,
	atom.Iframe: true, atom.Noembed: true, atom.Noframes: true,
	atom.Plaintext: true,
}

func isRawTextContainer(n *dom.Node) bool {
	if n == nil || n.Namespace != dom.HTMLNamespace {
		return false
	}
	return rawTextContainers[atom.Lookup([]byte(n.Name))]
}

func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case ' ':
			sb.WriteString("&nbsp;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeAttributeValue(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '"':
			sb.WriteString("&quot;")
		case ' ':
			sb.WriteString("&nbsp;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func serializedAttributeName(a dom.Attr) string {
	if a.Prefix != "" {
		return a.Prefix + ":" + a.LocalName
	}
	return a.Name
}

// Serialize renders the children of the node as HTML text, following
// the fragment serialization algorithm. Passing an element serializes
// its inner content; passing a document or fragment serializes the
// whole tree.
func Serialize(n *dom.Node) string {
	var sb strings.Builder
	serializeChildren(&sb, n)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, n *dom.Node) {
	if n.Type == dom.ElementNode && n.Namespace == dom.HTMLNamespace &&
		n.Name == "template" && n.Contents != nil {
		for _, c := range n.Contents.Children {
			serializeNode(sb, c)
		}
		return
	}
	for _, c := range n.Children {
		serializeNode(sb, c)
	}
}

func serializeNode(sb *strings.Builder, n *dom.Node) {
	switch n.Type {
	case dom.ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Name)
		for _, a := range n.Attrs {
			sb.WriteByte(' ')
			sb.WriteString(serializedAttributeName(a))
			sb.WriteString(`="`)
			sb.WriteString(escapeAttributeValue(a.Value))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if isVoidElement(n) {
			return
		}
		serializeChildren(sb, n)
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
	case dom.TextNode:
		if isRawTextContainer(n.Parent) {
			sb.WriteString(n.Data)
			return
		}
		sb.WriteString(escapeText(n.Data))
	case dom.CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case dom.DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
	case dom.DocumentNode, dom.DocumentFragmentNode:
		serializeChildren(sb, n)
	}
}
