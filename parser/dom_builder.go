package parser

import (
	"github.com/pkg/errors"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// DOMBuilder is the write-only surface the tree builder drives. No
// callbacks flow back; a custom builder can mirror the construction
// into another document representation.
type DOMBuilder interface {
	CreateDocument() *dom.Node
	CreateDocumentFragment(doc *dom.Node) *dom.Node
	CreateElement(doc *dom.Node, namespace, localName string) *dom.Node
	CreateTextNode(doc *dom.Node, data string) *dom.Node
	CreateComment(doc *dom.Node, data string) *dom.Node
	CreateDocumentType(doc *dom.Node, name, publicID, systemID string) *dom.Node

	AppendChild(parent, child *dom.Node)
	InsertBefore(parent, child, ref *dom.Node)
	RemoveChild(parent, child *dom.Node)
	AppendData(node *dom.Node, data string)

	SetAttribute(el *dom.Node, name, value string)
	SetAttributeNS(el *dom.Node, namespace, prefix, local, value string)

	SetQuirksMode(doc *dom.Node, mode dom.QuirksMode)
	SetCharacterSet(doc *dom.Node, label string)
	ElementByID(doc *dom.Node, id string) *dom.Node
	SetFormOwner(el, form *dom.Node)
}

// coreDOMBuilder is the default DOMBuilder over the dom package. A
// refused mutation (for example a cycle) is logged and dropped; the
// parse carries on with the tree it has.
type coreDOMBuilder struct{}

// NewDOMBuilder returns the default in-memory builder.
func NewDOMBuilder() DOMBuilder {
	return coreDOMBuilder{}
}

func (coreDOMBuilder) CreateDocument() *dom.Node { return dom.NewDocument() }

func (coreDOMBuilder) CreateDocumentFragment(doc *dom.Node) *dom.Node {
	return dom.NewFragment(doc)
}

func (coreDOMBuilder) CreateElement(doc *dom.Node, namespace, localName string) *dom.Node {
	return dom.NewElement(doc, namespace, localName)
}

func (coreDOMBuilder) CreateTextNode(doc *dom.Node, data string) *dom.Node {
	return dom.NewText(doc, data)
}

func (coreDOMBuilder) CreateComment(doc *dom.Node, data string) *dom.Node {
	return dom.NewComment(doc, data)
}

func (coreDOMBuilder) CreateDocumentType(doc *dom.Node, name, publicID, systemID string) *dom.Node {
	return dom.NewDoctype(doc, name, publicID, systemID)
}

func (coreDOMBuilder) AppendChild(parent, child *dom.Node) {
	if err := parent.AppendChild(child); err != nil {
		log.WithError(errors.Wrap(err, "append child")).Debug("dom mutation refused")
	}
}

func (coreDOMBuilder) InsertBefore(parent, child, ref *dom.Node) {
	if err := parent.InsertBefore(child, ref); err != nil {
		log.WithError(errors.Wrap(err, "insert before")).Debug("dom mutation refused")
	}
}

func (coreDOMBuilder) RemoveChild(parent, child *dom.Node) {
	parent.RemoveChild(child)
}

func (coreDOMBuilder) AppendData(node *dom.Node, data string) {
	node.Data += data
}

func (coreDOMBuilder) SetAttribute(el *dom.Node, name, value string) {
	el.SetAttribute(name, value)
}

func (coreDOMBuilder) SetAttributeNS(el *dom.Node, namespace, prefix, local, value string) {
	el.SetAttributeNS(namespace, prefix, local, value)
}

func (coreDOMBuilder) SetQuirksMode(doc *dom.Node, mode dom.QuirksMode) {
	if doc.Document != nil {
		doc.Document.Mode = mode
	}
}

func (coreDOMBuilder) SetCharacterSet(doc *dom.Node, label string) {
	if doc.Document != nil {
		doc.Document.CharacterSet = label
	}
}

func (coreDOMBuilder) ElementByID(doc *dom.Node, id string) *dom.Node {
	return doc.ElementByID(id)
}

func (coreDOMBuilder) SetFormOwner(el, form *dom.Node) {
	el.FormOwner = form
}
