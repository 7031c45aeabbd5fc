package parser

import (
	"strings"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// The in-body rules, the largest mode by far, plus its closing
// helpers.

var bodyEndAllowedUnclosed = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true,
	"option": true, "p": true, "rb": true, "rp": true, "rt": true,
	"rtc": true, "tbody": true, "td": true, "tfoot": true, "th": true,
	"thead": true, "tr": true, "body": true, "html": true,
}

// insertText inserts a text run at the current insertion point.
func (b *TreeBuilder) insertText(data string) {
	b.insertCharacter(&Token{TokenType: characterToken, Data: data})
}

// copyMissingAttributes merges token attributes onto an already open
// element, keeping existing values.
func (b *TreeBuilder) copyMissingAttributes(el *dom.Node, t *Token) {
	for _, attr := range t.Attributes {
		if _, ok := el.GetAttribute(attr.Name); !ok {
			b.builder.SetAttribute(el, attr.Name, attr.Value)
		}
	}
}

// closeListItem implements the li and dd/dt opening steps, popping an
// unfinished item of the same family before the new one opens.
func (b *TreeBuilder) closeListItem(names ...string) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		if node.Namespace == dom.HTMLNamespace {
			for _, name := range names {
				if node.Name == name {
					b.generateImpliedEndTags(name)
					b.popUntilInclusive(name)
					return
				}
			}
			if node.Name == "address" || node.Name == "div" || node.Name == "p" {
				continue
			}
		}
		if isSpecialElement(node) {
			return
		}
	}
}

// anyOtherEndTag walks the stack for a matching element, the shared
// tail of the end tag rules.
func (b *TreeBuilder) anyOtherEndTag(t *Token) parseError {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		if node.Namespace == dom.HTMLNamespace && node.Name == t.TagName {
			var err parseError
			b.generateImpliedEndTags(t.TagName)
			if node != b.currentNode() {
				err = misplacedEndTag
			}
			for len(b.openElements) > i {
				b.pop()
			}
			return err
		}
		if isSpecialElement(node) {
			return misplacedEndTag
		}
	}
	return misplacedEndTag
}

func (b *TreeBuilder) inBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	// The handler runs under other modes through useRulesFor, so the
	// returned mode must be the real current one.
	mode := b.mode

	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			return false, mode, unexpectedNullCharacter
		}
		b.reconstructActiveFormattingElements()
		b.insertCharacter(t)
		if !isAllWhitespace(t.Data) {
			b.framesetOK = false
		}
		return false, mode, noError
	case commentToken:
		b.insertComment(t)
		return false, mode, noError
	case docTypeToken:
		return false, mode, unexpectedDoctype
	case startTagToken:
		return b.inBodyStartTag(t, mode)
	case endTagToken:
		return b.inBodyEndTag(t, mode)
	case endOfFileToken:
		if len(b.templateModes) > 0 {
			return b.useRulesFor(t, mode, inTemplate)
		}
		var err parseError
		for _, node := range b.openElements {
			if node.Namespace == dom.HTMLNamespace && !bodyEndAllowedUnclosed[node.Name] {
				err = unexpectedEOFInsideElement
				break
			}
		}
		b.stopParsing()
		return false, mode, err
	}
	return false, mode, noError
}

func (b *TreeBuilder) inBodyStartTag(t *Token, mode insertionMode) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "html":
		if b.stackContains("template") {
			return false, mode, misplacedStartTag
		}
		if len(b.openElements) > 0 {
			b.copyMissingAttributes(b.openElements[0], t)
		}
		return false, mode, misplacedStartTag
	case "base", "basefont", "bgsound", "link", "meta", "noframes",
		"script", "style", "template", "title":
		return b.useRulesFor(t, mode, inHead)
	case "body":
		if len(b.openElements) < 2 || b.openElements[1].Name != "body" ||
			b.stackContains("template") {
			return false, mode, misplacedStartTag
		}
		b.framesetOK = false
		b.copyMissingAttributes(b.openElements[1], t)
		return false, mode, misplacedStartTag
	case "frameset":
		if len(b.openElements) < 2 || b.openElements[1].Name != "body" || !b.framesetOK {
			return false, mode, misplacedStartTag
		}
		body := b.openElements[1]
		if body.Parent != nil {
			b.builder.RemoveChild(body.Parent, body)
		}
		for len(b.openElements) > 1 {
			b.pop()
		}
		b.insertHTMLElement(t)
		return false, inFrameset, misplacedStartTag
	case "address", "article", "aside", "blockquote", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset",
		"figcaption", "figure", "footer", "header", "hgroup", "main",
		"menu", "nav", "ol", "p", "section", "summary", "ul":
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		return false, mode, noError
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		var err parseError
		if cur := b.currentNode(); cur != nil && cur.Namespace == dom.HTMLNamespace && isHeading(cur.Name) {
			err = misplacedStartTag
			b.pop()
		}
		b.insertHTMLElement(t)
		return false, mode, err
	case "pre", "listing":
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		b.ignoreLF = true
		b.framesetOK = false
		return false, mode, noError
	case "form":
		if b.formPointer != nil && !b.stackContains("template") {
			return false, mode, formNestedInForm
		}
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		el := b.insertHTMLElement(t)
		if !b.stackContains("template") {
			b.formPointer = el
		}
		return false, mode, noError
	case "li":
		b.framesetOK = false
		b.closeListItem("li")
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		return false, mode, noError
	case "dd", "dt":
		b.framesetOK = false
		b.closeListItem("dd", "dt")
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		return false, mode, noError
	case "plaintext":
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		b.tokenizer.setState(plaintextState)
		return false, mode, noError
	case "button":
		var err parseError
		if b.elementInScope("button") {
			err = misplacedStartTag
			b.generateImpliedEndTags()
			b.popUntilInclusive("button")
		}
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(t)
		b.framesetOK = false
		return false, mode, err
	case "a":
		var err parseError
		for i := len(b.activeFormatting) - 1; i >= 0; i-- {
			e := b.activeFormatting[i]
			if e.node == nil {
				break
			}
			if e.node.Name == "a" {
				err = misplacedStartTag
				b.adoptionAgency(&Token{TokenType: endTagToken, TagName: "a"})
				b.removeFromActiveFormatting(e.node)
				b.removeFromStack(e.node)
				break
			}
		}
		b.reconstructActiveFormattingElements()
		el := b.insertHTMLElement(t)
		b.pushActiveFormatting(el, t)
		return false, mode, err
	case "b", "big", "code", "em", "font", "i", "s", "small",
		"strike", "strong", "tt", "u":
		b.reconstructActiveFormattingElements()
		el := b.insertHTMLElement(t)
		b.pushActiveFormatting(el, t)
		return false, mode, noError
	case "nobr":
		var err parseError
		b.reconstructActiveFormattingElements()
		if b.elementInScope("nobr") {
			err = misplacedStartTag
			b.adoptionAgency(&Token{TokenType: endTagToken, TagName: "nobr"})
			b.reconstructActiveFormattingElements()
		}
		el := b.insertHTMLElement(t)
		b.pushActiveFormatting(el, t)
		return false, mode, err
	case "applet", "marquee", "object":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(t)
		b.insertFormattingMarker()
		b.framesetOK = false
		return false, mode, noError
	case "table":
		if b.doc.Document != nil && b.doc.Document.Mode != dom.Quirks &&
			b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		b.framesetOK = false
		return false, inTable, noError
	case "area", "br", "embed", "img", "keygen", "wbr":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(t)
		b.pop()
		b.ackSelfClosing = true
		b.framesetOK = false
		return false, mode, noError
	case "input":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(t)
		b.pop()
		b.ackSelfClosing = true
		if typ, ok := t.Attr("type"); !ok || !strings.EqualFold(typ, "hidden") {
			b.framesetOK = false
		}
		return false, mode, noError
	case "param", "source", "track":
		b.insertHTMLElement(t)
		b.pop()
		b.ackSelfClosing = true
		return false, mode, noError
	case "hr":
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(t)
		b.pop()
		b.ackSelfClosing = true
		b.framesetOK = false
		return false, mode, noError
	case "image":
		t.TagName = "img"
		return true, mode, misplacedStartTag
	case "isindex":
		return false, mode, b.expandIsindex(t)
	case "textarea":
		b.insertHTMLElement(t)
		b.ignoreLF = true
		b.tokenizer.setState(rcDataState)
		b.originalMode = mode
		b.framesetOK = false
		return false, text, noError
	case "xmp":
		if b.elementInButtonScope("p") {
			b.closePElement()
		}
		b.reconstructActiveFormattingElements()
		b.framesetOK = false
		return false, b.genericRawText(t, mode), noError
	case "iframe":
		b.framesetOK = false
		return false, b.genericRawText(t, mode), noError
	case "noembed":
		return false, b.genericRawText(t, mode), noError
	case "noscript":
		if b.scripting {
			return false, b.genericRawText(t, mode), noError
		}
	case "select":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(t)
		b.framesetOK = false
		switch b.mode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable, noError
		}
		return false, inSelect, noError
	case "optgroup", "option":
		if cur := b.currentNode(); cur != nil && cur.Name == "option" {
			b.pop()
		}
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(t)
		return false, mode, noError
	case "rb", "rtc":
		var err parseError
		if b.elementInScope("ruby") {
			b.generateImpliedEndTags()
			if cur := b.currentNode(); cur == nil || cur.Name != "ruby" {
				err = misplacedStartTag
			}
		}
		b.insertHTMLElement(t)
		return false, mode, err
	case "rp", "rt":
		var err parseError
		if b.elementInScope("ruby") {
			b.generateImpliedEndTags("rtc")
			if cur := b.currentNode(); cur == nil || (cur.Name != "rtc" && cur.Name != "ruby") {
				err = misplacedStartTag
			}
		}
		b.insertHTMLElement(t)
		return false, mode, err
	case "math":
		b.reconstructActiveFormattingElements()
		adjustMathMLAttributes(t)
		b.insertForeignElement(t, dom.MathMLNamespace)
		if t.SelfClosing {
			b.pop()
			b.ackSelfClosing = true
		}
		return false, mode, noError
	case "svg":
		b.reconstructActiveFormattingElements()
		adjustSVGAttributes(t)
		b.insertForeignElement(t, dom.SVGNamespace)
		if t.SelfClosing {
			b.pop()
			b.ackSelfClosing = true
		}
		return false, mode, noError
	case "caption", "col", "colgroup", "frame", "head", "tbody",
		"td", "tfoot", "th", "thead", "tr":
		return false, mode, misplacedStartTag
	}
	b.reconstructActiveFormattingElements()
	b.insertHTMLElement(t)
	return false, mode, noError
}

func (b *TreeBuilder) inBodyEndTag(t *Token, mode insertionMode) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "template":
		return b.closeTemplate(t, mode)
	case "body", "html":
		if !b.elementInScope("body") {
			return false, mode, misplacedEndTag
		}
		var err parseError
		for _, node := range b.openElements {
			if node.Namespace == dom.HTMLNamespace && !bodyEndAllowedUnclosed[node.Name] {
				err = misplacedEndTag
				break
			}
		}
		if t.TagName == "html" {
			return true, afterBody, err
		}
		return false, afterBody, err
	case "address", "article", "aside", "blockquote", "button",
		"center", "details", "dialog", "dir", "div", "dl", "fieldset",
		"figcaption", "figure", "footer", "header", "hgroup",
		"listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "ul":
		if !b.elementInScope(t.TagName) {
			return false, mode, misplacedEndTag
		}
		var err parseError
		b.generateImpliedEndTags()
		if cur := b.currentNode(); cur == nil || cur.Name != t.TagName {
			err = misplacedEndTag
		}
		b.popUntilInclusive(t.TagName)
		return false, mode, err
	case "form":
		if !b.stackContains("template") {
			node := b.formPointer
			b.formPointer = nil
			if node == nil || !b.nodeInScope(node) {
				return false, mode, misplacedEndTag
			}
			var err parseError
			b.generateImpliedEndTags()
			if node != b.currentNode() {
				err = misplacedEndTag
			}
			b.removeFromStack(node)
			return false, mode, err
		}
		if !b.elementInScope("form") {
			return false, mode, misplacedEndTag
		}
		var err parseError
		b.generateImpliedEndTags()
		if cur := b.currentNode(); cur == nil || cur.Name != "form" {
			err = misplacedEndTag
		}
		b.popUntilInclusive("form")
		return false, mode, err
	case "p":
		if !b.elementInButtonScope("p") {
			b.insertHTMLElement(syntheticToken("p"))
			b.closePElement()
			return false, mode, misplacedEndTag
		}
		b.closePElement()
		return false, mode, noError
	case "li":
		if !b.elementInListItemScope("li") {
			return false, mode, misplacedEndTag
		}
		var err parseError
		b.generateImpliedEndTags("li")
		if cur := b.currentNode(); cur == nil || cur.Name != "li" {
			err = misplacedEndTag
		}
		b.popUntilInclusive("li")
		return false, mode, err
	case "dd", "dt":
		if !b.elementInScope(t.TagName) {
			return false, mode, misplacedEndTag
		}
		var err parseError
		b.generateImpliedEndTags(t.TagName)
		if cur := b.currentNode(); cur == nil || cur.Name != t.TagName {
			err = misplacedEndTag
		}
		b.popUntilInclusive(t.TagName)
		return false, mode, err
	case "h1", "h2", "h3", "h4", "h5", "h6":
		found := false
		for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
			if b.elementInScope(h) {
				found = true
				break
			}
		}
		if !found {
			return false, mode, misplacedEndTag
		}
		var err parseError
		b.generateImpliedEndTags()
		if cur := b.currentNode(); cur == nil || cur.Name != t.TagName {
			err = misplacedEndTag
		}
		b.popUntilInclusive("h1", "h2", "h3", "h4", "h5", "h6")
		return false, mode, err
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s",
		"small", "strike", "strong", "tt", "u":
		fallthroughToAnyOther, err := b.adoptionAgency(t)
		if fallthroughToAnyOther {
			return false, mode, b.anyOtherEndTag(t)
		}
		return false, mode, err
	case "applet", "marquee", "object":
		if !b.elementInScope(t.TagName) {
			return false, mode, misplacedEndTag
		}
		var err parseError
		b.generateImpliedEndTags()
		if cur := b.currentNode(); cur == nil || cur.Name != t.TagName {
			err = misplacedEndTag
		}
		b.popUntilInclusive(t.TagName)
		b.clearFormattingToMarker()
		return false, mode, err
	case "br":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(syntheticToken("br"))
		b.pop()
		b.framesetOK = false
		return false, mode, misplacedEndTag
	}
	return false, mode, b.anyOtherEndTag(t)
}

func isHeading(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// expandIsindex rewrites the legacy <isindex> tag into the form,
// label and input structure old parsers produced.
func (b *TreeBuilder) expandIsindex(t *Token) parseError {
	b.ackSelfClosing = true
	if b.formPointer != nil && !b.stackContains("template") {
		return unexpectedIsindex
	}
	b.framesetOK = false
	if b.elementInButtonScope("p") {
		b.closePElement()
	}

	formToken := syntheticToken("form")
	if action, ok := t.Attr("action"); ok {
		formToken.Attributes = append(formToken.Attributes, Attribute{Name: "action", Value: action})
	}
	form := b.insertHTMLElement(formToken)
	if !b.stackContains("template") {
		b.formPointer = form
	}

	b.insertHTMLElement(syntheticToken("hr"))
	b.pop()

	b.insertHTMLElement(syntheticToken("label"))
	prompt := "This is a searchable index. Enter search keywords: "
	if p, ok := t.Attr("prompt"); ok {
		prompt = p
	}
	b.insertText(prompt)

	inputToken := syntheticToken("input")
	for _, attr := range t.Attributes {
		switch attr.Name {
		case "name", "action", "prompt":
		default:
			inputToken.Attributes = append(inputToken.Attributes, attr)
		}
	}
	inputToken.Attributes = append(inputToken.Attributes, Attribute{Name: "name", Value: "isindex"})
	b.insertHTMLElement(inputToken)
	b.pop()
	b.pop() // label

	b.insertHTMLElement(syntheticToken("hr"))
	b.pop()

	b.popUntilInclusive("form")
	if !b.stackContains("template") {
		b.formPointer = nil
	}
	return unexpectedIsindex
}
