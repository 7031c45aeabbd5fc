package parser

import "github.com/quantmew/Lithium-sub000/parser/dom"

// Mode handlers other than the in-body and table families, which have
// their own files.

// syntheticToken fabricates the start tag the rules insert on the
// document's behalf, such as the implied <head> and <body>.
func syntheticToken(name string) *Token {
	return &Token{TokenType: startTagToken, TagName: name}
}

func missingToEmpty(s string) string {
	if s == missing {
		return ""
	}
	return s
}

// genericRCDATA and genericRawText implement the two generic raw text
// element parsing algorithms; the caller switches to the text mode.
func (b *TreeBuilder) genericRCDATA(t *Token, current insertionMode) insertionMode {
	b.insertHTMLElement(t)
	b.tokenizer.setState(rcDataState)
	b.originalMode = current
	return text
}

func (b *TreeBuilder) genericRawText(t *Token, current insertionMode) insertionMode {
	b.insertHTMLElement(t)
	b.tokenizer.setState(rawTextState)
	b.originalMode = current
	return text
}

func (b *TreeBuilder) initialModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			return false, initial, noError
		}
	case commentToken:
		b.insertCommentAt(t, b.doc)
		return false, initial, noError
	case docTypeToken:
		var err parseError
		if t.TagName != "html" || t.PublicIdentifier != missing ||
			(t.SystemIdentifier != missing && t.SystemIdentifier != "about:legacy-compat") {
			err = unexpectedDoctype
		}
		dt := b.builder.CreateDocumentType(b.doc, missingToEmpty(t.TagName),
			missingToEmpty(t.PublicIdentifier), missingToEmpty(t.SystemIdentifier))
		b.builder.AppendChild(b.doc, dt)
		switch {
		case b.isForceQuirks(t):
			if b.cannotChangeMode {
				b.reportError(parserCannotChangeModeError, t)
			} else {
				b.builder.SetQuirksMode(b.doc, dom.Quirks)
			}
		case b.isLimitedQuirks(t):
			if b.cannotChangeMode {
				b.reportError(parserCannotChangeModeError, t)
			} else {
				b.builder.SetQuirksMode(b.doc, dom.LimitedQuirks)
			}
		}
		return false, beforeHTML, err
	}
	var err parseError
	if !b.iframeSrcdoc {
		err = generalParseError
		if b.cannotChangeMode {
			b.reportError(parserCannotChangeModeError, t)
		} else {
			b.builder.SetQuirksMode(b.doc, dom.Quirks)
		}
	}
	return true, beforeHTML, err
}

func (b *TreeBuilder) beforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, beforeHTML, unexpectedDoctype
	case commentToken:
		b.insertCommentAt(t, b.doc)
		return false, beforeHTML, noError
	case characterToken:
		if isAllWhitespace(t.Data) {
			return false, beforeHTML, noError
		}
	case startTagToken:
		if t.TagName == "html" {
			el := b.createElementForToken(t, dom.HTMLNamespace)
			b.builder.AppendChild(b.doc, el)
			b.push(el)
			return false, beforeHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHTML, misplacedEndTag
		}
	}
	el := b.builder.CreateElement(b.doc, dom.HTMLNamespace, "html")
	b.builder.AppendChild(b.doc, el)
	b.push(el)
	return true, beforeHead, noError
}

func (b *TreeBuilder) beforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			return false, beforeHead, noError
		}
	case commentToken:
		b.insertComment(t)
		return false, beforeHead, noError
	case docTypeToken:
		return false, beforeHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, beforeHead, inBody)
		case "head":
			b.headPointer = b.insertHTMLElement(t)
			return false, inHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHead, misplacedEndTag
		}
	}
	b.headPointer = b.insertHTMLElement(syntheticToken("head"))
	return true, inHead, noError
}

func (b *TreeBuilder) inHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			b.insertCharacter(t)
			return false, inHead, noError
		}
	case commentToken:
		b.insertComment(t)
		return false, inHead, noError
	case docTypeToken:
		return false, inHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, inHead, inBody)
		case "base", "basefont", "bgsound", "link":
			b.insertHTMLElement(t)
			b.pop()
			b.ackSelfClosing = true
			return false, inHead, noError
		case "meta":
			b.insertHTMLElement(t)
			b.pop()
			b.ackSelfClosing = true
			if b.onMeta != nil {
				b.onMeta(t)
			}
			return false, inHead, noError
		case "title":
			return false, b.genericRCDATA(t, inHead), noError
		case "noscript":
			if !b.scripting {
				b.insertHTMLElement(t)
				return false, inHeadNoScript, noError
			}
			return false, b.genericRawText(t, inHead), noError
		case "noframes", "style":
			return false, b.genericRawText(t, inHead), noError
		case "script":
			b.insertHTMLElement(t)
			b.tokenizer.setState(scriptDataState)
			b.originalMode = inHead
			return false, text, noError
		case "template":
			b.insertHTMLElement(t)
			b.insertFormattingMarker()
			b.framesetOK = false
			b.templateModes = append(b.templateModes, inTemplate)
			return false, inTemplate, noError
		case "head":
			return false, inHead, misplacedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			b.pop()
			return false, afterHead, noError
		case "body", "html", "br":
		case "template":
			return b.closeTemplate(t, inHead)
		default:
			return false, inHead, misplacedEndTag
		}
	}
	b.pop()
	return true, afterHead, noError
}

// closeTemplate handles an explicit </template> from any mode that
// forwards it here.
func (b *TreeBuilder) closeTemplate(t *Token, current insertionMode) (bool, insertionMode, parseError) {
	if !b.stackContains("template") {
		return false, current, misplacedEndTag
	}
	var err parseError
	b.generateImpliedEndTagsThoroughly()
	if cur := b.currentNode(); cur == nil || cur.Name != "template" || cur.Namespace != dom.HTMLNamespace {
		err = misplacedEndTag
	}
	b.popUntilInclusive("template")
	b.clearFormattingToMarker()
	if len(b.templateModes) > 0 {
		b.templateModes = b.templateModes[:len(b.templateModes)-1]
	}
	return false, b.resetInsertionMode(), err
}

func (b *TreeBuilder) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, inHeadNoScript, unexpectedDoctype
	case characterToken:
		if isAllWhitespace(t.Data) {
			return b.useRulesFor(t, inHeadNoScript, inHead)
		}
	case commentToken:
		return b.useRulesFor(t, inHeadNoScript, inHead)
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, inHeadNoScript, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return b.useRulesFor(t, inHeadNoScript, inHead)
		case "head", "noscript":
			return false, inHeadNoScript, misplacedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			b.pop()
			return false, inHead, noError
		case "br":
		default:
			return false, inHeadNoScript, misplacedEndTag
		}
	}
	b.pop()
	return true, inHead, generalParseError
}

func (b *TreeBuilder) afterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			b.insertCharacter(t)
			return false, afterHead, noError
		}
	case commentToken:
		b.insertComment(t)
		return false, afterHead, noError
	case docTypeToken:
		return false, afterHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, afterHead, inBody)
		case "body":
			b.insertHTMLElement(t)
			b.framesetOK = false
			return false, inBody, noError
		case "frameset":
			b.insertHTMLElement(t)
			return false, inFrameset, noError
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			// Reopen the head for the stray metadata element.
			b.push(b.headPointer)
			reprocess, next, _ := b.useRulesFor(t, afterHead, inHead)
			b.removeFromStack(b.headPointer)
			return reprocess, next, misplacedStartTag
		case "head":
			return false, afterHead, misplacedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			return b.closeTemplate(t, afterHead)
		case "body", "html", "br":
		default:
			return false, afterHead, misplacedEndTag
		}
	}
	b.insertHTMLElement(syntheticToken("body"))
	return true, inBody, noError
}

func (b *TreeBuilder) textModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		b.insertCharacter(t)
		return false, text, noError
	case endOfFileToken:
		b.pop()
		return true, b.originalMode, unexpectedEOFInsideElement
	case endTagToken:
		el := b.pop()
		if t.TagName == "script" && el != nil && el.Name == "script" {
			b.pendingScript = el
		}
		return false, b.originalMode, noError
	}
	return false, text, noError
}

func (b *TreeBuilder) inColumnGroupModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			b.insertCharacter(t)
			return false, inColumnGroup, noError
		}
	case commentToken:
		b.insertComment(t)
		return false, inColumnGroup, noError
	case docTypeToken:
		return false, inColumnGroup, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, inColumnGroup, inBody)
		case "col":
			b.insertHTMLElement(t)
			b.pop()
			b.ackSelfClosing = true
			return false, inColumnGroup, noError
		case "template":
			return b.useRulesFor(t, inColumnGroup, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if cur := b.currentNode(); cur == nil || cur.Name != "colgroup" {
				return false, inColumnGroup, misplacedEndTag
			}
			b.pop()
			return false, inTable, noError
		case "col":
			return false, inColumnGroup, misplacedEndTag
		case "template":
			return b.useRulesFor(t, inColumnGroup, inHead)
		}
	case endOfFileToken:
		return b.useRulesFor(t, inColumnGroup, inBody)
	}
	if cur := b.currentNode(); cur == nil || cur.Name != "colgroup" {
		return false, inColumnGroup, generalParseError
	}
	b.pop()
	return true, inTable, noError
}

func (b *TreeBuilder) inCaptionModeHandler(t *Token) (bool, insertionMode, parseError) {
	closeCaption := func() (insertionMode, parseError) {
		var err parseError
		b.generateImpliedEndTags()
		if cur := b.currentNode(); cur == nil || cur.Name != "caption" {
			err = misplacedEndTag
		}
		b.popUntilInclusive("caption")
		b.clearFormattingToMarker()
		return inTable, err
	}

	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.elementInTableScope("caption") {
				return false, inCaption, misplacedStartTag
			}
			next, err := closeCaption()
			return true, next, err
		}
	case endTagToken:
		switch t.TagName {
		case "caption":
			if !b.elementInTableScope("caption") {
				return false, inCaption, misplacedEndTag
			}
			next, err := closeCaption()
			return false, next, err
		case "table":
			if !b.elementInTableScope("caption") {
				return false, inCaption, misplacedEndTag
			}
			next, err := closeCaption()
			return true, next, err
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, inCaption, misplacedEndTag
		}
	}
	return b.useRulesFor(t, inCaption, inBody)
}

func (b *TreeBuilder) inSelectModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			return false, inSelect, unexpectedNullCharacter
		}
		b.insertCharacter(t)
		return false, inSelect, noError
	case commentToken:
		b.insertComment(t)
		return false, inSelect, noError
	case docTypeToken:
		return false, inSelect, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, inSelect, inBody)
		case "option":
			if cur := b.currentNode(); cur != nil && cur.Name == "option" {
				b.pop()
			}
			b.insertHTMLElement(t)
			return false, inSelect, noError
		case "optgroup":
			if cur := b.currentNode(); cur != nil && cur.Name == "option" {
				b.pop()
			}
			if cur := b.currentNode(); cur != nil && cur.Name == "optgroup" {
				b.pop()
			}
			b.insertHTMLElement(t)
			return false, inSelect, noError
		case "hr":
			if cur := b.currentNode(); cur != nil && cur.Name == "option" {
				b.pop()
			}
			if cur := b.currentNode(); cur != nil && cur.Name == "optgroup" {
				b.pop()
			}
			b.insertHTMLElement(t)
			b.pop()
			b.ackSelfClosing = true
			return false, inSelect, noError
		case "select":
			if !b.elementInSelectScope("select") {
				return false, inSelect, misplacedStartTag
			}
			b.popUntilInclusive("select")
			return false, b.resetInsertionMode(), misplacedStartTag
		case "input", "keygen", "textarea":
			if !b.elementInSelectScope("select") {
				return false, inSelect, misplacedStartTag
			}
			b.popUntilInclusive("select")
			return true, b.resetInsertionMode(), misplacedStartTag
		case "script", "template":
			return b.useRulesFor(t, inSelect, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			if cur := b.currentNode(); cur != nil && cur.Name == "option" &&
				len(b.openElements) > 1 &&
				b.openElements[len(b.openElements)-2].Name == "optgroup" {
				b.pop()
			}
			if cur := b.currentNode(); cur != nil && cur.Name == "optgroup" {
				b.pop()
				return false, inSelect, noError
			}
			return false, inSelect, misplacedEndTag
		case "option":
			if cur := b.currentNode(); cur != nil && cur.Name == "option" {
				b.pop()
				return false, inSelect, noError
			}
			return false, inSelect, misplacedEndTag
		case "select":
			if !b.elementInSelectScope("select") {
				return false, inSelect, misplacedEndTag
			}
			b.popUntilInclusive("select")
			return false, b.resetInsertionMode(), noError
		case "template":
			return b.closeTemplate(t, inSelect)
		}
	case endOfFileToken:
		return b.useRulesFor(t, inSelect, inBody)
	}
	return false, inSelect, generalParseError
}

func (b *TreeBuilder) inSelectInTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.popUntilInclusive("select")
			return true, b.resetInsertionMode(), misplacedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			if !b.elementInTableScope(t.TagName) {
				return false, inSelectInTable, misplacedEndTag
			}
			b.popUntilInclusive("select")
			return true, b.resetInsertionMode(), misplacedEndTag
		}
	}
	return b.useRulesFor(t, inSelectInTable, inSelect)
}

func (b *TreeBuilder) inTemplateModeHandler(t *Token) (bool, insertionMode, parseError) {
	redirect := func(target insertionMode) (bool, insertionMode, parseError) {
		if len(b.templateModes) > 0 {
			b.templateModes = b.templateModes[:len(b.templateModes)-1]
		}
		b.templateModes = append(b.templateModes, target)
		return true, target, noError
	}

	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		return b.useRulesFor(t, inTemplate, inBody)
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			return b.useRulesFor(t, inTemplate, inHead)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			return redirect(inTable)
		case "col":
			return redirect(inColumnGroup)
		case "tr":
			return redirect(inTableBody)
		case "td", "th":
			return redirect(inRow)
		}
		return redirect(inBody)
	case endTagToken:
		if t.TagName == "template" {
			return b.closeTemplate(t, inTemplate)
		}
		return false, inTemplate, misplacedEndTag
	case endOfFileToken:
		if !b.stackContains("template") {
			b.stopParsing()
			return false, inTemplate, noError
		}
		b.popUntilInclusive("template")
		b.clearFormattingToMarker()
		if len(b.templateModes) > 0 {
			b.templateModes = b.templateModes[:len(b.templateModes)-1]
		}
		return true, b.resetInsertionMode(), unexpectedEOFInsideElement
	}
	return false, inTemplate, noError
}

func (b *TreeBuilder) afterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			return b.useRulesFor(t, afterBody, inBody)
		}
	case commentToken:
		if len(b.openElements) > 0 {
			b.insertCommentAt(t, b.openElements[0])
		}
		return false, afterBody, noError
	case docTypeToken:
		return false, afterBody, unexpectedDoctype
	case startTagToken:
		if t.TagName == "html" {
			return b.useRulesFor(t, afterBody, inBody)
		}
	case endTagToken:
		if t.TagName == "html" {
			if b.fragmentContext != nil {
				return false, afterBody, misplacedEndTag
			}
			return false, afterAfterBody, noError
		}
	case endOfFileToken:
		b.stopParsing()
		return false, afterBody, noError
	}
	return true, inBody, generalParseError
}

func (b *TreeBuilder) inFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			b.insertCharacter(t)
			return false, inFrameset, noError
		}
	case commentToken:
		b.insertComment(t)
		return false, inFrameset, noError
	case docTypeToken:
		return false, inFrameset, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, inFrameset, inBody)
		case "frameset":
			b.insertHTMLElement(t)
			return false, inFrameset, noError
		case "frame":
			b.insertHTMLElement(t)
			b.pop()
			b.ackSelfClosing = true
			return false, inFrameset, noError
		case "noframes":
			return b.useRulesFor(t, inFrameset, inHead)
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if cur := b.currentNode(); cur != nil && cur.Name == "html" {
				return false, inFrameset, misplacedEndTag
			}
			b.pop()
			if b.fragmentContext == nil {
				if cur := b.currentNode(); cur != nil && cur.Name != "frameset" {
					return false, afterFrameset, noError
				}
			}
			return false, inFrameset, noError
		}
	case endOfFileToken:
		var err parseError
		if cur := b.currentNode(); cur != nil && cur.Name != "html" {
			err = unexpectedEOFInsideElement
		}
		b.stopParsing()
		return false, inFrameset, err
	}
	return false, inFrameset, generalParseError
}

func (b *TreeBuilder) afterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isAllWhitespace(t.Data) {
			b.insertCharacter(t)
			return false, afterFrameset, noError
		}
	case commentToken:
		b.insertComment(t)
		return false, afterFrameset, noError
	case docTypeToken:
		return false, afterFrameset, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, afterFrameset, inBody)
		case "noframes":
			return b.useRulesFor(t, afterFrameset, inHead)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset, noError
		}
	case endOfFileToken:
		b.stopParsing()
		return false, afterFrameset, noError
	}
	return false, afterFrameset, generalParseError
}

func (b *TreeBuilder) afterAfterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		b.insertCommentAt(t, b.doc)
		return false, afterAfterBody, noError
	case docTypeToken:
		return b.useRulesFor(t, afterAfterBody, inBody)
	case characterToken:
		if isAllWhitespace(t.Data) {
			return b.useRulesFor(t, afterAfterBody, inBody)
		}
	case startTagToken:
		if t.TagName == "html" {
			return b.useRulesFor(t, afterAfterBody, inBody)
		}
	case endOfFileToken:
		b.stopParsing()
		return false, afterAfterBody, noError
	}
	return true, inBody, generalParseError
}

func (b *TreeBuilder) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		b.insertCommentAt(t, b.doc)
		return false, afterAfterFrameset, noError
	case docTypeToken:
		return b.useRulesFor(t, afterAfterFrameset, inBody)
	case characterToken:
		if isAllWhitespace(t.Data) {
			return b.useRulesFor(t, afterAfterFrameset, inBody)
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, afterAfterFrameset, inBody)
		case "noframes":
			return b.useRulesFor(t, afterAfterFrameset, inHead)
		}
	case endOfFileToken:
		b.stopParsing()
		return false, afterAfterFrameset, noError
	}
	return false, afterAfterFrameset, generalParseError
}
