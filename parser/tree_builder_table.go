package parser

import (
	"strings"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// Table construction modes. Stray content inside a table gets foster
// parented in front of it.

func (b *TreeBuilder) clearStackBackToTable() {
	for {
		cur := b.currentNode()
		if cur == nil {
			return
		}
		switch cur.Name {
		case "table", "template", "html":
			return
		}
		b.pop()
	}
}

func (b *TreeBuilder) clearStackBackToTableBody() {
	for {
		cur := b.currentNode()
		if cur == nil {
			return
		}
		switch cur.Name {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		b.pop()
	}
}

func (b *TreeBuilder) clearStackBackToTableRow() {
	for {
		cur := b.currentNode()
		if cur == nil {
			return
		}
		switch cur.Name {
		case "tr", "template", "html":
			return
		}
		b.pop()
	}
}

// fosterParentedInBody runs the in-body rules with foster parenting
// enabled for the duration of the token.
func (b *TreeBuilder) fosterParentedInBody(t *Token, current insertionMode, err parseError) (bool, insertionMode, parseError) {
	b.fosterParenting = true
	reprocess, next, _ := b.useRulesFor(t, current, inBody)
	b.fosterParenting = false
	return reprocess, next, err
}

func (b *TreeBuilder) inTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if cur := b.currentNode(); cur != nil && cur.Namespace == dom.HTMLNamespace {
			switch cur.Name {
			case "table", "tbody", "template", "tfoot", "thead", "tr":
				b.pendingTableText = nil
				b.tableTextNonSpace = false
				b.originalMode = inTable
				return true, inTableText, noError
			}
		}
		return b.fosterParentedInBody(t, inTable, unexpectedCharacterInTable)
	case commentToken:
		b.insertComment(t)
		return false, inTable, noError
	case docTypeToken:
		return false, inTable, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "caption":
			b.clearStackBackToTable()
			b.insertFormattingMarker()
			b.insertHTMLElement(t)
			return false, inCaption, noError
		case "colgroup":
			b.clearStackBackToTable()
			b.insertHTMLElement(t)
			return false, inColumnGroup, noError
		case "col":
			b.clearStackBackToTable()
			b.insertHTMLElement(syntheticToken("colgroup"))
			return true, inColumnGroup, noError
		case "tbody", "tfoot", "thead":
			b.clearStackBackToTable()
			b.insertHTMLElement(t)
			return false, inTableBody, noError
		case "td", "th", "tr":
			b.clearStackBackToTable()
			b.insertHTMLElement(syntheticToken("tbody"))
			return true, inTableBody, noError
		case "table":
			if !b.elementInTableScope("table") {
				return false, inTable, misplacedStartTag
			}
			b.popUntilInclusive("table")
			return true, b.resetInsertionMode(), misplacedStartTag
		case "style", "script", "template":
			return b.useRulesFor(t, inTable, inHead)
		case "input":
			if typ, ok := t.Attr("type"); ok && strings.EqualFold(typ, "hidden") {
				b.insertHTMLElement(t)
				b.pop()
				b.ackSelfClosing = true
				return false, inTable, misplacedStartTag
			}
			return b.fosterParentedInBody(t, inTable, misplacedStartTag)
		case "form":
			if b.stackContains("template") || b.formPointer != nil {
				return false, inTable, formNestedInForm
			}
			b.formPointer = b.insertHTMLElement(t)
			b.pop()
			return false, inTable, misplacedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !b.elementInTableScope("table") {
				return false, inTable, misplacedEndTag
			}
			b.popUntilInclusive("table")
			return false, b.resetInsertionMode(), noError
		case "body", "caption", "col", "colgroup", "html", "tbody",
			"td", "tfoot", "th", "thead", "tr":
			return false, inTable, misplacedEndTag
		case "template":
			return b.useRulesFor(t, inTable, inHead)
		}
	case endOfFileToken:
		return b.useRulesFor(t, inTable, inBody)
	}
	return b.fosterParentedInBody(t, inTable, generalParseError)
}

func (b *TreeBuilder) inTableTextModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == characterToken {
		if t.Data == "\u0000" {
			return false, inTableText, unexpectedNullCharacter
		}
		if !isAllWhitespace(t.Data) {
			b.tableTextNonSpace = true
		}
		b.pendingTableText = append(b.pendingTableText, t.clone())
		return false, inTableText, noError
	}

	var err parseError
	pending := b.pendingTableText
	b.pendingTableText = nil
	if b.tableTextNonSpace {
		err = unexpectedCharacterInTable
		b.fosterParenting = true
		for _, ct := range pending {
			b.reconstructActiveFormattingElements()
			b.insertCharacter(ct)
			b.framesetOK = false
		}
		b.fosterParenting = false
	} else {
		for _, ct := range pending {
			b.insertCharacter(ct)
		}
	}
	return true, b.originalMode, err
}

func (b *TreeBuilder) inTableBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			b.clearStackBackToTableBody()
			b.insertHTMLElement(t)
			return false, inRow, noError
		case "th", "td":
			b.clearStackBackToTableBody()
			b.insertHTMLElement(syntheticToken("tr"))
			return true, inRow, misplacedStartTag
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !b.sectionInTableScope() {
				return false, inTableBody, misplacedStartTag
			}
			b.clearStackBackToTableBody()
			b.pop()
			return true, inTable, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !b.elementInTableScope(t.TagName) {
				return false, inTableBody, misplacedEndTag
			}
			b.clearStackBackToTableBody()
			b.pop()
			return false, inTable, noError
		case "table":
			if !b.sectionInTableScope() {
				return false, inTableBody, misplacedEndTag
			}
			b.clearStackBackToTableBody()
			b.pop()
			return true, inTable, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false, inTableBody, misplacedEndTag
		}
	}
	return b.useRulesFor(t, inTableBody, inTable)
}

func (b *TreeBuilder) sectionInTableScope() bool {
	return b.elementInTableScope("tbody") ||
		b.elementInTableScope("thead") ||
		b.elementInTableScope("tfoot")
}

func (b *TreeBuilder) inRowModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			b.clearStackBackToTableRow()
			b.insertHTMLElement(t)
			b.insertFormattingMarker()
			return false, inCell, noError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !b.elementInTableScope("tr") {
				return false, inRow, misplacedStartTag
			}
			b.clearStackBackToTableRow()
			b.pop()
			return true, inTableBody, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !b.elementInTableScope("tr") {
				return false, inRow, misplacedEndTag
			}
			b.clearStackBackToTableRow()
			b.pop()
			return false, inTableBody, noError
		case "table":
			if !b.elementInTableScope("tr") {
				return false, inRow, misplacedEndTag
			}
			b.clearStackBackToTableRow()
			b.pop()
			return true, inTableBody, noError
		case "tbody", "tfoot", "thead":
			if !b.elementInTableScope(t.TagName) {
				return false, inRow, misplacedEndTag
			}
			if !b.elementInTableScope("tr") {
				return false, inRow, noError
			}
			b.clearStackBackToTableRow()
			b.pop()
			return true, inTableBody, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false, inRow, misplacedEndTag
		}
	}
	return b.useRulesFor(t, inRow, inTable)
}

func (b *TreeBuilder) inCellModeHandler(t *Token) (bool, insertionMode, parseError) {
	closeCell := func() parseError {
		var err parseError
		b.generateImpliedEndTags()
		if cur := b.currentNode(); cur == nil || (cur.Name != "td" && cur.Name != "th") {
			err = misplacedEndTag
		}
		b.popUntilInclusive("td", "th")
		b.clearFormattingToMarker()
		return err
	}

	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.elementInTableScope("td") && !b.elementInTableScope("th") {
				return false, inCell, misplacedStartTag
			}
			err := closeCell()
			return true, inRow, err
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !b.elementInTableScope(t.TagName) {
				return false, inCell, misplacedEndTag
			}
			var err parseError
			b.generateImpliedEndTags()
			if cur := b.currentNode(); cur == nil || cur.Name != t.TagName {
				err = misplacedEndTag
			}
			b.popUntilInclusive(t.TagName)
			b.clearFormattingToMarker()
			return false, inRow, err
		case "body", "caption", "col", "colgroup", "html":
			return false, inCell, misplacedEndTag
		case "table", "tbody", "tfoot", "thead", "tr":
			if !b.elementInTableScope(t.TagName) {
				return false, inCell, misplacedEndTag
			}
			err := closeCell()
			return true, inRow, err
		}
	}
	return b.useRulesFor(t, inCell, inBody)
}
