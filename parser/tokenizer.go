package parser

// Tokenizer runs the WHATWG tokenization state machine over a rune
// buffer that callers grow incrementally. NextToken drains tokens and
// returns nil when the machine needs input that has not arrived yet;
// callers feed more through AppendInput (or splice with
// InsertInputAtCurrentPosition during document.write) and call
// NextToken again. MarkEndOfStream switches starvation into the EOF
// rules.
type Tokenizer struct {
	input []rune
	pos   int
	eos   bool
	done  bool

	// scanned is a high-water mark so reconsumed runes do not repeat
	// their input-stream preprocessing errors.
	scanned int

	line, col int

	currentState, returnState tokenizerState

	tokenBuilder     *TokenBuilder
	pending          []Token
	lastStartTagName string

	// adjustedCurrentNodeForeign gates CDATA sections; the tree
	// builder keeps it current.
	adjustedCurrentNodeForeign bool

	// needMore is set by a handler that looked ahead past the buffered
	// input; the step loop rewinds and starves.
	needMore bool
	starved  bool

	errh ErrorHandler
}

type parserStateHandler func(r rune, eof bool) (bool, tokenizerState)

// NewTokenizer returns a tokenizer in the data state with an empty
// input buffer. errh may be nil.
func NewTokenizer(errh ErrorHandler) *Tokenizer {
	return &Tokenizer{
		tokenBuilder: newTokenBuilder(),
		line:         1,
		col:          1,
		errh:         errh,
	}
}

// AppendInput adds decoded characters to the end of the input stream.
func (z *Tokenizer) AppendInput(s string) {
	z.input = append(z.input, []rune(s)...)
	z.starved = false
}

// InsertInputAtCurrentPosition splices characters immediately ahead
// of the tokenizer, before any not-yet-consumed input. This is the
// document.write insertion point.
func (z *Tokenizer) InsertInputAtCurrentPosition(s string) {
	ins := []rune(s)
	if len(ins) == 0 {
		return
	}
	z.input = append(z.input[:z.pos], append(ins, z.input[z.pos:]...)...)
	if z.scanned > z.pos {
		z.scanned = z.pos
	}
	z.starved = false
}

// MarkEndOfStream declares that no further input will arrive. The
// tokenizer then runs its EOF rules instead of starving.
func (z *Tokenizer) MarkEndOfStream() {
	z.eos = true
	z.starved = false
}

// NextToken returns the next token, or nil when the tokenizer is
// starved for input or has emitted its end-of-file token.
func (z *Tokenizer) NextToken() *Token {
	for {
		if len(z.pending) > 0 {
			t := z.pending[0]
			z.pending = z.pending[1:]
			return &t
		}
		if z.done || z.starved {
			return nil
		}
		if !z.step() {
			if len(z.pending) > 0 {
				continue
			}
			return nil
		}
	}
}

func (z *Tokenizer) setState(s tokenizerState) {
	log.WithFields(map[string]interface{}{
		"from": z.currentState.String(),
		"to":   s.String(),
	}).Debug("tokenizer state forced")
	z.currentState = s
}

func (z *Tokenizer) setLastStartTag(name string) { z.lastStartTagName = name }

// ResetAfterScriptExecution returns the machine to the data state once
// a script callback finishes. The </script> end tag already left the
// machine there, but spliced document.write markup must not inherit a
// stale return state or temp buffer.
func (z *Tokenizer) ResetAfterScriptExecution() {
	z.currentState = dataState
	z.returnState = dataState
	z.tokenBuilder.ResetTempBuffer()
}

func (z *Tokenizer) setAdjustedCurrentNodeForeign(foreign bool) {
	z.adjustedCurrentNodeForeign = foreign
}

func (z *Tokenizer) err(e parseError) {
	if e == noError {
		return
	}
	log.WithFields(map[string]interface{}{
		"error": string(e),
		"line":  z.line,
		"col":   z.col,
	}).Debug("tokenizer parse error")
	if z.errh != nil {
		z.errh(string(e), z.line, z.col)
	}
}

// step consumes one character (or dispatches EOF) through the current
// state. It reports false when the tokenizer starved.
func (z *Tokenizer) step() bool {
	if z.pos >= len(z.input) {
		if !z.eos {
			z.starved = true
			return false
		}
		for {
			reconsume, next := z.stateToParser(z.currentState)(0, true)
			z.currentState = next
			if !reconsume {
				return true
			}
		}
	}

	startPos, startLine, startCol := z.pos, z.line, z.col
	r := z.input[z.pos]
	z.pos++
	if r == '\r' {
		// CRLF folds to a single LF; a lone CR at the buffer edge has
		// to wait for the character after it.
		if z.pos >= len(z.input) && !z.eos {
			z.pos = startPos
			z.starved = true
			return false
		}
		if z.pos < len(z.input) && z.input[z.pos] == '\n' {
			z.pos++
		}
		r = '\n'
	}
	if startPos >= z.scanned {
		z.scanned = z.pos
		z.preprocessError(r)
	}
	if r == '\n' {
		z.line++
		z.col = 1
	} else {
		z.col++
	}

	reconsume, next := z.stateToParser(z.currentState)(r, false)
	if z.needMore {
		z.needMore = false
		z.pos, z.line, z.col = startPos, startLine, startCol
		z.starved = true
		return false
	}
	if reconsume {
		z.pos, z.line, z.col = startPos, startLine, startCol
	}
	z.currentState = next
	return true
}

func (z *Tokenizer) preprocessError(r rune) {
	switch {
	case isSurrogate(int(r)):
		z.err("surrogate-in-input-stream")
	case isNonCharacter(int(r)):
		z.err("noncharacter-in-input-stream")
	case r != 0 && isControl(int(r)) && !isASCIIWhitespace(int(r)):
		z.err("control-character-in-input-stream")
	}
}

// peek returns up to n not-yet-consumed runes without advancing.
func (z *Tokenizer) peek(n int) []rune {
	end := z.pos + n
	if end > len(z.input) {
		end = len(z.input)
	}
	return z.input[z.pos:end]
}

// skip advances past n runes that a lookahead already examined.
func (z *Tokenizer) skip(n int) {
	for i := 0; i < n && z.pos < len(z.input); i++ {
		if z.input[z.pos] == '\n' {
			z.line++
			z.col = 1
		} else {
			z.col++
		}
		z.pos++
	}
	if z.pos > z.scanned {
		z.scanned = z.pos
	}
}

func (z *Tokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		switch token.TokenType {
		case endTagToken:
			if len(token.Attributes) > 0 {
				z.err(endTagWithAttributes)
				token.Attributes = nil
			}
			if token.SelfClosing {
				z.err(endTagWithTrailingSolidus)
				token.SelfClosing = false
			}
		case startTagToken:
			z.lastStartTagName = token.TagName
		case endOfFileToken:
			z.done = true
		}
		z.pending = append(z.pending, token)
	}
}

func (z *Tokenizer) flushCodePointsAsCharacterReference() {
	if wasConsumedByAttribute(z.returnState) {
		for _, v := range z.tokenBuilder.TempBuffer() {
			z.tokenBuilder.WriteAttributeValue(v)
		}
	} else {
		z.emit(z.tokenBuilder.TempBufferCharTokens()...)
	}
}

// isApprEndTagToken reports whether the end tag being built matches
// the last emitted start tag, which is what lets </script> and
// friends terminate their text content.
func (z *Tokenizer) isApprEndTagToken() bool {
	return z.lastStartTagName == z.tokenBuilder.name.String()
}

func wasConsumedByAttribute(returnState tokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	switch code {
	case 0xFFFE, 0xFFFF, 0x1FFFE, 0x1FFFF, 0x2FFFE, 0x2FFFF, 0x3FFFE, 0x3FFFF, 0x4FFFE, 0x4FFFF, 0x5FFFE, 0x5FFFF, 0x6FFFE, 0x6FFFF, 0x7FFFE, 0x7FFFF, 0x8FFFE, 0x8FFFF, 0x9FFFE, 0x9FFFF, 0xAFFFE, 0xAFFFF, 0xBFFFE, 0xBFFFF, 0xCFFFE, 0xCFFFF, 0xDFFFE, 0xDFFFF, 0xEFFFE, 0xEFFFF, 0xFFFFE, 0xFFFFF, 0x10FFFE, 0x10FFFF:
		return true
	default:
		return false
	}
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func runesEqualFold(have []rune, want string) bool {
	if len(have) != len(want) {
		return false
	}
	for i, w := range want {
		if toASCIILower(have[i]) != toASCIILower(w) {
			return false
		}
	}
	return true
}

func (z *Tokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return z.dataStateParser
	case rcDataState:
		return z.rcDataStateParser
	case rawTextState:
		return z.rawTextStateParser
	case scriptDataState:
		return z.scriptDataStateParser
	case plaintextState:
		return z.plaintextStateParser
	case tagOpenState:
		return z.tagOpenStateParser
	case endTagOpenState:
		return z.endTagOpenStateParser
	case tagNameState:
		return z.tagNameStateParser
	case rcDataLessThanSignState:
		return z.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return z.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return z.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return z.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return z.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return z.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return z.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return z.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return z.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return z.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return z.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return z.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return z.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return z.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return z.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return z.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return z.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return z.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return z.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return z.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return z.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return z.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return z.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return z.beforeAttributeNameStateParser
	case attributeNameState:
		return z.attributeNameStateParser
	case afterAttributeNameState:
		return z.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return z.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return z.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return z.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return z.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return z.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return z.selfClosingStartTagStateParser
	case bogusCommentState:
		return z.bogusCommentStateParser
	case markupDeclarationOpenState:
		return z.markupDeclarationOpenStateParser
	case commentStartState:
		return z.commentStartStateParser
	case commentStartDashState:
		return z.commentStartDashStateParser
	case commentState:
		return z.commentStateParser
	case commentLessThanSignState:
		return z.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return z.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return z.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return z.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return z.commentEndDashStateParser
	case commentEndState:
		return z.commentEndStateParser
	case commentEndBangState:
		return z.commentEndBangStateParser
	case doctypeState:
		return z.doctypeStateParser
	case beforeDoctypeNameState:
		return z.beforeDoctypeNameStateParser
	case doctypeNameState:
		return z.doctypeNameStateParser
	case afterDoctypeNameState:
		return z.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return z.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return z.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return z.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return z.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return z.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return z.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return z.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return z.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return z.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return z.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return z.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return z.bogusDoctypeStateParser
	case cdataSectionState:
		return z.cdataSectionStateParser
	case cdataSectionBracketState:
		return z.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return z.cdataSectionEndStateParser
	case characterReferenceState:
		return z.characterReferenceStateParser
	case namedCharacterReferenceState:
		return z.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return z.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return z.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return z.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return z.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return z.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return z.decimalCharacterReferenceStateParser
	case numericCharacterReferenceEndState:
		return z.numericCharacterReferenceEndStateParser
	}
	return nil
}
