package parser

// Markup declaration, comment, DOCTYPE and CDATA states. The markup
// declaration open state is the one place the tokenizer looks ahead
// several characters; when the buffer is too short to decide it sets
// needMore so the step loop rewinds and waits for input.

func (z *Tokenizer) startDoctypeToken() {
	z.tokenBuilder.Reset()
	z.tokenBuilder.MarkPosition(z.line, z.col)
}

func (z *Tokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteData('�')
		return false, bogusCommentState
	default:
		z.tokenBuilder.WriteData(r)
		return false, bogusCommentState
	}
}

func (z *Tokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			next := z.peek(1)
			if len(next) < 1 && !z.eos {
				z.needMore = true
				return true, markupDeclarationOpenState
			}
			if len(next) == 1 && next[0] == '-' {
				z.skip(1)
				z.startCommentToken()
				return false, commentStartState
			}
		case 'd', 'D':
			rest := z.peek(6)
			if len(rest) < 6 && !z.eos {
				z.needMore = true
				return true, markupDeclarationOpenState
			}
			if runesEqualFold(rest, "octype") {
				z.skip(6)
				return false, doctypeState
			}
		case '[':
			rest := z.peek(6)
			if len(rest) < 6 && !z.eos {
				z.needMore = true
				return true, markupDeclarationOpenState
			}
			if string(rest) == "CDATA[" {
				z.skip(6)
				if z.adjustedCurrentNodeForeign {
					return false, cdataSectionState
				}
				z.err(cdataInHTMLContent)
				z.startCommentToken()
				for _, c := range "[CDATA[" {
					z.tokenBuilder.WriteData(c)
				}
				return false, bogusCommentState
			}
		}
	}
	z.err(incorrectlyOpenedComment)
	z.startCommentToken()
	return true, bogusCommentState
}

func (z *Tokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			return false, commentStartDashState
		case '>':
			z.err(abruptClosingOfEmptyComment)
			z.emit(z.tokenBuilder.CommentToken())
			return false, dataState
		}
	}
	return true, commentState
}

func (z *Tokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		z.err(abruptClosingOfEmptyComment)
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	default:
		z.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (z *Tokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		z.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteData('�')
		return false, commentState
	default:
		z.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (z *Tokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '!':
			z.tokenBuilder.WriteData(r)
			return false, commentLessThanSignBangState
		case '<':
			z.tokenBuilder.WriteData(r)
			return false, commentLessThanSignState
		}
	}
	return true, commentState
}

func (z *Tokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (z *Tokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (z *Tokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		z.err(nestedComment)
	}
	return true, commentEndState
}

func (z *Tokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == '-' {
		return false, commentEndState
	}
	z.tokenBuilder.WriteData('-')
	return true, commentState
}

func (z *Tokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		z.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (z *Tokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('!')
		return false, commentEndDashState
	case '>':
		z.err(incorrectlyClosedComment)
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	default:
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('!')
		return true, commentState
	}
}

func (z *Tokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.startDoctypeToken()
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeDoctypeNameState
	case r == '>':
		return true, beforeDoctypeNameState
	default:
		z.err(missingWhitespaceBeforeName)
		return true, beforeDoctypeNameState
	}
}

func (z *Tokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.startDoctypeToken()
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeDoctypeNameState
	case isASCIIUpper(r):
		z.startDoctypeToken()
		z.tokenBuilder.WriteName(toASCIILower(r))
		return false, doctypeNameState
	case r == '\u0000':
		z.err(unexpectedNullCharacter)
		z.startDoctypeToken()
		z.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	case r == '>':
		z.err(missingDoctypeName)
		z.startDoctypeToken()
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.startDoctypeToken()
		z.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

func (z *Tokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, afterDoctypeNameState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case isASCIIUpper(r):
		z.tokenBuilder.WriteName(toASCIILower(r))
		return false, doctypeNameState
	case r == '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	default:
		z.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

func (z *Tokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, afterDoctypeNameState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		rest := z.peek(5)
		if len(rest) < 5 && !z.eos {
			z.needMore = true
			return true, afterDoctypeNameState
		}
		keyword := append([]rune{r}, rest...)
		switch {
		case runesEqualFold(keyword, "public"):
			z.skip(5)
			return false, afterDoctypePublicKeywordState
		case runesEqualFold(keyword, "system"):
			z.skip(5)
			return false, afterDoctypeSystemKeywordState
		default:
			z.err(invalidCharacterSequenceAfterName)
			z.tokenBuilder.EnableForceQuirks()
			return true, bogusDoctypeState
		}
	}
}

func (z *Tokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		z.err(missingWhitespaceAfterPublicKeyword)
		z.tokenBuilder.MarkPublicIdentifier()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		z.err(missingWhitespaceAfterPublicKeyword)
		z.tokenBuilder.MarkPublicIdentifier()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		z.err(missingDoctypePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(missingQuoteBeforePublicID)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		z.tokenBuilder.MarkPublicIdentifier()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		z.tokenBuilder.MarkPublicIdentifier()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		z.err(missingDoctypePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(missingQuoteBeforePublicID)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypePublicIdentifierQuotedStateParser(r, eof, '"')
}

func (z *Tokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypePublicIdentifierQuotedStateParser(r, eof, '\'')
}

func (z *Tokenizer) doctypePublicIdentifierQuotedStateParser(r rune, eof bool, quote rune) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case quote:
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WritePublicIdentifier('�')
		return false, z.currentState
	case '>':
		z.err(abruptDoctypePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.tokenBuilder.WritePublicIdentifier(r)
		return false, z.currentState
	}
}

func (z *Tokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		z.err(missingWhitespaceBetweenIdentifiers)
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.err(missingWhitespaceBetweenIdentifiers)
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		z.err(missingQuoteBeforeSystemID)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		z.err(missingQuoteBeforeSystemID)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		z.err(missingWhitespaceAfterSystemKeyword)
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.err(missingWhitespaceAfterSystemKeyword)
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		z.err(missingDoctypeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(missingQuoteBeforeSystemID)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.tokenBuilder.MarkSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		z.err(missingDoctypeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(missingQuoteBeforeSystemID)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypeSystemIdentifierQuotedStateParser(r, eof, '"')
}

func (z *Tokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypeSystemIdentifierQuotedStateParser(r, eof, '\'')
}

func (z *Tokenizer) doctypeSystemIdentifierQuotedStateParser(r rune, eof bool, quote rune) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case quote:
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteSystemIdentifier('�')
		return false, z.currentState
	case '>':
		z.err(abruptDoctypeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.tokenBuilder.WriteSystemIdentifier(r)
		return false, z.currentState
	}
}

func (z *Tokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(unexpectedCharacterAfterSystemID)
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		return false, bogusDoctypeState
	default:
		return false, bogusDoctypeState
	}
}

func (z *Tokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInCDATA)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case ']':
		return false, cdataSectionBracketState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, cdataSectionState
	}
}

func (z *Tokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	z.emit(z.tokenBuilder.CharacterToken(']'))
	return true, cdataSectionState
}

func (z *Tokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case ']':
			z.emit(z.tokenBuilder.CharacterToken(']'))
			return false, cdataSectionEndState
		case '>':
			return false, dataState
		}
	}
	z.emit(z.tokenBuilder.CharacterToken(']'), z.tokenBuilder.CharacterToken(']'))
	return true, cdataSectionState
}
