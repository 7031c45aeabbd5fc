package parser

// Text content states: data, RCDATA, RAWTEXT, script data (with the
// comment-escape and double-escape machines) and PLAINTEXT.

func (z *Tokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '&':
		z.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, dataState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, dataState
	}
}

func (z *Tokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '&':
		z.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, rcDataState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, rcDataState
	}
}

func (z *Tokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, rawTextState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, rawTextState
	}
}

func (z *Tokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataState
	}
}

func (z *Tokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, plaintextState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, plaintextState
	}
}

func (z *Tokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		z.tokenBuilder.ResetTempBuffer()
		return false, rcDataEndTagOpenState
	}
	z.emit(z.tokenBuilder.CharacterToken('<'))
	return true, rcDataState
}

func (z *Tokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.startEndTagToken()
		return true, rcDataEndTagNameState
	}
	z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('/'))
	return true, rcDataState
}

func (z *Tokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.textEndTagNameStateParser(r, eof, rcDataState)
}

func (z *Tokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		z.tokenBuilder.ResetTempBuffer()
		return false, rawTextEndTagOpenState
	}
	z.emit(z.tokenBuilder.CharacterToken('<'))
	return true, rawTextState
}

func (z *Tokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.startEndTagToken()
		return true, rawTextEndTagNameState
	}
	z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('/'))
	return true, rawTextState
}

func (z *Tokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.textEndTagNameStateParser(r, eof, rawTextState)
}

func (z *Tokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '/':
			z.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('!'))
			return false, scriptDataEscapeStartState
		}
	}
	z.emit(z.tokenBuilder.CharacterToken('<'))
	return true, scriptDataState
}

func (z *Tokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.startEndTagToken()
		return true, scriptDataEndTagNameState
	}
	z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('/'))
	return true, scriptDataState
}

func (z *Tokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.textEndTagNameStateParser(r, eof, scriptDataState)
}

// textEndTagNameStateParser is the shared end tag name state for
// RCDATA, RAWTEXT and script data, which differ only in the state
// they fall back to when the tag is not the appropriate end tag.
func (z *Tokenizer) textEndTagNameStateParser(r rune, eof bool, fallback tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIWhitespace(int(r)):
			if z.isApprEndTagToken() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if z.isApprEndTagToken() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if z.isApprEndTagToken() {
				z.emit(z.tokenBuilder.TagToken())
				return false, dataState
			}
		case isASCIIUpper(r):
			z.tokenBuilder.WriteName(toASCIILower(r))
			z.tokenBuilder.WriteTempBuffer(r)
			return false, z.currentState
		case isASCIILower(r):
			z.tokenBuilder.WriteName(r)
			z.tokenBuilder.WriteTempBuffer(r)
			return false, z.currentState
		}
	}
	z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('/'))
	z.emit(z.tokenBuilder.TempBufferCharTokens()...)
	return true, fallback
}

func (z *Tokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (z *Tokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (z *Tokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInScriptHTMLComment)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataEscapedState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataEscapedState
	}
}

func (z *Tokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInScriptHTMLComment)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataEscapedState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataEscapedState
	}
}

func (z *Tokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInScriptHTMLComment)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		z.emit(z.tokenBuilder.CharacterToken('>'))
		return false, scriptDataState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataEscapedState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataEscapedState
	}
}

func (z *Tokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		if r == '/' {
			z.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEscapedEndTagOpenState
		}
		if isASCIIAlpha(r) {
			z.tokenBuilder.ResetTempBuffer()
			z.emit(z.tokenBuilder.CharacterToken('<'))
			return true, scriptDataDoubleEscapeStartState
		}
	}
	z.emit(z.tokenBuilder.CharacterToken('<'))
	return true, scriptDataEscapedState
}

func (z *Tokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.startEndTagToken()
		return true, scriptDataEscapedEndTagNameState
	}
	z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('/'))
	return true, scriptDataEscapedState
}

func (z *Tokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.textEndTagNameStateParser(r, eof, scriptDataEscapedState)
}

func (z *Tokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIWhitespace(int(r)) || r == '/' || r == '>':
			z.emit(z.tokenBuilder.CharacterToken(r))
			if z.tokenBuilder.TempBuffer() == "script" {
				return false, scriptDataDoubleEscapedState
			}
			return false, scriptDataEscapedState
		case isASCIIUpper(r):
			z.tokenBuilder.WriteTempBuffer(toASCIILower(r))
			z.emit(z.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeStartState
		case isASCIILower(r):
			z.tokenBuilder.WriteTempBuffer(r)
			z.emit(z.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeStartState
		}
	}
	return true, scriptDataEscapedState
}

func (z *Tokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInScriptHTMLComment)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataDoubleEscapedDashState
	case '<':
		z.emit(z.tokenBuilder.CharacterToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataDoubleEscapedState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (z *Tokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInScriptHTMLComment)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		z.emit(z.tokenBuilder.CharacterToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataDoubleEscapedState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (z *Tokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInScriptHTMLComment)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emit(z.tokenBuilder.CharacterToken('-'))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		z.emit(z.tokenBuilder.CharacterToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		z.emit(z.tokenBuilder.CharacterToken('>'))
		return false, scriptDataState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.emit(z.tokenBuilder.CharacterToken('�'))
		return false, scriptDataDoubleEscapedState
	default:
		z.emit(z.tokenBuilder.CharacterToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (z *Tokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		z.tokenBuilder.ResetTempBuffer()
		z.emit(z.tokenBuilder.CharacterToken('/'))
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (z *Tokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIWhitespace(int(r)) || r == '/' || r == '>':
			z.emit(z.tokenBuilder.CharacterToken(r))
			if z.tokenBuilder.TempBuffer() == "script" {
				return false, scriptDataEscapedState
			}
			return false, scriptDataDoubleEscapedState
		case isASCIIUpper(r):
			z.tokenBuilder.WriteTempBuffer(toASCIILower(r))
			z.emit(z.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeEndState
		case isASCIILower(r):
			z.tokenBuilder.WriteTempBuffer(r)
			z.emit(z.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeEndState
		}
	}
	return true, scriptDataDoubleEscapedState
}
