package parser

// Tag open, tag name and attribute states.

func (z *Tokenizer) startStartTagToken() {
	z.tokenBuilder.Reset()
	z.tokenBuilder.SetTagType(startTag)
	z.tokenBuilder.MarkPosition(z.line, z.col)
}

func (z *Tokenizer) startEndTagToken() {
	z.tokenBuilder.Reset()
	z.tokenBuilder.SetTagType(endTag)
	z.tokenBuilder.MarkPosition(z.line, z.col)
}

func (z *Tokenizer) startCommentToken() {
	z.tokenBuilder.Reset()
	z.tokenBuilder.MarkPosition(z.line, z.col)
}

// commitAttribute folds the pending name/value pair into the tag and
// reports the duplicate-attribute error when the name collides.
func (z *Tokenizer) commitAttribute() {
	if z.tokenBuilder.CommitAttribute() {
		z.err(duplicateAttribute)
	}
}

func (z *Tokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofBeforeTagName)
		z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		z.startStartTagToken()
		return true, tagNameState
	case r == '?':
		z.err(unexpectedQuestionMark)
		z.startCommentToken()
		return true, bogusCommentState
	default:
		z.err(invalidFirstCharacterOfTagName)
		z.emit(z.tokenBuilder.CharacterToken('<'))
		return true, dataState
	}
}

func (z *Tokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofBeforeTagName)
		z.emit(z.tokenBuilder.CharacterToken('<'), z.tokenBuilder.CharacterToken('/'), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIAlpha(r):
		z.startEndTagToken()
		return true, tagNameState
	case r == '>':
		z.err(missingEndTagName)
		return false, dataState
	default:
		z.err(invalidFirstCharacterOfTagName)
		z.startCommentToken()
		return true, bogusCommentState
	}
}

func (z *Tokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		z.emit(z.tokenBuilder.TagToken())
		return false, dataState
	case isASCIIUpper(r):
		z.tokenBuilder.WriteName(toASCIILower(r))
		return false, tagNameState
	case r == '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteName('�')
		return false, tagNameState
	default:
		z.tokenBuilder.WriteName(r)
		return false, tagNameState
	}
}

func (z *Tokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeAttributeNameState
	case r == '/' || r == '>':
		return true, afterAttributeNameState
	case r == '=':
		z.err(unexpectedEqualsBeforeAttrName)
		z.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		return true, attributeNameState
	}
}

func (z *Tokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isASCIIWhitespace(int(r)) || r == '/' || r == '>':
		return true, afterAttributeNameState
	case r == '=':
		return false, beforeAttributeValueState
	case isASCIIUpper(r):
		z.tokenBuilder.WriteAttributeName(toASCIILower(r))
		return false, attributeNameState
	case r == '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteAttributeName('�')
		return false, attributeNameState
	case r == '"' || r == '\'' || r == '<':
		z.err(unexpectedCharacterInAttrName)
		z.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		z.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	}
}

func (z *Tokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, afterAttributeNameState
	case r == '/':
		z.commitAttribute()
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		z.commitAttribute()
		z.emit(z.tokenBuilder.TagToken())
		return false, dataState
	default:
		z.commitAttribute()
		return true, attributeNameState
	}
}

func (z *Tokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		z.err(missingAttributeValue)
		z.commitAttribute()
		z.emit(z.tokenBuilder.TagToken())
		return false, dataState
	default:
		return true, attributeValueUnquotedState
	}
}

func (z *Tokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterAttributeValueQuotedState
	case '&':
		z.returnState = attributeValueDoubleQuotedState
		return false, characterReferenceState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueDoubleQuotedState
	default:
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

func (z *Tokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterAttributeValueQuotedState
	case '&':
		z.returnState = attributeValueSingleQuotedState
		return false, characterReferenceState
	case '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueSingleQuotedState
	default:
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueSingleQuotedState
	}
}

func (z *Tokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		z.commitAttribute()
		return false, beforeAttributeNameState
	case r == '&':
		z.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		z.commitAttribute()
		z.emit(z.tokenBuilder.TagToken())
		return false, dataState
	case r == '\u0000':
		z.err(unexpectedNullCharacter)
		z.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		z.err(unexpectedCharacterInUnquoted)
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	default:
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (z *Tokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIWhitespace(int(r)):
		z.commitAttribute()
		return false, beforeAttributeNameState
	case r == '/':
		z.commitAttribute()
		return false, selfClosingStartTagState
	case r == '>':
		z.commitAttribute()
		z.emit(z.tokenBuilder.TagToken())
		return false, dataState
	default:
		z.err(missingWhitespaceBetweenAttrs)
		z.commitAttribute()
		return true, beforeAttributeNameState
	}
}

func (z *Tokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(eofInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.tokenBuilder.EnableSelfClosing()
		z.emit(z.tokenBuilder.TagToken())
		return false, dataState
	default:
		z.err(unexpectedSolidusInTag)
		return true, beforeAttributeNameState
	}
}
