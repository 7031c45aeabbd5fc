package parser

// Character reference states. Named references look ahead through the
// entity table; numeric references accumulate a code point that the
// end state sanitizes (windows-1252 remap for the C1 range, U+FFFD
// for null, surrogate and out-of-range codes).

// numericCharRefRemap maps the C1 controls that legacy content uses
// as windows-1252 punctuation.
var numericCharRefRemap = map[int]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ',
	0x8E: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›',
	0x9C: 'œ', 0x9E: 'ž', 0x9F: 'Ÿ',
}

func (z *Tokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	z.tokenBuilder.ResetTempBuffer()
	z.tokenBuilder.WriteTempBuffer('&')
	if !eof {
		switch {
		case isASCIIAlphanumeric(r):
			return true, namedCharacterReferenceState
		case r == '#':
			z.tokenBuilder.WriteTempBuffer(r)
			return false, numericCharacterReferenceState
		}
	}
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}

func (z *Tokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	candidate := append([]rune{r}, z.peek(maxEntityNameLen-1)...)
	if !z.eos && len(candidate) < maxEntityNameLen && runesCouldExtendEntity(candidate) {
		z.needMore = true
		return true, namedCharacterReferenceState
	}

	name, value, ok := matchNamedEntity(candidate)
	if !ok {
		z.flushCodePointsAsCharacterReference()
		return true, ambiguousAmpersandState
	}

	matched := []rune(name)
	last := matched[len(matched)-1]
	if wasConsumedByAttribute(z.returnState) && last != ';' {
		// Historical quirk: inside an attribute, a reference without a
		// semicolon stays literal when an alphanumeric or equals sign
		// follows it.
		if len(candidate) <= len(matched) && !z.eos {
			z.needMore = true
			return true, namedCharacterReferenceState
		}
		if len(candidate) > len(matched) {
			next := candidate[len(matched)]
			if next == '=' || isASCIIAlphanumeric(next) {
				z.skip(len(matched) - 1)
				for _, c := range matched {
					z.tokenBuilder.WriteTempBuffer(c)
				}
				z.flushCodePointsAsCharacterReference()
				return false, z.returnState
			}
		}
	}

	if last != ';' {
		z.err(missingSemicolonAfterCharRef)
	}
	z.skip(len(matched) - 1)
	z.tokenBuilder.ResetTempBuffer()
	for _, c := range value {
		z.tokenBuilder.WriteTempBuffer(c)
	}
	z.flushCodePointsAsCharacterReference()
	return false, z.returnState
}

// runesCouldExtendEntity reports whether more input could lengthen the
// entity match, which is only the case while every buffered character
// is still a plausible name character.
func runesCouldExtendEntity(candidate []rune) bool {
	for _, r := range candidate {
		if r == ';' {
			return false
		}
		if !isASCIIAlphanumeric(r) {
			return false
		}
	}
	return true
}

func (z *Tokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIAlphanumeric(r):
			if wasConsumedByAttribute(z.returnState) {
				z.tokenBuilder.WriteAttributeValue(r)
			} else {
				z.emit(z.tokenBuilder.CharacterToken(r))
			}
			return false, ambiguousAmpersandState
		case r == ';':
			z.err(unknownNamedCharacterReference)
			return true, z.returnState
		}
	}
	return true, z.returnState
}

func (z *Tokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	z.tokenBuilder.SetCharRef(0)
	if !eof && (r == 'x' || r == 'X') {
		z.tokenBuilder.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func (z *Tokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	z.err(absenceOfDigitsInNumericCharRef)
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}

func (z *Tokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIDigit(r) {
		return true, decimalCharacterReferenceState
	}
	z.err(absenceOfDigitsInNumericCharRef)
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}

func (z *Tokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIDigit(r):
			z.tokenBuilder.MultByCharRef(16)
			z.tokenBuilder.AddToCharRef(int(r - '0'))
			z.clampCharRef()
			return false, hexadecimalCharacterReferenceState
		case r >= 'A' && r <= 'F':
			z.tokenBuilder.MultByCharRef(16)
			z.tokenBuilder.AddToCharRef(int(r - 'A' + 10))
			z.clampCharRef()
			return false, hexadecimalCharacterReferenceState
		case r >= 'a' && r <= 'f':
			z.tokenBuilder.MultByCharRef(16)
			z.tokenBuilder.AddToCharRef(int(r - 'a' + 10))
			z.clampCharRef()
			return false, hexadecimalCharacterReferenceState
		case r == ';':
			return false, numericCharacterReferenceEndState
		}
	}
	z.err(missingSemicolonAfterCharRef)
	return true, numericCharacterReferenceEndState
}

func (z *Tokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIDigit(r):
			z.tokenBuilder.MultByCharRef(10)
			z.tokenBuilder.AddToCharRef(int(r - '0'))
			z.clampCharRef()
			return false, decimalCharacterReferenceState
		case r == ';':
			return false, numericCharacterReferenceEndState
		}
	}
	z.err(missingSemicolonAfterCharRef)
	return true, numericCharacterReferenceEndState
}

// clampCharRef saturates the accumulator just past the Unicode range
// so that arbitrarily long digit runs cannot wrap the int back into a
// valid code point.
func (z *Tokenizer) clampCharRef() {
	if z.tokenBuilder.GetCharRef() > 0x10FFFF {
		z.tokenBuilder.SetCharRef(0x110000)
	}
}

func (z *Tokenizer) numericCharacterReferenceEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	code := z.tokenBuilder.GetCharRef()
	switch {
	case code == 0:
		z.err(nullCharacterReference)
		code = 0xFFFD
	case code < 0 || code > 0x10FFFF:
		z.err(characterReferenceOutsideRange)
		code = 0xFFFD
	case isSurrogate(code):
		z.err(surrogateCharacterReference)
		code = 0xFFFD
	case isNonCharacter(code):
		z.err(noncharacterCharacterReference)
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)):
		z.err(controlCharacterReference)
		if mapped, ok := numericCharRefRemap[code]; ok {
			code = int(mapped)
		}
	}
	z.tokenBuilder.ResetTempBuffer()
	z.tokenBuilder.WriteTempBuffer(rune(code))
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}
