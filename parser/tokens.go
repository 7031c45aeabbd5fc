package parser

import (
	"strconv"
	"strings"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "character"
	case startTagToken:
		return "start-tag"
	case endTagToken:
		return "end-tag"
	case endOfFileToken:
		return "eof"
	case commentToken:
		return "comment"
	case docTypeToken:
		return "doctype"
	}
	return "unknown"
}

// missing distinguishes an absent DOCTYPE identifier from an empty
// one; both occur in the wild and quirks detection cares.
const missing string = "MISSING"

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Attribute is a single name/value pair on a tag token. Order of
// appearance in the source is preserved.
type Attribute struct {
	Name  string
	Value string
}

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType        tokenType
	Attributes       []Attribute
	TagName          string
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
	Data             string

	// Line and Column locate the first code point of the token in
	// the decoded input, 1-based.
	Line   int
	Column int
}

// Attr returns the value of the named attribute.
func (t *Token) Attr(name string) (string, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			return t.Attributes[i].Value, true
		}
	}
	return "", false
}

func (t *Token) setAttr(name, value string) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			t.Attributes[i].Value = value
			return
		}
	}
	t.Attributes = append(t.Attributes, Attribute{Name: name, Value: value})
}

// String is a compact form for log output.
func (t *Token) String() string {
	switch t.TokenType {
	case characterToken, commentToken:
		return t.TokenType.String() + " " + strconv.Quote(t.Data)
	case startTagToken, endTagToken, docTypeToken:
		return t.TokenType.String() + " <" + t.TagName + ">"
	}
	return t.TokenType.String()
}

// clone returns a copy that is safe to keep on the list of active
// formatting elements after the builder reuses the original.
func (t *Token) clone() *Token {
	c := *t
	c.Attributes = make([]Attribute, len(t.Attributes))
	copy(c.Attributes, t.Attributes)
	return &c
}

// TokenBuilder accumulates the partial token the tokenizer is
// constructing across states.
type TokenBuilder struct {
	attributes             []Attribute
	attributeKey           strings.Builder
	attributeValue         strings.Builder
	name                   strings.Builder
	data                   strings.Builder
	tempBuffer             strings.Builder
	publicID               strings.Builder
	systemID               strings.Builder
	publicIDPresent        bool
	systemIDPresent        bool
	selfClosing            bool
	forceQuirks            bool
	curTagType             tagType
	characterReferenceCode int
	line, column           int
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears the builder for a fresh token. The temp buffer is
// managed separately by the states that share it.
func (t *TokenBuilder) Reset() {
	t.attributes = t.attributes[:0]
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.publicIDPresent = false
	t.systemIDPresent = false
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
}

// SetTagType records whether TagToken builds a start or an end tag.
func (t *TokenBuilder) SetTagType(tt tagType) { t.curTagType = tt }

// MarkPosition pins the source position that the next built token
// reports. Called where a state creates a new token.
func (t *TokenBuilder) MarkPosition(line, column int) {
	t.line = line
	t.column = column
}

func (t *TokenBuilder) EnableSelfClosing() { t.selfClosing = true }
func (t *TokenBuilder) EnableForceQuirks() { t.forceQuirks = true }

func (t *TokenBuilder) MarkPublicIdentifier() { t.publicIDPresent = true }
func (t *TokenBuilder) MarkSystemIdentifier() { t.systemIDPresent = true }

func (t *TokenBuilder) WritePublicIdentifier(r rune) { t.publicID.WriteRune(r) }
func (t *TokenBuilder) WriteSystemIdentifier(r rune) { t.systemID.WriteRune(r) }
func (t *TokenBuilder) WriteAttributeName(r rune)    { t.attributeKey.WriteRune(r) }
func (t *TokenBuilder) WriteAttributeValue(r rune)   { t.attributeValue.WriteRune(r) }
func (t *TokenBuilder) WriteData(r rune)             { t.data.WriteRune(r) }
func (t *TokenBuilder) WriteName(r rune)             { t.name.WriteRune(r) }

// hasAttribute reports whether a committed attribute already carries
// the name.
func (t *TokenBuilder) hasAttribute(name string) bool {
	for i := range t.attributes {
		if t.attributes[i].Name == name {
			return true
		}
	}
	return false
}

// CommitAttribute ends the creation of a key/value pair by copying
// the accumulators into the attribute list. A name collision drops
// the later attribute and reports true so the caller can flag
// duplicate-attribute.
func (t *TokenBuilder) CommitAttribute() (duplicate bool) {
	k := t.attributeKey.String()
	v := t.attributeValue.String()
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	if k == "" {
		return false
	}
	if t.hasAttribute(k) {
		return true
	}
	t.attributes = append(t.attributes, Attribute{Name: k, Value: v})
	return false
}

func (t *TokenBuilder) WriteTempBuffer(r rune) { t.tempBuffer.WriteRune(r) }
func (t *TokenBuilder) ResetTempBuffer()       { t.tempBuffer.Reset() }
func (t *TokenBuilder) TempBuffer() string     { return t.tempBuffer.String() }

func (t *TokenBuilder) SetCharRef(i int)    { t.characterReferenceCode = i }
func (t *TokenBuilder) GetCharRef() int     { return t.characterReferenceCode }
func (t *TokenBuilder) AddToCharRef(i int)  { t.characterReferenceCode += i }
func (t *TokenBuilder) MultByCharRef(i int) { t.characterReferenceCode *= i }

// TempBufferCharTokens flushes the temp buffer as character tokens.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	buffered := t.TempBuffer()
	tokens := make([]Token, 0, len(buffered))
	for _, r := range buffered {
		tokens = append(tokens, t.CharacterToken(r))
	}
	return tokens
}

func (t *TokenBuilder) TagToken() Token {
	tok := Token{
		TokenType:   startTagToken,
		TagName:     t.name.String(),
		Attributes:  append([]Attribute(nil), t.attributes...),
		SelfClosing: t.selfClosing,
		Line:        t.line,
		Column:      t.column,
	}
	if t.curTagType == endTag {
		tok.TokenType = endTagToken
	}
	return tok
}

func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{TokenType: characterToken, Data: string(r), Line: t.line, Column: t.column}
}

func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{TokenType: endOfFileToken, Line: t.line, Column: t.column}
}

func (t *TokenBuilder) CommentToken() Token {
	return Token{TokenType: commentToken, Data: t.data.String(), Line: t.line, Column: t.column}
}

func (t *TokenBuilder) DocTypeToken() Token {
	tok := Token{
		TokenType:        docTypeToken,
		TagName:          t.name.String(),
		ForceQuirks:      t.forceQuirks,
		PublicIdentifier: missing,
		SystemIdentifier: missing,
		Line:             t.line,
		Column:           t.column,
	}
	if t.publicIDPresent {
		tok.PublicIdentifier = t.publicID.String()
	}
	if t.systemIDPresent {
		tok.SystemIdentifier = t.systemID.String()
	}
	return tok
}
