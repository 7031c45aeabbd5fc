package parser

import (
	"io"

	"github.com/sirupsen/logrus"
)

// parseError names a spec-defined parse error. Parse errors are
// diagnostic: the pipeline recovers and keeps going, so these are
// values, not Go errors.
type parseError string

const (
	noError parseError = ""

	// Tokenizer errors.
	abruptClosingOfEmptyComment         parseError = "abrupt-closing-of-empty-comment"
	abruptDoctypePublicIdentifier       parseError = "abrupt-doctype-public-identifier"
	abruptDoctypeSystemIdentifier       parseError = "abrupt-doctype-system-identifier"
	absenceOfDigitsInNumericCharRef     parseError = "absence-of-digits-in-numeric-character-reference"
	cdataInHTMLContent                  parseError = "cdata-in-html-content"
	characterReferenceOutsideRange      parseError = "character-reference-outside-unicode-range"
	controlCharacterReference           parseError = "control-character-reference"
	duplicateAttribute                  parseError = "duplicate-attribute"
	endTagWithAttributes                parseError = "end-tag-with-attributes"
	endTagWithTrailingSolidus           parseError = "end-tag-with-trailing-solidus"
	eofBeforeTagName                    parseError = "eof-before-tag-name"
	eofInCDATA                          parseError = "eof-in-cdata"
	eofInComment                        parseError = "eof-in-comment"
	eofInDoctype                        parseError = "eof-in-doctype"
	eofInScriptHTMLComment              parseError = "eof-in-script-html-comment-like-text"
	eofInTag                            parseError = "eof-in-tag"
	incorrectlyClosedComment            parseError = "incorrectly-closed-comment"
	incorrectlyOpenedComment            parseError = "incorrectly-opened-comment"
	invalidCharacterSequenceAfterName   parseError = "invalid-character-sequence-after-doctype-name"
	invalidFirstCharacterOfTagName      parseError = "invalid-first-character-of-tag-name"
	missingAttributeValue               parseError = "missing-attribute-value"
	missingDoctypeName                  parseError = "missing-doctype-name"
	missingDoctypePublicIdentifier      parseError = "missing-doctype-public-identifier"
	missingDoctypeSystemIdentifier      parseError = "missing-doctype-system-identifier"
	missingEndTagName                   parseError = "missing-end-tag-name"
	missingQuoteBeforePublicID          parseError = "missing-quote-before-doctype-public-identifier"
	missingQuoteBeforeSystemID          parseError = "missing-quote-before-doctype-system-identifier"
	missingSemicolonAfterCharRef        parseError = "missing-semicolon-after-character-reference"
	missingWhitespaceAfterPublicKeyword parseError = "missing-whitespace-after-doctype-public-keyword"
	missingWhitespaceAfterSystemKeyword parseError = "missing-whitespace-after-doctype-system-keyword"
	missingWhitespaceBetweenIdentifiers parseError = "missing-whitespace-between-doctype-public-and-system-identifiers"
	unexpectedCharacterAfterSystemID    parseError = "unexpected-character-after-doctype-system-identifier"
	missingWhitespaceBeforeName         parseError = "missing-whitespace-before-doctype-name"
	missingWhitespaceBetweenAttrs       parseError = "missing-whitespace-between-attributes"
	nestedComment                       parseError = "nested-comment"
	noncharacterCharacterReference      parseError = "noncharacter-character-reference"
	nullCharacterReference              parseError = "null-character-reference"
	surrogateCharacterReference         parseError = "surrogate-character-reference"
	unexpectedCharacterInAttrName       parseError = "unexpected-character-in-attribute-name"
	unexpectedCharacterInUnquoted       parseError = "unexpected-character-in-unquoted-attribute-value"
	unexpectedEqualsBeforeAttrName      parseError = "unexpected-equals-sign-before-attribute-name"
	unexpectedNullCharacter             parseError = "unexpected-null-character"
	unexpectedQuestionMark              parseError = "unexpected-question-mark-instead-of-tag-name"
	unexpectedSolidusInTag              parseError = "unexpected-solidus-in-tag"
	unknownNamedCharacterReference      parseError = "unknown-named-character-reference"

	// Tree builder errors.
	generalParseError            parseError = "unexpected-token"
	adoptionAgencyMisnested      parseError = "adoption-agency-misnested"
	unackedSelfClosingFlag       parseError = "non-void-html-element-start-tag-with-trailing-solidus"
	parserCannotChangeModeError  parseError = "parser-cannot-change-mode"
	unexpectedDoctype            parseError = "unexpected-doctype"
	formNestedInForm             parseError = "form-nested-in-form"
	misplacedStartTag            parseError = "misplaced-start-tag"
	misplacedEndTag              parseError = "misplaced-end-tag"
	unexpectedEOFInsideElement   parseError = "eof-inside-element"
	unexpectedCharacterInTable   parseError = "foster-parented-character"
	unexpectedIsindex            parseError = "isindex"

	// Encoding errors.
	unsupportedEncoding   parseError = "unsupported-encoding"
	encodingChangeBlocked parseError = "encoding-change-blocked"
)

// ErrorHandler receives every parse error with its 1-based source
// position. Parsing always continues afterwards.
type ErrorHandler func(code string, line, col int)

// log is the package logger. Quiet unless a caller installs an output
// through Config.Logger; the tokenizer and tree builder trace through
// it at debug level.
var log = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// SetLogger redirects the package's debug tracing.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}
