package parser

// tokenizerState enumerates the WHATWG tokenizer states. The set is
// closed; the tree builder only ever forces the handful exposed
// through the TokenizerState constants in parser.go.
type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

var tokenizerStateNames = [...]string{
	dataState:                                     "Data",
	rcDataState:                                   "RCDATA",
	rawTextState:                                  "RAWTEXT",
	scriptDataState:                               "ScriptData",
	plaintextState:                                "PLAINTEXT",
	tagOpenState:                                  "TagOpen",
	endTagOpenState:                               "EndTagOpen",
	tagNameState:                                  "TagName",
	rcDataLessThanSignState:                       "RCDATALessThanSign",
	rcDataEndTagOpenState:                         "RCDATAEndTagOpen",
	rcDataEndTagNameState:                         "RCDATAEndTagName",
	rawTextLessThanSignState:                      "RAWTEXTLessThanSign",
	rawTextEndTagOpenState:                        "RAWTEXTEndTagOpen",
	rawTextEndTagNameState:                        "RAWTEXTEndTagName",
	scriptDataLessThanSignState:                   "ScriptDataLessThanSign",
	scriptDataEndTagOpenState:                     "ScriptDataEndTagOpen",
	scriptDataEndTagNameState:                     "ScriptDataEndTagName",
	scriptDataEscapeStartState:                    "ScriptDataEscapeStart",
	scriptDataEscapeStartDashState:                "ScriptDataEscapeStartDash",
	scriptDataEscapedState:                        "ScriptDataEscaped",
	scriptDataEscapedDashState:                    "ScriptDataEscapedDash",
	scriptDataEscapedDashDashState:                "ScriptDataEscapedDashDash",
	scriptDataEscapedLessThanSignState:            "ScriptDataEscapedLessThanSign",
	scriptDataEscapedEndTagOpenState:              "ScriptDataEscapedEndTagOpen",
	scriptDataEscapedEndTagNameState:              "ScriptDataEscapedEndTagName",
	scriptDataDoubleEscapeStartState:              "ScriptDataDoubleEscapeStart",
	scriptDataDoubleEscapedState:                  "ScriptDataDoubleEscaped",
	scriptDataDoubleEscapedDashState:              "ScriptDataDoubleEscapedDash",
	scriptDataDoubleEscapedDashDashState:          "ScriptDataDoubleEscapedDashDash",
	scriptDataDoubleEscapedLessThanSignState:      "ScriptDataDoubleEscapedLessThanSign",
	scriptDataDoubleEscapeEndState:                "ScriptDataDoubleEscapeEnd",
	beforeAttributeNameState:                      "BeforeAttributeName",
	attributeNameState:                            "AttributeName",
	afterAttributeNameState:                       "AfterAttributeName",
	beforeAttributeValueState:                     "BeforeAttributeValue",
	attributeValueDoubleQuotedState:               "AttributeValueDoubleQuoted",
	attributeValueSingleQuotedState:               "AttributeValueSingleQuoted",
	attributeValueUnquotedState:                   "AttributeValueUnquoted",
	afterAttributeValueQuotedState:                "AfterAttributeValueQuoted",
	selfClosingStartTagState:                      "SelfClosingStartTag",
	bogusCommentState:                             "BogusComment",
	markupDeclarationOpenState:                    "MarkupDeclarationOpen",
	commentStartState:                             "CommentStart",
	commentStartDashState:                         "CommentStartDash",
	commentState:                                  "Comment",
	commentLessThanSignState:                      "CommentLessThanSign",
	commentLessThanSignBangState:                  "CommentLessThanSignBang",
	commentLessThanSignBangDashState:              "CommentLessThanSignBangDash",
	commentLessThanSignBangDashDashState:          "CommentLessThanSignBangDashDash",
	commentEndDashState:                           "CommentEndDash",
	commentEndState:                               "CommentEnd",
	commentEndBangState:                           "CommentEndBang",
	doctypeState:                                  "DOCTYPE",
	beforeDoctypeNameState:                        "BeforeDOCTYPEName",
	doctypeNameState:                              "DOCTYPEName",
	afterDoctypeNameState:                         "AfterDOCTYPEName",
	afterDoctypePublicKeywordState:                "AfterDOCTYPEPublicKeyword",
	beforeDoctypePublicIdentifierState:            "BeforeDOCTYPEPublicIdentifier",
	doctypePublicIdentifierDoubleQuotedState:      "DOCTYPEPublicIdentifierDoubleQuoted",
	doctypePublicIdentifierSingleQuotedState:      "DOCTYPEPublicIdentifierSingleQuoted",
	afterDoctypePublicIdentifierState:             "AfterDOCTYPEPublicIdentifier",
	betweenDoctypePublicAndSystemIdentifiersState: "BetweenDOCTYPEPublicAndSystemIdentifiers",
	afterDoctypeSystemKeywordState:                "AfterDOCTYPESystemKeyword",
	beforeDoctypeSystemIdentifierState:            "BeforeDOCTYPESystemIdentifier",
	doctypeSystemIdentifierDoubleQuotedState:      "DOCTYPESystemIdentifierDoubleQuoted",
	doctypeSystemIdentifierSingleQuotedState:      "DOCTYPESystemIdentifierSingleQuoted",
	afterDoctypeSystemIdentifierState:             "AfterDOCTYPESystemIdentifier",
	bogusDoctypeState:                             "BogusDOCTYPE",
	cdataSectionState:                             "CDATASection",
	cdataSectionBracketState:                      "CDATASectionBracket",
	cdataSectionEndState:                          "CDATASectionEnd",
	characterReferenceState:                       "CharacterReference",
	namedCharacterReferenceState:                  "NamedCharacterReference",
	ambiguousAmpersandState:                       "AmbiguousAmpersand",
	numericCharacterReferenceState:                "NumericCharacterReference",
	hexadecimalCharacterReferenceStartState:       "HexadecimalCharacterReferenceStart",
	decimalCharacterReferenceStartState:           "DecimalCharacterReferenceStart",
	hexadecimalCharacterReferenceState:            "HexadecimalCharacterReference",
	decimalCharacterReferenceState:                "DecimalCharacterReference",
	numericCharacterReferenceEndState:             "NumericCharacterReferenceEnd",
}

func (s tokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return "unknown"
}
