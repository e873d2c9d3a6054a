package errors

// Parse error codes. The identifiers are fixed by the WHATWG specification
// and the html5lib-tests corpus; tests compare against them literally.
const (
	AbruptClosingOfEmptyComment                               = "abrupt-closing-of-empty-comment"
	AbruptDoctypePublicIdentifier                             = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier                             = "abrupt-doctype-system-identifier"
	AbsenceOfDigitsInNumericCharReference                     = "absence-of-digits-in-numeric-character-reference"
	CDATAInHTMLContent                                        = "cdata-in-html-content"
	CharacterReferenceOutsideUnicodeRange                     = "character-reference-outside-unicode-range"
	ControlCharacterInInputStream                             = "control-character-in-input-stream"
	ControlCharacterReference                                 = "control-character-reference"
	DuplicateAttribute                                        = "duplicate-attribute"
	EndTagWithAttributes                                      = "end-tag-with-attributes"
	EndTagWithTrailingSolidus                                 = "end-tag-with-trailing-solidus"
	EOFBeforeTagName                                          = "eof-before-tag-name"
	EOFInCDATA                                                = "eof-in-cdata"
	EOFInComment                                              = "eof-in-comment"
	EOFInDoctype                                              = "eof-in-doctype"
	EOFInScriptHTMLCommentLikeText                            = "eof-in-script-html-comment-like-text"
	EOFInTag                                                  = "eof-in-tag"
	IncorrectlyClosedComment                                  = "incorrectly-closed-comment"
	IncorrectlyOpenedComment                                  = "incorrectly-opened-comment"
	InvalidCharacterSequenceAfterDoctypeName                  = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName                            = "invalid-first-character-of-tag-name"
	MissingAttributeValue                                     = "missing-attribute-value"
	MissingDoctypeName                                        = "missing-doctype-name"
	MissingDoctypePublicIdentifier                            = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier                            = "missing-doctype-system-identifier"
	MissingEndTagName                                         = "missing-end-tag-name"
	MissingQuoteBeforeDoctypePublicIdentifier                 = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier                 = "missing-quote-before-doctype-system-identifier"
	MissingSemicolonAfterCharacterReference                   = "missing-semicolon-after-character-reference"
	MissingWhitespaceAfterDoctypePublicKeyword                = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword                = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName                        = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes                        = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers = "missing-whitespace-between-doctype-public-and-system-identifiers"
	NestedComment                                             = "nested-comment"
	NoncharacterCharacterReference                            = "noncharacter-character-reference"
	NoncharacterInInputStream                                 = "noncharacter-in-input-stream"
	NonVoidHTMLElementStartTagWithTrailingSolidus             = "non-void-html-element-start-tag-with-trailing-solidus"
	NullCharacterReference                                    = "null-character-reference"
	SurrogateCharacterReference                               = "surrogate-character-reference"
	SurrogateInInputStream                                    = "surrogate-in-input-stream"
	UnexpectedCharacterAfterDoctypeSystemIdentifier           = "unexpected-character-after-doctype-system-identifier"
	UnexpectedCharacterInAttributeName                        = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue               = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName                   = "unexpected-equals-sign-before-attribute-name"
	UnexpectedNullCharacter                                   = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName                    = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag                                    = "unexpected-solidus-in-tag"
	UnknownNamedCharacterReference                            = "unknown-named-character-reference"

	ExpectedDoctypeButGotStartTag  = "expected-doctype-but-got-start-tag"
	ExpectedDoctypeButGotEndTag    = "expected-doctype-but-got-end-tag"
	ExpectedDoctypeButGotCharacter = "expected-doctype-but-got-character"
	ExpectedDoctypeButGotEOF       = "expected-doctype-but-got-eof"
	UnexpectedStartTag             = "unexpected-start-tag"
	UnexpectedEndTag               = "unexpected-end-tag"
	UnexpectedDoctype              = "unexpected-doctype"
	NonSpaceCharacterInTableText   = "non-space-character-in-table-text"
	FosterParentedCharacter        = "foster-parented-character"
	UnknownFragmentContext         = "unknown-fragment-context"
)

var messages = map[string]string{
	AbruptClosingOfEmptyComment:               "empty comment abruptly closed by '>'",
	AbruptDoctypePublicIdentifier:             "'>' inside a DOCTYPE public identifier",
	AbruptDoctypeSystemIdentifier:             "'>' inside a DOCTYPE system identifier",
	AbsenceOfDigitsInNumericCharReference:     "numeric character reference without digits",
	CDATAInHTMLContent:                        "CDATA section outside foreign content",
	CharacterReferenceOutsideUnicodeRange:     "character reference above U+10FFFF",
	ControlCharacterInInputStream:             "control character in input stream",
	ControlCharacterReference:                 "character reference to a control character",
	DuplicateAttribute:                        "attribute repeated on the same tag; first value kept",
	EndTagWithAttributes:                      "end tag carries attributes",
	EndTagWithTrailingSolidus:                 "end tag with a trailing solidus",
	EOFBeforeTagName:                          "end of input where a tag name was expected",
	EOFInCDATA:                                "end of input inside a CDATA section",
	EOFInComment:                              "end of input inside a comment",
	EOFInDoctype:                              "end of input inside a DOCTYPE",
	EOFInScriptHTMLCommentLikeText:            "end of input inside script comment-like text",
	EOFInTag:                                  "end of input inside a tag",
	IncorrectlyClosedComment:                  "comment closed incorrectly",
	IncorrectlyOpenedComment:                  "markup declaration is not a comment, DOCTYPE, or CDATA",
	InvalidCharacterSequenceAfterDoctypeName:  "expected PUBLIC or SYSTEM after the DOCTYPE name",
	InvalidFirstCharacterOfTagName:            "invalid first character of a tag name",
	MissingAttributeValue:                     "attribute value missing before '>'",
	MissingDoctypeName:                        "DOCTYPE without a name",
	MissingDoctypePublicIdentifier:            "DOCTYPE public identifier missing",
	MissingDoctypeSystemIdentifier:            "DOCTYPE system identifier missing",
	MissingEndTagName:                         "'</>' with no tag name",
	MissingQuoteBeforeDoctypePublicIdentifier: "DOCTYPE public identifier not quoted",
	MissingQuoteBeforeDoctypeSystemIdentifier: "DOCTYPE system identifier not quoted",
	MissingSemicolonAfterCharacterReference:   "character reference not terminated by ';'",
	MissingWhitespaceAfterDoctypePublicKeyword: "missing whitespace after the PUBLIC keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword: "missing whitespace after the SYSTEM keyword",
	MissingWhitespaceBeforeDoctypeName:         "missing whitespace before the DOCTYPE name",
	MissingWhitespaceBetweenAttributes:         "missing whitespace between attributes",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "missing whitespace between DOCTYPE identifiers",
	NestedComment:                  "'<!--' inside a comment",
	NoncharacterCharacterReference: "character reference to a noncharacter",
	NoncharacterInInputStream:      "noncharacter in input stream",
	NonVoidHTMLElementStartTagWithTrailingSolidus: "trailing solidus on a non-void start tag",
	NullCharacterReference:                          "character reference to U+0000",
	SurrogateCharacterReference:                     "character reference to a surrogate",
	SurrogateInInputStream:                          "surrogate in input stream",
	UnexpectedCharacterAfterDoctypeSystemIdentifier: "unexpected character after the DOCTYPE system identifier",
	UnexpectedCharacterInAttributeName:              "quote, angle bracket, or equals sign in an attribute name",
	UnexpectedCharacterInUnquotedAttributeValue:     "quote, backtick, or equals sign in an unquoted attribute value",
	UnexpectedEqualsSignBeforeAttributeName:         "'=' before an attribute name",
	UnexpectedNullCharacter:                         "U+0000 in input",
	UnexpectedQuestionMarkInsteadOfTagName:          "'<?' is not a processing instruction in HTML",
	UnexpectedSolidusInTag:                          "'/' not followed by '>' inside a tag",
	UnknownNamedCharacterReference:                  "named character reference not recognized",

	ExpectedDoctypeButGotStartTag:  "document begins with a start tag instead of a DOCTYPE",
	ExpectedDoctypeButGotEndTag:    "document begins with an end tag instead of a DOCTYPE",
	ExpectedDoctypeButGotCharacter: "document begins with text instead of a DOCTYPE",
	ExpectedDoctypeButGotEOF:       "document ended before a DOCTYPE was seen",
	UnexpectedStartTag:             "start tag not allowed in the current insertion mode",
	UnexpectedEndTag:               "end tag does not match an open element",
	UnexpectedDoctype:              "DOCTYPE after the document has started",
	NonSpaceCharacterInTableText:   "non-whitespace text directly inside a table",
	FosterParentedCharacter:        "text relocated out of a table context",
	UnknownFragmentContext:         "fragment context tag not recognized",
}

// Message returns the human-readable description for an error code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "unknown parse error"
}
