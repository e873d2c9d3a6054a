package tokenizer

// State is a tokenizer state. The machine covers the full WHATWG state
// set; the character-reference family is realized by the flush-time
// decoder in entities.go, which the helper states delegate to.
type State int

// Tokenizer states, in spec order.
const (
	DataState State = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	PLAINTEXTState
	TagOpenState
	EndTagOpenState
	TagNameState
	RCDATALessThanSignState
	RCDATAEndTagOpenState
	RCDATAEndTagNameState
	RAWTEXTLessThanSignState
	RAWTEXTEndTagOpenState
	RAWTEXTEndTagNameState
	ScriptDataLessThanSignState
	ScriptDataEndTagOpenState
	ScriptDataEndTagNameState
	ScriptDataEscapeStartState
	ScriptDataEscapeStartDashState
	ScriptDataEscapedState
	ScriptDataEscapedDashState
	ScriptDataEscapedDashDashState
	ScriptDataEscapedLessThanSignState
	ScriptDataEscapedEndTagOpenState
	ScriptDataEscapedEndTagNameState
	ScriptDataDoubleEscapeStartState
	ScriptDataDoubleEscapedState
	ScriptDataDoubleEscapedDashState
	ScriptDataDoubleEscapedDashDashState
	ScriptDataDoubleEscapedLessThanSignState
	ScriptDataDoubleEscapeEndState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState
	BogusCommentState
	MarkupDeclarationOpenState
	CommentStartState
	CommentStartDashState
	CommentState
	CommentLessThanSignState
	CommentLessThanSignBangState
	CommentLessThanSignBangDashState
	CommentLessThanSignBangDashDashState
	CommentEndDashState
	CommentEndState
	CommentEndBangState
	DoctypeState
	BeforeDoctypeNameState
	DoctypeNameState
	AfterDoctypeNameState
	AfterDoctypePublicKeywordState
	BeforeDoctypePublicIdentifierState
	DoctypePublicIdentifierDoubleQuotedState
	DoctypePublicIdentifierSingleQuotedState
	AfterDoctypePublicIdentifierState
	BetweenDoctypePublicAndSystemIdentifiersState
	AfterDoctypeSystemKeywordState
	BeforeDoctypeSystemIdentifierState
	DoctypeSystemIdentifierDoubleQuotedState
	DoctypeSystemIdentifierSingleQuotedState
	AfterDoctypeSystemIdentifierState
	BogusDoctypeState
	CDATASectionState
	CDATASectionBracketState
	CDATASectionEndState
	CharacterReferenceState
	NamedCharacterReferenceState
	AmbiguousAmpersandState
	NumericCharacterReferenceState
	HexadecimalCharacterReferenceStartState
	DecimalCharacterReferenceStartState
	HexadecimalCharacterReferenceState
	DecimalCharacterReferenceState
	NumericCharacterReferenceEndState
)

var stateNames = [...]string{
	"Data", "RCDATA", "RAWTEXT", "ScriptData", "PLAINTEXT", "TagOpen",
	"EndTagOpen", "TagName", "RCDATALessThanSign", "RCDATAEndTagOpen",
	"RCDATAEndTagName", "RAWTEXTLessThanSign", "RAWTEXTEndTagOpen",
	"RAWTEXTEndTagName", "ScriptDataLessThanSign", "ScriptDataEndTagOpen",
	"ScriptDataEndTagName", "ScriptDataEscapeStart",
	"ScriptDataEscapeStartDash", "ScriptDataEscaped",
	"ScriptDataEscapedDash", "ScriptDataEscapedDashDash",
	"ScriptDataEscapedLessThanSign", "ScriptDataEscapedEndTagOpen",
	"ScriptDataEscapedEndTagName", "ScriptDataDoubleEscapeStart",
	"ScriptDataDoubleEscaped", "ScriptDataDoubleEscapedDash",
	"ScriptDataDoubleEscapedDashDash",
	"ScriptDataDoubleEscapedLessThanSign", "ScriptDataDoubleEscapeEnd",
	"BeforeAttributeName", "AttributeName", "AfterAttributeName",
	"BeforeAttributeValue", "AttributeValueDoubleQuoted",
	"AttributeValueSingleQuoted", "AttributeValueUnquoted",
	"AfterAttributeValueQuoted", "SelfClosingStartTag", "BogusComment",
	"MarkupDeclarationOpen", "CommentStart", "CommentStartDash", "Comment",
	"CommentLessThanSign", "CommentLessThanSignBang",
	"CommentLessThanSignBangDash", "CommentLessThanSignBangDashDash",
	"CommentEndDash", "CommentEnd", "CommentEndBang", "DOCTYPE",
	"BeforeDOCTYPEName", "DOCTYPEName", "AfterDOCTYPEName",
	"AfterDOCTYPEPublicKeyword", "BeforeDOCTYPEPublicIdentifier",
	"DOCTYPEPublicIdentifierDoubleQuoted",
	"DOCTYPEPublicIdentifierSingleQuoted", "AfterDOCTYPEPublicIdentifier",
	"BetweenDOCTYPEPublicAndSystemIdentifiers", "AfterDOCTYPESystemKeyword",
	"BeforeDOCTYPESystemIdentifier", "DOCTYPESystemIdentifierDoubleQuoted",
	"DOCTYPESystemIdentifierSingleQuoted", "AfterDOCTYPESystemIdentifier",
	"BogusDOCTYPE", "CDATASection", "CDATASectionBracket", "CDATASectionEnd",
	"CharacterReference", "NamedCharacterReference", "AmbiguousAmpersand",
	"NumericCharacterReference", "HexadecimalCharacterReferenceStart",
	"DecimalCharacterReferenceStart", "HexadecimalCharacterReference",
	"DecimalCharacterReference", "NumericCharacterReferenceEnd",
}

// String returns the state name for debugging.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
