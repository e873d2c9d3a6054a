package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain collects every token up to and including EOF.
func drain(z *Tokenizer) []Token {
	var out []Token
	for {
		t := z.Next()
		out = append(out, t)
		if t.Kind == EOF {
			return out
		}
	}
}

// collapse merges adjacent character tokens, the way the conformance
// format compares them.
func collapse(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if t.Kind == Character && len(out) > 0 && out[len(out)-1].Kind == Character {
			out[len(out)-1].Data += t.Data
			continue
		}
		out = append(out, t)
	}
	return out
}

func errorCodes(z *Tokenizer) []string {
	var out []string
	for _, e := range z.Errors() {
		out = append(out, e.Code)
	}
	return out
}

func TestSimpleTagStream(t *testing.T) {
	z := New(`<p class="x">Hi</p>`)
	toks := collapse(drain(z))

	require.Len(t, toks, 4)
	assert.Equal(t, StartTag, toks[0].Kind)
	assert.Equal(t, "p", toks[0].Name)
	require.Len(t, toks[0].Attrs, 1)
	assert.Equal(t, Attr{Name: "class", Value: "x"}, toks[0].Attrs[0])
	assert.Equal(t, Token{Kind: Character, Data: "Hi"}, toks[1])
	assert.Equal(t, EndTag, toks[2].Kind)
	assert.Equal(t, "p", toks[2].Name)
	assert.Equal(t, EOF, toks[3].Kind)
	assert.Empty(t, z.Errors())
}

func TestTagNameAndAttrLowercasing(t *testing.T) {
	z := New(`<DiV CLASS=Y ID=Z>`)
	toks := drain(z)
	require.Equal(t, StartTag, toks[0].Kind)
	assert.Equal(t, "div", toks[0].Name)
	assert.Equal(t, "class", toks[0].Attrs[0].Name)
	assert.Equal(t, "Y", toks[0].Attrs[0].Value)
	assert.Equal(t, "id", toks[0].Attrs[1].Name)
}

func TestDuplicateAttributeKeepsFirst(t *testing.T) {
	z := New(`<p id="a" id="b">`)
	toks := drain(z)
	require.Len(t, toks[0].Attrs, 1)
	assert.Equal(t, "a", toks[0].Attrs[0].Value)
	assert.Contains(t, errorCodes(z), "duplicate-attribute")
}

func TestSelfClosing(t *testing.T) {
	z := New(`<br/><input />`)
	toks := drain(z)
	assert.True(t, toks[0].SelfClosing)
	assert.True(t, toks[1].SelfClosing)
}

func TestEndTagWithAttributes(t *testing.T) {
	z := New(`</p id="x">`)
	toks := drain(z)
	require.Equal(t, EndTag, toks[0].Kind)
	assert.Empty(t, toks[0].Attrs)
	assert.Contains(t, errorCodes(z), "end-tag-with-attributes")
}

func TestComments(t *testing.T) {
	tests := []struct {
		in   string
		data string
		errs []string
	}{
		{"<!-- hello -->", " hello ", nil},
		{"<!---->", "", nil},
		{"<!--->", "", []string{"abrupt-closing-of-empty-comment"}},
		{"<!-- a -- b -->", " a -- b ", nil},
		{"<!-- a --!>", " a ", []string{"incorrectly-closed-comment"}},
		{"<?php ?>", "?php ?", []string{"unexpected-question-mark-instead-of-tag-name"}},
		{"<!doctyp>", "doctyp", []string{"incorrectly-opened-comment"}},
	}
	for _, tt := range tests {
		z := New(tt.in)
		toks := drain(z)
		require.Equal(t, Comment, toks[0].Kind, tt.in)
		assert.Equal(t, tt.data, toks[0].Data, tt.in)
		for _, want := range tt.errs {
			assert.Contains(t, errorCodes(z), want, tt.in)
		}
	}
}

func TestDoctypeVariants(t *testing.T) {
	strp := func(s string) *string { return &s }
	tests := []struct {
		in  string
		tok Token
	}{
		{
			"<!DOCTYPE html>",
			Token{Kind: Doctype, Name: "html"},
		},
		{
			"<!doctype HTML>",
			Token{Kind: Doctype, Name: "html"},
		},
		{
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
			Token{Kind: Doctype, Name: "html",
				PublicID: strp("-//W3C//DTD HTML 4.01//EN"),
				SystemID: strp("http://www.w3.org/TR/html4/strict.dtd")},
		},
		{
			`<!DOCTYPE html SYSTEM "about:legacy-compat">`,
			Token{Kind: Doctype, Name: "html", SystemID: strp("about:legacy-compat")},
		},
		{
			"<!DOCTYPE>",
			Token{Kind: Doctype, ForceQuirks: true},
		},
	}
	for _, tt := range tests {
		z := New(tt.in)
		toks := drain(z)
		require.Equal(t, Doctype, toks[0].Kind, tt.in)
		assert.Equal(t, tt.tok.Name, toks[0].Name, tt.in)
		assert.Equal(t, tt.tok.ForceQuirks, toks[0].ForceQuirks, tt.in)
		if tt.tok.PublicID == nil {
			assert.Nil(t, toks[0].PublicID, tt.in)
		} else {
			require.NotNil(t, toks[0].PublicID, tt.in)
			assert.Equal(t, *tt.tok.PublicID, *toks[0].PublicID, tt.in)
		}
		if tt.tok.SystemID == nil {
			assert.Nil(t, toks[0].SystemID, tt.in)
		} else {
			require.NotNil(t, toks[0].SystemID, tt.in)
			assert.Equal(t, *tt.tok.SystemID, *toks[0].SystemID, tt.in)
		}
	}
}

func TestCharacterReferencesInText(t *testing.T) {
	tests := []struct {
		in   string
		want string
		errs []string
	}{
		{"&amp;", "&", nil},
		{"&amp", "&", []string{"missing-semicolon-after-character-reference"}},
		{"&ampx", "&x", []string{"missing-semicolon-after-character-reference"}},
		{"&notit;", "¬it;", []string{"missing-semicolon-after-character-reference"}},
		{"&notin;", "∉", nil},
		{"&#60;div&#62;", "<div>", nil},
		{"&#x41;&#X42;", "AB", nil},
		{"&#128;", "€", []string{"control-character-reference"}},
		{"&#0;", "�", []string{"null-character-reference"}},
		{"&#xD800;", "�", []string{"surrogate-character-reference"}},
		{"&#x110000;", "�", []string{"character-reference-outside-unicode-range"}},
		{"&#xFDD0;", "\uFDD0", []string{"noncharacter-character-reference"}},
		{"&#;", "&#;", []string{"absence-of-digits-in-numeric-character-reference"}},
		{"&bogusname;", "&bogusname;", []string{"unknown-named-character-reference"}},
		{"&", "&", nil},
		{"a & b", "a & b", nil},
	}
	for _, tt := range tests {
		z := New(tt.in)
		toks := collapse(drain(z))
		require.Equal(t, Character, toks[0].Kind, tt.in)
		assert.Equal(t, tt.want, toks[0].Data, tt.in)
		for _, want := range tt.errs {
			assert.Contains(t, errorCodes(z), want, tt.in)
		}
	}
}

func TestCharacterReferencesInAttributes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<a href="?x=1&amp;y=2">`, "?x=1&y=2"},
		// Legacy reference followed by an alphanumeric stays literal.
		{`<a href="?a=b&ampc=d">`, "?a=b&ampc=d"},
		{`<a href="?a=b&amp=d">`, "?a=b&amp=d"},
		{`<a href="&amp">`, "&"},
		{`<a href="&notit;">`, "&notit;"},
		{`<a href="&#65;">`, "A"},
	}
	for _, tt := range tests {
		z := New(tt.in)
		toks := drain(z)
		require.Equal(t, StartTag, toks[0].Kind, tt.in)
		assert.Equal(t, tt.want, toks[0].Attrs[0].Value, tt.in)
	}
}

func TestRawTextSwitching(t *testing.T) {
	z := New(`<script>var x = "<div>";</script>after`)
	toks := collapse(drain(z))
	require.Len(t, toks, 5)
	assert.Equal(t, "script", toks[0].Name)
	assert.Equal(t, `var x = "<div>";`, toks[1].Data)
	assert.Equal(t, EndTag, toks[2].Kind)
	assert.Equal(t, "after", toks[3].Data)
}

func TestRCDATADecodesEntities(t *testing.T) {
	z := New(`<title>a &amp; b</title>`)
	toks := collapse(drain(z))
	assert.Equal(t, "a & b", toks[1].Data)
}

func TestRawTextCaseInsensitiveEndTag(t *testing.T) {
	z := New("<style>p{}</STYLE>")
	toks := collapse(drain(z))
	assert.Equal(t, "p{}", toks[1].Data)
	assert.Equal(t, EndTag, toks[2].Kind)
	assert.Equal(t, "style", toks[2].Name)
}

func TestScriptEscapedStates(t *testing.T) {
	// "</script>" inside a <!-- --> escape does not end the element
	// when double-escaped.
	in := `<script><!--<script></script>--></script>`
	z := New(in)
	toks := collapse(drain(z))
	require.Equal(t, "script", toks[0].Name)
	assert.Equal(t, "<!--<script></script>-->", toks[1].Data)
	assert.Equal(t, EndTag, toks[2].Kind)
}

func TestPlaintextNeverEnds(t *testing.T) {
	z := New("<plaintext></plaintext><p>")
	toks := collapse(drain(z))
	require.Equal(t, "plaintext", toks[0].Name)
	assert.Equal(t, "</plaintext><p>", toks[1].Data)
	assert.Equal(t, EOF, toks[2].Kind)
}

func TestCDATAOutsideForeignContent(t *testing.T) {
	z := New("<![CDATA[x]]>")
	toks := drain(z)
	require.Equal(t, Comment, toks[0].Kind)
	assert.Equal(t, "[CDATA[x]]", toks[0].Data)
	assert.Contains(t, errorCodes(z), "cdata-in-html-content")
}

func TestCDATAInForeignContent(t *testing.T) {
	z := New("<![CDATA[x<y]]>")
	z.SetAllowCDATA(true)
	toks := collapse(drain(z))
	require.Equal(t, Character, toks[0].Kind)
	assert.Equal(t, "x<y", toks[0].Data)
}

func TestNewlineNormalization(t *testing.T) {
	z := New("a\r\nb\rc\nd")
	toks := collapse(drain(z))
	assert.Equal(t, "a\nb\nc\nd", toks[0].Data)
}

func TestLineColumnTracking(t *testing.T) {
	z := New("ab\ncd\n<")
	drain(z)
	errs := z.Errors()
	require.NotEmpty(t, errs)
	assert.Equal(t, "eof-before-tag-name", errs[0].Code)
	assert.Equal(t, 3, errs[0].Line)
}

func TestBOMHandling(t *testing.T) {
	z := New("\uFEFFx")
	toks := collapse(drain(z))
	assert.Equal(t, "x", toks[0].Data)

	z = NewWithOptions("\uFEFFx", Options{DiscardBOM: false})
	toks = collapse(drain(z))
	assert.Equal(t, "\uFEFFx", toks[0].Data)
}

func TestExternalStateSwitch(t *testing.T) {
	// The tree builder drives RCDATA for <textarea> via SetState.
	z := New("x</textarea>y")
	z.SetLastStartTag("textarea")
	z.SetState(RCDATAState)
	toks := collapse(drain(z))
	require.Equal(t, Character, toks[0].Kind)
	assert.Equal(t, "x", toks[0].Data)
	assert.Equal(t, EndTag, toks[1].Kind)
	assert.Equal(t, "textarea", toks[1].Name)
	assert.Equal(t, "y", toks[2].Data)
}

func TestEOFInTag(t *testing.T) {
	z := New("<div class=")
	toks := drain(z)
	assert.Equal(t, EOF, toks[len(toks)-1].Kind)
	assert.Contains(t, errorCodes(z), "eof-in-tag")
}

func TestMissingEndTagName(t *testing.T) {
	z := New("a</>b")
	toks := collapse(drain(z))
	assert.Equal(t, "ab", toks[0].Data)
	assert.Contains(t, errorCodes(z), "missing-end-tag-name")
}

func TestInvalidFirstCharacterOfTagName(t *testing.T) {
	z := New("<3>")
	toks := collapse(drain(z))
	assert.Equal(t, "<3>", toks[0].Data)
	assert.Contains(t, errorCodes(z), "invalid-first-character-of-tag-name")
}

func TestXMLCoercion(t *testing.T) {
	z := NewWithOptions("a\fb<!-- x--y -->", Options{DiscardBOM: true, XMLCoercion: true})
	toks := collapse(drain(z))
	assert.Equal(t, "a b", toks[0].Data)
	require.Equal(t, Comment, toks[1].Kind)
	assert.Equal(t, " x- -y ", toks[1].Data)
}

func TestTokenizerAlwaysTerminates(t *testing.T) {
	inputs := []string{
		"", "<", "</", "<!", "<!-", "<!--", "<!d", "<a b", "<a b=", "<a b='",
		"&#", "&#x", "<!doctype", "<!doctype html public", "<![CDATA[",
		strings.Repeat("<", 1000), strings.Repeat("&", 1000),
	}
	for _, in := range inputs {
		z := New(in)
		toks := drain(z)
		assert.Equal(t, EOF, toks[len(toks)-1].Kind, "input %q", in)
	}
}
