package strain

import (
	"errors"
	"testing"

	"github.com/strainhtml/strain/dom"
	htmlerrors "github.com/strainhtml/strain/errors"
	"github.com/strainhtml/strain/serialize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicDocuments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
	}{
		{"simple document", "<html><head></head><body><p>Hello</p></body></html>", "Hello"},
		{"with doctype", "<!DOCTYPE html><html><head><title>T</title></head><body>C</body></html>", "C"},
		{"malformed", "<p>Unclosed paragraph<div>Content", "Unclosed paragraphContent"},
		{"empty", "", ""},
		{"just text", "Plain text", "Plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, doc)
			root := doc.DocumentElement()
			require.NotNil(t, root)
			assert.Equal(t, "html", root.TagName)
			require.NotNil(t, doc.Body())
			assert.Equal(t, tt.wantText, doc.Body().Text())
		})
	}
}

func TestParseHelloTree(t *testing.T) {
	doc, err := Parse("<html><head></head><body><p>Hello</p></body></html>")
	require.NoError(t, err)
	got := serialize.Tree(doc)
	want := "| <html>\n|   <head>\n|   <body>\n|     <p>\n|       \"Hello\""
	assert.Equal(t, want, got)
}

func TestParseBareTextCollectsDoctypeError(t *testing.T) {
	doc, err := Parse("Hello", WithCollectErrors())
	require.NotNil(t, doc)
	require.Error(t, err)
	var perrs htmlerrors.ParseErrors
	require.True(t, errors.As(err, &perrs))
	codes := make(map[string]bool)
	for _, e := range perrs {
		codes[e.Code] = true
	}
	assert.True(t, codes["expected-doctype-but-got-character"], "got codes %v", codes)
	assert.Equal(t, "Hello", doc.Body().Text())
}

func TestParseNumericReferencesInText(t *testing.T) {
	doc, err := Parse("&#60;div&#62;")
	require.NoError(t, err)
	assert.Equal(t, "<div>", doc.Body().Text())
}

func TestParseDuplicateAttribute(t *testing.T) {
	doc, err := Parse(`<p id="a" id="b">Test</p>`, WithCollectErrors())
	require.NotNil(t, doc)
	p := doc.Body().Children()[0].(*dom.Element)
	assert.Equal(t, "a", p.Attr("id"))

	var perrs htmlerrors.ParseErrors
	require.True(t, errors.As(err, &perrs))
	found := false
	for _, e := range perrs {
		if e.Code == htmlerrors.DuplicateAttribute {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseTemplateKeepsContentOutOfTree(t *testing.T) {
	doc, err := Parse("<body><template>Hello</template>")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Body().Text())
	tpl := doc.Body().Children()[0].(*dom.Element)
	require.NotNil(t, tpl.Content)
	require.Len(t, tpl.Content.Children(), 1)
	assert.Equal(t, "Hello", tpl.Content.Children()[0].(*dom.Text).Data)
}

func TestParseTableRowsAndCells(t *testing.T) {
	doc, err := Parse("<table><tr><tr><td><td><span><th><span>X")
	require.NoError(t, err)
	assert.Equal(t, "X", doc.Body().Text())

	table := doc.Body().Children()[0].(*dom.Element)
	require.Equal(t, "table", table.TagName)
	tbody := table.Children()[0].(*dom.Element)
	require.Equal(t, "tbody", tbody.TagName)
	require.Len(t, tbody.Children(), 2)
	assert.Equal(t, "tr", tbody.Children()[0].(*dom.Element).TagName)
	assert.Equal(t, "tr", tbody.Children()[1].(*dom.Element).TagName)
}

func TestParseFragmentRowInTbody(t *testing.T) {
	nodes, err := ParseFragment("<tr><td>Cell 1</td><td>Cell 2</td></tr>", "tbody")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	tr := nodes[0].(*dom.Element)
	assert.Equal(t, "tr", tr.TagName)
	assert.Len(t, tr.Children(), 2)
}

func TestParseFragmentSelectRegression(t *testing.T) {
	nodes, err := ParseFragment("<table></table><li><table></table>", "select")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParseFragmentUnknownContext(t *testing.T) {
	_, err := ParseFragment("<td>x", "not-a-real-tag")
	require.Error(t, err)
	var perr *htmlerrors.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, htmlerrors.UnknownFragmentContext, perr.Code)
}

func TestStrictModeAborts(t *testing.T) {
	doc, err := Parse("<p id=a id=a>", WithStrictMode())
	assert.Nil(t, doc)
	require.Error(t, err)
	var perr *htmlerrors.ParseError
	require.True(t, errors.As(err, &perr))
}

func TestStrictModeCleanInput(t *testing.T) {
	doc, err := Parse("<!DOCTYPE html><html><head></head><body></body></html>", WithStrictMode())
	require.NoError(t, err)
	require.NotNil(t, doc)
}

func TestErrorsDiscardedByDefault(t *testing.T) {
	doc, err := Parse("<p id=a id=a>")
	require.NoError(t, err)
	require.NotNil(t, doc)
}

func TestParseBytesEncodingDetection(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		opts    []Option
		wantEnc string
		want    string
	}{
		{
			"utf-8 BOM",
			append([]byte{0xEF, 0xBB, 0xBF}, []byte("<p>héllo</p>")...),
			nil, "utf-8", "héllo",
		},
		{
			"meta prescan",
			[]byte(`<meta charset="utf-8"><p>héllo</p>`),
			nil, "utf-8", "héllo",
		},
		{
			"transport hint",
			[]byte("<p>caf\xe9</p>"),
			[]Option{WithEncoding("windows-1252")}, "windows-1252", "café",
		},
		{
			"fallback windows-1252",
			[]byte("<p>caf\xe9</p>"),
			nil, "windows-1252", "café",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes(tt.data, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnc, doc.Encoding)
			assert.Equal(t, tt.want, doc.Body().Text())
		})
	}
}

func TestParseScriptingFlag(t *testing.T) {
	on, err := Parse("<body><noscript><p>x</noscript>", WithScripting())
	require.NoError(t, err)
	noscript := on.Body().Children()[0].(*dom.Element)
	require.Len(t, noscript.Children(), 1)
	_, isText := noscript.Children()[0].(*dom.Text)
	assert.True(t, isText, "scripting on: noscript content is raw text")

	off, err := Parse("<body><noscript><p>x</noscript>")
	require.NoError(t, err)
	noscript = off.Body().Children()[0].(*dom.Element)
	_, isElement := noscript.Children()[0].(*dom.Element)
	assert.True(t, isElement, "scripting off: noscript content is parsed")
}

func TestParseIframeSrcdoc(t *testing.T) {
	doc, err := Parse("<p>x", WithIframeSrcdoc())
	require.NoError(t, err)
	assert.Equal(t, dom.NoQuirks, doc.QuirksMode)
}

func TestTreeParentInvariant(t *testing.T) {
	inputs := []string{
		"<!DOCTYPE html><div><p>a<b>b<i>c</b>d</i></div>",
		"<table><td>x<div>y",
		"<select><option>a<optgroup><option>b",
		"<svg><foreignObject><p>x</p></foreignObject></svg>",
		"<template><tr><td>x</td></tr></template>",
	}
	for _, in := range inputs {
		doc, err := Parse(in)
		require.NoError(t, err, in)
		verifyParents(t, doc, in)
	}
}

func verifyParents(t *testing.T, n dom.Node, input string) {
	t.Helper()
	for _, child := range n.Children() {
		if child.Parent() != n {
			t.Errorf("%q: child %v has wrong parent", input, child)
		}
		verifyParents(t, child, input)
	}
	if el, ok := n.(*dom.Element); ok && el.Content != nil {
		verifyParents(t, el.Content, input)
	}
}

func TestCloneSubtreeDumpEquality(t *testing.T) {
	doc, err := Parse(`<!DOCTYPE html><div id="a"><p>x</p><template>y</template></div>`)
	require.NoError(t, err)
	div := doc.Body().Children()[0].(*dom.Element)
	clone := div.Clone(true)
	assert.Equal(t,
		serialize.TreeNodes([]dom.Node{div}),
		serialize.TreeNodes([]dom.Node{clone}))
}

func TestDumpRoundTripCanonical(t *testing.T) {
	inputs := []string{
		"<!DOCTYPE html><p class=x>one<p>two",
		"<table><tr><td>a</td></tr></table>",
		"<svg xlink:href='#a'><circle/></svg>",
		"<template>x</template>",
	}
	for _, in := range inputs {
		doc, err := Parse(in)
		require.NoError(t, err, in)
		first := serialize.Tree(doc)
		second := serialize.Tree(serialize.ParseTree(first))
		assert.Equal(t, first, second, in)
	}
}
