package serialize

import (
	"testing"

	"github.com/strainhtml/strain/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func el(name string, children ...dom.Node) *dom.Element {
	e := dom.NewElement(name)
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

func text(s string) *dom.Text { return dom.NewText(s) }

func TestToHTMLBasics(t *testing.T) {
	div := el("div", text("a & b < c"))
	div.SetAttr("id", "x")
	got := ToHTML(div, DefaultOptions())
	assert.Equal(t, `<div id="x">a &amp; b &lt; c</div>`, got)
}

func TestToHTMLVoidElements(t *testing.T) {
	br := el("br")
	assert.Equal(t, "<br>", ToHTML(br, DefaultOptions()))

	opts := DefaultOptions()
	opts.UseTrailingSolidus = true
	assert.Equal(t, "<br />", ToHTML(br, opts))
}

func TestToHTMLRawText(t *testing.T) {
	script := el("script", text(`if (a < b) x();`))
	assert.Equal(t, `<script>if (a < b) x();</script>`, ToHTML(script, DefaultOptions()))

	opts := DefaultOptions()
	opts.EscapeRcdata = true
	assert.Equal(t, `<script>if (a &lt; b) x();</script>`, ToHTML(script, opts))
}

func TestToHTMLAttributeQuoting(t *testing.T) {
	a := el("a")
	a.SetAttr("href", "plain")
	opts := DefaultOptions()
	opts.QuoteAttrValues = "legacy"
	assert.Equal(t, `<a href=plain></a>`, ToHTML(a, opts))

	a.SetAttr("href", "has space")
	assert.Equal(t, `<a href="has space"></a>`, ToHTML(a, opts))

	a.SetAttr("href", `say "hi"`)
	assert.Equal(t, `<a href='say "hi"'></a>`, ToHTML(a, opts))

	a.SetAttr("href", `both "and's`)
	assert.Equal(t, `<a href="both &quot;and's"></a>`, ToHTML(a, opts))

	// Always-quote default.
	a.SetAttr("href", "plain")
	assert.Equal(t, `<a href="plain"></a>`, ToHTML(a, DefaultOptions()))

	// Single-quote preference.
	opts = DefaultOptions()
	opts.QuoteChar = '\''
	assert.Equal(t, `<a href='plain'></a>`, ToHTML(a, opts))
}

func TestToHTMLEscapeLtInAttrs(t *testing.T) {
	a := el("a")
	a.SetAttr("title", "a<b")
	assert.Equal(t, `<a title="a<b"></a>`, ToHTML(a, DefaultOptions()))

	opts := DefaultOptions()
	opts.EscapeLtInAttrs = true
	assert.Equal(t, `<a title="a&lt;b"></a>`, ToHTML(a, opts))
}

func TestToHTMLBooleanMinimization(t *testing.T) {
	input := el("input")
	input.SetAttr("disabled", "disabled")
	input.SetAttr("value", "")

	opts := DefaultOptions()
	opts.MinimizeBooleanAttributes = true
	assert.Equal(t, `<input disabled value>`, ToHTML(input, opts))

	got := ToHTML(input, DefaultOptions())
	assert.Equal(t, `<input disabled="disabled" value="">`, got)
}

func TestToHTMLStripWhitespace(t *testing.T) {
	p := el("p", text("  a \n\n b  "))
	pre := el("pre", text("  a \n b  "))

	opts := DefaultOptions()
	opts.StripWhitespace = true
	assert.Equal(t, "<p> a b </p>", ToHTML(p, opts))
	assert.Equal(t, "<pre>  a \n b  </pre>", ToHTML(pre, opts))
}

func TestToHTMLInjectMetaCharset(t *testing.T) {
	head := el("head", el("title", text("x")))
	opts := DefaultOptions()
	opts.InjectMetaCharset = true
	opts.Encoding = "utf-8"
	assert.Equal(t, `<head><meta charset=utf-8><title>x</title></head>`, ToHTML(head, opts))

	// An existing meta charset is rewritten, not duplicated.
	meta := el("meta")
	meta.SetAttr("charset", "big5")
	head2 := el("head", meta)
	got := ToHTML(head2, opts)
	assert.Equal(t, `<head><meta charset="utf-8"></head>`, got)
}

func TestToHTMLOmitOptionalTags(t *testing.T) {
	html := el("html", el("head"), el("body", el("p", text("x"))))
	doc := dom.NewDocument()
	doc.AppendChild(html)

	opts := DefaultOptions()
	opts.OmitOptionalTags = true
	assert.Equal(t, "<p>x", ToHTML(doc, opts))

	// Attributes force the tag to stay.
	html2 := el("html", el("body", el("p", text("x"))))
	html2.SetAttr("lang", "en")
	doc2 := dom.NewDocument()
	doc2.AppendChild(html2)
	got := ToHTML(doc2, opts)
	assert.Equal(t, `<html lang="en"><p>x`, got)
}

func TestToHTMLOmitListAndTableEndTags(t *testing.T) {
	ul := el("ul", el("li", text("a")), el("li", text("b")))
	opts := DefaultOptions()
	opts.OmitOptionalTags = true
	assert.Equal(t, "<ul><li>a<li>b</ul>", ToHTML(ul, opts))

	tr1 := el("tr", el("td", text("1")), el("td", text("2")))
	tr2 := el("tr", el("td", text("3")))
	tbody := el("tbody", tr1, tr2)
	assert.Equal(t, "<tbody><tr><td>1<td>2<tr><td>3", ToHTML(tbody, opts))
}

func TestToHTMLTemplateContent(t *testing.T) {
	tpl := el("template")
	tpl.Content = dom.NewFragment()
	tpl.Content.AppendChild(el("p", text("x")))
	assert.Equal(t, "<template><p>x</p></template>", ToHTML(tpl, DefaultOptions()))
}

func TestToHTMLDoctype(t *testing.T) {
	doc := dom.NewDocument()
	doc.Doctype = dom.NewDocumentType("html", "", "")
	doc.AppendChild(el("html"))
	assert.Equal(t, "<!DOCTYPE html><html></html>", ToHTML(doc, DefaultOptions()))
}

func TestToHTMLPretty(t *testing.T) {
	html := el("html", el("body", el("p", text("x"))))
	doc := dom.NewDocument()
	doc.AppendChild(html)
	opts := DefaultOptions()
	opts.Pretty = true
	got := ToHTML(doc, opts)
	require.Contains(t, got, "\n")
	assert.Contains(t, got, "<p>x</p>")
}

func TestTreeDumpFormat(t *testing.T) {
	doc := dom.NewDocument()
	doc.Doctype = dom.NewDocumentType("html", "", "")
	html := el("html", el("head"), el("body"))
	doc.AppendChild(html)
	body := html.Children()[1].(*dom.Element)

	p := el("p", text("hi"))
	p.SetAttr("id", "z")
	p.SetAttr("class", "a")
	body.AppendChild(p)
	body.AppendChild(dom.NewComment("note"))

	svg := dom.NewElementNS("svg", dom.NamespaceSVG)
	svg.Attrs.SetNS("http://www.w3.org/1999/xlink", "xlink:href", "#x")
	body.AppendChild(svg)

	want := dump(
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       class="a"`,
		`|       id="z"`,
		`|       "hi"`,
		"|     <!-- note -->",
		"|     <svg svg>",
		`|       xlink href="#x"`,
	)
	assert.Equal(t, want, Tree(doc))
}

func TestParseTreeRoundTrip(t *testing.T) {
	doc := dom.NewDocument()
	doc.Doctype = dom.NewDocumentType("html", "", "")
	html := el("html", el("head", el("title", text("T"))), el("body"))
	doc.AppendChild(html)
	body := html.Children()[1].(*dom.Element)
	div := el("div", text("x"))
	div.SetAttr("id", "d")
	body.AppendChild(div)
	tpl := el("template")
	tpl.Content = dom.NewFragment()
	tpl.Content.AppendChild(text("inner"))
	body.AppendChild(tpl)

	first := Tree(doc)
	parsed := ParseTree(first)
	second := Tree(parsed)
	assert.Equal(t, first, second)
}

func TestDumpMultiLineText(t *testing.T) {
	p := el("p", text("a\nb"))
	got := TreeNodes([]dom.Node{p})
	want := dump(
		"| <p>",
		`|   "a`,
		`b"`,
	)
	assert.Equal(t, want, got)
}

func dump(lines ...string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
