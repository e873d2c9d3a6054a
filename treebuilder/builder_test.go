package treebuilder

import (
	"strings"
	"testing"

	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/serialize"
	"github.com/strainhtml/strain/tokenizer"
)

// buildDoc runs the full pipeline over input and returns the document.
func buildDoc(t *testing.T, input string, opts ...func(*Builder)) *dom.Document {
	t.Helper()
	tok := tokenizer.New(input)
	b := New(tok)
	for _, opt := range opts {
		opt(b)
	}
	run(tok, b)
	return b.Document()
}

func buildFragment(t *testing.T, input string, ctx FragmentContext) *dom.Fragment {
	t.Helper()
	tok := tokenizer.New(input)
	b := NewFragment(tok, &ctx)
	run(tok, b)
	return b.Fragment()
}

func run(tok *tokenizer.Tokenizer, b *Builder) {
	for {
		tok.SetAllowCDATA(b.AllowCDATA())
		t := tok.Next()
		b.ProcessToken(&t)
		if t.Kind == tokenizer.EOF {
			return
		}
	}
}

// dump joins expected tree lines for comparison with serialize.Tree.
func dump(lines ...string) string {
	return strings.Join(lines, "\n")
}

func checkTree(t *testing.T, input string, want string) {
	t.Helper()
	doc := buildDoc(t, input)
	got := serialize.Tree(doc)
	if got != want {
		t.Errorf("tree mismatch for %q:\ngot:\n%s\nwant:\n%s", input, got, want)
	}
}

func TestBasicDocument(t *testing.T) {
	checkTree(t, "<html><head></head><body><p>Hello</p></body></html>", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       "Hello"`,
	))
}

func TestBareText(t *testing.T) {
	checkTree(t, "Hello", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		`|     "Hello"`,
	))
}

func TestDoctypeRetained(t *testing.T) {
	checkTree(t, "<!DOCTYPE html><p>x", dump(
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       "x"`,
	))
}

func TestImplicitStructure(t *testing.T) {
	checkTree(t, "<p>one<p>two", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       "one"`,
		"|     <p>",
		`|       "two"`,
	))
}

func TestTableRowsAndCells(t *testing.T) {
	// Two <tr> siblings inside an implicit tbody; the spans stay inside
	// the cells they opened in.
	checkTree(t, "<table><tr><tr><td><td><span><th><span>X", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <table>",
		"|       <tbody>",
		"|         <tr>",
		"|         <tr>",
		"|           <td>",
		"|           <td>",
		"|             <span>",
		"|           <th>",
		"|             <span>",
		`|               "X"`,
	))
}

func TestFosterParentedText(t *testing.T) {
	checkTree(t, "<table>x</table>", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		`|     "x"`,
		"|     <table>",
	))
}

func TestTemplateContent(t *testing.T) {
	doc := buildDoc(t, "<body><template>Hello</template>")
	got := serialize.Tree(doc)
	want := dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <template>",
		"|       content",
		`|         "Hello"`,
	)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	// The template's own child list stays empty in the main tree.
	tpl := doc.Body().Children()[0].(*dom.Element)
	if tpl.HasChildNodes() {
		t.Error("template element must have no children in the main tree")
	}
	if tpl.Content == nil || len(tpl.Content.Children()) != 1 {
		t.Error("template content missing")
	}
	if doc.Body().Text() != "" {
		t.Errorf("template content leaked into document text: %q", doc.Body().Text())
	}
}

func TestAdoptionAgencyMisnestedFormatting(t *testing.T) {
	checkTree(t, "<b><i></b></i>x", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <b>",
		"|       <i>",
		`|     "x"`,
	))
}

func TestAdoptionAgencyWithBlock(t *testing.T) {
	// adoption01-style case: the formatting element is cloned into the
	// block.
	checkTree(t, `<a>1<div>2<div>3</a>4`, dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <a>",
		`|       "1"`,
		"|     <div>",
		"|       <a>",
		`|         "2"`,
		"|       <div>",
		"|         <a>",
		`|           "3"`,
		`|         "4"`,
	))
}

func TestReopenedFormattingAcrossParagraphs(t *testing.T) {
	checkTree(t, "<p>1<b>2<p>3", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       "1"`,
		"|       <b>",
		`|         "2"`,
		"|     <p>",
		"|       <b>",
		`|         "3"`,
	))
}

func TestHeadingsCloseEachOther(t *testing.T) {
	checkTree(t, "<h1>a<h2>b", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <h1>",
		`|       "a"`,
		"|     <h2>",
		`|       "b"`,
	))
}

func TestListItemsImplicitClose(t *testing.T) {
	checkTree(t, "<ul><li>a<li>b</ul>", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <ul>",
		"|       <li>",
		`|         "a"`,
		"|       <li>",
		`|         "b"`,
	))
}

func TestPreLeadingNewlineDropped(t *testing.T) {
	checkTree(t, "<pre>\nkeep\n</pre>", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <pre>",
		`|       "keep`,
		`"`,
	))
}

func TestSelectOptionNesting(t *testing.T) {
	checkTree(t, "<select><option>a<option>b</select>", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <select>",
		"|       <option>",
		`|         "a"`,
		"|       <option>",
		`|         "b"`,
	))
}

func TestFramesetReplacesBody(t *testing.T) {
	checkTree(t, "<frameset><frame></frameset>", dump(
		"| <html>",
		"|   <head>",
		"|   <frameset>",
		"|     <frame>",
	))
}

func TestCommentsAtAllLevels(t *testing.T) {
	checkTree(t, "<!--a--><html><!--b--><body><!--c--></body></html><!--d-->", dump(
		"| <!-- a -->",
		"| <html>",
		"|   <!-- b -->",
		"|   <head>",
		"|   <body>",
		"|     <!-- c -->",
		"| <!-- d -->",
	))
}

func TestForeignContentSVG(t *testing.T) {
	checkTree(t, `<svg><clippath></clippath><foreignObject><div>x</div></foreignObject></svg>`, dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <svg svg>",
		"|       <svg clipPath>",
		"|       <svg foreignObject>",
		"|         <div>",
		`|           "x"`,
	))
}

func TestForeignAttributeAdjustment(t *testing.T) {
	checkTree(t, `<svg viewbox="0 0 1 1" xlink:href="#a"></svg>`, dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <svg svg>",
		`|       viewBox="0 0 1 1"`,
		`|       xlink href="#a"`,
	))
}

func TestForeignBreakout(t *testing.T) {
	checkTree(t, "<svg><p>x", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <svg svg>",
		"|     <p>",
		`|       "x"`,
	))
}

func TestMathMLIntegrationPoint(t *testing.T) {
	checkTree(t, "<math><mi><b>x</b></mi></math>", dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <math math>",
		"|       <math mi>",
		"|         <b>",
		`|           "x"`,
	))
}

func TestNoscriptScriptingOff(t *testing.T) {
	doc := buildDoc(t, "<body><noscript><p>x</noscript>")
	got := serialize.Tree(doc)
	want := dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <noscript>",
		"|       <p>",
		`|         "x"`,
	)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestNoscriptScriptingOn(t *testing.T) {
	doc := buildDoc(t, "<body><noscript><p>x</noscript>", func(b *Builder) {
		b.SetScripting(true)
	})
	got := serialize.Tree(doc)
	want := dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <noscript>",
		`|       "<p>x"`,
	)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestQuirksModes(t *testing.T) {
	tests := []struct {
		input string
		want  dom.QuirksMode
	}{
		{"<!DOCTYPE html><p>", dom.NoQuirks},
		{"<p>", dom.Quirks},
		{"<!DOCTYPE html SYSTEM \"about:legacy-compat\"><p>", dom.NoQuirks},
		{"<!DOCTYPE foo><p>", dom.Quirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN"><p>`, dom.Quirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "x"><p>`, dom.LimitedQuirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"><p>`, dom.LimitedQuirks},
		{`<!DOCTYPE html PUBLIC "-//IETF//DTD HTML 2.0//EN"><p>`, dom.Quirks},
	}
	for _, tt := range tests {
		doc := buildDoc(t, tt.input)
		if doc.QuirksMode != tt.want {
			t.Errorf("%q: quirks = %v, want %v", tt.input, doc.QuirksMode, tt.want)
		}
	}
}

func TestIframeSrcdocNoQuirks(t *testing.T) {
	doc := buildDoc(t, "<p>x", func(b *Builder) { b.SetIframeSrcdoc(true) })
	if doc.QuirksMode != dom.NoQuirks {
		t.Error("srcdoc documents must not enter quirks mode without a doctype")
	}
}

func TestQuirksModeSkipsPCloseBeforeTable(t *testing.T) {
	// In quirks mode, <table> nests inside an open <p>.
	doc := buildDoc(t, "<p>x<table></table>")
	got := serialize.Tree(doc)
	want := dump(
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       "x"`,
		"|       <table>",
	)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	doc = buildDoc(t, "<!DOCTYPE html><p>x<table></table>")
	got = serialize.Tree(doc)
	want = dump(
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <p>",
		`|       "x"`,
		"|     <table>",
	)
	if got != want {
		t.Fatalf("standards mode: got:\n%s\nwant:\n%s", got, want)
	}
}
