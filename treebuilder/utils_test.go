package treebuilder

import (
	"testing"

	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

func strp(s string) *string { return &s }

func TestClassifyDoctype(t *testing.T) {
	tests := []struct {
		name      string
		public    *string
		system    *string
		force     bool
		srcdoc    bool
		wantErr   bool
		wantMode  dom.QuirksMode
	}{
		{"html", nil, nil, false, false, false, dom.NoQuirks},
		{"HTML", nil, nil, false, false, false, dom.NoQuirks},
		{"html", nil, strp("about:legacy-compat"), false, false, false, dom.NoQuirks},
		{"html", nil, nil, true, false, false, dom.Quirks},
		{"html", nil, nil, true, true, false, dom.NoQuirks},
		{"foo", nil, nil, false, false, true, dom.Quirks},
		{"html", strp("HTML"), nil, false, false, true, dom.Quirks},
		{"html", strp("-//IETF//DTD HTML 2.0//EN"), nil, false, false, true, dom.Quirks},
		{"html", strp("-//W3C//DTD XHTML 1.0 Transitional//EN"), nil, false, false, true, dom.LimitedQuirks},
		{"html", strp("-//W3C//DTD HTML 4.01 Transitional//EN"), nil, false, false, true, dom.Quirks},
		{"html", strp("-//W3C//DTD HTML 4.01 Transitional//EN"), strp("x"), false, false, true, dom.LimitedQuirks},
		{"html", nil, strp("http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"), false, false, true, dom.Quirks},
		{"html", strp("-//W3C//DTD HTML 4.01//EN"), strp("http://www.w3.org/TR/html4/strict.dtd"), false, false, false, dom.NoQuirks},
	}
	for _, tt := range tests {
		gotErr, gotMode := classifyDoctype(tt.name, tt.public, tt.system, tt.force, tt.srcdoc)
		if gotErr != tt.wantErr || gotMode != tt.wantMode {
			t.Errorf("classifyDoctype(%q, %v, %v, force=%v, srcdoc=%v) = (%v, %v), want (%v, %v)",
				tt.name, tt.public, tt.system, tt.force, tt.srcdoc,
				gotErr, gotMode, tt.wantErr, tt.wantMode)
		}
	}
}

func TestScopeQueries(t *testing.T) {
	tok := tokenizer.New("")
	b := New(tok)
	push := func(name string) { b.stack = append(b.stack, dom.NewElement(name)) }

	push("html")
	push("body")
	push("button")
	push("p")

	if !b.inButtonScope(tags.P) {
		t.Error("p must be in button scope")
	}
	if b.inButtonScope(tags.Body) {
		t.Error("button terminates button scope before body")
	}
	if !b.inDefaultScope(tags.Body) {
		t.Error("button does not terminate the default scope")
	}

	push("table")
	push("td")
	if !b.inTableScope(tags.Td) {
		t.Error("td must be in table scope")
	}
	if b.inTableScope(tags.P) {
		t.Error("table terminates table scope before p")
	}
	// The default scope stops at td.
	if b.inDefaultScope(tags.P) {
		t.Error("td terminates the default scope")
	}
}

func TestScopeForeignTerminators(t *testing.T) {
	tok := tokenizer.New("")
	b := New(tok)
	b.stack = append(b.stack, dom.NewElement("html"), dom.NewElement("p"))
	b.stack = append(b.stack, dom.NewElementNS("mi", dom.NamespaceMathML))

	if b.inDefaultScope(tags.P) {
		t.Error("a MathML text integration point terminates the default scope")
	}

	b.stack = b.stack[:2]
	b.stack = append(b.stack, dom.NewElementNS("circle", dom.NamespaceSVG))
	if !b.inDefaultScope(tags.P) {
		t.Error("an ordinary SVG element does not terminate the default scope")
	}
}

func TestSelectScope(t *testing.T) {
	tok := tokenizer.New("")
	b := New(tok)
	b.stack = append(b.stack,
		dom.NewElement("html"), dom.NewElement("body"),
		dom.NewElement("select"), dom.NewElement("optgroup"),
		dom.NewElement("option"))

	if !b.inSelectScope(tags.Select) {
		t.Error("select must be in select scope through optgroup/option")
	}

	b.stack = append(b.stack, dom.NewElement("div"))
	if b.inSelectScope(tags.Select) {
		t.Error("any other element terminates select scope")
	}
}

func TestGenerateImpliedEndTags(t *testing.T) {
	tok := tokenizer.New("")
	b := New(tok)
	for _, name := range []string{"html", "body", "div", "p", "li", "option"} {
		b.stack = append(b.stack, dom.NewElement(name))
	}

	b.generateImpliedEndTags(tags.Other)
	if cur := b.current(); cur == nil || !cur.Is(tags.Div) {
		t.Errorf("implied end tags should stop at div, current = %v", b.current())
	}

	b.stack = append(b.stack, dom.NewElement("p"), dom.NewElement("li"))
	b.generateImpliedEndTags(tags.P)
	if cur := b.current(); cur == nil || !cur.Is(tags.P) {
		t.Errorf("except-tag must survive, current = %v", b.current())
	}
}

func TestResetInsertionMode(t *testing.T) {
	tests := []struct {
		stack []string
		want  InsertionMode
	}{
		{[]string{"html"}, BeforeHead},
		{[]string{"html", "body"}, InBody},
		{[]string{"html", "body", "table"}, InTable},
		{[]string{"html", "body", "table", "tbody"}, InTableBody},
		{[]string{"html", "body", "table", "tbody", "tr"}, InRow},
		{[]string{"html", "body", "table", "tbody", "tr", "td"}, InCell},
		{[]string{"html", "body", "select"}, InSelect},
		{[]string{"html", "body", "table", "tbody", "tr", "td", "select"}, InSelectInTable},
		{[]string{"html", "frameset"}, InFrameset},
		{[]string{"html", "body", "div"}, InBody},
	}
	for _, tt := range tests {
		tok := tokenizer.New("")
		b := New(tok)
		for _, name := range tt.stack {
			b.stack = append(b.stack, dom.NewElement(name))
		}
		b.resetInsertionMode()
		if b.mode != tt.want {
			t.Errorf("stack %v: mode = %v, want %v", tt.stack, b.mode, tt.want)
		}
	}
}
