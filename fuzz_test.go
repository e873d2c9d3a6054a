package strain

import (
	"testing"

	"github.com/strainhtml/strain/dom"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"<!DOCTYPE html><p>hello",
		"<table><li><table><li>",
		"<b><i></b></i>",
		"<select><table><tr><td>",
		"<svg><annotation-xml encoding=text/html><p>",
		"<template><template></template>",
		"<<<>>>&&&;;;",
		"\x00\x01\x02<p>\x00",
		"<a href='&ampx&#x110000;&#xD800;'>",
		"<!--<!--<!---->",
		"<plaintext><p>",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		doc, _ := Parse(input, WithCollectErrors())
		if doc == nil {
			t.Fatal("non-strict parse must always yield a tree")
		}
		checkReachability(t, doc)
	})
}

func FuzzParseBytes(f *testing.F) {
	f.Add([]byte{0xEF, 0xBB, 0xBF, '<', 'p', '>'})
	f.Add([]byte{0xFF, 0xFE, '<', 0x00})
	f.Add([]byte("<meta charset=euc-jp>\x8f\xa1\xa1"))
	f.Add([]byte("\x80\x90\xa0<p>\xff"))
	f.Fuzz(func(t *testing.T, data []byte) {
		doc, _ := ParseBytes(data)
		if doc == nil {
			t.Fatal("ParseBytes must always yield a tree")
		}
	})
}

func FuzzParseFragment(f *testing.F) {
	contexts := []string{"div", "table", "tbody", "tr", "template", "select",
		"script", "style", "title", "textarea", "xmp", "iframe", "noembed",
		"noframes", "noscript", "plaintext", "td", "caption"}
	f.Add("<table></table><li><table></table>", 5)
	f.Add("<tr><td>x", 2)
	f.Add("</div><div>", 0)
	f.Fuzz(func(t *testing.T, input string, ctxIdx int) {
		if ctxIdx < 0 {
			ctxIdx = -ctxIdx
		}
		ctx := contexts[ctxIdx%len(contexts)]
		nodes, err := ParseFragment(input, ctx)
		if err != nil {
			return
		}
		for _, n := range nodes {
			checkReachability(t, n)
		}
	})
}

// checkReachability verifies the parent/children coherence invariant over
// the whole subtree.
func checkReachability(t *testing.T, n dom.Node) {
	t.Helper()
	for _, child := range n.Children() {
		if child.Parent() != n {
			t.Fatalf("child %T not linked back to its parent", child)
		}
		checkReachability(t, child)
	}
	if el, ok := n.(*dom.Element); ok && el.Content != nil {
		checkReachability(t, el.Content)
	}
}
