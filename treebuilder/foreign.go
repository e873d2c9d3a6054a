package treebuilder

import (
	"strings"

	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

// useForeignRules decides whether a token routes through the foreign
// content rules, based on the adjusted current node.
func (b *Builder) useForeignRules(tok *tokenizer.Token) bool {
	acn := b.adjustedCurrentNode()
	if acn == nil || acn.IsHTML() {
		return false
	}
	if tok.Kind == tokenizer.EOF {
		return false
	}

	if b.isMathMLTextIP(acn) {
		if tok.Kind == tokenizer.Character {
			return false
		}
		if tok.Kind == tokenizer.StartTag &&
			tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
	}
	if acn.Namespace == dom.NamespaceMathML &&
		strings.EqualFold(acn.TagName, "annotation-xml") &&
		tok.Kind == tokenizer.StartTag && tok.Name == "svg" {
		return false
	}
	if b.isHTMLIntegrationPoint(acn) {
		if tok.Kind == tokenizer.Character || tok.Kind == tokenizer.StartTag {
			return false
		}
	}
	return true
}

// processForeign handles a token under the foreign content rules and
// reports whether it must be reprocessed under normal rules.
func (b *Builder) processForeign(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if tok.Data == "" {
			return false
		}
		data := tok.Data
		if strings.ContainsRune(data, 0) {
			b.fail("unexpected-null-character")
			data = strings.ReplaceAll(data, "\x00", "�")
		}
		if !isAllWhitespace(data) {
			b.framesetOK = false
		}
		b.insertText(data)
		return false

	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false

	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false

	case tokenizer.StartTag:
		if tags.ForeignBreakout[tok.Name] ||
			(tok.Name == "font" && fontBreaksOut(tok.Attrs)) {
			b.fail("unexpected-start-tag")
			b.popToHTMLOrIntegrationPoint()
			b.resetInsertionMode()
			b.htmlRules = true
			return true
		}

		acn := b.adjustedCurrentNode()
		namespace := dom.NamespaceHTML
		if acn != nil {
			namespace = acn.Namespace
		}
		name := tok.Name
		if namespace == dom.NamespaceSVG {
			if adjusted, ok := tags.SVGTagAdjustments[name]; ok {
				name = adjusted
			}
		}
		b.insertForeignElement(name, namespace, tok.Attrs, tok.SelfClosing)
		return false

	case tokenizer.EndTag:
		if tok.Name == "br" || tok.Name == "p" {
			b.fail("unexpected-end-tag")
			b.popToHTMLOrIntegrationPoint()
			b.resetInsertionMode()
			b.htmlRules = true
			return true
		}

		// Look for a matching element, ASCII case-insensitively. A
		// non-matching HTML element hands the token back to the
		// normal rules.
		for i := len(b.stack) - 1; i >= 0; i-- {
			node := b.stack[i]
			if strings.EqualFold(node.TagName, tok.Name) {
				if node.IsHTML() {
					b.htmlRules = true
					return true
				}
				b.stack = b.stack[:i]
				return false
			}
			if node.IsHTML() {
				b.htmlRules = true
				return true
			}
		}
		return false
	}
	return false
}

func (b *Builder) popToHTMLOrIntegrationPoint() {
	for len(b.stack) > 0 {
		node := b.current()
		if node.IsHTML() || b.isHTMLIntegrationPoint(node) || b.isMathMLTextIP(node) {
			return
		}
		b.pop()
	}
}

func (b *Builder) isHTMLIntegrationPoint(el *dom.Element) bool {
	if el == nil {
		return false
	}
	switch el.Namespace {
	case dom.NamespaceMathML:
		if el.TagName != "annotation-xml" {
			return false
		}
		enc, ok := el.Attrs.Get("encoding")
		if !ok {
			return false
		}
		switch strings.ToLower(enc) {
		case "text/html", "application/xhtml+xml":
			return true
		}
		return false
	case dom.NamespaceSVG:
		return tags.SVGHTMLIntegration[el.TagName]
	}
	return false
}

func (b *Builder) isMathMLTextIP(el *dom.Element) bool {
	return el != nil && el.Namespace == dom.NamespaceMathML &&
		tags.MathMLTextIntegration[el.TagName]
}

func fontBreaksOut(attrs []tokenizer.Attr) bool {
	for _, a := range attrs {
		switch strings.ToLower(a.Name) {
		case "color", "face", "size":
			return true
		}
	}
	return false
}

// adjustForeignAttrs applies the MathML/SVG case fixups and the xlink/xml/
// xmlns namespace adjustments to a foreign start tag's attributes.
func adjustForeignAttrs(namespace string, attrs []tokenizer.Attr) []dom.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := a.Name
		lower := strings.ToLower(name)

		switch namespace {
		case dom.NamespaceMathML:
			if adj, ok := tags.MathMLAttrAdjustments[lower]; ok {
				name = adj
				lower = strings.ToLower(adj)
			}
		case dom.NamespaceSVG:
			if adj, ok := tags.SVGAttrAdjustments[lower]; ok {
				name = adj
				lower = strings.ToLower(adj)
			}
		}

		if ns, ok := tags.ForeignAttrAdjustments[lower]; ok {
			full := ns.Local
			if ns.Prefix != "" {
				full = ns.Prefix + ":" + ns.Local
			}
			out = append(out, dom.Attribute{Namespace: ns.Namespace, Name: full, Value: a.Value})
			continue
		}
		out = append(out, dom.Attribute{Name: name, Value: a.Value})
	}
	return out
}

// insertForeignElement inserts an element in the given namespace with
// adjusted attributes; a self-closing tag is acknowledged and not pushed.
func (b *Builder) insertForeignElement(name, namespace string, attrs []tokenizer.Attr, selfClosing bool) *dom.Element {
	el := dom.NewElementNS(name, namespace)
	for _, a := range adjustForeignAttrs(namespace, attrs) {
		if !el.Attrs.HasNS(a.Namespace, a.Name) {
			el.Attrs.SetNS(a.Namespace, a.Name, a.Value)
		}
	}
	b.insertNode(el, nil)
	if !selfClosing {
		b.stack = append(b.stack, el)
	}
	return el
}
