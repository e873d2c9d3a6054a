package treebuilder

import (
	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

// blockStarters are the start tags that first close an open <p> and then
// insert a plain block container.
var blockStarters = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true,
	"div": true, "dl": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "header": true, "hgroup": true,
	"main": true, "menu": true, "nav": true, "ol": true, "p": true,
	"search": true, "section": true, "summary": true, "ul": true,
}

func (b *Builder) inBodyMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		data := tok.Data
		if dropped := dropNulls(data); dropped != data {
			b.fail("unexpected-null-character")
			data = dropped
		}
		if data == "" {
			return false
		}
		b.reconstructFormatting()
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
		return b.inBodyStartTag(tok)

	case tokenizer.EndTag:
		return b.inBodyEndTag(tok)

	case tokenizer.EOF:
		if len(b.templateModes) > 0 {
			return b.inTemplateMode(tok)
		}
		for _, el := range b.stack {
			if !el.IsHTML() {
				continue
			}
			switch el.ID {
			case tags.Dd, tags.Dt, tags.Li, tags.Optgroup, tags.Option,
				tags.P, tags.Rb, tags.Rp, tags.Rt, tags.Rtc, tags.Tbody,
				tags.Td, tags.Tfoot, tags.Th, tags.Thead, tags.Tr,
				tags.Body, tags.Html:
			default:
				b.fail("expected-closing-tag-but-got-eof")
				return false
			}
		}
		return false
	}
	return false
}

func (b *Builder) inBodyStartTag(tok *tokenizer.Token) bool {
	switch tok.Name {
	case "html":
		b.fail("unexpected-start-tag")
		if b.onStack(tags.Template) {
			return false
		}
		if len(b.stack) > 0 {
			b.mergeAttrs(b.stack[0], tok.Attrs)
		}
		return false

	case "base", "basefont", "bgsound", "link", "meta", "noframes",
		"script", "style", "template", "title":
		return b.inHeadMode(tok)

	case "body":
		b.fail("unexpected-start-tag")
		if len(b.stack) < 2 || !b.stack[1].Is(tags.Body) || b.onStack(tags.Template) {
			return false
		}
		b.framesetOK = false
		b.mergeAttrs(b.stack[1], tok.Attrs)
		return false

	case "frameset":
		b.fail("unexpected-start-tag")
		if len(b.stack) < 2 || !b.stack[1].Is(tags.Body) || !b.framesetOK {
			return false
		}
		body := b.stack[1]
		if p := body.Parent(); p != nil {
			p.RemoveChild(body)
		}
		for len(b.stack) > 1 {
			b.pop()
		}
		b.insertElement("frameset", tok.Attrs)
		b.mode = InFrameset
		return false

	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.closePInButtonScope()
		if cur := b.current(); cur != nil && cur.IsHTML() && tags.Headings.Has(cur.ID) {
			b.fail("unexpected-start-tag")
			b.pop()
		}
		b.insertElement(tok.Name, tok.Attrs)
		return false

	case "pre", "listing":
		b.closePInButtonScope()
		b.insertElement(tok.Name, tok.Attrs)
		b.ignoreLF = true
		b.framesetOK = false
		return false

	case "form":
		if b.form != nil && !b.onStack(tags.Template) {
			b.fail("unexpected-start-tag")
			return false
		}
		b.closePInButtonScope()
		el := b.insertElement("form", tok.Attrs)
		if !b.onStack(tags.Template) {
			b.form = el
		}
		return false

	case "li":
		b.framesetOK = false
		for i := len(b.stack) - 1; i >= 0; i-- {
			node := b.stack[i]
			if node.Is(tags.Li) {
				b.generateImpliedEndTags(tags.Li)
				if cur := b.current(); cur != nil && !cur.Is(tags.Li) {
					b.fail("unexpected-start-tag")
				}
				b.popUntil(tags.Li)
				break
			}
			if isSpecial(node) && !node.Is(tags.Address) && !node.Is(tags.Div) && !node.Is(tags.P) {
				break
			}
		}
		b.closePInButtonScope()
		b.insertElement("li", tok.Attrs)
		return false

	case "dd", "dt":
		b.framesetOK = false
		for i := len(b.stack) - 1; i >= 0; i-- {
			node := b.stack[i]
			if node.Is(tags.Dd) || node.Is(tags.Dt) {
				b.generateImpliedEndTags(node.ID)
				if cur := b.current(); cur != node {
					b.fail("unexpected-start-tag")
				}
				b.popUntil(node.ID)
				break
			}
			if isSpecial(node) && !node.Is(tags.Address) && !node.Is(tags.Div) && !node.Is(tags.P) {
				break
			}
		}
		b.closePInButtonScope()
		b.insertElement(tok.Name, tok.Attrs)
		return false

	case "plaintext":
		b.closePInButtonScope()
		b.insertElement("plaintext", tok.Attrs)
		b.tok.SetState(tokenizer.PLAINTEXTState)
		return false

	case "button":
		if b.inDefaultScope(tags.Button) {
			b.fail("unexpected-start-tag")
			b.generateImpliedEndTags(tags.Other)
			b.popUntil(tags.Button)
		}
		b.reconstructFormatting()
		b.insertElement("button", tok.Attrs)
		b.framesetOK = false
		return false

	case "a":
		if b.afeIndexOf("a") >= 0 {
			b.fail("unexpected-start-tag")
			b.adoptionAgency("a")
			b.removeAFEByName("a")
			for i := len(b.stack) - 1; i >= 0; i-- {
				if b.stack[i].Is(tags.A) {
					b.stack = append(b.stack[:i], b.stack[i+1:]...)
					break
				}
			}
		}
		b.reconstructFormatting()
		el := b.insertElement("a", tok.Attrs)
		b.pushFormatting("a", tok.Attrs, el)
		return false

	case "b", "big", "code", "em", "font", "i", "s", "small", "strike",
		"strong", "tt", "u":
		b.reconstructFormatting()
		el := b.insertElement(tok.Name, tok.Attrs)
		b.pushFormatting(tok.Name, tok.Attrs, el)
		return false

	case "nobr":
		b.reconstructFormatting()
		if b.inDefaultScope(tags.Nobr) {
			b.fail("unexpected-start-tag")
			b.adoptionAgency("nobr")
			b.reconstructFormatting()
		}
		el := b.insertElement("nobr", tok.Attrs)
		b.pushFormatting("nobr", tok.Attrs, el)
		return false

	case "applet", "marquee", "object":
		b.reconstructFormatting()
		b.insertElement(tok.Name, tok.Attrs)
		b.pushMarker()
		b.framesetOK = false
		return false

	case "table":
		if b.doc.QuirksMode != dom.Quirks {
			b.closePInButtonScope()
		}
		b.insertElement("table", tok.Attrs)
		b.framesetOK = false
		b.mode = InTable
		return false

	case "area", "br", "embed", "img", "keygen", "wbr":
		b.reconstructFormatting()
		b.insertVoid(tok.Name, tok.Attrs)
		b.framesetOK = false
		return false

	case "input":
		b.reconstructFormatting()
		b.insertVoid("input", tok.Attrs)
		if !isHiddenInputType(tok.Attrs) {
			b.framesetOK = false
		}
		return false

	case "param", "source", "track":
		b.insertVoid(tok.Name, tok.Attrs)
		return false

	case "hr":
		b.closePInButtonScope()
		b.insertVoid("hr", tok.Attrs)
		b.framesetOK = false
		return false

	case "image":
		b.fail("unexpected-start-tag")
		tok.Name = "img"
		return b.inBodyStartTag(tok)

	case "textarea":
		b.insertElement("textarea", tok.Attrs)
		b.ignoreLF = true
		b.framesetOK = false
		b.originalMode = b.mode
		b.mode = Text
		b.tok.SetLastStartTag("textarea")
		b.tok.SetState(tokenizer.RCDATAState)
		return false

	case "xmp":
		b.closePInButtonScope()
		b.reconstructFormatting()
		b.framesetOK = false
		b.genericRawText(tok, tokenizer.RAWTEXTState)
		return false

	case "iframe":
		b.framesetOK = false
		b.genericRawText(tok, tokenizer.RAWTEXTState)
		return false

	case "noembed":
		b.genericRawText(tok, tokenizer.RAWTEXTState)
		return false

	case "noscript":
		if b.scripting {
			b.genericRawText(tok, tokenizer.RAWTEXTState)
			return false
		}
		b.reconstructFormatting()
		b.insertElement(tok.Name, tok.Attrs)
		return false

	case "select":
		b.reconstructFormatting()
		b.insertElement("select", tok.Attrs)
		b.framesetOK = false
		switch b.mode {
		case InTable, InCaption, InTableBody, InRow, InCell:
			b.mode = InSelectInTable
		default:
			b.mode = InSelect
		}
		return false

	case "optgroup", "option":
		if cur := b.current(); cur != nil && cur.Is(tags.Option) {
			b.pop()
		}
		b.reconstructFormatting()
		b.insertElement(tok.Name, tok.Attrs)
		return false

	case "rb", "rtc":
		if b.inDefaultScope(tags.Ruby) {
			b.generateImpliedEndTags(tags.Other)
			if cur := b.current(); cur != nil && !cur.Is(tags.Ruby) {
				b.fail("unexpected-start-tag")
			}
		}
		b.insertElement(tok.Name, tok.Attrs)
		return false

	case "rp", "rt":
		if b.inDefaultScope(tags.Ruby) {
			b.generateImpliedEndTags(tags.Rtc)
			if cur := b.current(); cur != nil && !cur.Is(tags.Ruby) && !cur.Is(tags.Rtc) {
				b.fail("unexpected-start-tag")
			}
		}
		b.insertElement(tok.Name, tok.Attrs)
		return false

	case "math":
		b.reconstructFormatting()
		b.insertForeignElement("math", dom.NamespaceMathML, tok.Attrs, tok.SelfClosing)
		return false

	case "svg":
		b.reconstructFormatting()
		b.insertForeignElement("svg", dom.NamespaceSVG, tok.Attrs, tok.SelfClosing)
		return false

	case "caption", "col", "colgroup", "frame", "head", "tbody", "td",
		"tfoot", "th", "thead", "tr":
		b.fail("unexpected-start-tag")
		return false
	}

	if blockStarters[tok.Name] {
		b.closePInButtonScope()
		b.insertElement(tok.Name, tok.Attrs)
		return false
	}

	// Any other start tag.
	b.reconstructFormatting()
	el := b.insertElement(tok.Name, tok.Attrs)
	if tok.SelfClosing {
		b.fail("non-void-html-element-start-tag-with-trailing-solidus")
	}
	_ = el
	return false
}

func (b *Builder) inBodyEndTag(tok *tokenizer.Token) bool {
	switch tok.Name {
	case "body":
		if !b.inDefaultScope(tags.Body) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.checkBodyEndLeftovers()
		b.mode = AfterBody
		return false

	case "html":
		if !b.inDefaultScope(tags.Body) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.checkBodyEndLeftovers()
		b.mode = AfterBody
		return true

	case "template":
		return b.inHeadMode(tok)

	case "form":
		if !b.onStack(tags.Template) {
			node := b.form
			b.form = nil
			if node == nil || !b.elementInScope(node, tags.ScopeDefault) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.generateImpliedEndTags(tags.Other)
			if b.current() != node {
				b.fail("unexpected-end-tag")
			}
			b.removeFromStack(node)
			return false
		}
		if !b.inDefaultScope(tags.Form) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.generateImpliedEndTags(tags.Other)
		if cur := b.current(); cur != nil && !cur.Is(tags.Form) {
			b.fail("unexpected-end-tag")
		}
		b.popUntil(tags.Form)
		return false

	case "p":
		if !b.inButtonScope(tags.P) {
			b.fail("unexpected-end-tag")
			b.insertElement("p", nil)
		}
		b.closeP()
		return false

	case "li":
		if !b.inListItemScope(tags.Li) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.generateImpliedEndTags(tags.Li)
		if cur := b.current(); cur != nil && !cur.Is(tags.Li) {
			b.fail("unexpected-end-tag")
		}
		b.popUntil(tags.Li)
		return false

	case "dd", "dt":
		id := tags.Lookup(tok.Name)
		if !b.inDefaultScope(id) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.generateImpliedEndTags(id)
		if cur := b.current(); cur != nil && cur.ID != id {
			b.fail("unexpected-end-tag")
		}
		b.popUntil(id)
		return false

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !b.anyInScope(tags.Headings, tags.ScopeDefault) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.generateImpliedEndTags(tags.Other)
		if cur := b.current(); cur != nil && cur.TagName != tok.Name {
			b.fail("unexpected-end-tag")
		}
		b.popUntilAny(tags.Headings)
		return false

	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		if !b.adoptionAgency(tok.Name) {
			b.anyOtherEndTag(tok.Name)
		}
		return false

	case "applet", "marquee", "object":
		id := tags.Lookup(tok.Name)
		if !b.inDefaultScope(id) {
			b.fail("unexpected-end-tag")
			return false
		}
		b.generateImpliedEndTags(tags.Other)
		if cur := b.current(); cur != nil && cur.ID != id {
			b.fail("unexpected-end-tag")
		}
		b.popUntil(id)
		b.clearToMarker()
		return false

	case "br":
		b.fail("unexpected-end-tag")
		b.reconstructFormatting()
		b.insertVoid("br", nil)
		b.framesetOK = false
		return false
	}

	b.anyOtherEndTag(tok.Name)
	return false
}

// closePInButtonScope closes an open <p> if one is in button scope.
func (b *Builder) closePInButtonScope() {
	if b.inButtonScope(tags.P) {
		b.closeP()
	}
}

// closeP runs the "close a p element" steps.
func (b *Builder) closeP() {
	b.generateImpliedEndTags(tags.P)
	if cur := b.current(); cur != nil && !cur.Is(tags.P) {
		b.fail("unexpected-end-tag")
	}
	b.popUntil(tags.P)
}

// checkBodyEndLeftovers reports elements still open when </body> or
// </html> arrives.
var bodyEndAllowed = tags.NewSet(tags.Dd, tags.Dt, tags.Li, tags.Optgroup,
	tags.Option, tags.P, tags.Rb, tags.Rp, tags.Rt, tags.Rtc, tags.Tbody,
	tags.Td, tags.Tfoot, tags.Th, tags.Thead, tags.Tr, tags.Body, tags.Html)

func (b *Builder) checkBodyEndLeftovers() {
	for _, el := range b.stack {
		if el.IsHTML() && !bodyEndAllowed.Has(el.ID) {
			b.fail("expected-closing-tag-but-got-end-tag")
			return
		}
	}
}
