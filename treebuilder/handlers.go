package treebuilder

import (
	"strings"

	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

// Handlers for the document-level insertion modes. Each returns true when
// the token must be reprocessed under the (possibly changed) mode.

func (b *Builder) initialMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		if !b.iframeSrcdoc {
			b.fail("expected-doctype-but-got-character")
		}
		b.setMissingDoctypeQuirks()
		b.mode = BeforeHTML
		return true
	case tokenizer.Comment:
		b.doc.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.Doctype:
		isErr, quirks := classifyDoctype(tok.Name, tok.PublicID, tok.SystemID, tok.ForceQuirks, b.iframeSrcdoc)
		if isErr {
			b.fail("unknown-doctype")
		}
		b.doc.Doctype = dom.NewDocumentType(tok.Name, strPtr(tok.PublicID), strPtr(tok.SystemID))
		b.doc.QuirksMode = quirks
		b.mode = BeforeHTML
		return false
	case tokenizer.StartTag:
		if !b.iframeSrcdoc {
			b.fail("expected-doctype-but-got-start-tag")
		}
		b.setMissingDoctypeQuirks()
		b.mode = BeforeHTML
		return true
	case tokenizer.EndTag:
		if !b.iframeSrcdoc {
			b.fail("expected-doctype-but-got-end-tag")
		}
		b.setMissingDoctypeQuirks()
		b.mode = BeforeHTML
		return true
	default:
		if !b.iframeSrcdoc {
			b.fail("expected-doctype-but-got-eof")
		}
		b.setMissingDoctypeQuirks()
		b.mode = BeforeHTML
		return true
	}
}

func (b *Builder) setMissingDoctypeQuirks() {
	if !b.iframeSrcdoc {
		b.doc.QuirksMode = dom.Quirks
	}
}

func (b *Builder) beforeHTMLMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.Comment:
		b.doc.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		_, rest := splitLeadingWhitespace(tok.Data)
		tok.Data = rest
	case tokenizer.StartTag:
		if tok.Name == "html" {
			b.insertElement("html", tok.Attrs)
			b.mode = BeforeHead
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
			// Fall through to implicit root creation.
		default:
			b.fail("unexpected-end-tag")
			return false
		}
	}

	b.insertElement("html", nil)
	b.mode = BeforeHead
	return true
}

func (b *Builder) beforeHeadMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		_, rest := splitLeadingWhitespace(tok.Data)
		tok.Data = rest
	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "head":
			b.head = b.insertElement("head", tok.Attrs)
			b.mode = InHead
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			b.fail("unexpected-end-tag")
			return false
		}
	}

	b.head = b.insertElement("head", nil)
	b.mode = InHead
	return true
}

func (b *Builder) inHeadMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		if ws != "" {
			b.insertText(ws)
		}
		if rest == "" {
			return false
		}
		tok.Data = rest
	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "base", "basefont", "bgsound", "link", "meta":
			b.insertVoid(tok.Name, tok.Attrs)
			return false
		case "title":
			b.genericRawText(tok, tokenizer.RCDATAState)
			return false
		case "noscript":
			if b.scripting {
				b.genericRawText(tok, tokenizer.RAWTEXTState)
				return false
			}
			b.insertElement(tok.Name, tok.Attrs)
			b.mode = InHeadNoscript
			return false
		case "noframes", "style":
			b.genericRawText(tok, tokenizer.RAWTEXTState)
			return false
		case "script":
			b.genericRawText(tok, tokenizer.ScriptDataState)
			return false
		case "template":
			b.insertElement("template", tok.Attrs)
			b.pushMarker()
			b.framesetOK = false
			b.mode = InTemplate
			b.templateModes = append(b.templateModes, InTemplate)
			return false
		case "head":
			b.fail("unexpected-start-tag")
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head":
			b.pop()
			b.mode = AfterHead
			return false
		case "template":
			b.closeTemplate()
			return false
		case "body", "html", "br":
		default:
			b.fail("unexpected-end-tag")
			return false
		}
	}

	b.pop() // head
	b.mode = AfterHead
	return true
}

// closeTemplate implements the </template> steps shared by several modes.
func (b *Builder) closeTemplate() {
	if !b.onStack(tags.Template) {
		b.fail("unexpected-end-tag")
		return
	}
	b.generateImpliedEndTagsThoroughly()
	if cur := b.current(); cur == nil || !cur.Is(tags.Template) {
		b.fail("unexpected-end-tag")
	}
	b.popUntil(tags.Template)
	b.clearToMarker()
	if len(b.templateModes) > 0 {
		b.templateModes = b.templateModes[:len(b.templateModes)-1]
	}
	b.resetInsertionMode()
}

func (b *Builder) inHeadNoscriptMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return b.inHeadMode(tok)
		}
	case tokenizer.Comment:
		return b.inHeadMode(tok)
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return b.inHeadMode(tok)
		case "head", "noscript":
			b.fail("unexpected-start-tag")
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "noscript":
			b.pop()
			b.mode = InHead
			return false
		case "br":
		default:
			b.fail("unexpected-end-tag")
			return false
		}
	}

	b.fail("unexpected-token-in-head-noscript")
	b.pop() // noscript
	b.mode = InHead
	return true
}

func (b *Builder) afterHeadMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		if ws != "" {
			b.insertText(ws)
		}
		if rest == "" {
			return false
		}
		tok.Data = rest
	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "body":
			b.insertElement("body", tok.Attrs)
			b.framesetOK = false
			b.mode = InBody
			return false
		case "frameset":
			b.insertElement("frameset", tok.Attrs)
			b.mode = InFrameset
			return false
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			// Reopen head for the stray head-only element.
			b.fail("unexpected-start-tag")
			if b.head == nil {
				return false
			}
			b.stack = append(b.stack, b.head)
			again := b.inHeadMode(tok)
			b.removeFromStack(b.head)
			return again
		case "head":
			b.fail("unexpected-start-tag")
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "template":
			return b.inHeadMode(tok)
		case "body", "html", "br":
		default:
			b.fail("unexpected-end-tag")
			return false
		}
	}

	b.insertElement("body", nil)
	b.mode = InBody
	return true
}

func (b *Builder) textMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		b.insertText(tok.Data)
		return false
	case tokenizer.EndTag:
		b.pop()
		b.mode = b.originalMode
		b.tok.SetState(tokenizer.DataState)
		return false
	default:
		// EOF inside raw text.
		b.fail("expected-closing-tag-but-got-eof")
		b.pop()
		b.mode = b.originalMode
		b.tok.SetState(tokenizer.DataState)
		return true
	}
}

func (b *Builder) afterBodyMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return b.inBodyMode(tok)
		}
	case tokenizer.Comment:
		// Comments here attach to the <html> element.
		if len(b.stack) > 0 {
			b.stack[0].AppendChild(dom.NewComment(tok.Data))
		} else {
			b.doc.AppendChild(dom.NewComment(tok.Data))
		}
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		if tok.Name == "html" {
			return b.inBodyMode(tok)
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			if b.fragment != nil {
				b.fail("unexpected-end-tag")
				return false
			}
			b.mode = AfterAfterBody
			return false
		}
	case tokenizer.EOF:
		return false
	}

	b.fail("unexpected-token-after-body")
	b.mode = InBody
	return true
}

func (b *Builder) inFramesetMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if ws := keepWhitespace(tok.Data); ws != "" {
			b.insertText(ws)
		}
		return false
	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "frameset":
			b.insertElement("frameset", tok.Attrs)
			return false
		case "frame":
			b.insertVoid("frame", tok.Attrs)
			return false
		case "noframes":
			return b.inHeadMode(tok)
		}
	case tokenizer.EndTag:
		if tok.Name == "frameset" {
			if cur := b.current(); cur != nil && cur.Is(tags.Html) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.pop()
			if b.fragment == nil {
				if cur := b.current(); cur != nil && !cur.Is(tags.Frameset) {
					b.mode = AfterFrameset
				}
			}
			return false
		}
	case tokenizer.EOF:
		if cur := b.current(); cur != nil && !cur.Is(tags.Html) {
			b.fail("eof-in-frameset")
		}
		return false
	}
	b.fail("unexpected-token-in-frameset")
	return false
}

func (b *Builder) afterFramesetMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if ws := keepWhitespace(tok.Data); ws != "" {
			b.insertText(ws)
		}
		return false
	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "noframes":
			return b.inHeadMode(tok)
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			b.mode = AfterAfterFrameset
			return false
		}
	case tokenizer.EOF:
		return false
	}
	b.fail("unexpected-token-after-frameset")
	return false
}

func (b *Builder) afterAfterBodyMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Comment:
		b.doc.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.Doctype:
		return b.inBodyMode(tok)
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return b.inBodyMode(tok)
		}
	case tokenizer.StartTag:
		if tok.Name == "html" {
			return b.inBodyMode(tok)
		}
	case tokenizer.EOF:
		return false
	}
	b.fail("unexpected-token-after-body")
	b.mode = InBody
	return true
}

func (b *Builder) afterAfterFramesetMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Comment:
		b.doc.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.Doctype:
		return b.inBodyMode(tok)
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return b.inBodyMode(tok)
		}
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "noframes":
			return b.inHeadMode(tok)
		}
	case tokenizer.EOF:
		return false
	}
	b.fail("unexpected-token-after-frameset")
	return false
}

func keepWhitespace(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
