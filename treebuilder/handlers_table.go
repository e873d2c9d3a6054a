package treebuilder

import (
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

func (b *Builder) inTableMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		if cur := b.current(); cur != nil && cur.IsHTML() &&
			(cur.ID == tags.Table || cur.ID == tags.Template || cur.ID == tags.Tr ||
				tags.TableSectionRows.Has(cur.ID)) {
			b.pendingTableText = b.pendingTableText[:0]
			b.originalMode = b.mode
			b.mode = InTableText
			return true
		}
	case tokenizer.Comment:
		b.insertComment(tok.Data)
		return false
	case tokenizer.Doctype:
		b.fail("unexpected-doctype")
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption":
			b.clearStackBackTo(tags.ClearToTableContext)
			b.pushMarker()
			b.insertElement("caption", tok.Attrs)
			b.mode = InCaption
			return false
		case "colgroup":
			b.clearStackBackTo(tags.ClearToTableContext)
			b.insertElement("colgroup", tok.Attrs)
			b.mode = InColumnGroup
			return false
		case "col":
			b.clearStackBackTo(tags.ClearToTableContext)
			b.insertElement("colgroup", nil)
			b.mode = InColumnGroup
			return true
		case "tbody", "tfoot", "thead":
			b.clearStackBackTo(tags.ClearToTableContext)
			b.insertElement(tok.Name, tok.Attrs)
			b.mode = InTableBody
			return false
		case "td", "th", "tr":
			b.clearStackBackTo(tags.ClearToTableContext)
			b.insertElement("tbody", nil)
			b.mode = InTableBody
			return true
		case "table":
			b.fail("unexpected-start-tag")
			if !b.inTableScope(tags.Table) {
				return false
			}
			b.popUntil(tags.Table)
			b.resetInsertionMode()
			return true
		case "style", "script", "template":
			return b.inHeadMode(tok)
		case "input":
			if !isHiddenInputType(tok.Attrs) {
				break // foster-parented like any other token
			}
			b.fail("unexpected-start-tag")
			b.insertVoid("input", tok.Attrs)
			return false
		case "form":
			b.fail("unexpected-start-tag")
			if b.onStack(tags.Template) || b.form != nil {
				return false
			}
			b.form = b.insertVoid("form", tok.Attrs)
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "table":
			if !b.inTableScope(tags.Table) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.popUntil(tags.Table)
			b.resetInsertionMode()
			return false
		case "template":
			return b.inHeadMode(tok)
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			b.fail("unexpected-end-tag")
			return false
		}
	case tokenizer.EOF:
		return b.inBodyMode(tok)
	}

	// Anything else: process under InBody with foster parenting.
	b.fail("unexpected-token-in-table")
	return b.withFosterParenting(tok)
}

// withFosterParenting routes one token through the InBody rules with the
// foster-parenting flag raised.
func (b *Builder) withFosterParenting(tok *tokenizer.Token) bool {
	prev := b.fosterParenting
	b.fosterParenting = true
	again := b.inBodyMode(tok)
	b.fosterParenting = prev
	return again
}

func (b *Builder) inTableTextMode(tok *tokenizer.Token) bool {
	if tok.Kind == tokenizer.Character {
		data := tok.Data
		if dropped := dropNulls(data); dropped != data {
			b.fail("unexpected-null-character")
			data = dropped
		}
		if data != "" {
			b.pendingTableText = append(b.pendingTableText, data)
		}
		return false
	}

	// Flush: whitespace-only runs insert normally; anything else is
	// foster-parented through the InBody character rules.
	pending := b.pendingTableText
	b.pendingTableText = nil
	allWS := true
	for _, s := range pending {
		if !isAllWhitespace(s) {
			allWS = false
			break
		}
	}
	if allWS {
		for _, s := range pending {
			b.insertText(s)
		}
	} else {
		b.fail("non-space-character-in-table-text")
		for _, s := range pending {
			b.withFosterParenting(&tokenizer.Token{Kind: tokenizer.Character, Data: s})
		}
	}
	b.mode = b.originalMode
	return true
}

func (b *Builder) inCaptionMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			b.fail("unexpected-start-tag")
			if !b.closeCaption() {
				return false
			}
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "caption":
			if !b.closeCaption() {
				b.fail("unexpected-end-tag")
			}
			return false
		case "table":
			b.fail("unexpected-end-tag")
			if !b.closeCaption() {
				return false
			}
			return true
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot",
			"th", "thead", "tr":
			b.fail("unexpected-end-tag")
			return false
		}
	}
	return b.inBodyMode(tok)
}

func (b *Builder) closeCaption() bool {
	if !b.inTableScope(tags.Caption) {
		return false
	}
	b.generateImpliedEndTags(tags.Other)
	if cur := b.current(); cur != nil && !cur.Is(tags.Caption) {
		b.fail("unexpected-end-tag")
	}
	b.popUntil(tags.Caption)
	b.clearToMarker()
	b.mode = InTable
	return true
}

func (b *Builder) inColumnGroupMode(tok *tokenizer.Token) bool {
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
		case "col":
			b.insertVoid("col", tok.Attrs)
			return false
		case "template":
			return b.inHeadMode(tok)
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "colgroup":
			if cur := b.current(); cur == nil || !cur.Is(tags.Colgroup) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.pop()
			b.mode = InTable
			return false
		case "col":
			b.fail("unexpected-end-tag")
			return false
		case "template":
			return b.inHeadMode(tok)
		}
	case tokenizer.EOF:
		return b.inBodyMode(tok)
	}

	if cur := b.current(); cur == nil || !cur.Is(tags.Colgroup) {
		b.fail("unexpected-token-in-column-group")
		return false
	}
	b.pop()
	b.mode = InTable
	return true
}

func (b *Builder) inTableBodyMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.StartTag:
		switch tok.Name {
		case "tr":
			b.clearStackBackTo(tags.ClearToTableBodyContext)
			b.insertElement("tr", tok.Attrs)
			b.mode = InRow
			return false
		case "th", "td":
			b.fail("unexpected-start-tag")
			b.clearStackBackTo(tags.ClearToTableBodyContext)
			b.insertElement("tr", nil)
			b.mode = InRow
			return true
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !b.anyInTableScope(tags.TableSectionRows) {
				b.fail("unexpected-start-tag")
				return false
			}
			b.clearStackBackTo(tags.ClearToTableBodyContext)
			b.pop()
			b.mode = InTable
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tbody", "tfoot", "thead":
			id := tags.Lookup(tok.Name)
			if !b.inTableScope(id) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.clearStackBackTo(tags.ClearToTableBodyContext)
			b.pop()
			b.mode = InTable
			return false
		case "table":
			if !b.anyInTableScope(tags.TableSectionRows) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.clearStackBackTo(tags.ClearToTableBodyContext)
			b.pop()
			b.mode = InTable
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			b.fail("unexpected-end-tag")
			return false
		}
	}
	return b.inTableMode(tok)
}

func (b *Builder) inRowMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.StartTag:
		switch tok.Name {
		case "th", "td":
			b.clearStackBackTo(tags.ClearToTableRowContext)
			b.insertElement(tok.Name, tok.Attrs)
			b.mode = InCell
			b.pushMarker()
			return false
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !b.inTableScope(tags.Tr) {
				b.fail("unexpected-start-tag")
				return false
			}
			b.clearStackBackTo(tags.ClearToTableRowContext)
			b.pop()
			b.mode = InTableBody
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tr":
			if !b.inTableScope(tags.Tr) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.clearStackBackTo(tags.ClearToTableRowContext)
			b.pop()
			b.mode = InTableBody
			return false
		case "table":
			if !b.inTableScope(tags.Tr) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.clearStackBackTo(tags.ClearToTableRowContext)
			b.pop()
			b.mode = InTableBody
			return true
		case "tbody", "tfoot", "thead":
			id := tags.Lookup(tok.Name)
			if !b.inTableScope(id) {
				b.fail("unexpected-end-tag")
				return false
			}
			if !b.inTableScope(tags.Tr) {
				return false
			}
			b.clearStackBackTo(tags.ClearToTableRowContext)
			b.pop()
			b.mode = InTableBody
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			b.fail("unexpected-end-tag")
			return false
		}
	}
	return b.inTableMode(tok)
}

func (b *Builder) inCellMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			if !b.anyInTableScope(tags.TableCells) {
				b.fail("unexpected-start-tag")
				return false
			}
			b.closeCell()
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "td", "th":
			id := tags.Lookup(tok.Name)
			if !b.inTableScope(id) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.generateImpliedEndTags(tags.Other)
			if cur := b.current(); cur != nil && cur.ID != id {
				b.fail("unexpected-end-tag")
			}
			b.popUntil(id)
			b.clearToMarker()
			b.mode = InRow
			return false
		case "body", "caption", "col", "colgroup", "html":
			b.fail("unexpected-end-tag")
			return false
		case "table", "tbody", "tfoot", "thead", "tr":
			id := tags.Lookup(tok.Name)
			if !b.inTableScope(id) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.closeCell()
			return true
		}
	}
	return b.inBodyMode(tok)
}

func (b *Builder) closeCell() {
	b.generateImpliedEndTags(tags.Other)
	if cur := b.current(); cur != nil && !tags.TableCells.Has(cur.ID) {
		b.fail("unexpected-end-tag")
	}
	b.popUntilAny(tags.TableCells)
	b.clearToMarker()
	b.mode = InRow
}

func (b *Builder) inSelectMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character:
		data := tok.Data
		if dropped := dropNulls(data); dropped != data {
			b.fail("unexpected-null-character")
			data = dropped
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
		switch tok.Name {
		case "html":
			return b.inBodyMode(tok)
		case "option":
			if cur := b.current(); cur != nil && cur.Is(tags.Option) {
				b.pop()
			}
			b.insertElement("option", tok.Attrs)
			return false
		case "optgroup":
			if cur := b.current(); cur != nil && cur.Is(tags.Option) {
				b.pop()
			}
			if cur := b.current(); cur != nil && cur.Is(tags.Optgroup) {
				b.pop()
			}
			b.insertElement("optgroup", tok.Attrs)
			return false
		case "hr":
			if cur := b.current(); cur != nil && cur.Is(tags.Option) {
				b.pop()
			}
			if cur := b.current(); cur != nil && cur.Is(tags.Optgroup) {
				b.pop()
			}
			b.insertVoid("hr", tok.Attrs)
			return false
		case "select":
			b.fail("unexpected-start-tag")
			if !b.inSelectScope(tags.Select) {
				return false
			}
			b.popUntil(tags.Select)
			b.resetInsertionMode()
			return false
		case "input", "keygen", "textarea":
			b.fail("unexpected-start-tag")
			if !b.inSelectScope(tags.Select) {
				return false
			}
			b.popUntil(tags.Select)
			b.resetInsertionMode()
			return true
		case "script", "template":
			return b.inHeadMode(tok)
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "optgroup":
			if cur := b.current(); cur != nil && cur.Is(tags.Option) && len(b.stack) >= 2 &&
				b.stack[len(b.stack)-2].Is(tags.Optgroup) {
				b.pop()
			}
			if cur := b.current(); cur != nil && cur.Is(tags.Optgroup) {
				b.pop()
			} else {
				b.fail("unexpected-end-tag")
			}
			return false
		case "option":
			if cur := b.current(); cur != nil && cur.Is(tags.Option) {
				b.pop()
			} else {
				b.fail("unexpected-end-tag")
			}
			return false
		case "select":
			if !b.inSelectScope(tags.Select) {
				b.fail("unexpected-end-tag")
				return false
			}
			b.popUntil(tags.Select)
			b.resetInsertionMode()
			return false
		case "template":
			return b.inHeadMode(tok)
		}
	case tokenizer.EOF:
		return b.inBodyMode(tok)
	}
	b.fail("unexpected-token-in-select")
	return false
}

func (b *Builder) inSelectInTableMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.fail("unexpected-start-tag")
			// A select fragment has no select on the stack; popping
			// and reprocessing would loop forever, so the token is
			// dropped instead.
			if !b.inSelectScope(tags.Select) {
				return false
			}
			b.popUntil(tags.Select)
			b.resetInsertionMode()
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.fail("unexpected-end-tag")
			if !b.inTableScope(tags.Lookup(tok.Name)) {
				return false
			}
			if !b.inSelectScope(tags.Select) {
				return false
			}
			b.popUntil(tags.Select)
			b.resetInsertionMode()
			return true
		}
	}
	return b.inSelectMode(tok)
}

func (b *Builder) inTemplateMode(tok *tokenizer.Token) bool {
	switch tok.Kind {
	case tokenizer.Character, tokenizer.Comment, tokenizer.Doctype:
		return b.inBodyMode(tok)
	case tokenizer.StartTag:
		switch tok.Name {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			return b.inHeadMode(tok)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			b.switchTemplateMode(InTable)
			return true
		case "col":
			b.switchTemplateMode(InColumnGroup)
			return true
		case "tr":
			b.switchTemplateMode(InTableBody)
			return true
		case "td", "th":
			b.switchTemplateMode(InRow)
			return true
		}
		b.switchTemplateMode(InBody)
		return true
	case tokenizer.EndTag:
		if tok.Name == "template" {
			return b.inHeadMode(tok)
		}
		b.fail("unexpected-end-tag")
		return false
	case tokenizer.EOF:
		if !b.onStack(tags.Template) {
			return false
		}
		b.fail("eof-in-template")
		b.popUntil(tags.Template)
		b.clearToMarker()
		if len(b.templateModes) > 0 {
			b.templateModes = b.templateModes[:len(b.templateModes)-1]
		}
		b.resetInsertionMode()
		return true
	}
	return false
}

func (b *Builder) switchTemplateMode(mode InsertionMode) {
	if len(b.templateModes) > 0 {
		b.templateModes = b.templateModes[:len(b.templateModes)-1]
	}
	b.templateModes = append(b.templateModes, mode)
	b.mode = mode
}
