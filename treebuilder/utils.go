package treebuilder

import (
	"strings"

	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

// --- scope queries ---

// scopeTerminatesForeign reports whether a foreign element on the stack
// terminates the default/list-item/button scopes.
func scopeTerminatesForeign(el *dom.Element) bool {
	switch el.Namespace {
	case dom.NamespaceMathML:
		return tags.MathMLTextIntegration[el.TagName] || el.TagName == "annotation-xml"
	case dom.NamespaceSVG:
		return tags.SVGHTMLIntegration[el.TagName]
	}
	return false
}

// inScope walks the stack for an HTML element with the target TagID,
// stopping at any element of the terminator set.
func (b *Builder) inScope(target tags.TagID, stop tags.Set) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if el.IsHTML() {
			if el.ID == target {
				return true
			}
			if stop.Has(el.ID) {
				return false
			}
			continue
		}
		if scopeTerminatesForeign(el) {
			return false
		}
	}
	return false
}

// anyInScope is inScope over a target set.
func (b *Builder) anyInScope(targets, stop tags.Set) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if el.IsHTML() {
			if targets.Has(el.ID) {
				return true
			}
			if stop.Has(el.ID) {
				return false
			}
			continue
		}
		if scopeTerminatesForeign(el) {
			return false
		}
	}
	return false
}

// elementInScope checks a specific element rather than a tag name.
func (b *Builder) elementInScope(target *dom.Element, stop tags.Set) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if el == target {
			return true
		}
		if el.IsHTML() {
			if stop.Has(el.ID) {
				return false
			}
			continue
		}
		if scopeTerminatesForeign(el) {
			return false
		}
	}
	return false
}

func (b *Builder) inDefaultScope(id tags.TagID) bool {
	return b.inScope(id, tags.ScopeDefault)
}

func (b *Builder) inButtonScope(id tags.TagID) bool {
	return b.inScope(id, tags.ScopeButton)
}

func (b *Builder) inListItemScope(id tags.TagID) bool {
	return b.inScope(id, tags.ScopeListItem)
}

func (b *Builder) inTableScope(id tags.TagID) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if !el.IsHTML() {
			continue
		}
		if el.ID == id {
			return true
		}
		if tags.ScopeTable.Has(el.ID) {
			return false
		}
	}
	return false
}

func (b *Builder) anyInTableScope(targets tags.Set) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if !el.IsHTML() {
			continue
		}
		if targets.Has(el.ID) {
			return true
		}
		if tags.ScopeTable.Has(el.ID) {
			return false
		}
	}
	return false
}

// inSelectScope is inverted: every element except optgroup and option
// terminates the scope.
func (b *Builder) inSelectScope(id tags.TagID) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if !el.IsHTML() {
			return false
		}
		if el.ID == id {
			return true
		}
		if !tags.ScopeSelect.Has(el.ID) {
			return false
		}
	}
	return false
}

// --- implied end tags ---

func (b *Builder) generateImpliedEndTags(except tags.TagID) {
	for {
		el := b.current()
		if el == nil || !el.IsHTML() {
			return
		}
		if tags.ImpliedEnd.Has(el.ID) && el.ID != except {
			b.pop()
			continue
		}
		return
	}
}

func (b *Builder) generateImpliedEndTagsThoroughly() {
	for {
		el := b.current()
		if el == nil || !el.IsHTML() {
			return
		}
		if tags.ImpliedEndThorough.Has(el.ID) {
			b.pop()
			continue
		}
		return
	}
}

// clearStackBackTo pops until the current node is in the stop set (or the
// stack is exhausted). Used by the table modes.
func (b *Builder) clearStackBackTo(stop tags.Set) {
	for {
		el := b.current()
		if el == nil {
			return
		}
		if el.IsHTML() && stop.Has(el.ID) {
			return
		}
		b.pop()
	}
}

// --- insertion mode reset ---

// resetInsertionMode recomputes the mode from the stack, consulting the
// fragment context element for the bottom-most entry.
func (b *Builder) resetInsertionMode() {
	for i := len(b.stack) - 1; i >= 0; i-- {
		node := b.stack[i]
		last := i == 0
		if last && b.contextEl != nil {
			node = b.contextEl
		}
		if !node.IsHTML() {
			if last {
				break
			}
			continue
		}
		switch node.ID {
		case tags.Select:
			if !last {
				for j := i - 1; j > 0; j-- {
					a := b.stack[j]
					if a.Is(tags.Template) {
						break
					}
					if a.Is(tags.Table) {
						b.mode = InSelectInTable
						return
					}
				}
			}
			b.mode = InSelect
			return
		case tags.Td, tags.Th:
			if !last {
				b.mode = InCell
				return
			}
		case tags.Tr:
			b.mode = InRow
			return
		case tags.Tbody, tags.Thead, tags.Tfoot:
			b.mode = InTableBody
			return
		case tags.Caption:
			b.mode = InCaption
			return
		case tags.Colgroup:
			b.mode = InColumnGroup
			return
		case tags.Table:
			b.mode = InTable
			return
		case tags.Template:
			if len(b.templateModes) > 0 {
				b.mode = b.templateModes[len(b.templateModes)-1]
				return
			}
		case tags.Head:
			if !last {
				b.mode = InHead
				return
			}
		case tags.Body:
			b.mode = InBody
			return
		case tags.Frameset:
			b.mode = InFrameset
			return
		case tags.Html:
			if b.head == nil {
				b.mode = BeforeHead
			} else {
				b.mode = AfterHead
			}
			return
		}
		if last {
			break
		}
	}
	b.mode = InBody
}

// --- DOCTYPE classification ---

// wellKnownDoctypes are the declarations that draw no parse error.
var wellKnownDoctypes = map[[3]string]bool{
	{"html", "", ""}:                         true,
	{"html", "", "about:legacy-compat"}:      true,
	{"html", "-//W3C//DTD HTML 4.0//EN", ""}: true,
	{"html", "-//W3C//DTD HTML 4.0//EN", "http://www.w3.org/TR/REC-html40/strict.dtd"}:                true,
	{"html", "-//W3C//DTD HTML 4.01//EN", ""}:                                                         true,
	{"html", "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd"}:                    true,
	{"html", "-//W3C//DTD XHTML 1.0 Strict//EN", "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"}: true,
	{"html", "-//W3C//DTD XHTML 1.1//EN", "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd"}:             true,
}

// classifyDoctype returns whether the declaration is a parse error and
// which quirks mode it selects.
func classifyDoctype(name string, publicID, systemID *string, forceQuirks, srcdoc bool) (bool, dom.QuirksMode) {
	nameLower := strings.ToLower(name)
	public := strPtr(publicID)
	system := strPtr(systemID)

	isError := !wellKnownDoctypes[[3]string{nameLower, public, system}]

	publicLower := strings.ToLower(public)
	systemLower := strings.ToLower(system)

	switch {
	case srcdoc:
		return isError, dom.NoQuirks
	case forceQuirks:
		return isError, dom.Quirks
	case nameLower != "html":
		return isError, dom.Quirks
	case tags.QuirkyPublicIDs[publicLower], tags.QuirkySystemIDs[systemLower]:
		return isError, dom.Quirks
	case hasAnyPrefix(publicLower, tags.QuirkyPublicPrefixes):
		return isError, dom.Quirks
	case systemID == nil && hasAnyPrefix(publicLower, tags.HTML4PublicPrefixes):
		return isError, dom.Quirks
	case hasAnyPrefix(publicLower, tags.LimitedQuirkyPublicPrefixes):
		return isError, dom.LimitedQuirks
	case systemID != nil && hasAnyPrefix(publicLower, tags.HTML4PublicPrefixes):
		return isError, dom.LimitedQuirks
	}
	return isError, dom.NoQuirks
}

func hasAnyPrefix(s string, prefixes []string) bool {
	if s == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// --- misc token helpers ---

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
		default:
			return false
		}
	}
	return true
}

func splitLeadingWhitespace(s string) (ws, rest string) {
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\t', '\n', '\f', '\r', ' ':
			i++
		default:
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func dropNulls(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

func isHiddenInputType(attrs []tokenizer.Attr) bool {
	for _, a := range attrs {
		if a.Namespace == "" && strings.EqualFold(a.Name, "type") &&
			strings.EqualFold(a.Value, "hidden") {
			return true
		}
	}
	return false
}
