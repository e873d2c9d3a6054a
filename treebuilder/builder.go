package treebuilder

import (
	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
)

// Builder consumes tokenizer tokens and constructs the node tree. It owns
// the stack of open elements, the active formatting list, the template
// insertion-mode stack, and the head/form pointers, and it feeds text-mode
// switches back to the tokenizer.
type Builder struct {
	doc *dom.Document

	stack []*dom.Element

	mode         InsertionMode
	originalMode InsertionMode

	head *dom.Element
	form *dom.Element

	afe []afeEntry

	templateModes []InsertionMode

	pendingTableText []string

	framesetOK      bool
	fosterParenting bool
	scripting       bool
	iframeSrcdoc    bool

	// ignoreLF strips one newline from the next character token, for the
	// leading-newline rule of pre/listing/textarea.
	ignoreLF bool

	// htmlRules forces one round of normal insertion-mode processing
	// after a foreign-content breakout, so the breakout cannot loop.
	htmlRules bool

	// Fragment parsing state. The context element never joins the stack;
	// it acts as the adjusted current node while only the root is open.
	fragment  *dom.Fragment
	fragRoot  *dom.Element
	contextEl *dom.Element

	tok *tokenizer.Tokenizer

	errs []ParseError
}

// ParseError is a tree-construction error record.
type ParseError struct {
	Code   string
	Line   int
	Column int
}

// New creates a builder for a full document parse.
func New(tok *tokenizer.Tokenizer) *Builder {
	return &Builder{
		doc:        dom.NewDocument(),
		mode:       Initial,
		framesetOK: true,
		tok:        tok,
	}
}

// NewFragment creates a builder for a fragment parse. The context element
// configures the tokenizer, the initial insertion mode, and the adjusted
// current node, but stays outside the tree: parsed content collects under
// an <html> root whose children become the fragment.
func NewFragment(tok *tokenizer.Tokenizer, ctx *FragmentContext) *Builder {
	b := New(tok)
	b.framesetOK = true

	frag := dom.NewFragment()
	if ctx != nil {
		frag.ContextTag = ctx.TagName
		frag.ContextNamespace = ctx.Namespace
	}
	b.fragment = frag

	root := dom.NewElement("html")
	b.doc.AppendChild(root)
	b.stack = append(b.stack, root)
	b.fragRoot = root

	if ctx == nil || ctx.TagName == "" {
		b.mode = InBody
		return b
	}

	switch ctx.Namespace {
	case "", "html":
		b.contextEl = dom.NewElement(ctx.TagName)
	case "svg":
		b.contextEl = dom.NewElementNS(ctx.TagName, dom.NamespaceSVG)
	case "mathml", "math":
		b.contextEl = dom.NewElementNS(ctx.TagName, dom.NamespaceMathML)
	default:
		b.contextEl = dom.NewElement(ctx.TagName)
	}

	if b.contextEl.IsHTML() {
		switch b.contextEl.ID {
		case tags.Title, tags.Textarea:
			tok.SetLastStartTag(b.contextEl.TagName)
			tok.SetState(tokenizer.RCDATAState)
		case tags.Style, tags.Xmp, tags.Iframe, tags.Noembed, tags.Noframes:
			tok.SetLastStartTag(b.contextEl.TagName)
			tok.SetState(tokenizer.RAWTEXTState)
		case tags.Script:
			tok.SetLastStartTag(b.contextEl.TagName)
			tok.SetState(tokenizer.ScriptDataState)
		case tags.Noscript:
			if b.scripting {
				tok.SetLastStartTag(b.contextEl.TagName)
				tok.SetState(tokenizer.RAWTEXTState)
			}
		case tags.Plaintext:
			tok.SetLastStartTag(b.contextEl.TagName)
			tok.SetState(tokenizer.PLAINTEXTState)
		case tags.Template:
			b.templateModes = append(b.templateModes, InTemplate)
		}
	}

	b.resetInsertionMode()
	b.originalMode = b.mode
	return b
}

// SetScripting sets the scripting flag, which changes how <noscript>
// parses. For a noscript fragment context the tokenizer state depends on
// the flag, so the call must come before the first token is consumed.
func (b *Builder) SetScripting(on bool) {
	b.scripting = on
	if on && b.contextEl != nil && b.contextEl.Is(tags.Noscript) {
		b.tok.SetLastStartTag(b.contextEl.TagName)
		b.tok.SetState(tokenizer.RAWTEXTState)
	}
}

// SetIframeSrcdoc marks the document as iframe srcdoc content, where a
// missing DOCTYPE does not select quirks mode.
func (b *Builder) SetIframeSrcdoc(on bool) { b.iframeSrcdoc = on }

// Document returns the constructed document.
func (b *Builder) Document() *dom.Document { return b.doc }

// Fragment returns the result of a fragment parse: the parsed top-level
// nodes moved into a document fragment.
func (b *Builder) Fragment() *dom.Fragment {
	if b.fragment == nil {
		return nil
	}
	if b.fragRoot != nil {
		for _, child := range append([]dom.Node(nil), b.fragRoot.Children()...) {
			b.fragRoot.RemoveChild(child)
			b.fragment.AppendChild(child)
		}
		b.fragRoot = nil
	}
	return b.fragment
}

// Errors returns the tree-construction errors in order.
func (b *Builder) Errors() []ParseError { return b.errs }

// AllowCDATA reports whether the adjusted current node is in foreign
// content, which is when the tokenizer may honour CDATA sections.
func (b *Builder) AllowCDATA() bool {
	acn := b.adjustedCurrentNode()
	return acn != nil && !acn.IsHTML()
}

func (b *Builder) fail(code string) {
	b.errs = append(b.errs, ParseError{Code: code, Line: b.tok.Line(), Column: max(1, b.tok.Col())})
}

// ProcessToken runs one token through the dispatcher, reprocessing as the
// mode handlers request.
func (b *Builder) ProcessToken(tok *tokenizer.Token) {
	for {
		if b.ignoreLF {
			b.ignoreLF = false
			if tok.Kind == tokenizer.Character && len(tok.Data) > 0 && tok.Data[0] == '\n' {
				tok.Data = tok.Data[1:]
				if tok.Data == "" {
					return
				}
			}
		}

		if !b.htmlRules && b.useForeignRules(tok) {
			if !b.processForeign(tok) {
				return
			}
			continue
		}
		b.htmlRules = false

		if !b.dispatch(tok) {
			return
		}
	}
}

// dispatch runs tok through the current mode's handler and reports whether
// the token must be reprocessed.
func (b *Builder) dispatch(tok *tokenizer.Token) bool {
	switch b.mode {
	case Initial:
		return b.initialMode(tok)
	case BeforeHTML:
		return b.beforeHTMLMode(tok)
	case BeforeHead:
		return b.beforeHeadMode(tok)
	case InHead:
		return b.inHeadMode(tok)
	case InHeadNoscript:
		return b.inHeadNoscriptMode(tok)
	case AfterHead:
		return b.afterHeadMode(tok)
	case InBody:
		return b.inBodyMode(tok)
	case Text:
		return b.textMode(tok)
	case InTable:
		return b.inTableMode(tok)
	case InTableText:
		return b.inTableTextMode(tok)
	case InCaption:
		return b.inCaptionMode(tok)
	case InColumnGroup:
		return b.inColumnGroupMode(tok)
	case InTableBody:
		return b.inTableBodyMode(tok)
	case InRow:
		return b.inRowMode(tok)
	case InCell:
		return b.inCellMode(tok)
	case InSelect:
		return b.inSelectMode(tok)
	case InSelectInTable:
		return b.inSelectInTableMode(tok)
	case InTemplate:
		return b.inTemplateMode(tok)
	case AfterBody:
		return b.afterBodyMode(tok)
	case InFrameset:
		return b.inFramesetMode(tok)
	case AfterFrameset:
		return b.afterFramesetMode(tok)
	case AfterAfterBody:
		return b.afterAfterBodyMode(tok)
	case AfterAfterFrameset:
		return b.afterAfterFramesetMode(tok)
	default:
		return b.inBodyMode(tok)
	}
}

// --- stack helpers ---

func (b *Builder) currentNode() dom.Node {
	if len(b.stack) == 0 {
		return b.doc
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) current() *dom.Element {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// adjustedCurrentNode is the context element while only the fragment root
// is open, the current node otherwise.
func (b *Builder) adjustedCurrentNode() *dom.Element {
	if b.contextEl != nil && len(b.stack) == 1 {
		return b.contextEl
	}
	return b.current()
}

func (b *Builder) pop() *dom.Element {
	if len(b.stack) == 0 {
		return nil
	}
	el := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return el
}

// popUntil pops elements until an HTML element with the given TagID has
// been popped.
func (b *Builder) popUntil(id tags.TagID) {
	for len(b.stack) > 0 {
		el := b.pop()
		if el.Is(id) {
			return
		}
	}
}

func (b *Builder) popUntilAny(set tags.Set) {
	for len(b.stack) > 0 {
		el := b.pop()
		if el.IsHTML() && set.Has(el.ID) {
			return
		}
	}
}

func (b *Builder) onStack(id tags.TagID) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].Is(id) {
			return true
		}
	}
	return false
}

func (b *Builder) stackIndexOf(el *dom.Element) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i] == el {
			return i
		}
	}
	return -1
}

func (b *Builder) removeFromStack(el *dom.Element) {
	if i := b.stackIndexOf(el); i >= 0 {
		b.stack = append(b.stack[:i], b.stack[i+1:]...)
	}
}

func (b *Builder) insertIntoStack(i int, el *dom.Element) {
	if i < 0 {
		i = 0
	}
	if i > len(b.stack) {
		i = len(b.stack)
	}
	b.stack = append(b.stack, nil)
	copy(b.stack[i+1:], b.stack[i:])
	b.stack[i] = el
}

// --- insertion ---

type insertionPoint struct {
	parent dom.Node
	before dom.Node
}

// insertionLocation computes the appropriate place for inserting content,
// honouring template content redirection and foster parenting.
func (b *Builder) insertionLocation() insertionPoint {
	target := b.current()

	if b.fosterParenting && target != nil && target.IsHTML() &&
		tags.FosterTargets.Has(target.ID) {
		return b.fosterLocation()
	}
	if target != nil && target.Is(tags.Template) {
		return insertionPoint{parent: templateContent(target)}
	}
	return insertionPoint{parent: b.currentNode()}
}

func templateContent(el *dom.Element) *dom.Fragment {
	if el.Content == nil {
		el.Content = dom.NewFragment()
	}
	return el.Content
}

// fosterLocation finds the foster parent slot: inside the last template
// if it is above the last table, otherwise immediately before the last
// table (or above it when the table has no parent).
func (b *Builder) fosterLocation() insertionPoint {
	lastTable, tableIdx := -1, -1
	lastTemplate := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if lastTable < 0 && el.Is(tags.Table) {
			lastTable = i
			tableIdx = i
		}
		if lastTemplate < 0 && el.Is(tags.Template) {
			lastTemplate = i
		}
		if lastTable >= 0 && lastTemplate >= 0 {
			break
		}
	}
	if lastTemplate >= 0 && (lastTable < 0 || lastTemplate > lastTable) {
		return insertionPoint{parent: templateContent(b.stack[lastTemplate])}
	}
	if lastTable < 0 {
		if len(b.stack) > 0 {
			return insertionPoint{parent: b.stack[0]}
		}
		return insertionPoint{parent: b.doc}
	}
	table := b.stack[tableIdx]
	if p := table.Parent(); p != nil {
		return insertionPoint{parent: p, before: table}
	}
	if tableIdx > 0 {
		return insertionPoint{parent: b.stack[tableIdx-1]}
	}
	return insertionPoint{parent: b.doc}
}

// insertNode places a node at the given (or appropriate) location,
// merging adjacent text nodes.
func (b *Builder) insertNode(node dom.Node, at *insertionPoint) {
	var loc insertionPoint
	if at != nil {
		loc = *at
	} else {
		loc = b.insertionLocation()
	}

	if txt, ok := node.(*dom.Text); ok {
		if loc.before == nil {
			children := loc.parent.Children()
			if len(children) > 0 {
				if prev, ok := children[len(children)-1].(*dom.Text); ok {
					prev.Data += txt.Data
					return
				}
			}
		} else {
			if prev := textSiblingBefore(loc.parent, loc.before); prev != nil {
				prev.Data += txt.Data
				return
			}
			if next, ok := loc.before.(*dom.Text); ok {
				next.Data = txt.Data + next.Data
				return
			}
		}
	}

	if loc.before == nil {
		loc.parent.AppendChild(node)
		return
	}
	loc.parent.InsertBefore(node, loc.before)
}

func textSiblingBefore(parent, ref dom.Node) *dom.Text {
	children := parent.Children()
	for i, c := range children {
		if c == ref {
			if i > 0 {
				if t, ok := children[i-1].(*dom.Text); ok {
					return t
				}
			}
			return nil
		}
	}
	return nil
}

func (b *Builder) insertText(data string) {
	if data == "" {
		return
	}
	b.insertNode(dom.NewText(data), nil)
}

func (b *Builder) insertComment(data string) {
	b.insertNode(dom.NewComment(data), nil)
}

// insertElement creates an HTML element for a start tag and pushes it.
func (b *Builder) insertElement(name string, attrs []tokenizer.Attr) *dom.Element {
	el := dom.NewElement(name)
	if el.Is(tags.Template) {
		el.Content = dom.NewFragment()
	}
	for _, a := range attrs {
		if a.Namespace != "" {
			el.Attrs.SetNS(a.Namespace, a.Name, a.Value)
			continue
		}
		if !el.Attrs.Has(a.Name) {
			el.Attrs.SetNS("", a.Name, a.Value)
		}
	}
	b.insertNode(el, nil)
	b.stack = append(b.stack, el)
	return el
}

// insertVoid inserts an element that does not stay open.
func (b *Builder) insertVoid(name string, attrs []tokenizer.Attr) *dom.Element {
	el := b.insertElement(name, attrs)
	b.pop()
	return el
}

// mergeAttrs copies missing attributes from a duplicate start tag onto an
// existing element (used for repeated <html> and <body> tags).
func (b *Builder) mergeAttrs(el *dom.Element, attrs []tokenizer.Attr) {
	if el == nil || len(b.templateModes) > 0 {
		return
	}
	for _, a := range attrs {
		if a.Namespace != "" {
			if !el.Attrs.HasNS(a.Namespace, a.Name) {
				el.Attrs.SetNS(a.Namespace, a.Name, a.Value)
			}
			continue
		}
		if !el.Attrs.Has(a.Name) {
			el.Attrs.SetNS("", a.Name, a.Value)
		}
	}
}

// genericRawText inserts the element and switches the tokenizer into the
// given text state until the matching end tag.
func (b *Builder) genericRawText(tok *tokenizer.Token, state tokenizer.State) {
	b.insertElement(tok.Name, tok.Attrs)
	b.originalMode = b.mode
	b.mode = Text
	b.tok.SetLastStartTag(tok.Name)
	b.tok.SetState(state)
}
