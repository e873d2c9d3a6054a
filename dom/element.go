package dom

import (
	"strings"

	"github.com/strainhtml/strain/internal/tags"
)

// Namespace URLs for the three element namespaces.
const (
	NamespaceHTML   = tags.NamespaceHTML
	NamespaceSVG    = tags.NamespaceSVG
	NamespaceMathML = tags.NamespaceMathML
)

// Element is an HTML, SVG, or MathML element. HTML elements store a
// lowercase TagName; foreign elements keep their spec-cased names. ID is
// the interned TagID for the name (tags.Other for names outside the
// predefined set) and is the comparison key on hot paths.
type Element struct {
	branch

	TagName   string
	ID        tags.TagID
	Namespace string
	Attrs     *Attributes

	// Content holds the separate content fragment of a <template>
	// element. The template element's own child list stays empty in the
	// main tree.
	Content *Fragment
}

// NewElement creates an HTML-namespace element. The name is lowercased.
func NewElement(name string) *Element {
	lower := strings.ToLower(name)
	e := &Element{
		TagName:   tags.Name(lower),
		ID:        tags.Lookup(lower),
		Namespace: NamespaceHTML,
		Attrs:     NewAttributes(),
	}
	e.bind(e)
	return e
}

// NewElementNS creates an element in the given namespace without case
// folding the name.
func NewElementNS(name, namespace string) *Element {
	e := &Element{
		TagName:   name,
		ID:        tags.Lookup(name),
		Namespace: namespace,
		Attrs:     NewAttributes(),
	}
	e.bind(e)
	return e
}

// Type implements Node.
func (e *Element) Type() NodeType { return ElementNodeType }

// IsHTML reports whether the element is in the HTML namespace.
func (e *Element) IsHTML() bool { return e.Namespace == NamespaceHTML }

// Is reports whether the element is an HTML element with the given TagID.
func (e *Element) Is(id tags.TagID) bool {
	return e.ID == id && e.Namespace == NamespaceHTML
}

// Clone implements Node.
func (e *Element) Clone(deep bool) Node {
	c := &Element{
		TagName:   e.TagName,
		ID:        e.ID,
		Namespace: e.Namespace,
		Attrs:     e.Attrs.Clone(),
	}
	c.bind(c)
	if deep {
		for _, child := range e.children {
			c.AppendChild(child.Clone(true))
		}
		if e.Content != nil {
			c.Content = e.Content.Clone(true).(*Fragment)
		}
	}
	return c
}

// Attr returns an attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	v, _ := e.Attrs.Get(name)
	return v
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool { return e.Attrs.Has(name) }

// SetAttr writes an attribute.
func (e *Element) SetAttr(name, value string) { e.Attrs.Set(name, value) }

// Text returns the concatenated text of the element's descendants,
// exactly as it appears in the tree.
func (e *Element) Text() string {
	var sb strings.Builder
	gatherText(e, &sb)
	return sb.String()
}

func gatherText(n Node, sb *strings.Builder) {
	for _, child := range n.Children() {
		switch c := child.(type) {
		case *Text:
			sb.WriteString(c.Data)
		case *Element:
			gatherText(c, sb)
		}
	}
}

// CollapsedText returns the element's text with a single space inserted
// between runs separated by block-level boundaries. Spacing inside a run
// is preserved as written; no separator is added across inline element
// boundaries, so "<strong>Hello</strong>, World!" stays "Hello, World!".
func (e *Element) CollapsedText() string {
	var parts []string
	var run strings.Builder
	collapseText(e, &run, &parts)
	if run.Len() > 0 {
		parts = append(parts, run.String())
	}
	return strings.Join(parts, " ")
}

func collapseText(n Node, run *strings.Builder, parts *[]string) {
	for _, child := range n.Children() {
		switch c := child.(type) {
		case *Text:
			run.WriteString(c.Data)
		case *Element:
			if isBlockLevel(c) {
				if run.Len() > 0 {
					*parts = append(*parts, run.String())
					run.Reset()
				}
				collapseText(c, run, parts)
				if run.Len() > 0 {
					*parts = append(*parts, run.String())
					run.Reset()
				}
			} else {
				collapseText(c, run, parts)
			}
		}
	}
}

func isBlockLevel(e *Element) bool {
	if !e.IsHTML() {
		return false
	}
	switch e.ID {
	case tags.Address, tags.Article, tags.Aside, tags.Blockquote, tags.Body,
		tags.Caption, tags.Dd, tags.Div, tags.Dl, tags.Dt, tags.Fieldset,
		tags.Figcaption, tags.Figure, tags.Footer, tags.Form, tags.H1,
		tags.H2, tags.H3, tags.H4, tags.H5, tags.H6, tags.Head, tags.Header,
		tags.Hr, tags.Html, tags.Li, tags.Main, tags.Nav, tags.Ol, tags.P,
		tags.Pre, tags.Section, tags.Table, tags.Tbody, tags.Td, tags.Tfoot,
		tags.Th, tags.Thead, tags.Tr, tags.Ul:
		return true
	}
	return false
}
