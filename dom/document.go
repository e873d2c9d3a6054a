package dom

import "github.com/strainhtml/strain/internal/tags"

// QuirksMode is the document-wide rendering mode derived from the DOCTYPE.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

// Document is the root of a full parse.
type Document struct {
	branch

	// Doctype is the document's DOCTYPE declaration, if any.
	Doctype *DocumentType

	// QuirksMode records the mode the DOCTYPE selected.
	QuirksMode QuirksMode

	// Encoding is the canonical label of the encoding the sniffer chose
	// when the document was parsed from bytes; empty for string input.
	Encoding string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.bind(d)
	return d
}

// Type implements Node.
func (d *Document) Type() NodeType { return DocumentNodeType }

// Clone implements Node.
func (d *Document) Clone(deep bool) Node {
	c := &Document{QuirksMode: d.QuirksMode, Encoding: d.Encoding}
	c.bind(c)
	if d.Doctype != nil {
		c.Doctype = d.Doctype.Clone(false).(*DocumentType)
	}
	if deep {
		for _, child := range d.children {
			c.AppendChild(child.Clone(true))
		}
	}
	return c
}

// DocumentElement returns the root element, normally <html>.
func (d *Document) DocumentElement() *Element {
	for _, child := range d.children {
		if el, ok := child.(*Element); ok {
			return el
		}
	}
	return nil
}

// Head returns the document's <head> element, or nil.
func (d *Document) Head() *Element { return d.rootChild(tags.Head) }

// Body returns the document's <body> element, or nil.
func (d *Document) Body() *Element { return d.rootChild(tags.Body) }

func (d *Document) rootChild(id tags.TagID) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if el, ok := child.(*Element); ok && el.Is(id) {
			return el
		}
	}
	return nil
}

// Title returns the text of the first <title> in head, or "".
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	for _, child := range head.Children() {
		if el, ok := child.(*Element); ok && el.Is(tags.Title) {
			return el.Text()
		}
	}
	return ""
}

// DocumentType is a DOCTYPE declaration node.
type DocumentType struct {
	leaf

	Name     string
	PublicID string
	SystemID string
}

// NewDocumentType creates a DOCTYPE node.
func NewDocumentType(name, publicID, systemID string) *DocumentType {
	return &DocumentType{Name: name, PublicID: publicID, SystemID: systemID}
}

// Type implements Node.
func (dt *DocumentType) Type() NodeType { return DoctypeNodeType }

// Clone implements Node.
func (dt *DocumentType) Clone(bool) Node {
	return &DocumentType{Name: dt.Name, PublicID: dt.PublicID, SystemID: dt.SystemID}
}

// Fragment is a document fragment: the root of a fragment parse and the
// content holder of <template> elements.
type Fragment struct {
	branch

	// ContextTag and ContextNamespace record the fragment parsing
	// context, when there was one.
	ContextTag       string
	ContextNamespace string
}

// NewFragment creates an empty fragment.
func NewFragment() *Fragment {
	f := &Fragment{}
	f.bind(f)
	return f
}

// Type implements Node.
func (f *Fragment) Type() NodeType { return FragmentNodeType }

// Clone implements Node.
func (f *Fragment) Clone(deep bool) Node {
	c := &Fragment{ContextTag: f.ContextTag, ContextNamespace: f.ContextNamespace}
	c.bind(c)
	if deep {
		for _, child := range f.children {
			c.AppendChild(child.Clone(true))
		}
	}
	return c
}
