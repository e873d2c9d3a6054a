// Package tags holds the static tables the parser shares across parses:
// interned tag identifiers, element category sets, character classes, the
// named character reference list, and the DOCTYPE quirks tables. Everything
// in this package is immutable after init.
package tags

// TagID is a dense integer identifier for a predefined HTML tag name.
// Hot-path dispatch and scope checks compare TagIDs instead of strings;
// tags outside the predefined set map to Other and fall back to the
// element's stored name.
type TagID uint8

// Other is the zero TagID, used for any tag name not in the predefined set.
const Other TagID = 0

// Predefined tag identifiers.
const (
	A TagID = iota + 1
	Address
	Applet
	Area
	Article
	Aside
	B
	Base
	Basefont
	Bgsound
	Big
	Blockquote
	Body
	Br
	Button
	Caption
	Center
	Code
	Col
	Colgroup
	Dd
	Details
	Dialog
	Dir
	Div
	Dl
	Dt
	Em
	Embed
	Fieldset
	Figcaption
	Figure
	Font
	Footer
	Form
	Frame
	Frameset
	H1
	H2
	H3
	H4
	H5
	H6
	Head
	Header
	Hgroup
	Hr
	Html
	I
	Iframe
	Image
	Img
	Input
	Keygen
	Label
	Legend
	Li
	Link
	Listing
	Main
	Marquee
	Menu
	Menuitem
	Meta
	Nav
	Nobr
	Noembed
	Noframes
	Noscript
	Object
	Ol
	Optgroup
	Option
	P
	Param
	Plaintext
	Pre
	Rb
	Rp
	Rt
	Rtc
	Ruby
	S
	Script
	Search
	Section
	Select
	Selectedcontent
	Slot
	Small
	Source
	Span
	Strike
	Strong
	Style
	Summary
	Sup
	Sub
	Table
	Tbody
	Td
	Template
	Textarea
	Tfoot
	Th
	Thead
	Title
	Tr
	Track
	Tt
	U
	Ul
	Var
	Wbr
	Xmp

	maxTagID
)

// NumTagIDs is the number of predefined TagIDs including Other.
const NumTagIDs = int(maxTagID)

var tagNames = [NumTagIDs]string{
	Other: "", A: "a", Address: "address", Applet: "applet", Area: "area",
	Article: "article", Aside: "aside", B: "b", Base: "base",
	Basefont: "basefont", Bgsound: "bgsound", Big: "big",
	Blockquote: "blockquote", Body: "body", Br: "br", Button: "button",
	Caption: "caption", Center: "center", Code: "code", Col: "col",
	Colgroup: "colgroup", Dd: "dd", Details: "details", Dialog: "dialog",
	Dir: "dir", Div: "div", Dl: "dl", Dt: "dt", Em: "em", Embed: "embed",
	Fieldset: "fieldset", Figcaption: "figcaption", Figure: "figure",
	Font: "font", Footer: "footer", Form: "form", Frame: "frame",
	Frameset: "frameset", H1: "h1", H2: "h2", H3: "h3", H4: "h4", H5: "h5",
	H6: "h6", Head: "head", Header: "header", Hgroup: "hgroup", Hr: "hr",
	Html: "html", I: "i", Iframe: "iframe", Image: "image", Img: "img",
	Input: "input", Keygen: "keygen", Label: "label", Legend: "legend",
	Li: "li", Link: "link", Listing: "listing", Main: "main",
	Marquee: "marquee", Menu: "menu", Menuitem: "menuitem", Meta: "meta",
	Nav: "nav", Nobr: "nobr", Noembed: "noembed", Noframes: "noframes",
	Noscript: "noscript", Object: "object", Ol: "ol", Optgroup: "optgroup",
	Option: "option", P: "p", Param: "param", Plaintext: "plaintext",
	Pre: "pre", Rb: "rb", Rp: "rp", Rt: "rt", Rtc: "rtc", Ruby: "ruby",
	S: "s", Script: "script", Search: "search", Section: "section",
	Select: "select", Selectedcontent: "selectedcontent", Slot: "slot",
	Small: "small", Source: "source", Span: "span", Strike: "strike",
	Strong: "strong", Style: "style", Summary: "summary", Sup: "sup",
	Sub: "sub", Table: "table", Tbody: "tbody", Td: "td",
	Template: "template", Textarea: "textarea", Tfoot: "tfoot", Th: "th",
	Thead: "thead", Title: "title", Tr: "tr", Track: "track", Tt: "tt",
	U: "u", Ul: "ul", Var: "var", Wbr: "wbr", Xmp: "xmp",
}

var tagByName map[string]TagID

func init() {
	tagByName = make(map[string]TagID, NumTagIDs)
	for id := 1; id < NumTagIDs; id++ {
		tagByName[tagNames[id]] = TagID(id)
	}
}

// Lookup returns the TagID for a lowercase tag name, or Other.
func Lookup(name string) TagID {
	return tagByName[name]
}

// String returns the canonical lowercase name of a predefined TagID,
// or the empty string for Other.
func (id TagID) String() string {
	if int(id) < NumTagIDs {
		return tagNames[id]
	}
	return ""
}

// Name returns the interned spelling of a lowercase tag name. Predefined
// names share one allocation across all parses.
func Name(name string) string {
	if id, ok := tagByName[name]; ok {
		return tagNames[id]
	}
	return name
}
