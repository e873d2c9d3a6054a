package tags

// Set is a bitmap over predefined TagIDs. Membership tests on the tree
// builder's hot paths go through Set instead of string comparison; Other
// is never a member, so callers needing to match non-predefined names must
// fall back to the element's stored name.
type Set [2]uint64

// NewSet builds a Set from the given TagIDs.
func NewSet(ids ...TagID) Set {
	var s Set
	for _, id := range ids {
		s[id>>6] |= 1 << (id & 63)
	}
	return s
}

// Has reports whether id is in the set. Other is never a member.
func (s Set) Has(id TagID) bool {
	return id != Other && s[id>>6]&(1<<(id&63)) != 0
}

// Union returns the union of two sets.
func (s Set) Union(o Set) Set {
	return Set{s[0] | o[0], s[1] | o[1]}
}

// Void elements have no end tag and never stay on the stack of open
// elements.
var Void = NewSet(Area, Base, Br, Col, Embed, Hr, Img, Input, Link, Meta,
	Param, Source, Track, Wbr)

// RawText elements tokenize their content as opaque text.
var RawText = NewSet(Script, Style)

// EscapableRawText elements tokenize as RCDATA.
var EscapableRawText = NewSet(Textarea, Title)

// Formatting elements participate in the active formatting list and the
// adoption agency algorithm.
var Formatting = NewSet(A, B, Big, Code, Em, Font, I, Nobr, S, Small,
	Strike, Strong, Tt, U)

// Special elements per the tree construction algorithm; an end tag whose
// target lies beyond one of these is ignored.
var Special = NewSet(Address, Applet, Area, Article, Aside, Base, Basefont,
	Bgsound, Blockquote, Body, Br, Button, Caption, Center, Col, Colgroup,
	Dd, Details, Dialog, Dir, Div, Dl, Dt, Embed, Fieldset, Figcaption,
	Figure, Footer, Form, Frame, Frameset, H1, H2, H3, H4, H5, H6, Head,
	Header, Hgroup, Hr, Html, Iframe, Img, Input, Keygen, Li, Link, Listing,
	Main, Marquee, Menu, Menuitem, Meta, Nav, Noembed, Noframes, Noscript,
	Object, Ol, P, Param, Plaintext, Pre, Script, Search, Section, Select,
	Source, Style, Summary, Table, Tbody, Td, Template, Textarea, Tfoot, Th,
	Thead, Title, Tr, Track, Ul, Wbr, Xmp)

// Headings groups h1-h6.
var Headings = NewSet(H1, H2, H3, H4, H5, H6)

// ImpliedEnd elements are popped by "generate implied end tags".
var ImpliedEnd = NewSet(Dd, Dt, Li, Optgroup, Option, P, Rb, Rp, Rt, Rtc)

// ImpliedEndThorough extends ImpliedEnd for the "thoroughly" variant.
var ImpliedEndThorough = ImpliedEnd.Union(NewSet(Caption, Colgroup, Tbody,
	Td, Tfoot, Th, Thead, Tr))

// FosterTargets are the elements that redirect insertions via foster
// parenting while the foster-parenting flag is set.
var FosterTargets = NewSet(Table, Tbody, Tfoot, Thead, Tr)

// TableChildren are allowed directly inside table contexts and are not
// foster-parented.
var TableChildren = NewSet(Caption, Colgroup, Tbody, Tfoot, Thead, Tr, Td,
	Th, Script, Template, Style)

// TableSectionRows groups tbody/tfoot/thead.
var TableSectionRows = NewSet(Tbody, Tfoot, Thead)

// TableCells groups td/th.
var TableCells = NewSet(Td, Th)

// Scope terminator sets. Each "has an element in X scope" query walks the
// stack until it finds the target or one of these.
var (
	scopeBase = NewSet(Applet, Caption, Html, Table, Td, Th, Marquee,
		Object, Template)

	// ScopeDefault terminates the default scope. Foreign integration
	// points also terminate it; the tree builder checks those by
	// namespace before consulting the set.
	ScopeDefault = scopeBase

	// ScopeListItem additionally stops at list containers.
	ScopeListItem = scopeBase.Union(NewSet(Ol, Ul))

	// ScopeButton additionally stops at button.
	ScopeButton = scopeBase.Union(NewSet(Button))

	// ScopeTable stops only at table boundaries.
	ScopeTable = NewSet(Html, Table, Template)

	// ScopeSelect is inverted: everything except optgroup/option
	// terminates select scope. Kept as the pass-through set.
	ScopeSelect = NewSet(Optgroup, Option)
)

// ClearToTableContext / ClearToTableBodyContext / ClearToTableRowContext are
// the stop sets for "clear the stack back to a ... context".
var (
	ClearToTableContext     = NewSet(Table, Template, Html)
	ClearToTableBodyContext = NewSet(Tbody, Tfoot, Thead, Template, Html)
	ClearToTableRowContext  = NewSet(Tr, Template, Html)
)
