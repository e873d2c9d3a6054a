// Package treebuilder implements the HTML5 tree construction algorithm.
package treebuilder

// InsertionMode selects how the next token is handled.
type InsertionMode int

// Insertion modes, in spec order.
const (
	Initial InsertionMode = iota
	BeforeHTML
	BeforeHead
	InHead
	InHeadNoscript
	AfterHead
	InBody
	Text
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	InTemplate
	AfterBody
	InFrameset
	AfterFrameset
	AfterAfterBody
	AfterAfterFrameset
)

var modeNames = [...]string{
	"initial", "before html", "before head", "in head", "in head noscript",
	"after head", "in body", "text", "in table", "in table text",
	"in caption", "in column group", "in table body", "in row", "in cell",
	"in select", "in select in table", "in template", "after body",
	"in frameset", "after frameset", "after after body",
	"after after frameset",
}

// String returns the mode name used by the specification prose.
func (m InsertionMode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// FragmentContext names the context element of a fragment parse.
type FragmentContext struct {
	// TagName is the context element's tag name, e.g. "tbody".
	TagName string

	// Namespace is "html" (or empty), "svg", or "mathml".
	Namespace string
}
