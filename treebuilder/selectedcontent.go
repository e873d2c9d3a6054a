package treebuilder

import (
	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
)

// FinishDocument runs the post-parse passes over the completed tree.
// Currently this mirrors the selected option into any <selectedcontent>
// element inside a <select>.
func (b *Builder) FinishDocument() {
	populateSelectedContent(b.doc)
}

func populateSelectedContent(root dom.Node) {
	var selects []*dom.Element
	collectElements(root, tags.Select, &selects)

	for _, sel := range selects {
		target := firstElement(sel, tags.Selectedcontent)
		if target == nil {
			continue
		}
		var options []*dom.Element
		collectElements(sel, tags.Option, &options)
		if len(options) == 0 {
			continue
		}
		chosen := options[0]
		for _, opt := range options {
			if opt.HasAttr("selected") {
				chosen = opt
				break
			}
		}
		for _, child := range chosen.Children() {
			target.AppendChild(child.Clone(true))
		}
	}
}

func collectElements(node dom.Node, id tags.TagID, out *[]*dom.Element) {
	if el, ok := node.(*dom.Element); ok && el.Is(id) {
		*out = append(*out, el)
	}
	for _, child := range node.Children() {
		collectElements(child, id, out)
	}
	if el, ok := node.(*dom.Element); ok && el.Content != nil {
		collectElements(el.Content, id, out)
	}
}

func firstElement(node dom.Node, id tags.TagID) *dom.Element {
	if el, ok := node.(*dom.Element); ok && el.Is(id) {
		return el
	}
	for _, child := range node.Children() {
		if found := firstElement(child, id); found != nil {
			return found
		}
	}
	return nil
}
