package treebuilder

import (
	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/internal/tags"
)

// adoptionAgency rebalances misnested formatting elements for an end tag
// with the given name. It returns false when the caller should fall back
// to the "any other end tag" steps.
func (b *Builder) adoptionAgency(subject string) bool {
	// Shortcut: the current node is the subject and has no list entry.
	if cur := b.current(); cur != nil && cur.IsHTML() && cur.TagName == subject {
		if b.afeIndexOf(subject) < 0 || b.afeIndexOfNode(cur) < 0 {
			b.pop()
			b.removeAFEByName(subject)
			return true
		}
	}

	for outer := 0; outer < 8; outer++ {
		fmtIdx := b.afeIndexOf(subject)
		if fmtIdx < 0 {
			return false
		}
		fmtEl := b.afe[fmtIdx].node
		if fmtEl == nil {
			b.removeAFE(fmtIdx)
			return true
		}

		stackIdx := b.stackIndexOf(fmtEl)
		if stackIdx < 0 {
			b.fail("unexpected-end-tag")
			b.removeAFE(fmtIdx)
			return true
		}
		if !b.elementInScope(fmtEl, tags.ScopeDefault) {
			b.fail("unexpected-end-tag")
			return true
		}
		if fmtEl != b.current() {
			b.fail("unexpected-end-tag")
		}

		// Furthest block: the first special element below the
		// formatting element.
		var furthest *dom.Element
		for i := stackIdx + 1; i < len(b.stack); i++ {
			if isSpecial(b.stack[i]) {
				furthest = b.stack[i]
				break
			}
		}

		if furthest == nil {
			for len(b.stack) > 0 {
				if b.pop() == fmtEl {
					break
				}
			}
			b.removeAFE(fmtIdx)
			return true
		}

		commonAncestor := b.stack[stackIdx-1]
		bookmark := fmtIdx + 1

		node := furthest
		lastNode := furthest
		inner := 0
		for {
			inner++

			nodeIdx := b.stackIndexOf(node)
			if nodeIdx <= 0 {
				return true
			}
			node = b.stack[nodeIdx-1]
			if node == fmtEl {
				break
			}

			nodeAFE := b.afeIndexOfNode(node)
			if inner > 3 && nodeAFE >= 0 {
				b.removeAFE(nodeAFE)
				if nodeAFE < bookmark {
					bookmark--
				}
				nodeAFE = -1
			}
			if nodeAFE < 0 {
				b.removeFromStack(node)
				continue
			}

			// Replace the entry (and the stack slot) with a clone.
			entry := b.afe[nodeAFE]
			clone := dom.NewElement(entry.name)
			for _, a := range entry.attrs {
				if a.Namespace != "" {
					clone.Attrs.SetNS(a.Namespace, a.Name, a.Value)
				} else {
					clone.Attrs.SetNS("", a.Name, a.Value)
				}
			}
			b.afe[nodeAFE].node = clone
			b.stack[b.stackIndexOf(node)] = clone
			node = clone

			if lastNode == furthest {
				bookmark = nodeAFE + 1
			}

			if p := lastNode.Parent(); p != nil {
				p.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		// Move lastNode under the common ancestor, foster parenting
		// when the ancestor is a table context.
		if p := lastNode.Parent(); p != nil {
			p.RemoveChild(lastNode)
		}
		if commonAncestor.IsHTML() && tags.FosterTargets.Has(commonAncestor.ID) {
			loc := b.fosterLocation()
			b.insertNode(lastNode, &loc)
		} else {
			commonAncestor.AppendChild(lastNode)
		}

		// Fresh clone of the formatting element takes the children of
		// the furthest block.
		entry := b.afe[fmtIdx]
		clone := dom.NewElement(entry.name)
		for _, a := range entry.attrs {
			if a.Namespace != "" {
				clone.Attrs.SetNS(a.Namespace, a.Name, a.Value)
			} else {
				clone.Attrs.SetNS("", a.Name, a.Value)
			}
		}
		for {
			children := furthest.Children()
			if len(children) == 0 {
				break
			}
			child := children[0]
			furthest.RemoveChild(child)
			clone.AppendChild(child)
		}
		furthest.AppendChild(clone)

		// Reinsert the list entry at the bookmark.
		moved := b.afe[fmtIdx]
		moved.node = clone
		b.removeAFE(fmtIdx)
		if fmtIdx < bookmark {
			bookmark--
		}
		bookmark = min(max(bookmark, 0), len(b.afe))
		b.afe = append(b.afe, afeEntry{})
		copy(b.afe[bookmark+1:], b.afe[bookmark:])
		b.afe[bookmark] = moved

		// And the stack entry moves below the furthest block.
		b.removeFromStack(fmtEl)
		b.insertIntoStack(b.stackIndexOf(furthest)+1, clone)
	}
	return true
}

func isSpecial(el *dom.Element) bool {
	if el == nil {
		return false
	}
	if el.IsHTML() {
		return tags.Special.Has(el.ID)
	}
	// Foreign integration points count as special.
	return scopeTerminatesForeign(el)
}

// anyOtherEndTag implements the InBody "any other end tag" steps.
func (b *Builder) anyOtherEndTag(name string) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		node := b.stack[i]
		if node.IsHTML() && node.TagName == name {
			b.generateImpliedEndTags(tags.Lookup(name))
			if b.current() != node {
				b.fail("unexpected-end-tag")
			}
			b.stack = b.stack[:i]
			return
		}
		if isSpecial(node) {
			b.fail("unexpected-end-tag")
			return
		}
	}
}
