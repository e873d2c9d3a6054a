package treebuilder

import (
	"sort"
	"strings"

	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/tokenizer"
)

// afeEntry is one slot in the active formatting elements list: either a
// marker or a formatting element plus the token data needed to clone it.
type afeEntry struct {
	marker bool
	name   string
	attrs  []tokenizer.Attr
	node   *dom.Element
	sig    string
}

func (b *Builder) pushMarker() {
	b.afe = append(b.afe, afeEntry{marker: true})
}

// clearToMarker empties the list back to (and including) the last marker.
func (b *Builder) clearToMarker() {
	for len(b.afe) > 0 {
		last := b.afe[len(b.afe)-1]
		b.afe = b.afe[:len(b.afe)-1]
		if last.marker {
			return
		}
	}
}

// pushFormatting appends an element to the list, applying the Noah's Ark
// clause: at most three entries with the same name and attributes may
// exist between markers; the earliest one is evicted.
func (b *Builder) pushFormatting(name string, attrs []tokenizer.Attr, node *dom.Element) {
	entryAttrs := copyAttrs(attrs)
	sig := attrSignature(entryAttrs)

	count := 0
	earliest := -1
	for i := len(b.afe) - 1; i >= 0; i-- {
		e := b.afe[i]
		if e.marker {
			break
		}
		if e.name == name && e.sig == sig {
			count++
			earliest = i
		}
	}
	if count >= 3 && earliest >= 0 {
		b.removeAFE(earliest)
	}

	b.afe = append(b.afe, afeEntry{name: name, attrs: entryAttrs, node: node, sig: sig})
}

func (b *Builder) afeIndexOf(name string) int {
	for i := len(b.afe) - 1; i >= 0; i-- {
		if b.afe[i].marker {
			return -1
		}
		if b.afe[i].name == name {
			return i
		}
	}
	return -1
}

func (b *Builder) afeIndexOfNode(node *dom.Element) int {
	for i := len(b.afe) - 1; i >= 0; i-- {
		if !b.afe[i].marker && b.afe[i].node == node {
			return i
		}
	}
	return -1
}

func (b *Builder) removeAFE(i int) {
	if i < 0 || i >= len(b.afe) {
		return
	}
	b.afe = append(b.afe[:i], b.afe[i+1:]...)
}

func (b *Builder) removeAFEByName(name string) {
	for i := len(b.afe) - 1; i >= 0; i-- {
		if b.afe[i].marker {
			return
		}
		if b.afe[i].name == name {
			b.removeAFE(i)
			return
		}
	}
}

// reconstructFormatting reopens formatting elements whose nodes are no
// longer on the stack, cloning them in list order.
func (b *Builder) reconstructFormatting() {
	if len(b.afe) == 0 {
		return
	}
	last := b.afe[len(b.afe)-1]
	if last.marker || b.stackIndexOf(last.node) >= 0 {
		return
	}

	i := len(b.afe) - 1
	for {
		if i == 0 {
			break
		}
		i--
		e := b.afe[i]
		if e.marker || b.stackIndexOf(e.node) >= 0 {
			i++
			break
		}
	}

	for ; i < len(b.afe); i++ {
		e := b.afe[i]
		el := b.insertElement(e.name, copyAttrs(e.attrs))
		b.afe[i].node = el
	}
}

func copyAttrs(attrs []tokenizer.Attr) []tokenizer.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]tokenizer.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// attrSignature builds an order-independent key over attribute names and
// values for the Noah's Ark comparison.
func attrSignature(attrs []tokenizer.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	vals := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Namespace != "" {
			continue
		}
		if _, seen := vals[a.Name]; !seen {
			keys = append(keys, a.Name)
			vals[a.Name] = a.Value
		}
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(vals[k])
		sb.WriteByte(0)
	}
	return sb.String()
}
