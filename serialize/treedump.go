package serialize

import (
	"sort"
	"strings"

	"github.com/strainhtml/strain/dom"
)

// Tree renders a document in the html5lib tree-construction "document"
// format: one node per line, "| " prefix, two spaces of indent per depth,
// attributes sorted by name, template content under a "content" line.
func Tree(doc *dom.Document) string {
	var sb strings.Builder
	if doc.Doctype != nil {
		writeDumpDoctype(&sb, doc.Doctype)
	}
	for _, child := range doc.Children() {
		writeDumpNode(&sb, child, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// TreeNodes renders a list of nodes (a fragment parse result).
func TreeNodes(nodes []dom.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeDumpNode(&sb, n, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeDumpDoctype(sb *strings.Builder, dt *dom.DocumentType) {
	sb.WriteString("| <!DOCTYPE ")
	if dt.Name == "" {
		sb.WriteString(">")
	} else {
		sb.WriteString(dt.Name)
		if dt.PublicID != "" || dt.SystemID != "" {
			sb.WriteString(" \"")
			sb.WriteString(dt.PublicID)
			sb.WriteString("\" \"")
			sb.WriteString(dt.SystemID)
			sb.WriteString("\">")
		} else {
			sb.WriteString(">")
		}
	}
	sb.WriteByte('\n')
}

func writeDumpNode(sb *strings.Builder, node dom.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *dom.Element:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("<")
		sb.WriteString(dumpTagName(n))
		sb.WriteString(">\n")

		attrs := n.Attrs.All()
		sort.Slice(attrs, func(i, j int) bool {
			return dumpAttrName(attrs[i]) < dumpAttrName(attrs[j])
		})
		for _, a := range attrs {
			sb.WriteString("| ")
			sb.WriteString(indent)
			sb.WriteString("  ")
			sb.WriteString(dumpAttrName(a))
			sb.WriteString("=\"")
			sb.WriteString(a.Value)
			sb.WriteString("\"\n")
		}

		if n.Content != nil {
			sb.WriteString("| ")
			sb.WriteString(strings.Repeat("  ", depth+1))
			sb.WriteString("content\n")
			for _, child := range n.Content.Children() {
				writeDumpNode(sb, child, depth+2)
			}
		}
		for _, child := range n.Children() {
			writeDumpNode(sb, child, depth+1)
		}

	case *dom.Text:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("\"")
		sb.WriteString(n.Data)
		sb.WriteString("\"\n")

	case *dom.Comment:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("<!-- ")
		sb.WriteString(n.Data)
		sb.WriteString(" -->\n")

	case *dom.DocumentType:
		writeDumpDoctype(sb, n)
	}
}

func dumpTagName(el *dom.Element) string {
	switch el.Namespace {
	case "", dom.NamespaceHTML:
		return el.TagName
	case dom.NamespaceSVG:
		return "svg " + el.TagName
	case dom.NamespaceMathML:
		return "math " + el.TagName
	default:
		return el.Namespace + " " + el.TagName
	}
}

func dumpAttrName(a dom.Attribute) string {
	var prefix string
	switch a.Namespace {
	case "":
		return a.Name
	case "http://www.w3.org/1999/xlink":
		prefix = "xlink "
	case "http://www.w3.org/XML/1998/namespace":
		prefix = "xml "
	case "http://www.w3.org/2000/xmlns/":
		prefix = "xmlns "
	default:
		prefix = a.Namespace + " "
	}
	local := a.Name
	if i := strings.IndexByte(local, ':'); i >= 0 {
		local = local[i+1:]
	}
	return prefix + local
}

// ParseTree parses a tree dump back into nodes; it is the inverse of Tree
// and TreeNodes for well-formed dumps, which makes the dump usable as a
// canonical representation in round-trip tests. The returned document has
// the dump's nodes as children (a doctype line populates Doctype).
func ParseTree(dump string) *dom.Document {
	doc := dom.NewDocument()
	type frame struct {
		node  dom.Node
		depth int
	}
	stack := []frame{{node: doc, depth: -1}}

	lines := strings.Split(dump, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "| ") {
			// Continuation of a multi-line text node.
			if len(stack) > 0 {
				if t, ok := lastText(stack[len(stack)-1].node); ok {
					t.Data += "\n" + strings.TrimSuffix(line, "\"")
					if strings.HasSuffix(line, "\"") {
						continue
					}
				}
			}
			continue
		}
		body := line[2:]
		depth := 0
		for strings.HasPrefix(body, "  ") {
			depth++
			body = body[2:]
		}

		for len(stack) > 1 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node

		switch {
		case strings.HasPrefix(body, "<!DOCTYPE"):
			doc.Doctype = parseDumpDoctype(body)
		case strings.HasPrefix(body, "<!-- "):
			data := strings.TrimSuffix(strings.TrimPrefix(body, "<!-- "), " -->")
			parent.AppendChild(dom.NewComment(data))
		case body == "content":
			if el, ok := parent.(*dom.Element); ok {
				if el.Content == nil {
					el.Content = dom.NewFragment()
				}
				stack = append(stack, frame{node: el.Content, depth: depth})
			}
		case strings.HasPrefix(body, "\""):
			data := strings.TrimPrefix(body, "\"")
			data = strings.TrimSuffix(data, "\"")
			parent.AppendChild(dom.NewText(data))
		case strings.HasPrefix(body, "<"):
			name := strings.TrimSuffix(strings.TrimPrefix(body, "<"), ">")
			var el *dom.Element
			switch {
			case strings.HasPrefix(name, "svg "):
				el = dom.NewElementNS(strings.TrimPrefix(name, "svg "), dom.NamespaceSVG)
			case strings.HasPrefix(name, "math "):
				el = dom.NewElementNS(strings.TrimPrefix(name, "math "), dom.NamespaceMathML)
			default:
				el = dom.NewElement(name)
			}
			parent.AppendChild(el)
			stack = append(stack, frame{node: el, depth: depth})
		case strings.Contains(body, "=\""):
			if el, ok := parent.(*dom.Element); ok {
				eq := strings.Index(body, "=\"")
				name := body[:eq]
				value := strings.TrimSuffix(body[eq+2:], "\"")
				setDumpAttr(el, name, value)
			}
		}
	}
	return doc
}

func lastText(parent dom.Node) (*dom.Text, bool) {
	children := parent.Children()
	if len(children) == 0 {
		return nil, false
	}
	t, ok := children[len(children)-1].(*dom.Text)
	return t, ok
}

func setDumpAttr(el *dom.Element, name, value string) {
	switch {
	case strings.HasPrefix(name, "xlink "):
		el.Attrs.SetNS("http://www.w3.org/1999/xlink", "xlink:"+strings.TrimPrefix(name, "xlink "), value)
	case strings.HasPrefix(name, "xml "):
		el.Attrs.SetNS("http://www.w3.org/XML/1998/namespace", "xml:"+strings.TrimPrefix(name, "xml "), value)
	case strings.HasPrefix(name, "xmlns "):
		el.Attrs.SetNS("http://www.w3.org/2000/xmlns/", "xmlns:"+strings.TrimPrefix(name, "xmlns "), value)
	default:
		el.Attrs.SetNS("", name, value)
	}
}

func parseDumpDoctype(body string) *dom.DocumentType {
	body = strings.TrimSuffix(strings.TrimPrefix(body, "<!DOCTYPE"), ">")
	body = strings.TrimPrefix(body, " ")
	if body == "" {
		return dom.NewDocumentType("", "", "")
	}
	if i := strings.Index(body, " \""); i >= 0 {
		name := body[:i]
		rest := body[i+1:]
		parts := strings.SplitN(rest, "\" \"", 2)
		public := strings.Trim(parts[0], "\"")
		system := ""
		if len(parts) == 2 {
			system = strings.Trim(parts[1], "\"")
		}
		return dom.NewDocumentType(name, public, system)
	}
	return dom.NewDocumentType(body, "", "")
}
