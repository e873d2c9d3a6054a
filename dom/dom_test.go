package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/stretchr/testify/require"
)

func TestElementBasics(t *testing.T) {
	el := NewElement("DIV")
	require.Equal(t, "div", el.TagName)
	require.Equal(t, tags.Div, el.ID)
	require.True(t, el.IsHTML())
	require.True(t, el.Is(tags.Div))

	svg := NewElementNS("foreignObject", NamespaceSVG)
	require.Equal(t, "foreignObject", svg.TagName)
	require.False(t, svg.IsHTML())
	require.False(t, svg.Is(tags.Div))
}

func TestChildManagement(t *testing.T) {
	parent := NewElement("ul")
	a := NewElement("li")
	b := NewElement("li")
	c := NewElement("li")

	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertBefore(b, c)

	require.Equal(t, []Node{a, b, c}, parent.Children())
	for _, child := range parent.Children() {
		require.Same(t, parent, child.Parent().(*Element))
	}

	parent.RemoveChild(b)
	require.Equal(t, []Node{a, c}, parent.Children())
	require.Nil(t, b.Parent())

	d := NewElement("li")
	old := parent.ReplaceChild(d, c)
	require.Same(t, c, old)
	require.Equal(t, []Node{a, d}, parent.Children())
	require.Nil(t, c.Parent())

	// A nil reference appends; a missing reference appends too.
	parent.InsertBefore(c, nil)
	require.Equal(t, []Node{a, d, c}, parent.Children())
}

func TestLeafNodesIgnoreChildren(t *testing.T) {
	txt := NewText("x")
	txt.AppendChild(NewText("y"))
	require.False(t, txt.HasChildNodes())
	require.Nil(t, txt.Children())

	comment := NewComment("c")
	comment.AppendChild(NewText("y"))
	require.False(t, comment.HasChildNodes())
}

func TestAttributesOrderAndSemantics(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("B", "1")
	attrs.Set("a", "2")
	attrs.Set("c", "")

	var names []string
	for _, a := range attrs.All() {
		names = append(names, a.Name)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, names); diff != "" {
		t.Fatalf("insertion order not preserved (-want +got):\n%s", diff)
	}

	// Present-but-empty is distinct from absent.
	v, ok := attrs.Get("c")
	require.True(t, ok)
	require.Equal(t, "", v)
	_, ok = attrs.Get("missing")
	require.False(t, ok)

	// Overwrite keeps position.
	attrs.Set("b", "9")
	require.Equal(t, "9", attrs.All()[0].Value)
	require.Equal(t, 3, attrs.Len())

	attrs.Remove("a")
	require.Equal(t, 2, attrs.Len())
}

func TestNamespacedAttributes(t *testing.T) {
	attrs := NewAttributes()
	attrs.SetNS("http://www.w3.org/1999/xlink", "xlink:href", "#x")
	attrs.SetNS("", "href", "plain")

	v, ok := attrs.GetNS("http://www.w3.org/1999/xlink", "xlink:href")
	require.True(t, ok)
	require.Equal(t, "#x", v)

	// The plain lookup must not see the namespaced attribute.
	v, ok = attrs.Get("href")
	require.True(t, ok)
	require.Equal(t, "plain", v)
}

func TestCloneDeep(t *testing.T) {
	el := NewElement("div")
	el.SetAttr("id", "a")
	child := NewElement("span")
	child.AppendChild(NewText("x"))
	el.AppendChild(child)

	tpl := NewElement("template")
	tpl.Content = NewFragment()
	tpl.Content.AppendChild(NewText("inside"))
	el.AppendChild(tpl)

	clone := el.Clone(true).(*Element)
	require.Nil(t, clone.Parent())
	require.Equal(t, "a", clone.Attr("id"))
	require.Len(t, clone.Children(), 2)
	require.NotSame(t, child, clone.Children()[0])
	require.Equal(t, "x", clone.Children()[0].(*Element).Text())
	require.NotNil(t, clone.Children()[1].(*Element).Content)
	require.Equal(t, "inside", clone.Children()[1].(*Element).Content.Children()[0].(*Text).Data)

	shallow := el.Clone(false).(*Element)
	require.Empty(t, shallow.Children())
}

func TestTextAndCollapsedText(t *testing.T) {
	div := NewElement("div")
	p1 := NewElement("p")
	p1.AppendChild(NewText("one"))
	p2 := NewElement("p")
	strong := NewElement("strong")
	strong.AppendChild(NewText("Hello"))
	p2.AppendChild(strong)
	p2.AppendChild(NewText(", World!"))
	div.AppendChild(p1)
	div.AppendChild(p2)

	require.Equal(t, "oneHello, World!", div.Text())
	// Block siblings get a separator; inline boundaries do not.
	require.Equal(t, "one Hello, World!", div.CollapsedText())
}

func TestDocumentHelpers(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	head := NewElement("head")
	title := NewElement("title")
	title.AppendChild(NewText("Hi"))
	head.AppendChild(title)
	body := NewElement("body")
	html.AppendChild(head)
	html.AppendChild(body)
	doc.AppendChild(html)

	require.Same(t, html, doc.DocumentElement())
	require.Same(t, head, doc.Head())
	require.Same(t, body, doc.Body())
	require.Equal(t, "Hi", doc.Title())
}
