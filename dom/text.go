package dom

// Text is a text node. Text nodes never have children.
type Text struct {
	leaf

	Data string
}

// NewText creates a text node.
func NewText(data string) *Text { return &Text{Data: data} }

// Type implements Node.
func (t *Text) Type() NodeType { return TextNodeType }

// Clone implements Node.
func (t *Text) Clone(bool) Node { return &Text{Data: t.Data} }

// Comment is a comment node holding the text between <!-- and -->.
type Comment struct {
	leaf

	Data string
}

// NewComment creates a comment node.
func NewComment(data string) *Comment { return &Comment{Data: data} }

// Type implements Node.
func (c *Comment) Type() NodeType { return CommentNodeType }

// Clone implements Node.
func (c *Comment) Clone(bool) Node { return &Comment{Data: c.Data} }
