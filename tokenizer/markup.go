package tokenizer

import "github.com/strainhtml/strain/internal/tags"

// Tag, comment, DOCTYPE, and CDATA states.

func (z *Tokenizer) tagOpenState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-before-tag-name")
		z.bufferText('<')
		z.pushEOF()
		return
	}
	switch {
	case c == '!':
		z.state = MarkupDeclarationOpenState
	case c == '/':
		z.state = EndTagOpenState
	case c == '?':
		z.fail("unexpected-question-mark-instead-of-tag-name")
		z.comment = z.comment[:0]
		z.unread()
		z.state = BogusCommentState
	case tags.IsAlpha(c):
		z.startTagToken(StartTag, c)
		z.state = TagNameState
	default:
		z.fail("invalid-first-character-of-tag-name")
		z.bufferText('<')
		z.unread()
		z.state = DataState
	}
}

func (z *Tokenizer) endTagOpenState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-before-tag-name")
		z.bufferText('<')
		z.bufferText('/')
		z.pushEOF()
		return
	}
	switch {
	case c == '>':
		z.fail("missing-end-tag-name")
		z.state = DataState
	case tags.IsAlpha(c):
		z.startTagToken(EndTag, c)
		z.state = TagNameState
	default:
		z.fail("invalid-first-character-of-tag-name")
		z.comment = z.comment[:0]
		z.unread()
		z.state = BogusCommentState
	}
}

func (z *Tokenizer) tagNameState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.pushEOF()
			return
		}
		switch {
		case tags.IsSpace(c):
			z.state = BeforeAttributeNameState
			return
		case c == '/':
			z.state = SelfClosingStartTagState
			return
		case c == '>':
			z.finishAttr()
			if !z.emitTag() {
				z.state = DataState
			}
			return
		case c == 0:
			z.fail("unexpected-null-character")
			z.tagName = append(z.tagName, replacementChar)
		default:
			z.tagName = append(z.tagName, tags.LowerASCII(c))
		}
	}
}

func (z *Tokenizer) beforeAttributeNameState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.pushEOF()
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '/':
			z.finishAttr()
			z.state = SelfClosingStartTagState
			return
		case c == '>':
			z.finishAttr()
			if !z.emitTag() {
				z.state = DataState
			}
			return
		default:
			z.finishAttr()
			z.attrName = z.attrName[:0]
			z.attrValue = z.attrValue[:0]
			z.valueHasAmp = false
			switch {
			case c == 0:
				z.fail("unexpected-null-character")
				c = replacementChar
			case c == '=':
				z.fail("unexpected-equals-sign-before-attribute-name")
			default:
				c = tags.LowerASCII(c)
			}
			z.attrName = append(z.attrName, c)
			z.state = AttributeNameState
			return
		}
	}
}

func (z *Tokenizer) attributeNameState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.pushEOF()
			return
		}
		switch {
		case tags.IsSpace(c):
			z.finishAttr()
			z.state = AfterAttributeNameState
			return
		case c == '/':
			z.finishAttr()
			z.state = SelfClosingStartTagState
			return
		case c == '=':
			z.state = BeforeAttributeValueState
			return
		case c == '>':
			z.finishAttr()
			if !z.emitTag() {
				z.state = DataState
			}
			return
		case c == 0:
			z.fail("unexpected-null-character")
			z.attrName = append(z.attrName, replacementChar)
		default:
			if c == '"' || c == '\'' || c == '<' {
				z.fail("unexpected-character-in-attribute-name")
			}
			z.attrName = append(z.attrName, tags.LowerASCII(c))
		}
	}
}

func (z *Tokenizer) afterAttributeNameState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.pushEOF()
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '/':
			z.finishAttr()
			z.state = SelfClosingStartTagState
			return
		case c == '=':
			z.state = BeforeAttributeValueState
			return
		case c == '>':
			z.finishAttr()
			if !z.emitTag() {
				z.state = DataState
			}
			return
		default:
			z.finishAttr()
			z.attrName = z.attrName[:0]
			z.attrValue = z.attrValue[:0]
			z.valueHasAmp = false
			if c == 0 {
				z.fail("unexpected-null-character")
				c = replacementChar
			} else {
				c = tags.LowerASCII(c)
			}
			z.attrName = append(z.attrName, c)
			z.state = AttributeNameState
			return
		}
	}
}

func (z *Tokenizer) beforeAttributeValueState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.pushEOF()
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '"':
			z.state = AttributeValueDoubleQuotedState
			return
		case c == '\'':
			z.state = AttributeValueSingleQuotedState
			return
		case c == '>':
			z.fail("missing-attribute-value")
			z.finishAttr()
			if !z.emitTag() {
				z.state = DataState
			}
			return
		default:
			z.unread()
			z.state = AttributeValueUnquotedState
			return
		}
	}
}

func (z *Tokenizer) attributeValueQuotedState(quote rune) {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.pushEOF()
			return
		}
		switch c {
		case quote:
			z.state = AfterAttributeValueQuotedState
			return
		case '&':
			z.valueHasAmp = true
			z.attrValue = append(z.attrValue, '&')
		case 0:
			z.fail("unexpected-null-character")
			z.attrValue = append(z.attrValue, replacementChar)
		default:
			z.attrValue = append(z.attrValue, c)
		}
	}
}

func (z *Tokenizer) attributeValueUnquotedState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-tag")
			z.push(Token{Kind: EOF})
			return
		}
		switch {
		case tags.IsSpace(c):
			z.finishAttr()
			z.state = BeforeAttributeNameState
			return
		case c == '>':
			z.finishAttr()
			if !z.emitTag() {
				z.state = DataState
			}
			return
		case c == '&':
			z.valueHasAmp = true
			z.attrValue = append(z.attrValue, '&')
		case c == 0:
			z.fail("unexpected-null-character")
			z.attrValue = append(z.attrValue, replacementChar)
		default:
			if c == '"' || c == '\'' || c == '<' || c == '=' || c == '`' {
				z.fail("unexpected-character-in-unquoted-attribute-value")
			}
			z.attrValue = append(z.attrValue, c)
		}
	}
}

func (z *Tokenizer) afterAttributeValueQuotedState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-tag")
		z.pushEOF()
		return
	}
	switch {
	case tags.IsSpace(c):
		z.finishAttr()
		z.state = BeforeAttributeNameState
	case c == '/':
		z.finishAttr()
		z.state = SelfClosingStartTagState
	case c == '>':
		z.finishAttr()
		if !z.emitTag() {
			z.state = DataState
		}
	default:
		z.fail("missing-whitespace-between-attributes")
		z.finishAttr()
		z.unread()
		z.state = BeforeAttributeNameState
	}
}

func (z *Tokenizer) selfClosingStartTagState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-tag")
		z.pushEOF()
		return
	}
	if c == '>' {
		z.selfClosing = true
		z.finishAttr()
		if !z.emitTag() {
			z.state = DataState
		}
		return
	}
	z.fail("unexpected-solidus-in-tag")
	z.unread()
	z.state = BeforeAttributeNameState
}

func (z *Tokenizer) bogusCommentState() {
	for {
		c, ok := z.next()
		if !ok {
			z.commentAtEOF = true
			z.emitComment()
			z.push(Token{Kind: EOF})
			return
		}
		switch c {
		case '>':
			z.commentAtEOF = false
			z.emitComment()
			z.state = DataState
			return
		case 0:
			z.fail("unexpected-null-character")
			z.comment = append(z.comment, replacementChar)
		default:
			z.comment = append(z.comment, c)
		}
	}
}

func (z *Tokenizer) markupDeclarationOpenState() {
	if z.match("--") {
		z.comment = z.comment[:0]
		z.state = CommentStartState
		return
	}
	if z.matchFold("DOCTYPE") {
		z.doctypeName = z.doctypeName[:0]
		z.doctypePublic = nil
		z.doctypeSystem = nil
		z.forceQuirks = false
		z.state = DoctypeState
		return
	}
	if z.match("[CDATA[") {
		if z.allowCDATA {
			z.state = CDATASectionState
		} else {
			z.fail("cdata-in-html-content")
			z.comment = append(z.comment[:0], []rune("[CDATA[")...)
			z.state = BogusCommentState
		}
		return
	}
	z.fail("incorrectly-opened-comment")
	z.comment = z.comment[:0]
	z.state = BogusCommentState
}

func (z *Tokenizer) commentStartState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-comment")
		z.emitComment()
		z.push(Token{Kind: EOF})
		return
	}
	switch c {
	case '-':
		z.state = CommentStartDashState
	case '>':
		z.fail("abrupt-closing-of-empty-comment")
		z.emitComment()
		z.state = DataState
	case 0:
		z.fail("unexpected-null-character")
		z.comment = append(z.comment, replacementChar)
		z.state = CommentState
	default:
		z.comment = append(z.comment, c)
		z.state = CommentState
	}
}

func (z *Tokenizer) commentStartDashState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-comment")
		z.emitComment()
		z.push(Token{Kind: EOF})
		return
	}
	switch c {
	case '-':
		z.state = CommentEndState
	case '>':
		z.fail("abrupt-closing-of-empty-comment")
		z.emitComment()
		z.state = DataState
	case 0:
		z.fail("unexpected-null-character")
		z.comment = append(z.comment, '-', replacementChar)
		z.state = CommentState
	default:
		z.comment = append(z.comment, '-', c)
		z.state = CommentState
	}
}

func (z *Tokenizer) commentState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-comment")
			z.emitComment()
			z.push(Token{Kind: EOF})
			return
		}
		switch c {
		case '-':
			z.state = CommentEndDashState
			return
		case '<':
			// "<!--" inside a comment is a nested-comment error but
			// stays in the comment text.
			z.comment = append(z.comment, c)
			if n1, ok1 := z.peek(0); ok1 && n1 == '!' {
				if n2, ok2 := z.peek(1); ok2 && n2 == '-' {
					if n3, ok3 := z.peek(2); ok3 && n3 == '-' {
						z.fail("nested-comment")
					}
				}
			}
		case 0:
			z.fail("unexpected-null-character")
			z.comment = append(z.comment, replacementChar)
		default:
			z.comment = append(z.comment, c)
		}
	}
}

func (z *Tokenizer) commentEndDashState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-comment")
		z.emitComment()
		z.push(Token{Kind: EOF})
		return
	}
	switch c {
	case '-':
		z.state = CommentEndState
	case 0:
		z.fail("unexpected-null-character")
		z.comment = append(z.comment, '-', replacementChar)
		z.state = CommentState
	default:
		z.comment = append(z.comment, '-', c)
		z.state = CommentState
	}
}

func (z *Tokenizer) commentEndState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-comment")
		z.emitComment()
		z.push(Token{Kind: EOF})
		return
	}
	switch c {
	case '>':
		z.emitComment()
		z.state = DataState
	case '!':
		z.state = CommentEndBangState
	case '-':
		z.comment = append(z.comment, '-')
	case 0:
		z.fail("unexpected-null-character")
		z.comment = append(z.comment, '-', '-', replacementChar)
		z.state = CommentState
	default:
		z.comment = append(z.comment, '-', '-', c)
		z.state = CommentState
	}
}

func (z *Tokenizer) commentEndBangState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-comment")
		z.emitComment()
		z.push(Token{Kind: EOF})
		return
	}
	switch c {
	case '-':
		z.comment = append(z.comment, '-', '-', '!')
		z.state = CommentEndDashState
	case '>':
		z.fail("incorrectly-closed-comment")
		z.emitComment()
		z.state = DataState
	case 0:
		z.fail("unexpected-null-character")
		z.comment = append(z.comment, '-', '-', '!', replacementChar)
		z.state = CommentState
	default:
		z.comment = append(z.comment, '-', '-', '!', c)
		z.state = CommentState
	}
}

func (z *Tokenizer) doctypeState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-doctype")
		z.forceQuirks = true
		z.emitDoctype()
		z.push(Token{Kind: EOF})
		return
	}
	switch {
	case tags.IsSpace(c):
		z.state = BeforeDoctypeNameState
	case c == '>':
		z.fail("missing-doctype-name")
		z.forceQuirks = true
		z.emitDoctype()
		z.state = DataState
	default:
		z.fail("missing-whitespace-before-doctype-name")
		z.unread()
		z.state = BeforeDoctypeNameState
	}
}

func (z *Tokenizer) beforeDoctypeNameState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '>':
			z.fail("missing-doctype-name")
			z.forceQuirks = true
			z.emitDoctype()
			z.state = DataState
			return
		case c == 0:
			z.fail("unexpected-null-character")
			c = replacementChar
		default:
			c = tags.LowerASCII(c)
		}
		z.doctypeName = append(z.doctypeName, c)
		z.state = DoctypeNameState
		return
	}
}

func (z *Tokenizer) doctypeNameState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		switch {
		case tags.IsSpace(c):
			z.state = AfterDoctypeNameState
			return
		case c == '>':
			z.emitDoctype()
			z.state = DataState
			return
		case c == 0:
			z.fail("unexpected-null-character")
			z.doctypeName = append(z.doctypeName, replacementChar)
		default:
			z.doctypeName = append(z.doctypeName, tags.LowerASCII(c))
		}
	}
}

func (z *Tokenizer) afterDoctypeNameState() {
	if z.matchFold("PUBLIC") {
		z.state = AfterDoctypePublicKeywordState
		return
	}
	if z.matchFold("SYSTEM") {
		z.state = AfterDoctypeSystemKeywordState
		return
	}
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		if tags.IsSpace(c) {
			continue
		}
		if c == '>' {
			z.emitDoctype()
			z.state = DataState
			return
		}
		z.fail("invalid-character-sequence-after-doctype-name")
		z.forceQuirks = true
		z.unread()
		z.state = BogusDoctypeState
		return
	}
}

// afterDoctypeKeywordState handles both "after DOCTYPE public keyword" and
// "after DOCTYPE system keyword"; the two differ only in which identifier
// they start and which error codes they draw.
func (z *Tokenizer) afterDoctypeKeywordState(public bool) {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-doctype")
		z.forceQuirks = true
		z.emitDoctype()
		z.push(Token{Kind: EOF})
		return
	}
	switch {
	case tags.IsSpace(c):
		if public {
			z.state = BeforeDoctypePublicIdentifierState
		} else {
			z.state = BeforeDoctypeSystemIdentifierState
		}
	case c == '"' || c == '\'':
		if public {
			z.fail("missing-whitespace-after-doctype-public-keyword")
		} else {
			z.fail("missing-whitespace-after-doctype-system-keyword")
		}
		z.startDoctypeIdentifier(public)
		z.state = z.doctypeIdentifierStateFor(public, c)
	case c == '>':
		if public {
			z.fail("missing-doctype-public-identifier")
		} else {
			z.fail("missing-doctype-system-identifier")
		}
		z.forceQuirks = true
		z.emitDoctype()
		z.state = DataState
	default:
		if public {
			z.fail("missing-quote-before-doctype-public-identifier")
		} else {
			z.fail("missing-quote-before-doctype-system-identifier")
		}
		z.forceQuirks = true
		z.unread()
		z.state = BogusDoctypeState
	}
}

func (z *Tokenizer) beforeDoctypeIdentifierState(public bool) {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '"' || c == '\'':
			z.startDoctypeIdentifier(public)
			z.state = z.doctypeIdentifierStateFor(public, c)
			return
		case c == '>':
			if public {
				z.fail("missing-doctype-public-identifier")
			} else {
				z.fail("missing-doctype-system-identifier")
			}
			z.forceQuirks = true
			z.emitDoctype()
			z.state = DataState
			return
		default:
			if public {
				z.fail("missing-quote-before-doctype-public-identifier")
			} else {
				z.fail("missing-quote-before-doctype-system-identifier")
			}
			z.forceQuirks = true
			z.unread()
			z.state = BogusDoctypeState
			return
		}
	}
}

func (z *Tokenizer) startDoctypeIdentifier(public bool) {
	empty := []rune{}
	if public {
		z.doctypePublic = &empty
	} else {
		z.doctypeSystem = &empty
	}
}

func (z *Tokenizer) doctypeIdentifierStateFor(public bool, quote rune) State {
	if public {
		if quote == '"' {
			return DoctypePublicIdentifierDoubleQuotedState
		}
		return DoctypePublicIdentifierSingleQuotedState
	}
	if quote == '"' {
		return DoctypeSystemIdentifierDoubleQuotedState
	}
	return DoctypeSystemIdentifierSingleQuotedState
}

func (z *Tokenizer) doctypeIdentifierState(public bool, quote rune) {
	ident := z.doctypeSystem
	if public {
		ident = z.doctypePublic
	}
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		switch c {
		case quote:
			if public {
				z.state = AfterDoctypePublicIdentifierState
			} else {
				z.state = AfterDoctypeSystemIdentifierState
			}
			return
		case '>':
			if public {
				z.fail("abrupt-doctype-public-identifier")
			} else {
				z.fail("abrupt-doctype-system-identifier")
			}
			z.forceQuirks = true
			z.emitDoctype()
			z.state = DataState
			return
		case 0:
			z.fail("unexpected-null-character")
			c = replacementChar
		}
		*ident = append(*ident, c)
	}
}

func (z *Tokenizer) afterDoctypePublicIdentifierState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-doctype")
		z.forceQuirks = true
		z.emitDoctype()
		z.push(Token{Kind: EOF})
		return
	}
	switch {
	case tags.IsSpace(c):
		z.state = BetweenDoctypePublicAndSystemIdentifiersState
	case c == '>':
		z.emitDoctype()
		z.state = DataState
	case c == '"' || c == '\'':
		z.fail("missing-whitespace-between-doctype-public-and-system-identifiers")
		z.startDoctypeIdentifier(false)
		z.state = z.doctypeIdentifierStateFor(false, c)
	default:
		z.fail("missing-quote-before-doctype-system-identifier")
		z.forceQuirks = true
		z.unread()
		z.state = BogusDoctypeState
	}
}

func (z *Tokenizer) betweenDoctypeIdentifiersState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '>':
			z.emitDoctype()
			z.state = DataState
			return
		case c == '"' || c == '\'':
			z.startDoctypeIdentifier(false)
			z.state = z.doctypeIdentifierStateFor(false, c)
			return
		default:
			z.fail("missing-quote-before-doctype-system-identifier")
			z.forceQuirks = true
			z.unread()
			z.state = BogusDoctypeState
			return
		}
	}
}

func (z *Tokenizer) afterDoctypeSystemIdentifierState() {
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-doctype")
			z.forceQuirks = true
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		switch {
		case tags.IsSpace(c):
			continue
		case c == '>':
			z.emitDoctype()
			z.state = DataState
			return
		default:
			z.fail("unexpected-character-after-doctype-system-identifier")
			z.unread()
			z.state = BogusDoctypeState
			return
		}
	}
}

func (z *Tokenizer) bogusDoctypeState() {
	for {
		c, ok := z.next()
		if !ok {
			z.emitDoctype()
			z.push(Token{Kind: EOF})
			return
		}
		if c == '>' {
			z.emitDoctype()
			z.state = DataState
			return
		}
		if c == 0 {
			z.fail("unexpected-null-character")
		}
	}
}

func (z *Tokenizer) cdataSectionState() {
	z.textMode = CDATASectionState
	for {
		c, ok := z.next()
		if !ok {
			z.fail("eof-in-cdata")
			z.pushEOF()
			return
		}
		if c == ']' {
			z.state = CDATASectionBracketState
			return
		}
		z.bufferText(c)
	}
}

func (z *Tokenizer) cdataSectionBracketState() {
	c, ok := z.next()
	if !ok {
		z.fail("eof-in-cdata")
		z.bufferText(']')
		z.pushEOF()
		return
	}
	if c == ']' {
		z.state = CDATASectionEndState
		return
	}
	z.bufferText(']')
	z.unread()
	z.state = CDATASectionState
}

func (z *Tokenizer) cdataSectionEndState() {
	c, ok := z.next()
	if ok && c == '>' {
		z.flushText()
		z.state = DataState
		return
	}
	z.bufferText(']')
	if !ok {
		z.bufferText(']')
		z.fail("eof-in-cdata")
		z.pushEOF()
		return
	}
	if c == ']' {
		return
	}
	z.bufferText(']')
	z.unread()
	z.state = CDATASectionState
}
