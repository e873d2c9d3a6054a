package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Token-stream serialization for the html5lib serializer fixtures, whose
// inputs are JSON token arrays (["StartTag", ns, name, attrs], ...).

var (
	ErrUnknownTokenKind   = errors.New("unknown token kind")
	ErrMalformedToken     = errors.New("malformed token")
	errShortStartTag      = errors.New("StartTag token needs at least 3 elements")
	errShortEndTag        = errors.New("EndTag token needs at least 3 elements")
	errShortEmptyTag      = errors.New("EmptyTag token needs at least 2 elements")
	errShortCharacters    = errors.New("Characters token needs at least 2 elements")
	errShortComment       = errors.New("Comment token needs at least 2 elements")
	errShortDoctypeToken  = errors.New("Doctype token needs at least 2 elements")
)

type tokenAttr struct {
	Namespace string
	Name      string
	Value     string
}

// TokenOptions mirror Options for the token-stream path.
type TokenOptions struct {
	QuoteChar                 rune
	QuoteAttrValues           string
	UseTrailingSolidus        bool
	MinimizeBooleanAttributes bool
	EscapeLtInAttrs           bool
	EscapeRcdata              bool
	StripWhitespace           bool
	OmitOptionalTags          bool
	InjectMetaCharset         bool
	Encoding                  string
}

// DefaultTokenOptions match the html5lib serializer defaults.
func DefaultTokenOptions() TokenOptions {
	return TokenOptions{
		QuoteChar:                 '"',
		MinimizeBooleanAttributes: true,
		OmitOptionalTags:          true,
	}
}

// Tokens serializes a fixture token stream with the default options.
func Tokens(stream []json.RawMessage) (string, error) {
	return TokensWithOptions(stream, DefaultTokenOptions())
}

type tokenStream struct {
	raw []json.RawMessage
}

type streamToken struct {
	kind  string
	tag   string
	attrs json.RawMessage
	data  string
	arr   []json.RawMessage
}

func (s *tokenStream) at(i int) (streamToken, bool) {
	if i < 0 || i >= len(s.raw) {
		return streamToken{}, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(s.raw[i], &arr); err != nil || len(arr) == 0 {
		return streamToken{}, false
	}
	var t streamToken
	t.arr = arr
	if json.Unmarshal(arr[0], &t.kind) != nil {
		return streamToken{}, false
	}
	switch t.kind {
	case "StartTag", "EndTag":
		if len(arr) > 2 {
			_ = json.Unmarshal(arr[2], &t.tag)
		}
		if len(arr) > 3 {
			t.attrs = arr[3]
		}
	case "EmptyTag":
		if len(arr) > 1 {
			_ = json.Unmarshal(arr[1], &t.tag)
		}
		if len(arr) > 2 {
			t.attrs = arr[2]
		}
	case "Characters", "Comment":
		if len(arr) > 1 {
			_ = json.Unmarshal(arr[1], &t.data)
		}
	}
	return t, true
}

// TokensWithOptions serializes a fixture token stream.
func TokensWithOptions(stream []json.RawMessage, opts TokenOptions) (string, error) {
	if opts.QuoteChar == 0 {
		opts.QuoteChar = '"'
	}
	s := &tokenStream{raw: stream}
	var sb strings.Builder
	rawDepth := 0
	preDepth := 0
	inHead := false
	headCovered := false
	injected := false

	for i := range stream {
		t, ok := s.at(i)
		if !ok {
			return "", ErrMalformedToken
		}

		if inHead && opts.InjectMetaCharset && opts.Encoding != "" &&
			!headCovered && !injected && t.kind == "EndTag" && t.tag == "head" {
			writeInjectedMeta(&sb, opts)
			injected = true
		}

		var err error
		switch t.kind {
		case "StartTag":
			err = writeStartTagToken(&sb, s, i, t, opts)
			if err == nil {
				switch {
				case t.tag == "head":
					inHead = true
					injected = false
					if opts.InjectMetaCharset && opts.Encoding != "" {
						headCovered = streamHasCharsetMeta(s, i)
						if !headCovered {
							writeInjectedMeta(&sb, opts)
							injected = true
						}
					}
				case t.tag == "pre" || t.tag == "textarea":
					preDepth++
				}
				if rawTextTag(t.tag) {
					rawDepth++
				}
			}
		case "EndTag":
			err = writeEndTagToken(&sb, s, i, t, opts)
			if err == nil {
				switch {
				case t.tag == "head":
					inHead = false
					headCovered = false
					injected = false
				case (t.tag == "pre" || t.tag == "textarea") && preDepth > 0:
					preDepth--
				}
				if rawTextTag(t.tag) && rawDepth > 0 {
					rawDepth--
				}
			}
		case "EmptyTag":
			err = writeEmptyTagToken(&sb, t, opts)
		case "Characters":
			err = writeCharactersToken(&sb, t, rawDepth > 0, preDepth > 0, opts)
		case "Comment":
			err = writeCommentToken(&sb, t)
		case "Doctype":
			err = writeDoctypeToken(&sb, t)
		default:
			return "", fmt.Errorf("%w: %s", ErrUnknownTokenKind, t.kind)
		}
		if err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func writeInjectedMeta(sb *strings.Builder, opts TokenOptions) {
	sb.WriteString("<meta charset=")
	sb.WriteString(opts.Encoding)
	sb.WriteByte('>')
}

func streamHasCharsetMeta(s *tokenStream, headIdx int) bool {
	for i := headIdx + 1; ; i++ {
		t, ok := s.at(i)
		if !ok {
			return false
		}
		if t.kind == "EndTag" && t.tag == "head" {
			return false
		}
		if (t.kind == "StartTag" || t.kind == "EmptyTag") && t.tag == "meta" {
			attrs, err := decodeTokenAttrs(t.attrs)
			if err != nil {
				continue
			}
			for _, a := range attrs {
				lower := strings.ToLower(a.Name)
				if lower == "charset" {
					return true
				}
				if lower == "http-equiv" && strings.EqualFold(a.Value, "content-type") {
					return true
				}
			}
		}
	}
}

func writeStartTagToken(sb *strings.Builder, s *tokenStream, i int, t streamToken, opts TokenOptions) error {
	if len(t.arr) < 3 {
		return errShortStartTag
	}
	if opts.OmitOptionalTags && omitStartTag(s, i, t) {
		return nil
	}
	sb.WriteByte('<')
	sb.WriteString(t.tag)
	if t.attrs != nil {
		if err := writeTokenAttrs(sb, t.attrs, t.tag, opts); err != nil {
			return err
		}
	}
	if opts.UseTrailingSolidus && voidTag(t.tag) {
		sb.WriteString(" /")
	}
	sb.WriteByte('>')
	return nil
}

func writeEndTagToken(sb *strings.Builder, s *tokenStream, i int, t streamToken, opts TokenOptions) error {
	if len(t.arr) < 3 {
		return errShortEndTag
	}
	if opts.OmitOptionalTags && omitEndTag(s, i, t.tag) {
		return nil
	}
	sb.WriteString("</")
	sb.WriteString(t.tag)
	sb.WriteByte('>')
	return nil
}

func writeEmptyTagToken(sb *strings.Builder, t streamToken, opts TokenOptions) error {
	if len(t.arr) < 2 {
		return errShortEmptyTag
	}
	sb.WriteByte('<')
	sb.WriteString(t.tag)
	if t.attrs != nil {
		if err := writeTokenAttrs(sb, t.attrs, t.tag, opts); err != nil {
			return err
		}
	}
	if opts.UseTrailingSolidus {
		sb.WriteString(" /")
	}
	sb.WriteByte('>')
	return nil
}

func writeCharactersToken(sb *strings.Builder, t streamToken, inRaw, inPre bool, opts TokenOptions) error {
	if len(t.arr) < 2 {
		return errShortCharacters
	}
	data := t.data
	if opts.StripWhitespace && !inRaw && !inPre {
		data = collapseSpace(data)
	}
	if inRaw && !opts.EscapeRcdata {
		sb.WriteString(data)
		return nil
	}
	for _, r := range data {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return nil
}

func writeCommentToken(sb *strings.Builder, t streamToken) error {
	if len(t.arr) < 2 {
		return errShortComment
	}
	sb.WriteString("<!--")
	sb.WriteString(t.data)
	sb.WriteString("-->")
	return nil
}

func writeDoctypeToken(sb *strings.Builder, t streamToken) error {
	if len(t.arr) < 2 {
		return errShortDoctypeToken
	}
	var name, public, system string
	_ = json.Unmarshal(t.arr[1], &name)
	if len(t.arr) > 2 {
		_ = json.Unmarshal(t.arr[2], &public)
	}
	if len(t.arr) > 3 {
		_ = json.Unmarshal(t.arr[3], &system)
	}
	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(name)
	if public != "" {
		sb.WriteString(" PUBLIC \"")
		sb.WriteString(public)
		sb.WriteByte('"')
		if system != "" {
			sb.WriteString(" \"")
			sb.WriteString(system)
			sb.WriteByte('"')
		}
	} else if system != "" {
		sb.WriteString(" SYSTEM \"")
		sb.WriteString(system)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return nil
}

func writeTokenAttrs(sb *strings.Builder, raw json.RawMessage, tag string, opts TokenOptions) error {
	attrs, err := decodeTokenAttrs(raw)
	if err != nil {
		return err
	}
	if opts.InjectMetaCharset && opts.Encoding != "" && tag == "meta" {
		for i := range attrs {
			switch strings.ToLower(attrs[i].Name) {
			case "charset":
				attrs[i].Value = opts.Encoding
			case "content":
				lower := strings.ToLower(attrs[i].Value)
				if idx := strings.Index(lower, "charset="); idx >= 0 {
					attrs[i].Value = attrs[i].Value[:idx] + "charset=" + opts.Encoding
				}
			}
		}
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		writeTokenAttrValue(sb, a.Name, a.Value, opts)
	}
	return nil
}

// decodeTokenAttrs accepts both fixture attribute shapes: a list of
// {namespace, name, value} objects or a plain name→value object.
func decodeTokenAttrs(raw json.RawMessage) ([]tokenAttr, error) {
	if raw == nil {
		return nil, nil
	}
	var list []struct {
		Namespace *string `json:"namespace"`
		Name      string  `json:"name"`
		Value     string  `json:"value"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]tokenAttr, 0, len(list))
		for _, a := range list {
			ns := ""
			if a.Namespace != nil {
				ns = *a.Namespace
			}
			out = append(out, tokenAttr{Namespace: ns, Name: a.Name, Value: a.Value})
		}
		return out, nil
	}
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]tokenAttr, 0, len(keys))
		for _, k := range keys {
			out = append(out, tokenAttr{Name: k, Value: obj[k]})
		}
		return out, nil
	}
	return nil, ErrMalformedToken
}

func writeTokenAttrValue(sb *strings.Builder, name, value string, opts TokenOptions) {
	if opts.MinimizeBooleanAttributes && (value == "" || value == name) {
		return
	}
	if value == "" {
		sb.WriteString("=\"\"")
		return
	}

	if opts.QuoteChar == '\'' {
		sb.WriteString("='")
		for _, r := range value {
			switch r {
			case '\'':
				sb.WriteString("&#39;")
			case '&':
				sb.WriteString("&amp;")
			default:
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('\'')
		return
	}

	hasDouble := strings.ContainsRune(value, '"')
	hasSingle := strings.ContainsRune(value, '\'')
	switch {
	case opts.QuoteAttrValues != "always" && !needsQuoting(value):
		sb.WriteByte('=')
		sb.WriteString(value)
	case hasDouble && !hasSingle:
		sb.WriteString("='")
		for _, r := range value {
			if r == '&' {
				sb.WriteString("&amp;")
			} else {
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('\'')
	default:
		sb.WriteString("=\"")
		for _, r := range value {
			switch {
			case r == '"':
				sb.WriteString("&quot;")
			case r == '&':
				sb.WriteString("&amp;")
			case r == '<' && opts.EscapeLtInAttrs:
				sb.WriteString("&lt;")
			default:
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('"')
	}
}

func rawTextTag(tag string) bool {
	switch tag {
	case "script", "style", "xmp", "iframe", "noembed", "noframes", "plaintext":
		return true
	}
	return false
}

func voidTag(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func tokenHasAttrs(t streamToken) bool {
	attrs, err := decodeTokenAttrs(t.attrs)
	return err == nil && len(attrs) > 0
}

func nextStartsWithSpace(s *tokenStream, i int) bool {
	t, ok := s.at(i + 1)
	if !ok || t.kind != "Characters" || t.data == "" {
		return false
	}
	return startsWithSpace(t.data)
}

// omitStartTag implements the optional start tags.
func omitStartTag(s *tokenStream, i int, t streamToken) bool {
	if tokenHasAttrs(t) {
		return false
	}
	next, _ := s.at(i + 1)
	switch t.tag {
	case "html", "body":
		if next.kind == "Comment" {
			return false
		}
		if next.kind == "Characters" && nextStartsWithSpace(s, i) {
			return false
		}
		return true
	case "head":
		return next.kind == "StartTag" || next.kind == "EmptyTag" || next.kind == "EndTag"
	case "colgroup":
		return (next.kind == "StartTag" || next.kind == "EmptyTag") && next.tag == "col"
	case "tbody":
		if next.kind == "StartTag" && next.tag == "tr" {
			prev, _ := s.at(i - 1)
			return prev.kind == "StartTag" && prev.tag == "table"
		}
		return false
	}
	return false
}

// omitEndTag implements the optional end tags.
func omitEndTag(s *tokenStream, i int, tag string) bool {
	next, ok := s.at(i + 1)
	atEnd := !ok
	nextStart := next.kind == "StartTag" || next.kind == "EmptyTag"
	switch tag {
	case "html", "head", "body":
		if next.kind == "Comment" {
			return false
		}
		if next.kind == "Characters" && nextStartsWithSpace(s, i) {
			return false
		}
		return true
	case "li":
		return atEnd || next.kind == "EndTag" || (nextStart && next.tag == "li")
	case "dt":
		return nextStart && (next.tag == "dt" || next.tag == "dd")
	case "dd":
		return atEnd || next.kind == "EndTag" ||
			(nextStart && (next.tag == "dd" || next.tag == "dt"))
	case "p":
		if atEnd || next.kind == "EndTag" {
			return true
		}
		return nextStart && pClosers[next.tag]
	case "optgroup":
		return atEnd || next.kind == "EndTag" || (nextStart && next.tag == "optgroup")
	case "option":
		return atEnd || next.kind == "EndTag" ||
			(nextStart && (next.tag == "option" || next.tag == "optgroup"))
	case "colgroup":
		if next.kind == "Comment" || (next.kind == "Characters" && nextStartsWithSpace(s, i)) {
			return false
		}
		return !(nextStart && next.tag == "colgroup")
	case "thead":
		return nextStart && (next.tag == "tbody" || next.tag == "tfoot")
	case "tbody":
		return atEnd || next.kind == "EndTag" ||
			(nextStart && (next.tag == "tbody" || next.tag == "tfoot"))
	case "tfoot":
		return atEnd || next.kind == "EndTag" || (nextStart && next.tag == "tbody")
	case "tr":
		return atEnd || next.kind == "EndTag" || (nextStart && next.tag == "tr")
	case "td", "th":
		return atEnd || next.kind == "EndTag" ||
			(nextStart && (next.tag == "td" || next.tag == "th"))
	}
	return false
}
