package encoding

import "bytes"

// prescan looks for a <meta charset> declaration in roughly the first
// kilobyte of the stream, per the "prescan a byte stream to determine its
// encoding" algorithm. Comments may be skipped in full even when they run
// past the window; a hard cap bounds the total work.
const (
	prescanWindow = 1024
	prescanCap    = 65536
)

func isSpaceByte(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isAlphaByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func skipSpaceBytes(data []byte, i int) int {
	for i < len(data) && isSpaceByte(data[i]) {
		i++
	}
	return i
}

func trimSpaceBytes(v []byte) []byte {
	lo, hi := 0, len(v)
	for lo < hi && isSpaceByte(v[lo]) {
		lo++
	}
	for hi > lo && isSpaceByte(v[hi-1]) {
		hi--
	}
	return v[lo:hi]
}

func prescan(data []byte) *Encoding {
	n := len(data)
	i := 0
	seen := 0

	for i < n && i < prescanCap && seen < prescanWindow {
		if data[i] != '<' {
			i++
			seen++
			continue
		}

		// <!-- ... --> is skipped without charging the window.
		if bytes.HasPrefix(data[i+1:], []byte("!--")) {
			end := bytes.Index(data[i+4:], []byte("-->"))
			if end < 0 {
				return nil
			}
			i += 4 + end + 3
			continue
		}

		// </x ...> and non-meta tags are skipped attribute-blind,
		// honouring quotes.
		j := i + 1
		isEndTag := j < n && data[j] == '/'
		if isEndTag {
			j++
		}
		nameStart := j
		for j < n && isAlphaByte(data[j]) {
			j++
		}
		name := data[nameStart:j]
		if isEndTag || !bytes.EqualFold(name, []byte("meta")) {
			i, seen = skipTag(data, i, seen)
			continue
		}

		enc, after, closed := scanMetaTag(data, j)
		if enc != nil {
			return enc
		}
		if !closed {
			i++
			seen++
			continue
		}
		seen += after - i
		i = after
	}
	return nil
}

// skipTag advances past a tag whose attributes are irrelevant, tracking
// quotes so '>' inside a quoted value does not end it.
func skipTag(data []byte, i, seen int) (int, int) {
	var quote byte
	for i < len(data) && i < prescanCap && seen < prescanWindow {
		b := data[i]
		i++
		seen++
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '"', '\'':
			quote = b
		case '>':
			return i, seen
		}
	}
	return i, seen
}

// scanMetaTag parses the attributes of a <meta ...> tag starting after the
// tag name. It returns the declared encoding (if a legible declaration is
// present), the position just past the tag, and whether '>' was found.
func scanMetaTag(data []byte, i int) (*Encoding, int, bool) {
	var charset, httpEquiv, content []byte
	n := len(data)

	for i < n && i < prescanCap {
		b := data[i]
		if b == '>' {
			i++
			if charset != nil {
				if enc := metaDeclared(trimSpaceBytes(charset)); enc != nil {
					return enc, i, true
				}
			}
			if bytes.EqualFold(httpEquiv, []byte("content-type")) && content != nil {
				if cs := charsetFromContent(content); cs != nil {
					if enc := metaDeclared(cs); enc != nil {
						return enc, i, true
					}
				}
			}
			return nil, i, true
		}
		if b == '<' {
			return nil, i, false
		}
		if isSpaceByte(b) || b == '/' {
			i++
			continue
		}

		nameStart := i
		for i < n {
			b = data[i]
			if isSpaceByte(b) || b == '=' || b == '>' || b == '<' || b == '/' {
				break
			}
			i++
		}
		name := bytes.ToLower(data[nameStart:i])
		i = skipSpaceBytes(data, i)

		var value []byte
		if i < n && data[i] == '=' {
			i = skipSpaceBytes(data, i+1)
			if i >= n {
				break
			}
			if q := data[i]; q == '"' || q == '\'' {
				i++
				end := bytes.IndexByte(data[i:], q)
				if end < 0 {
					return nil, i, false
				}
				value = data[i : i+end]
				i += end + 1
			} else {
				start := i
				for i < n {
					b = data[i]
					if isSpaceByte(b) || b == '>' || b == '<' {
						break
					}
					i++
				}
				value = data[start:i]
			}
		}

		switch {
		case bytes.Equal(name, []byte("charset")) && charset == nil:
			charset = value
		case bytes.Equal(name, []byte("http-equiv")) && httpEquiv == nil:
			httpEquiv = value
		case bytes.Equal(name, []byte("content")) && content == nil:
			content = value
		}
	}
	return nil, i, false
}

// charsetFromContent extracts the charset parameter from a Content-Type
// style attribute value, honouring optional quotes.
func charsetFromContent(content []byte) []byte {
	lower := bytes.ToLower(content)
	idx := bytes.Index(lower, []byte("charset"))
	if idx < 0 {
		return nil
	}
	i := skipSpaceBytes(content, idx+len("charset"))
	if i >= len(content) || content[i] != '=' {
		return nil
	}
	i = skipSpaceBytes(content, i+1)
	if i >= len(content) {
		return nil
	}
	if q := content[i]; q == '"' || q == '\'' {
		i++
		end := bytes.IndexByte(content[i:], q)
		if end < 0 {
			return nil
		}
		return content[i : i+end]
	}
	start := i
	for i < len(content) && !isSpaceByte(content[i]) && content[i] != ';' {
		i++
	}
	return content[start:i]
}
