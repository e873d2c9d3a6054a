package tokenizer

import (
	"strconv"

	"github.com/strainhtml/strain/internal/tags"
)

// Character reference decoding. Runs collected in the Data/RCDATA text
// modes and attribute values buffer their ampersands and are resolved
// here, realizing the character-reference state family in one pass.

// resolveNumericRef applies the numeric reference replacement rules and
// reports the matching parse errors.
func (z *Tokenizer) resolveNumericRef(digits string, hex bool) rune {
	base := 10
	if hex {
		base = 16
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		// Overflow: anything this long is far outside Unicode.
		z.fail("character-reference-outside-unicode-range")
		return replacementChar
	}
	cp := int(n)
	if r, ok := tags.NumericReplacements[cp]; ok {
		if cp == 0 {
			z.fail("null-character-reference")
		} else {
			z.fail("control-character-reference")
		}
		return r
	}
	switch {
	case cp > 0x10FFFF:
		z.fail("character-reference-outside-unicode-range")
		return replacementChar
	case cp >= 0xD800 && cp <= 0xDFFF:
		z.fail("surrogate-character-reference")
		return replacementChar
	case tags.IsNoncharacter(rune(cp)):
		z.fail("noncharacter-character-reference")
	case tags.IsControl(rune(cp)) && cp != 0x0D:
		z.fail("control-character-reference")
	case cp == 0x0D:
		z.fail("control-character-reference")
	}
	return rune(cp)
}

// decodeRefs decodes the character references in text. The attribute
// context suppresses legacy (semicolon-less) decodes when the reference is
// followed by an alphanumeric or '='.
func (z *Tokenizer) decodeRefs(text string, inAttr bool) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	i := 0

	for i < len(runes) {
		amp := -1
		for j := i; j < len(runes); j++ {
			if runes[j] == '&' {
				amp = j
				break
			}
		}
		if amp < 0 {
			out = append(out, runes[i:]...)
			break
		}
		out = append(out, runes[i:amp]...)
		i = amp

		j := i + 1
		if j < len(runes) && runes[j] == '#' {
			i = z.decodeNumeric(runes, i, &out)
			continue
		}

		// Collect the candidate name.
		for j < len(runes) && tags.IsAlnum(runes[j]) {
			j++
		}
		name := string(runes[i+1 : j])
		hasSemi := j < len(runes) && runes[j] == ';'

		if name == "" {
			out = append(out, '&')
			i++
			continue
		}

		if hasSemi {
			if val, ok := tags.Entities[name]; ok {
				out = append(out, []rune(val)...)
				i = j + 1
				continue
			}
			// A known legacy prefix still decodes in text.
			if !inAttr {
				if pfx, val := longestLegacyPrefix(name); pfx > 0 {
					z.fail("missing-semicolon-after-character-reference")
					out = append(out, []rune(val)...)
					i += 1 + pfx
					continue
				}
			}
			z.fail("unknown-named-character-reference")
			out = append(out, runes[i:j+1]...)
			i = j + 1
			continue
		}

		// No semicolon: only the legacy subset decodes, and never in an
		// attribute when followed by an alphanumeric or '='.
		if tags.LegacyEntities[name] {
			val := tags.Entities[name]
			next := rune(0)
			if j < len(runes) {
				next = runes[j]
			}
			if inAttr && next != 0 && (tags.IsAlnum(next) || next == '=') {
				out = append(out, '&')
				i++
				continue
			}
			z.fail("missing-semicolon-after-character-reference")
			out = append(out, []rune(val)...)
			i = j
			continue
		}
		if pfx, val := longestLegacyPrefix(name); pfx > 0 {
			if inAttr {
				out = append(out, '&')
				i++
				continue
			}
			z.fail("missing-semicolon-after-character-reference")
			out = append(out, []rune(val)...)
			i += 1 + pfx
			continue
		}

		// Unrecognized: the ampersand run stays literal.
		out = append(out, '&')
		i++
	}
	return string(out)
}

// decodeNumeric consumes a "&#..." reference starting at position i and
// returns the next read position.
func (z *Tokenizer) decodeNumeric(runes []rune, i int, out *[]rune) int {
	j := i + 2
	hex := false
	if j < len(runes) && (runes[j] == 'x' || runes[j] == 'X') {
		hex = true
		j++
	}
	start := j
	if hex {
		for j < len(runes) && tags.IsHexDigit(runes[j]) {
			j++
		}
	} else {
		for j < len(runes) && tags.IsDigit(runes[j]) {
			j++
		}
	}
	hasSemi := j < len(runes) && runes[j] == ';'

	digits := string(runes[start:j])
	if digits == "" {
		z.fail("absence-of-digits-in-numeric-character-reference")
		if hasSemi {
			*out = append(*out, runes[i:j+1]...)
			return j + 1
		}
		*out = append(*out, runes[i:j]...)
		return j
	}

	if !hasSemi {
		z.fail("missing-semicolon-after-character-reference")
	}
	*out = append(*out, z.resolveNumericRef(digits, hex))
	if hasSemi {
		return j + 1
	}
	return j
}

// longestLegacyPrefix finds the longest legacy entity that prefixes name.
func longestLegacyPrefix(name string) (int, string) {
	for k := len(name); k > 0; k-- {
		pfx := name[:k]
		if tags.LegacyEntities[pfx] {
			if val, ok := tags.Entities[pfx]; ok {
				return k, val
			}
		}
	}
	return 0, ""
}
