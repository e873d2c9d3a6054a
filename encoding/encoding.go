// Package encoding implements the HTML5 encoding sniffing algorithm and
// the byte-to-text decoders the parser needs.
package encoding

import (
	"strings"
)

// Confidence states how sure the sniffer is about its choice.
type Confidence int

const (
	// Irrelevant: the input was already text, no sniffing happened.
	Irrelevant Confidence = iota
	// Tentative: chosen by meta prescan or fallback.
	Tentative
	// Certain: chosen by BOM or transport layer.
	Certain
)

// String returns the confidence name.
func (c Confidence) String() string {
	switch c {
	case Certain:
		return "certain"
	case Tentative:
		return "tentative"
	default:
		return "irrelevant"
	}
}

// Encoding is a recognized character encoding.
type Encoding struct {
	// Name is the canonical WHATWG label.
	Name string

	// Labels are the aliases that normalize to this encoding.
	Labels []string
}

// The encodings the sniffer can name. Decoding support is exact for the
// UTF and single-byte families; the CJK multi-byte encodings decode ASCII
// transparently and substitute U+FFFD for multi-byte units.
var (
	UTF8 = &Encoding{Name: "utf-8", Labels: []string{
		"utf-8", "utf8", "unicode-1-1-utf-8", "unicode11utf8",
		"unicode20utf8", "x-unicode20utf8",
	}}
	UTF16LE = &Encoding{Name: "utf-16le", Labels: []string{
		"utf-16", "utf16", "utf-16le", "utf16le", "unicode",
		"unicodefeff", "ucs-2", "iso-10646-ucs-2", "csunicode",
	}}
	UTF16BE = &Encoding{Name: "utf-16be", Labels: []string{
		"utf-16be", "utf16be", "unicodefffe",
	}}
	Windows1252 = &Encoding{Name: "windows-1252", Labels: []string{
		"windows-1252", "windows1252", "cp1252", "x-cp1252", "ascii",
		"us-ascii", "ansi_x3.4-1968", "iso-8859-1", "iso8859-1",
		"iso88591", "iso_8859-1", "iso_8859-1:1987", "iso-ir-100",
		"csisolatin1", "latin1", "l1", "cp819", "ibm819",
	}}
	Windows1250 = &Encoding{Name: "windows-1250", Labels: []string{
		"windows-1250", "cp1250", "x-cp1250",
	}}
	Windows1251 = &Encoding{Name: "windows-1251", Labels: []string{
		"windows-1251", "cp1251", "x-cp1251",
	}}
	Windows1254 = &Encoding{Name: "windows-1254", Labels: []string{
		"windows-1254", "cp1254", "x-cp1254", "iso-8859-9", "iso8859-9",
		"iso88599", "iso_8859-9", "iso_8859-9:1989", "iso-ir-148",
		"csisolatin5", "latin5", "l5",
	}}
	ISO88592 = &Encoding{Name: "iso-8859-2", Labels: []string{
		"iso-8859-2", "iso8859-2", "iso88592", "iso_8859-2",
		"iso_8859-2:1987", "iso-ir-101", "csisolatin2", "latin2", "l2",
	}}
	ISO885915 = &Encoding{Name: "iso-8859-15", Labels: []string{
		"iso-8859-15", "iso8859-15", "iso885915", "iso_8859-15",
		"csisolatin9", "l9",
	}}
	ShiftJIS = &Encoding{Name: "shift_jis", Labels: []string{
		"shift_jis", "shift-jis", "sjis", "x-sjis", "ms932", "ms_kanji",
		"windows-31j", "csshiftjis",
	}}
	EUCJP = &Encoding{Name: "euc-jp", Labels: []string{
		"euc-jp", "eucjp", "x-euc-jp", "cseucpkdfmtjapanese",
	}}
	EUCKR = &Encoding{Name: "euc-kr", Labels: []string{
		"euc-kr", "euckr", "cseuckr", "korean", "windows-949",
		"ks_c_5601-1987", "ks_c_5601-1989", "ksc5601", "ksc_5601",
		"iso-ir-149", "csksc56011987",
	}}
	GB18030 = &Encoding{Name: "gb18030", Labels: []string{
		"gb18030", "gbk", "gb2312", "gb_2312", "gb_2312-80", "x-gbk",
		"chinese", "csgb2312", "csiso58gb231280", "iso-ir-58",
	}}
	Big5 = &Encoding{Name: "big5", Labels: []string{
		"big5", "big5-hkscs", "cn-big5", "x-x-big5", "csbig5",
	}}
	XUserDefined = &Encoding{Name: "x-user-defined", Labels: []string{
		"x-user-defined",
	}}
)

var allEncodings = []*Encoding{
	UTF8, UTF16LE, UTF16BE, Windows1252, Windows1250, Windows1251,
	Windows1254, ISO88592, ISO885915, ShiftJIS, EUCJP, EUCKR, GB18030,
	Big5, XUserDefined,
}

var labelIndex map[string]*Encoding

func init() {
	labelIndex = make(map[string]*Encoding)
	for _, enc := range allEncodings {
		for _, l := range enc.Labels {
			labelIndex[l] = enc
		}
	}
}

// Lookup normalizes a label (lowercase, ASCII whitespace stripped) and
// returns the encoding it names, or nil. Normalization is idempotent.
// utf-7 is never honoured; it maps to windows-1252.
func Lookup(label string) *Encoding {
	label = strings.ToLower(strings.Trim(label, "\t\n\f\r "))
	if label == "" {
		return nil
	}
	if label == "utf-7" || label == "utf7" || label == "x-utf-7" {
		return Windows1252
	}
	return labelIndex[label]
}

// Sniff decides the encoding of a byte stream. The priority is BOM,
// transport label, meta prescan of the first 1024 bytes, then the
// windows-1252 fallback. The returned int is the number of BOM bytes the
// caller must skip.
func Sniff(data []byte, transport string) (*Encoding, Confidence, int) {
	if enc, n := sniffBOM(data); enc != nil {
		return enc, Certain, n
	}
	if transport != "" {
		if enc := Lookup(transport); enc != nil {
			return enc, Certain, 0
		}
	}
	if enc := prescan(data); enc != nil {
		return enc, Tentative, 0
	}
	return Windows1252, Tentative, 0
}

func sniffBOM(data []byte) (*Encoding, int) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return UTF8, 3
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return UTF16BE, 2
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return UTF16LE, 2
	}
	return nil, 0
}

// Decode sniffs and decodes a byte stream. Invalid byte sequences become
// U+FFFD; Decode never fails for a recognized result of Sniff.
func Decode(data []byte, transport string) (string, *Encoding, Confidence) {
	enc, conf, bom := Sniff(data, transport)
	return decode(data[bom:], enc), enc, conf
}

// metaDeclared applies the meta-prescan restrictions to a label found in
// the document: utf-16 declarations are self-defeating and become utf-8,
// and x-user-defined becomes windows-1252.
func metaDeclared(label []byte) *Encoding {
	enc := Lookup(string(label))
	if enc == nil {
		return nil
	}
	switch enc {
	case UTF16LE, UTF16BE:
		return UTF8
	case XUserDefined:
		return Windows1252
	}
	return enc
}
