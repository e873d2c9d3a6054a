package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLabels(t *testing.T) {
	tests := []struct {
		label string
		want  *Encoding
	}{
		{"utf-8", UTF8},
		{"UTF-8", UTF8},
		{" utf-8 ", UTF8},
		{"\tUtF-8\n", UTF8},
		{"unicode-1-1-utf-8", UTF8},
		{"latin1", Windows1252},
		{"iso-8859-1", Windows1252},
		{"ascii", Windows1252},
		{"windows-1252", Windows1252},
		{"iso-8859-2", ISO88592},
		{"l2", ISO88592},
		{"shift_jis", ShiftJIS},
		{"sjis", ShiftJIS},
		{"euc-jp", EUCJP},
		{"euc-kr", EUCKR},
		{"gbk", GB18030},
		{"gb18030", GB18030},
		{"big5", Big5},
		{"x-user-defined", XUserDefined},
		{"utf-16", UTF16LE},
		{"utf-16be", UTF16BE},
		{"utf-7", Windows1252}, // never honoured
		{"bogus", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Lookup(tt.label); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestLookupIdempotent(t *testing.T) {
	for _, enc := range allEncodings {
		for _, label := range enc.Labels {
			first := Lookup(label)
			require.NotNil(t, first, label)
			again := Lookup(first.Name)
			// Normalizing a canonical name must not change the result
			// (utf-16 canonicalizes into the LE family).
			require.Same(t, first, again, first.Name)
		}
	}
}

func TestSniffBOM(t *testing.T) {
	tests := []struct {
		data []byte
		want *Encoding
		bom  int
	}{
		{[]byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, UTF8, 3},
		{[]byte{0xFE, 0xFF, 0x00, 'h'}, UTF16BE, 2},
		{[]byte{0xFF, 0xFE, 'h', 0x00}, UTF16LE, 2},
	}
	for _, tt := range tests {
		enc, conf, bom := Sniff(tt.data, "")
		assert.Same(t, tt.want, enc)
		assert.Equal(t, Certain, conf)
		assert.Equal(t, tt.bom, bom)
	}
}

func TestSniffPriority(t *testing.T) {
	// BOM beats transport.
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<meta charset="big5">`)...)
	enc, conf, _ := Sniff(data, "euc-jp")
	assert.Same(t, UTF8, enc)
	assert.Equal(t, Certain, conf)

	// Transport beats meta.
	enc, conf, _ = Sniff([]byte(`<meta charset="big5">`), "euc-jp")
	assert.Same(t, EUCJP, enc)
	assert.Equal(t, Certain, conf)

	// Meta beats fallback.
	enc, conf, _ = Sniff([]byte(`<meta charset="big5">`), "")
	assert.Same(t, Big5, enc)
	assert.Equal(t, Tentative, conf)

	// Fallback.
	enc, conf, _ = Sniff([]byte(`<p>plain`), "")
	assert.Same(t, Windows1252, enc)
	assert.Equal(t, Tentative, conf)

	// An unrecognized transport label falls through to the prescan.
	enc, _, _ = Sniff([]byte(`<meta charset=utf-8>`), "klingon")
	assert.Same(t, UTF8, enc)
}

func TestPrescan(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *Encoding
	}{
		{"charset attr", `<meta charset="utf-8">`, UTF8},
		{"unquoted", `<meta charset=utf-8>`, UTF8},
		{"single quotes", `<meta charset='iso-8859-2'>`, ISO88592},
		{"http-equiv", `<meta http-equiv="Content-Type" content="text/html; charset=big5">`, Big5},
		{"http-equiv case", `<meta HTTP-EQUIV="content-type" CONTENT="text/html; CHARSET=big5">`, Big5},
		{"after comment", `<!-- <meta charset="euc-kr"> --><meta charset=utf-8>`, UTF8},
		{"inside other tag skipped", `<title data-x="<meta charset=big5>"></title><meta charset=utf-8>`, UTF8},
		{"utf-16 coerced", `<meta charset="utf-16le">`, UTF8},
		{"x-user-defined coerced", `<meta charset="x-user-defined">`, Windows1252},
		{"unknown label ignored", `<meta charset="klingon"><meta charset="utf-8">`, UTF8},
		{"no declaration", `<p>hello`, nil},
		{"beyond window", strings.Repeat(" ", 1100) + `<meta charset="utf-8">`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prescan([]byte(tt.data))
			if got != tt.want {
				t.Errorf("prescan(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeWindows1252(t *testing.T) {
	got, enc, _ := Decode([]byte{'a', 0x80, 0x9F, 0xFF}, "windows-1252")
	assert.Equal(t, "a€Ÿÿ", got)
	assert.Same(t, Windows1252, enc)
}

func TestDecodeUTF16(t *testing.T) {
	// "hi" little-endian with BOM.
	got, enc, _ := Decode([]byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, "")
	assert.Equal(t, "hi", got)
	assert.Same(t, UTF16LE, enc)

	// Surrogate pair (U+1F600) big-endian with BOM.
	got, _, _ = Decode([]byte{0xFE, 0xFF, 0xD8, 0x3D, 0xDE, 0x00}, "")
	assert.Equal(t, "😀", got)

	// Unpaired surrogate and odd tail decode to U+FFFD.
	got, _, _ = Decode([]byte{0xFF, 0xFE, 0x3D, 0xD8, 'x'}, "")
	assert.Equal(t, "��", got)
}

func TestDecodeInvalidUTF8(t *testing.T) {
	got, _, _ := Decode([]byte{'a', 0xC3, 0x28, 'b'}, "utf-8")
	assert.Equal(t, "a�(b", got)
}

func TestDecodeXUserDefined(t *testing.T) {
	got, _, _ := Decode([]byte{'a', 0x80, 0xFF}, "x-user-defined")
	assert.Equal(t, "a\uf780\uf7ff", got)
}

func TestDecodeMultiByteOpaque(t *testing.T) {
	// ASCII survives; a lead/trail pair becomes one replacement.
	got, enc, _ := Decode([]byte{'a', 0x82, 0xA0, 'b'}, "shift_jis")
	assert.Same(t, ShiftJIS, enc)
	assert.Equal(t, "a�b", got)
}

func TestDecodeNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0xFF},
		{0xFE, 0xFF},
		[]byte("plain ascii"),
	}
	for _, in := range inputs {
		got, enc, _ := Decode(in, "")
		require.NotNil(t, enc)
		_ = got
	}
}
