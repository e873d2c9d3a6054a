package serialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func TestTokensBasicStream(t *testing.T) {
	stream := raw(
		`["StartTag", "http://www.w3.org/1999/xhtml", "span", []]`,
		`["Characters", "a < b"]`,
		`["EndTag", "http://www.w3.org/1999/xhtml", "span"]`,
	)
	got, err := Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, "<span>a &lt; b</span>", got)
}

func TestTokensAttrFormats(t *testing.T) {
	// List-shaped attributes.
	stream := raw(`["StartTag", "ns", "a", [{"namespace": null, "name": "href", "value": "x"}]]`)
	got, err := Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, "<a href=x>", got)

	// Object-shaped attributes, sorted by name.
	stream = raw(`["StartTag", "ns", "a", {"b": "2", "a": "1"}]`)
	got, err = Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, "<a a=1 b=2>", got)
}

func TestTokensBooleanMinimization(t *testing.T) {
	stream := raw(`["StartTag", "ns", "input", {"disabled": "disabled", "name": "q"}]`)
	got, err := Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, "<input disabled name=q>", got)

	opts := DefaultTokenOptions()
	opts.MinimizeBooleanAttributes = false
	got, err = TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, `<input disabled=disabled name=q>`, got)
}

func TestTokensQuoting(t *testing.T) {
	stream := raw(`["StartTag", "ns", "a", {"title": "has space"}]`)
	got, err := Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, `<a title="has space">`, got)

	stream = raw(`["StartTag", "ns", "a", {"title": "say \"hi\""}]`)
	got, err = Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, `<a title='say "hi"'>`, got)

	opts := DefaultTokenOptions()
	opts.QuoteAttrValues = "always"
	stream = raw(`["StartTag", "ns", "a", {"title": "word"}]`)
	got, err = TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, `<a title="word">`, got)

	opts = DefaultTokenOptions()
	opts.QuoteChar = '\''
	got, err = TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, `<a title='word'>`, got)
}

func TestTokensOmitOptionalTags(t *testing.T) {
	stream := raw(
		`["StartTag", "ns", "html", []]`,
		`["StartTag", "ns", "head", []]`,
		`["EndTag", "ns", "head"]`,
		`["StartTag", "ns", "body", []]`,
		`["StartTag", "ns", "p", []]`,
		`["Characters", "x"]`,
		`["EndTag", "ns", "p"]`,
		`["EndTag", "ns", "body"]`,
		`["EndTag", "ns", "html"]`,
	)
	got, err := Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, "<p>x", got)

	opts := DefaultTokenOptions()
	opts.OmitOptionalTags = false
	got, err = TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, "<html><head></head><body><p>x</p></body></html>", got)
}

func TestTokensRawTextNotEscaped(t *testing.T) {
	stream := raw(
		`["StartTag", "ns", "script", []]`,
		`["Characters", "a < b"]`,
		`["EndTag", "ns", "script"]`,
	)
	got, err := Tokens(stream)
	require.NoError(t, err)
	assert.Equal(t, "<script>a < b</script>", got)

	opts := DefaultTokenOptions()
	opts.EscapeRcdata = true
	got, err = TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, "<script>a &lt; b</script>", got)
}

func TestTokensStripWhitespace(t *testing.T) {
	stream := raw(
		`["StartTag", "ns", "p", []]`,
		`["Characters", "  a   b  "]`,
		`["EndTag", "ns", "p"]`,
	)
	opts := DefaultTokenOptions()
	opts.StripWhitespace = true
	got, err := TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, "<p> a b ", got)
}

func TestTokensInjectMetaCharset(t *testing.T) {
	stream := raw(
		`["StartTag", "ns", "head", []]`,
		`["EndTag", "ns", "head"]`,
	)
	opts := DefaultTokenOptions()
	opts.OmitOptionalTags = false
	opts.InjectMetaCharset = true
	opts.Encoding = "utf-8"
	got, err := TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, "<head><meta charset=utf-8></head>", got)

	// Existing meta charset rewritten in place.
	stream = raw(
		`["StartTag", "ns", "head", []]`,
		`["EmptyTag", "meta", {"charset": "big5"}]`,
		`["EndTag", "ns", "head"]`,
	)
	got, err = TokensWithOptions(stream, opts)
	require.NoError(t, err)
	assert.Equal(t, "<head><meta charset=utf-8></head>", got)
}

func TestTokensDoctype(t *testing.T) {
	got, err := Tokens(raw(`["Doctype", "html"]`))
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html>", got)

	got, err = Tokens(raw(`["Doctype", "html", "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd"]`))
	require.NoError(t, err)
	assert.Equal(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`, got)
}

func TestTokensTrailingSolidus(t *testing.T) {
	opts := DefaultTokenOptions()
	opts.UseTrailingSolidus = true
	got, err := TokensWithOptions(raw(`["EmptyTag", "br", {}]`), opts)
	require.NoError(t, err)
	assert.Equal(t, "<br />", got)
}

func TestTokensUnknownKind(t *testing.T) {
	_, err := Tokens(raw(`["Wat", "x"]`))
	assert.ErrorIs(t, err, ErrUnknownTokenKind)
}
