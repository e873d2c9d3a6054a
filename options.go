package strain

import "github.com/strainhtml/strain/treebuilder"

// config holds the resolved parser configuration.
type config struct {
	encoding        string
	fragmentContext *treebuilder.FragmentContext
	scripting       bool
	iframeSrcdoc    bool
	xmlCoercion     bool
	strict          bool
	collectErrors   bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a parse.
type Option func(*config)

// WithEncoding supplies the transport-layer encoding label (for example
// from a Content-Type header). It takes priority over the meta prescan
// but not over a BOM.
func WithEncoding(label string) Option {
	return func(c *config) { c.encoding = label }
}

// WithFragment parses in a fragment context with the given HTML tag.
func WithFragment(tagName string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{TagName: tagName, Namespace: "html"}
	}
}

// WithFragmentNS parses in a fragment context in the given namespace
// ("html", "svg", or "mathml").
func WithFragmentNS(tagName, namespace string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{TagName: tagName, Namespace: namespace}
	}
}

// WithScripting turns the scripting flag on, which makes <noscript>
// content parse as raw text.
func WithScripting() Option {
	return func(c *config) { c.scripting = true }
}

// WithIframeSrcdoc treats the input as an iframe srcdoc document, where a
// missing DOCTYPE does not trigger quirks mode.
func WithIframeSrcdoc() Option {
	return func(c *config) { c.iframeSrcdoc = true }
}

// WithXMLCoercion rewrites characters that are invalid in XML output, as
// exercised by the xmlViolation tokenizer fixtures.
func WithXMLCoercion() Option {
	return func(c *config) { c.xmlCoercion = true }
}

// WithStrictMode makes the first parse error abort the parse.
func WithStrictMode() Option {
	return func(c *config) { c.strict = true }
}

// WithCollectErrors returns the recorded parse errors alongside the tree
// as an errors.ParseErrors value.
func WithCollectErrors() Option {
	return func(c *config) { c.collectErrors = true }
}
