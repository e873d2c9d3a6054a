// Package strain is a dependency-free HTML5 parser implementing the WHATWG
// parsing algorithm: encoding sniffing, tokenization, and tree
// construction, with serializers for round-trippable HTML and the
// html5lib conformance tree-dump format.
//
// # Basic usage
//
//	doc, err := strain.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Body().Text())
//
// Malformed input parses the way browsers parse it; a tree always comes
// back. Parse errors are discarded unless WithCollectErrors or
// WithStrictMode is set.
package strain

import (
	"github.com/strainhtml/strain/dom"
	"github.com/strainhtml/strain/encoding"
	htmlerrors "github.com/strainhtml/strain/errors"
	"github.com/strainhtml/strain/internal/tags"
	"github.com/strainhtml/strain/tokenizer"
	"github.com/strainhtml/strain/treebuilder"
)

// Version is the current module version.
const Version = "0.2.0"

// Parse parses an HTML string into a document.
func Parse(html string, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)
	return parse(html, "", cfg)
}

// ParseBytes parses HTML from bytes, sniffing the encoding per the HTML5
// algorithm: BOM, then the transport label from WithEncoding, then the
// meta prescan, then windows-1252. The chosen label is recorded on the
// document.
func ParseBytes(data []byte, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)
	text, enc, _ := encoding.Decode(data, cfg.encoding)
	return parse(text, enc.Name, cfg)
}

// ParseFragment parses an HTML fragment the way innerHTML would inside a
// context element with the given tag name. It returns the fragment's
// top-level nodes.
func ParseFragment(html, context string, opts ...Option) ([]dom.Node, error) {
	cfg := newConfig(opts...)
	if cfg.fragmentContext == nil {
		cfg.fragmentContext = &treebuilder.FragmentContext{TagName: context, Namespace: "html"}
	}
	return parseFragment(html, cfg)
}

func parse(html, encodingName string, cfg *config) (*dom.Document, error) {
	tok, tb := newPipeline(html, cfg, nil)
	runPipeline(tok, tb)
	tb.FinishDocument()

	doc := tb.Document()
	doc.Encoding = encodingName
	if err := collectErrors(tok, tb, cfg); err != nil {
		if cfg.strict {
			return nil, err
		}
		return doc, err
	}
	return doc, nil
}

func parseFragment(html string, cfg *config) ([]dom.Node, error) {
	ctx := cfg.fragmentContext
	if ctx == nil || ctx.TagName == "" {
		return nil, &htmlerrors.ParseError{
			Code:    htmlerrors.UnknownFragmentContext,
			Message: htmlerrors.Message(htmlerrors.UnknownFragmentContext),
		}
	}
	if (ctx.Namespace == "" || ctx.Namespace == "html") && tags.Lookup(ctx.TagName) == tags.Other {
		return nil, &htmlerrors.ParseError{
			Code:    htmlerrors.UnknownFragmentContext,
			Message: htmlerrors.Message(htmlerrors.UnknownFragmentContext),
		}
	}

	tok, tb := newPipeline(html, cfg, ctx)
	runPipeline(tok, tb)

	frag := tb.Fragment()
	nodes := append([]dom.Node(nil), frag.Children()...)
	if err := collectErrors(tok, tb, cfg); err != nil {
		if cfg.strict {
			return nil, err
		}
		return nodes, err
	}
	return nodes, nil
}

func newPipeline(html string, cfg *config, ctx *treebuilder.FragmentContext) (*tokenizer.Tokenizer, *treebuilder.Builder) {
	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	var tb *treebuilder.Builder
	if ctx != nil {
		tb = treebuilder.NewFragment(tok, ctx)
	} else {
		tb = treebuilder.New(tok)
	}
	tb.SetScripting(cfg.scripting)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}
	return tok, tb
}

func runPipeline(tok *tokenizer.Tokenizer, tb *treebuilder.Builder) {
	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		t := tok.Next()
		tb.ProcessToken(&t)
		if t.Kind == tokenizer.EOF {
			return
		}
	}
}

// collectErrors merges tokenizer and tree-construction errors in source
// order and converts them to the public error type.
func collectErrors(tok *tokenizer.Tokenizer, tb *treebuilder.Builder, cfg *config) error {
	if !cfg.strict && !cfg.collectErrors {
		return nil
	}
	tokErrs := tok.Errors()
	treeErrs := tb.Errors()
	if len(tokErrs) == 0 && len(treeErrs) == 0 {
		return nil
	}

	out := make(htmlerrors.ParseErrors, 0, len(tokErrs)+len(treeErrs))
	i, j := 0, 0
	for i < len(tokErrs) || j < len(treeErrs) {
		takeTok := j >= len(treeErrs)
		if !takeTok && i < len(tokErrs) {
			a, b := tokErrs[i], treeErrs[j]
			takeTok = a.Line < b.Line || (a.Line == b.Line && a.Column <= b.Column)
		}
		if takeTok {
			e := tokErrs[i]
			i++
			out = append(out, &htmlerrors.ParseError{
				Code:    e.Code,
				Message: htmlerrors.Message(e.Code),
				Line:    e.Line,
				Column:  e.Column,
			})
			continue
		}
		e := treeErrs[j]
		j++
		out = append(out, &htmlerrors.ParseError{
			Code:    e.Code,
			Message: htmlerrors.Message(e.Code),
			Line:    e.Line,
			Column:  e.Column,
		})
	}

	if cfg.strict {
		return out[0]
	}
	return out
}
