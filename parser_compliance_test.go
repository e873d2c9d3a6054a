package strain

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strainhtml/strain/internal/testutil"
	"github.com/strainhtml/strain/serialize"
	"github.com/strainhtml/strain/tokenizer"
)

// The conformance suites run against a local html5lib-tests checkout and
// skip when it is not present.

func TestHTML5LibTreeConstruction(t *testing.T) {
	root, ok := testutil.FindTestData()
	if !ok {
		t.Skip("html5lib-tests not found")
	}
	files, err := testutil.LoadTreeConstructionDir(root)
	if err != nil {
		t.Fatal(err)
	}

	for name, tests := range files {
		t.Run(name, func(t *testing.T) {
			for i, tc := range tests {
				scripting := tc.ScriptDirective == "script-on"
				got, err := runTreeCase(tc, scripting)
				if err != nil {
					t.Errorf("case %d (%q): %v", i, tc.Data, err)
					continue
				}
				if got != tc.Document {
					t.Errorf("case %d:\ninput: %q\ngot:\n%s\nwant:\n%s",
						i, tc.Data, got, tc.Document)
				}
			}
		})
	}
}

func runTreeCase(tc testutil.TreeConstructionTest, scripting bool) (string, error) {
	opts := []Option{}
	if scripting {
		opts = append(opts, WithScripting())
	}
	if tc.FragmentContext != "" {
		ctx := tc.FragmentContext
		if ns, name, ok := strings.Cut(ctx, " "); ok {
			opts = append(opts, WithFragmentNS(name, ns))
		} else {
			opts = append(opts, WithFragment(ctx))
		}
		nodes, err := ParseFragment(tc.Data, "", opts...)
		if err != nil {
			return "", err
		}
		return serialize.TreeNodes(nodes), nil
	}
	doc, err := Parse(tc.Data, opts...)
	if err != nil {
		return "", err
	}
	return serialize.Tree(doc), nil
}

func TestHTML5LibTokenizer(t *testing.T) {
	root, ok := testutil.FindTestData()
	if !ok {
		t.Skip("html5lib-tests not found")
	}
	paths, err := filepath.Glob(filepath.Join(root, "tokenizer", "*.test"))
	if err != nil || len(paths) == 0 {
		t.Skip("no tokenizer fixtures")
	}

	for _, path := range paths {
		tf, err := testutil.LoadTokenizerFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		t.Run(filepath.Base(path), func(t *testing.T) {
			for _, tc := range tf.Tests {
				runTokenizerCase(t, tc, false)
			}
			for _, tc := range tf.XMLViolationTests {
				runTokenizerCase(t, tc, true)
			}
		})
	}
}

func runTokenizerCase(t *testing.T, tc testutil.TokenizerTest, xmlCoercion bool) {
	t.Helper()
	input := tc.Input
	if tc.DoubleEscaped {
		input = testutil.DecodeDoubleEscaped(input)
	}
	states := tc.InitialStates
	if len(states) == 0 {
		states = []string{"Data state"}
	}
	for _, state := range states {
		z := tokenizer.NewWithOptions(input, tokenizer.Options{
			DiscardBOM:  tc.DiscardBOM,
			XMLCoercion: xmlCoercion,
		})
		if tc.LastStartTag != "" {
			z.SetLastStartTag(tc.LastStartTag)
		}
		if s, ok := tokenizerStateByName(state); ok {
			z.SetState(s)
		}
		got := tokensToFixture(z)
		want := fixtureTokens(tc)
		if !jsonEqual(got, want) {
			t.Errorf("%s [%s]: got %v, want %v", tc.Description, state, got, want)
		}
	}
}

func tokenizerStateByName(name string) (tokenizer.State, bool) {
	switch name {
	case "Data state":
		return tokenizer.DataState, true
	case "PLAINTEXT state":
		return tokenizer.PLAINTEXTState, true
	case "RCDATA state":
		return tokenizer.RCDATAState, true
	case "RAWTEXT state":
		return tokenizer.RAWTEXTState, true
	case "Script data state":
		return tokenizer.ScriptDataState, true
	case "CDATA section state":
		return tokenizer.CDATASectionState, true
	}
	return 0, false
}

// tokensToFixture converts the token stream to the html5lib JSON shape,
// coalescing character runs.
func tokensToFixture(z *tokenizer.Tokenizer) []any {
	var out []any
	for {
		tok := z.Next()
		if tok.Kind == tokenizer.EOF {
			return out
		}
		switch tok.Kind {
		case tokenizer.Character:
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].([]any); ok && prev[0] == "Character" {
					prev[1] = prev[1].(string) + tok.Data
					out[len(out)-1] = prev
					continue
				}
			}
			out = append(out, []any{"Character", tok.Data})
		case tokenizer.Comment:
			out = append(out, []any{"Comment", tok.Data})
		case tokenizer.StartTag:
			attrs := map[string]any{}
			for _, a := range tok.Attrs {
				attrs[a.Name] = a.Value
			}
			if tok.SelfClosing {
				out = append(out, []any{"StartTag", tok.Name, attrs, true})
			} else {
				out = append(out, []any{"StartTag", tok.Name, attrs})
			}
		case tokenizer.EndTag:
			out = append(out, []any{"EndTag", tok.Name})
		case tokenizer.Doctype:
			var public, system any
			if tok.PublicID != nil {
				public = *tok.PublicID
			}
			if tok.SystemID != nil {
				system = *tok.SystemID
			}
			var name any
			if tok.Name != "" {
				name = tok.Name
			}
			out = append(out, []any{"DOCTYPE", name, public, system, !tok.ForceQuirks})
		}
	}
}

func fixtureTokens(tc testutil.TokenizerTest) []any {
	var out []any
	for _, raw := range tc.Output {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if tc.DoubleEscaped {
			v = decodeDoubleEscapedValue(v)
		}
		out = append(out, v)
	}
	return out
}

func decodeDoubleEscapedValue(v any) any {
	switch x := v.(type) {
	case string:
		return testutil.DecodeDoubleEscaped(x)
	case []any:
		for i := range x {
			x[i] = decodeDoubleEscapedValue(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = decodeDoubleEscapedValue(x[k])
		}
		return x
	}
	return v
}

func jsonEqual(a, b any) bool {
	ja, err1 := json.Marshal(a)
	jb, err2 := json.Marshal(b)
	return err1 == nil && err2 == nil && string(ja) == string(jb)
}

func TestHTML5LibEncoding(t *testing.T) {
	root, ok := testutil.FindTestData()
	if !ok {
		t.Skip("html5lib-tests not found")
	}
	paths, err := filepath.Glob(filepath.Join(root, "encoding", "*.dat"))
	if err != nil || len(paths) == 0 {
		t.Skip("no encoding fixtures")
	}
	for _, path := range paths {
		tests, err := testutil.LoadEncodingFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		t.Run(filepath.Base(path), func(t *testing.T) {
			for i, tc := range tests {
				doc, err := ParseBytes([]byte(tc.Data))
				if err != nil {
					t.Errorf("case %d: %v", i, err)
					continue
				}
				if doc.Encoding != tc.Encoding {
					t.Errorf("case %d (%q): encoding %q, want %q",
						i, tc.Data, doc.Encoding, tc.Encoding)
				}
			}
		})
	}
}
