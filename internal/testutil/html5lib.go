// Package testutil loads html5lib-tests fixtures for the conformance
// suites. The corpus directory is discovered relative to the working
// directory; suites skip themselves when it is absent.
package testutil

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TreeConstructionTest is one case from a tree-construction .dat file.
type TreeConstructionTest struct {
	Data            string
	Errors          []string
	Document        string
	FragmentContext string // "div", "svg path", ...
	ScriptDirective string // "script-on", "script-off", or ""
}

// TokenizerTestFile is the JSON shape of a tokenizer .test file.
type TokenizerTestFile struct {
	Tests             []TokenizerTest `json:"tests"`
	XMLViolationTests []TokenizerTest `json:"xmlViolationTests"`
}

// TokenizerTest is a single tokenizer case.
type TokenizerTest struct {
	Description   string            `json:"description"`
	Input         string            `json:"input"`
	Output        []json.RawMessage `json:"output"`
	Errors        []TokenizerError  `json:"errors"`
	InitialStates []string          `json:"initialStates"`
	LastStartTag  string            `json:"lastStartTag"`
	DoubleEscaped bool              `json:"doubleEscaped"`
	DiscardBOM    bool              `json:"discardBom"`
}

// TokenizerError is an expected tokenizer error record.
type TokenizerError struct {
	Code   string `json:"code"`
	Line   int    `json:"line"`
	Column int    `json:"col"`
}

// EncodingTest is one case from an encoding .dat file.
type EncodingTest struct {
	Data     string
	Encoding string
}

// FindTestData locates the html5lib-tests checkout, looking in the
// working directory and a few ancestor/sibling spots.
func FindTestData() (string, bool) {
	candidates := []string{
		"html5lib-tests",
		filepath.Join("testdata", "html5lib-tests"),
		filepath.Join("..", "html5lib-tests"),
		filepath.Join("..", "testdata", "html5lib-tests"),
		filepath.Join("..", "..", "html5lib-tests"),
		filepath.Join("..", "..", "testdata", "html5lib-tests"),
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && st.IsDir() {
			return c, true
		}
	}
	return "", false
}

// LoadTreeConstructionFile parses one .dat file into its test cases.
func LoadTreeConstructionFile(path string) ([]TreeConstructionTest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tests []TreeConstructionTest
	var cur *TreeConstructionTest
	section := ""
	var data, document []string

	flush := func() {
		if cur == nil {
			return
		}
		cur.Data = strings.Join(data, "\n")
		cur.Document = strings.Join(document, "\n")
		tests = append(tests, *cur)
		cur = nil
		data = data[:0]
		document = document[:0]
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "#data":
			flush()
			cur = &TreeConstructionTest{}
			section = "data"
		case line == "#errors" || line == "#new-errors":
			section = "errors"
		case line == "#document":
			section = "document"
		case line == "#document-fragment":
			section = "fragment"
		case line == "#script-on":
			if cur != nil {
				cur.ScriptDirective = "script-on"
			}
		case line == "#script-off":
			if cur != nil {
				cur.ScriptDirective = "script-off"
			}
		default:
			if cur == nil {
				continue
			}
			switch section {
			case "data":
				data = append(data, line)
			case "errors":
				if line != "" {
					cur.Errors = append(cur.Errors, line)
				}
			case "document":
				document = append(document, line)
			case "fragment":
				cur.FragmentContext = strings.TrimSpace(line)
			}
		}
	}
	flush()
	return tests, scanner.Err()
}

// LoadTreeConstructionDir loads every .dat file of the tree-construction
// suite, keyed by file name.
func LoadTreeConstructionDir(root string) (map[string][]TreeConstructionTest, error) {
	dir := filepath.Join(root, "tree-construction")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]TreeConstructionTest)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".dat") {
			continue
		}
		tests, err := LoadTreeConstructionFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out[e.Name()] = tests
	}
	return out, nil
}

// LoadTokenizerFile parses one tokenizer .test JSON file.
func LoadTokenizerFile(path string) (*TokenizerTestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf TokenizerTestFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	return &tf, nil
}

// DecodeDoubleEscaped resolves the \uXXXX escapes the doubleEscaped
// tokenizer tests apply to input and output strings.
func DecodeDoubleEscaped(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+5 < len(s) && s[i+1] == 'u' {
			if n, err := strconv.ParseUint(s[i+2:i+6], 16, 32); err == nil {
				sb.WriteRune(rune(n))
				i += 6
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// LoadEncodingFile parses one encoding .dat file (#data/#encoding pairs).
func LoadEncodingFile(path string) ([]EncodingTest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tests []EncodingTest
	var cur *EncodingTest
	section := ""
	var data []string

	flush := func() {
		if cur == nil {
			return
		}
		cur.Data = strings.Join(data, "\n")
		tests = append(tests, *cur)
		cur = nil
		data = data[:0]
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "#data":
			flush()
			cur = &EncodingTest{}
			section = "data"
		case line == "#encoding":
			section = "encoding"
		default:
			if cur == nil {
				continue
			}
			switch section {
			case "data":
				data = append(data, line)
			case "encoding":
				if line != "" {
					cur.Encoding = strings.ToLower(strings.TrimSpace(line))
				}
			}
		}
	}
	flush()
	return tests, scanner.Err()
}
