package tokenizer

// Options configure tokenizer behavior.
type Options struct {
	// DiscardBOM removes a leading U+FEFF from the input. The html5lib
	// tokenizer fixtures toggle this per test case.
	DiscardBOM bool

	// XMLCoercion rewrites output for the xmlViolation fixtures: form
	// feeds become spaces in text, noncharacters become U+FFFD, and
	// "--" inside comments becomes "- -".
	XMLCoercion bool
}

func defaultOptions() Options {
	return Options{DiscardBOM: true}
}
