// Package errors defines the parse error types reported by the parser.
package errors

import (
	"fmt"
	"strings"
)

// ParseError is a single recorded parse error. Codes are the stable
// kebab-case identifiers used by html5lib-tests; Line and Column are
// 1-based positions in the decoded input.
type ParseError struct {
	Code    string
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors aggregates every error recorded during one parse, in the
// order the errors occurred. It implements error so Parse can return it
// directly under WithCollectErrors.
type ParseErrors []*ParseError

// Error implements the error interface.
func (e ParseErrors) Error() string {
	switch len(e) {
	case 0:
		return "no parse errors"
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:", len(e))
	for _, err := range e {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is/As.
func (e ParseErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}
