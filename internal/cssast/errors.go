package cssast

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError is a CSS syntax problem, carrying the stage that found it.
type SyntaxError struct {
	Message string
	// Plugin names the stage that raised the error ("serializer",
	// "breakpoints", "check").
	Plugin string
	Line   int
	Column int
	// Source is the offending input or rule, as far as it is known.
	Source string
	// Context is the source line with the error position.
	Context string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Plugin != "" {
		b.WriteString(e.Plugin)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	}
	b.WriteString(e.Message)
	return b.String()
}

// NewSyntaxError builds an error without a position.
func NewSyntaxError(plugin, source, format string, args ...any) *SyntaxError {
	return &SyntaxError{Plugin: plugin, Source: source, Message: fmt.Sprintf(format, args...)}
}

// AsSyntaxError unwraps err into a *SyntaxError.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	ok := errors.As(err, &se)
	return se, ok
}
