package fieldpath

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("field path syntax error")

// SyntaxError reports an ill-formed field path. Line and Column are 1 based
// and refer to the offending token.
type SyntaxError struct {
	Input  string
	Line   int
	Column int
	Token  string
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s at %s in field path %q", e.Line, e.Column, e.Msg, e.Token, e.Input)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
