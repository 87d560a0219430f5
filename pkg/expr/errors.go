package expr

import "errors"

var (
	// ErrMalformedExpression indicates SCF text that does not follow the grammar.
	ErrMalformedExpression = errors.New("expr: malformed expression")
	// ErrIndexOutOfRange indicates a leaf referencing a catalog index that does not exist.
	ErrIndexOutOfRange = errors.New("expr: catalog index out of range")
	// ErrDivisionByZero indicates a parallel combination with a zero-valued operand.
	ErrDivisionByZero = errors.New("expr: parallel combination with zero resistance")
)
