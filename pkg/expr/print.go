package expr

import (
	"fmt"
	"strconv"
)

var opSymbols = map[Op]string{
	OpSeries:   "+",
	OpParallel: "//",
}

var opLaTeX = map[Op]string{
	OpSeries:   "+",
	OpParallel: "\\parallel",
}

// Symbol returns the SCF operator text.
func (op Op) Symbol() string {
	return opSymbols[op]
}

func (op Op) String() string {
	switch op {
	case OpSeries:
		return "series"
	case OpParallel:
		return "parallel"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// String methods render canonical SCF text. Children are always
// parenthesized by their parent, so only a bare top-level leaf appears
// without parentheses.

func (l *Leaf) String() string {
	return strconv.Itoa(l.Index)
}

func (c *Composite) String() string {
	return fmt.Sprintf("(%s)%s(%s)", c.Left.String(), c.Op.Symbol(), c.Right.String())
}

// LaTeX methods

func (l *Leaf) LaTeX() string {
	return fmt.Sprintf("R_{%d}", l.Index)
}

func (c *Composite) LaTeX() string {
	left := c.Left.LaTeX()
	right := c.Right.LaTeX()
	if _, ok := c.Left.(*Composite); ok {
		left = "\\left(" + left + "\\right)"
	}
	if _, ok := c.Right.(*Composite); ok {
		right = "\\left(" + right + "\\right)"
	}
	return fmt.Sprintf("%s %s %s", left, opLaTeX[c.Op], right)
}
