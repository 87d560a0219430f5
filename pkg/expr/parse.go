package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// operators in the order the decoder tries them.
var parseOps = []Op{OpSeries, OpParallel}

// Parse decodes SCF text into a configuration tree. It checks syntax only;
// leaf indices are validated by Decode or at evaluation time.
func Parse(scf string) (Node, error) {
	return parseAt(scf, 0)
}

// Decode parses scf and checks every leaf index against a catalog of
// catalogLen values. Out-of-range leaves fail with an error matching both
// ErrMalformedExpression and ErrIndexOutOfRange.
func Decode(scf string, catalogLen int) (Node, error) {
	node, err := Parse(scf)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(node, catalogLen); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedExpression, err)
	}
	return node, nil
}

func checkBounds(n Node, catalogLen int) error {
	switch n := n.(type) {
	case *Leaf:
		_, err := NewLeaf(n.Index, catalogLen)
		return err
	case *Composite:
		if err := checkBounds(n.Left, catalogLen); err != nil {
			return err
		}
		return checkBounds(n.Right, catalogLen)
	default:
		return errors.New("expr: unknown node type")
	}
}

func malformed(offset int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformedExpression, offset, fmt.Sprintf(format, args...))
}

// parseAt decodes s, which starts at byte offset base of the original text.
func parseAt(s string, base int) (Node, error) {
	if s == "" {
		return nil, malformed(base, "empty configuration")
	}
	if s[0] != '(' {
		return parseLeaf(s, base)
	}

	closeAt, err := matchParen(s, 0, base)
	if err != nil {
		return nil, err
	}
	left := s[1:closeAt]

	// "(x)" with nothing after it is x wrapped in redundant parentheses.
	if closeAt == len(s)-1 {
		return parseAt(left, base+1)
	}

	rest := s[closeAt+1:]
	var op Op
	found := false
	for _, candidate := range parseOps {
		if strings.HasPrefix(rest, candidate.Symbol()) {
			op = candidate
			found = true
			break
		}
	}
	if !found {
		return nil, malformed(base+closeAt+1, "expected operator %q or %q", OpSeries.Symbol(), OpParallel.Symbol())
	}

	rightStart := closeAt + 1 + len(op.Symbol())
	right := s[rightStart:]
	if right == "" || right[0] != '(' {
		return nil, malformed(base+rightStart, "expected '(' after operator")
	}
	rightClose, err := matchParen(right, 0, base+rightStart)
	if err != nil {
		return nil, err
	}
	if rightClose != len(right)-1 {
		return nil, malformed(base+rightStart+rightClose+1, "unexpected trailing text %q", right[rightClose+1:])
	}

	leftNode, err := parseAt(left, base+1)
	if err != nil {
		return nil, err
	}
	rightNode, err := parseAt(right[1:rightClose], base+rightStart+1)
	if err != nil {
		return nil, err
	}
	return &Composite{Op: op, Left: leftNode, Right: rightNode}, nil
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open, base int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, malformed(base+open, "unbalanced parentheses")
}

func parseLeaf(s string, base int) (Node, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, malformed(base+i, "unexpected %q in catalog index", s[i])
		}
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return nil, malformed(base, "catalog index %q: %v", s, err)
	}
	return &Leaf{Index: idx}, nil
}
