// Package expr evaluates the two-operand integer expressions accepted by
// the shell's echo command: one or more decimal digits, one of + - * /,
// one or more decimal digits. No signs, spaces, parentheses or precedence.
package expr

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrNotExpression is returned when the input does not match the grammar.
	ErrNotExpression = errors.New("not an expression")

	// ErrDivisionByZero is returned, together with a zero value, for a
	// well-formed division by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Evaluate parses s and computes its value with 32-bit wrap-around
// arithmetic.
func Evaluate(s string) (int, error) {
	a, rest, ok := number(s)
	if !ok || len(rest) == 0 {
		return 0, ErrNotExpression
	}
	op := rest[0]
	b, rest, ok := number(rest[1:])
	if !ok || len(rest) != 0 {
		return 0, ErrNotExpression
	}

	switch op {
	case '+':
		return int(a + b), nil
	case '-':
		return int(a - b), nil
	case '*':
		return int(a * b), nil
	case '/':
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return int(a / b), nil
	default:
		return 0, ErrNotExpression
	}
}

// number consumes a run of digits that fits in an int32.
func number(s string) (int32, string, bool) {
	var n int64
	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32 {
			return 0, s, false
		}
	}
	if i == 0 {
		return 0, s, false
	}
	return int32(n), s[i:], true
}
