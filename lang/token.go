package lang

import (
	"errors"
	"strconv"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	KindNumber     Kind = iota // number
	KindIdentifier             // identifier
	KindFunction               // function
	KindOperator               // operator
	KindUnaryMinus             // unary minus
	KindFactorial              // factorial
	KindLeftParen              // left paren
	KindRightParen             // right paren
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindIdentifier:
		return "identifier"
	case KindFunction:
		return "function"
	case KindOperator:
		return "operator"
	case KindUnaryMinus:
		return "unary minus"
	case KindFactorial:
		return "factorial"
	case KindLeftParen:
		return "left paren"
	case KindRightParen:
		return "right paren"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// UnaryMinus is the text of the unary minus marker in postfix output.
const UnaryMinus = "_"

// Token is a lexical unit of an infix expression.
type Token struct {
	Kind Kind
	Text string
	Pos  int // byte offset of the first character in the source
}

func (t Token) String() string { return t.Text }

// Priority returns the precedence rank of the token.
func (t Token) Priority() int { return Priority(t.Text) }

// Precedence ranks. A higher rank binds tighter.
const (
	rankNone = iota
	rankAdditive
	rankMultiplicative
	rankPower
	rankUnary
	rankFactorial
	rankFunction
)

// Priority returns the precedence rank of an operator, marker, or function
// name. Any other text has rank 0 and is not an operator.
func Priority(text string) int {
	switch text {
	case "+", "-":
		return rankAdditive
	case "*", "/":
		return rankMultiplicative
	case "^":
		return rankPower
	case UnaryMinus:
		return rankUnary
	case "!":
		return rankFactorial
	case "sin", "cos", "log", "sqrt":
		return rankFunction
	default:
		return rankNone
	}
}

// Functions returns the names of the built-in functions.
func Functions() []string {
	return []string{"cos", "log", "sin", "sqrt"}
}

// IsFunction reports whether name is a built-in function.
func IsFunction(name string) bool { return Priority(name) == rankFunction }

// parseNumber parses s as a numeric literal. Literals too large to represent
// parse as an infinity.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return v, true
	}

	return 0, false
}

// IsNumber reports whether s is a numeric literal.
func IsNumber(s string) bool {
	_, ok := parseNumber(s)

	return ok
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// isOperator reports whether c is one of the operator symbols.
func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '!', '^':
		return true
	default:
		return false
	}
}
