package lang

import (
	"log/slog"
	"math"
	"strings"
)

// maxFactorial is the largest n whose factorial is finite in float64.
const maxFactorial = 170

// functions implements the named functions of rank 6.
var functions = map[string]func(float64) (float64, *Error){
	"sin": unary(math.Sin),
	"cos": unary(math.Cos),
	"log": unary(math.Log),
	"sqrt": func(x float64) (float64, *Error) {
		if x < 0 {
			return 0, ErrNegativeSqrt.With(slog.Float64("argument", x))
		}

		return math.Sqrt(x), nil
	},
}

func unary(fn func(float64) float64) func(float64) (float64, *Error) {
	return func(x float64) (float64, *Error) { return fn(x), nil }
}

// stack is the value stack of the evaluator.
type stack []float64

func (s *stack) push(v float64) { *s = append(*s, v) }

func (s *stack) peek() (float64, bool) {
	if len(*s) == 0 {
		return 0, false
	}

	return (*s)[len(*s)-1], true
}

func (s *stack) pop() (float64, bool) {
	v, ok := s.peek()
	if ok {
		*s = (*s)[:len(*s)-1]
	}

	return v, ok
}

// pop2 pops the right operand, then the left.
func (s *stack) pop2() (left, right float64, ok bool) {
	if len(*s) < 2 {
		return 0, 0, false
	}

	right, _ = s.pop()
	left, _ = s.pop()

	return left, right, true
}

// Evaluate computes the value of postfix text produced by [Convert].
//
// Tokens are separated by whitespace. A token that is neither an operator nor
// a numeric literal is looked up in operands, failing with
// [ErrUnboundVariable] if absent. Postfix text that leaves other than exactly
// one value on the stack fails with [ErrMalformedPostfix].
func Evaluate(postfix string, operands Operands) (float64, error) {
	var s stack

	for i, tok := range strings.Fields(postfix) {
		if err := step(&s, tok, operands); err != nil {
			return 0, err.With(slog.String("token", tok), slog.Int("index", i))
		}
	}

	if len(s) != 1 {
		return 0, ErrMalformedPostfix.With(slog.Int("values", len(s)))
	}

	return s[0], nil
}

// step applies a single postfix token to the stack.
func step(s *stack, tok string, operands Operands) *Error {
	switch tok {
	case "+", "-", "*", "^":
		left, right, ok := s.pop2()
		if !ok {
			return ErrMalformedPostfix
		}

		s.push(binary(tok, left, right))

	case "/":
		if right, ok := s.peek(); ok && right == 0 {
			return ErrDivisionByZero
		}

		left, right, ok := s.pop2()
		if !ok {
			return ErrMalformedPostfix
		}

		s.push(left / right)

	case UnaryMinus:
		v, ok := s.pop()
		if !ok {
			return ErrMalformedPostfix
		}

		s.push(-v)

	case "!":
		v, ok := s.pop()
		if !ok {
			return ErrMalformedPostfix
		}

		f, err := factorial(v)
		if err != nil {
			return err
		}

		s.push(f)

	default:
		if Priority(tok) == rankFunction {
			return apply(s, tok)
		}

		if v, ok := parseNumber(tok); ok {
			s.push(v)

			return nil
		}

		v, ok := operands[tok]
		if !ok {
			return ErrUnboundVariable.named(tok)
		}

		s.push(v)
	}

	return nil
}

func binary(op string, left, right float64) float64 {
	switch op {
	case "+":
		return left + right
	case "-":
		return left - right
	case "*":
		return left * right
	default:
		return math.Pow(left, right)
	}
}

// apply replaces the top of the stack with the named function of it.
func apply(s *stack, name string) *Error {
	fn, ok := functions[name]
	if !ok {
		return ErrUnknownFunction.named(name)
	}

	v, ok := s.pop()
	if !ok {
		return ErrMalformedPostfix
	}

	r, err := fn(v)
	if err != nil {
		return err
	}

	s.push(r)

	return nil
}

// factorial returns n! for a non-negative whole number n.
func factorial(n float64) (float64, *Error) {
	switch {
	case n < 0:
		return 0, ErrNegativeFactorial.With(slog.Float64("argument", n))
	case n != math.Floor(n):
		return 0, ErrNonIntegerFactorial.With(slog.Float64("argument", n))
	case n > maxFactorial:
		return math.Inf(1), nil
	}

	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}

	return r, nil
}
