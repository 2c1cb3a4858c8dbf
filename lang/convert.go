package lang

import (
	"maps"
	"slices"
	"strings"
)

// Operands maps variable names to their values.
type Operands map[string]float64

// Names returns the variable names in sorted order.
func (o Operands) Names() []string {
	return slices.Sorted(maps.Keys(o))
}

// Clone returns a copy of o.
func (o Operands) Clone() Operands {
	if o == nil {
		return Operands{}
	}

	return maps.Clone(o)
}

// Convert translates infix text to postfix notation and collects the
// variables it references, each bound to 0.
//
// Every postfix token is followed by a single space, so "2 + 3" converts to
// "2 3 + ". Unary minus is written as [UnaryMinus]. Numeric literals are
// emitted as written and never appear in the returned operands.
//
// Convert expects text that passed [Validate]. Unbalanced parentheses in
// unvalidated text are dropped rather than reported.
func Convert(text string) (string, Operands) {
	return convert(Tokenize(text))
}

// convert runs the shunting-yard algorithm over tokens.
func convert(tokens []Token) (string, Operands) {
	var (
		out   strings.Builder
		stack []Token
	)

	operands := make(Operands)

	write := func(t Token) {
		out.WriteString(t.Text)
		out.WriteByte(' ')
	}

	pop := func() Token {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return t
	}

	for _, t := range tokens {
		switch {
		case t.Kind == KindLeftParen:
			stack = append(stack, t)

		case t.Kind == KindRightParen:
			for len(stack) > 0 {
				top := pop()
				if top.Kind == KindLeftParen {
					break
				}

				write(top)
			}

			if len(stack) > 0 && stack[len(stack)-1].Kind == KindFunction {
				write(pop())
			}

		case t.Priority() > rankNone:
			rank := t.Priority()

			for len(stack) > 0 {
				top := pop()
				if rank > top.Priority() {
					stack = append(stack, top)

					break
				}

				write(top)
			}

			stack = append(stack, t)

		default:
			if t.Kind != KindNumber {
				operands[t.Text] = 0
			}

			write(t)
		}
	}

	for len(stack) > 0 {
		if top := pop(); top.Kind != KindLeftParen {
			write(top)
		}
	}

	return out.String(), operands
}
