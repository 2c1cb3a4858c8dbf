package lang

import (
	"errors"
	"testing"
)

// FuzzExpression checks that no input makes the pipeline panic and that
// every failure belongs to the error taxonomy.
func FuzzExpression(f *testing.F) {
	f.Add("2 + 3")
	f.Add("-(-a + b) / c!")
	f.Add("sin(x) * cos(y) ^ sqrt(log(z))")
	f.Add("((1)")
	f.Add("1 + 2)")
	f.Add(".5 - -.5")
	f.Add("3!-2")
	f.Add("--2")
	f.Add(demoInfix)

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("panicked on input %q: %v", input, r)
			}
		}()

		// The lower stages accept any input.
		postfix, operands := Convert(input)

		for name := range operands {
			operands[name] = 1.5
		}

		_, _ = Evaluate(postfix, operands)

		e, err := New(input)
		if err != nil {
			if !IsValidation(err) {
				t.Errorf("New(%q) returned non-validation error %v", input, err)
			}

			return
		}

		bindings := make(map[string]float64)
		for _, name := range e.Operands() {
			bindings[name] = 2
		}

		if _, err := e.Calculate(bindings); err != nil {
			if _, ok := AsError(err); !ok || errors.Is(err, ErrMissingOperand) {
				t.Errorf("Calculate(%q) returned unexpected error %v", input, err)
			}
		}
	})
}
