package lang

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/acalc/log"
)

func TestNew_PropagatesValidationErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"1 + $", ErrInvalidCharacter},
		{"(1 + 2", ErrUnmatchedOpeningBracket},
		{"1 + 2)", ErrUnmatchedClosingBracket},
	}

	for _, tt := range tests {
		e, err := New(tt.input)
		if !errors.Is(err, tt.want) {
			t.Errorf("New(%q) error = %v, want %v", tt.input, err, tt.want)
		}

		if e != nil {
			t.Errorf("New(%q) returned a partial expression", tt.input)
		}
	}
}

func TestExpression_Accessors(t *testing.T) {
	e, err := New("y * sin(x) + 2")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if e.Infix() != "y * sin(x) + 2" {
		t.Errorf("Infix() = %q", e.Infix())
	}

	if e.Postfix() != "y x sin * 2 + " {
		t.Errorf("Postfix() = %q", e.Postfix())
	}

	if diff := cmp.Diff([]string{"x", "y"}, e.Operands()); diff != "" {
		t.Errorf("Operands() mismatch (-want +got):\n%s", diff)
	}

	if got := len(e.Tokens()); got != 8 {
		t.Errorf("len(Tokens()) = %d, want 8", got)
	}

	if v, ok := e.Value("x"); !ok || v != 0 {
		t.Errorf("Value(x) = %v, %t; want 0, true", v, ok)
	}

	if _, ok := e.Value("2"); ok {
		t.Error("numeric literal present in operand table")
	}
}

func TestExpression_Calculate(t *testing.T) {
	e, err := New("x + y")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	_, err = e.Calculate(map[string]float64{"x": 2})
	if !errors.Is(err, ErrMissingOperand) {
		t.Fatalf("Calculate error = %v, want missing operand", err)
	}

	if ee, _ := AsError(err); ee != nil {
		if name, _ := ee.Name(); name != "y" {
			t.Errorf("missing operand name = %q, want y", name)
		}
	}

	if !IsBinding(err) || IsValidation(err) {
		t.Errorf("missing operand misclassified: %v", err)
	}

	got, err := e.Calculate(map[string]float64{"x": 2, "y": 3, "unused": 9})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	if got != 5 {
		t.Errorf("Calculate = %v, want 5", got)
	}

	if _, ok := e.Value("unused"); ok {
		t.Error("unused binding added to operand table")
	}
}

func TestExpression_MissingOperandIsDeterministic(t *testing.T) {
	e, err := New("d + c + b + a")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for range 10 {
		_, err := e.Calculate(map[string]float64{"c": 1})

		ee, ok := AsError(err)
		if !ok {
			t.Fatalf("expected *Error, got %v", err)
		}

		if name, _ := ee.Name(); name != "a" {
			t.Fatalf("first missing operand = %q, want a", name)
		}
	}
}

func TestExpression_CalculateIdempotent(t *testing.T) {
	e, err := New(demoInfix)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	bindings := map[string]float64{
		"ab": 5, "babcd": 2, "cd": 8, "dc": 3, "e": 5, "f": -4, "gh": 0.5,
	}

	first, err := e.Calculate(bindings)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	for range 5 {
		got, err := e.Calculate(bindings)
		if err != nil {
			t.Fatalf("Calculate error: %v", err)
		}

		if got != first {
			t.Fatalf("Calculate = %v, previously %v", got, first)
		}
	}
}

func TestExpression_RecalculateWithNewBindings(t *testing.T) {
	e, err := New("a * b")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, tt := range []struct{ a, b, want float64 }{
		{2, 3, 6},
		{-1, 4, -4},
		{0.5, 0.5, 0.25},
	} {
		got, err := e.Calculate(map[string]float64{"a": tt.a, "b": tt.b})
		if err != nil {
			t.Fatalf("Calculate error: %v", err)
		}

		if got != tt.want {
			t.Errorf("Calculate(a=%v, b=%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}

		if v, _ := e.Value("a"); v != tt.a {
			t.Errorf("Value(a) = %v, want %v", v, tt.a)
		}
	}
}

// referenceEnv supplies the named functions to the reference evaluator.
var referenceEnv = map[string]any{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"sqrt": math.Sqrt,
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func TestConvert_MatchesReferenceEvaluator(t *testing.T) {
	tests := []string{
		"2 + 3 * 4",
		"(1 + 2) * 3 - 4 / 8",
		"-(3 - 5) * 2",
		"10 - 4 - 3",
		"64 / 4 / 2",
		"2.5 * (1.5 + -0.5)",
		"sin(1.0) + cos(2.0) * sqrt(9.0)",
		"3 ^ 2 + 1",
		"((2 + 3) * (7 - 4)) / (1.5 * 2)",
		"1 - -1",
		"2 * sqrt(2.0) - cos(0.25) / 3",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			ref, err := expr.Eval(input, referenceEnv)
			if err != nil {
				t.Fatalf("reference evaluation failed: %v", err)
			}

			want, ok := toFloat(ref)
			if !ok {
				t.Fatalf("reference result %v (%T) is not numeric", ref, ref)
			}

			if err := Validate(input); err != nil {
				t.Fatalf("Validate error: %v", err)
			}

			postfix, _ := Convert(input)

			got, err := Evaluate(postfix, Operands{})
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", postfix, err)
			}

			if math.Abs(got-want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, reference = %v", postfix, got, want)
			}
		})
	}
}

func TestExpression_WithLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithTimeLayout("none"))

	e, err := New("x + 1", WithLogger(logger))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := e.Calculate(map[string]float64{"x": 1}); err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"msg=compiled", "msg=evaluated", `postfix="x 1 + "`, "result=2"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in log output:\n%s", want, output)
		}
	}
}
