package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const demoInfix = "-(-ab +babcd* (-(cd - dc)))/ e + (3.5^2 - gh^3) + sin(7) /sqrt(-f) * 3!"

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		postfix  string
		operands []string
	}{
		{"addition", "2 + 3", "2 3 + ", nil},
		{"functions", "sin(x) + cos(y)", "x sin y cos + ", []string{"x", "y"}},
		{"unary minus", "-2 + 3", "2 _ 3 + ", nil},
		{"left associative", "a - b - c", "a b - c - ", []string{"a", "b", "c"}},
		{"power left associative", "2 ^ 3 ^ 2", "2 3 ^ 2 ^ ", nil},
		{"precedence", "a + b * c", "a b c * + ", []string{"a", "b", "c"}},
		{"grouping", "a * (b + c)", "a b c + * ", []string{"a", "b", "c"}},
		{"factorial", "5!", "5 ! ", nil},
		{"negated group", "-(3 - 5) * 2", "3 5 - _ 2 * ", nil},
		{"nested functions", "sqrt(log(x))", "x log sqrt ", []string{"x"}},
		{"repeated variable", "x * x + x", "x x * x + ", []string{"x"}},
		{
			"sample",
			demoInfix,
			"ab _ babcd cd dc - _ * + _ e / 3.5 2 ^ gh 3 ^ - + 7 sin f _ sqrt / 3 ! * + ",
			[]string{"ab", "babcd", "cd", "dc", "e", "f", "gh"},
		},
		{"empty", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postfix, operands := Convert(tt.input)

			if postfix != tt.postfix {
				t.Errorf("Convert(%q) postfix = %q, want %q", tt.input, postfix, tt.postfix)
			}

			got := operands.Names()
			if len(got) == 0 && len(tt.operands) == 0 {
				return
			}

			if diff := cmp.Diff(tt.operands, got); diff != "" {
				t.Errorf("Convert(%q) operands mismatch (-want +got):\n%s", tt.input, diff)
			}

			for name, v := range operands {
				if v != 0 {
					t.Errorf("operand %q = %v, want 0", name, v)
				}
			}
		})
	}
}

func TestConvert_UnbalancedDoesNotPanic(t *testing.T) {
	tests := []struct {
		input   string
		postfix string
	}{
		{"(1 + 2", "1 2 + "},
		{"1 + 2)", "1 2 + "},
		{")(", ""},
	}

	for _, tt := range tests {
		postfix, _ := Convert(tt.input)
		if postfix != tt.postfix {
			t.Errorf("Convert(%q) = %q, want %q", tt.input, postfix, tt.postfix)
		}
	}
}
