package repl

import (
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		want   functionCall
	}{
		{"open_call", "sin(", 4, functionCall{"sin", true}},
		{"inside_arg", "1 + sqrt(a + b", 14, functionCall{"sqrt", true}},
		{"nested_closed", "log(cos(1) + ", 13, functionCall{"log", true}},
		{"inner_call", "log(cos(1", 9, functionCall{"cos", true}},
		{"space_before_paren", "sin (x", 6, functionCall{"sin", true}},
		{"closed_call", "sin(1) + ", 9, functionCall{}},
		{"plain_group", "(a + b", 6, functionCall{}},
		{"identifier_group", "ab(c", 4, functionCall{}},
		{"cursor_before_call", "x + sin(1)", 2, functionCall{}},
		{"empty", "", 0, functionCall{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFunctionCall(tt.input, tt.cursor); got != tt.want {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want %+v",
					tt.input, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	for fn, sig := range signatures {
		hint := renderSignatureHint(fn)
		if !strings.Contains(hint, fn) || !strings.Contains(hint, sig.summary) {
			t.Errorf("renderSignatureHint(%q) = %q", fn, hint)
		}
	}

	if hint := renderSignatureHint("tan"); hint != "" {
		t.Errorf("renderSignatureHint(tan) = %q, want empty", hint)
	}
}
