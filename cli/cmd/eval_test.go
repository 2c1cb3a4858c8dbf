package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ardnew/acalc/lang"
)

// capture returns a context whose command output is written to the returned
// buffers.
func capture() (ctx context.Context, stdout, stderr *bytes.Buffer) {
	stdout, stderr = new(bytes.Buffer), new(bytes.Buffer)

	return WithOutput(context.Background(), stdout, stderr), stdout, stderr
}

func TestEvalRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmd     Eval
		want    string
		wantErr []error
		stderr  string
	}{
		{
			name: "quiet",
			cmd:  Eval{Quiet: true, Expression: "1 + 2 * 3"},
			want: "7\n",
		},
		{
			name: "text_report",
			cmd: Eval{
				BindingFlags: BindingFlags{Define: map[string]float64{"a": 4}},
				Expression:   "a * 2",
			},
			want: "Infix:    a * 2\n" +
				"Postfix:  a 2 *\n" +
				"Operands: a=4\n" +
				"Result:   8\n",
		},
		{
			name: "unused_binding_ignored",
			cmd: Eval{
				BindingFlags: BindingFlags{Define: map[string]float64{"b": 1}},
				Quiet:        true,
				Expression:   "2^3",
			},
			want: "8\n",
		},
		{
			name:    "missing_operand",
			cmd:     Eval{Expression: "a + b"},
			wantErr: []error{ErrEvaluate, lang.ErrMissingOperand},
		},
		{
			name:    "division_by_zero",
			cmd:     Eval{Expression: "1 / (2 - 2)"},
			wantErr: []error{ErrEvaluate, lang.ErrDivisionByZero},
		},
		{
			name:    "invalid_character",
			cmd:     Eval{Expression: "1 & 2"},
			wantErr: []error{ErrCompile, lang.ErrInvalidCharacter},
			stderr:  "error: invalid character at position 2\n  1 & 2\n    ^\n",
		},
		{
			name:    "unmatched_opening_has_no_caret",
			cmd:     Eval{Expression: "(1"},
			wantErr: []error{ErrCompile, lang.ErrUnmatchedOpeningBracket},
			stderr:  "error: unmatched opening bracket at position 0\n",
		},
		{
			name:    "invalid_format",
			cmd:     Eval{ReportFlags: ReportFlags{Format: "xml"}, Expression: "1"},
			wantErr: []error{lang.ErrInvalidFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, stdout, stderr := capture()

			err := tt.cmd.Run(ctx)

			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Run() error = %v, want %v", err, want)
				}
			}

			if len(tt.wantErr) == 0 && err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}

			if got := stderr.String(); got != tt.stderr {
				t.Errorf("stderr = %q, want %q", got, tt.stderr)
			}
		})
	}
}

func TestEvalRunJSON(t *testing.T) {
	t.Parallel()

	ctx, stdout, _ := capture()

	cmd := Eval{
		BindingFlags: BindingFlags{Define: map[string]float64{"x": 9}},
		ReportFlags:  ReportFlags{Format: "json"},
		Expression:   "sqrt(x)",
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got struct {
		Infix    string             `json:"infix"`
		Operands map[string]float64 `json:"operands"`
		Result   float64            `json:"result"`
	}

	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}

	if got.Infix != "sqrt(x)" || got.Result != 3 || got.Operands["x"] != 9 {
		t.Errorf("unexpected report: %+v", got)
	}
}

func TestPostfixRun(t *testing.T) {
	t.Parallel()

	ctx, stdout, _ := capture()

	cmd := Postfix{Tokens: true, Expression: "-b + 2"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2+4 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), stdout)
	}

	if lines[0] != "b _ 2 +" {
		t.Errorf("postfix = %q, want %q", lines[0], "b _ 2 +")
	}

	if lines[1] != "operands: b" {
		t.Errorf("operands = %q, want %q", lines[1], "operands: b")
	}

	if f := strings.Fields(lines[2]); f[0] != "0" || f[len(f)-1] != lang.UnaryMinus {
		t.Errorf("first token line = %q", lines[2])
	}
}

func TestPostfixRunInvalid(t *testing.T) {
	t.Parallel()

	ctx, stdout, stderr := capture()

	err := (&Postfix{Expression: "1 +)"}).Run(ctx)
	if !errors.Is(err, lang.ErrUnmatchedClosingBracket) {
		t.Fatalf("Run() error = %v, want %v", err, lang.ErrUnmatchedClosingBracket)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout)
	}

	if !strings.Contains(stderr.String(), "   ^") {
		t.Errorf("stderr missing caret: %q", stderr)
	}
}

func TestCheckRun(t *testing.T) {
	t.Parallel()

	ctx, stdout, stderr := capture()

	cmd := Check{Expressions: []string{"1 + 2", "a $ b", "sin(x)", "((1)"}}

	err := cmd.Run(ctx)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Run() error = %v, want %v", err, ErrInvalid)
	}

	if got, want := stdout.String(), "ok  1 + 2\nok  sin(x)\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	for _, want := range []string{"invalid character at position 2", "unmatched opening bracket"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}

	ctx, _, _ = capture()
	if err := (&Check{Expressions: []string{"1"}}).Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

func TestDemoRun(t *testing.T) {
	t.Parallel()

	ctx, stdout, stderr := capture()

	if err := (&Demo{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	x, err := lang.New(demoExpression)
	if err != nil {
		t.Fatal(err)
	}

	result, err := x.Calculate(demoBindings)
	if err != nil {
		t.Fatal(err)
	}

	want := "Infix:   " + demoExpression + "\n" +
		"Postfix: " + strings.TrimSpace(x.Postfix()) + "\n" +
		"Result:  " + lang.FormatNumber(result) + "\n"

	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestReplRequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("running attached to a terminal")
	}

	err := (&Repl{}).Run(context.Background())
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Run() error = %v, want %v", err, ErrNotTerminal)
	}
}
