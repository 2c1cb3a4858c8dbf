package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func sampleReport(t *testing.T) Report {
	t.Helper()

	e, err := New("x * y + 1")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	v, err := e.Calculate(map[string]float64{"x": 2, "y": 1.5})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	return e.Report(v)
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer

	if err := sampleReport(t).Write(context.Background(), &buf, FormatText, 0); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	want := "Infix:    x * y + 1\n" +
		"Postfix:  x y * 1 +\n" +
		"Operands: x=2 y=1.5\n" +
		"Result:   4\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("text report mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_WriteTextWithoutOperands(t *testing.T) {
	var buf bytes.Buffer

	r := Report{Infix: "2 + 3", Postfix: "2 3 + ", Result: 5}
	if err := r.Write(context.Background(), &buf, FormatText, 0); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if strings.Contains(buf.String(), "Operands:") {
		t.Errorf("unexpected operands line:\n%s", buf.String())
	}
}

func TestReport_WriteJSON(t *testing.T) {
	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer

		want := sampleReport(t)
		if err := want.Write(context.Background(), &buf, FormatJSON, indent); err != nil {
			t.Fatalf("Write error: %v", err)
		}

		var got Report
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", buf.String(), err)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("indent %d: JSON round trip mismatch (-want +got):\n%s", indent, diff)
		}
	}
}

func TestReport_WriteJSONNonFinite(t *testing.T) {
	var buf bytes.Buffer

	r := Report{Infix: "0 ^ -1", Postfix: "0 1 _ ^ ", Result: math.Inf(1)}
	if err := r.Write(context.Background(), &buf, FormatJSON, 0); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if got["result"] != "+Inf" {
		t.Errorf("result = %v, want \"+Inf\"", got["result"])
	}
}

func TestReport_WriteYAML(t *testing.T) {
	for _, indent := range []int{0, 4} {
		var buf bytes.Buffer

		want := sampleReport(t)
		if err := want.Write(context.Background(), &buf, FormatYAML, indent); err != nil {
			t.Fatalf("Write error: %v", err)
		}

		var got Report
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid YAML %q: %v", buf.String(), err)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("indent %d: YAML round trip mismatch (-want +got):\n%s", indent, diff)
		}
	}
}

func TestReport_WriteInvalidFormat(t *testing.T) {
	err := Report{}.Write(context.Background(), &bytes.Buffer{}, Format(9), 0)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Write error = %v, want invalid format", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
		}

		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json", "yaml"}) {
		t.Errorf("Formats() = %v", got)
	}
}
