package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects the encoding of a [Report].
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
	FormatYAML               // yaml
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Formats returns an iterator over the names of all report formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, ErrInvalidFormat.With(slog.String("format", s))
	}
}

// Report is the outcome of evaluating an expression.
type Report struct {
	Infix    string   `json:"infix"    yaml:"infix"`
	Postfix  string   `json:"postfix"  yaml:"postfix"`
	Operands Operands `json:"operands" yaml:"operands,omitempty"`
	Result   float64  `json:"result"   yaml:"result"`
}

// Write encodes the report to w. Indent applies to JSON and YAML; a
// non-positive indent selects compact output.
func (r Report) Write(ctx context.Context, w io.Writer, format Format, indent int) error {
	switch format {
	case FormatText:
		return r.writeText(w)
	case FormatJSON:
		return r.writeJSON(w, indent)
	case FormatYAML:
		return r.writeYAML(ctx, w, indent)
	default:
		return ErrInvalidFormat.With(slog.String("format", format.String()))
	}
}

func (r Report) writeText(w io.Writer) error {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Infix:    %s\n", r.Infix)
	fmt.Fprintf(&buf, "Postfix:  %s\n", strings.TrimSpace(r.Postfix))

	if names := r.Operands.Names(); len(names) > 0 {
		pairs := make([]string, len(names))
		for i, name := range names {
			pairs[i] = name + "=" + FormatNumber(r.Operands[name])
		}

		fmt.Fprintf(&buf, "Operands: %s\n", strings.Join(pairs, " "))
	}

	fmt.Fprintf(&buf, "Result:   %s\n", FormatNumber(r.Result))

	_, err := io.WriteString(w, buf.String())

	return err
}

// jsonReport mirrors Report with non-finite numbers encoded as strings,
// which encoding/json cannot represent as numbers.
type jsonReport struct {
	Infix    string         `json:"infix"`
	Postfix  string         `json:"postfix"`
	Operands map[string]any `json:"operands"`
	Result   any            `json:"result"`
}

// MarshalJSON implements json.Marshaler for Report.
func (r Report) MarshalJSON() ([]byte, error) {
	operands := make(map[string]any, len(r.Operands))
	for name, v := range r.Operands {
		operands[name] = jsonNumber(v)
	}

	return json.Marshal(jsonReport{
		Infix:    r.Infix,
		Postfix:  r.Postfix,
		Operands: operands,
		Result:   jsonNumber(r.Result),
	})
}

func jsonNumber(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return FormatNumber(v)
	}

	return v
}

func (r Report) writeJSON(w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(r, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(r)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

func (r Report) writeYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, r, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)
	if err == nil && indent <= 0 {
		_, err = fmt.Fprintln(w)
	}

	return err
}

// FormatNumber formats v in the shortest form that parses back to v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
