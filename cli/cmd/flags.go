package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/log"
)

// BindingFlags are the variable bindings shared by commands that evaluate.
type BindingFlags struct {
	Define map[string]float64 `help:"Bind a variable (repeatable)." placeholder:"NAME=VALUE" short:"D"`
}

// ReportFlags select how a result is printed.
type ReportFlags struct {
	Format string `default:"text" enum:"${formatEnum}" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                         help:"Indent width for json and yaml (0 for compact)."`
}

func (f ReportFlags) format() (lang.Format, error) {
	return lang.ParseFormat(f.Format)
}

// commandLogger returns the default logger tagged with the command name.
func commandLogger(name string, attrs ...slog.Attr) log.Logger {
	return log.With(append([]slog.Attr{slog.String("command", name)}, attrs...)...)
}

// diagnose writes a one-line description of err to w, followed by a caret
// under the offending position of src when err carries one.
func diagnose(w io.Writer, src string, err error) {
	fmt.Fprintf(w, "error: %v\n", err)

	if e, ok := lang.AsError(err); ok && lang.IsValidation(err) {
		// An unmatched opening bracket reports a bracket count, not an offset.
		if !e.Is(lang.ErrUnmatchedOpeningBracket) {
			fmt.Fprint(w, e.Caret(src))
		}
	}
}

// compile builds the expression for a command, wrapping failures in
// [ErrCompile].
func compile(
	ctx context.Context,
	text string,
	opts ...lang.Option,
) (*lang.Expression, error) {
	x, err := lang.New(text, opts...)
	if err != nil {
		diagnose(outputFrom(ctx).stderr, text, err)

		return nil, ErrCompile.With(slog.String("infix", text)).Wrap(err)
	}

	return x, nil
}
