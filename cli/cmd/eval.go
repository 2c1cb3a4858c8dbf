package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/acalc/lang"
)

// Eval evaluates a single expression.
type Eval struct {
	BindingFlags `embed:""`
	ReportFlags  `embed:""`

	Quiet      bool   `help:"Print only the result."                short:"q"`
	Expression string `arg:""                                       help:"Infix expression to evaluate."`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := e.format()
	if err != nil {
		return err
	}

	x, err := compile(ctx, e.Expression, lang.WithLogger(commandLogger("eval")))
	if err != nil {
		return err
	}

	result, err := x.Calculate(e.Define)
	if err != nil {
		return ErrEvaluate.
			With(slog.String("postfix", x.Postfix())).
			Wrap(err)
	}

	out := outputFrom(ctx).stdout

	if e.Quiet {
		_, err = fmt.Fprintln(out, lang.FormatNumber(result))

		return err
	}

	return x.Report(result).Write(ctx, out, format, e.Indent)
}
