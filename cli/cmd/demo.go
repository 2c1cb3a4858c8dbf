package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/acalc/lang"
)

// demoExpression exercises every operator, bracket nesting, unary minus, and
// each built-in function.
const demoExpression = "-(-ab +babcd* (-(cd - dc)))/ e + (3.5^2 - gh^3) + sin(7) /sqrt(-f) * 3!"

// demoBindings are the variable values used by [Demo].
var demoBindings = map[string]float64{
	"ab":    5,
	"babcd": 2,
	"cd":    8,
	"dc":    3,
	"e":     5,
	"f":     -4,
	"gh":    0.5,
}

// Demo evaluates a fixed sample expression.
//
// Failures are reported on stderr and never fail the command.
type Demo struct{}

// Run executes the demo command.
func (*Demo) Run(ctx context.Context) error {
	out := outputFrom(ctx)

	x, err := lang.New(demoExpression, lang.WithLogger(commandLogger("demo")))
	if err != nil {
		diagnose(out.stderr, demoExpression, err)

		return nil
	}

	fmt.Fprintln(out.stdout, "Infix:  ", x.Infix())
	fmt.Fprintln(out.stdout, "Postfix:", strings.TrimSpace(x.Postfix()))

	result, err := x.Calculate(demoBindings)
	if err != nil {
		diagnose(out.stderr, demoExpression, err)

		return nil
	}

	fmt.Fprintln(out.stdout, "Result: ", lang.FormatNumber(result))

	return nil
}
