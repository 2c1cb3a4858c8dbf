package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ardnew/acalc/lang"
)

// Postfix prints the postfix form of an expression without evaluating it.
type Postfix struct {
	Tokens     bool   `help:"Also list the lexed tokens." short:"t"`
	Expression string `arg:""                             help:"Infix expression to convert."`
}

// Run executes the postfix command.
func (p *Postfix) Run(ctx context.Context) error {
	x, err := compile(ctx, p.Expression,
		lang.WithLogger(commandLogger("postfix")))
	if err != nil {
		return err
	}

	out := outputFrom(ctx).stdout

	fmt.Fprintln(out, strings.TrimSpace(x.Postfix()))

	if names := x.Operands(); len(names) > 0 {
		fmt.Fprintln(out, "operands:", strings.Join(names, " "))
	}

	if !p.Tokens {
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, tok := range x.Tokens() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Pos, tok.Kind, tok.Text)
	}

	return tw.Flush()
}
