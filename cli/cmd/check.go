package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/acalc/lang"
)

// Check validates expressions without evaluating them.
type Check struct {
	Expressions []string `arg:"" help:"Infix expressions to validate."`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	out := outputFrom(ctx)
	logger := commandLogger("check")

	var failed int

	for _, text := range c.Expressions {
		err := lang.Validate(text)
		if err != nil {
			failed++

			logger.DebugContext(ctx, "invalid expression",
				slog.String("infix", text), slog.Any("error", err))
			diagnose(out.stderr, text, err)

			continue
		}

		fmt.Fprintf(out.stdout, "ok  %s\n", text)
	}

	if failed > 0 {
		return ErrInvalid.With(
			slog.Int("failed", failed),
			slog.Int("total", len(c.Expressions)),
		)
	}

	return nil
}
