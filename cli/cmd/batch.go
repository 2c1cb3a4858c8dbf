package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/log"
)

// Batch evaluates one expression per line of its input files.
type Batch struct {
	BindingFlags `embed:""`

	FailFast bool     `help:"Stop at the first failing line."`
	Sources  []string `arg:""                                 default:"-" help:"Input files (- for stdin)." optional:""`
}

// Run executes the batch command.
func (b *Batch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources := b.Sources
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	ctx = WithSourceFiles(ctx, sources)

	src := sourceFilesFrom(ctx)
	if src == nil {
		return ErrNoInput
	}
	defer src.Close()

	run := batchRun{
		Batch:  b,
		out:    outputFrom(ctx),
		cache:  lang.NewCache(),
		logger: commandLogger("batch", slog.String("run", uuid.NewString())),
	}

	start := time.Now()

	for s := range src.All() {
		err = run.source(ctx, s)
		if err != nil {
			break
		}
	}

	run.logger.InfoContext(ctx, "batch complete",
		slog.Int("total", run.total),
		slog.Int("failed", run.failed),
		slog.Int("compiled", run.cache.Len()),
		slog.Duration("elapsed", time.Since(start)),
	)

	if err != nil {
		return err
	}

	if run.failed > 0 {
		return ErrBatch.With(
			slog.Int("failed", run.failed),
			slog.Int("total", run.total),
		)
	}

	return nil
}

// batchRun holds the state shared across the sources of one batch.
type batchRun struct {
	*Batch

	out    output
	cache  *lang.Cache
	logger log.Logger

	total, failed int
}

// source evaluates every line of s. It returns an error only when s cannot
// be read or a line fails in fail-fast mode.
func (r *batchRun) source(ctx context.Context, s Source) error {
	lines, err := lang.ReadLines(ctx, s)
	if err != nil {
		return ErrBatch.With(slog.String("source", s.Name)).Wrap(err)
	}

	logger := r.logger.With(slog.String("source", s.Name))

	for _, line := range lines {
		r.total++

		result, err := r.line(logger, line)
		if err != nil {
			r.failed++

			fmt.Fprintf(r.out.stderr, "%s:%d: ", s.Name, line.Number)
			diagnose(r.out.stderr, line.Text, err)

			if r.FailFast {
				return ErrBatch.With(
					slog.String("source", s.Name),
					slog.Int("line", line.Number),
				).Wrap(err)
			}

			continue
		}

		fmt.Fprintf(r.out.stdout, "%s = %s\n",
			line.Text, lang.FormatNumber(result))
	}

	return nil
}

func (r *batchRun) line(logger log.Logger, line lang.Line) (float64, error) {
	x, err := lang.New(line.Text,
		lang.WithCache(r.cache),
		lang.WithLogger(logger.With(slog.Int("line", line.Number))),
	)
	if err != nil {
		return 0, err
	}

	return x.Calculate(r.Define)
}
