package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/acalc/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithLevel(log.LevelInfo))
	logger.Info("expression compiled", slog.String("postfix", "2 3 + "))
	// Output:
	// level=INFO msg="expression compiled" postfix="2 3 + "
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithLevel(log.LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output:
	// level=WARN msg="warning message" key=value
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithLevel(log.LevelDebug))
	logger.DebugContext(ctx, "evaluating", slog.String("infix", "x * 2"))
	// Output:
	// level=DEBUG msg=evaluating infix="x * 2"
}
