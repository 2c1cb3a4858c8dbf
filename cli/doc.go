// Package cli contains the command line interface for acalc.
//
// # Usage
//
// The default command evaluates its argument:
//
//	acalc '2 * (a + 1)' -D a=3
//
// Other commands print the postfix form (postfix), validate without
// evaluating (check), evaluate a file of expressions (batch), run the
// built-in sample (demo), start an interactive session (repl), and write a
// configuration file (init).
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory (for example ~/.config/acalc). YAML keys name
// flags with either hyphens or underscores, and nested mappings are joined
// with hyphens:
//
//	log:
//	  level: debug
//	define:
//	  a: 3
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output (default when stderr is a terminal)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o acalc .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/acalc/pprof)
package cli
