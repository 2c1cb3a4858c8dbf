// Package cmd implements the acalc commands.
//
// Each command is a Kong command struct with a Run(context.Context) error
// method. Commands read the output streams, the Kong context, and the
// source files from the context.Context passed to Run, so they can be
// exercised without a parser:
//
//	var out bytes.Buffer
//	ctx := cmd.WithOutput(context.Background(), &out, io.Discard)
//	err := (&cmd.Eval{Expression: "1 + 2"}).Run(ctx)
package cmd

// Kong variable identifiers shared with the cli package.
var (
	CacheIdentifier  = "cache"
	ConfigIdentifier = "config"
)
