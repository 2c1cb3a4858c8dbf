package cmd

import (
	"context"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/acalc/cli/cmd/repl"
	"github.com/ardnew/acalc/pkg"
)

// Repl starts an interactive session.
type Repl struct {
	BindingFlags `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	cacheDir := kongVar(ctx, CacheIdentifier, pkg.CacheDir())

	return repl.Run(ctx, osfs.New(cacheDir), r.Define, commandLogger("repl"))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
