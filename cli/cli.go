package cli

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acalc/cli/cmd"
	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/pkg"
)

// Base names of the configuration files in [pkg.ConfigDir].
const (
	jsonConfig = "config.json"
	yamlConfig = "config.yaml"
)

// CLI is the top-level command-line interface for acalc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Eval    cmd.Eval    `cmd:"" default:"withargs" help:"Evaluate an expression (default)"`
	Postfix cmd.Postfix `cmd:""                    help:"Print the postfix form of an expression"`
	Check   cmd.Check   `cmd:""                    help:"Validate expressions"`
	Batch   cmd.Batch   `cmd:""                    help:"Evaluate one expression per line of input"`
	Demo    cmd.Demo    `cmd:""                    help:"Evaluate the built-in sample expression"`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session"`
	Init    cmd.Init    `cmd:""                    help:"Write a configuration file with current flag values"`
}

// Run executes the acalc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: pkg.ConfigPath(yamlConfig),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
		"formatEnum":         strings.Join(slices.Collect(lang.Formats()), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that they apply to errors reported while
	// parsing, regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(jsonConfig)),
		kong.Configuration(loadYAML, pkg.ConfigPath(yamlConfig)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOutput(ctx, os.Stdout, os.Stderr)
	ktx.BindTo(ctx, (*context.Context)(nil))

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
