package main

import (
	"github.com/docopt/docopt-go"
)

var usage = `prepl

Usage:
  prepl [--trace=LEVEL] [--profile=FILE] [SCRIPT]
  prepl [--trace=LEVEL] [--profile=FILE] -c EXPR
  prepl -h

Arguments:
  SCRIPT  Path to a PrettyLisp program.

Options:
  -c, --command=EXPR   Evaluate EXPR and print its value.
  -t, --trace=LEVEL    Trace level [Debug|Info|Error].
  -p, --profile=FILE   Load settings and init scripts from a YAML profile.
  -h, --help           Display this help.

If no script or expression is given and stdin is a terminal, prepl starts in
interactive mode. Otherwise a program is read from stdin.
`

// options is the command line configuration of P.REPL.
type options struct {
	script      string
	command     string
	trace       string
	profile     string
	interactive bool
}

// parseOptions interprets command line arguments. tty tells if stdin is a terminal.
func parseOptions(argv []string, tty bool) (*options, error) {
	opts, err := docopt.ParseArgs(usage, argv, "")
	if err != nil {
		return nil, err
	}
	o := &options{}
	o.command, _ = opts.String("--command")
	o.script, _ = opts.String("SCRIPT")
	o.trace, _ = opts.String("--trace")
	o.profile, _ = opts.String("--profile")
	o.interactive = o.script == "" && o.command == "" && tty
	return o, nil
}
