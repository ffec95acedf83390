package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/prettylisp/ast"
	"github.com/npillmayer/prettylisp/interp"
	"github.com/npillmayer/prettylisp/lang"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

const defaultPrompt = "prepl> "
const continuation = "   ... "

// traceKeys are the tracers of all packages of PrettyLisp.
var traceKeys = []string{
	"prettylisp.runtime",
	"prettylisp.interp",
	"prettylisp.lang",
	"prettylisp.scanner",
}

// main() either runs a PrettyLisp program or starts an interactive CLI
// ("P.REPL"), where users may enter PrettyLisp expressions. P.REPL will
// evaluate the expressions and print out the results.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	opts, err := parseOptions(os.Args[1:], isatty.IsTerminal(os.Stdin.Fd()))
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	prof := &profile{}
	if opts.profile != "" {
		if prof, err = loadProfile(opts.profile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	prof.settle(opts)
	level := traceLevel(prof.Trace)
	setTraceLevel(level)
	tracer().Infof("Trace level is %s", prof.Trace)
	//
	if !opts.interactive {
		os.Exit(runBatch(opts, prof))
	}
	//
	// set up REPL
	repl, err := readline.New(prof.Prompt)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to P.REPL") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")     // inform user how to stop the CLI
	con := &console{rl: repl, prompt: prof.Prompt}
	intp := &Intp{
		interp:  interp.New(interp.WithOutput(con), interp.WithInput(con)),
		repl:    repl,
		console: con,
		prompt:  prof.Prompt,
		level:   level,
	}
	if err = loadInitFiles(intp.interp, prof.Init); err != nil {
		con.Flush()
		pterm.Error.Println(err.Error())
	}
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- Batch mode ------------------------------------------------------------

// runBatch runs init scripts, then a command, a script or stdin. It returns
// an exit code.
func runBatch(opts *options, prof *profile) int {
	intp := interp.New()
	if err := loadInitFiles(intp, prof.Init); err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	switch {
	case opts.command != "":
		return runCommand(intp, opts.command)
	case opts.script != "":
		source, err := os.ReadFile(opts.script)
		if err != nil {
			pterm.Error.Println(err.Error())
			return 2
		}
		return runProgram(intp, string(source))
	}
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		pterm.Error.Println(err.Error())
		return 2
	}
	return runProgram(intp, string(source))
}

// loadInitFiles runs a list of PrettyLisp files, stopping at the first error.
func loadInitFiles(intp *interp.Interpreter, files []string) error {
	for _, filename := range files {
		tracer().Infof("Loading %s", filename)
		source, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("unable to open init file: %w", err)
		}
		prog, err := lang.Parse(string(source))
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		if err = intp.Run(prog); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	return nil
}

// runProgram runs a program for its side effects. It returns an exit code.
func runProgram(intp *interp.Interpreter, source string) int {
	prog, err := lang.Parse(source)
	if err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	if err = intp.Run(prog); err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	return 0
}

// runCommand evaluates an expression given on the command line and prints
// the value of its last top-level expression.
func runCommand(intp *interp.Interpreter, source string) int {
	prog, err := lang.Parse(source)
	if err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	for i, node := range prog.Children {
		v, err := intp.Evaluate(node)
		if err != nil {
			pterm.Error.Println(err.Error())
			return 1
		}
		if i == len(prog.Children)-1 && !v.IsNull() {
			fmt.Println(v.String())
		}
	}
	return 0
}

// --- Interactive mode ------------------------------------------------------

// Intp is our interpreter object
type Intp struct {
	interp  *interp.Interpreter
	repl    *readline.Instance
	console *console
	prompt  string
	level   tracing.TraceLevel // user supplied trace level
	debug   bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		input, err := intp.readInput()
		if err != nil { // io.EOF
			break
		}
		switch strings.TrimSpace(input) {
		case "":
			continue
		case "exit":
			println("Good bye!")
			return
		case "reset":
			intp.interp.Reset()
			pterm.Info.Println("interpreter reset")
			continue
		case "debug":
			intp.toggleDebug()
			continue
		case "file":
			if input, err = intp.readFile(); err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
		}
		intp.Eval(input)
	}
	println("Good bye!")
}

// readInput reads a line, joining it with the following ones as long as
// it ends in a backslash.
func (intp *Intp) readInput() (string, error) {
	var sb strings.Builder
	intp.repl.SetPrompt(intp.prompt)
	defer intp.repl.SetPrompt(intp.prompt)
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			sb.Reset()
			intp.repl.SetPrompt(intp.prompt)
			continue
		} else if err != nil {
			return "", err
		}
		if strings.HasSuffix(line, "\\") {
			sb.WriteString(strings.TrimSuffix(line, "\\"))
			sb.WriteByte('\n')
			intp.repl.SetPrompt(continuation)
			continue
		}
		sb.WriteString(line)
		return sb.String(), nil
	}
}

func (intp *Intp) readFile() (string, error) {
	intp.repl.SetPrompt("file: ")
	defer intp.repl.SetPrompt(intp.prompt)
	name, err := intp.repl.Readline()
	if err != nil {
		return "", err
	}
	source, err := os.ReadFile(strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	return string(source), nil
}

func (intp *Intp) toggleDebug() {
	intp.debug = !intp.debug
	if intp.debug {
		setTraceLevel(tracing.LevelDebug)
		pterm.Info.Println("debug mode enabled")
		return
	}
	setTraceLevel(intp.level)
	pterm.Info.Println("debug mode disabled")
}

// Eval parses and evaluates PrettyLisp input and prints the value of every
// top-level expression. It stops at the first error.
func (intp *Intp) Eval(input string) error {
	prog, err := lang.Parse(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	if intp.debug {
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledList(prog))).Render()
	}
	for _, node := range prog.Children {
		v, err := intp.interp.Evaluate(node)
		intp.console.Flush()
		if err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		pterm.Info.Println(v.Debug())
	}
	return nil
}

// leveledList converts an AST into a pterm leveled list, to be displayed as
// a tree on a terminal.
func leveledList(prog *ast.Node) pterm.LeveledList {
	ll := pterm.LeveledList{}
	for _, item := range ast.Leveled(prog) {
		ll = append(ll, pterm.LeveledListItem{
			Level: item.Level,
			Text:  item.Text,
		})
	}
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}
