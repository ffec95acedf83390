/*
Package prepl/main provides a command line tool (P.REPL) for PrettyLisp.

Called with a script path, P.REPL runs the script. Called with `-c`, it runs
the given expression and prints its value. Without either, it reads a program
from stdin, or, if stdin is a terminal, enters interactive mode, where every
line entered is evaluated and its value printed. A line ending in a backslash
is continued on the next line.

Interactive mode knows some commands:

	exit     quit P.REPL
	reset    discard all variables and functions
	debug    toggle debug tracing and display of parse trees
	file     read a file name from the next line and run that file


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'prettylisp.lang'
func tracer() tracing.Trace {
	return tracing.Select("prettylisp.lang")
}
