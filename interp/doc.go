/*
Package interp is a tree-walking interpreter for PrettyLisp.

An Interpreter evaluates AST nodes, as produced by package lang, against a
runtime.Runtime. Every non-leaf node evaluation opens a frame with a fresh
scope id and, when done, closes it again, pruning every binding declared
deeper than the node itself. Declarations made by a keyword node belong to
that node's scope and therefore remain visible to its later siblings.

Calls are dispatched in two steps: keywords (set, declare, if, while, define,
…) are intercepted before their arguments are evaluated, as some argument
positions have to be evaluated lazily or not at all. Everything else is an
ordinary call: arguments are evaluated left to right and the function bound
to the name is invoked, either a built-in or a user-defined function.

	intp := interp.New(interp.WithOutput(os.Stdout))
	prog, err := lang.Parse(`(declare x 5) (println <x + 1>)`)
	…
	err = intp.Run(prog)

An Interpreter is not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'prettylisp.interp'.
func tracer() tracing.Trace {
	return tracing.Select("prettylisp.interp")
}
