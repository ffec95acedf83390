/*
Package lang provides the surface syntax of PrettyLisp: a lexmachine based
scanner and a recursive descent parser producing AST nodes.

PrettyLisp knows four kinds of brackets:

	(name a b …)    function call
	<a name b>      binary call, i.e. (name a b)
	[a b …]         array literal
	{a b …}         expression block

Binary calls may omit the operator if the right hand side is a number:
`<x -1>` reads as `<x + -1>` and `<x 2>` as `<x * 2>`.

Comments start with '#' and extend to the next '$' or the end of the line.
A backslash followed by a character is a character literal, denoting the
code of that character.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'prettylisp.lang'
func tracer() tracing.Trace {
	return tracing.Select("prettylisp.lang")
}
