/*
Package prettylisp is a small, dynamically typed expression language with
a tree-walking interpreter.

Source text is tokenized, parsed into a homogenous tree and executed by an
evaluator which interprets the tree directly on every visit. Package
structure is as follows:

■ lang: Package lang defines the surface syntax (tokens and grammar) and
parses source text into an AST. Sub-package prepl is a command line runner and
interactive REPL.

■ ast: Package ast defines the node kinds the evaluator consumes.

■ value: Package value defines the runtime values of the language.

■ runtime: Package runtime implements the binding store and scope manager.

■ interp: Package interp implements the evaluation engine, including the
built-in operations.

The base package contains the error taxonomy and token types, which are used
throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package prettylisp
