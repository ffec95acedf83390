/*
Package lexmach wraps the lexmachine DFA scanner generator as a
scanner.Tokenizer.

See https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html
for an introduction to lexmachine.

A lexer is compiled from a rules function, which adds the regular
expressions for comments, whitespace and variable tokens, and a table of
punctuation lexemes. Patterns are bound to actions:

	Skip      drops the match (whitespace, comments)
	Token     turns the match into a token, value is the lexeme
	Convert   turns the match into a token, value is computed from the lexeme

	adapter, err := lexmach.NewLMAdapter(rules, punctuation)
	…
	scan, err := adapter.Scanner(input)
	for tok := scan.NextToken(); tok.TokType() != scanner.EOF; tok = scan.NextToken() {
		…
	}

Compiling the DFA is expensive: create an adapter once and a scanner per
input. Input which no pattern matches is reported to the scanner's error
handler and skipped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
