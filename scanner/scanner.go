/*
Package scanner defines the tokenizer contract between the PrettyLisp lexer
and its parser.

The tokenizer implementation in use is an adapter for lexmachine, living in
sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'prettylisp.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("prettylisp.scanner")
}

// EOF is the token type signalling the end of input.
const EOF prettylisp.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() prettylisp.Token
	SetErrorHandler(func(error))
}

// LogError is the default error handler for tokenizers. It traces the error
// and otherwise ignores it.
func LogError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// Position locates a token in the input.
type Position struct {
	Line int             // 1-based source line the token starts on
	Span prettylisp.Span // byte offsets of the lexeme
}

// DefaultToken is the token type produced by the lexmachine adapter.
type DefaultToken struct {
	Type prettylisp.TokType
	Text string
	Val  interface{} // decoded value, e.g. an unescaped string
	Pos  Position
}

var _ prettylisp.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ prettylisp.TokType, lexeme string, val interface{}, pos Position) DefaultToken {
	return DefaultToken{Type: typ, Text: lexeme, Val: val, Pos: pos}
}

// EOFToken is returned by tokenizers at the end of input.
func EOFToken() DefaultToken {
	return DefaultToken{Type: EOF}
}

func (t DefaultToken) TokType() prettylisp.TokType { return t.Type }
func (t DefaultToken) Lexeme() string              { return t.Text }
func (t DefaultToken) Value() interface{}          { return t.Val }
func (t DefaultToken) Line() int                   { return t.Pos.Line }
func (t DefaultToken) Span() prettylisp.Span       { return t.Pos.Span }

func (t DefaultToken) String() string {
	if t.Type == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%d:(%d) %q", t.Pos.Line, t.Type, t.Text)
}
