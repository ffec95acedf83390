package prettylisp

import "fmt"

// TokType categorizes tokens. The constants are defined by package lang.
type TokType int

// Token is a terminal of PrettyLisp, as delivered from the scanner to the parser.
//
// A numeric literal on line 12 of a source, for example:
//
//    TokType = lang.Number
//    Lexeme  = "-3.5e2"
//    Value   = "-3.5e2"     // numbers are converted by the parser
//    Line    = 12
//    Span    = 67…73        // byte offsets into the source
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Line() int
	Span() Span
}

// Span is a run of input bytes, from a start offset to the offset just behind
// the end.
type Span [2]uint64 // (x…y)

// From returns the start offset.
func (s Span) From() uint64 { return s[0] }

// Len returns the number of bytes spanned.
func (s Span) Len() uint64 { return s[1] - s[0] }

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
