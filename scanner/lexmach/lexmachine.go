package lexmach

import (
	"sort"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'prettylisp.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("prettylisp.scanner")
}

// LMAdapter holds a compiled lexmachine DFA. It is safe to create scanners
// from one adapter concurrently.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter compiles a lexer. rules adds the patterns for comments,
// whitespace and the variable tokens; punctuation maps fixed lexemes
// ("(", "[", …) to their token types and is added after rules.
//
// An error is returned if the DFA cannot be compiled.
func NewLMAdapter(rules func(*lexmachine.Lexer), punctuation map[string]prettylisp.TokType) (*LMAdapter, error) {
	lexer := lexmachine.NewLexer()
	rules(lexer)
	lexemes := make([]string, 0, len(punctuation))
	for lexeme := range punctuation {
		lexemes = append(lexemes, lexeme)
	}
	sort.Strings(lexemes)
	for _, lexeme := range lexemes {
		lexer.Add(quote(lexeme), Token(punctuation[lexeme]))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile DFA: %v", err)
		return nil, err
	}
	return &LMAdapter{Lexer: lexer}, nil
}

// quote escapes every byte of a fixed lexeme for use as a pattern.
func quote(lexeme string) []byte {
	pattern := make([]byte, 0, 2*len(lexeme))
	for i := 0; i < len(lexeme); i++ {
		pattern = append(pattern, '\\', lexeme[i])
	}
	return pattern
}

// Scanner starts scanning input. Scanner errors go to scanner.LogError until
// a different handler is set.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{dfa: s, onError: scanner.LogError}, nil
}

// LMScanner iterates over the tokens of one input.
type LMScanner struct {
	dfa     *lexmachine.Scanner
	onError func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler replaces the error handler. A nil handler restores the default.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = scanner.LogError
	}
	lms.onError = h
}

// NextToken returns the next token, or a token of type scanner.EOF.
// Input no pattern matches is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() prettylisp.Token {
	for {
		tok, err, eof := lms.dfa.Next()
		if eof {
			return scanner.EOFToken()
		}
		if err != nil {
			lms.onError(err)
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				lms.dfa.TC = ui.FailTC
			}
			continue
		}
		t := tok.(*lexmachine.Token)
		tracer().Debugf("%d: token %d %q", t.StartLine, t.Type, t.Lexeme)
		from := uint64(t.TC)
		return scanner.MakeDefaultToken(prettylisp.TokType(t.Type), string(t.Lexeme), t.Value,
			scanner.Position{
				Line: t.StartLine,
				Span: prettylisp.Span{from, from + uint64(len(t.Lexeme))},
			})
	}
}

// --- Actions ---------------------------------------------------------------

// Skip drops a match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Token creates tokens of type typ, with the lexeme as value.
func Token(typ prettylisp.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(typ), string(m.Bytes), m), nil
	}
}

// Convert creates tokens of type typ, with a value computed from the lexeme.
// Conversion errors are reported as scanner errors.
func Convert(typ prettylisp.TokType, convert func([]byte) (interface{}, error)) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		v, err := convert(m.Bytes)
		if err != nil {
			return nil, err
		}
		return s.Token(int(typ), v, m), nil
	}
}
