package lang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/scanner"
	"github.com/npillmayer/prettylisp/scanner/lexmach"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of PrettyLisp. Brackets use their character code as token type.
const (
	Ident  prettylisp.TokType = iota + 1000 // identifier, either a word or a run of special symbols
	Number                                  // numeric literal, value is the lexeme
	Char                                    // character literal, value is the character code
	String                                  // string literal, value is the unescaped content
)

// punctuation maps the bracket lexemes to their token types.
var punctuation = map[string]prettylisp.TokType{
	"(": '(', ")": ')',
	"[": '[', "]": ']',
	"{": '{', "}": '}',
	"<": '<', ">": '>',
}

// specials may start a symbol identifier; '<' and '>' may only continue one.
const specials = `:\.\+\-\*/=!%&\|`

// wordStop are the characters terminating a word identifier.
const wordStop = ` \t\n\r\(\)\[\]\{\}<>\"` + specials

// Lexer creates a new lexmachine lexer for PrettyLisp. Creating a lexer
// compiles a DFA; clients should prefer Tokenize, which shares one.
func Lexer() (*lexmach.LMAdapter, error) {
	rules := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\$\n]*(\$|\n)?`), lexmach.Skip) // comments
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		lexer.Add([]byte(`\"([^\"\\]|\\(.|\n))*\"`), lexmach.Convert(String, unquote))
		lexer.Add([]byte(`\\(.|\n)`), lexmach.Convert(Char, charCode))
		lexer.Add([]byte(`[\+\-]?[0-9][0-9\.e]*`), lexmach.Token(Number))
		lexer.Add([]byte(`[`+specials+`][`+specials+`<>]*`), lexmach.Token(Ident))
		lexer.Add([]byte(`[^`+wordStop+`#\\0-9][^`+wordStop+`]*`), lexmach.Token(Ident))
	}
	return lexmach.NewLMAdapter(rules, punctuation)
}

var escapeCodes = map[rune]rune{
	'0': 0,
	'n': '\n',
	'r': '\r',
	't': '\t',
	'!': 7,
}

// unquote strips the quotes off a string literal and resolves escapes.
// Unknown escapes denote the escaped character itself.
func unquote(lexeme []byte) (interface{}, error) {
	s := string(lexeme[1 : len(lexeme)-1])
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			if c, ok := escapeCodes[r]; ok {
				r = c
			}
			sb.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

func charCode(lexeme []byte) (interface{}, error) {
	r, _ := utf8.DecodeRune(lexeme[1:])
	return float64(r), nil
}

// Tokenize splits a source text into PrettyLisp tokens. The first scanner
// error is returned as a syntax error, carrying the line of the offending input.
func Tokenize(source string) ([]prettylisp.Token, error) {
	lexer, err := sharedLexer()
	if err != nil {
		return nil, err
	}
	scan, err := lexer.Scanner(source)
	if err != nil {
		return nil, err
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		tracer().Debugf("scanner error: %v", e)
		if scanErr != nil {
			return
		}
		if ui, ok := e.(*machines.UnconsumedInput); ok {
			scanErr = prettylisp.Errorf(prettylisp.Syntax, "unexpected input %q", firstLine(ui.Text[ui.StartTC:]))
			scanErr = prettylisp.AtLine(scanErr, ui.StartLine)
			return
		}
		scanErr = prettylisp.Errorf(prettylisp.Syntax, "%v", e)
	})
	var tokens []prettylisp.Token
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		tokens = append(tokens, token)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return tokens, nil
}

var lexer *lexmach.LMAdapter
var lexerErr error
var lexerOnce sync.Once // monitors one-time creation of the lexer

func sharedLexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		tracer().Infof("Creating lexer")
		lexer, lexerErr = Lexer()
	})
	return lexer, lexerErr
}

func firstLine(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 20 {
		s = s[:20] + "…"
	}
	return s
}
