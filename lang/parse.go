package lang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strconv"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/ast"
)

// --- Grammar ---------------------------------------------------------------

// Program    ::=  Atom*
// Atom       ::=  ident | number | char | string
// Atom       ::=  '(' ident Atom* ')'          // call
// Atom       ::=  '<' Atom ident Atom '>'      // binary call
// Atom       ::=  '<' Atom number '>'          // implicit '+' or '*'
// Atom       ::=  '[' Atom* ']'                // array
// Atom       ::=  '{' Atom* '}'                // expression block
//
// Comments will be filtered by the scanner.

// Parse parses an input string, given in PrettyLisp format. It returns the
// program node or an error of kind prettylisp.Syntax, carrying the line of
// the offending token.
func Parse(source string) (*ast.Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	prog := ast.NewProgram()
	for !p.ended() {
		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		prog.Children = append(prog.Children, atom)
	}
	tracer().Debugf("parsed %d top-level expressions", len(prog.Children))
	return prog, nil
}

// MustParse parses a PrettyLisp source and panics on syntax errors.
func MustParse(source string) *ast.Node {
	prog, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return prog
}

type parser struct {
	tokens []prettylisp.Token
	pos    int
}

func (p *parser) ended() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() prettylisp.Token {
	return p.tokens[p.pos]
}

// line is the line of the current token, or of the last one at end of input.
func (p *parser) line() int {
	if len(p.tokens) == 0 {
		return 1
	}
	if p.ended() {
		return p.tokens[len(p.tokens)-1].Line()
	}
	return p.peek().Line()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return prettylisp.AtLine(prettylisp.Errorf(prettylisp.Syntax, format, args...), p.line())
}

func (p *parser) next() (prettylisp.Token, error) {
	if p.ended() {
		return nil, p.errorf("unexpected end of input")
	}
	t := p.peek()
	p.pos++
	return t, nil
}

func (p *parser) expect(typ prettylisp.TokType) (prettylisp.Token, error) {
	if p.ended() {
		return nil, p.errorf("unexpected end of input, expected %s", tokenName(typ))
	}
	if p.peek().TokType() != typ {
		return nil, p.errorf("unexpected token %q, expected %s", p.peek().Lexeme(), tokenName(typ))
	}
	return p.next()
}

func (p *parser) atom() (*ast.Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	line := t.Line()
	switch t.TokType() {
	case Ident:
		return ast.NewVariable(line, t.Lexeme()), nil
	case String:
		return ast.NewString(line, t.Value().(string)), nil
	case Char:
		return ast.NewNumber(line, t.Value().(float64)), nil
	case Number:
		n, err := strconv.ParseFloat(t.Lexeme(), 64)
		if err != nil {
			return nil, prettylisp.AtLine(prettylisp.Errorf(prettylisp.Syntax,
				"malformed number %q", t.Lexeme()), line)
		}
		return ast.NewNumber(line, n), nil
	case '(':
		return p.call(line)
	case '<':
		return p.binary(line)
	case '[':
		children, err := p.sequence(']')
		if err != nil {
			return nil, err
		}
		return ast.NewArray(line, children...), nil
	case '{':
		children, err := p.sequence('}')
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(line, children...), nil
	}
	p.pos--
	return nil, p.errorf("unexpected token %q", t.Lexeme())
}

// sequence reads atoms up to and including the closing bracket.
func (p *parser) sequence(closing prettylisp.TokType) ([]*ast.Node, error) {
	var children []*ast.Node
	for {
		if p.ended() {
			return nil, p.errorf("unexpected end of input, expected %s", tokenName(closing))
		}
		if p.peek().TokType() == closing {
			p.pos++
			return children, nil
		}
		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		children = append(children, atom)
	}
}

func (p *parser) call(line int) (*ast.Node, error) {
	name, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	args, err := p.sequence(')')
	if err != nil {
		return nil, err
	}
	return ast.NewCall(line, name.Lexeme(), args...), nil
}

func (p *parser) binary(line int) (*ast.Node, error) {
	lhs, err := p.atom()
	if err != nil {
		return nil, err
	}
	if !p.ended() && p.peek().TokType() == Number {
		op := p.peek()
		rhs, err := p.atom()
		if err != nil {
			return nil, err
		}
		var name string
		if c := op.Lexeme()[0]; c == '+' || c == '-' {
			name = "+"
		} else if lhs.Kind == ast.Variable {
			name = "*"
		} else {
			p.pos--
			return nil, p.errorf("invalid binary operation")
		}
		if _, err := p.expect('>'); err != nil {
			return nil, err
		}
		return ast.NewCall(line, name, lhs, rhs), nil
	}
	op, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	rhs, err := p.atom()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect('>'); err != nil {
		return nil, err
	}
	return ast.NewCall(line, op.Lexeme(), lhs, rhs), nil
}

func tokenName(typ prettylisp.TokType) string {
	switch typ {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Char:
		return "character"
	case String:
		return "string"
	}
	return strconv.Quote(string(rune(typ)))
}
