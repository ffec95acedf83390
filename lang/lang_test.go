package lang

import (
	"errors"
	"testing"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/ast"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	inputs := []struct {
		source string
		types  []prettylisp.TokType
	}{
		{`(print 1)`, []prettylisp.TokType{'(', Ident, Number, ')'}},
		{`<x .<= -2.5>`, []prettylisp.TokType{'<', Ident, Ident, Number, '>'}},
		{`{a # comment $ b}`, []prettylisp.TokType{'{', Ident, Ident, '}'}},
		{"[\\a \"s\"] # to end of line\nz", []prettylisp.TokType{'[', Char, String, ']', Ident}},
		{`x-1`, []prettylisp.TokType{Ident, Number}},
		{`(:= y 2)`, []prettylisp.TokType{'(', Ident, Ident, Number, ')'}},
	}
	for i, input := range inputs {
		tokens, err := Tokenize(input.source)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}
		if len(tokens) != len(input.types) {
			t.Fatalf("#%d: expected %d tokens, have %d", i, len(input.types), len(tokens))
		}
		for j, tok := range tokens {
			if tok.TokType() != input.types[j] {
				t.Errorf("#%d: token %q has type %d, expected %d", i, tok.Lexeme(), tok.TokType(), input.types[j])
			}
		}
	}
}

func TestStringEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	tokens, err := Tokenize(`"a\tb\nc\"d\\e\q"`)
	if err != nil {
		t.Fatal(err)
	}
	if s := tokens[0].Value().(string); s != "a\tb\nc\"d\\eq" {
		t.Errorf("unexpected unquoted string %q", s)
	}
}

func TestParseForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	inputs := []struct {
		source string
		label  string
	}{
		{`(+ 1 2)`, "Function: +(Number: 1, Number: 2)"},
		{`<a == b>`, "Function: ==(Variable: a, Variable: b)"},
		{`<x -1>`, "Function: +(Variable: x, Number: -1)"},
		{`<x 2>`, "Function: *(Variable: x, Number: 2)"},
		{`\A`, "Number: 65"},
	}
	for _, input := range inputs {
		prog, err := Parse(input.source)
		if err != nil {
			t.Fatalf("%s: %v", input.source, err)
		}
		if len(prog.Children) != 1 {
			t.Fatalf("%s: expected one expression, have %d", input.source, len(prog.Children))
		}
		if l := prog.Children[0].Label(); l != input.label {
			t.Errorf("%s: expected %q, have %q", input.source, input.label, l)
		}
	}
}

func TestParseNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	prog, err := Parse("(define f [a b] {\n (return <a + b>)\n})\n(f 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Children) != 2 {
		t.Fatalf("expected 2 expressions, have %d", len(prog.Children))
	}
	def := prog.Children[0]
	if def.Kind != ast.Call || def.Name != "define" || len(def.Args()) != 3 {
		t.Fatalf("unexpected define node %s", def.Label())
	}
	if def.Args()[1].Kind != ast.Array || def.Args()[2].Kind != ast.Block {
		t.Errorf("expected parameter array and body block, have %s", def.Label())
	}
	ret := def.Args()[2].Children[0]
	if ret.Line != 2 {
		t.Errorf("expected return on line 2, is on line %d", ret.Line)
	}
	if prog.Children[1].Line != 4 {
		t.Errorf("expected call on line 4, is on line %d", prog.Children[1].Line)
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	inputs := []struct {
		source string
		line   int
	}{
		{"(+ 1 2", 1},
		{"\n(1 2)", 2},
		{"<1 2>", 1},
		{"<a + b c>", 1},
		{"\n\n)", 3},
		{"\"unterminated", 1},
		{"(print 1e)", 1},
	}
	for _, input := range inputs {
		_, err := Parse(input.source)
		if err == nil {
			t.Errorf("%q: expected syntax error", input.source)
			continue
		}
		if !errors.Is(err, prettylisp.ErrSyntax) {
			t.Errorf("%q: expected syntax error, have %v", input.source, err)
		}
		var perr *prettylisp.Error
		if errors.As(err, &perr) && perr.Line != input.line {
			t.Errorf("%q: expected error at line %d, have %d", input.source, input.line, perr.Line)
		}
	}
}
