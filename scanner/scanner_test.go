package scanner

import (
	"testing"

	"github.com/npillmayer/prettylisp"
)

func TestDefaultToken(t *testing.T) {
	tok := MakeDefaultToken(7, "abc", 1.5, Position{Line: 3, Span: prettylisp.Span{4, 7}})
	if tok.TokType() != 7 || tok.Lexeme() != "abc" || tok.Line() != 3 {
		t.Errorf("token fields not preserved: %v", tok)
	}
	if tok.Span().Len() != 3 {
		t.Errorf("expected span length 3, is %d", tok.Span().Len())
	}
	if tok.String() != `3:(7) "abc"` {
		t.Errorf("unexpected token string %s", tok)
	}
	if EOFToken().TokType() != EOF || EOFToken().String() != "<EOF>" {
		t.Errorf("expected EOF token")
	}
}
