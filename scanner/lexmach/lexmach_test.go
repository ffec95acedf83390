package lexmach

import (
	"strconv"
	"testing"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"(+ 1 12)",
	"x #comment$ y",
	"x = \"mystring\"",
	"1\n22\n333",
}

var tokenCounts = []int{1, 5, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.scanner")
	defer teardown()
	//
	LM := makeTestAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMLinesAndValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.scanner")
	defer teardown()
	//
	LM := makeTestAdapter(t)
	sc, err := LM.Scanner("1\n22\n333")
	if err != nil {
		t.Fatal(err)
	}
	for line, want := range []float64{1, 22, 333} {
		token := sc.NextToken()
		if token.Line() != line+1 {
			t.Errorf("expected token %q on line %d, is on %d", token.Lexeme(), line+1, token.Line())
		}
		if n, ok := token.Value().(float64); !ok || n != want {
			t.Errorf("expected value %g, have %v", want, token.Value())
		}
	}
}

func TestLMErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.scanner")
	defer teardown()
	//
	LM := makeTestAdapter(t)
	sc, err := LM.Scanner("x ~ y")
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	count := 0
	for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
		count++
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 scanner error, have %d", len(errs))
	}
	if count != 2 {
		t.Errorf("expected 2 tokens around the bad input, have %d", count)
	}
}

// ---------------------------------------------------------------------------

const (
	tokID prettylisp.TokType = iota + 10
	tokNum
	tokString
	tokOp
)

var punctuation = map[string]prettylisp.TokType{
	"(": '(',
	")": ')',
	"=": '=',
}

func makeTestAdapter(t *testing.T) *LMAdapter {
	rules := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\$\n]*\$?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), Token(tokString))
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), Token(tokID))
		lexer.Add([]byte(`[0-9]+`), Convert(tokNum, func(b []byte) (interface{}, error) {
			return strconv.ParseFloat(string(b), 64)
		}))
		lexer.Add([]byte(`\+`), Token(tokOp))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(rules, punctuation)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestQuote(t *testing.T) {
	if p := string(quote("::=")); p != `\:\:\=` {
		t.Errorf("expected every byte escaped, have %s", p)
	}
}
