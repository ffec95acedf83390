package ast

import "testing"

func TestLabel(t *testing.T) {
	n := NewCall(1, "+", NewVariable(1, "x"), NewNumber(1, 1))
	if n.Label() != "Function: +(Variable: x, Number: 1)" {
		t.Errorf("unexpected label %q", n.Label())
	}
	s := NewString(2, "a\nb")
	if s.Label() != `String: "a\nb"` {
		t.Errorf("unexpected label %q", s.Label())
	}
}

func TestLeveled(t *testing.T) {
	prog := NewProgram(
		NewCall(1, "declare", NewVariable(1, "x"), NewNumber(1, 5)),
		NewBlock(2, NewCall(2, "return", NewVariable(2, "x"))),
	)
	items := Leveled(prog)
	levels := []int{0, 1, 2, 2, 1, 2, 3}
	if len(items) != len(levels) {
		t.Fatalf("expected %d items, have %d: %v", len(levels), len(items), items)
	}
	for i, l := range levels {
		if items[i].Level != l {
			t.Errorf("item #%d %q: expected level %d, is %d", i, items[i].Text, l, items[i].Level)
		}
	}
	if items[5].Text != "Function: return" {
		t.Errorf("unexpected text %q", items[5].Text)
	}
}

func TestIsLeaf(t *testing.T) {
	if !NewNumber(1, 2).IsLeaf() || NewArray(1).IsLeaf() {
		t.Errorf("leaf predicate wrong")
	}
}
