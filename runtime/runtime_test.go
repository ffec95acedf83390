package runtime

import (
	"errors"
	"testing"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFrameIDs(t *testing.T) {
	fs := NewFrameStack()
	a := fs.PushNewFrame()
	b := fs.PushNewFrame()
	if a.ID != 1 || b.ID != 2 || fs.Current() != 3 {
		t.Fatalf("unexpected ids %d, %d, current %d", a.ID, b.ID, fs.Current())
	}
	fs.PopFrame(b.ID)
	c := fs.PushNewFrame()
	if c.ID != 2 {
		t.Errorf("sibling frame should reuse id 2, has %d", c.ID)
	}
	fs.PopFrame(c.ID)
	fs.PopFrame(a.ID)
	if fs.Depth() != 0 || fs.Current() != 1 {
		t.Errorf("expected empty stack at scope 1, have depth %d at %d", fs.Depth(), fs.Current())
	}
}

func TestFramePopOutOfOrderPanics(t *testing.T) {
	fs := NewFrameStack()
	a := fs.PushNewFrame()
	fs.PushNewFrame()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected out-of-order pop to panic")
		}
	}()
	fs.PopFrame(a.ID)
}

func TestDeclareResolveAssign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.runtime")
	defer teardown()
	//
	rt := NewRuntimeEnvironment()
	if err := rt.Declare("x", 1, value.Number(5), false); err != nil {
		t.Fatal(err)
	}
	if err := rt.Declare("x", 1, value.Number(6), false); !errors.Is(err, prettylisp.ErrDuplicateDeclaration) {
		t.Errorf("expected duplicate declaration, got %v", err)
	}
	if err := rt.Assign("x", 4, value.Number(7)); err != nil {
		t.Fatal(err)
	}
	tag, err := rt.Resolve("x", 3)
	if err != nil || tag.Value.Num() != 7 {
		t.Errorf("expected x = 7, got %v (%v)", tag, err)
	}
	if _, err := rt.Resolve("y", 3); !errors.Is(err, prettylisp.ErrNameNotFound) {
		t.Errorf("expected name not found, got %v", err)
	}
	rt.Declare("c", GlobalScope, value.Number(1), true)
	if err := rt.Assign("c", 2, value.Number(2)); !errors.Is(err, prettylisp.ErrReadonlyViolation) {
		t.Errorf("expected readonly violation, got %v", err)
	}
}

func TestExitPrunes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.runtime")
	defer teardown()
	//
	rt := NewRuntimeEnvironment()
	outer := rt.Enter() // 1
	rt.Declare("x", outer, value.Number(1), false)
	block := rt.Enter() // 2
	stmt := rt.Enter()  // 3
	rt.Declare("x", stmt, value.String("inner"), false)
	rt.Define("f", stmt, &Function{Params: []string{"a"}})
	rt.Exit(stmt)
	if tag, _ := rt.Resolve("x", rt.Current()); tag.Value.Str() != "inner" {
		t.Errorf("inner x should survive its own frame, got %v", tag)
	}
	rt.Exit(block)
	if tag, _ := rt.Resolve("x", rt.Current()); tag.Value.Num() != 1 {
		t.Errorf("outer x should be visible again, got %v", tag)
	}
	if _, err := rt.Function("f", rt.Current()); !errors.Is(err, prettylisp.ErrNameNotFound) {
		t.Errorf("expected f to be pruned, got %v", err)
	}
	rt.Exit(outer)
	if rt.Vars.Size() != 1 {
		t.Errorf("binding at scope 1 survives exit to scope 1, expected 1 binding, have %d", rt.Vars.Size())
	}
}

func TestDestroy(t *testing.T) {
	rt := NewRuntimeEnvironment()
	rt.Declare("x", 0, value.Null, false)
	rt.Declare("x", 3, value.Null, false)
	if n := rt.Destroy("x"); n != 2 {
		t.Errorf("expected 2 bindings destroyed, have %d", n)
	}
	if _, err := rt.Resolve("x", 5); err == nil {
		t.Error("x should be gone")
	}
}

func TestFunctionShadowing(t *testing.T) {
	rt := NewRuntimeEnvironment()
	native := &Function{Native: func([]value.Value) (value.Value, error) { return value.Null, nil }}
	user := &Function{Params: []string{"x"}}
	rt.Define("f", GlobalScope, native)
	rt.Define("f", 3, user)
	if fn, _ := rt.Function("f", 4); fn != user {
		t.Errorf("expected user function to shadow the built-in")
	}
	rt.Funcs.PruneAbove(2)
	if fn, _ := rt.Function("f", 4); fn != native {
		t.Errorf("expected built-in to be visible after pruning")
	}
}
