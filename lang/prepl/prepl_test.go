package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/prettylisp/interp"
	"github.com/npillmayer/prettylisp/lang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	inputs := []struct {
		argv        []string
		tty         bool
		script      string
		command     string
		trace       string
		interactive bool
	}{
		{[]string{}, true, "", "", "", true},
		{[]string{}, false, "", "", "", false},
		{[]string{"prog.pl"}, true, "prog.pl", "", "", false},
		{[]string{"--trace=Debug", "prog.pl"}, false, "prog.pl", "", "Debug", false},
		{[]string{"-c", "(+ 1 2)"}, true, "", "(+ 1 2)", "", false},
	}
	for i, input := range inputs {
		opts, err := parseOptions(input.argv, input.tty)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}
		if opts.script != input.script || opts.command != input.command {
			t.Errorf("#%d: unexpected script/command %q/%q", i, opts.script, opts.command)
		}
		if opts.trace != input.trace {
			t.Errorf("#%d: expected trace level %q, have %q", i, input.trace, opts.trace)
		}
		if opts.interactive != input.interactive {
			t.Errorf("#%d: expected interactive=%v", i, input.interactive)
		}
	}
}

func TestProfile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "prepl.yaml")
	yml := "trace: Info\nprompt: \"pl> \"\ninit:\n  - lib.pl\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	prof, err := loadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if prof.Prompt != "pl> " || len(prof.Init) != 1 {
		t.Fatalf("unexpected profile %+v", prof)
	}
	if prof.Init[0] != filepath.Join(dir, "lib.pl") {
		t.Errorf("expected init script relative to profile, have %s", prof.Init[0])
	}
	prof.settle(&options{trace: "Debug"})
	if prof.Trace != "Debug" {
		t.Errorf("expected command line to override trace level, have %s", prof.Trace)
	}
	empty := &profile{}
	empty.settle(&options{})
	if empty.Trace != "Error" || empty.Prompt != defaultPrompt {
		t.Errorf("expected defaults, have %+v", empty)
	}
	if err = os.WriteFile(path, []byte("colour: red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err = loadProfile(path); err == nil {
		t.Errorf("expected unknown profile field to be rejected")
	}
}

func TestInitFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.pl")
	src := "(define twice [x] { <x * 2> })\n(declare greeting \"hello\")\n"
	if err := os.WriteFile(lib, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	intp := interp.New(interp.WithOutput(out), interp.WithInput(strings.NewReader("")))
	if err := loadInitFiles(intp, []string{lib}); err != nil {
		t.Fatal(err)
	}
	if code := runProgram(intp, `(println greeting " " (twice 21))`); code != 0 {
		t.Fatalf("expected exit code 0, have %d", code)
	}
	if out.String() != "hello 42\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if err := loadInitFiles(intp, []string{filepath.Join(dir, "missing.pl")}); err == nil {
		t.Errorf("expected error for missing init file")
	}
}

func TestLeveledList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	prog := lang.MustParse(`(println <1 + x>)`)
	ll := leveledList(prog)
	levels := []int{0, 1, 2, 3, 3}
	if len(ll) != len(levels) {
		t.Fatalf("expected %d tree items, have %d", len(levels), len(ll))
	}
	for i, item := range ll {
		if item.Level != levels[i] {
			t.Errorf("item %q: expected level %d, have %d", item.Text, levels[i], item.Level)
		}
	}
	if ll[1].Text != "Function: println" {
		t.Errorf("unexpected tree item %q", ll[1].Text)
	}
}

func TestBatchRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "prettylisp.lang")
	defer teardown()
	//
	intp := interp.New(interp.WithOutput(&bytes.Buffer{}))
	if code := runProgram(intp, `(declare x 1) (set x <x + 1>)`); code != 0 {
		t.Errorf("expected exit code 0, have %d", code)
	}
	if code := runProgram(intp, `(set y 1)`); code != 1 {
		t.Errorf("expected exit code 1 for runtime error, have %d", code)
	}
	if code := runProgram(intp, `(set y`); code != 1 {
		t.Errorf("expected exit code 1 for syntax error, have %d", code)
	}
	if code := runCommand(intp, `<x ** 3>`); code != 0 {
		t.Errorf("expected exit code 0, have %d", code)
	}
}
