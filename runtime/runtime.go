/*
Package runtime implements the binding store and scope manager of the
interpreter.

Scopes are not a chain of nested environments. There is one flat store of
variables and one of functions, keyed by (name, scope id), and visibility is
computed by numeric distance of scope ids: a binding declared at scope s is
visible to every evaluation happening at a scope ≥ s, the nearest one
shadowing the ones further out. When evaluation returns to a scope < s, the
binding is removed (pruned).

This scheme is only sound under strictly sequential evaluation. Never run two
evaluations on one Runtime concurrently.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/value"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'prettylisp.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("prettylisp.runtime")
}

// Runtime is a type implementing a runtime environment for an interpreter
type Runtime struct {
	Vars   *SymbolTable // variable bindings
	Funcs  *SymbolTable // built-in and user-defined functions
	Frames *FrameStack  // open evaluation frames
}

// NewRuntimeEnvironment constructs a new, empty runtime environment.
func NewRuntimeEnvironment() *Runtime {
	return &Runtime{
		Vars:   NewSymbolTable("variables"),
		Funcs:  NewSymbolTable("functions"),
		Frames: NewFrameStack(),
	}
}

// --- Scopes ----------------------------------------------------------------

// Enter opens a frame for one node evaluation and returns its scope id.
func (rt *Runtime) Enter() ScopeID {
	return rt.Frames.PushNewFrame().ID
}

// Exit closes the frame opened with id and prunes every variable and function
// declared at a scope greater than id.
func (rt *Runtime) Exit(id ScopeID) {
	rt.Frames.PopFrame(id)
	for _, tag := range rt.Vars.PruneAbove(id) {
		tracer().P("scope", id).Debugf("removed variable %s", Qualified(tag.Name(), tag.Scope))
	}
	for _, tag := range rt.Funcs.PruneAbove(id) {
		tracer().P("scope", id).Debugf("removed function %s", Qualified(tag.Name(), tag.Scope))
	}
}

// Current is the scope id evaluation currently happens in.
func (rt *Runtime) Current() ScopeID {
	return rt.Frames.Current()
}

// --- Variables -------------------------------------------------------------

// Resolve finds the variable binding for name visible from scope.
// Lookup order is: exact match at scope, then scope ids downwards, then global.
func (rt *Runtime) Resolve(name string, scope ScopeID) (*Tag, error) {
	tag := rt.Vars.ResolveTag(name, scope)
	if tag == nil {
		return nil, prettylisp.Errorf(prettylisp.NameNotFound, "variable %s does not exist", name)
	}
	tracer().P("scope", scope).Debugf("accessed variable %s", Qualified(name, tag.Scope))
	return tag, nil
}

// Declare creates a new variable binding at scope. Declaring a name twice at
// the same scope is an error.
func (rt *Runtime) Declare(name string, scope ScopeID, v value.Value, readonly bool) error {
	if rt.Vars.TagAt(name, scope) != nil {
		return prettylisp.Errorf(prettylisp.DuplicateDeclaration, "variable %s already declared",
			Qualified(name, scope))
	}
	tag := NewTag(name, scope)
	tag.Value = v
	tag.Readonly = readonly
	rt.Vars.InsertTag(tag)
	tracer().P("scope", scope).Debugf("declared variable %s as '%s'", name, v.Debug())
	return nil
}

// Assign resolves name from scope and overwrites the binding's value.
func (rt *Runtime) Assign(name string, scope ScopeID, v value.Value) error {
	tag, err := rt.Resolve(name, scope)
	if err != nil {
		return err
	}
	if tag.Readonly {
		return prettylisp.Errorf(prettylisp.ReadonlyViolation, "variable %s is readonly", name)
	}
	tag.Value = v
	tracer().P("scope", scope).Debugf("set variable %s to '%s'", name, v.Debug())
	return nil
}

// Destroy removes every binding of name, regardless of scope. Returns the
// number of bindings removed.
func (rt *Runtime) Destroy(name string) int {
	removed := rt.Vars.RemoveAll(name)
	tracer().Debugf("destroyed %d binding(s) of %s", len(removed), name)
	return len(removed)
}

// --- Functions -------------------------------------------------------------

// Define registers a function at scope. An existing function with the same
// name at the same scope is replaced.
func (rt *Runtime) Define(name string, scope ScopeID, fn *Function) {
	tag := NewTag(name, scope)
	tag.Func = fn
	tag.Readonly = fn.IsNative()
	rt.Funcs.InsertTag(tag)
	if !fn.IsNative() {
		tracer().P("scope", scope).Debugf("defined function %s(%d)", name, len(fn.Params))
	}
}

// Function finds the function for name visible from scope.
func (rt *Runtime) Function(name string, scope ScopeID) (*Function, error) {
	tag := rt.Funcs.ResolveTag(name, scope)
	if tag == nil {
		return nil, prettylisp.Errorf(prettylisp.NameNotFound, "function %s does not exist", name)
	}
	return tag.Func, nil
}

// Dump traces the contents of the binding store.
func (rt *Runtime) Dump() {
	tracer().Infof("--- runtime at scope %d, %d frame(s) open ---", rt.Current(), rt.Frames.Depth())
	rt.Vars.Each(func(tag *Tag) {
		tracer().Infof("    %s", tag)
	})
	rt.Funcs.Each(func(tag *Tag) {
		if !tag.Func.IsNative() {
			tracer().Infof("    %s", tag)
		}
	})
}
