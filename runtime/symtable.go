package runtime

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/prettylisp/ast"
	"github.com/npillmayer/prettylisp/value"
)

// Symbol tables for variables and functions. Tables are flat: there is one
// table for all scopes, and every entry is keyed by (name, scope id).
// Visibility is computed by numeric distance of scope ids.

// ScopeID identifies the binding lifetime of one evaluation frame.
// Scope 0 is the global scope and is never pruned.
type ScopeID uint64

// GlobalScope is the scope of built-ins, constants and globals.
const GlobalScope ScopeID = 0

func scopeComparator(a, b interface{}) int {
	x, y := a.(ScopeID), b.(ScopeID)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Qualified returns the qualified name of a binding: the plain name for
// globals, name@scope otherwise.
func Qualified(name string, scope ScopeID) string {
	if scope == GlobalScope {
		return name
	}
	return fmt.Sprintf("%s@%d", name, scope)
}

// --- Tags -------------------------------------------------------

// Tag is the entry type stored into symbol tables. It may be a little
// surprising this type is not called 'Symbol', but I prefer the name 'Tag'
// because grammars consist of symbols, too. Tags are used during runtime.
//
// A tag is either a variable binding (Value, Readonly) or a function
// binding (Func).
type Tag struct {
	name     string
	Scope    ScopeID
	Readonly bool
	Value    value.Value
	Func     *Function
}

// NativeFunc is a built-in operation over already-evaluated arguments.
type NativeFunc func(args []value.Value) (value.Value, error)

// Function is a user-defined function (parameters and body) or a
// built-in operation.
type Function struct {
	Params []string
	Body   *ast.Node // an ast.Block
	Native NativeFunc
}

// IsNative is a predicate.
func (f *Function) IsNative() bool {
	return f.Native != nil
}

// NewTag creates a new tag for a name at a given scope.
func NewTag(nm string, scope ScopeID) *Tag {
	return &Tag{
		name:  nm,
		Scope: scope,
	}
}

// Name gets the tag's name.
func (t *Tag) Name() string {
	return t.name
}

// String is a debug Stringer for tags.
func (t *Tag) String() string {
	if t.Func != nil {
		if t.Func.IsNative() {
			return fmt.Sprintf("<func %s native>", Qualified(t.name, t.Scope))
		}
		return fmt.Sprintf("<func %s%v>", Qualified(t.name, t.Scope), t.Func.Params)
	}
	ro := ""
	if t.Readonly {
		ro = " readonly"
	}
	return fmt.Sprintf("<var %s=%s%s>", Qualified(t.name, t.Scope), t.Value.Debug(), ro)
}

// === Symbol Tables =========================================================

// SymbolTable stores tags keyed by (name, scope). Every name has a tree map
// from scope ids to tags, which makes resolving a name from a given scope a
// floor-lookup. A second index from scope id to the set of names declared at
// that scope lets pruning touch only the scopes being discarded.
type SymbolTable struct {
	Name    string
	byName  map[string]*treemap.Map // name  -> (scope -> *Tag)
	byScope *treemap.Map            // scope -> set of names
	size    int
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable(nm string) *SymbolTable {
	return &SymbolTable{
		Name:    nm,
		byName:  make(map[string]*treemap.Map),
		byScope: treemap.NewWith(scopeComparator),
	}
}

// TagAt returns the tag for name declared exactly at scope, or nil.
func (st *SymbolTable) TagAt(name string, scope ScopeID) *Tag {
	scopes, ok := st.byName[name]
	if !ok {
		return nil
	}
	if tag, found := scopes.Get(scope); found {
		return tag.(*Tag)
	}
	return nil
}

// ResolveTag finds the tag for name which is visible from scope: the one
// declared at scope itself, or else at the nearest enclosing scope id below
// it, or else the global one. Returns nil if there is none.
func (st *SymbolTable) ResolveTag(name string, scope ScopeID) *Tag {
	scopes, ok := st.byName[name]
	if !ok {
		return nil
	}
	if _, tag := scopes.Floor(scope); tag != nil {
		return tag.(*Tag)
	}
	return nil
}

// InsertTag inserts a tag, replacing a tag with equal name and scope.
// Returns the replaced tag or nil.
func (st *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := st.TagAt(tag.name, tag.Scope)
	scopes, ok := st.byName[tag.name]
	if !ok {
		scopes = treemap.NewWith(scopeComparator)
		st.byName[tag.name] = scopes
	}
	scopes.Put(tag.Scope, tag)
	names, ok := st.byScope.Get(tag.Scope)
	if !ok {
		names = treeset.NewWithStringComparator()
		st.byScope.Put(tag.Scope, names)
	}
	names.(*treeset.Set).Add(tag.name)
	if old == nil {
		st.size++
	}
	return old
}

// RemoveTag removes the tag for name at scope. Returns the removed tag or nil.
func (st *SymbolTable) RemoveTag(name string, scope ScopeID) *Tag {
	tag := st.TagAt(name, scope)
	if tag == nil {
		return nil
	}
	st.unlink(name, scope)
	if names, ok := st.byScope.Get(scope); ok {
		set := names.(*treeset.Set)
		set.Remove(name)
		if set.Empty() {
			st.byScope.Remove(scope)
		}
	}
	return tag
}

// RemoveAll removes every tag for name, regardless of scope.
// Returns the removed tags.
func (st *SymbolTable) RemoveAll(name string) []*Tag {
	scopes, ok := st.byName[name]
	if !ok {
		return nil
	}
	var removed []*Tag
	for _, s := range scopes.Keys() {
		if tag := st.RemoveTag(name, s.(ScopeID)); tag != nil {
			removed = append(removed, tag)
		}
	}
	return removed
}

// PruneAbove removes every tag with a scope id strictly greater than scope.
// Returns the removed tags, innermost scopes first.
func (st *SymbolTable) PruneAbove(scope ScopeID) []*Tag {
	var removed []*Tag
	for {
		key, names := st.byScope.Max()
		if key == nil || key.(ScopeID) <= scope {
			break
		}
		s := key.(ScopeID)
		for _, n := range names.(*treeset.Set).Values() {
			name := n.(string)
			if tag := st.TagAt(name, s); tag != nil {
				removed = append(removed, tag)
			}
			st.unlink(name, s)
		}
		st.byScope.Remove(s)
	}
	return removed
}

func (st *SymbolTable) unlink(name string, scope ScopeID) {
	scopes, ok := st.byName[name]
	if !ok {
		return
	}
	if _, found := scopes.Get(scope); !found {
		return
	}
	scopes.Remove(scope)
	st.size--
	if scopes.Empty() {
		delete(st.byName, name)
	}
}

// Size counts the tags in a symbol table.
func (st *SymbolTable) Size() int {
	return st.size
}

// MaxScope returns the highest scope id any tag is declared at.
func (st *SymbolTable) MaxScope() ScopeID {
	if key, _ := st.byScope.Max(); key != nil {
		return key.(ScopeID)
	}
	return GlobalScope
}

// Each iterates over each tag in the table, ordered by name and scope,
// executing a mapper function.
func (st *SymbolTable) Each(mapper func(*Tag)) {
	names := make([]string, 0, len(st.byName))
	for n := range st.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		for _, tag := range st.byName[n].Values() {
			mapper(tag.(*Tag))
		}
	}
}
