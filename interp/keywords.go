package interp

import (
	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/ast"
	"github.com/npillmayer/prettylisp/runtime"
	"github.com/npillmayer/prettylisp/value"
)

// keyword is a call form intercepted before its arguments are evaluated.
type keyword struct {
	name     string
	min, max int // arity
	eval     func(*Interpreter, *ast.Node, runtime.ScopeID) (value.Value, bool, error)
}

func (kw keyword) checkArity(node *ast.Node) error {
	n := len(node.Args())
	if n >= kw.min && n <= kw.max {
		return nil
	}
	if kw.min == kw.max {
		return prettylisp.Errorf(prettylisp.Arity, "%s expects %d argument(s), got %d", node.Name, kw.min, n)
	}
	return prettylisp.Errorf(prettylisp.Arity, "%s expects %d to %d arguments, got %d",
		node.Name, kw.min, kw.max, n)
}

var keywords = map[string]keyword{}

func init() {
	for _, kw := range []keyword{
		{"set", 2, 2, evalSet},
		{"declare", 1, 2, declaration(false, false)},
		{"global", 1, 2, declaration(true, false)},
		{"readonly", 2, 2, declaration(false, true)},
		{"const", 2, 2, declaration(true, true)},
		{"destroy", 1, 1, evalDestroy},
		{"if", 2, 2, evalIf},
		{"ifelse", 3, 3, evalIf},
		{"while", 2, 2, evalWhile},
		{"for", 4, 4, evalFor},
		{"append", 2, 2, evalAppend},
		{"pop", 1, 1, evalPop},
		{"set_at", 3, 3, evalSetAt},
		{"define", 3, 3, evalDefine},
		{"return", 0, 1, evalReturn},
		{"at", 2, 2, evalAt},
	} {
		keywords[kw.name] = kw
	}
	for alias, name := range map[string]string{
		"=":   "set",
		":=":  "declare",
		"::=": "global",
		".=":  "readonly",
		"..=": "const",
	} {
		keywords[alias] = keywords[name]
	}
}

// nameOf extracts a binding name from a keyword argument.
func nameOf(node *ast.Node) (string, error) {
	if node.Kind != ast.Variable {
		return "", prettylisp.AtLine(prettylisp.Errorf(prettylisp.TypeCoercion,
			"expected a name, got %s", node.Label()), node.Line)
	}
	return node.Name, nil
}

// --- Variables -------------------------------------------------------------

func evalSet(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	name, err := nameOf(node.Args()[0])
	if err != nil {
		return value.Null, false, err
	}
	v, err := intp.evalValue(node.Args()[1])
	if err != nil {
		return value.Null, false, err
	}
	return value.Null, false, intp.rt.Assign(name, intp.rt.Current(), v)
}

// declaration creates the evaluation for the declare family of keywords.
// Global declarations go to scope 0, all others to the scope of the keyword node.
func declaration(global bool, readonly bool) func(*Interpreter, *ast.Node, runtime.ScopeID) (value.Value, bool, error) {
	return func(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
		name, err := nameOf(node.Args()[0])
		if err != nil {
			return value.Null, false, err
		}
		v := value.Null
		if len(node.Args()) > 1 {
			if v, err = intp.evalValue(node.Args()[1]); err != nil {
				return value.Null, false, err
			}
		}
		scope := id
		if global {
			scope = runtime.GlobalScope
		}
		return value.Null, false, intp.rt.Declare(name, scope, v, readonly)
	}
}

func evalDestroy(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	name, err := nameOf(node.Args()[0])
	if err != nil {
		return value.Null, false, err
	}
	intp.rt.Destroy(name)
	return value.Null, false, nil
}

// --- Control flow ----------------------------------------------------------

// evalIf handles both if and ifelse. The value of the taken branch is the
// result, null if no branch is taken. Return signals propagate.
func evalIf(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	args := node.Args()
	cond, err := intp.evalValue(args[0])
	if err != nil {
		return value.Null, false, err
	}
	if cond.Truthy() {
		return intp.eval(args[1])
	}
	if len(args) > 2 {
		return intp.eval(args[2])
	}
	return value.Null, false, nil
}

func evalWhile(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	cond, body := node.Args()[0], node.Args()[1]
	for {
		c, err := intp.evalValue(cond)
		if err != nil {
			return value.Null, false, err
		}
		if !c.Truthy() {
			return value.Null, false, nil
		}
		v, returned, err := intp.eval(body)
		if err != nil || returned {
			return v, returned, err
		}
	}
}

// evalFor evaluates (for init cond step body).
func evalFor(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	args := node.Args()
	if _, err := intp.evalValue(args[0]); err != nil {
		return value.Null, false, err
	}
	for {
		c, err := intp.evalValue(args[1])
		if err != nil {
			return value.Null, false, err
		}
		if !c.Truthy() {
			return value.Null, false, nil
		}
		v, returned, err := intp.eval(args[3])
		if err != nil || returned {
			return v, returned, err
		}
		if _, err = intp.evalValue(args[2]); err != nil {
			return value.Null, false, err
		}
	}
}

func evalReturn(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	if len(node.Args()) == 0 {
		return value.Null, true, nil
	}
	v, err := intp.evalValue(node.Args()[0])
	if err != nil {
		return value.Null, false, err
	}
	return v, true, nil
}

// --- Arrays ----------------------------------------------------------------

func evalAppend(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	a, err := intp.evalValue(node.Args()[0])
	if err != nil {
		return value.Null, false, err
	}
	x, err := intp.evalValue(node.Args()[1])
	if err != nil {
		return value.Null, false, err
	}
	elems := value.ToArray(a)
	r := make([]value.Value, len(elems), len(elems)+1)
	copy(r, elems)
	return value.Array(append(r, x)...), false, nil
}

func evalPop(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	a, err := intp.evalValue(node.Args()[0])
	if err != nil {
		return value.Null, false, err
	}
	elems := value.ToArray(a)
	if len(elems) == 0 {
		return value.Null, false, prettylisp.Errorf(prettylisp.IndexOutOfRange, "pop from empty array")
	}
	r := make([]value.Value, len(elems)-1)
	copy(r, elems)
	return value.Array(r...), false, nil
}

func evalAt(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	a, err := intp.evalValue(node.Args()[0])
	if err != nil {
		return value.Null, false, err
	}
	elems := value.ToArray(a)
	i, err := intp.evalIndex(node.Args()[1], len(elems))
	if err != nil {
		return value.Null, false, err
	}
	return elems[i], false, nil
}

// evalSetAt writes into the array bound to a name. Arrays are written in
// place, so every binding sharing the array sees the change. Any other value
// is converted to an array first, which is then stored under the name.
func evalSetAt(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	args := node.Args()
	name, err := nameOf(args[0])
	if err != nil {
		return value.Null, false, err
	}
	scope := intp.rt.Current()
	tag, err := intp.rt.Resolve(name, scope)
	if err != nil {
		return value.Null, false, err
	}
	if tag.Readonly {
		return value.Null, false, prettylisp.Errorf(prettylisp.ReadonlyViolation, "variable %s is readonly", name)
	}
	arr := tag.Value
	if arr.Kind() != value.ArrayKind {
		elems := value.ToArray(arr)
		arr = value.Array(append([]value.Value(nil), elems...)...)
	}
	i, err := intp.evalIndex(args[1], len(arr.Elems()))
	if err != nil {
		return value.Null, false, err
	}
	x, err := intp.evalValue(args[2])
	if err != nil {
		return value.Null, false, err
	}
	arr.Elems()[i] = x
	return value.Null, false, intp.rt.Assign(name, scope, arr)
}

func (intp *Interpreter) evalIndex(node *ast.Node, length int) (int, error) {
	iv, err := intp.evalValue(node)
	if err != nil {
		return 0, err
	}
	i, err := value.AsIndex(iv)
	if err != nil {
		return 0, err
	}
	return value.Index(i, length)
}

// --- Functions -------------------------------------------------------------

// evalDefine registers a user function at the scope of the define node.
// A parameter list written as an array of bare names is taken literally;
// any other parameter expression is evaluated and its elements used as names.
func evalDefine(intp *Interpreter, node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	args := node.Args()
	name, err := nameOf(args[0])
	if err != nil {
		return value.Null, false, err
	}
	params, ok := literalParams(args[1])
	if !ok {
		pv, err := intp.evalValue(args[1])
		if err != nil {
			return value.Null, false, err
		}
		for _, p := range value.ToArray(pv) {
			params = append(params, p.String())
		}
	}
	intp.rt.Define(name, id, &runtime.Function{
		Params: params,
		Body:   args[2],
	})
	return value.Null, false, nil
}

func literalParams(node *ast.Node) ([]string, bool) {
	if node.Kind != ast.Array {
		return nil, false
	}
	params := make([]string, 0, len(node.Children))
	for _, ch := range node.Children {
		if ch.Kind != ast.Variable {
			return nil, false
		}
		params = append(params, ch.Name)
	}
	return params, true
}
