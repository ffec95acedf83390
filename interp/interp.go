package interp

import (
	"bufio"
	"io"
	"os"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/ast"
	"github.com/npillmayer/prettylisp/runtime"
	"github.com/npillmayer/prettylisp/value"
)

// Interpreter evaluates PrettyLisp ASTs.
type Interpreter struct {
	rt  *runtime.Runtime
	out io.Writer
	in  *bufio.Reader
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the stream print and println write to. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(intp *Interpreter) {
		intp.out = w
	}
}

// WithInput sets the stream input reads lines from. Default is os.Stdin.
func WithInput(r io.Reader) Option {
	return func(intp *Interpreter) {
		intp.in = bufio.NewReader(r)
	}
}

// New creates an interpreter with built-in functions and constants installed.
func New(opts ...Option) *Interpreter {
	intp := &Interpreter{}
	for _, opt := range opts {
		opt(intp)
	}
	if intp.out == nil {
		intp.out = os.Stdout
	}
	if intp.in == nil {
		intp.in = bufio.NewReader(os.Stdin)
	}
	intp.Reset()
	return intp
}

// Reset discards every variable and user-defined function.
func (intp *Interpreter) Reset() {
	intp.rt = runtime.NewRuntimeEnvironment()
	intp.installConstants()
	intp.installBuiltins()
	tracer().Infof("interpreter reset")
}

// Runtime returns the binding store of the interpreter.
func (intp *Interpreter) Runtime() *runtime.Runtime {
	return intp.rt
}

var constants = []struct {
	name string
	val  value.Value
}{
	{"true", value.Bool(true)},
	{"false", value.Bool(false)},
	{"null", value.Null},
	{"NaN", value.Number(nan)},
	{"inf", value.Number(inf)},
	{"ninf", value.Number(-inf)},
}

func (intp *Interpreter) installConstants() {
	for _, c := range constants {
		if err := intp.rt.Declare(c.name, runtime.GlobalScope, c.val, true); err != nil {
			panic(err) // fresh runtime
		}
	}
}

// --- Evaluation ------------------------------------------------------------

// Evaluate evaluates a single node and returns its value.
//
// A return signal is accepted only if node is an expression block; for any
// other node a return reaching this level fails with an UnexpectedReturn error.
func (intp *Interpreter) Evaluate(node *ast.Node) (value.Value, error) {
	v, returned, err := intp.eval(node)
	if err != nil {
		return value.Null, err
	}
	if returned && node.Kind != ast.Block {
		return value.Null, unexpectedReturn(node)
	}
	return v, nil
}

// Run evaluates the top-level nodes of a program one after the other, for
// their side effects. It stops at the first failure and returns it. Bindings
// created by earlier top-level nodes persist.
func (intp *Interpreter) Run(prog *ast.Node) error {
	if prog.Kind != ast.Program {
		_, err := intp.Evaluate(prog)
		return err
	}
	for _, node := range prog.Children {
		if _, err := intp.Evaluate(node); err != nil {
			return err
		}
	}
	return nil
}

// eval evaluates a node. The returned flag signals an early return, with the
// value being the returned one.
func (intp *Interpreter) eval(node *ast.Node) (value.Value, bool, error) {
	if node.IsLeaf() {
		v, err := intp.evalLeaf(node)
		return v, false, prettylisp.AtLine(err, node.Line)
	}
	id := intp.rt.Enter()
	tracer().P("scope", id).Debugf("evaluating %s", node.Label())
	v, returned, err := intp.dispatch(node, id)
	if err == nil {
		tracer().P("scope", id).Debugf("evaluated: %s", v.Debug())
	}
	intp.rt.Exit(id)
	if err != nil {
		return value.Null, false, prettylisp.AtLine(err, node.Line)
	}
	return v, returned, nil
}

// evalValue evaluates a node in a position where a return signal is illegal.
func (intp *Interpreter) evalValue(node *ast.Node) (value.Value, error) {
	v, returned, err := intp.eval(node)
	if err != nil {
		return value.Null, err
	}
	if returned {
		return value.Null, unexpectedReturn(node)
	}
	return v, nil
}

func (intp *Interpreter) evalLeaf(node *ast.Node) (value.Value, error) {
	switch node.Kind {
	case ast.Number:
		return value.Number(node.Num), nil
	case ast.String:
		return value.String(node.Text), nil
	}
	tag, err := intp.rt.Resolve(node.Name, intp.rt.Current())
	if err != nil {
		return value.Null, err
	}
	return tag.Value, nil
}

func (intp *Interpreter) dispatch(node *ast.Node, id runtime.ScopeID) (value.Value, bool, error) {
	switch node.Kind {
	case ast.Array:
		elems := make([]value.Value, len(node.Children))
		for i, ch := range node.Children {
			v, err := intp.evalValue(ch)
			if err != nil {
				return value.Null, false, err
			}
			elems[i] = v
		}
		return value.Array(elems...), false, nil
	case ast.Block:
		return intp.evalSequence(node.Children)
	case ast.Program:
		results := make([]value.Value, len(node.Children))
		for i, ch := range node.Children {
			v, err := intp.evalValue(ch)
			if err != nil {
				return value.Null, false, err
			}
			results[i] = v
		}
		return value.Array(results...), false, nil
	case ast.Call:
		if kw, ok := keywords[node.Name]; ok {
			if err := kw.checkArity(node); err != nil {
				return value.Null, false, err
			}
			return kw.eval(intp, node, id)
		}
		v, err := intp.call(node, id)
		return v, false, err
	}
	return value.Null, false, prettylisp.Errorf(prettylisp.Syntax, "unexpected node %s", node.Kind)
}

// evalSequence evaluates the children of a block in order. It stops at the
// first return signal; otherwise the value of the last child is the result.
func (intp *Interpreter) evalSequence(nodes []*ast.Node) (value.Value, bool, error) {
	result := value.Null
	for _, n := range nodes {
		v, returned, err := intp.eval(n)
		if err != nil {
			return value.Null, false, err
		}
		if returned {
			return v, true, nil
		}
		result = v
	}
	return result, false, nil
}

func unexpectedReturn(node *ast.Node) error {
	return prettylisp.AtLine(prettylisp.Errorf(prettylisp.UnexpectedReturn,
		"return outside of a function"), node.Line)
}

// --- Calls -----------------------------------------------------------------

// call is an ordinary call: arguments are evaluated eagerly, then the function
// bound to the node's name is invoked.
func (intp *Interpreter) call(node *ast.Node, id runtime.ScopeID) (value.Value, error) {
	fn, err := intp.rt.Function(node.Name, id)
	if err != nil {
		return value.Null, err
	}
	args := make([]value.Value, len(node.Children))
	for i, ch := range node.Children {
		if args[i], err = intp.evalValue(ch); err != nil {
			return value.Null, err
		}
	}
	if fn.IsNative() {
		return fn.Native(args)
	}
	return intp.invoke(node.Name, fn, args)
}

// invoke calls a user-defined function. Parameters are declared in a frame of
// their own; the statements of the body see them and are evaluated one level
// deeper. The body's return value, or its trailing value, is the result.
func (intp *Interpreter) invoke(name string, fn *runtime.Function, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Null, prettylisp.Errorf(prettylisp.Arity, "%s expects %d argument(s), got %d",
			name, len(fn.Params), len(args))
	}
	frame := intp.rt.Enter()
	defer intp.rt.Exit(frame)
	tracer().P("scope", frame).Debugf("calling %s", name)
	for i, p := range fn.Params {
		if err := intp.rt.Declare(p, frame, args[i], false); err != nil {
			return value.Null, err
		}
	}
	var v value.Value
	var err error
	if fn.Body.Kind == ast.Block {
		v, _, err = intp.evalSequence(fn.Body.Children)
	} else {
		v, _, err = intp.eval(fn.Body)
	}
	return v, err
}
