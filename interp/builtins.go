package interp

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/npillmayer/prettylisp"
	"github.com/npillmayer/prettylisp/runtime"
	"github.com/npillmayer/prettylisp/value"
)

var nan = math.NaN()
var inf = math.Inf(1)

// variadic marks built-ins accepting any number of arguments.
const variadic = -1

type builtin struct {
	name  string
	arity int
	fn    runtime.NativeFunc
}

// installBuiltins binds the built-in functions at global scope.
func (intp *Interpreter) installBuiltins() {
	for _, b := range intp.builtins() {
		b := b
		native := b.fn
		if b.arity != variadic {
			native = func(args []value.Value) (value.Value, error) {
				if len(args) != b.arity {
					return value.Null, prettylisp.Errorf(prettylisp.Arity, "%s expects %d argument(s), got %d",
						b.name, b.arity, len(args))
				}
				return b.fn(args)
			}
		}
		intp.rt.Define(b.name, runtime.GlobalScope, &runtime.Function{Native: native})
	}
}

func (intp *Interpreter) builtins() []builtin {
	return []builtin{
		{"+", 2, arithmetic(func(a, b float64) float64 { return a + b })},
		{"-", 2, arithmetic(func(a, b float64) float64 { return a - b })},
		{"*", 2, arithmetic(func(a, b float64) float64 { return a * b })},
		{"/", 2, arithmetic(func(a, b float64) float64 { return a / b })},
		{"%", 2, arithmetic(math.Mod)},
		{"**", 2, arithmetic(math.Pow)},
		{".+", 2, func(args []value.Value) (value.Value, error) {
			return value.Concat(args...), nil
		}},
		{"==", 2, func(args []value.Value) (value.Value, error) {
			return value.Bool(args[0].Equal(args[1])), nil
		}},
		{"!=", 2, func(args []value.Value) (value.Value, error) {
			return value.Bool(!args[0].Equal(args[1])), nil
		}},
		{".<", 2, comparison(func(a, b float64) bool { return a < b })},
		{".>", 2, comparison(func(a, b float64) bool { return a > b })},
		{".<=", 2, comparison(func(a, b float64) bool { return a <= b })},
		{".>=", 2, comparison(func(a, b float64) bool { return a >= b })},
		{"&&", 2, func(args []value.Value) (value.Value, error) {
			return value.Bool(args[0].Truthy() && args[1].Truthy()), nil
		}},
		{"||", 2, func(args []value.Value) (value.Value, error) {
			return value.Bool(args[0].Truthy() || args[1].Truthy()), nil
		}},
		{"!", 1, func(args []value.Value) (value.Value, error) {
			return value.Bool(!args[0].Truthy()), nil
		}},
		{"char", 1, func(args []value.Value) (value.Value, error) {
			return value.Char(args[0])
		}},
		{"length", 1, func(args []value.Value) (value.Value, error) {
			n, err := value.Length(args[0])
			return value.Number(float64(n)), err
		}},
		{"parse_num", 1, func(args []value.Value) (value.Value, error) {
			return value.ParseNumber(args[0])
		}},
		{"print", variadic, intp.print},
		{"println", variadic, intp.println},
		{"input", variadic, intp.input},
		{"debug", variadic, intp.debug},
	}
}

func arithmetic(op func(a, b float64) float64) runtime.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		a, b, err := numbers(args)
		if err != nil {
			return value.Null, err
		}
		return value.Number(op(a, b)), nil
	}
}

func comparison(op func(a, b float64) bool) runtime.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		a, b, err := numbers(args)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(op(a, b)), nil
	}
}

func numbers(args []value.Value) (float64, float64, error) {
	a, err := value.AsNumber(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := value.AsNumber(args[1])
	return a, b, err
}

// --- I/O -------------------------------------------------------------------

func (intp *Interpreter) print(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if _, err := io.WriteString(intp.out, a.String()); err != nil {
			return value.Null, err
		}
	}
	return value.Null, nil
}

func (intp *Interpreter) println(args []value.Value) (value.Value, error) {
	if _, err := intp.print(args); err != nil {
		return value.Null, err
	}
	_, err := fmt.Fprintln(intp.out)
	return value.Null, err
}

// input prints its arguments as a prompt and reads one line. At end of input
// without any data, input returns null.
func (intp *Interpreter) input(args []value.Value) (value.Value, error) {
	if _, err := intp.print(args); err != nil {
		return value.Null, err
	}
	line, err := intp.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return value.Null, err
	}
	if err == io.EOF && line == "" {
		return value.Null, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return value.String(line), nil
}

// debug traces the binding store.
func (intp *Interpreter) debug(args []value.Value) (value.Value, error) {
	for _, a := range args {
		tracer().Infof("debug: %s", a.Debug())
	}
	intp.rt.Dump()
	return value.Null, nil
}
