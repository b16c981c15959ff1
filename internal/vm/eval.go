package vm

import (
	"fmt"
	"math"

	"prior.dev/pkg/prior/internal/syntax"
)

// Env holds the variable bindings of a single sampler invocation.
type Env map[string]Value

// Thunk is a compiled expression, evaluated against an invocation's Env.
type Thunk func(Env) (Value, error)

// CompileExpr closure-compiles an expression. Names in locals are resolved
// from the Env at run time; every other name must resolve in the namespace
// now, so unresolved references fail at compilation rather than mid-draw.
func CompileExpr(e syntax.Expr, locals map[string]bool, ns *Namespace) (Thunk, error) {
	switch x := e.(type) {
	case *syntax.NumberLit:
		v := Scalar(x.Value)
		return func(Env) (Value, error) { return v, nil }, nil

	case *syntax.Ident:
		return compileName(x.Name, x.Pos(), locals, ns)

	case *syntax.SelectorExpr:
		path, ok := dottedPath(x)
		if !ok {
			return nil, fmt.Errorf("%s: unsupported selector expression", x.Pos())
		}

		return compileName(path, x.Pos(), locals, ns)

	case *syntax.ParenExpr:
		return CompileExpr(x.X, locals, ns)

	case *syntax.UnaryExpr:
		operand, err := CompileExpr(x.X, locals, ns)
		if err != nil {
			return nil, err
		}

		return func(env Env) (Value, error) {
			v, err := operand(env)
			if err != nil {
				return Value{}, err
			}

			return Map(v, func(f float64) float64 { return -f }), nil
		}, nil

	case *syntax.BinaryExpr:
		return compileBinary(x, locals, ns)

	case *syntax.CallExpr:
		return compileCall(x, locals, ns)

	default:
		return nil, fmt.Errorf("%s: unsupported expression", e.Pos())
	}
}

func dottedPath(e syntax.Expr) (string, bool) {
	switch x := e.(type) {
	case *syntax.Ident:
		return x.Name, true
	case *syntax.SelectorExpr:
		base, ok := dottedPath(x.X)
		if !ok {
			return "", false
		}

		return base + "." + x.Sel, true
	default:
		return "", false
	}
}

func compileName(name string, pos syntax.Pos, locals map[string]bool, ns *Namespace) (Thunk, error) {
	if locals[name] {
		return func(env Env) (Value, error) {
			v, ok := env[name]
			if !ok {
				return Value{}, fmt.Errorf("%s: name %q not bound at runtime", pos, name)
			}

			return v, nil
		}, nil
	}

	obj, ok := ns.Lookup(name)
	if !ok {
		return nil, &ResolveError{Name: name, Pos: pos}
	}

	v, ok := obj.(Value)
	if !ok {
		return nil, fmt.Errorf("%s: %q is not usable as a value", pos, name)
	}

	return func(Env) (Value, error) { return v, nil }, nil
}

func compileBinary(x *syntax.BinaryExpr, locals map[string]bool, ns *Namespace) (Thunk, error) {
	if x.Op == syntax.TILDE {
		return nil, fmt.Errorf("%s: %q declarations cannot appear inside expressions", x.OpPos, "~")
	}

	op, err := binaryOp(x.Op, x.OpPos)
	if err != nil {
		return nil, err
	}

	left, err := CompileExpr(x.X, locals, ns)
	if err != nil {
		return nil, err
	}

	right, err := CompileExpr(x.Y, locals, ns)
	if err != nil {
		return nil, err
	}

	return func(env Env) (Value, error) {
		a, err := left(env)
		if err != nil {
			return Value{}, err
		}

		b, err := right(env)
		if err != nil {
			return Value{}, err
		}

		return Map2(a, b, op)
	}, nil
}

func binaryOp(tt syntax.TokenType, pos syntax.Pos) (func(x, y float64) float64, error) {
	switch tt {
	case syntax.PLUS:
		return func(x, y float64) float64 { return x + y }, nil
	case syntax.MINUS:
		return func(x, y float64) float64 { return x - y }, nil
	case syntax.STAR:
		return func(x, y float64) float64 { return x * y }, nil
	case syntax.SLASH:
		return func(x, y float64) float64 { return x / y }, nil
	case syntax.PERCENT:
		return math.Mod, nil
	default:
		return nil, fmt.Errorf("%s: unsupported operator %s", pos, tt)
	}
}

func compileCall(x *syntax.CallExpr, locals map[string]bool, ns *Namespace) (Thunk, error) {
	path, ok := dottedPath(x.Fun)
	if !ok {
		return nil, fmt.Errorf("%s: callee must be a name or dotted path", x.Fun.Pos())
	}

	obj, found := ns.Lookup(path)
	if !found {
		return nil, &ResolveError{Name: path, Pos: x.Fun.Pos()}
	}

	fn, ok := obj.(Builtin)
	if !ok {
		if _, isCtor := obj.(Constructor); isCtor {
			return nil, fmt.Errorf("%s: %q is a distribution; draw from it with %q instead of calling it",
				x.Fun.Pos(), path, "~")
		}

		return nil, fmt.Errorf("%s: %q is not callable", x.Fun.Pos(), path)
	}

	args := make([]Thunk, len(x.Args))

	for i, arg := range x.Args {
		thunk, err := CompileExpr(arg, locals, ns)
		if err != nil {
			return nil, err
		}

		args[i] = thunk
	}

	return func(env Env) (Value, error) {
		values := make([]Value, len(args))

		for i, arg := range args {
			v, err := arg(env)
			if err != nil {
				return Value{}, err
			}

			values[i] = v
		}

		return fn(values)
	}, nil
}
