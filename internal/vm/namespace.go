package vm

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"prior.dev/pkg/prior/internal/syntax"
)

// Builtin is a callable bound in a namespace, usable from plain assignments.
type Builtin func(args []Value) (Value, error)

// Distribution is the contract required of distribution objects: once
// constructed from evaluated parameter values, a distribution draws a
// concrete sample for a key and an optional extra sample shape.
type Distribution interface {
	Draw(key Key, sampleShape []int) (Value, error)
}

// Constructor instantiates a distribution from evaluated arguments.
type Constructor func(args []Value) (Distribution, error)

// Namespace is an explicit name registry: the scope compiled samplers resolve
// distribution constructors, builtins and constants in, and the scope the
// compiled sampler itself is bound into. A Namespace is not safe for
// concurrent mutation; concurrent compilations must each use their own.
type Namespace struct {
	names map[string]interface{}
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{names: make(map[string]interface{})}
}

// Bind registers a value under name, replacing any previous binding.
func (ns *Namespace) Bind(name string, v interface{}) {
	ns.names[name] = v
}

// Lookup resolves a possibly dotted name. Dotted paths traverse nested
// namespaces, e.g. "dist.Normal".
func (ns *Namespace) Lookup(name string) (interface{}, bool) {
	head, rest, dotted := strings.Cut(name, ".")

	v, ok := ns.names[head]
	if !ok {
		return nil, false
	}

	if !dotted {
		return v, true
	}

	nested, ok := v.(*Namespace)
	if !ok {
		return nil, false
	}

	return nested.Lookup(rest)
}

// Names returns the sorted top-level names.
func (ns *Namespace) Names() []string {
	names := make([]string, 0, len(ns.names))
	for name := range ns.names {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ResolveError reports a name that is absent from the namespace at
// compilation time.
type ResolveError struct {
	Name string
	Pos  syntax.Pos
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: undefined name %q", e.Pos, e.Name)
}

// InstallMath binds elementwise math builtins usable in plain assignments.
func InstallMath(ns *Namespace) {
	unary := map[string]func(float64) float64{
		"exp":  math.Exp,
		"log":  math.Log,
		"sqrt": math.Sqrt,
		"abs":  math.Abs,
	}

	for name, f := range unary {
		fn := f
		fname := name

		ns.Bind(name, Builtin(func(args []Value) (Value, error) {
			if len(args) != 1 {
				return Value{}, fmt.Errorf("%s expects 1 argument, got %d", fname, len(args))
			}

			return Map(args[0], fn), nil
		}))
	}

	ns.Bind("pow", Builtin(func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}

		return Map2(args[0], args[1], math.Pow)
	}))

	ns.Bind("pi", Scalar(math.Pi))
}
