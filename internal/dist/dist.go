// Package dist provides the built-in distribution objects compiled samplers
// draw from, backed by gonum's stat/distuv samplers.
package dist

import (
	"fmt"

	xrand "golang.org/x/exp/rand"

	"prior.dev/pkg/prior/internal/vm"
)

// maker builds the per-element sampling function for one set of scalar
// parameters.
type maker func(params []float64, rnd *xrand.Rand) func() float64

// generic drives elementwise sampling for every built-in distribution: the
// parameter tensors are broadcast to a common base shape, and each element of
// the output is drawn from a distribution parameterized by the corresponding
// elements.
type generic struct {
	name   string
	base   []int       // broadcast shape of the parameters
	params [][]float64 // parameters expanded to the base shape
	make   maker
}

// Draw implements vm.Distribution. For leaf variables the requested sample
// shape is prepended to the parameter shape; dependent variables pass an
// empty shape and inherit their parents' realized shapes.
func (g *generic) Draw(key vm.Key, sampleShape []int) (vm.Value, error) {
	shape := append(append([]int(nil), sampleShape...), g.base...)

	baseSize := 1
	for _, d := range g.base {
		baseSize *= d
	}

	out := vm.Zeros(shape)
	data := make([]float64, out.Size())
	rnd := key.Rand()
	scratch := make([]float64, len(g.params))

	for i := range data {
		j := i % baseSize

		for p := range g.params {
			scratch[p] = g.params[p][j]
		}

		data[i] = g.make(scratch, rnd)()
	}

	v, err := vm.NewValue(shape, data)
	if err != nil {
		return vm.Value{}, fmt.Errorf("%s: %w", g.name, err)
	}

	return v, nil
}

// construct validates arity, broadcasts the parameter tensors and wires the
// per-element sampler.
func construct(name string, argNames []string, args []vm.Value, mk maker) (vm.Distribution, error) {
	if len(args) != len(argNames) {
		return nil, fmt.Errorf("%s expects %d argument(s) %v, got %d", name, len(argNames), argNames, len(args))
	}

	base := []int{}

	for _, arg := range args {
		joined, err := vm.BroadcastShapes(base, arg.Shape())
		if err != nil {
			return nil, fmt.Errorf("%s: incompatible parameter shapes: %w", name, err)
		}

		base = joined
	}

	params := make([][]float64, len(args))

	for i, arg := range args {
		expanded, err := vm.BroadcastTo(arg, base)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		params[i] = expanded.Data()
	}

	return &generic{name: name, base: base, params: params, make: mk}, nil
}

func constructor(name string, argNames []string, mk maker) vm.Constructor {
	return func(args []vm.Value) (vm.Distribution, error) {
		return construct(name, argNames, args, mk)
	}
}

// builtins lists every distribution constructor by name.
func builtins() map[string]vm.Constructor {
	out := make(map[string]vm.Constructor)

	for name, d := range continuous {
		out[name] = constructor(name, d.args, d.make)
	}

	for name, d := range discrete {
		out[name] = constructor(name, d.args, d.make)
	}

	return out
}

type spec struct {
	args []string
	make maker
}

// Install binds every distribution constructor into ns, both bare and under
// the "dist" prefix, plus the math builtins plain assignments may call.
func Install(ns *vm.Namespace) {
	nested := vm.NewNamespace()

	for name, ctor := range builtins() {
		ns.Bind(name, ctor)
		nested.Bind(name, ctor)
	}

	ns.Bind("dist", nested)
	vm.InstallMath(ns)
}

// Namespace returns a fresh namespace with all built-ins installed.
func Namespace() *vm.Namespace {
	ns := vm.NewNamespace()
	Install(ns)

	return ns
}
