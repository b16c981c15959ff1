package compiler

import (
	"fmt"

	"prior.dev/pkg/prior/internal/syntax"
	"prior.dev/pkg/prior/internal/vm"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	accel vm.Accelerator
}

// WithAccelerator wraps the compiled sampler with an acceleration backend,
// e.g. vm.Memoized.
func WithAccelerator(a vm.Accelerator) Option {
	return func(o *options) {
		o.accel = a
	}
}

// Compile compiles one model definition into a prior-predictive sampler. The
// pipeline is rewrite -> bind against the namespace -> assemble the artifact,
// which is bound into ns under its generated name and returned. Compilation
// is one-shot and deterministic; any failure leaves ns untouched.
//
// The namespace must hold every distribution constructor and free name the
// model body references. Each compilation may run concurrently with others as
// long as namespaces are not shared.
func Compile(decl *syntax.ModelDecl, ns *vm.Namespace, opts ...Option) (*vm.Sampler, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	def, err := Rewrite(decl)
	if err != nil {
		return nil, err
	}

	steps, err := bind(def, decl.Params, ns)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", def.Model, err)
	}

	sampler := vm.NewSampler(def.Name, def.Model, def.Params, decl.Params, steps)

	if o.accel != nil {
		sampler.Accelerate(o.accel)
	}

	ns.Bind(def.Name, sampler)

	return sampler, nil
}

// CompileFile compiles every model in a parsed file into the namespace and
// returns the samplers in file order.
func CompileFile(file *syntax.File, ns *vm.Namespace, opts ...Option) ([]*vm.Sampler, error) {
	samplers := make([]*vm.Sampler, 0, len(file.Models))

	for _, decl := range file.Models {
		sampler, err := Compile(decl, ns, opts...)
		if err != nil {
			return nil, err
		}

		samplers = append(samplers, sampler)
	}

	return samplers, nil
}

// bind closure-compiles the rewritten body against the namespace. Every
// distribution constructor and free name is resolved here, at compile time,
// so a missing name surfaces as a vm.ResolveError before any sampler exists.
func bind(def *SamplerDef, modelParams []string, ns *vm.Namespace) ([]vm.Step, error) {
	locals := make(map[string]bool, len(modelParams)+len(def.Body))
	for _, p := range modelParams {
		locals[p] = true
	}

	steps := make([]vm.Step, 0, len(def.Body))

	for _, stmt := range def.Body {
		step, err := bindStmt(stmt, locals, ns)
		if err != nil {
			return nil, err
		}

		if step.Kind != vm.StepDiscard {
			locals[step.Target] = true
		}

		steps = append(steps, step)
	}

	return steps, nil
}

func bindStmt(stmt Stmt, locals map[string]bool, ns *vm.Namespace) (vm.Step, error) {
	switch s := stmt.(type) {
	case *AssignStmt:
		thunk, err := vm.CompileExpr(s.Value, locals, ns)
		if err != nil {
			return vm.Step{}, err
		}

		return vm.Step{Kind: vm.StepAssign, Target: s.Target, Value: thunk, Pos: s.StmtPos}, nil

	case *ExprStmt:
		thunk, err := vm.CompileExpr(s.Value, locals, ns)
		if err != nil {
			return vm.Step{}, err
		}

		return vm.Step{Kind: vm.StepDiscard, Value: thunk, Pos: s.StmtPos}, nil

	case *SampleStmt:
		obj, ok := ns.Lookup(s.Dist)
		if !ok {
			return vm.Step{}, &vm.ResolveError{Name: s.Dist, Pos: s.StmtPos}
		}

		ctor, ok := obj.(vm.Constructor)
		if !ok {
			return vm.Step{}, fmt.Errorf("%s: %q is not a distribution", s.StmtPos, s.Dist)
		}

		args := make([]vm.Thunk, len(s.Args))

		for i, arg := range s.Args {
			thunk, err := vm.CompileExpr(arg, locals, ns)
			if err != nil {
				return vm.Step{}, err
			}

			args[i] = thunk
		}

		return vm.Step{
			Kind:      vm.StepSample,
			Target:    s.Target,
			Dist:      ctor,
			DistName:  s.Dist,
			Args:      args,
			WithShape: s.WithShape,
			Pos:       s.StmtPos,
		}, nil

	default:
		return vm.Step{}, fmt.Errorf("%s: unsupported statement", stmt.Pos())
	}
}
