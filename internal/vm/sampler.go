package vm

import (
	"fmt"

	"prior.dev/pkg/prior/internal/syntax"
)

// StepKind discriminates compiled sampler statements.
type StepKind int

// Step kinds.
const (
	// StepAssign evaluates an expression and binds it.
	StepAssign StepKind = iota
	// StepSample instantiates a distribution and draws from it.
	StepSample
	// StepDiscard evaluates an expression for effect and drops the result.
	StepDiscard
)

// Step is one compiled statement of a sampler program. Exactly one of Value
// (assign/discard) or Dist+Args (sample) is set.
type Step struct {
	Kind      StepKind
	Target    string
	Value     Thunk
	Dist      Constructor
	DistName  string
	Args      []Thunk
	WithShape bool
	Pos       syntax.Pos
}

// Draw is one concretized variable of a sampler invocation.
type Draw struct {
	Name  string
	Value Value
}

// DrawSet is the ordered result of one sampler invocation: one value per
// bound variable, in declaration order.
type DrawSet struct {
	Model string
	Draws []Draw
}

// Get returns the draw for a variable name.
func (ds *DrawSet) Get(name string) (Value, bool) {
	for _, d := range ds.Draws {
		if d.Name == name {
			return d.Value, true
		}
	}

	return Value{}, false
}

// Fn is the callable contract of a compiled sampler.
type Fn func(key Key, args []Value, sampleShape []int) (*DrawSet, error)

// Accelerator wraps a sampler callable with a faster equivalent. It must
// preserve the input/output contract.
type Accelerator func(Fn) Fn

// Sampler is the compiled prior-predictive sampler artifact. It is a pure
// function of its inputs and safe for concurrent use.
type Sampler struct {
	Name   string   // generated name, model name + "_sampler"
	Model  string   // original model name
	Params []string // full generated parameter list
	Args   []string // original model parameters, in order
	Vars   []string // bound variable names, in order

	steps []Step
	fn    Fn
}

// NewSampler assembles a sampler from compiled steps.
func NewSampler(name, model string, params, args []string, steps []Step) *Sampler {
	s := &Sampler{
		Name:   name,
		Model:  model,
		Params: params,
		Args:   args,
		steps:  steps,
	}

	for _, step := range steps {
		if step.Kind != StepDiscard {
			s.Vars = append(s.Vars, step.Target)
		}
	}

	s.fn = s.run

	return s
}

// Accelerate replaces the sampler's callable with an accelerated wrapper.
func (s *Sampler) Accelerate(a Accelerator) {
	s.fn = a(s.fn)
}

// Draw produces one concretized draw of every variable in the model. The
// sample shape applies only to leaf variables; dependent variables inherit
// their parents' realized shapes.
func (s *Sampler) Draw(key Key, args []Value, sampleShape []int) (*DrawSet, error) {
	return s.fn(key, args, sampleShape)
}

func (s *Sampler) run(key Key, args []Value, sampleShape []int) (*DrawSet, error) {
	if len(args) != len(s.Args) {
		return nil, fmt.Errorf("%s expects %d argument(s) (%v), got %d", s.Name, len(s.Args), s.Args, len(args))
	}

	env := make(Env, len(args)+len(s.steps))
	for i, name := range s.Args {
		env[name] = args[i]
	}

	ds := &DrawSet{Model: s.Model}

	for i, step := range s.steps {
		v, err := s.runStep(step, env, key.Fold(uint64(i)), sampleShape)
		if err != nil {
			return nil, err
		}

		if step.Kind == StepDiscard {
			continue
		}

		env[step.Target] = v
		ds.Draws = append(ds.Draws, Draw{Name: step.Target, Value: v})
	}

	return ds, nil
}

func (s *Sampler) runStep(step Step, env Env, key Key, sampleShape []int) (Value, error) {
	switch step.Kind {
	case StepAssign, StepDiscard:
		v, err := step.Value(env)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", step.Pos, err)
		}

		return v, nil

	case StepSample:
		values := make([]Value, len(step.Args))

		for i, arg := range step.Args {
			v, err := arg(env)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", step.Pos, err)
			}

			values[i] = v
		}

		d, err := step.Dist(values)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %s: %w", step.Pos, step.DistName, err)
		}

		var shape []int
		if step.WithShape {
			shape = sampleShape
		}

		v, err := d.Draw(key, shape)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %s: %w", step.Pos, step.DistName, err)
		}

		return v, nil

	default:
		return Value{}, fmt.Errorf("%s: unknown step kind %d", step.Pos, step.Kind)
	}
}
