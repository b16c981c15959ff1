// Package compiler turns parsed model definitions into executable
// prior-predictive samplers: it rewrites each model's tree into an ordered
// sampling program and binds the compiled artifact into a caller-supplied
// namespace.
package compiler

import (
	"fmt"

	"prior.dev/pkg/prior/internal/syntax"
)

// GrammarError reports a model body that violates the random-variable
// declaration grammar. Any grammar violation is fatal for the whole
// compilation; no partial artifact is produced.
type GrammarError struct {
	Model    string
	Pos      syntax.Pos
	Fragment string // offending source fragment, rendered in surface syntax
	Msg      string
	Hint     string
}

func (e *GrammarError) Error() string {
	s := fmt.Sprintf("model %q: %s: %s: %q", e.Model, e.Pos, e.Msg, e.Fragment)
	if e.Hint != "" {
		s += "\n" + e.Hint
	}

	return s
}

func (r *rewriter) grammarErr(pos syntax.Pos, fragment syntax.Expr, msg, hint string) error {
	return &GrammarError{
		Model:    r.model,
		Pos:      pos,
		Fragment: syntax.Format(fragment),
		Msg:      msg,
		Hint:     hint,
	}
}
