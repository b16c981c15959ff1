package compiler

import (
	"fmt"
	"strings"

	"prior.dev/pkg/prior/internal/syntax"
)

// Names injected into the rewritten signature.
const (
	// KeyParam is the randomness-source parameter, prepended.
	KeyParam = "rng_key"
	// ShapeParam is the sample-shape parameter, appended with an empty default.
	ShapeParam = "sample_shape"
	// SamplerSuffix marks the generated function name.
	SamplerSuffix = "_sampler"
)

// SamplerDef is the rewritten tree for one model definition: the new
// signature and the body with every random-variable declaration replaced by a
// synthesized sampling statement.
type SamplerDef struct {
	Name   string   // generated name: model name + SamplerSuffix
	Model  string   // original model name
	Params []string // KeyParam, original params..., ShapeParam
	Body   []Stmt
}

// Signature renders the generated function signature, e.g.
// "coin_sampler(rng_key, n, sample_shape=())".
func (d *SamplerDef) Signature() string {
	params := make([]string, len(d.Params))
	copy(params, d.Params)

	if n := len(params); n > 0 && params[n-1] == ShapeParam {
		params[n-1] = ShapeParam + "=()"
	}

	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(params, ", "))
}

// Program renders the whole rewritten definition, one statement per line.
func (d *SamplerDef) Program() []string {
	lines := make([]string, 0, len(d.Body)+1)
	lines = append(lines, d.Signature())

	for _, stmt := range d.Body {
		lines = append(lines, "    "+stmt.String())
	}

	return lines
}

type rewriter struct {
	model string
	vars  []string // declared-variable registry, in declaration order
}

// Rewrite transforms a parsed model definition into a sampler definition. The
// body is walked once, top to bottom; declarations are assumed to appear in
// topological order. Any grammar violation aborts immediately with no partial
// result.
func Rewrite(decl *syntax.ModelDecl) (*SamplerDef, error) {
	r := &rewriter{model: decl.Name}

	def := &SamplerDef{
		Name:  decl.Name + SamplerSuffix,
		Model: decl.Name,
	}

	def.Params = append(def.Params, KeyParam)
	def.Params = append(def.Params, decl.Params...)
	def.Params = append(def.Params, ShapeParam)

	for _, stmt := range decl.Body {
		rewritten, err := r.rewriteStmt(stmt)
		if err != nil {
			return nil, err
		}

		def.Body = append(def.Body, rewritten)
	}

	return def, nil
}

func (r *rewriter) rewriteStmt(stmt syntax.Stmt) (Stmt, error) {
	switch s := stmt.(type) {
	case *syntax.AssignStmt:
		// Plain bindings pass through untouched, but their targets become
		// referenceable dependencies exactly like random variables.
		r.vars = append(r.vars, s.Name)

		return &AssignStmt{Target: s.Name, Value: s.Value, StmtPos: s.Pos()}, nil

	case *syntax.ExprStmt:
		if bin, ok := s.X.(*syntax.BinaryExpr); ok && bin.Op == syntax.TILDE {
			return r.rewriteDeclaration(bin)
		}

		return &ExprStmt{Value: s.X, StmtPos: s.Pos()}, nil

	default:
		return nil, fmt.Errorf("model %q: %s: unsupported statement", r.model, stmt.Pos())
	}
}

// rewriteDeclaration checks the declaration grammar and synthesizes the
// replacement sampling statement.
func (r *rewriter) rewriteDeclaration(bin *syntax.BinaryExpr) (Stmt, error) {
	target, ok := bin.X.(*syntax.Ident)
	if !ok {
		return nil, r.grammarErr(bin.X.Pos(), bin.X,
			"expected a name on the left of the random-variable declaration", "")
	}

	call, ok := bin.Y.(*syntax.CallExpr)
	if !ok {
		return nil, r.grammarErr(bin.Y.Pos(), bin.Y,
			"expected a distribution initialization on the right of the random-variable declaration", "")
	}

	distName, ok := resolveName(call.Fun)
	if !ok {
		return nil, r.grammarErr(call.Fun.Pos(), call.Fun,
			"expected a distribution name or dotted path", "")
	}

	for _, arg := range call.Args {
		if !isNameOrConstant(arg) {
			return nil, r.grammarErr(arg.Pos(), arg,
				fmt.Sprintf("expected a variable or a constant to initialize %s's distribution", target.Name),
				fmt.Sprintf("hoist the computation into its own binding first: "+
					"instead of `%s ~ %s(%s, ...)` write `tmp = %s` and `%s ~ %s(tmp, ...)`",
					target.Name, distName, syntax.Format(arg), syntax.Format(arg), target.Name, distName))
		}
	}

	// Classify against the registry as it stood before this declaration; a
	// variable cannot depend on itself.
	leaf := isLeaf(call.Args, r.vars)
	r.vars = append(r.vars, target.Name)

	return newSampleStmt(target.Name, distName, call.Args, leaf, bin.X.Pos()), nil
}

// isNameOrConstant accepts the argument shapes the declaration grammar
// allows: plain names, number literals, and negated number literals.
func isNameOrConstant(e syntax.Expr) bool {
	switch x := e.(type) {
	case *syntax.Ident, *syntax.NumberLit:
		return true
	case *syntax.UnaryExpr:
		_, ok := x.X.(*syntax.NumberLit)
		return ok
	default:
		return false
	}
}
