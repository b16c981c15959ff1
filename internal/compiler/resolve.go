package compiler

import "prior.dev/pkg/prior/internal/syntax"

// resolveName reconstructs the dotted path of a callable reference: a bare
// identifier or a chain of selectors rooted at one ("dist.Normal"). Any other
// expression shape reports ok=false; the rewriter turns that into a grammar
// violation.
func resolveName(e syntax.Expr) (string, bool) {
	switch x := e.(type) {
	case *syntax.Ident:
		return x.Name, true

	case *syntax.SelectorExpr:
		base, ok := resolveName(x.X)
		if !ok {
			return "", false
		}

		return base + "." + x.Sel, true

	default:
		return "", false
	}
}
