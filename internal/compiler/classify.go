package compiler

import "prior.dev/pkg/prior/internal/syntax"

// isLeaf reports whether a declaration is independent of every variable
// declared before it: true iff none of the distribution's arguments is a
// plain name reference to an entry of the registry. Constants and anything
// that is not a direct name never trigger a dependency.
//
// Only leaf variables receive the caller-requested sample shape; dependent
// variables inherit their parents' realized shapes, which avoids broadcast
// conflicts when a chain of dependent draws is unrolled.
func isLeaf(args []syntax.Expr, declared []string) bool {
	for _, arg := range args {
		ident, ok := arg.(*syntax.Ident)
		if !ok {
			continue
		}

		for _, name := range declared {
			if ident.Name == name {
				return false
			}
		}
	}

	return true
}
