package syntax

import (
	"fmt"
	"strings"
)

// Format renders an expression back into surface syntax. It is used for
// diagnostics and for printing rewritten sampler programs, so the output must
// re-parse to an equivalent tree.
func Format(e Expr) string {
	var b strings.Builder

	formatExpr(&b, e)

	return b.String()
}

func formatExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case *Ident:
		b.WriteString(x.Name)

	case *NumberLit:
		b.WriteString(x.Text)

	case *SelectorExpr:
		formatExpr(b, x.X)
		b.WriteString(".")
		b.WriteString(x.Sel)

	case *CallExpr:
		formatExpr(b, x.Fun)
		b.WriteString("(")

		for i, arg := range x.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			formatExpr(b, arg)
		}

		b.WriteString(")")

	case *BinaryExpr:
		formatOperand(b, x.X, precedence(x.Op))
		fmt.Fprintf(b, " %s ", x.Op)
		formatOperand(b, x.Y, precedence(x.Op)+1)

	case *UnaryExpr:
		b.WriteString("-")
		formatOperand(b, x.X, 4)

	case *ParenExpr:
		b.WriteString("(")
		formatExpr(b, x.X)
		b.WriteString(")")

	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

// formatOperand parenthesizes sub-expressions that bind looser than their
// context so the rendered text preserves grouping.
func formatOperand(b *strings.Builder, e Expr, minPrec int) {
	if bin, ok := e.(*BinaryExpr); ok && precedence(bin.Op) < minPrec {
		b.WriteString("(")
		formatExpr(b, e)
		b.WriteString(")")

		return
	}

	formatExpr(b, e)
}
