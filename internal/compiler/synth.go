package compiler

import (
	"fmt"
	"strings"

	"prior.dev/pkg/prior/internal/syntax"
)

// Stmt is a statement of a rewritten sampler program.
type Stmt interface {
	Pos() syntax.Pos
	String() string
}

// AssignStmt is a plain binding carried over unchanged from the model body.
type AssignStmt struct {
	Target  string
	Value   syntax.Expr
	StmtPos syntax.Pos
}

// Pos implements Stmt.
func (s *AssignStmt) Pos() syntax.Pos { return s.StmtPos }

func (s *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", s.Target, syntax.Format(s.Value))
}

// ExprStmt is a bare expression statement carried over unchanged.
type ExprStmt struct {
	Value   syntax.Expr
	StmtPos syntax.Pos
}

// Pos implements Stmt.
func (s *ExprStmt) Pos() syntax.Pos { return s.StmtPos }

func (s *ExprStmt) String() string { return syntax.Format(s.Value) }

// SampleStmt is a synthesized sampling statement: bind the target to the
// result of instantiating the distribution and drawing from it with the
// randomness key and, for leaves only, the requested sample shape.
type SampleStmt struct {
	Target    string
	Dist      string
	Args      []syntax.Expr
	WithShape bool
	StmtPos   syntax.Pos
}

// Pos implements Stmt.
func (s *SampleStmt) Pos() syntax.Pos { return s.StmtPos }

func (s *SampleStmt) String() string {
	args := make([]string, len(s.Args))
	for i, arg := range s.Args {
		args[i] = syntax.Format(arg)
	}

	draw := KeyParam
	if s.WithShape {
		draw += ", " + ShapeParam
	}

	return fmt.Sprintf("%s = %s(%s).draw(%s)", s.Target, s.Dist, strings.Join(args, ", "), draw)
}

// newSampleStmt synthesizes the replacement statement for a random-variable
// declaration. Inputs are assumed validated; the caller propagates the
// original statement's source position.
func newSampleStmt(target, distName string, args []syntax.Expr, leaf bool, pos syntax.Pos) *SampleStmt {
	return &SampleStmt{
		Target:    target,
		Dist:      distName,
		Args:      args,
		WithShape: leaf,
		StmtPos:   pos,
	}
}
