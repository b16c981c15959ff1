package syntax

// Node is implemented by every AST node and exposes its source position.
type Node interface {
	Pos() Pos
}

// File is a parsed model file: a sequence of model definitions.
type File struct {
	Filename string
	Models   []*ModelDecl
}

// ModelDecl is a single `model name(params) { body }` definition. The body is
// a straight-line sequence of statements; the language has no control flow.
type ModelDecl struct {
	Name    string
	NamePos Pos
	Params  []string
	Body    []Stmt
}

// Pos implements Node.
func (d *ModelDecl) Pos() Pos { return d.NamePos }

// Stmt is a statement inside a model body.
type Stmt interface {
	Node
	stmtNode()
}

// AssignStmt binds a name to the value of an arbitrary expression:
// `mu = w * x + b`.
type AssignStmt struct {
	Name    string
	NamePos Pos
	Value   Expr
}

// ExprStmt is a bare expression statement. Random-variable declarations
// (`x ~ Normal(0, 1)`) parse as expression statements wrapping a TILDE binary
// expression; the compiler recognizes and rewrites them.
type ExprStmt struct {
	X Expr
}

func (s *AssignStmt) Pos() Pos { return s.NamePos }
func (s *ExprStmt) Pos() Pos   { return s.X.Pos() }

func (*AssignStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Ident is a plain name reference.
type Ident struct {
	Name    string
	NamePos Pos
}

// NumberLit is a numeric literal. Text preserves the source spelling.
type NumberLit struct {
	Value  float64
	Text   string
	LitPos Pos
}

// SelectorExpr is a dotted path such as `dist.Normal`.
type SelectorExpr struct {
	X      Expr
	Sel    string
	SelPos Pos
}

// CallExpr is a call such as `Normal(0, 1)`.
type CallExpr struct {
	Fun    Expr
	Args   []Expr
	Lparen Pos
}

// BinaryExpr is a binary operation. TILDE appears here like any other
// operator; its meaning is assigned later by the compiler.
type BinaryExpr struct {
	Op    TokenType
	OpPos Pos
	X     Expr
	Y     Expr
}

// UnaryExpr is a prefix operation, currently only negation.
type UnaryExpr struct {
	Op    TokenType
	OpPos Pos
	X     Expr
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	X      Expr
	Lparen Pos
}

func (e *Ident) Pos() Pos        { return e.NamePos }
func (e *NumberLit) Pos() Pos    { return e.LitPos }
func (e *SelectorExpr) Pos() Pos { return e.X.Pos() }
func (e *CallExpr) Pos() Pos     { return e.Fun.Pos() }
func (e *BinaryExpr) Pos() Pos   { return e.X.Pos() }
func (e *UnaryExpr) Pos() Pos    { return e.OpPos }
func (e *ParenExpr) Pos() Pos    { return e.Lparen }

func (*Ident) exprNode()        {}
func (*NumberLit) exprNode()    {}
func (*SelectorExpr) exprNode() {}
func (*CallExpr) exprNode()     {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*ParenExpr) exprNode()    {}
