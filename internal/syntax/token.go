// Package syntax implements the lexer, parser and AST for prior model files.
package syntax

import "fmt"

// TokenType represents the kind of token.
type TokenType int

// Token kinds produced by the lexer.
const (
	EOF TokenType = iota
	ILLEGAL
	TERMINATOR // newline or ";" between statements

	IDENT
	NUMBER

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	DOT

	TILDE  // "~" declares a random variable
	ASSIGN // "="
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	MODEL // "model" keyword
)

var tokenNames = map[TokenType]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	TERMINATOR: "terminator",
	IDENT:      "identifier",
	NUMBER:     "number",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	COMMA:      ",",
	DOT:        ".",
	TILDE:      "~",
	ASSIGN:     "=",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	MODEL:      "model",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("token(%d)", int(t))
}

// Pos is a line/column position inside a model file. Lines and columns are
// 1-based; the zero value means "no position".
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether the position carries location information.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexeme with its source position.
type Token struct {
	Type TokenType
	Lit  string
	Pos  Pos
}
