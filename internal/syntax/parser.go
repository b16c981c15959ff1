package syntax

import (
	"fmt"
	"strconv"
)

// ParseError describes a syntactically invalid model file.
type ParseError struct {
	Filename string
	Pos      Pos
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Msg)
}

// Parse builds the AST for a model file. The returned File owns a fresh tree;
// the source bytes are never retained.
func Parse(filename string, src []byte) (*File, error) {
	tokens, err := LexAll(filename, string(src))
	if err != nil {
		return nil, err
	}

	p := &parser{filename: filename, tokens: tokens}

	return p.parseFile()
}

type parser struct {
	filename string
	tokens   []Token
	cur      int
}

func (p *parser) peek() Token { return p.tokens[p.cur] }

func (p *parser) peekAt(offset int) Token {
	i := p.cur + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}

	return p.tokens[i]
}

func (p *parser) next() Token {
	tok := p.tokens[p.cur]
	if tok.Type != EOF {
		p.cur++
	}

	return tok
}

func (p *parser) errf(pos Pos, format string, args ...interface{}) error {
	return &ParseError{Filename: p.filename, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errf(tok.Pos, "expected %s, found %s", tt, describe(tok))
	}

	return p.next(), nil
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of file"
	case TERMINATOR:
		return "end of line"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", tok.Type, tok.Lit)
	default:
		return fmt.Sprintf("%q", tok.Lit)
	}
}

func (p *parser) skipTerminators() {
	for p.peek().Type == TERMINATOR {
		p.next()
	}
}

func (p *parser) parseFile() (*File, error) {
	file := &File{Filename: p.filename}

	for {
		p.skipTerminators()

		if p.peek().Type == EOF {
			return file, nil
		}

		decl, err := p.parseModel()
		if err != nil {
			return nil, err
		}

		file.Models = append(file.Models, decl)
	}
}

func (p *parser) parseModel() (*ModelDecl, error) {
	if _, err := p.expect(MODEL); err != nil {
		return nil, err
	}

	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}

	decl := &ModelDecl{Name: name.Lit, NamePos: name.Pos}

	if err := p.parseParams(decl); err != nil {
		return nil, err
	}

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	for {
		p.skipTerminators()

		if p.peek().Type == RBRACE {
			p.next()
			return decl, nil
		}

		if p.peek().Type == EOF {
			return nil, p.errf(p.peek().Pos, "unexpected end of file in model %q", decl.Name)
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		decl.Body = append(decl.Body, stmt)
	}
}

func (p *parser) parseParams(decl *ModelDecl) error {
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}

	if p.peek().Type == RPAREN {
		p.next()
		return nil
	}

	for {
		name, err := p.expect(IDENT)
		if err != nil {
			return err
		}

		decl.Params = append(decl.Params, name.Lit)

		switch p.peek().Type {
		case COMMA:
			p.next()
		case RPAREN:
			p.next()
			return nil
		default:
			return p.errf(p.peek().Pos, "expected %q or %q in parameter list, found %s", ",", ")", describe(p.peek()))
		}
	}
}

// parseStmt parses a single body statement. `name = expr` is an assignment;
// anything else is an expression statement, including `~` declarations.
func (p *parser) parseStmt() (Stmt, error) {
	if p.peek().Type == IDENT && p.peekAt(1).Type == ASSIGN {
		name := p.next()
		p.next() // "="

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.endStmt(); err != nil {
			return nil, err
		}

		return &AssignStmt{Name: name.Lit, NamePos: name.Pos, Value: value}, nil
	}

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.endStmt(); err != nil {
		return nil, err
	}

	return &ExprStmt{X: x}, nil
}

func (p *parser) endStmt() error {
	switch p.peek().Type {
	case TERMINATOR:
		p.next()
		return nil
	case RBRACE, EOF:
		return nil
	default:
		return p.errf(p.peek().Pos, "expected end of statement, found %s", describe(p.peek()))
	}
}

// Operator precedence, lowest first. TILDE binds loosest so that
// `y ~ Normal(mu, sigma)` groups the whole right-hand side.
func precedence(tt TokenType) int {
	switch tt {
	case TILDE:
		return 1
	case PLUS, MINUS:
		return 2
	case STAR, SLASH, PERCENT:
		return 3
	default:
		return 0
	}
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseBinary(1)
}

func (p *parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()

		prec := precedence(op.Type)
		if prec < minPrec {
			return left, nil
		}

		p.next()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Op: op.Type, OpPos: op.Pos, X: left, Y: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if tok := p.peek(); tok.Type == MINUS {
		p.next()

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{Op: MINUS, OpPos: tok.Pos, X: x}, nil
	}

	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any number of selector
// and call suffixes.
func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case DOT:
			p.next()

			sel, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}

			x = &SelectorExpr{X: x, Sel: sel.Lit, SelPos: sel.Pos}

		case LPAREN:
			lparen := p.next()

			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			x = &CallExpr{Fun: x, Args: args, Lparen: lparen.Pos}

		default:
			return x, nil
		}
	}
}

func (p *parser) parseArgs() ([]Expr, error) {
	var args []Expr

	if p.peek().Type == RPAREN {
		p.next()
		return args, nil
	}

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		switch p.peek().Type {
		case COMMA:
			p.next()
		case RPAREN:
			p.next()
			return args, nil
		default:
			return nil, p.errf(p.peek().Pos, "expected %q or %q in argument list, found %s", ",", ")", describe(p.peek()))
		}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case IDENT:
		p.next()
		return &Ident{Name: tok.Lit, NamePos: tok.Pos}, nil

	case NUMBER:
		p.next()

		value, err := parseNumber(tok.Lit)
		if err != nil {
			return nil, p.errf(tok.Pos, "invalid number literal %q", tok.Lit)
		}

		return &NumberLit{Value: value, Text: tok.Lit, LitPos: tok.Pos}, nil

	case LPAREN:
		lparen := p.next()

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}

		return &ParenExpr{X: x, Lparen: lparen.Pos}, nil

	default:
		return nil, p.errf(tok.Pos, "expected expression, found %s", describe(tok))
	}
}

func parseNumber(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}
