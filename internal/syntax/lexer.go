package syntax

import "fmt"

// LexError describes an invalid character sequence in a model file.
type LexError struct {
	Filename string
	Pos      Pos
	Msg      string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Msg)
}

// Lexer turns model-file source text into a token stream.
type Lexer struct {
	filename string
	src      string
	cur      int
	line     int
	col      int
}

// NewLexer creates a Lexer over src. The filename is only used in error
// messages.
func NewLexer(filename, src string) *Lexer {
	return &Lexer{
		filename: filename,
		src:      src,
		line:     1,
		col:      1,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}

	return l.src[l.cur]
}

func (l *Lexer) advance() byte {
	b := l.src[l.cur]
	l.cur++

	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return b
}

func (l *Lexer) pos() Pos { return Pos{Line: l.line, Column: l.col} }

func (l *Lexer) errf(pos Pos, format string, args ...interface{}) error {
	return &LexError{Filename: l.filename, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// skipBlanks consumes spaces, tabs, carriage returns and // comments. It
// stops at newlines, which are significant as statement terminators.
func (l *Lexer) skipBlanks() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '/':
			if l.cur+1 < len(l.src) && l.src[l.cur+1] == '/' {
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// Next returns the next token in the stream. After the source is exhausted it
// keeps returning EOF tokens.
func (l *Lexer) Next() (Token, error) {
	l.skipBlanks()

	start := l.pos()

	if l.isAtEnd() {
		return Token{Type: EOF, Pos: start}, nil
	}

	b := l.advance()

	switch b {
	case '\n', ';':
		return Token{Type: TERMINATOR, Lit: string(b), Pos: start}, nil
	case '(':
		return Token{Type: LPAREN, Lit: "(", Pos: start}, nil
	case ')':
		return Token{Type: RPAREN, Lit: ")", Pos: start}, nil
	case '{':
		return Token{Type: LBRACE, Lit: "{", Pos: start}, nil
	case '}':
		return Token{Type: RBRACE, Lit: "}", Pos: start}, nil
	case ',':
		return Token{Type: COMMA, Lit: ",", Pos: start}, nil
	case '.':
		return Token{Type: DOT, Lit: ".", Pos: start}, nil
	case '~':
		return Token{Type: TILDE, Lit: "~", Pos: start}, nil
	case '=':
		return Token{Type: ASSIGN, Lit: "=", Pos: start}, nil
	case '+':
		return Token{Type: PLUS, Lit: "+", Pos: start}, nil
	case '-':
		return Token{Type: MINUS, Lit: "-", Pos: start}, nil
	case '*':
		return Token{Type: STAR, Lit: "*", Pos: start}, nil
	case '/':
		return Token{Type: SLASH, Lit: "/", Pos: start}, nil
	case '%':
		return Token{Type: PERCENT, Lit: "%", Pos: start}, nil
	}

	if isDigit(b) {
		return l.scanNumber(start)
	}

	if isAlpha(b) {
		return l.scanIdentifier(start), nil
	}

	return Token{Type: ILLEGAL, Lit: string(b), Pos: start},
		l.errf(start, "unexpected character %q", string(b))
}

func (l *Lexer) scanNumber(start Pos) (Token, error) {
	from := l.cur - 1

	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	// Fractional part. A trailing "." with no digit is a lex error so that
	// "1." does not silently parse as a selector on a number.
	if !l.isAtEnd() && l.peek() == '.' {
		l.advance()

		if l.isAtEnd() || !isDigit(l.peek()) {
			return Token{}, l.errf(start, "malformed number literal %q", l.src[from:l.cur])
		}

		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	// Optional exponent.
	if !l.isAtEnd() && (l.peek() == 'e' || l.peek() == 'E') {
		l.advance()

		if !l.isAtEnd() && (l.peek() == '+' || l.peek() == '-') {
			l.advance()
		}

		if l.isAtEnd() || !isDigit(l.peek()) {
			return Token{}, l.errf(start, "malformed exponent in %q", l.src[from:l.cur])
		}

		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{Type: NUMBER, Lit: l.src[from:l.cur], Pos: start}, nil
}

func (l *Lexer) scanIdentifier(start Pos) Token {
	from := l.cur - 1

	for !l.isAtEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}

	lit := l.src[from:l.cur]
	if lit == "model" {
		return Token{Type: MODEL, Lit: lit, Pos: start}
	}

	return Token{Type: IDENT, Lit: lit, Pos: start}
}

// LexAll drains the lexer and returns every token up to and including EOF.
func LexAll(filename, src string) ([]Token, error) {
	l := NewLexer(filename, src)

	var tokens []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)

		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
