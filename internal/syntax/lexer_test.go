package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	return types
}

func TestLexAll_Declaration(t *testing.T) {
	tokens, err := LexAll("test.prior", "x ~ Normal(0, 1)\n")
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		IDENT, TILDE, IDENT, LPAREN, NUMBER, COMMA, NUMBER, RPAREN, TERMINATOR, EOF,
	}, tokenTypes(tokens))

	assert.Equal(t, "x", tokens[0].Lit)
	assert.Equal(t, "Normal", tokens[2].Lit)
}

func TestLexAll_ModelKeyword(t *testing.T) {
	tokens, err := LexAll("test.prior", "model coin() {}")
	require.NoError(t, err)

	require.Equal(t, MODEL, tokens[0].Type)
	require.Equal(t, IDENT, tokens[1].Type)
}

func TestLexAll_CommentsAndSemicolons(t *testing.T) {
	tokens, err := LexAll("test.prior", "a = 1; b = 2 // trailing comment\n")
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		IDENT, ASSIGN, NUMBER, TERMINATOR, IDENT, ASSIGN, NUMBER, TERMINATOR, EOF,
	}, tokenTypes(tokens))
}

func TestLexAll_Numbers(t *testing.T) {
	tokens, err := LexAll("test.prior", "1 2.5 1e3 4.5e-2")
	require.NoError(t, err)

	lits := []string{}

	for _, tok := range tokens {
		if tok.Type == NUMBER {
			lits = append(lits, tok.Lit)
		}
	}

	assert.Equal(t, []string{"1", "2.5", "1e3", "4.5e-2"}, lits)
}

func TestLexAll_Positions(t *testing.T) {
	tokens, err := LexAll("test.prior", "a = 1\nbb = 2\n")
	require.NoError(t, err)

	require.Equal(t, Pos{Line: 1, Column: 1}, tokens[0].Pos)

	// First token on line 2.
	var second Token

	for _, tok := range tokens {
		if tok.Lit == "bb" {
			second = tok
		}
	}

	require.Equal(t, Pos{Line: 2, Column: 1}, second.Pos)
}

func TestLexAll_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unexpected character", src: "x @ Normal(0, 1)"},
		{name: "malformed fraction", src: "x = 1."},
		{name: "malformed exponent", src: "x = 1e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LexAll("test.prior", tt.src)
			require.Error(t, err)

			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.True(t, lexErr.Pos.IsValid())
		})
	}
}
