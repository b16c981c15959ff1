package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *ModelDecl {
	t.Helper()

	file, err := Parse("test.prior", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Models, 1)

	return file.Models[0]
}

func TestParse_ModelHeader(t *testing.T) {
	decl := parseOne(t, `
model linreg(x, sigma) {
    w ~ Normal(0, 1)
}
`)

	assert.Equal(t, "linreg", decl.Name)
	assert.Equal(t, []string{"x", "sigma"}, decl.Params)
	assert.Len(t, decl.Body, 1)
}

func TestParse_TildeIsLowestPrecedence(t *testing.T) {
	decl := parseOne(t, `
model m() {
    x ~ Normal(0, 1)
}
`)

	stmt, ok := decl.Body[0].(*ExprStmt)
	require.True(t, ok)

	bin, ok := stmt.X.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, TILDE, bin.Op)

	_, ok = bin.X.(*Ident)
	assert.True(t, ok)

	_, ok = bin.Y.(*CallExpr)
	assert.True(t, ok)
}

// The parser does not enforce the declaration grammar; a swapped declaration
// still parses as a tilde expression so the rewriter can report it precisely.
func TestParse_SwappedDeclarationStillParses(t *testing.T) {
	decl := parseOne(t, `
model m() {
    Normal(0, 1) ~ x
}
`)

	stmt, ok := decl.Body[0].(*ExprStmt)
	require.True(t, ok)

	bin, ok := stmt.X.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TILDE, bin.Op)

	_, ok = bin.X.(*CallExpr)
	assert.True(t, ok)
}

func TestParse_AssignmentAndArithmetic(t *testing.T) {
	decl := parseOne(t, `
model m(x) {
    mu = w * x + b
}
`)

	stmt, ok := decl.Body[0].(*AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "mu", stmt.Name)

	// + binds looser than *, so the root is the addition.
	bin, ok := stmt.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, PLUS, bin.Op)
	assert.Equal(t, "w * x + b", Format(stmt.Value))
}

func TestParse_DottedDistributionPath(t *testing.T) {
	decl := parseOne(t, `
model m() {
    x ~ dist.Normal(0, 1)
}
`)

	stmt := decl.Body[0].(*ExprStmt)
	bin := stmt.X.(*BinaryExpr)
	call, ok := bin.Y.(*CallExpr)
	require.True(t, ok)

	sel, ok := call.Fun.(*SelectorExpr)
	require.True(t, ok)
	assert.Equal(t, "Normal", sel.Sel)
}

func TestParse_MultipleModels(t *testing.T) {
	file, err := Parse("test.prior", []byte(`
model a() {
    x ~ Normal(0, 1)
}

model b() {
    y ~ Beta(1, 1)
}
`))
	require.NoError(t, err)
	require.Len(t, file.Models, 2)
	assert.Equal(t, "a", file.Models[0].Name)
	assert.Equal(t, "b", file.Models[1].Name)
}

func TestParse_SemicolonSeparatedStatements(t *testing.T) {
	decl := parseOne(t, `model m() { a ~ Normal(0, 1); b ~ Normal(a, 1) }`)

	require.Len(t, decl.Body, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "missing model keyword", src: "coin() {}"},
		{name: "missing body", src: "model coin()"},
		{name: "unbalanced paren", src: "model m() { x ~ Normal(0, 1 }"},
		{name: "dangling operator", src: "model m() { x = 1 + }"},
		{name: "statements need separators", src: "model m() { a = 1 b = 2 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.prior", []byte(tt.src))
			require.Error(t, err)
		})
	}
}
