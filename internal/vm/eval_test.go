package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prior.dev/pkg/prior/internal/syntax"
)

// parseExpr parses a single expression by wrapping it in a model body.
func parseExpr(t *testing.T, expr string) syntax.Expr {
	t.Helper()

	file, err := syntax.Parse("test.prior", []byte("model t() { y = "+expr+" }"))
	require.NoError(t, err)
	require.Len(t, file.Models, 1)
	require.Len(t, file.Models[0].Body, 1)

	stmt, ok := file.Models[0].Body[0].(*syntax.AssignStmt)
	require.True(t, ok)

	return stmt.Value
}

func mathNamespace() *Namespace {
	ns := NewNamespace()
	InstallMath(ns)

	return ns
}

func TestCompileExpr_Arithmetic(t *testing.T) {
	tests := []struct {
		expr string
		env  Env
		want float64
	}{
		{expr: "1 + 2 * 3", want: 7},
		{expr: "(1 + 2) * 3", want: 9},
		{expr: "10 / 4", want: 2.5},
		{expr: "7 % 3", want: 1},
		{expr: "-x", env: Env{"x": Scalar(2)}, want: -2},
		{expr: "w * x + b", env: Env{"w": Scalar(2), "x": Scalar(3), "b": Scalar(1)}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			locals := make(map[string]bool, len(tt.env))
			for name := range tt.env {
				locals[name] = true
			}

			thunk, err := CompileExpr(parseExpr(t, tt.expr), locals, mathNamespace())
			require.NoError(t, err)

			v, err := thunk(tt.env)
			require.NoError(t, err)

			f, err := v.Float()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, f, 1e-12)
		})
	}
}

func TestCompileExpr_MathBuiltins(t *testing.T) {
	thunk, err := CompileExpr(parseExpr(t, "exp(0) + sqrt(4) + pi"), nil, mathNamespace())
	require.NoError(t, err)

	v, err := thunk(nil)
	require.NoError(t, err)

	f, err := v.Float()
	require.NoError(t, err)
	assert.InDelta(t, 3+math.Pi, f, 1e-12)
}

func TestCompileExpr_BroadcastsOverLocals(t *testing.T) {
	vec, err := NewValue([]int{3}, []float64{1, 2, 3})
	require.NoError(t, err)

	thunk, err := CompileExpr(parseExpr(t, "x * 2"), map[string]bool{"x": true}, mathNamespace())
	require.NoError(t, err)

	v, err := thunk(Env{"x": vec})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, v.Data())
}

func TestCompileExpr_UnresolvedNameFailsAtCompileTime(t *testing.T) {
	_, err := CompileExpr(parseExpr(t, "missing + 1"), nil, mathNamespace())
	require.Error(t, err)

	var resErr *ResolveError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "missing", resErr.Name)
}

func TestCompileExpr_TildeInsideExpressionRejected(t *testing.T) {
	_, err := CompileExpr(parseExpr(t, "(a ~ b)"), map[string]bool{"a": true, "b": true}, mathNamespace())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot appear inside expressions")
}

func TestCompileExpr_ConstructorIsNotCallable(t *testing.T) {
	ns := mathNamespace()
	ns.Bind("Normal", Constructor(func([]Value) (Distribution, error) { return nil, nil }))

	_, err := CompileExpr(parseExpr(t, "Normal(0, 1)"), nil, ns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draw from it with")
}

func TestNamespace_DottedLookup(t *testing.T) {
	inner := NewNamespace()
	inner.Bind("Normal", Constructor(func([]Value) (Distribution, error) { return nil, nil }))

	ns := NewNamespace()
	ns.Bind("dist", inner)

	_, ok := ns.Lookup("dist.Normal")
	assert.True(t, ok)

	_, ok = ns.Lookup("dist.Missing")
	assert.False(t, ok)

	_, ok = ns.Lookup("nope.Normal")
	assert.False(t, ok)
}
