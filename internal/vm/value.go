// Package vm implements the runtime for compiled samplers: tensor values,
// randomness keys, namespaces and the sampler artifact itself.
package vm

import (
	"fmt"
	"strings"
)

// Value is a dense float64 tensor. The zero value is a rank-0 scalar holding 0.
type Value struct {
	shape []int
	data  []float64
}

// Scalar wraps a float64 into a rank-0 Value.
func Scalar(v float64) Value {
	return Value{data: []float64{v}}
}

// NewValue builds a Value from a shape and row-major data.
func NewValue(shape []int, data []float64) (Value, error) {
	n := numElems(shape)
	if n != len(data) {
		return Value{}, fmt.Errorf("shape %v holds %d elements, got %d values", shape, n, len(data))
	}

	return Value{shape: append([]int(nil), shape...), data: append([]float64(nil), data...)}, nil
}

// Zeros builds a zero-filled Value of the given shape.
func Zeros(shape []int) Value {
	return Value{shape: append([]int(nil), shape...), data: make([]float64, numElems(shape))}
}

func numElems(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

// Shape returns a copy of the value's shape. Rank-0 scalars return nil.
func (v Value) Shape() []int {
	if len(v.shape) == 0 {
		return nil
	}

	return append([]int(nil), v.shape...)
}

// Rank returns the number of dimensions.
func (v Value) Rank() int { return len(v.shape) }

// Size returns the number of elements.
func (v Value) Size() int {
	if v.data == nil {
		return 1
	}

	return len(v.data)
}

// IsScalar reports whether the value is rank-0.
func (v Value) IsScalar() bool { return len(v.shape) == 0 }

// Float returns the scalar payload. It fails on values of rank > 0.
func (v Value) Float() (float64, error) {
	if !v.IsScalar() {
		return 0, fmt.Errorf("value of shape %v is not a scalar", v.shape)
	}

	if v.data == nil {
		return 0, nil
	}

	return v.data[0], nil
}

// At returns the element at the given row-major flat index.
func (v Value) At(i int) float64 {
	if v.data == nil {
		return 0
	}

	return v.data[i]
}

// Data returns a copy of the row-major elements.
func (v Value) Data() []float64 {
	if v.data == nil {
		return []float64{0}
	}

	return append([]float64(nil), v.data...)
}

// Equal reports exact equality of shape and elements.
func (v Value) Equal(o Value) bool {
	if !shapeEqual(v.shape, o.shape) || v.Size() != o.Size() {
		return false
	}

	for i := 0; i < v.Size(); i++ {
		if v.At(i) != o.At(i) {
			return false
		}
	}

	return true
}

func (v Value) String() string {
	if v.IsScalar() {
		return fmt.Sprintf("%g", v.At(0))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "tensor%v[", v.shape)

	for i := 0; i < v.Size(); i++ {
		if i > 0 {
			b.WriteString(" ")
		}

		if i == 8 && v.Size() > 9 {
			fmt.Fprintf(&b, "... %d more", v.Size()-i)
			break
		}

		fmt.Fprintf(&b, "%g", v.At(i))
	}

	b.WriteString("]")

	return b.String()
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// BroadcastShapes combines two shapes with right-aligned broadcasting rules:
// missing dimensions count as 1, and a dimension of 1 stretches to match.
func BroadcastShapes(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make([]int, n)

	for i := 1; i <= n; i++ {
		da, db := 1, 1

		if i <= len(a) {
			da = a[len(a)-i]
		}

		if i <= len(b) {
			db = b[len(b)-i]
		}

		switch {
		case da == db, db == 1:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		default:
			return nil, fmt.Errorf("cannot broadcast shapes %v and %v", a, b)
		}
	}

	return out, nil
}

// broadcastIndex maps a flat index in the output shape to the flat index of
// the same logical element in a (broadcast-compatible) input shape.
func broadcastIndex(i int, out, in []int) int {
	offset := len(out) - len(in)

	idx := 0
	stride := 1
	rem := i

	for d := len(out) - 1; d >= 0; d-- {
		coord := rem % out[d]
		rem /= out[d]

		if d >= offset {
			if in[d-offset] != 1 {
				idx += coord * stride
			}

			stride *= in[d-offset]
		}
	}

	return idx
}

// BroadcastTo materializes v expanded to the given shape.
func BroadcastTo(v Value, shape []int) (Value, error) {
	joined, err := BroadcastShapes(v.shape, shape)
	if err != nil {
		return Value{}, err
	}

	if !shapeEqual(joined, shape) {
		return Value{}, fmt.Errorf("cannot broadcast shape %v to %v", v.shape, shape)
	}

	out := Zeros(shape)
	for i := range out.data {
		out.data[i] = v.At(broadcastIndex(i, shape, v.shape))
	}

	return out, nil
}

// Map applies f elementwise.
func Map(v Value, f func(float64) float64) Value {
	out := Zeros(v.shape)
	for i := range out.data {
		out.data[i] = f(v.At(i))
	}

	return out
}

// Map2 applies f elementwise over two broadcast-compatible values.
func Map2(a, b Value, f func(x, y float64) float64) (Value, error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return Value{}, err
	}

	out := Zeros(shape)
	for i := range out.data {
		x := a.At(broadcastIndex(i, shape, a.shape))
		y := b.At(broadcastIndex(i, shape, b.shape))
		out.data[i] = f(x, y)
	}

	return out, nil
}
