package dist

import (
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// discrete distributions still produce float64 tensors; counts and indicator
// draws are whole numbers represented exactly.
var discrete = map[string]spec{
	"Bernoulli": {
		args: []string{"p"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Bernoulli{P: p[0], Src: rnd}.Rand
		},
	},
	"Binomial": {
		args: []string{"n", "p"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Binomial{N: p[0], P: p[1], Src: rnd}.Rand
		},
	},
	"Poisson": {
		args: []string{"lambda"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Poisson{Lambda: p[0], Src: rnd}.Rand
		},
	},
}
