package dist

import (
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// continuous maps distribution names to their parameter lists and gonum
// samplers. Parameter order follows the conventional (location, scale) style
// parameterizations.
var continuous = map[string]spec{
	"Normal": {
		args: []string{"mu", "sigma"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Normal{Mu: p[0], Sigma: p[1], Src: rnd}.Rand
		},
	},
	"LogNormal": {
		args: []string{"mu", "sigma"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.LogNormal{Mu: p[0], Sigma: p[1], Src: rnd}.Rand
		},
	},
	"Uniform": {
		args: []string{"low", "high"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Uniform{Min: p[0], Max: p[1], Src: rnd}.Rand
		},
	},
	"Beta": {
		args: []string{"alpha", "beta"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Beta{Alpha: p[0], Beta: p[1], Src: rnd}.Rand
		},
	},
	"Gamma": {
		args: []string{"alpha", "beta"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Gamma{Alpha: p[0], Beta: p[1], Src: rnd}.Rand
		},
	},
	"Exponential": {
		args: []string{"rate"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.Exponential{Rate: p[0], Src: rnd}.Rand
		},
	},
	"StudentT": {
		args: []string{"mu", "sigma", "nu"},
		make: func(p []float64, rnd *xrand.Rand) func() float64 {
			return distuv.StudentsT{Mu: p[0], Sigma: p[1], Nu: p[2], Src: rnd}.Rand
		},
	},
}
