// Package model defines the data structures shared across the prior CLI.
package model

// Path represents a file system path.
type Path string

// Source represents a model file discovered on disk.
type Source struct {
	Origin Path
	Hash   string
}

// VarKind distinguishes how a model variable is bound.
type VarKind string

const (
	// VarRandom is a variable declared with "~", drawn from a distribution.
	VarRandom VarKind = "random"
	// VarAssigned is a variable bound by a plain assignment.
	VarAssigned VarKind = "assigned"
)

// VarInfo describes one variable of a compiled model.
type VarInfo struct {
	Name string
	Kind VarKind
	Dist string // distribution name, empty for assigned variables
	Leaf bool   // leaves receive the caller-requested sample shape
}

// ModelInfo summarizes one model definition inside a source file.
type ModelInfo struct {
	Name      string
	File      Path
	Sampler   string // generated sampler name
	Params    []string
	Variables []VarInfo
}
