package model

import "time"

// VarStats holds pooled summary statistics for one variable across a
// sampling run. Moments are computed over every element of every draw.
type VarStats struct {
	Name  string  `yaml:"name"`
	Count uint64  `yaml:"count"`
	Mean  float64 `yaml:"mean"`
	Std   float64 `yaml:"std"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// RunSummary is the persisted result of a prior-predictive sampling run.
type RunSummary struct {
	Model     string     `yaml:"model"`
	File      Path       `yaml:"file"`
	Draws     int        `yaml:"draws"`
	Chains    int        `yaml:"chains"`
	Seed      uint64     `yaml:"seed"`
	Shape     []int      `yaml:"shape,omitempty"`
	CreatedAt time.Time  `yaml:"created_at"`
	DrawsFile string     `yaml:"draws_file,omitempty"`
	Stats     []VarStats `yaml:"stats"`
}

// NamedTensor is a draw value flattened for persistence.
type NamedTensor struct {
	Name  string
	Shape []int
	Data  []float64
}

// DrawRecord is a single sampler invocation's output, flattened so raw draws
// can be spilled to disk.
type DrawRecord struct {
	Chain  int
	Index  int
	Values []NamedTensor
}

// SampleEvent reports sampling progress for one chain.
type SampleEvent struct {
	Chain int
	Done  int
	Total int
}
