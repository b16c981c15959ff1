package adapter

import (
	"context"

	"prior.dev/pkg/prior/internal/compiler"
	m "prior.dev/pkg/prior/internal/model"
	"prior.dev/pkg/prior/internal/syntax"
)

// ModelFileAdapter encapsulates parsing and model summarization so the
// domain layer can focus on sampling workflows while delegating front-end
// details to an infrastructure component.
type ModelFileAdapter interface {
	// Parse builds the AST for a model file.
	Parse(ctx context.Context, filename string, src []byte) (*syntax.File, error)

	// Summarize rewrites every model in a parsed file and reports its
	// generated sampler name, parameters and variables. A grammar violation
	// in any model aborts the whole summary.
	Summarize(file *syntax.File, origin m.Path) ([]m.ModelInfo, error)
}

// LocalModelFileAdapter is the concrete ModelFileAdapter backed by the
// syntax and compiler packages.
type LocalModelFileAdapter struct{}

// NewLocalModelFileAdapter constructs a LocalModelFileAdapter.
func NewLocalModelFileAdapter() *LocalModelFileAdapter {
	return &LocalModelFileAdapter{}
}

// Parse implements ModelFileAdapter.
func (a *LocalModelFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*syntax.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return syntax.Parse(filename, src)
}

// Summarize implements ModelFileAdapter.
func (a *LocalModelFileAdapter) Summarize(file *syntax.File, origin m.Path) ([]m.ModelInfo, error) {
	infos := make([]m.ModelInfo, 0, len(file.Models))

	for _, decl := range file.Models {
		def, err := compiler.Rewrite(decl)
		if err != nil {
			return nil, err
		}

		info := m.ModelInfo{
			Name:    decl.Name,
			File:    origin,
			Sampler: def.Name,
			Params:  append([]string(nil), decl.Params...),
		}

		for _, stmt := range def.Body {
			switch s := stmt.(type) {
			case *compiler.SampleStmt:
				info.Variables = append(info.Variables, m.VarInfo{
					Name: s.Target,
					Kind: m.VarRandom,
					Dist: s.Dist,
					Leaf: s.WithShape,
				})
			case *compiler.AssignStmt:
				info.Variables = append(info.Variables, m.VarInfo{
					Name: s.Target,
					Kind: m.VarAssigned,
				})
			}
		}

		infos = append(infos, info)
	}

	return infos, nil
}
