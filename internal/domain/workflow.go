// Package domain implements the sampling workflows behind the prior CLI.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"prior.dev/pkg/prior/internal/adapter"
	"prior.dev/pkg/prior/internal/compiler"
	"prior.dev/pkg/prior/internal/dist"
	m "prior.dev/pkg/prior/internal/model"
	"prior.dev/pkg/prior/internal/syntax"
	"prior.dev/pkg/prior/internal/vm"
	"prior.dev/pkg/prior/pkg"
)

// SampleRequest describes one sampling run.
type SampleRequest struct {
	Path   m.Path
	Model  string // model name, may be empty when the file has exactly one
	Draws  int
	Chains int
	Seed   uint64
	Shape  []int              // sample shape applied to leaf variables
	Args   map[string]float64 // model arguments by parameter name
	Cache  bool               // memoize repeated (key, args, shape) draws

	// KeepDraws spills every raw draw to a gob file next to the summary.
	KeepDraws bool
	SpillDir  string
}

// Workflow coordinates model discovery, compilation and sampling.
type Workflow interface {
	// Models discovers model files under paths and summarizes every model
	// definition they contain.
	Models(ctx context.Context, paths []m.Path, exclude ...string) ([]m.ModelInfo, error)

	// Program compiles one model and returns its rewritten sampler program,
	// one line per statement.
	Program(ctx context.Context, path m.Path, modelName string) ([]string, error)

	// Sample compiles one model and draws from its prior predictive
	// distribution across parallel chains. Progress events are delivered on
	// the progress callback when it is non-nil; the callback must be safe for
	// concurrent use.
	Sample(ctx context.Context, req SampleRequest, progress func(m.SampleEvent)) (m.RunSummary, error)

	// Merge pools the statistics of finished runs of the same model into one
	// combined summary.
	Merge(runs []m.RunSummary) (m.RunSummary, error)
}

type workflow struct {
	fs    adapter.ModelFSAdapter
	files adapter.ModelFileAdapter
}

// NewWorkflow constructs a Workflow backed by the given adapters.
func NewWorkflow(fs adapter.ModelFSAdapter, files adapter.ModelFileAdapter) Workflow {
	return &workflow{fs: fs, files: files}
}

// Models implements Workflow.
func (w *workflow) Models(ctx context.Context, paths []m.Path, exclude ...string) ([]m.ModelInfo, error) {
	sources, err := w.fs.Find(ctx, paths, exclude...)
	if err != nil {
		return nil, err
	}

	var infos []m.ModelInfo

	for _, src := range sources {
		data, err := w.fs.ReadFile(ctx, src.Origin)
		if err != nil {
			return nil, err
		}

		file, err := w.files.Parse(ctx, string(src.Origin), data)
		if err != nil {
			return nil, err
		}

		found, err := w.files.Summarize(file, src.Origin)
		if err != nil {
			return nil, err
		}

		infos = append(infos, found...)
	}

	return infos, nil
}

// Program implements Workflow.
func (w *workflow) Program(ctx context.Context, path m.Path, modelName string) ([]string, error) {
	decl, err := w.loadModel(ctx, path, modelName)
	if err != nil {
		return nil, err
	}

	def, err := compiler.Rewrite(decl)
	if err != nil {
		return nil, err
	}

	return def.Program(), nil
}

// Sample implements Workflow.
func (w *workflow) Sample(ctx context.Context, req SampleRequest, progress func(m.SampleEvent)) (m.RunSummary, error) {
	if req.Draws < 1 {
		return m.RunSummary{}, fmt.Errorf("draws must be positive, got %d", req.Draws)
	}

	if req.Chains < 1 {
		return m.RunSummary{}, fmt.Errorf("chains must be positive, got %d", req.Chains)
	}

	decl, err := w.loadModel(ctx, req.Path, req.Model)
	if err != nil {
		return m.RunSummary{}, err
	}

	sampler, err := compileSampler(decl, req.Cache)
	if err != nil {
		return m.RunSummary{}, err
	}

	args, err := orderArgs(sampler, req.Args)
	if err != nil {
		return m.RunSummary{}, err
	}

	run := m.RunSummary{
		Model:  sampler.Model,
		File:   req.Path,
		Draws:  req.Draws,
		Chains: req.Chains,
		Seed:   req.Seed,
		Shape:  req.Shape,
	}

	var spill pkg.Spill[m.DrawRecord]

	if req.KeepDraws {
		spill, err = pkg.NewSpill[m.DrawRecord](req.SpillDir)
		if err != nil {
			return m.RunSummary{}, err
		}

		run.DrawsFile = spill.Path()
	}

	chainMoments, err := w.runChains(ctx, sampler, req, args, spill, progress)

	if spill != nil {
		if cerr := spill.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	if err != nil {
		return m.RunSummary{}, err
	}

	pooled := make(map[string]*Moments, len(sampler.Vars))
	for _, name := range sampler.Vars {
		pooled[name] = NewMoments()
	}

	for _, chain := range chainMoments {
		for name, acc := range chain {
			pooled[name].Merge(acc)
		}
	}

	for _, name := range sampler.Vars {
		run.Stats = append(run.Stats, pooled[name].Stats(name))
	}

	slog.Info("sampling finished",
		"model", sampler.Model, "draws", req.Draws, "chains", req.Chains, "seed", req.Seed)

	return run, nil
}

// runChains fans the draws out across chains. Each chain derives its own key
// from the run seed so results do not depend on scheduling.
func (w *workflow) runChains(
	ctx context.Context,
	sampler *vm.Sampler,
	req SampleRequest,
	args []vm.Value,
	spill pkg.Spill[m.DrawRecord],
	progress func(m.SampleEvent),
) ([]map[string]*Moments, error) {
	key := vm.NewKey(req.Seed)
	chainMoments := make([]map[string]*Moments, req.Chains)

	g, gctx := errgroup.WithContext(ctx)

	for c := 0; c < req.Chains; c++ {
		chain := c
		chainKey := key.Fold(uint64(chain))

		moments := make(map[string]*Moments, len(sampler.Vars))
		for _, name := range sampler.Vars {
			moments[name] = NewMoments()
		}

		chainMoments[chain] = moments

		g.Go(func() error {
			for i := 0; i < req.Draws; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				ds, err := sampler.Draw(chainKey.Fold(uint64(i)), args, req.Shape)
				if err != nil {
					return fmt.Errorf("chain %d draw %d: %w", chain, i, err)
				}

				for _, d := range ds.Draws {
					moments[d.Name].AddAll(d.Value.Data())
				}

				if spill != nil {
					if err := spill.Append(drawRecord(chain, i, ds)); err != nil {
						return err
					}
				}

				if progress != nil {
					progress(m.SampleEvent{Chain: chain, Done: i + 1, Total: req.Draws})
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return chainMoments, nil
}

// Merge implements Workflow.
func (w *workflow) Merge(runs []m.RunSummary) (m.RunSummary, error) {
	if len(runs) == 0 {
		return m.RunSummary{}, fmt.Errorf("no runs to merge")
	}

	merged := m.RunSummary{
		Model: runs[0].Model,
		File:  runs[0].File,
		Seed:  runs[0].Seed,
		Shape: runs[0].Shape,
	}

	pooled := make(map[string]*Moments)

	var order []string

	for _, run := range runs {
		if run.Model != merged.Model {
			return m.RunSummary{}, fmt.Errorf("cannot merge runs of different models: %q and %q", merged.Model, run.Model)
		}

		merged.Draws += run.Draws
		merged.Chains += run.Chains

		for _, s := range run.Stats {
			acc, ok := pooled[s.Name]
			if !ok {
				acc = NewMoments()
				pooled[s.Name] = acc

				order = append(order, s.Name)
			}

			acc.Merge(momentsFromStats(s))
		}
	}

	for _, name := range order {
		merged.Stats = append(merged.Stats, pooled[name].Stats(name))
	}

	return merged, nil
}

// loadModel parses the file at path and selects the named model. An empty
// name is allowed only when the file defines exactly one model.
func (w *workflow) loadModel(ctx context.Context, path m.Path, modelName string) (*syntax.ModelDecl, error) {
	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	file, err := w.files.Parse(ctx, string(path), data)
	if err != nil {
		return nil, err
	}

	if len(file.Models) == 0 {
		return nil, fmt.Errorf("%s defines no models", path)
	}

	if modelName == "" {
		if len(file.Models) > 1 {
			names := make([]string, len(file.Models))
			for i, decl := range file.Models {
				names[i] = decl.Name
			}

			return nil, fmt.Errorf("%s defines %d models (%s), pick one with --model",
				path, len(file.Models), strings.Join(names, ", "))
		}

		return file.Models[0], nil
	}

	for _, decl := range file.Models {
		if decl.Name == modelName {
			return decl, nil
		}
	}

	return nil, fmt.Errorf("model %q not found in %s", modelName, path)
}

func compileSampler(decl *syntax.ModelDecl, cache bool) (*vm.Sampler, error) {
	ns := dist.Namespace()

	var opts []compiler.Option
	if cache {
		opts = append(opts, compiler.WithAccelerator(vm.Memoized))
	}

	return compiler.Compile(decl, ns, opts...)
}

// orderArgs resolves named arguments against the sampler's parameter order.
func orderArgs(sampler *vm.Sampler, named map[string]float64) ([]vm.Value, error) {
	args := make([]vm.Value, len(sampler.Args))

	for i, name := range sampler.Args {
		v, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing argument %q (expects %s)",
				sampler.Model, name, strings.Join(sampler.Args, ", "))
		}

		args[i] = vm.Scalar(v)
	}

	if len(named) > len(sampler.Args) {
		extra := make([]string, 0, len(named))

		for name := range named {
			if !contains(sampler.Args, name) {
				extra = append(extra, name)
			}
		}

		sort.Strings(extra)

		return nil, fmt.Errorf("%s: unknown argument(s) %s", sampler.Model, strings.Join(extra, ", "))
	}

	return args, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

func drawRecord(chain, index int, ds *vm.DrawSet) m.DrawRecord {
	rec := m.DrawRecord{Chain: chain, Index: index}

	for _, d := range ds.Draws {
		rec.Values = append(rec.Values, m.NamedTensor{
			Name:  d.Name,
			Shape: d.Value.Shape(),
			Data:  append([]float64(nil), d.Value.Data()...),
		})
	}

	return rec
}
