package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prior.dev/pkg/prior/internal/domain"
	m "prior.dev/pkg/prior/internal/model"
)

var sampleModelFlag string
var sampleDrawsFlag int
var sampleChainsFlag int
var sampleSeedFlag uint64
var sampleShapeFlag string
var sampleArgFlags []string
var sampleKeepDrawsFlag bool
var sampleNoCacheFlag bool

// sampleCmd represents the sample command.
var sampleCmd = newSampleCmd()

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <file>",
		Short: "Draw from a model's prior predictive distribution",
		Long: `Compile a model and draw from its prior predictive distribution across
parallel chains. The run is fully determined by the seed: the same seed,
arguments and shape always produce the same draws.

The resulting summary is written to the output directory as YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSample(context.Background(), m.Path(args[0]))
		},
	}

	configureSampleFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func configureSampleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sampleModelFlag, "model", "m", "", "model name (required when the file defines several)")

	cmd.Flags().IntVarP(&sampleDrawsFlag, "draws", "n", viper.GetInt(sampleDrawsKey), "number of draws per chain")
	bindFlagToConfig(cmd.Flags().Lookup("draws"), sampleDrawsKey)

	cmd.Flags().IntVarP(&sampleChainsFlag, "chains", "c", viper.GetInt(sampleChainsKey), "number of parallel chains")
	bindFlagToConfig(cmd.Flags().Lookup("chains"), sampleChainsKey)

	cmd.Flags().Uint64Var(&sampleSeedFlag, "seed", uint64(viper.GetInt64(sampleSeedKey)), "random seed")
	bindFlagToConfig(cmd.Flags().Lookup("seed"), sampleSeedKey)

	cmd.Flags().StringVar(&sampleShapeFlag, "shape", "", "sample shape for leaf variables, e.g. 3 or 3,2")
	cmd.Flags().StringArrayVarP(&sampleArgFlags, "arg", "a", nil, "model argument as name=value (can be repeated)")
	cmd.Flags().BoolVar(&sampleKeepDrawsFlag, "keep-draws", false, "spill every raw draw to a gob file next to the summary")
	cmd.Flags().BoolVar(&sampleNoCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "disable draw memoization")
	bindFlagToConfig(cmd.Flags().Lookup(noCacheFlagName), noCacheFlagName)
}

func runSample(ctx context.Context, path m.Path) error {
	shape, err := parseShapeFlag(sampleShapeFlag)
	if err != nil {
		return err
	}

	modelArgs, err := parseArgFlags(sampleArgFlags)
	if err != nil {
		return err
	}

	outDir := viper.GetString(outputFlagName)

	req := domain.SampleRequest{
		Path:      path,
		Model:     sampleModelFlag,
		Draws:     viper.GetInt(sampleDrawsKey),
		Chains:    viper.GetInt(sampleChainsKey),
		Seed:      uint64(viper.GetInt64(sampleSeedKey)),
		Shape:     shape,
		Args:      modelArgs,
		Cache:     !viper.GetBool(noCacheFlagName),
		KeepDraws: sampleKeepDrawsFlag,
		SpillDir:  outDir,
	}

	label := req.Model
	if label == "" {
		label = filepath.Base(string(path))
	}

	ui.SamplingStarted(ctx, label, req.Chains, req.Draws)

	run, err := workflow.Sample(ctx, req, func(ev m.SampleEvent) {
		ui.Progress(ctx, ev)
	})

	ui.SamplingDone(ctx)

	if err != nil {
		return err
	}

	run.CreatedAt = time.Now().UTC()

	if err := runStore.Save(runSummaryPath(outDir, run), run); err != nil {
		return err
	}

	return ui.DisplaySummary(ctx, run)
}

func runSummaryPath(dir string, run m.RunSummary) m.Path {
	name := fmt.Sprintf("%s-%s.yaml", run.Model, run.CreatedAt.Format("20060102-150405"))

	return m.Path(filepath.Join(dir, name))
}

func parseShapeFlag(shape string) ([]int, error) {
	if strings.TrimSpace(shape) == "" {
		return nil, nil
	}

	parts := strings.Split(shape, ",")
	dims := make([]int, 0, len(parts))

	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid shape %q: dimensions must be non-negative integers", shape)
		}

		dims = append(dims, n)
	}

	return dims, nil
}

func parseArgFlags(args []string) (map[string]float64, error) {
	if len(args) == 0 {
		return nil, nil
	}

	out := make(map[string]float64, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid argument %q: expected name=value", arg)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", arg, err)
		}

		out[strings.TrimSpace(name)] = v
	}

	return out, nil
}
