package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "prior.dev/pkg/prior/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [run-files...]",
		Short: "Merge run summaries of the same model",
		Long: `Pool the statistics of several finished runs of the same model into one
combined summary. Without arguments every summary in the output directory
is merged.`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			paths, err := resolveMergePaths(args)
			if err != nil {
				return err
			}

			runs := make([]m.RunSummary, 0, len(paths))

			for _, path := range paths {
				run, err := runStore.Load(path)
				if err != nil {
					return err
				}

				runs = append(runs, run)
			}

			merged, err := workflow.Merge(runs)
			if err != nil {
				return err
			}

			merged.CreatedAt = time.Now().UTC()

			outDir := viper.GetString(outputFlagName)
			if err := runStore.Save(runSummaryPath(outDir, merged), merged); err != nil {
				return err
			}

			return ui.DisplaySummary(ctx, merged)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func resolveMergePaths(args []string) ([]m.Path, error) {
	if len(args) > 0 {
		return parsePaths(args), nil
	}

	dir := m.Path(viper.GetString(outputFlagName))

	paths, err := runStore.List(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs in %s: %w", dir, err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no run summaries in %s", dir)
	}

	return paths, nil
}
