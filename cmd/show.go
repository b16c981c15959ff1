package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "prior.dev/pkg/prior/internal/model"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [run-file]",
		Short: "Show a previously saved run summary",
		Long: `Show a previously saved run summary. Without an argument the most recent
summary in the output directory is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			path, err := resolveRunPath(args)
			if err != nil {
				return err
			}

			run, err := runStore.Load(path)
			if err != nil {
				return err
			}

			return ui.DisplaySummary(ctx, run)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// resolveRunPath picks the summary to show: the explicit argument, or the
// lexically last (most recent, given timestamped names) file in the output
// directory.
func resolveRunPath(args []string) (m.Path, error) {
	if len(args) == 1 {
		return m.Path(args[0]), nil
	}

	dir := m.Path(viper.GetString(outputFlagName))

	paths, err := runStore.List(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list runs in %s: %w", dir, err)
	}

	if len(paths) == 0 {
		return "", fmt.Errorf("no run summaries in %s", dir)
	}

	return paths[len(paths)-1], nil
}
