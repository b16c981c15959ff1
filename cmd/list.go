package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List model files and their models",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			infos, err := workflow.Models(ctx, parsePaths(args), viper.GetStringSlice(excludeConfigKey)...)
			if err != nil {
				return err
			}

			return ui.DisplayModels(ctx, infos)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
