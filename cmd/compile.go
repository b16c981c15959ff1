package cmd

import (
	"context"

	"github.com/spf13/cobra"

	m "prior.dev/pkg/prior/internal/model"
)

var compileModelFlag string

// compileCmd represents the compile command.
var compileCmd = newCompileCmd()

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a model and print its sampler program",
		Long: `Compile a model definition and print the rewritten sampler program: the
generated signature plus one line per statement, with "~" declarations
turned into explicit draws.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			lines, err := workflow.Program(ctx, m.Path(args[0]), compileModelFlag)
			if err != nil {
				return err
			}

			return ui.DisplayProgram(ctx, lines)
		},
	}

	cmd.Flags().StringVarP(&compileModelFlag, "model", "m", "", "model name (required when the file defines several)")

	return cmd
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
