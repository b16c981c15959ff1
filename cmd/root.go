// Package cmd provides the root command and CLI setup for prior.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"prior.dev/pkg/prior/internal/adapter"
	"prior.dev/pkg/prior/internal/controller"
	"prior.dev/pkg/prior/internal/domain"
	m "prior.dev/pkg/prior/internal/model"
)

var fsAdapter adapter.ModelFSAdapter
var fileAdapter adapter.ModelFileAdapter
var runStore adapter.RunStore
var workflow domain.Workflow
var ui controller.UI

// runsOutputDirFlag is a root-level flag shared by commands that read/write
// run summaries.
var runsOutputDirFlag string

// excludePatterns is a root-level flag that filters model files for
// applicable commands.
var excludePatterns []string

var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalModelFSAdapter()
	fileAdapter = adapter.NewLocalModelFileAdapter()
	runStore = adapter.NewYAMLRunStore()
	workflow = domain.NewWorkflow(fsAdapter, fileAdapter)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...           recursively scan current directory
  - ./models/...    recursively scan models directory
  - ./a ./b         scan multiple directories`

const rootLongDescription = `Prior compiles declarative probabilistic model definitions (.prior files)
into executable prior-predictive samplers and draws from them.

A model declares random variables with "~" and deterministic ones with "=";
the compiler rewrites it into a deterministic sampler seeded by an explicit
key, so every run is reproducible.

` + pathPatternsHelp

const listLongDescription = `List model files and the models they define.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prior",
		Short: "Prior-predictive sampler compiler",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&runsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run summaries",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, "log", "", "log file path (default "+defaultLogFilename+")")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
