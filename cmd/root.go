package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corpustools/corec/config"
	"github.com/corpustools/corec/internal/logging"
)

// NewRootCmd creates the root command for corec.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "corec",
		Short:         "Interview transcript normalization and discourse segmentation",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.SetVerbose(verbose)
		},
	}

	rootCmd.PersistentFlags().String("config", "corec.yml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSegmentCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newNormalize2Cmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
