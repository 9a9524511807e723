package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corpustools/corec/internal/display"
	"github.com/corpustools/corec/internal/pipeline"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input-dir> <output-dir>",
		Short: "Run segmentation and both normalization passes end to end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			sum, err := p.Run(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			display.PrintSummary(os.Stdout, "full pipeline", sum)
			return nil
		},
	}
	return cmd
}
