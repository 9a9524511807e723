package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corpustools/corec/internal/display"
	"github.com/corpustools/corec/internal/pipeline"
)

func newSegmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment <input-dir> <output-dir>",
		Short: "Split speaker turns into discourse utterances",
		Long:  "Read speaker-tagged transcripts and split each turn at slash markers into discourse utterances, writing one <name>_seg.txt per input file.",
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
			sum, err := p.Segment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			display.PrintSummary(os.Stdout, "discourse segmentation", sum)
			return nil
		},
	}
	return cmd
}
