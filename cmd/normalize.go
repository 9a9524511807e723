package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corpustools/corec/internal/display"
	"github.com/corpustools/corec/internal/pipeline"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <input-dir> <output-dir>",
		Short: "Apply the structural normalization pass",
		Long:  "Apply the structural rewrite rules (parentheses, angle quotes, truncations, bracketed variants, ellipses, lengthenings, emphatic capitals) to every transcript, writing <name>_normas_1.txt files and a provenance log.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logPath, _ := cmd.Flags().GetString("log")
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			sum, err := p.PhaseOne(cmd.Context(), args[0], args[1], logPath)
			if err != nil {
				return err
			}
			display.PrintSummary(os.Stdout, "normalization pass 1", sum)
			return nil
		},
	}
	cmd.Flags().String("log", "Log_normas_1.csv", "Path of the provenance CSV log")
	return cmd
}

func newNormalize2Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize2 <input-dir> <output-dir>",
		Short: "Apply the lexical normalization pass",
		Long:  "Apply the lexical rewrite rules (colon lengthenings, apostrophe contractions, dialectal variants, token fixups, anonymization) to every transcript, writing <name>_normas_2.txt files and a provenance log.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logPath, _ := cmd.Flags().GetString("log")
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			sum, err := p.PhaseTwo(cmd.Context(), args[0], args[1], logPath)
			if err != nil {
				return err
			}
			display.PrintSummary(os.Stdout, "normalization pass 2", sum)
			return nil
		},
	}
	cmd.Flags().String("log", "Log_normas_2.csv", "Path of the provenance CSV log")
	return cmd
}
