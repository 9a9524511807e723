// Package display renders run summaries for the terminal.
package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/corpustools/corec/internal/pipeline"
)

// PrintSummary writes the end-of-run counters as a small styled table.
func PrintSummary(w io.Writer, title string, sum pipeline.Summary) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	fmt.Fprintln(w, titleStyle.Render(title))

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "files processed\t%d\n", sum.Files)
	if sum.Turns > 0 {
		fmt.Fprintf(tw, "turns\t%d\n", sum.Turns)
	}
	if sum.Utterances > 0 {
		fmt.Fprintf(tw, "utterances\t%d\n", sum.Utterances)
	}
	if sum.LogRows > 0 {
		fmt.Fprintf(tw, "log rows\t%d\n", sum.LogRows)
	}
	tw.Flush()

	if sum.Skipped > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("skipped %d file(s), see warnings above", sum.Skipped)))
	}
}
