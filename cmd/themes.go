package cmd

import (
	"fmt"

	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/KaramelBytes/didia-cli/internal/report"
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List report themes and threshold sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Themes:")
		for _, name := range report.ThemeNames() {
			th, _ := report.ThemeByName(name)
			mark := " "
			if cfg != nil && cfg.Theme == name {
				mark = "*"
			}
			fmt.Fprintf(w, " %s %-10s lang=%s\n", mark, name, th.Language)
		}
		fmt.Fprintln(w, "Threshold sets:")
		for _, name := range recommend.ThresholdSetNames() {
			ts, _ := recommend.ThresholdSetByName(name)
			mark := " "
			if cfg != nil && cfg.ThresholdSet == name {
				mark = "*"
			}
			fmt.Fprintf(w, " %s %s\n", mark, ts)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
