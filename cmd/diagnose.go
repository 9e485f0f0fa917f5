package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/didia-cli/internal/report"
	"github.com/KaramelBytes/didia-cli/internal/survey"
	"github.com/KaramelBytes/didia-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	diagOutputPath string
	diagFormat     string
	diagTheme      string
	diagThresholds string
	diagDelimiter  string
	diagSeed       uint64
	diagDiagnose   bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [file]",
	Short: "Build the adoption dashboard from a survey CSV (or demo data)",
	Long: `Reads a survey CSV/TSV and prints the dashboard: KPI cards, barrier map,
competency gap and the recommended intervention. Without a file, a
reproducible synthetic survey is generated instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim, err := parseDelimiter(diagDelimiter)
		if err != nil {
			return err
		}
		svc, err := buildService(serviceFlags{theme: diagTheme, thresholds: diagThresholds, delimiter: delim})
		if err != nil {
			return err
		}

		var src *survey.Source
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read survey: %w", err)
			}
			src = &survey.Source{Name: filepath.Base(args[0]), Data: data}
		}
		d, err := svc.Run(src, diagSeed, diagDiagnose)
		if err != nil {
			return err
		}
		out, err := render(d, diagFormat)
		if err != nil {
			return err
		}

		if diagOutputPath != "" {
			if err := utils.SafeWriteFile(diagOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote dashboard to %s\n", diagOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func render(d *report.Dashboard, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return []byte(d.Terminal()), nil
	case "markdown", "md":
		return []byte(d.Markdown()), nil
	case "json":
		b, err := d.JSON()
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "html":
		var buf bytes.Buffer
		if err := d.HTML(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use text|markdown|json|html)", format)
	}
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().StringVarP(&diagOutputPath, "output", "o", "", "write the dashboard to a file instead of stdout")
	diagnoseCmd.Flags().StringVarP(&diagFormat, "format", "f", "text", "output format: text|markdown|json|html")
	diagnoseCmd.Flags().StringVar(&diagTheme, "theme", "", "report theme (overrides config)")
	diagnoseCmd.Flags().StringVar(&diagThresholds, "thresholds", "", "threshold set (overrides config)")
	diagnoseCmd.Flags().StringVar(&diagDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: by extension)")
	diagnoseCmd.Flags().Uint64Var(&diagSeed, "seed", 0, "seed for synthetic data (0 uses config, then a random seed)")
	diagnoseCmd.Flags().BoolVar(&diagDiagnose, "diagnose", true, "include the recommended intervention")
}
