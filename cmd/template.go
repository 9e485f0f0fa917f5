package cmd

import (
	"fmt"

	"github.com/KaramelBytes/didia-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	tmplOutputPath string
	tmplSeed       uint64
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a filled-in survey CSV template from synthetic data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService(serviceFlags{})
		if err != nil {
			return err
		}
		b, err := svc.Template(tmplSeed)
		if err != nil {
			return err
		}
		path := tmplOutputPath
		if path == "" {
			path = cfg.TemplateFileName
		}
		if path == "-" {
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}
		if err := utils.SafeWriteFile(path, b); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		fmt.Printf("✓ Wrote template to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringVarP(&tmplOutputPath, "output", "o", "", "output path ('-' for stdout; default: template_file_name from config)")
	templateCmd.Flags().Uint64Var(&tmplSeed, "seed", 0, "seed for the synthetic rows (0 uses config, then a random seed)")
}
