package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/didia-cli/internal/config"
	"github.com/KaramelBytes/didia-cli/internal/logging"
	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/KaramelBytes/didia-cli/internal/report"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DiDIA configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "theme: %s\n", cfg.Theme)
		fmt.Fprintf(w, "threshold_set: %s\n", cfg.ThresholdSet)
		fmt.Fprintf(w, "synthetic_size: %d\n", cfg.SyntheticSize)
		if cfg.SyntheticSeed != 0 {
			fmt.Fprintf(w, "synthetic_seed: %d\n", cfg.SyntheticSeed)
		}
		fmt.Fprintf(w, "template_file_name: %s\n", cfg.TemplateFileName)
		fmt.Fprintf(w, "server_addr: %s\n", cfg.ServerAddr)
		fmt.Fprintf(w, "max_upload_bytes: %d\n", cfg.MaxUploadBytes)
		fmt.Fprintf(w, "memo_entries: %d\n", cfg.MemoEntries)
		fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "theme":
			if _, err := report.ThemeByName(val); err != nil {
				return err
			}
			cfg.Theme = val
		case "threshold_set":
			if _, err := recommend.ThresholdSetByName(val); err != nil {
				return err
			}
			cfg.ThresholdSet = val
		case "synthetic_size":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for synthetic_size: %v", val)
			}
			cfg.SyntheticSize = i
		case "synthetic_seed":
			u, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed for synthetic_seed: %w", err)
			}
			cfg.SyntheticSeed = u
		case "template_file_name":
			if val == "" {
				return fmt.Errorf("template_file_name cannot be empty")
			}
			cfg.TemplateFileName = val
		case "server_addr":
			cfg.ServerAddr = val
		case "max_upload_bytes":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for max_upload_bytes: %v", val)
			}
			cfg.MaxUploadBytes = i
		case "memo_entries":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for memo_entries: %v", val)
			}
			cfg.MemoEntries = i
		case "log_level":
			if _, err := logging.New(val, false); err != nil {
				return err
			}
			cfg.LogLevel = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
