package cmd

import (
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/didia-cli/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	serveAddr       string
	serveTheme      string
	serveThresholds string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService(serviceFlags{theme: serveTheme, thresholds: serveThresholds, memo: true})
		if err != nil {
			return err
		}
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		addr := cfg.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := server.New(server.Options{
			Addr:             addr,
			MaxUploadBytes:   cfg.MaxUploadBytes,
			TemplateFileName: cfg.TemplateFileName,
		}, svc, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config server_addr)")
	serveCmd.Flags().StringVar(&serveTheme, "theme", "", "report theme (overrides config)")
	serveCmd.Flags().StringVar(&serveThresholds, "thresholds", "", "threshold set (overrides config)")
}

