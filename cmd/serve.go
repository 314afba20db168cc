package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docgen/internal/api"
	"docgen/internal/asset"
	"docgen/internal/document"
	"docgen/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve document generation over HTTP",
	Long: `Start the HTTP API.

Generation endpoints (POST /api/quotes, POST /api/invoices, POST /api/test,
GET /api/test-auth) require the X-API-Key-1 and X-API-Key-2 headers to match
API_KEY_1 and API_KEY_2. When neither key is set the check is disabled and a
warning is logged.

Environment variables:
  PORT - listen port when --addr is not given (default: 8080)
  API_KEY_1, API_KEY_2 - the two API keys`,
	Example: `  docgen serve
  docgen serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: :PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")
	c := appConfig()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = ":" + c.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := document.NewService(
		asset.NewHTTPFetcher(c.LogoFetchTimeout),
		document.WithDefaultTheme(c.DefaultTheme),
	)

	if err := api.NewServer(svc, c, version).Run(ctx, addr); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("HTTP server failed")
		return err
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
