package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docgen/internal/asset"
	"docgen/internal/config"
	"docgen/internal/logger"
	"docgen/internal/theme"
)

var version = "1.0.0"

// cfg is set by Execute; appConfig falls back to the environment.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "docgen - themed quote and invoice generator",
	Long: `docgen turns structured quote and invoice data into finished documents:
paginated A4 PDFs with "page i/N" footers, or single-page HTML.

Documents can be rendered from a JSON file, or served over HTTP with the
serve subcommand.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("docgen executed")

		cmd.Help()
	},
}

// Execute runs the root command with c as the application configuration.
func Execute(c *config.Config) {
	log := logger.WithComponent("cmd")
	if c != nil {
		cfg = c
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func appConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	c, err := config.Load()
	if err != nil {
		log := logger.WithComponent("cmd")
		log.Warn().Err(err).Msg("Invalid configuration, using defaults")
		c = &config.Config{
			Port:             "8080",
			DefaultTheme:     theme.DefaultID,
			LogoFetchTimeout: asset.DefaultTimeout,
			OutputDir:        "generated",
		}
	}
	cfg = c
	return cfg
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
