package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docgen/internal/logger"
	"docgen/pkg/models"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a sample quote document as JSON",
	Long: `Print the sample quote used by POST /api/test. The output is a valid
input for "docgen render" and for POST /api/quotes.`,
	Example: `  docgen example > quote.json
  docgen example --kind invoice -o invoice.json`,
	Args: cobra.NoArgs,
	RunE: runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)

	exampleCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	exampleCmd.Flags().String("kind", "quote", "Document kind: quote or invoice")
}

func runExample(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("example")

	outputPath, _ := cmd.Flags().GetString("output")
	kind, _ := cmd.Flags().GetString("kind")

	doc := models.ExampleDocument(time.Now())
	if err := applyOverrides(&doc, kind, "", ""); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		log.Error().Err(err).Str("output_file", outputPath).Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info().Str("output_file", outputPath).Msg("Example document written")
	return nil
}
