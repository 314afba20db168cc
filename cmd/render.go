package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docgen/internal/asset"
	"docgen/internal/document"
	"docgen/internal/logger"
	"docgen/pkg/models"
)

// maxInputBytes bounds the JSON document read from a file or stdin.
const maxInputBytes = 10 << 20

var renderCmd = &cobra.Command{
	Use:   "render [json-file]",
	Short: "Render a quote or invoice from JSON",
	Long: `Render a quote or an invoice described by a JSON document into a PDF or
HTML file.

The JSON has the same shape as the body of POST /api/quotes; run
"docgen example" for a complete sample. When no file is given, or the file
is "-", the document is read from stdin.

Missing optional fields are filled in: a document number, the issue date,
the expiration or due date (30 days later) and the payment status.

Environment variables:
  DEFAULT_THEME - theme used when the document names none (default: blue)
  LOGO_FETCH_TIMEOUT - single logo download timeout (default: 10s)
  OUTPUT_DIR - directory for generated files (default: generated)`,
	Example: `  # Render the sample quote
  docgen example > quote.json
  docgen render quote.json

  # Render the same data as a green invoice in HTML
  docgen render quote.json --kind invoice --theme green --format html

  # Write the PDF to stdout
  cat quote.json | docgen render -o - > quote.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "", "Output file path, - for stdout (default: OUTPUT_DIR/<generated name>)")
	renderCmd.Flags().String("format", "", "Output format: pdf or html (default: the document's format, else pdf)")
	renderCmd.Flags().String("theme", "", "Theme id, overrides the document's theme")
	renderCmd.Flags().String("kind", "", "Document kind: quote or invoice, overrides the document's kind")
	renderCmd.Flags().Int("timeout", 60, "Rendering timeout in seconds")
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("render")
	c := appConfig()

	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	themeID, _ := cmd.Flags().GetString("theme")
	kind, _ := cmd.Flags().GetString("kind")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputPath := "-"
	if len(args) == 1 {
		inputPath = args[0]
	}

	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Str("format", format).
		Str("theme", themeID).
		Str("kind", kind).
		Msg("Starting document rendering")

	doc, err := readDocument(cmd.InOrStdin(), inputPath, log)
	if err != nil {
		return err
	}
	if err := applyOverrides(doc, kind, format, themeID); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return handleRenderError(err, log)
	}

	ctx, cancel := createRenderContext(timeoutSecs, log)
	defer cancel()

	svc := document.NewService(
		asset.NewHTTPFetcher(c.LogoFetchTimeout),
		document.WithDefaultTheme(c.DefaultTheme),
	)

	start := time.Now()
	out, err := svc.Generate(ctx, doc)
	if err != nil {
		return handleRenderError(err, log)
	}

	log.Info().
		Str("number", out.Number).
		Str("file", out.Filename).
		Int("pages", out.Pages).
		Str("due", out.Totals.Due.StringFixed(2)).
		Dur("duration", time.Since(start)).
		Msg("Document rendered successfully")

	if outputPath == "" {
		outputPath = filepath.Join(c.OutputDir, out.Filename)
	}
	return writeRenderOutput(cmd.OutOrStdout(), out, outputPath, log)
}

// readDocument decodes the JSON document from path, or from stdin for "-"
func readDocument(stdin io.Reader, path string, log zerolog.Logger) (*models.Document, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Error().Str("file", path).Msg("Input file not found")
				return nil, fmt.Errorf("input file not found: %s", path)
			}
			return nil, fmt.Errorf("error accessing input file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("Failed to close input file")
			}
		}()
		r = f
	}

	var doc models.Document
	if err := json.NewDecoder(io.LimitReader(r, maxInputBytes)).Decode(&doc); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Invalid JSON document")
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return &doc, nil
}

// applyOverrides lets command-line flags win over the document's own fields
func applyOverrides(doc *models.Document, kind, format, themeID string) error {
	switch models.Kind(strings.ToLower(kind)) {
	case "":
	case models.KindQuote, models.KindInvoice:
		doc.Kind = models.Kind(strings.ToLower(kind))
	default:
		return fmt.Errorf("unknown kind %q: use quote or invoice", kind)
	}
	if format != "" {
		doc.Format = models.Format(format)
	}
	if themeID != "" {
		doc.Theme = themeID
	}
	return nil
}

// createRenderContext creates a context with timeout and signal handling
func createRenderContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling rendering")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleRenderError provides user-friendly error messages for rendering failures
func handleRenderError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Document rendering failed")

	var valErr *models.ValidationError
	switch {
	case errors.As(err, &valErr):
		return fmt.Errorf("invalid document: %s %s", valErr.Field, valErr.Message)
	case errors.Is(err, document.ErrUnsupportedFormat):
		return fmt.Errorf("unsupported format. Use --format pdf or --format html")
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("rendering timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("rendering was canceled")
	case errors.Is(err, document.ErrRenderFailed):
		return fmt.Errorf("the rendering backend failed: %w", err)
	default:
		return fmt.Errorf("document rendering failed: %w", err)
	}
}

// writeRenderOutput writes the generated bytes to outputPath, or to stdout for "-"
func writeRenderOutput(stdout io.Writer, out *document.Output, outputPath string, log zerolog.Logger) error {
	if outputPath == "-" {
		if _, err := stdout.Write(out.Data); err != nil {
			log.Error().Err(err).Msg("Failed to write to stdout")
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := writeFileAtomic(outputPath, out.Data); err != nil {
		log.Error().
			Err(err).
			Str("output_file", outputPath).
			Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output_file", outputPath).
		Int("bytes", len(out.Data)).
		Msg("Document written to file")
	fmt.Fprintln(stdout, outputPath)
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so path
// never holds a partial document.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".docgen-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
