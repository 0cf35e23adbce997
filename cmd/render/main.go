package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/logger"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence"
	infra "github.com/GBR-422777/invoiceninja/internal/infrastructure/printing"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an invoice into a document definition",
	Long: `Render combines an invoice JSON file with a design template and
produces a complete document definition ready for a painting renderer.

Without --design the built-in Clean design is used. The output is a
resolved JSON tree with every placeholder substituted.`,
	Example: `  # Render with the built-in design to stdout
  render --invoice invoice.json

  # Render with a custom design to a file
  render --invoice invoice.json --design modern.json --out document.json

  # Override typography and colors
  render --invoice invoice.json --font-size 11 --primary-color "#2d5d8f"`,
	Version: version,
	RunE:    runRender,
}

func init() {
	rootCmd.Flags().StringP("invoice", "i", "", "Path to the invoice JSON file (required)")
	rootCmd.Flags().StringP("design", "d", "", "Path to the design JSON file (default: built-in Clean design)")
	rootCmd.Flags().StringP("out", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().String("body-font", "", "Body font name")
	rootCmd.Flags().String("header-font", "", "Header font name")
	rootCmd.Flags().Int("font-size", 0, "Base font size in points")
	rootCmd.Flags().String("primary-color", "", "Primary color as a hex value")
	rootCmd.Flags().String("secondary-color", "", "Secondary color as a hex value")
	rootCmd.Flags().String("log-level", "warn", "Log level: debug, info, warn, error")
	_ = rootCmd.MarkFlagRequired("invoice")
}

func runRender(cmd *cobra.Command, args []string) error {
	invoicePath, _ := cmd.Flags().GetString("invoice")
	designPath, _ := cmd.Flags().GetString("design")
	outPath, _ := cmd.Flags().GetString("out")
	logLevel, _ := cmd.Flags().GetString("log-level")

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	inv, err := loadInvoice(invoicePath)
	if err != nil {
		return err
	}

	designContent := persistence.CleanDesignContent
	if designPath != "" {
		data, err := os.ReadFile(designPath)
		if err != nil {
			return fmt.Errorf("failed to read design file: %w", err)
		}
		designContent = string(data)
	}

	opts := buildOptions(cmd)

	builder := infra.NewBuilder(infra.DefaultDictionary(), log)
	document, err := builder.BuildJSON(inv, designContent, opts)
	if err != nil {
		return err
	}

	if outPath == "" {
		fmt.Println(string(document))
		return nil
	}
	if err := os.WriteFile(outPath, document, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info("Document written",
		zap.String("out", outPath),
		zap.Int("bytes", len(document)),
	)
	return nil
}

func loadInvoice(path string) (*invoice.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice file: %w", err)
	}
	var inv invoice.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse invoice JSON: %w", err)
	}
	return &inv, nil
}

func buildOptions(cmd *cobra.Command) infra.Options {
	opts := infra.DefaultOptions()

	if v, _ := cmd.Flags().GetString("body-font"); v != "" {
		opts.BodyFont = v
	}
	if v, _ := cmd.Flags().GetString("header-font"); v != "" {
		opts.HeaderFont = v
	}
	if v, _ := cmd.Flags().GetInt("font-size"); v > 0 {
		opts.FontSize = v
	}
	opts.PrimaryColor, _ = cmd.Flags().GetString("primary-color")
	opts.SecondaryColor, _ = cmd.Flags().GetString("secondary-color")

	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
