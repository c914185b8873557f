package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-processor",
	Short: "Extract structured data from invoice PDFs",
	Long: `Invoice Processor is a CLI tool for extracting data from invoice PDFs
using anchored text extraction across layout variants.

Examples:
  # Process a PDF
  invoice-processor process invoice.pdf

  # Process multiple files
  invoice-processor process *.pdf -o results.json

  # Validate an invoice
  invoice-processor validate invoice.pdf`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
