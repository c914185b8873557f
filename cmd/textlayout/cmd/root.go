// Package cmd implements the standalone textlayout CLI: run the XY-cut
// layout reconstruction over a text or PDF file and print the result.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/textlayout-invoice/internal/pdftext"
	"github.com/rezonia/textlayout-invoice/internal/textlayout"
)

const defaultMinGap = 2

var rootCmd = &cobra.Command{
	Use:   "textlayout <filename> [min_gap]",
	Short: "Reconstruct column layout from a text or PDF file via XY-cut",
	Long: `textlayout reads a text file (or a PDF, via pdftotext) and reprints it
with its column layout reconstructed: text separated by min_gap or more
whitespace columns is treated as belonging to distinct blocks and laid out
independently, rather than being read left-to-right across columns.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	filename := args[0]

	minGap := defaultMinGap
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("min_gap must be an integer: %w", err)
		}
		minGap = parsed
	}

	var text string
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		extracted, err := extractPDFText(filename)
		if err != nil {
			return err
		}
		text = extracted
	} else {
		content, err := os.ReadFile(filename)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file '%s' not found", filename)
			}
			return err
		}
		text = string(content)
	}

	fmt.Fprintln(cmd.OutOrStdout(), textlayout.Extract(text, minGap))
	return nil
}

// extractPDFText pulls a pdftotext -layout rendering out of filename, the
// same rendering the original CLI feeds its layout engine. It deliberately
// does not fall back to the pdfcpu content-stream strategy: that rendering
// has no column spacing left to cut on.
func extractPDFText(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file '%s' not found", filename)
		}
		return "", err
	}

	result := pdftext.ExtractWithAllStrategies(data, nil)
	for _, variant := range result.Variants {
		if variant.ExtractorName == "Poppler-pdftotext" {
			return variant.Text, nil
		}
	}

	return "", fmt.Errorf("no pdftotext rendering available for '%s' (is poppler-utils installed?)", filename)
}
