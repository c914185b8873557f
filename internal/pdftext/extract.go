package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rezonia/textlayout-invoice/internal/textlayout"
)

const (
	extractorDefault    = "PdfCpu-Default"
	extractorPoppler    = "Poppler-pdftotext"
	extractorTextLayout = "textlayout"
)

// ExtractWithAllStrategies runs every available extraction strategy over
// pdfBytes and scores each rendering. Strategies that fail (a missing
// pdftotext binary, an unparsable content stream) are skipped rather than
// aborting the whole extraction; logFn, if non-nil, receives one line per
// skipped strategy.
func ExtractWithAllStrategies(pdfBytes []byte, logFn func(strategy string, err error)) Result {
	var variants []Variant
	logSkip := func(name string, err error) {
		if logFn != nil && err != nil {
			logFn(name, err)
		}
	}

	defaultText, err := extractDefault(pdfBytes)
	logSkip(extractorDefault, err)
	if err == nil && strings.TrimSpace(defaultText) != "" {
		variants = append(variants, Variant{defaultText, extractorDefault, calculateQuality(defaultText)})
	}

	popplerText, err := extractPoppler(pdfBytes)
	logSkip(extractorPoppler, err)
	if err == nil && strings.TrimSpace(popplerText) != "" {
		variants = append(variants, Variant{popplerText, extractorPoppler, calculateQuality(popplerText)})

		laidOut := textlayout.Extract(popplerText, 2)
		if strings.TrimSpace(laidOut) != "" {
			variants = append(variants, Variant{laidOut, extractorTextLayout, calculateQuality(laidOut)})
		}
	}

	return Result{Variants: variants}
}

// extractDefault reads every page's content stream with pdfcpu and pulls out
// its show-text operands. It carries no positioning information, so columns
// and rows from the original layout are not reconstructed.
func extractDefault(pdfBytes []byte) (string, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var out strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(fmt.Sprintf("--- Page %d ---\n", pageNr))

		contentReader, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || contentReader == nil {
			continue
		}

		contentBytes, err := io.ReadAll(contentReader)
		if err != nil {
			continue
		}

		out.WriteString(extractTextFromContentStream(string(contentBytes)))
		out.WriteString("\n")
	}

	return out.String(), nil
}

// extractPoppler shells out to the system's pdftotext with layout
// preservation, the same rendering the original anchors its layout-aware
// strategies on.
func extractPoppler(pdfBytes []byte) (string, error) {
	pdftotext, err := exec.LookPath("pdftotext")
	if err != nil {
		return "", fmt.Errorf("pdftotext not on PATH: %w", err)
	}

	tempFile, err := os.CreateTemp("", "textlayout-invoice-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := tempFile.Write(pdfBytes); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(pdftotext, "-layout", tempFile.Name(), "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := runWithTimeout(cmd, 5*time.Second); err != nil {
		return "", fmt.Errorf("pdftotext: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}

func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("timed out after %s", timeout)
	}
}
