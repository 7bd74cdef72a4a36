// Package report renders persisted training results as HTML and PDF reports.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/datmos/word-grader/internal/results"
)

// pdfRenderTimeout bounds one headless-Chrome print run.
const pdfRenderTimeout = 30 * time.Second

// ExportPDF renders the training result report to a PDF file via
// headless Chrome. Requires Chrome/Chromium to be installed on the
// system.
func ExportPDF(ctx context.Context, tr *results.TrainingResult, outPath string) error {
	var html bytes.Buffer
	if err := RenderHTML(&html, tr); err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "word-grader-report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "report.html")
	if err := os.WriteFile(htmlPath, html.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report HTML: %w", err)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, pdfRenderTimeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("pdf rendering failed: %w", err)
	}

	if err := os.WriteFile(outPath, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
