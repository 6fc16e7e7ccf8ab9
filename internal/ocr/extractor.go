// Package ocr reads text out of task attachments: PDF text layer first,
// rasterized OCR as a fallback, plain image OCR for photos. External
// tools (pdftotext, pdftoppm, tesseract) run behind a stubbable Runner.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"famorg/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang     string // default "fra"
	DPI      int    // rasterization DPI for scanned PDFs, default 300
	MaxPages int    // pages OCRed per scanned PDF, default 4
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "fra"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 4
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// PDFText extracts the text layer of a PDF. An empty result with a nil
// error means "likely scanned": the caller should fall back to OCR.
func (e *Extractor) PDFText(ctx context.Context, data []byte) (string, error) {
	path, cleanup, err := writeTemp(data, "*.pdf")
	if err != nil {
		return "", err
	}
	defer cleanup()

	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// PDFOCR rasterizes the first pages of a scanned PDF and runs tesseract
// on each.
func (e *Extractor) PDFOCR(ctx context.Context, data []byte) (string, error) {
	path, cleanup, err := writeTemp(data, "*.pdf")
	if err != nil {
		return "", err
	}
	defer cleanup()

	tmpDir, err := os.MkdirTemp("", "famorg-pp-*")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	_, _, err = e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-png", "-r", fmt.Sprint(e.cfg.DPI),
		"-f", "1", "-l", fmt.Sprint(e.cfg.MaxPages),
		path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w", err)
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", err
	}
	sort.Strings(pages)
	e.logger.Debug("ocr.pdf_ocr.rasterized", "pages", len(pages), "dpi", e.cfg.DPI)

	var b strings.Builder
	for _, page := range pages {
		txt, err := e.tesseract(ctx, page)
		if err != nil {
			return "", err
		}
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// ImageText runs tesseract over a photographed document.
func (e *Extractor) ImageText(ctx context.Context, data []byte, ext string) (string, error) {
	if constants.MapExtToFormat(ext) != constants.IMAGE {
		return "", fmt.Errorf("unsupported image extension: %q", ext)
	}
	path, cleanup, err := writeTemp(data, "*."+constants.NormalizeExt(ext))
	if err != nil {
		return "", err
	}
	defer cleanup()
	return e.tesseract(ctx, path)
}

func (e *Extractor) tesseract(ctx context.Context, path string) (string, error) {
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.Lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", "famorg-att-"+pattern)
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}
