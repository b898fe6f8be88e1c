// Package ocr extracts text from clinical report PDFs, preferring the
// embedded text layer and falling back to rasterized OCR for scanned
// documents. External binaries (pdftotext, pdftoppm, tesseract) are driven
// through a Runner so tests can stub them.
package ocr

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/common"
)

const (
	MethodPDFText = "pdf-text"
	MethodPDFOCR  = "pdf-ocr"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 200
	MaxPages      int    // 0 = no limit

	TessdataDir string
}

// ProgressFunc reports OCR progress in percent (0-100) with a short
// human-readable message. Never called concurrently for one extraction.
type ProgressFunc func(percent int, message string)

// ExtractionResult is the outcome of one text extraction attempt.
// PageTexts maps 1-indexed page numbers to per-page text.
type ExtractionResult struct {
	PageTexts  map[int]string
	Pages      int
	Method     string // MethodPDFText | MethodPDFOCR
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Text returns the concatenated page texts in page order.
func (r ExtractionResult) Text() string {
	var b []byte
	for p := 1; p <= r.Pages; p++ {
		if t := r.PageTexts[p]; t != "" {
			if len(b) > 0 {
				b = append(b, '\n')
			}
			b = append(b, t...)
		}
	}
	return string(b)
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
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	return &Extractor{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// ConfigFromEnv maps the process-level OCR settings onto an extractor Config.
func ConfigFromEnv(c common.OCRConfig) Config {
	return Config{
		Pdftotext:     c.Pdftotext,
		Pdftoppm:      c.Pdftoppm,
		Tesseract:     c.Tesseract,
		TesseractLang: c.TesseractLang,
		TessdataDir:   c.TessdataDir,
		DPI:           c.DPI,
		MaxPages:      c.MaxPages,
	}
}

// ExtractTextLayer pulls the embedded text layer via pdftotext. Cheap; the
// caller decides from the quality heuristics whether to fall back to OCR.
func (e *Extractor) ExtractTextLayer(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	if ext := constants.NormalizeExt(filepath.Ext(path)); !constants.IsAllowedExt(ext) {
		e.logger.Error("ocr.unsupported_extension", "path", path, "extension", ext)
		return ExtractionResult{}, common.NewAppError("UNSUPPORTED_EXTENSION", "unsupported extension: "+ext, common.ErrInvalidInput)
	}
	res, err := e.pdfToText(ctx, path)
	res.Duration = time.Since(start)
	return res, err
}

// ExtractOCR rasterizes the document and runs tesseract page by page,
// reporting progress through fn when non-nil.
func (e *Extractor) ExtractOCR(ctx context.Context, path string, fn ProgressFunc) (ExtractionResult, error) {
	start := time.Now()
	res, err := e.pdfToOCR(ctx, path, fn)
	res.Duration = time.Since(start)
	return res, err
}
