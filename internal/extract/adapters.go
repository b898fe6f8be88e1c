package extract

import (
	"context"
	"log/slog"

	"github.com/clinreports/clinreports-extractor/internal/ocr"
)

// TextLayerAdapter adapts the extractor's pdftotext path.
type TextLayerAdapter struct {
	e *ocr.Extractor
}

func NewTextLayerAdapter(e *ocr.Extractor, _ *slog.Logger) *TextLayerAdapter {
	return &TextLayerAdapter{e: e}
}

func (a *TextLayerAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.ExtractTextLayer(ctx, path)
	return fromResult(r), err
}

// OCRAdapter adapts the extractor's rasterize-and-tesseract path.
type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor, _ *slog.Logger) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Extract(ctx context.Context, path string, progress ocr.ProgressFunc) (TextExtractionResult, error) {
	r, err := a.e.ExtractOCR(ctx, path, progress)
	return fromResult(r), err
}

func fromResult(r ocr.ExtractionResult) TextExtractionResult {
	return TextExtractionResult{
		PageTexts:  r.PageTexts,
		Pages:      r.Pages,
		Method:     r.Method,
		Language:   r.Language,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
		Confidence: r.Confidence,
	}
}
