// Package extract defines the narrow text-acquisition contracts the pipeline
// consumes, decoupling it from the concrete ocr implementation.
package extract

import (
	"context"
	"time"

	"github.com/clinreports/clinreports-extractor/internal/entity"
	"github.com/clinreports/clinreports-extractor/internal/ocr"
)

// TextExtractionResult is the pipeline-facing view of one extraction.
type TextExtractionResult struct {
	PageTexts  map[int]string
	Pages      int
	Method     string
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Document freezes the page texts into the immutable document the parsing
// stages consume.
func (r TextExtractionResult) Document() *entity.RawDocument {
	return entity.NewRawDocument(r.PageTexts)
}

// TextLayerExtractor pulls the embedded text layer of a document.
type TextLayerExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

// OCRExtractor rasterizes a document and OCRs it page by page, reporting
// progress through the callback when non-nil.
type OCRExtractor interface {
	Extract(ctx context.Context, path string, progress ocr.ProgressFunc) (TextExtractionResult, error)
}
