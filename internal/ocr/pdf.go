package ocr

import (
	"context"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/clinreports/clinreports-extractor/internal/common"
)

// PageCount returns the page count read from the PDF structure.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, common.WrapError(err, "reading page count")
	}
	return n, nil
}

// ValidatePDF checks structural validity before any extraction is attempted.
func ValidatePDF(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return common.WrapError(err, "pdf validation failed")
	}
	return nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (ExtractionResult, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return ExtractionResult{Warnings: []string{string(errb)}}, err
	}

	// pdftotext separates pages with a form-feed
	raw := strings.Split(string(out), "\f")
	pages := make(map[int]string, len(raw))
	for i, p := range raw {
		pages[i+1] = Normalize(p)
	}

	res := ExtractionResult{
		PageTexts: pages,
		Pages:     len(raw),
		Method:    MethodPDFText,
		Language:  e.cfg.TesseractLang,
	}
	res.Confidence = heuristicConfidence(res.Text())
	return res, nil
}

// HasTextLayer is a fast pre-check: a scanned document yields an essentially
// empty text layer, so anything below the threshold routes to OCR.
func HasTextLayer(res ExtractionResult, minChars int) bool {
	return len(strings.TrimSpace(res.Text())) >= minChars
}
