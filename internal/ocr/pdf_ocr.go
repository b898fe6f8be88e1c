package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// progress staging: rasterization owns 10-40, per-page OCR owns 40-90.
const (
	progressRasterStart = 10
	progressRasterDone  = 40
	progressOCRDone     = 90
)

func (e *Extractor) pdfToOCR(ctx context.Context, path string, fn ProgressFunc) (ExtractionResult, error) {
	report := func(pct int, msg string) {
		if fn != nil {
			fn(pct, msg)
		}
	}

	tmpDir, err := os.MkdirTemp("", "cre-pp-*")
	if err != nil {
		return ExtractionResult{}, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("ocr.tmpdir.cleanup_failed", "path", tmpDir, "error", err)
		}
	}()

	report(progressRasterStart, "rendering pages")
	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 200 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return ExtractionResult{Warnings: []string{string(errb)}}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return ExtractionResult{Warnings: []string{"pdftoppm produced no images"}}, fmt.Errorf("no pages rendered")
	}
	report(progressRasterDone, fmt.Sprintf("rendered %d pages", len(matches)))

	pages := make(map[int]string, len(matches))
	var warns []string
	span := progressOCRDone - progressRasterDone
	for i, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		warns = append(warns, w...)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		pages[i+1] = Normalize(txt)
		pct := progressRasterDone + span*(i+1)/len(matches)
		report(pct, fmt.Sprintf("ocr page %d/%d", i+1, len(matches)))
	}

	res := ExtractionResult{
		PageTexts: pages,
		Pages:     len(matches),
		Method:    MethodPDFOCR,
		Language:  e.cfg.TesseractLang,
		Warnings:  warns,
	}
	res.Confidence = heuristicConfidence(res.Text())
	return res, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}
