// runocr is a debugging tool: it runs only the text-acquisition stage on a
// single PDF and reports what each path produced.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/clinreports/clinreports-extractor/internal/common"
	"github.com/clinreports/clinreports-extractor/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <file.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	if err := ocr.ValidatePDF(path); err != nil {
		logger.Warn("pdf validation", "path", path, "error", err)
	}
	if n, err := ocr.PageCount(path); err == nil {
		logger.Info("page count", "path", path, "pages", n)
	}

	ocrx := ocr.NewExtractor(ocr.ConfigFromEnv(cfg.OCR), logger)

	start := time.Now()
	layer, err := ocrx.ExtractTextLayer(ctx, path)
	if err != nil {
		logger.Error("text layer failed", "error", err)
	} else {
		logger.Info("text layer OK",
			"pages", layer.Pages,
			"chars", len(layer.Text()),
			"has_text_layer", ocr.HasTextLayer(layer, 50),
			"confidence", layer.Confidence,
			"duration_ms", layer.Duration.Milliseconds(),
		)
	}

	res, err := ocrx.ExtractOCR(ctx, path, func(pct int, msg string) {
		logger.Info("ocr progress", "percent", pct, "message", msg)
	})
	if err != nil {
		logger.Error("ocr failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("ocr OK",
		"pages", res.Pages,
		"chars", len(res.Text()),
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)
	fmt.Println(res.Text())
}
