package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/clinreports/clinreports-extractor/internal/common"
	"github.com/clinreports/clinreports-extractor/internal/export"
	"github.com/clinreports/clinreports-extractor/internal/extract"
	"github.com/clinreports/clinreports-extractor/internal/ocr"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
	"github.com/clinreports/clinreports-extractor/internal/pipeline"
	"github.com/clinreports/clinreports-extractor/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "clinreports <input.pdf> <output.xlsx>")
		os.Exit(2)
	}
	inPath, outPath := os.Args[1], os.Args[2]

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	library, err := loadLibrary(logger)
	if err != nil {
		logger.Error("load patterns", "error", err)
		os.Exit(1)
	}

	var jobs repository.ExtractJobRepository = repository.NopRepository{}
	if cfg.Store.Path != "" {
		r, db, err := repository.Open(cfg.Store.Path, logger)
		if err != nil {
			logger.Error("open job store", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		jobs = r
	}

	ocrx := ocr.NewExtractor(ocr.ConfigFromEnv(cfg.OCR), logger)
	p := pipeline.NewProcessor(
		extract.NewTextLayerAdapter(ocrx, logger),
		extract.NewOCRAdapter(ocrx, logger),
		jobs, library, cfg.Heuristics, logger,
	)

	start := time.Now()
	res, err := p.ProcessFile(ctx, inPath, func(pct int, msg string) {
		logger.Info("progress", "percent", pct, "message", msg)
	})
	if err != nil {
		logger.Error("extraction failed", "path", inPath, "error", err,
			"duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	wb := export.NewWorkbook(logger)
	wb.AddGenetic(res.GeneticRows...)
	wb.AddIHC(res.IHCRows...)
	wb.AddClinical(res.ClinicalRows...)
	if err := wb.WriteFile(outPath); err != nil {
		logger.Error("write workbook", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"job_id", res.JobID,
		"kind", res.Kind,
		"method", res.Method,
		"pages", res.Pages,
		"redacted", res.Redacted,
		"rows", res.Rows(),
		"output", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func loadLibrary(logger *slog.Logger) (*patterns.Library, error) {
	if path := os.Getenv("PATTERNS_CONFIG"); path != "" {
		return patterns.Load(path, logger)
	}
	return patterns.Default(logger), nil
}
