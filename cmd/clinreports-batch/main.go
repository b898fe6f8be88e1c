package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/clinreports/clinreports-extractor/internal/common"
	"github.com/clinreports/clinreports-extractor/internal/export"
	"github.com/clinreports/clinreports-extractor/internal/extract"
	"github.com/clinreports/clinreports-extractor/internal/ingest"
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
		logger.Error("usage", "cmd", "clinreports-batch <input-dir> <output.xlsx>")
		os.Exit(2)
	}
	root, outPath := os.Args[1], os.Args[2]

	cfg := common.LoadConfig()

	var library *patterns.Library
	var err error
	if path := os.Getenv("PATTERNS_CONFIG"); path != "" {
		library, err = patterns.Load(path, logger)
		if err != nil {
			logger.Error("load patterns", "error", err)
			os.Exit(1)
		}
	} else {
		library = patterns.Default(logger)
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

	files, stats, err := ingest.DiscoverDirectory(root, true)
	if err != nil {
		logger.Error("discover", "root", root, "error", err)
		os.Exit(1)
	}
	logger.Info("discover.ok", "root", root,
		"scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	if stats.Matched == 0 {
		logger.Error("no report files found", "root", root)
		os.Exit(1)
	}

	wb := export.NewWorkbook(logger)
	start := time.Now()
	var ok, failed, redacted int

	for _, file := range files {
		if file.Err != "" {
			logger.Warn("batch.skip", "path", file.Path, "error", file.Err)
			failed++
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
		res, err := p.ProcessFile(ctx, file.Path, nil)
		cancel()
		if err != nil {
			logger.Error("batch.failed", "path", file.Path, "error", err)
			failed++
			continue
		}

		wb.AddGenetic(res.GeneticRows...)
		wb.AddIHC(res.IHCRows...)
		wb.AddClinical(res.ClinicalRows...)
		ok++
		if res.Redacted {
			redacted++
		}
	}

	if ok == 0 {
		logger.Error("batch produced no output", "failed", failed)
		os.Exit(1)
	}
	if err := wb.WriteFile(outPath); err != nil {
		logger.Error("write workbook", "path", outPath, "error", err)
		os.Exit(1)
	}

	g, i, c := wb.Rows()
	logger.Info("batch OK",
		"processed", ok,
		"failed", failed,
		"redacted", redacted,
		"genetic_rows", g,
		"ihc_rows", i,
		"clinical_rows", c,
		"output", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
