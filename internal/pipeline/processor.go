// Package pipeline orchestrates one document through text acquisition,
// redaction and quality gates, classification, parsing and row assembly.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/assemble"
	"github.com/clinreports/clinreports-extractor/internal/common"
	"github.com/clinreports/clinreports-extractor/internal/entity"
	"github.com/clinreports/clinreports-extractor/internal/extract"
	"github.com/clinreports/clinreports-extractor/internal/ingest"
	"github.com/clinreports/clinreports-extractor/internal/ocr"
	"github.com/clinreports/clinreports-extractor/internal/parser"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
	"github.com/clinreports/clinreports-extractor/internal/repository"
)

// Result is the outcome of processing one document.
type Result struct {
	JobID      uuid.UUID
	Kind       constants.ReportKind
	Method     string
	Pages      int
	Confidence float32
	Redacted   bool

	GeneticRows  []entity.ReportRecord
	IHCRows      []entity.ReportRecord
	ClinicalRows []entity.ReportRecord
}

// Rows is the total row count across sheets.
func (r Result) Rows() int {
	return len(r.GeneticRows) + len(r.IHCRows) + len(r.ClinicalRows)
}

type Processor struct {
	textLayer extract.TextLayerExtractor
	ocr       extract.OCRExtractor
	jobs      repository.ExtractJobRepository
	library   *patterns.Library
	redaction *parser.RedactionDetector
	quality   *parser.QualityAssessor
	variants  *parser.VariantExtractor
	cfg       common.HeuristicsConfig
	logger    *slog.Logger
}

func NewProcessor(
	textLayer extract.TextLayerExtractor,
	ocrx extract.OCRExtractor,
	jobs repository.ExtractJobRepository,
	library *patterns.Library,
	cfg common.HeuristicsConfig,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if jobs == nil {
		jobs = repository.NopRepository{}
	}
	return &Processor{
		textLayer: textLayer,
		ocr:       ocrx,
		jobs:      jobs,
		library:   library,
		redaction: parser.NewRedactionDetector(cfg),
		quality:   parser.NewQualityAssessor(cfg),
		variants:  parser.NewVariantExtractor(logger),
		cfg:       cfg,
		logger:    logger,
	}
}

// ProcessFile runs the full extraction for one PDF. The optional progress
// callback receives the same percent/message updates recorded on the job.
// The only terminal failure is ErrNoText: any text at all, however poor,
// flows through to parsing so the output table is never silently empty.
func (p *Processor) ProcessFile(ctx context.Context, path string, progress ocr.ProgressFunc) (*Result, error) {
	hashHex, _, err := ingest.HashFile(path)
	if err != nil {
		return nil, common.WrapError(err, "fingerprinting source")
	}

	job, err := p.jobs.Start(ctx, path, hashHex)
	if err != nil {
		return nil, err
	}
	_ = p.jobs.UpdateProgress(ctx, job.ID, constants.JobStatusRunning, 5, "text extraction")

	doc, method, pages, conf, err := p.acquireText(ctx, path, job.ID, progress)
	if err != nil {
		_ = p.jobs.FinishFailure(ctx, job.ID, err.Error())
		p.logger.Error("processor.text.failed", "job_id", job.ID, "path", path, "error", err)
		return nil, err
	}
	text := doc.FullText()
	_ = p.jobs.UpdateProgress(ctx, job.ID, constants.JobStatusTextOK, 60, "text extracted")
	p.logger.Info("processor.text.ok", "job_id", job.ID, "method", method, "pages", pages, "chars", len(text))

	res := &Result{JobID: job.ID, Method: method, Pages: pages, Confidence: conf}

	if p.redaction.IsRedacted(text) {
		res.Redacted = true
		res.Kind = constants.Genetic
		res.ClinicalRows, res.GeneticRows, res.IHCRows = assemble.BuildRedactedRows()
		_ = p.jobs.FinishSuccess(ctx, job.ID, repository.Outcome{
			Status: constants.JobStatusRedacted, Method: method, Pages: pages,
			Confidence: conf, ReportKind: res.Kind, Rows: res.Rows(),
		})
		p.logger.Warn("processor.redacted", "job_id", job.ID, "path", path)
		return res, nil
	}

	res.Kind = parser.Classify(text)
	_ = p.jobs.UpdateProgress(ctx, job.ID, constants.JobStatusTextOK, 75, "classified "+string(res.Kind))

	switch res.Kind {
	case constants.IHC:
		fields := parser.ExtractIHCFields(p.library, text, p.cfg.BiomarkerThreshold)
		res.IHCRows = []entity.ReportRecord{assemble.BuildIHCSheetRow(fields)}
	default:
		fields := parser.ExtractGeneticFields(p.library, text)
		variants := p.variants.Extract(text)
		pdl1 := parser.ExtractPDL1(text)
		res.GeneticRows = []entity.ReportRecord{assemble.BuildGeneticSheetRow(fields)}
		res.ClinicalRows = assemble.BuildClinicalRows(fields, variants, pdl1)
	}

	if err := p.jobs.FinishSuccess(ctx, job.ID, repository.Outcome{
		Status: constants.JobStatusParsed, Method: method, Pages: pages,
		Confidence: conf, ReportKind: res.Kind, Rows: res.Rows(),
	}); err != nil {
		return res, err
	}
	p.logger.Info("processor.parsed", "job_id", job.ID, "kind", res.Kind, "rows", res.Rows())
	return res, nil
}

// acquireText tries the embedded text layer first and falls back to OCR when
// the layer is missing or unusable. OCR output replaces layer text only when
// it is actually better; a usable layer never triggers OCR at all.
func (p *Processor) acquireText(ctx context.Context, path string, jobID uuid.UUID, progress ocr.ProgressFunc) (doc *entity.RawDocument, method string, pages int, conf float32, err error) {
	layer, layerErr := p.textLayer.Extract(ctx, path)
	if layerErr == nil {
		doc = layer.Document()
		method = layer.Method
		pages = layer.Pages
		conf = layer.Confidence
		if !p.quality.IsLowQuality(doc.FullText()) {
			return doc, method, pages, conf, nil
		}
		p.logger.Info("processor.text_layer.low_quality", "job_id", jobID, "chars", len(doc.FullText()))
	} else {
		p.logger.Warn("processor.text_layer.failed", "job_id", jobID, "error", layerErr)
	}

	report := func(pct int, msg string) {
		_ = p.jobs.UpdateProgress(ctx, jobID, constants.JobStatusRunning, pct, msg)
		if progress != nil {
			progress(pct, msg)
		}
	}
	ocrRes, ocrErr := p.ocr.Extract(ctx, path, report)
	if ocrErr == nil {
		ocrDoc := ocrRes.Document()
		if !ocrDoc.Empty() && (doc == nil || doc.Empty() || !p.quality.IsLowQuality(ocrDoc.FullText())) {
			return ocrDoc, ocrRes.Method, ocrRes.Pages, ocrRes.Confidence, nil
		}
	} else {
		p.logger.Warn("processor.ocr.failed", "job_id", jobID, "error", ocrErr)
	}

	// keep the poor text layer if it is all we have
	if doc != nil && !doc.Empty() {
		return doc, method, pages, conf, nil
	}
	return nil, "", 0, 0, common.ErrNoText
}
