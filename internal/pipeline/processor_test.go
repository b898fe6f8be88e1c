package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/common"
	"github.com/clinreports/clinreports-extractor/internal/extract"
	"github.com/clinreports/clinreports-extractor/internal/ocr"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

type stubTextLayer struct {
	text string
	err  error
}

func (s stubTextLayer) Extract(context.Context, string) (extract.TextExtractionResult, error) {
	if s.err != nil {
		return extract.TextExtractionResult{}, s.err
	}
	return extract.TextExtractionResult{
		PageTexts: map[int]string{1: s.text},
		Pages:     1,
		Method:    ocr.MethodPDFText,
	}, nil
}

type stubOCR struct {
	text   string
	err    error
	called *bool
}

func (s stubOCR) Extract(_ context.Context, _ string, fn ocr.ProgressFunc) (extract.TextExtractionResult, error) {
	if s.called != nil {
		*s.called = true
	}
	if fn != nil {
		fn(50, "ocr page 1/1")
	}
	if s.err != nil {
		return extract.TextExtractionResult{}, s.err
	}
	return extract.TextExtractionResult{
		PageTexts: map[int]string{1: s.text},
		Pages:     1,
		Method:    ocr.MethodPDFOCR,
	}, nil
}

func heuristics() common.HeuristicsConfig {
	return common.HeuristicsConfig{
		RedactionMinChars:        100,
		RedactionMarkerCount:     2,
		RedactionMaxTokens:       200,
		RedactionPlaceholderFrac: 0.5,
		QualityMinChars:          50,
		QualityShortLineFrac:     0.8,
		QualitySuspectFrac:       0.3,
		BiomarkerThreshold:       75.0,
	}
}

func tempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o600))
	return path
}

func newTestProcessor(tl extract.TextLayerExtractor, ox extract.OCRExtractor) *Processor {
	return NewProcessor(tl, ox, nil, patterns.Default(nil), heuristics(), nil)
}

const geneticReportText = `Disease: Ovarian Cancer
Panel: Hereditary Cancer Panel
Methodology: Next-generation sequencing
Subject ID: SUBJ-001
The sequencing analysis detected a variant in BRCA1 NM_007294.3 c.68_69del p.Glu23fs
at allele fraction 32.1% classified as pathogenic. Microsatellite status stable.
Tumor mutational burden within normal limits for this panel.
`

func TestProcessGeneticReport(t *testing.T) {
	ocrCalled := false
	p := newTestProcessor(
		stubTextLayer{text: geneticReportText},
		stubOCR{text: "unused", called: &ocrCalled},
	)

	res, err := p.ProcessFile(context.Background(), tempPDF(t), nil)
	require.NoError(t, err)

	assert.Equal(t, constants.Genetic, res.Kind)
	assert.Equal(t, ocr.MethodPDFText, res.Method)
	assert.False(t, res.Redacted)
	assert.False(t, ocrCalled, "usable text layer must not trigger ocr")

	require.Len(t, res.GeneticRows, 1)
	require.NotEmpty(t, res.ClinicalRows)
	assert.Equal(t, "SUBJ-001", res.ClinicalRows[0].Get("Subject ID"))
	assert.Equal(t, "BRCA1", res.ClinicalRows[0].Get("Gene with co-occurring result"))
	assert.Empty(t, res.IHCRows)
}

func TestProcessIHCReport(t *testing.T) {
	text := `Tumour type: High-grade serous carcinoma
Immunohistochemistry staining with Ventana assay, DAKO protocols.
IHC analysis: FOLR1 expression: 85% of tumor cells with membrane staining.
Combined positive score reported per protocol for this staining run.
`
	p := newTestProcessor(stubTextLayer{text: text}, stubOCR{text: "unused"})

	res, err := p.ProcessFile(context.Background(), tempPDF(t), nil)
	require.NoError(t, err)

	assert.Equal(t, constants.IHC, res.Kind)
	require.Len(t, res.IHCRows, 1)
	assert.Equal(t, "positive", res.IHCRows[0].Get("Final_interpretation"))
	assert.Empty(t, res.GeneticRows)
	assert.Empty(t, res.ClinicalRows)
}

func TestProcessRedactedShortCircuits(t *testing.T) {
	text := "This report is REDACTED for privacy. Content marked [PROTECTED] throughout. " +
		strings.Repeat("filler ", 10)
	p := newTestProcessor(stubTextLayer{text: text}, stubOCR{text: "unused"})

	res, err := p.ProcessFile(context.Background(), tempPDF(t), nil)
	require.NoError(t, err)

	assert.True(t, res.Redacted)
	require.Len(t, res.ClinicalRows, 1)
	assert.Equal(t, constants.RedactedNotice, res.ClinicalRows[0].Get("Disease"))
	require.Len(t, res.GeneticRows, 1)
	require.Len(t, res.IHCRows, 1)
}

func TestProcessFallsBackToOCR(t *testing.T) {
	ocrCalled := false
	p := newTestProcessor(
		stubTextLayer{text: ""},
		stubOCR{text: geneticReportText, called: &ocrCalled},
	)

	res, err := p.ProcessFile(context.Background(), tempPDF(t), nil)
	require.NoError(t, err)
	assert.True(t, ocrCalled)
	assert.Equal(t, ocr.MethodPDFOCR, res.Method)
	assert.Equal(t, constants.Genetic, res.Kind)
}

func TestProcessNoTextAnywhere(t *testing.T) {
	p := newTestProcessor(stubTextLayer{text: ""}, stubOCR{text: ""})

	_, err := p.ProcessFile(context.Background(), tempPDF(t), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoText)
}

func TestProcessKeepsPoorTextWhenOCRFails(t *testing.T) {
	poor := "a short fragment"
	p := newTestProcessor(
		stubTextLayer{text: poor},
		stubOCR{err: assert.AnError},
	)

	res, err := p.ProcessFile(context.Background(), tempPDF(t), nil)
	require.NoError(t, err)
	assert.Equal(t, ocr.MethodPDFText, res.Method)
	require.NotEmpty(t, res.ClinicalRows)
}

func TestProcessMissingFile(t *testing.T) {
	p := newTestProcessor(stubTextLayer{text: geneticReportText}, stubOCR{})
	_, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), nil)
	assert.Error(t, err)
}
