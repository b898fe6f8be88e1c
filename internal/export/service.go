// Package export writes assembled report records into the three-sheet XLSX
// workbook consumed downstream (Genetic_Report, IHC_Report, Clinical_Data).
package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/clinreports/clinreports-extractor/internal/assemble"
	"github.com/clinreports/clinreports-extractor/internal/entity"
)

const (
	SheetGenetic  = "Genetic_Report"
	SheetIHC      = "IHC_Report"
	SheetClinical = "Clinical_Data"
)

// Workbook accumulates rows across documents and renders the workbook once.
type Workbook struct {
	genetic  []entity.ReportRecord
	ihc      []entity.ReportRecord
	clinical []entity.ReportRecord
	logger   *slog.Logger
}

func NewWorkbook(logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workbook{logger: logger}
}

func (w *Workbook) AddGenetic(rows ...entity.ReportRecord)  { w.genetic = append(w.genetic, rows...) }
func (w *Workbook) AddIHC(rows ...entity.ReportRecord)      { w.ihc = append(w.ihc, rows...) }
func (w *Workbook) AddClinical(rows ...entity.ReportRecord) { w.clinical = append(w.clinical, rows...) }

// Rows returns the accumulated row counts per sheet.
func (w *Workbook) Rows() (genetic, ihc, clinical int) {
	return len(w.genetic), len(w.ihc), len(w.clinical)
}

// Bytes renders the workbook. Column order follows the declared schemas;
// every sheet gets its header row even when empty.
func (w *Workbook) Bytes() ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	type sheet struct {
		name    string
		columns []string
		rows    []entity.ReportRecord
	}
	sheets := []sheet{
		{SheetGenetic, assemble.GeneticSheetColumns, w.genetic},
		{SheetIHC, assemble.IHCSheetColumns, w.ihc},
		{SheetClinical, assemble.ClinicalColumns, w.clinical},
	}

	for _, s := range sheets {
		if index, _ := f.GetSheetIndex(s.name); index == -1 {
			if _, err := f.NewSheet(s.name); err != nil {
				return nil, err
			}
		}
		if err := writeSheet(f, s.name, s.columns, s.rows); err != nil {
			return nil, err
		}
	}

	// drop the default sheet created by excelize
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}
	if index, _ := f.GetSheetIndex(SheetGenetic); index != -1 {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.xlsx.ok",
		"genetic_rows", len(w.genetic),
		"ihc_rows", len(w.ihc),
		"clinical_rows", len(w.clinical),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile renders the workbook and writes it to path.
func (w *Workbook) WriteFile(path string) error {
	b, err := w.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows []entity.ReportRecord) error {
	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, rec := range rows {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, rec.Get(col)); err != nil {
				return err
			}
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 16)
	if len(columns) > 1 {
		last, err := excelize.ColumnNumberToName(len(columns))
		if err == nil {
			_ = f.SetColWidth(sheet, "B", last, 22)
		}
	}
	return nil
}
