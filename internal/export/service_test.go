package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/assemble"
	"github.com/clinreports/clinreports-extractor/internal/entity"
)

func TestWorkbookSheetsAndHeaders(t *testing.T) {
	wb := NewWorkbook(nil)
	b, err := wb.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	for _, name := range []string{SheetGenetic, SheetIHC, SheetClinical} {
		idx, err := f.GetSheetIndex(name)
		require.NoError(t, err)
		assert.NotEqual(t, -1, idx, name)
	}
	idx, err := f.GetSheetIndex("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	rows, err := f.GetRows(SheetClinical)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, assemble.ClinicalColumns, rows[0])
}

func TestWorkbookWritesRowsInColumnOrder(t *testing.T) {
	rec := entity.NewReportRecord(constants.Genetic, assemble.ClinicalColumns)
	rec.Set("Subject ID", "SUBJ-007")
	rec.Set("Disease", "Ovarian Cancer")
	rec.Set("Allele Fraction (%)", "45.2")

	wb := NewWorkbook(nil)
	wb.AddClinical(rec)

	b, err := wb.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetClinical)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byColumn := map[string]string{}
	for i, header := range rows[0] {
		if i < len(rows[1]) {
			byColumn[header] = rows[1][i]
		}
	}
	assert.Equal(t, "SUBJ-007", byColumn["Subject ID"])
	assert.Equal(t, "Ovarian Cancer", byColumn["Disease"])
	assert.Equal(t, "45.2", byColumn["Allele Fraction (%)"])
	assert.Equal(t, constants.NotAvailable, byColumn["Genotype"])
}

func TestWorkbookRowCounts(t *testing.T) {
	wb := NewWorkbook(nil)
	wb.AddGenetic(entity.NewReportRecord(constants.Genetic, assemble.GeneticSheetColumns))
	wb.AddIHC(entity.NewReportRecord(constants.IHC, assemble.IHCSheetColumns))
	wb.AddClinical(
		entity.NewReportRecord(constants.Genetic, assemble.ClinicalColumns),
		entity.NewReportRecord(constants.Genetic, assemble.ClinicalColumns),
	)

	g, i, c := wb.Rows()
	assert.Equal(t, 1, g)
	assert.Equal(t, 1, i)
	assert.Equal(t, 2, c)
}
