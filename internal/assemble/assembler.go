package assemble

import (
	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/entity"
	"github.com/clinreports/clinreports-extractor/internal/parser"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

// setMetadata writes the report-level columns shared by every row of one
// genetic document.
func setMetadata(rec entity.ReportRecord, fields entity.FieldSet) {
	rec.Set("Subject ID", fields.Value(patterns.FieldSubjectID))
	rec.Set("Trial ID", fields.Value(patterns.FieldTrialID))
	rec.Set("Site ID", fields.Value(patterns.FieldSiteID))
	rec.Set("Report Date", fields.Value(patterns.FieldReportingDate))
	rec.Set("Collection Date", fields.Value(patterns.FieldCollectionDate))
	rec.Set("Gender", fields.Value(patterns.FieldGender))
	rec.Set("Disease", fields.Value(patterns.FieldDisease))
	rec.Set("Panel", fields.Value(patterns.FieldPanel))
	rec.Set("Sensitivity (from Report)", fields.Value(patterns.FieldSensitivity))
	rec.Set("Specificity (from Report)", fields.Value(patterns.FieldSpecificity))
	rec.Set("Tumor Fraction (%)", fields.Value(patterns.FieldTumourFraction))
	rec.Set("LOH", fields.Value(patterns.FieldLOH))
	rec.Set("Microsatellite Instability Status", fields.Value(patterns.FieldMSIStatus))
	rec.Set("Tumor Mutational Burden (Muts/Mb)", fields.Value(patterns.FieldTMB))
}

// methodologyOrDefault prefers the resolved methodology; sequencing panels
// that never state one are reported as NGS.
func methodologyOrDefault(fields entity.FieldSet) string {
	if f := fields.Get(patterns.FieldMethodology); f.Present {
		return f.Value
	}
	return "NGS"
}

// BuildClinicalRows emits the combined clinical-trial rows for a
// genetic-classified document: one row per variant, one extra PD-L1 row
// when a biomarker result was found independently, and exactly one
// metadata-only default row when both are empty. The result is never empty.
func BuildClinicalRows(fields entity.FieldSet, variants []entity.Variant, pdl1 *parser.PDL1Result) []entity.ReportRecord {
	var rows []entity.ReportRecord

	for _, v := range variants {
		rec := entity.NewReportRecord(constants.Genetic, ClinicalColumns)
		setMetadata(rec, fields)
		rec.Set("Methodology", methodologyOrDefault(fields))
		rec.Set("Nucleic Acid", v.NucleicAcid)
		rec.Set("Library Prep", fields.Value(patterns.FieldLibraryPrep))
		rec.Set("Platform", fields.Value(patterns.FieldPlatform))
		rec.Set("Gene with co-occurring result", v.Gene)
		rec.Set("Transcript ID", v.Transcript)
		rec.Set("cDNA Change", v.CDNAChange)
		rec.Set("Amino Acid Change", v.AAChange)
		rec.Set("Build", v.Build)
		rec.Set("Chromosome", v.Chromosome)
		rec.Set("Location", v.Location)
		rec.Set("Variant type", v.VariantType)
		rec.Set("Clinical significance", v.Significance)
		rec.Set("Allele Fraction (%)", v.AlleleFraction)
		rec.Set("Copy Number", v.CopyNumber)
		rec.Set("dbSNP ID", v.DbSNPID)
		rec.Set("COSMIC ID", v.CosmicID)
		rec.Set("Depth at Variant", v.Depth)
		rec.Set("Genotype", v.Genotype)
		rec.Set("Zygosity", v.Zygosity)
		rows = append(rows, rec)
	}

	if pdl1 != nil {
		rec := entity.NewReportRecord(constants.Genetic, ClinicalColumns)
		setMetadata(rec, fields)
		rec.Set("Methodology", "IHC")
		rec.Set("IHC-PDL1_Antibody", pdl1.Antibody)
		rec.Set("PDL1 Results", pdl1.Result)
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		rec := entity.NewReportRecord(constants.Genetic, ClinicalColumns)
		setMetadata(rec, fields)
		rec.Set("Methodology", methodologyOrDefault(fields))
		rec.Set("Nucleic Acid", "DNA")
		rows = append(rows, rec)
	}
	return rows
}

// BuildGeneticSheetRow emits the one per-kind sheet row for a genetic
// document (the flat field view, one row per document).
func BuildGeneticSheetRow(fields entity.FieldSet) entity.ReportRecord {
	rec := entity.NewReportRecord(constants.Genetic, GeneticSheetColumns)
	rec.Set(ReportTypeColumn, string(constants.Genetic))
	for _, name := range GeneticSheetColumns[1:] {
		rec.Set(name, fields.Value(name))
	}
	return rec
}

// BuildIHCSheetRow emits exactly one row for an IHC-classified document.
func BuildIHCSheetRow(fields entity.FieldSet) entity.ReportRecord {
	rec := entity.NewReportRecord(constants.IHC, IHCSheetColumns)
	rec.Set(ReportTypeColumn, string(constants.IHC))
	for _, name := range IHCSheetColumns[1:] {
		rec.Set(name, fields.Value(name))
	}
	return rec
}

// BuildRedactedRows returns the uniform redacted record set: every column
// of every sheet carries the redaction sentinel. Field and variant
// extraction are bypassed entirely for redacted documents.
func BuildRedactedRows() (clinical, genetic, ihc []entity.ReportRecord) {
	fill := func(kind constants.ReportKind, columns []string) entity.ReportRecord {
		rec := entity.NewReportRecord(kind, columns)
		for _, c := range columns {
			rec.Set(c, constants.RedactedNotice)
		}
		if rec.Get(ReportTypeColumn) != "" {
			rec.Set(ReportTypeColumn, string(kind))
		}
		return rec
	}
	clinical = []entity.ReportRecord{fill(constants.Genetic, ClinicalColumns)}
	genetic = []entity.ReportRecord{fill(constants.Genetic, GeneticSheetColumns)}
	ihc = []entity.ReportRecord{fill(constants.IHC, IHCSheetColumns)}
	return clinical, genetic, ihc
}
