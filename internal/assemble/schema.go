// Package assemble turns resolved fields, variants and biomarker calls into
// fixed-schema spreadsheet rows. The schema is declared once here; a
// defaulting pass guarantees every declared column appears in every row.
package assemble

import "github.com/clinreports/clinreports-extractor/internal/patterns"

// ReportTypeColumn tags each row on the per-kind sheets.
const ReportTypeColumn = "Report_Type"

// ClinicalColumns is the combined clinical-trial output schema, in declared
// order. Column order is part of the sink contract and must not change
// between rows of one export.
var ClinicalColumns = []string{
	"Subject ID", "Trial ID", "Site ID", "Report Date", "Collection Date",
	"Gender", "Disease", "Panel",
	"Sensitivity (from Report)", "Specificity (from Report)",
	"Methodology", "Nucleic Acid", "Library Prep", "Platform",
	"Tumor Fraction (%)", "LOH", "Microsatellite Instability Status",
	"Tumor Mutational Burden (Muts/Mb)",
	"Gene with co-occurring result", "Transcript ID", "cDNA Change",
	"Amino Acid Change", "Build", "Chromosome", "Location", "Variant type",
	"Clinical significance", "Allele Fraction (%)", "Copy Number",
	"Gene Expression Qualitative", "dbSNP ID", "COSMIC ID",
	"Depth at Variant", "Genotype", "Zygosity", "Type of Region Analyzed",
	"IHC-PDL1_Antibody", "PDL1 Results",
}

// GeneticSheetColumns is the per-kind sheet layout for genetic reports:
// the resolved field names in resolution order, prefixed by the type tag.
var GeneticSheetColumns = append([]string{ReportTypeColumn},
	append(append([]string{}, geneticFieldOrder...), cooccurringColumns...)...)

var geneticFieldOrder = []string{
	patterns.FieldDisease,
	patterns.FieldPanel,
	patterns.FieldMethodology,
	patterns.FieldNucleicAcid,
	patterns.FieldLibraryPrep,
	patterns.FieldPlatform,
	patterns.FieldTumourFraction,
	patterns.FieldLOH,
	patterns.FieldMSIStatus,
	patterns.FieldTMB,
	patterns.FieldCDNAChange,
	patterns.FieldAAChange,
	patterns.FieldVariantType,
	patterns.FieldClinicalSig,
	patterns.FieldAlleleFraction,
	patterns.FieldPDL1Antibody,
	patterns.FieldPDL1Result,
	patterns.FieldGeneName,
	patterns.FieldAlteration,
	patterns.FieldLocationExon,
	patterns.FieldTranscriptID,
	patterns.FieldClinVarID,
	patterns.FieldPathogenicity,
	patterns.FieldAssayName,
	patterns.FieldSensitivity,
	patterns.FieldSpecificity,
	patterns.FieldPPA,
	patterns.FieldNPA,
	patterns.FieldReportingDate,
	patterns.FieldSubjectID,
	patterns.FieldYearOfBirth,
	patterns.FieldGender,
}

var cooccurringColumns = []string{
	"Gene_cooccurring_RB1",
	"Gene_cooccurring_RET",
	"Gene_cooccurring_NPM1",
	"Gene_cooccurring_CD27",
}

// IHCSheetColumns is the per-kind sheet layout for IHC reports.
var IHCSheetColumns = []string{
	ReportTypeColumn,
	patterns.FieldDisease,
	patterns.FieldPanel,
	patterns.FieldTumourType,
	patterns.FieldBiopsyLocation,
	patterns.FieldTestFolR1,
	patterns.FieldTestPDL1,
	patterns.FieldClone,
	patterns.FieldScorePercent,
	patterns.FieldCutoffCriteria,
	"Final_interpretation",
	patterns.FieldReportingDate,
	patterns.FieldSubjectID,
	patterns.FieldYearOfBirth,
	patterns.FieldGender,
}
