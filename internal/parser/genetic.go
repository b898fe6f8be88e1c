package parser

import (
	"github.com/clinreports/clinreports-extractor/internal/entity"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

// CooccurringGenes are the genes whose standalone status lines get their
// own report-level fields, independent of the variant table.
var CooccurringGenes = []string{"RB1", "RET", "NPM1", "CD27"}

// GeneticReportFields lists every library field resolved for a
// genetic-classified report.
var GeneticReportFields = []string{
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
	patterns.FieldTrialID,
	patterns.FieldSiteID,
	patterns.FieldCollectionDate,
	patterns.FieldYearOfBirth,
	patterns.FieldGender,
}

// ExtractGeneticFields resolves the full genetic field set plus the
// per-gene co-occurring status fields.
func ExtractGeneticFields(lib *patterns.Library, text string) entity.FieldSet {
	fields := ResolveFields(lib, text, GeneticReportFields...)
	for _, gene := range CooccurringGenes {
		name := "Gene_cooccurring_" + gene
		f := Resolve(text, patterns.CompileRules(nil,
			gene+`[:\s]*([^\n\r]+)`,
			gene+`\s*gene[:\s]*([^\n\r]+)`,
			gene+`\s*status[:\s]*([^\n\r]+)`,
		))
		f.Name = name
		fields[name] = f
	}
	return fields
}
