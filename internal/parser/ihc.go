package parser

import (
	"github.com/clinreports/clinreports-extractor/internal/entity"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

// IHCReportFields lists every library field resolved for an IHC-classified
// report.
var IHCReportFields = []string{
	patterns.FieldDisease,
	patterns.FieldPanel,
	patterns.FieldTumourType,
	patterns.FieldBiopsyLocation,
	patterns.FieldTestFolR1,
	patterns.FieldTestPDL1,
	patterns.FieldClone,
	patterns.FieldScorePercent,
	patterns.FieldCutoffCriteria,
	patterns.FieldReportingDate,
	patterns.FieldSubjectID,
	patterns.FieldYearOfBirth,
	patterns.FieldGender,
}

// FinalInterpretationField carries the derived FOLR1 call in IHC output.
const FinalInterpretationField = "Final_interpretation"

// ExtractIHCFields resolves the IHC field set and derives the FOLR1
// interpretation via the threshold rule.
func ExtractIHCFields(lib *patterns.Library, text string, biomarkerThreshold float64) entity.FieldSet {
	fields := ResolveFields(lib, text, IHCReportFields...)

	call := InterpretBiomarker(text, "FOLR1", biomarkerThreshold)
	fields[FinalInterpretationField] = entity.ExtractedField{
		Name:    FinalInterpretationField,
		Value:   string(call),
		Present: call != CallNotAvailable,
	}
	return fields
}
