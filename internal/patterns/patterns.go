// Package patterns holds the recognition-rule library: ordered regex rules
// per semantic field. Pure configuration data, loaded once at startup and
// never mutated afterwards.
package patterns

import (
	"log/slog"
	"regexp"
)

// Semantic field names for the genetic report shape.
const (
	FieldDisease        = "Disease_name"
	FieldPanel          = "Panel"
	FieldMethodology    = "Methodology"
	FieldNucleicAcid    = "Nucleic_acid"
	FieldLibraryPrep    = "Library_prep"
	FieldPlatform       = "Platform"
	FieldTumourFraction = "Tumour_fraction"
	FieldLOH            = "LOH"
	FieldMSIStatus      = "Microsatellite_Instability_Status"
	FieldTMB            = "Tumour_Mutational_Burden"
	FieldCDNAChange     = "CDNA_change"
	FieldAAChange       = "Amino_acid_change"
	FieldVariantType    = "Variant_type"
	FieldClinicalSig    = "Clinical_significance"
	FieldAlleleFraction = "Allele_Fraction"
	FieldPDL1Antibody   = "IHC_PDL1_Antibody"
	FieldPDL1Result     = "PDL1_result"
	FieldGeneName       = "Gene_name"
	FieldAlteration     = "Alteration_mutation"
	FieldLocationExon   = "Location_exon"
	FieldTranscriptID   = "Transcript_ID"
	FieldClinVarID      = "ClinVar_ID"
	FieldPathogenicity  = "Pathogenicity"
	FieldAssayName      = "Assay_name"
	FieldSensitivity    = "Sensitivity"
	FieldSpecificity    = "Specificity"
	FieldPPA            = "PPA"
	FieldNPA            = "NPA"
	FieldReportingDate  = "Reporting_date"
	FieldSubjectID      = "Subject_ID"
	FieldTrialID        = "Trial_ID"
	FieldSiteID         = "Site_ID"
	FieldCollectionDate = "Collection_date"
	FieldYearOfBirth    = "Year_of_birth"
	FieldGender         = "Gender"
)

// Semantic field names for the IHC report shape.
const (
	FieldTumourType     = "Tumour_type"
	FieldBiopsyLocation = "Biopsy_location"
	FieldTestFolR1      = "IHC_test_name_FolR1"
	FieldTestPDL1       = "IHC_test_name_PDL1"
	FieldClone          = "Clone"
	FieldScorePercent   = "Score_percent_positive"
	FieldCutoffCriteria = "Expression_cutoff_criteria"
)

// Rule is one recognition rule: a matchable expression plus the index of
// the capture group carrying the value.
type Rule struct {
	Expr  string `json:"expr"`
	Group int    `json:"group,omitempty"` // defaults to 1

	re *regexp.Regexp
}

// Regexp returns the compiled expression, nil when the rule failed to
// compile (such rules never match).
func (r *Rule) Regexp() *regexp.Regexp { return r.re }

// GroupIndex returns the capture-group index the rule extracts.
func (r *Rule) GroupIndex() int {
	if r.Group <= 0 {
		return 1
	}
	return r.Group
}

// Library maps field names to their ordered rule lists.
type Library struct {
	fields map[string][]*Rule
}

// Rules returns the ordered rule list for a field (nil when unknown).
func (l *Library) Rules(field string) []*Rule { return l.fields[field] }

// Fields returns the number of fields the library covers.
func (l *Library) Fields() int { return len(l.fields) }

// compile prepares each rule's regexp. Rules are configuration, not user
// input, so a malformed expression is logged and left nil rather than
// aborting the remaining rules for this or any other field.
func compile(fields map[string][]*Rule, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	for field, rules := range fields {
		for _, r := range rules {
			re, err := regexp.Compile("(?ims)" + r.Expr)
			if err != nil {
				logger.Warn("patterns.rule.invalid", "field", field, "expr", r.Expr, "error", err)
				continue
			}
			r.re = re
		}
	}
	return &Library{fields: fields}
}

// CompileRules builds an ad hoc ordered rule list outside the library, for
// callers that derive expressions at runtime (per-gene status fields).
// Malformed expressions are logged and skipped like any library rule.
func CompileRules(logger *slog.Logger, exprs ...string) []*Rule {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]*Rule, 0, len(exprs))
	for _, e := range exprs {
		r := &Rule{Expr: e}
		re, err := regexp.Compile("(?ims)" + e)
		if err != nil {
			logger.Warn("patterns.rule.invalid", "expr", e, "error", err)
		} else {
			r.re = re
		}
		out = append(out, r)
	}
	return out
}

func rules(exprs ...string) []*Rule {
	out := make([]*Rule, len(exprs))
	for i, e := range exprs {
		out[i] = &Rule{Expr: e}
	}
	return out
}

// Default returns the built-in library. Rule order is priority order: the
// first rule with a non-empty capture wins.
func Default(logger *slog.Logger) *Library {
	fields := map[string][]*Rule{
		FieldDisease: rules(
			`Disease[:\s]*([^\n\r]+)`,
			`Diagnosis[:\s]*([^\n\r]+)`,
			`Disease\s*Name[:\s]*([^\n\r]+)`,
			`Primary\s*Disease[:\s]*([^\n\r]+)`,
			`(?:Cancer|Tumor|Tumour)\s*Type[:\s]*([^\n\r]+)`,
		),
		FieldPanel: rules(
			`Panel[:\s]*([^\n\r]+)`,
			`Test\s*Panel[:\s]*([^\n\r]+)`,
			`Genetic\s*Panel[:\s]*([^\n\r]+)`,
			`Assay[:\s]*([^\n\r]+)`,
		),
		FieldMethodology: rules(
			`Methodology[:\s]*([^\n\r]+)`,
			`Method[:\s]*([^\n\r]+)`,
			`Technique[:\s]*([^\n\r]+)`,
			`Technology[:\s]*([^\n\r]+)`,
			`Sequencing\s*Method[:\s]*([^\n\r]+)`,
		),
		FieldNucleicAcid: rules(
			`Nucleic\s*acid[:\s]*([^\n\r]+)`,
			`DNA[:\s]*([^\n\r]+)`,
			`RNA[:\s]*([^\n\r]+)`,
			`Sample\s*Type[:\s]*([^\n\r]+)`,
		),
		FieldLibraryPrep: rules(
			`Library\s*prep[:\s]*([^\n\r]+)`,
			`Library\s*preparation[:\s]*([^\n\r]+)`,
			`Prep\s*method[:\s]*([^\n\r]+)`,
			`Sample\s*preparation[:\s]*([^\n\r]+)`,
		),
		FieldPlatform: rules(
			`Platform[:\s]*([^\n\r]+)`,
			`Sequencer[:\s]*([^\n\r]+)`,
			`Instrument[:\s]*([^\n\r]+)`,
			`System[:\s]*([^\n\r]+)`,
		),
		FieldTumourFraction: rules(
			`Tumour\s*Nuclei[:\s]*([0-9.%]+)`,
			`Tumor\s*Nuclei[:\s]*([0-9.%]+)`,
			`Tumour\s*fraction[:\s]*([0-9.%]+)`,
			`Tumor\s*fraction[:\s]*([0-9.%]+)`,
			`Tumor\s*content[:\s]*([0-9.%]+)`,
			`Neoplastic\s*content[:\s]*([0-9.%]+)`,
		),
		FieldLOH: rules(
			`LOH[:\s]*([^\n\r]+)`,
			`Loss\s*of\s*Heterozygosity[:\s]*([^\n\r]+)`,
			`LOH\s*Status[:\s]*([^\n\r]+)`,
		),
		FieldMSIStatus: rules(
			`Microsatellite\s*Instability[:\s]*([^\n\r]+)`,
			`MSI[:\s]*([^\n\r]+)`,
			`MSI\s*Status[:\s]*([^\n\r]+)`,
			`Microsatellite\s*Status[:\s]*([^\n\r]+)`,
		),
		FieldTMB: rules(
			`Tumour\s*Mutational\s*Burden[:\s]*([^\n\r]+)`,
			`Tumor\s*Mutational\s*Burden[:\s]*([^\n\r]+)`,
			`TMB[:\s]*([^\n\r]+)`,
			`Mutational\s*Load[:\s]*([^\n\r]+)`,
			`Mutation\s*Burden[:\s]*([^\n\r]+)`,
		),
		FieldCDNAChange: rules(
			`c\.([A-Za-z0-9>_\-\+\*]+)`,
			`cDNA[:\s]*c\.([A-Za-z0-9>_\-\+\*]+)`,
			`DNA\s*change[:\s]*c\.([A-Za-z0-9>_\-\+\*]+)`,
		),
		FieldAAChange: rules(
			`p\.([A-Za-z0-9>_\-\+\*]+)`,
			`Protein[:\s]*p\.([A-Za-z0-9>_\-\+\*]+)`,
			`Amino\s*acid[:\s]*p\.([A-Za-z0-9>_\-\+\*]+)`,
		),
		FieldVariantType: rules(
			`Variant\s*type[:\s]*([^\n\r]+)`,
			`Mutation\s*type[:\s]*([^\n\r]+)`,
			`Alteration\s*type[:\s]*([^\n\r]+)`,
		),
		FieldClinicalSig: rules(
			`Clinical\s*significance[:\s]*([^\n\r]+)`,
			`Clinical\s*interpretation[:\s]*([^\n\r]+)`,
			`Pathogenicity[:\s]*([^\n\r]+)`,
			`Significance[:\s]*([^\n\r]+)`,
		),
		FieldAlleleFraction: rules(
			`Allele\s*Fraction[:\s]*([0-9.%]+)`,
			`AF[:\s]*([0-9.%]+)`,
			`Variant\s*Allele\s*Frequency[:\s]*([0-9.%]+)`,
			`VAF[:\s]*([0-9.%]+)`,
		),
		FieldPDL1Antibody: rules(
			`PDL1.*?Antibody[:\s]*([^\n\r]+)`,
			`PD-L1.*?Antibody[:\s]*([^\n\r]+)`,
			`PDL1.*?Clone[:\s]*([^\n\r]+)`,
			`PD-L1.*?Clone[:\s]*([^\n\r]+)`,
		),
		FieldPDL1Result: rules(
			`PDL1[:\s]*([^\n\r]+)`,
			`PD-L1[:\s]*([^\n\r]+)`,
			`PDL1\s*result[:\s]*([^\n\r]+)`,
			`PD-L1\s*result[:\s]*([^\n\r]+)`,
			`PDL1\s*expression[:\s]*([^\n\r]+)`,
		),
		FieldGeneName: rules(
			`Gene[:\s]*([A-Z0-9]+)`,
			`Gene\s*Name[:\s]*([A-Z0-9]+)`,
			`Target\s*Gene[:\s]*([A-Z0-9]+)`,
		),
		FieldAlteration: rules(
			`Alteration[:\s]*([^\n\r]+)`,
			`Mutation[:\s]*([^\n\r]+)`,
			`Variant[:\s]*([^\n\r]+)`,
			`Change[:\s]*([^\n\r]+)`,
		),
		FieldLocationExon: rules(
			`exon[:\s]*([0-9]+)`,
			`exon\s*([0-9]+)`,
			`intron[:\s]*([0-9]+)`,
		),
		FieldTranscriptID: rules(
			`Transcript[:\s]*([^\n\r]+)`,
			`Transcript\s*ID[:\s]*([^\n\r]+)`,
			`RefSeq[:\s]*([^\n\r]+)`,
			`(NM_[0-9]+\.[0-9]+)`,
		),
		FieldClinVarID: rules(
			`ClinVar[:\s]*([^\n\r]+)`,
			`ClinVar\s*ID[:\s]*([^\n\r]+)`,
			`(RCV[0-9]+)`,
			`(VCV[0-9]+)`,
		),
		FieldPathogenicity: rules(
			`Pathogenic[:\s]*([^\n\r]+)`,
			`Pathogenicity[:\s]*([^\n\r]+)`,
			`Classification[:\s]*([^\n\r]+)`,
			`Interpretation[:\s]*([^\n\r]+)`,
		),
		FieldAssayName: rules(
			`Assay[:\s]*([^\n\r]+)`,
			`Test[:\s]*([^\n\r]+)`,
			`Method[:\s]*([^\n\r]+)`,
		),
		FieldSensitivity: rules(
			`Sensitivity[:\s]*([0-9.%]+)`,
			`Sens[:\s]*([0-9.%]+)`,
		),
		FieldSpecificity: rules(
			`Specificity[:\s]*([0-9.%]+)`,
			`Spec[:\s]*([0-9.%]+)`,
		),
		FieldPPA: rules(
			`PPA[:\s]*([0-9.%]+)`,
			`Positive\s*Predictive\s*Accuracy[:\s]*([0-9.%]+)`,
		),
		FieldNPA: rules(
			`NPA[:\s]*([0-9.%]+)`,
			`Negative\s*Predictive\s*Accuracy[:\s]*([0-9.%]+)`,
		),
		FieldReportingDate: rules(
			`Report(?:ing)?\s*date[:\s]*([^\n\r]+)`,
			`Date[:\s]*([^\n\r]+)`,
			`Date\s*of\s*Report[:\s]*([^\n\r]+)`,
		),
		FieldSubjectID: rules(
			`Subject\s*ID[:\s]*([^\n\r]+)`,
			`Patient\s*ID[:\s]*([^\n\r]+)`,
			`ID[:\s]*([^\n\r]+)`,
			`Sample\s*ID[:\s]*([^\n\r]+)`,
		),
		FieldTrialID: rules(
			`Trial\s*ID[:\s]*([^\n\r]+)`,
			`Study\s*ID[:\s]*([^\n\r]+)`,
		),
		FieldSiteID: rules(
			`Site\s*ID[:\s]*([^\n\r]+)`,
			`Site[:\s]*([^\n\r]+)`,
		),
		FieldCollectionDate: rules(
			`Collection\s*Date[:\s]*([^\n\r]+)`,
			`Sample\s*Date[:\s]*([^\n\r]+)`,
		),
		FieldYearOfBirth: rules(
			`Year\s*of\s*birth[:\s]*([0-9]{4})`,
			`Birth\s*year[:\s]*([0-9]{4})`,
			`DOB[:\s]*([0-9]{4})`,
			`Born[:\s]*([0-9]{4})`,
		),
		FieldGender: rules(
			`Gender[:\s]*([^\n\r]+)`,
			`Sex[:\s]*([^\n\r]+)`,
			`\b(Male|Female)\b`,
		),

		// IHC shape.
		FieldTumourType: rules(
			`Tumour\s*type[:\s]+([^\n]+)`,
			`Tumor\s*type[:\s]+([^\n]+)`,
		),
		FieldBiopsyLocation: rules(
			`Biopsy\s*location[:\s]+([^\n]+)`,
		),
		FieldTestFolR1: rules(
			`FolR1[:\s]+([^\n]+)`,
		),
		FieldTestPDL1: rules(
			`PDL1[:\s]+([^\n]+)`,
		),
		FieldClone: rules(
			`Clone[:\s]+([^\n]+)`,
		),
		FieldScorePercent: rules(
			`([0-9.]+)%.*?(?:positive|viable|tumor|tumour).*?cells`,
		),
		FieldCutoffCriteria: rules(
			`≥([0-9.]+)%.*?=.*?positive`,
			`([0-9.]+)%.*?cut-?off`,
		),
	}
	return compile(fields, logger)
}
