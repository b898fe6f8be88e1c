package parser

import (
	"strings"

	"github.com/clinreports/clinreports-extractor/constants"
)

// Keyword sets voting for each report shape. Brand names of common IHC
// assays count toward IHC; sequencing/variant-burden vocabulary counts
// toward genetic.
var (
	ihcKeywords = []string{
		"immunohistochemistry", "ihc", "folr1", "pd-l1", "pdl1",
		"22c3", "sp263", "ventana", "dako",
		"staining", "tumor proportion score", "combined positive score",
	}
	geneticKeywords = []string{
		"sequencing", "ngs", "next-generation", "panel",
		"variant", "mutation", "allele", "transcript",
		"microsatellite", "mutational burden", "tmb", "exon",
	}
)

func countOccurrences(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		n += strings.Count(text, kw)
	}
	return n
}

// Classify decides which report shape governs downstream interpretation by
// keyword density. Ties classify as Genetic; the tie-break is arbitrary but
// deterministic and pinned by tests.
func Classify(text string) constants.ReportKind {
	lower := strings.ToLower(text)
	ihc := countOccurrences(lower, ihcKeywords)
	genetic := countOccurrences(lower, geneticKeywords)
	if ihc > genetic {
		return constants.IHC
	}
	return constants.Genetic
}
