package constants

import "strings"

// KnownGenes lists the gene symbols the variant extractor anchors on.
// The set follows the hereditary/solid-tumor panels the source reports use;
// order matters only for deterministic fallback output.
var KnownGenes = []string{
	"RB1", "RET", "NPM1",
	"BRCA1", "BRCA2",
	"MLH1", "MSH2", "MSH6", "PMS2", "EPCAM",
	"APC", "MUTYH", "TP53", "CHEK2", "PALB2", "ATM",
	"CDH1", "STK11", "PTEN", "CD27",
}

var knownGeneSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(KnownGenes))
	for _, g := range KnownGenes {
		m[g] = struct{}{}
	}
	return m
}()

// IsKnownGene reports whether the symbol (case-insensitive) is in the
// anchored gene set.
func IsKnownGene(symbol string) bool {
	_, ok := knownGeneSet[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}
