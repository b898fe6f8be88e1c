package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinreports/clinreports-extractor/constants"
)

const tableReport = `PATIENT REPORT

GENOMIC ALTERATIONS
Gene      Alteration    Location    VAF     ClinVar       TranscriptID    Type                     Pathway
TP53      c.524G>A      exon 5      45.2    Pathogenic    NM_000546.5     Substitution-Missense    p53
BRCA1     c.68_69del    exon 2      32.1    Pathogenic    NM_007294.3     Deletion-Frameshift      HRR

SIGNATURES
`

func TestExtractFromTable(t *testing.T) {
	x := NewVariantExtractor(nil)
	variants := x.Extract(tableReport)
	require.Len(t, variants, 2)

	tp53 := variants[0]
	assert.Equal(t, "TP53", tp53.Gene)
	assert.Equal(t, "c.524G>A", tp53.CDNAChange)
	assert.Equal(t, "exon 5", tp53.Location)
	assert.Equal(t, "45.2", tp53.AlleleFraction)
	assert.Equal(t, "Pathogenic", tp53.Significance)
	assert.Equal(t, "NM_000546.5", tp53.Transcript)
	assert.Equal(t, "Substitution-Missense", tp53.VariantType)
	assert.Equal(t, "DNA", tp53.NucleicAcid)

	brca1 := variants[1]
	assert.Equal(t, "BRCA1", brca1.Gene)
	assert.Equal(t, "c.68_69del", brca1.CDNAChange)
	assert.Equal(t, "Deletion-Frameshift", brca1.VariantType)
}

func TestExtractGeneAnchoredProse(t *testing.T) {
	text := "Analysis detected a BRCA2 alteration NM_000059.4 c.5946del p.Ser1982fs " +
		"at allele fraction 28.4% classified as pathogenic, rs80359550."
	x := NewVariantExtractor(nil)

	variants := x.Extract(text)
	require.Len(t, variants, 1)
	v := variants[0]
	assert.Equal(t, "BRCA2", v.Gene)
	assert.Equal(t, "NM_000059.4", v.Transcript)
	assert.Equal(t, "c.5946del", v.CDNAChange)
	assert.Equal(t, "p.Ser1982fs", v.AAChange)
	assert.Equal(t, "28.4", v.AlleleFraction)
	assert.Equal(t, "rs80359550", v.DbSNPID)
}

func TestExtractCapsAtMaxVariants(t *testing.T) {
	// seven distinct known genes mentioned without any structure
	text := "Findings mention BRCA1 and BRCA2 as well as MLH1, MSH2, MSH6, PMS2 and ATM in the narrative."
	x := NewVariantExtractor(nil)

	variants := x.Extract(text)
	assert.Len(t, variants, constants.MaxVariants)
}

func TestExtractDeduplicatesGenes(t *testing.T) {
	text := "TP53 c.524G>A detected. TP53 was confirmed by orthogonal testing. tp53 again."
	x := NewVariantExtractor(nil)

	variants := x.Extract(text)
	require.Len(t, variants, 1)
	assert.Equal(t, "TP53", variants[0].Gene)
}

func TestExtractNoKnownGenes(t *testing.T) {
	x := NewVariantExtractor(nil)
	assert.Empty(t, x.Extract("No relevant findings in this narrative."))
}

func TestExtractUnsetFieldsCarrySentinel(t *testing.T) {
	x := NewVariantExtractor(nil)
	variants := x.Extract("Only a bare mention of PTEN appears here.")
	require.Len(t, variants, 1)
	assert.Equal(t, constants.NotAvailable, variants[0].Transcript)
	assert.Equal(t, constants.NotAvailable, variants[0].CDNAChange)
	assert.Equal(t, constants.NotAvailable, variants[0].Significance)
}

func TestLocateSectionStopsAtNextHeading(t *testing.T) {
	x := NewVariantExtractor(nil)
	section := x.locateSection(tableReport)
	assert.Contains(t, section, "TP53")
	assert.NotContains(t, section, "SIGNATURES")
}

func TestParseAlleleFraction(t *testing.T) {
	v, ok := ParseAlleleFraction("45.2%")
	require.True(t, ok)
	assert.InDelta(t, 45.2, v, 1e-9)

	_, ok = ParseAlleleFraction("n/a")
	assert.False(t, ok)
}

func TestDetectVariantTypePrecedence(t *testing.T) {
	assert.Equal(t, "Deletion-Frameshift", detectVariantType("a deletion causing frameshift"))
	assert.Equal(t, "Deletion", detectVariantType("an in-frame deletion"))
	assert.Equal(t, "", detectVariantType(strings.ToLower("duplication")))
}
