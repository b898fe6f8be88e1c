package entity

import "github.com/clinreports/clinreports-extractor/constants"

// Significance is the fixed clinical-significance vocabulary variants are
// normalized into.
const (
	SignificancePathogenic = "Pathogenic"
	SignificanceBenign     = "Benign"
	SignificanceVUS        = "Variants of Unknown Significance(VUS)"
)

// Variant type labels derived from textual cues.
const (
	VariantDeletionFrameshift   = "Deletion-Frameshift"
	VariantSubstitutionMissense = "Substitution-Missense"
	VariantInsertion            = "Insertion"
	VariantDeletion             = "Deletion"
)

// Variant is one detected genomic alteration. Variants are value objects:
// built fresh per extraction pass and never mutated after the pass that
// created them hands them off.
type Variant struct {
	Gene           string
	NucleicAcid    string
	Transcript     string
	CDNAChange     string
	AAChange       string
	Location       string // exon/intron, e.g. "exon14"
	VariantType    string
	Significance   string
	AlleleFraction string // percent, without the sign
	CopyNumber     string
	Build          string
	Chromosome     string
	DbSNPID        string
	CosmicID       string
	Depth          string
	Genotype       string
	Zygosity       string
}

// NewVariant returns a Variant for the given gene with every other field at
// the sentinel. Sequencing panels report DNA unless stated otherwise.
func NewVariant(gene string) Variant {
	na := constants.NotAvailable
	return Variant{
		Gene:           gene,
		NucleicAcid:    "DNA",
		Transcript:     na,
		CDNAChange:     na,
		AAChange:       na,
		Location:       na,
		VariantType:    na,
		Significance:   na,
		AlleleFraction: na,
		CopyNumber:     na,
		Build:          na,
		Chromosome:     na,
		DbSNPID:        na,
		CosmicID:       na,
		Depth:          na,
		Genotype:       na,
		Zygosity:       na,
	}
}
