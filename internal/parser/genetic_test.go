package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

func TestExtractGeneticFieldsCooccurring(t *testing.T) {
	lib := patterns.Default(nil)
	text := "Disease: Ovarian Cancer\n" +
		"RB1 status: No alteration detected\n" +
		"RET: Amplification observed\n"

	fields := ExtractGeneticFields(lib, text)

	rb1 := fields.Get("Gene_cooccurring_RB1")
	require.True(t, rb1.Present)
	assert.Equal(t, "status: No alteration detected", rb1.Value)

	ret := fields.Get("Gene_cooccurring_RET")
	require.True(t, ret.Present)
	assert.Equal(t, "Amplification observed", ret.Value)

	npm1 := fields.Get("Gene_cooccurring_NPM1")
	assert.False(t, npm1.Present)
}

func TestExtractGeneticFieldsCoversAllNames(t *testing.T) {
	lib := patterns.Default(nil)
	fields := ExtractGeneticFields(lib, "")

	for _, name := range GeneticReportFields {
		_, ok := fields[name]
		assert.True(t, ok, name)
	}
	for _, gene := range CooccurringGenes {
		_, ok := fields["Gene_cooccurring_"+gene]
		assert.True(t, ok, gene)
	}
}
