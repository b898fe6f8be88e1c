package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinreports/clinreports-extractor/internal/common"
)

func defaultHeuristics() common.HeuristicsConfig {
	return common.HeuristicsConfig{
		RedactionMinChars:        100,
		RedactionMarkerCount:     2,
		RedactionMaxTokens:       200,
		RedactionPlaceholderFrac: 0.5,
		QualityMinChars:          50,
		QualityShortLineFrac:     0.8,
		QualitySuspectFrac:       0.3,
		BiomarkerThreshold:       75.0,
	}
}

func TestIsRedactedTooShortToJudge(t *testing.T) {
	d := NewRedactionDetector(defaultHeuristics())
	assert.False(t, d.IsRedacted("REDACTED [PROTECTED]"))
}

func TestIsRedactedMarkerPath(t *testing.T) {
	d := NewRedactionDetector(defaultHeuristics())

	short := "Subject report REDACTED for privacy. Remaining content [PROTECTED] pending review. " +
		strings.Repeat("filler ", 10)
	assert.True(t, d.IsRedacted(short))

	// one marker is not enough
	oneMarker := "Subject report REDACTED for privacy. " + strings.Repeat("filler ", 20)
	assert.False(t, d.IsRedacted(oneMarker))

	// markers inside a long legitimate report do not fire
	long := "REDACTED [PROTECTED] " + strings.Repeat("word ", 300)
	assert.False(t, d.IsRedacted(long))
}

func TestIsRedactedPlaceholderPath(t *testing.T) {
	d := NewRedactionDetector(defaultHeuristics())

	// document dominated by NNN-NNN placeholder tokens, no markers at all
	placeholders := strings.Repeat("123-456 ", 300)
	assert.True(t, d.IsRedacted(placeholders))

	// same tokens diluted below the fraction
	diluted := strings.Repeat("123-456 word word ", 100)
	assert.False(t, d.IsRedacted(diluted))
}
