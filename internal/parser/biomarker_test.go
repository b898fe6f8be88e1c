package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

func TestInterpretBiomarkerThreshold(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Call
	}{
		{"above threshold", "FOLR1 expression: 85% of tumor cells", CallPositive},
		{"at threshold is positive", "FOLR1 expression: 75%", CallPositive},
		{"just below threshold", "FOLR1 expression: 74.9%", CallNegative},
		{"below threshold", "FOLR1 staining observed in 60%", CallNegative},
		{"textual positive without percent", "FOLR1 result was reported as Positive", CallPositive},
		{"textual negative without percent", "FOLR1 interpretation: negative", CallNegative},
		{"marker absent", "No folate receptor data in this document", CallNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretBiomarker(tt.text, "FOLR1", DefaultBiomarkerThreshold))
		})
	}
}

func TestInterpretBiomarkerCaseInsensitiveMatching(t *testing.T) {
	// the compiled patterns are case-insensitive over the text, so mixed-case
	// report text still resolves against the canonical marker name
	assert.Equal(t, CallPositive, InterpretBiomarker("folr1 expression: 90%", "FOLR1", 75.0))
}

func TestInterpretBiomarkerPercentMustShareLine(t *testing.T) {
	// a percentage on a later line is unrelated to the marker and must not
	// override an explicit textual label
	text := "FOLR1 interpretation: negative\nTumour content: 90%\n"
	assert.Equal(t, CallNegative, InterpretBiomarker(text, "FOLR1", 75.0))

	// without any label the later-line figure still yields no percent call
	assert.Equal(t, CallNotAvailable,
		InterpretBiomarker("FOLR1 was assessed\nTumour content: 90%\n", "FOLR1", 75.0))
}

func TestInterpretBiomarkerCustomThreshold(t *testing.T) {
	text := "FOLR1 expression: 60%"
	assert.Equal(t, CallNegative, InterpretBiomarker(text, "FOLR1", 75.0))
	assert.Equal(t, CallPositive, InterpretBiomarker(text, "FOLR1", 50.0))
}

func TestExtractPDL1(t *testing.T) {
	t.Run("positive score", func(t *testing.T) {
		r := ExtractPDL1("PD-L1 (22C3 pharmDx) tumor proportion score: 80%")
		require.NotNil(t, r)
		assert.Equal(t, "PDL1 IHC (22C3)", r.Antibody)
		assert.Equal(t, "80% Tumor proportion score (Positive)", r.Result)
	})

	t.Run("less-than score is negative", func(t *testing.T) {
		r := ExtractPDL1("PD-L1 expression: <1%")
		require.NotNil(t, r)
		assert.Contains(t, r.Result, "(Negative)")
	})

	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, ExtractPDL1("No immune marker results reported."))
	})
}

func TestExtractIHCFieldsDerivesInterpretation(t *testing.T) {
	lib := patterns.Default(nil)
	text := "Tumour type: High-grade serous carcinoma\nFOLR1 expression: 85% of tumor cells\n"

	fields := ExtractIHCFields(lib, text, DefaultBiomarkerThreshold)
	f := fields.Get(FinalInterpretationField)
	require.True(t, f.Present)
	assert.Equal(t, string(CallPositive), f.Value)
}

func TestExtractIHCFieldsNoMarker(t *testing.T) {
	lib := patterns.Default(nil)
	fields := ExtractIHCFields(lib, "Tumour type: carcinoma\n", DefaultBiomarkerThreshold)
	assert.False(t, fields.Get(FinalInterpretationField).Present)
	assert.Equal(t, "N/A", fields.Value(FinalInterpretationField))
}
