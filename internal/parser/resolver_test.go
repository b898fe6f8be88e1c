package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

func TestResolveFirstMatchWins(t *testing.T) {
	rules := patterns.CompileRules(nil,
		`Diagnosis[:\s]*([^\n\r]+)`,
		`Disease[:\s]*([^\n\r]+)`,
	)
	text := "Disease: Ovarian Cancer\nDiagnosis: Serous Carcinoma\n"

	f := Resolve(text, rules)
	require.True(t, f.Present)
	assert.Equal(t, "Serous Carcinoma", f.Value)
}

func TestResolveCleansCapturedValue(t *testing.T) {
	rules := patterns.CompileRules(nil, `Panel[:\s]*([^\r]+?)\n\n`)
	text := "Panel: Hereditary\nCancer   Panel\n\nNext section"

	f := Resolve(text, rules)
	require.True(t, f.Present)
	assert.Equal(t, "Hereditary Cancer Panel", f.Value)
}

func TestResolveSkipsEmptyCapture(t *testing.T) {
	// first rule matches but captures only whitespace; second rule should win
	rules := patterns.CompileRules(nil,
		`Gender:(\s*)`,
		`Sex[:\s]*([^\n\r]+)`,
	)
	text := "Gender: \nSex: Female\n"

	f := Resolve(text, rules)
	require.True(t, f.Present)
	assert.Equal(t, "Female", f.Value)
}

func TestResolveAbsentField(t *testing.T) {
	rules := patterns.CompileRules(nil, `Platform[:\s]*([^\n\r]+)`)

	f := Resolve("no such label anywhere", rules)
	assert.False(t, f.Present)
	assert.Empty(t, f.Value)
}

func TestResolveIsIdempotent(t *testing.T) {
	lib := patterns.Default(nil)
	text := "Disease: Breast Cancer\nPanel: BRCA Panel\n"

	first := ResolveFields(lib, text, patterns.FieldDisease, patterns.FieldPanel)
	second := ResolveFields(lib, text, patterns.FieldDisease, patterns.FieldPanel)
	assert.Equal(t, first, second)
}

func TestResolveFieldsAlwaysReturnsRequestedNames(t *testing.T) {
	lib := patterns.Default(nil)
	fields := ResolveFields(lib, "", patterns.FieldDisease, patterns.FieldGender)

	require.Len(t, fields, 2)
	assert.False(t, fields[patterns.FieldDisease].Present)
	assert.Equal(t, "N/A", fields.Value(patterns.FieldDisease))
}
