package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinreports/clinreports-extractor/constants"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.ReportKind
	}{
		{
			name: "ihc vocabulary dominates",
			text: "Immunohistochemistry report. FOLR1 staining with Ventana SP263. Tumor proportion score reported.",
			want: constants.IHC,
		},
		{
			name: "sequencing vocabulary dominates",
			text: "Next-generation sequencing panel. Variant allele fraction per transcript; microsatellite stable, TMB low.",
			want: constants.Genetic,
		},
		{
			name: "empty text ties to genetic",
			text: "",
			want: constants.Genetic,
		},
		{
			name: "equal counts tie to genetic",
			text: "staining variant",
			want: constants.Genetic,
		},
		{
			name: "case insensitive",
			text: "IHC IHC IHC DAKO 22C3",
			want: constants.IHC,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}
