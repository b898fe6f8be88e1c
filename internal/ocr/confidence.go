package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish = regexp.MustCompile(`\b(19|20)\d{2}[-/.]\d{1,2}[-/.]\d{1,2}\b|\b\d{1,2}[-/ ](jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	reClinic  = regexp.MustCompile(`\b(patient|subject|specimen|diagnosis|pathology|report|gene|variant|staining|biopsy)\b`)
	reIdent   = regexp.MustCompile(`\b[a-z]{2}-\d{3,}\b|\bnm_\d+\b|\brs\d+\b`)
)

// naive heuristic confidence based on decoded text characteristics
func heuristicConfidence(txt string) float32 {
	// boost if we see common clinical report artifacts
	// (date-ish, report vocabulary, identifier-ish). Each adds ~0.15-0.2.
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reDateish.MatchString(txtL) {
		score += 0.2
	}
	if reClinic.MatchString(txtL) {
		score += 0.2
	}
	if reIdent.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 200 {
		score += 0.15
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
