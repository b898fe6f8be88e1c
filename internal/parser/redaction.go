package parser

import (
	"regexp"
	"strings"

	"github.com/clinreports/clinreports-extractor/internal/common"
)

var (
	redactionMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)REDACTED`),
		regexp.MustCompile(`(?i)\[PROTECTED\]`),
		regexp.MustCompile(`(?i)\[CONFIDENTIAL\]`),
	}
	// Placeholder shape anonymizers substitute for identifiers.
	rePlaceholder = regexp.MustCompile(`^\d{3}-\d{3}$`)
)

// RedactionDetector is the heuristic gate for anonymized documents.
// Best-effort only: it is tuned to avoid false positives on long legitimate
// reports that happen to mention "confidential" once.
type RedactionDetector struct {
	MinChars        int     // below this, too short to judge
	MarkerCount     int     // distinct marker matches required
	MaxTokens       int     // marker path fires only under this many tokens
	PlaceholderFrac float64 // placeholder-token fraction that forces redacted
}

// NewRedactionDetector builds a detector from config.
func NewRedactionDetector(cfg common.HeuristicsConfig) *RedactionDetector {
	return &RedactionDetector{
		MinChars:        cfg.RedactionMinChars,
		MarkerCount:     cfg.RedactionMarkerCount,
		MaxTokens:       cfg.RedactionMaxTokens,
		PlaceholderFrac: cfg.RedactionPlaceholderFrac,
	}
}

// IsRedacted reports whether the text looks like an anonymized placeholder
// document. A document dominated by NNN-NNN placeholder tokens is redacted
// regardless of marker count; otherwise markers only count on short texts.
func (d *RedactionDetector) IsRedacted(text string) bool {
	if len(strings.TrimSpace(text)) < d.MinChars {
		return false
	}

	markers := 0
	for _, re := range redactionMarkers {
		if re.MatchString(text) {
			markers++
		}
	}

	tokens := strings.Fields(text)
	if len(tokens) > 50 {
		placeholders := 0
		for _, tok := range tokens {
			if rePlaceholder.MatchString(tok) {
				placeholders++
			}
		}
		if float64(placeholders)/float64(len(tokens)) > d.PlaceholderFrac {
			return true
		}
	}

	return markers >= d.MarkerCount && len(tokens) < d.MaxTokens
}
