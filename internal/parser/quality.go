package parser

import (
	"regexp"
	"strings"

	"github.com/clinreports/clinreports-extractor/internal/common"
)

var reSymbolsOnly = regexp.MustCompile(`^[^a-zA-Z0-9\s]{3,}$`)

// QualityAssessor judges whether extracted raw text is usable or whether a
// supplementary OCR pass is warranted (fragmented layout text, garbled
// glyph soup from a scanned page).
type QualityAssessor struct {
	MinChars      int     // texts shorter than this are low quality outright
	ShortLineFrac float64 // fraction of <10-char lines signalling fragmentation
	SuspectFrac   float64 // fraction of suspicious tokens signalling OCR noise
}

// NewQualityAssessor builds an assessor from config.
func NewQualityAssessor(cfg common.HeuristicsConfig) *QualityAssessor {
	return &QualityAssessor{
		MinChars:      cfg.QualityMinChars,
		ShortLineFrac: cfg.QualityShortLineFrac,
		SuspectFrac:   cfg.QualitySuspectFrac,
	}
}

// IsLowQuality reports whether the text is too short, too fragmented, or
// too noisy to trust for field extraction.
func (q *QualityAssessor) IsLowQuality(text string) bool {
	if len(strings.TrimSpace(text)) < q.MinChars {
		return true
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		short := 0
		for _, line := range lines {
			if len(strings.TrimSpace(line)) < 10 {
				short++
			}
		}
		if float64(short)/float64(len(lines)) > q.ShortLineFrac {
			return true
		}
	}

	tokens := strings.Fields(text)
	if len(tokens) > 10 {
		suspicious := 0
		for _, tok := range tokens {
			if isSuspiciousToken(tok) {
				suspicious++
			}
		}
		if float64(suspicious)/float64(len(tokens)) > q.SuspectFrac {
			return true
		}
	}

	return false
}

// isSuspiciousToken flags tokens characteristic of failed extraction:
// stray single characters, implausibly long digit runs, and symbol-only
// fragments.
func isSuspiciousToken(tok string) bool {
	if len(tok) == 1 {
		return true
	}
	if len(tok) > 6 && isAllDigits(tok) {
		return true
	}
	return reSymbolsOnly.MatchString(tok)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
