package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Call is a derived clinical call for a biomarker.
type Call string

const (
	CallPositive     Call = "positive"
	CallNegative     Call = "negative"
	CallNotAvailable Call = "N/A"
)

// DefaultBiomarkerThreshold is the documented default percent cutoff for a
// positive expression call (FOLR1 convention).
const DefaultBiomarkerThreshold = 75.0

var rePDL1Percent = []*regexp.Regexp{
	regexp.MustCompile(`(?i)PDL?1.*?([0-9]+)\s*%.*?(positive|negative|tumor proportion score)`),
	regexp.MustCompile(`(?i)PD-L1.*?([<>]?\s*[0-9]+)\s*%`),
	regexp.MustCompile(`(?i)22C3.*?([<>]?\s*[0-9]+)\s*%.*?(positive|negative)`),
}

// InterpretBiomarker derives a positive/negative call for the named marker.
// Two-tier fallback, preserved exactly: first a percentage on the marker's
// own line compared against threshold (inclusive at the boundary), then an
// existing textual interpretation next to the marker name, then N/A. The
// percentage must co-occur with the marker on one line so an unrelated
// figure elsewhere in the report cannot override an explicit label.
func InterpretBiomarker(text, marker string, threshold float64) Call {
	quoted := regexp.QuoteMeta(marker)
	percentPatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + quoted + `.*?([0-9.]+)\s*%`),
		regexp.MustCompile(`(?i)` + quoted + `.*?expression.*?([0-9.]+)\s*%`),
	}
	for _, re := range percentPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		pct, ok := ParseAlleleFraction(m[1])
		if !ok {
			continue
		}
		if pct >= threshold {
			return CallPositive
		}
		return CallNegative
	}

	if regexp.MustCompile(`(?i)`+quoted+`.*?positive`).MatchString(text) {
		return CallPositive
	}
	if regexp.MustCompile(`(?i)`+quoted+`.*?negative`).MatchString(text) {
		return CallNegative
	}
	return CallNotAvailable
}

// PDL1Result is a synthesized PD-L1 staining outcome.
type PDL1Result struct {
	Antibody string
	Result   string
}

// ExtractPDL1 looks for a PD-L1 percentage and phrases it as a tumor
// proportion score. Scores under 1%, or written as "<N%", are negative.
// Returns nil when no PD-L1 result is present.
func ExtractPDL1(text string) *PDL1Result {
	for _, re := range rePDL1Percent {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		result := fmt.Sprintf("%s%% Tumor proportion score", raw)
		digits := strings.TrimLeft(raw, "<> ")
		pct, ok := ParseAlleleFraction(digits)
		if strings.Contains(raw, "<") || (ok && pct < 1) {
			result += " (Negative)"
		} else {
			result += " (Positive)"
		}
		return &PDL1Result{
			Antibody: "PDL1 IHC (22C3)",
			Result:   result,
		}
	}
	return nil
}
