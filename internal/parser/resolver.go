// Package parser implements the extraction core: field resolution, report
// classification, redaction and quality gates, variant extraction and
// biomarker interpretation. Everything here is pure computation over raw
// text; it degrades to the "N/A" sentinel instead of failing.
package parser

import (
	"regexp"
	"strings"

	"github.com/clinreports/clinreports-extractor/internal/entity"
	"github.com/clinreports/clinreports-extractor/internal/patterns"
)

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// cleanValue collapses whitespace runs and strips newlines from a captured
// value, mirroring how report lines are flattened into spreadsheet cells.
func cleanValue(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(reWhitespaceRun.ReplaceAllString(s, " "))
}

// Resolve applies the rules in order and returns the first non-empty
// captured value, cleaned. A capture that is empty after cleanup does not
// stop resolution; the next rule is tried. Rules that failed to compile at
// load time are skipped. Deterministic and side-effect free.
func Resolve(text string, rules []*patterns.Rule) entity.ExtractedField {
	for _, rule := range rules {
		re := rule.Regexp()
		if re == nil {
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		idx := rule.GroupIndex()
		if idx >= len(m) {
			continue
		}
		if v := cleanValue(m[idx]); v != "" {
			return entity.ExtractedField{Value: v, Present: true}
		}
	}
	return entity.ExtractedField{}
}

// ResolveField resolves one named field from the library.
func ResolveField(lib *patterns.Library, text, field string) entity.ExtractedField {
	f := Resolve(text, lib.Rules(field))
	f.Name = field
	return f
}

// ResolveFields resolves each named field, returning a FieldSet in which
// every requested name appears (absent fields carry Present=false).
func ResolveFields(lib *patterns.Library, text string, fields ...string) entity.FieldSet {
	out := make(entity.FieldSet, len(fields))
	for _, name := range fields {
		out[name] = ResolveField(lib, text, name)
	}
	return out
}
