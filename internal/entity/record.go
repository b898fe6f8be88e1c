package entity

import "github.com/clinreports/clinreports-extractor/constants"

// ExtractedField is one resolved semantic field. Present distinguishes a
// genuinely absent field from report text that happens to equal the
// sentinel string.
type ExtractedField struct {
	Name    string
	Value   string
	Present bool
}

// OrDefault returns the value when present, otherwise the sentinel.
func (f ExtractedField) OrDefault() string {
	if f.Present {
		return f.Value
	}
	return constants.NotAvailable
}

// FieldSet maps field names to resolved values for one document.
type FieldSet map[string]ExtractedField

// Get returns the field for name, absent when never resolved.
func (s FieldSet) Get(name string) ExtractedField {
	if f, ok := s[name]; ok {
		return f
	}
	return ExtractedField{Name: name}
}

// Value returns the resolved value for name or the sentinel.
func (s FieldSet) Value(name string) string { return s.Get(name).OrDefault() }

// ReportRecord is one output row: a flat column -> value mapping tagged with
// the report kind. Assemblers guarantee every declared column is present.
type ReportRecord struct {
	Kind    constants.ReportKind
	Columns map[string]string
}

// NewReportRecord returns a record with every declared column defaulted to
// the sentinel. Partial records are never emitted.
func NewReportRecord(kind constants.ReportKind, columns []string) ReportRecord {
	cols := make(map[string]string, len(columns))
	for _, c := range columns {
		cols[c] = constants.NotAvailable
	}
	return ReportRecord{Kind: kind, Columns: cols}
}

// Set assigns a column value, ignoring empty values so defaults survive.
func (r ReportRecord) Set(column, value string) {
	if value != "" {
		r.Columns[column] = value
	}
}

// Get returns the value for a column ("" if the column was never declared).
func (r ReportRecord) Get(column string) string { return r.Columns[column] }
