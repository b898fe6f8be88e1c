package constants

// ReportKind discriminates the two report shapes the extractor understands.
type ReportKind string

const (
	// Genetic covers NGS-style sequencing panels (variant tables, TMB, MSI).
	Genetic ReportKind = "Genetic"
	// IHC covers immunohistochemistry staining reports (expression scores).
	IHC ReportKind = "IHC"
)

// NotAvailable is the sentinel written into every unresolved column.
// Consumers must check ExtractedField.Present rather than comparing against
// this string, since report text may legitimately contain "N/A".
const NotAvailable = "N/A"

// RedactedNotice replaces every field of a document that trips the
// redaction detector.
const RedactedNotice = "REDACTED - source document is anonymized"

// MaxVariants caps the number of variant rows emitted per document.
const MaxVariants = 5

// EnoughVariants is the early-exit threshold for the variant strategy
// cascade: once this many variants are found, cheaper strategies that
// follow are skipped.
const EnoughVariants = 3
