package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/entity"
)

var (
	reSectionHeader = regexp.MustCompile(`(?i)\b(marker\s*details|mutations|genetic\s*variants|genomic\s*alterations|variant\s*details)\b`)
	// A line that is its own all-caps section heading terminates the
	// localized region.
	reAllCapsLine = regexp.MustCompile(`^\s*[A-Z][A-Z /\-]{3,}:?\s*$`)

	reTableHeaderA = regexp.MustCompile(`(?i)Gene.*Alteration.*Location.*VAF.*ClinVar.*TranscriptID.*Type.*Pathway`)
	reTableHeaderB = regexp.MustCompile(`(?i)Gene.*Transcript.*cDNA.*Amino.*Location.*Type`)
	reColumnSplit  = regexp.MustCompile(`\s{2,}|\t|\|`)
	reGeneSymbol   = regexp.MustCompile(`^[A-Z][A-Z0-9-]+$`)

	reTranscript = regexp.MustCompile(`(NM_[0-9]+\.[0-9]+)`)
	reCDNA       = regexp.MustCompile(`(c\.[A-Za-z0-9>_\-\+\*]+)`)
	reProtein    = regexp.MustCompile(`(p\.[A-Za-z0-9>_\-\+\*]+)`)
	reAAChange   = regexp.MustCompile(`\b([A-Z][0-9]+(?:[A-Za-z*]|fs)[A-Za-z0-9*]*)\b`)
	reExon       = regexp.MustCompile(`(?i)exon\s*(\d+)`)
	rePercent    = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
	reCopyNumber = regexp.MustCompile(`(?i)copy\s*number[:\s]*(\d+)`)
	reDbSNP      = regexp.MustCompile(`(rs[0-9]+)`)
	reCosmic     = regexp.MustCompile(`(COSM[0-9]+)`)
)

// geneMentionRe matches any known gene symbol as a whole word.
var geneMentionRe = func() *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(constants.KnownGenes, "|") + `)\b`)
}()

// VariantExtractor locates and structures genomic variant mentions from
// free text of unknown layout. It runs a cascade of strategies from most to
// least precise, stopping once enough variants are found; a gene claimed by
// an earlier strategy is never overwritten by a later one.
type VariantExtractor struct {
	logger *slog.Logger
}

func NewVariantExtractor(logger *slog.Logger) *VariantExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &VariantExtractor{logger: logger}
}

// Extract returns at most constants.MaxVariants variants in
// strategy-then-discovery order.
func (x *VariantExtractor) Extract(text string) []entity.Variant {
	section := x.locateSection(text)

	type strategy struct {
		name string
		run  func() []entity.Variant
	}
	strategies := []strategy{
		{"table", func() []entity.Variant { return x.parseTable(section) }},
		{"regex-row", func() []entity.Variant { return x.regexRowParse(text) }},
		{"proximity", func() []entity.Variant { return x.proximityParse(text) }},
		{"bare-mention", func() []entity.Variant { return x.bareMentions(text) }},
	}

	var out []entity.Variant
	claimed := map[string]struct{}{}
	for _, s := range strategies {
		if len(out) >= constants.EnoughVariants {
			break
		}
		found := 0
		for _, v := range s.run() {
			key := strings.ToUpper(v.Gene)
			if _, dup := claimed[key]; dup || v.Gene == "" {
				continue
			}
			claimed[key] = struct{}{}
			out = append(out, v)
			found++
			if len(out) >= constants.MaxVariants {
				break
			}
		}
		if found > 0 {
			x.logger.Debug("variants.strategy", "name", s.name, "found", found, "total", len(out))
		}
		if len(out) >= constants.MaxVariants {
			break
		}
	}
	if len(out) > constants.MaxVariants {
		out = out[:constants.MaxVariants]
	}
	return out
}

// locateSection finds the bounded region most likely to hold the variant
// table: a known section header up to the next all-caps heading, else the
// densest window of gene mentions, else the middle third of the document.
func (x *VariantExtractor) locateSection(text string) string {
	lines := strings.Split(text, "\n")

	if loc := reSectionHeader.FindStringIndex(text); loc != nil {
		rest := text[loc[0]:]
		restLines := strings.Split(rest, "\n")
		end := len(restLines)
		for i := 1; i < len(restLines); i++ {
			if reAllCapsLine.MatchString(restLines[i]) {
				end = i
				break
			}
		}
		return strings.Join(restLines[:end], "\n")
	}

	// Densest gene-mention window.
	const window = 12
	bestStart, bestCount := -1, 0
	for start := 0; start < len(lines); start += window / 2 {
		stop := start + window
		if stop > len(lines) {
			stop = len(lines)
		}
		count := len(geneMentionRe.FindAllString(strings.Join(lines[start:stop], "\n"), -1))
		if count > bestCount {
			bestStart, bestCount = start, count
		}
	}
	if bestStart >= 0 && bestCount > 0 {
		stop := bestStart + window
		if stop > len(lines) {
			stop = len(lines)
		}
		return strings.Join(lines[bestStart:stop], "\n")
	}

	// Middle third by line count.
	third := len(lines) / 3
	return strings.Join(lines[third:2*third+len(lines)%3], "\n")
}

// parseTable parses a structured variant table inside the localized
// section: a recognized header line followed by column-separated rows.
func (x *VariantExtractor) parseTable(section string) []entity.Variant {
	lines := strings.Split(section, "\n")
	headerIdx := -1
	for i, line := range lines {
		if reTableHeaderA.MatchString(line) || reTableHeaderB.MatchString(line) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var variants []entity.Variant
	stop := headerIdx + 10
	if stop > len(lines) {
		stop = len(lines)
	}
	for _, line := range lines[headerIdx+1 : stop] {
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}
		parts := reColumnSplit.Split(line, -1)
		fields := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				fields = append(fields, p)
			}
		}
		if len(fields) < 3 {
			continue
		}
		if v, ok := x.parseTableRow(fields, line); ok {
			variants = append(variants, v)
		}
	}
	return variants
}

// parseTableRow maps positional columns (Gene, Alteration, Location, VAF,
// ClinVar, TranscriptID, Type) onto a Variant. The gene column is validated
// against the symbol shape to reject header re-matches and prose lines.
func (x *VariantExtractor) parseTableRow(fields []string, line string) (entity.Variant, bool) {
	gene := strings.TrimSpace(fields[0])
	if !reGeneSymbol.MatchString(gene) || len(gene) > 10 {
		return entity.Variant{}, false
	}
	v := entity.NewVariant(gene)

	if len(fields) >= 2 {
		alteration := strings.TrimSpace(fields[1])
		switch {
		case strings.HasPrefix(alteration, "c."):
			v.CDNAChange = alteration
		case strings.HasPrefix(alteration, "p."):
			v.AAChange = alteration
		case reAAChange.MatchString(alteration):
			v.AAChange = alteration
		default:
			v.AAChange = alteration
		}
	}
	if len(fields) >= 3 {
		loc := strings.TrimSpace(fields[2])
		if strings.Contains(strings.ToLower(loc), "exon") || isAllDigits(loc) {
			v.Location = loc
		}
	}
	if len(fields) >= 4 {
		if m := rePercent.FindStringSubmatch(fields[3] + "%"); m != nil {
			v.AlleleFraction = m[1]
		}
	}
	if len(fields) >= 5 {
		if sig := normalizeSignificance(fields[4]); sig != "" {
			v.Significance = sig
		} else if s := strings.TrimSpace(fields[4]); s != "" {
			v.Significance = s
		}
	}
	if len(fields) >= 6 && strings.Contains(fields[5], "NM_") {
		v.Transcript = strings.TrimSpace(fields[5])
	}
	if len(fields) >= 7 {
		if t := strings.TrimSpace(fields[6]); t != "" && t != constants.NotAvailable {
			v.VariantType = t
		}
	}

	// The whole line may carry detail the positional columns missed.
	if v.Transcript == constants.NotAvailable {
		if m := reTranscript.FindStringSubmatch(line); m != nil {
			v.Transcript = m[1]
		}
	}
	if m := reDbSNP.FindStringSubmatch(line); m != nil {
		v.DbSNPID = m[1]
	}
	if m := reCosmic.FindStringSubmatch(line); m != nil {
		v.CosmicID = m[1]
	}
	return v, true
}

// regexRowParse runs gene-anchored expressions across the whole document,
// pairing each known gene with nearby transcript, coding-change and
// protein-change sub-patterns.
func (x *VariantExtractor) regexRowParse(text string) []entity.Variant {
	var variants []entity.Variant
	seen := map[string]struct{}{}
	for _, m := range geneMentionRe.FindAllStringSubmatchIndex(text, -1) {
		gene := strings.ToUpper(text[m[2]:m[3]])
		if _, dup := seen[gene]; dup {
			continue
		}

		// A variant row mentions a change near the gene; a bare mention
		// does not qualify for this strategy.
		tail := text[m[3]:min(m[3]+200, len(text))]
		if !reCDNA.MatchString(tail) && !reProtein.MatchString(tail) && !reTranscript.MatchString(tail) {
			continue
		}
		seen[gene] = struct{}{}

		v := entity.NewVariant(gene)
		applyContext(&v, text[max(0, m[2]-300):min(m[3]+300, len(text))])
		variants = append(variants, v)
	}
	return variants
}

// proximityParse takes a fixed window of characters around each bare gene
// mention and harvests whatever structured fragments appear inside it.
func (x *VariantExtractor) proximityParse(text string) []entity.Variant {
	var variants []entity.Variant
	seen := map[string]struct{}{}
	for _, m := range geneMentionRe.FindAllStringSubmatchIndex(text, -1) {
		gene := strings.ToUpper(text[m[2]:m[3]])
		if _, dup := seen[gene]; dup {
			continue
		}
		seen[gene] = struct{}{}

		v := entity.NewVariant(gene)
		applyContext(&v, text[max(0, m[2]-300):min(m[3]+300, len(text))])
		variants = append(variants, v)
	}
	return variants
}

// bareMentions emits a default Variant per distinct known gene mentioned
// anywhere, the cascade's last resort.
func (x *VariantExtractor) bareMentions(text string) []entity.Variant {
	var variants []entity.Variant
	for _, gene := range constants.KnownGenes {
		if regexp.MustCompile(`(?i)\b` + gene + `\b`).MatchString(text) {
			variants = append(variants, entity.NewVariant(gene))
		}
	}
	return variants
}

// applyContext fills unset Variant fields from the text surrounding a gene
// mention.
func applyContext(v *entity.Variant, context string) {
	na := constants.NotAvailable
	if v.Transcript == na {
		if m := reTranscript.FindStringSubmatch(context); m != nil {
			v.Transcript = m[1]
		}
	}
	if v.CDNAChange == na {
		if m := reCDNA.FindStringSubmatch(context); m != nil {
			v.CDNAChange = m[1]
		}
	}
	if v.AAChange == na {
		if m := reProtein.FindStringSubmatch(context); m != nil {
			v.AAChange = m[1]
		} else if m := reAAChange.FindStringSubmatch(context); m != nil {
			v.AAChange = m[1]
		}
	}
	if v.Location == na {
		if m := reExon.FindStringSubmatch(context); m != nil {
			v.Location = fmt.Sprintf("exon%s", m[1])
		}
	}
	if v.AlleleFraction == na {
		if m := rePercent.FindStringSubmatch(context); m != nil {
			v.AlleleFraction = m[1]
		}
	}
	if v.CopyNumber == na {
		if m := reCopyNumber.FindStringSubmatch(context); m != nil {
			v.CopyNumber = m[1]
		}
	}
	if v.DbSNPID == na {
		if m := reDbSNP.FindStringSubmatch(context); m != nil {
			v.DbSNPID = m[1]
		}
	}
	if v.CosmicID == na {
		if m := reCosmic.FindStringSubmatch(context); m != nil {
			v.CosmicID = m[1]
		}
	}
	if v.Significance == na {
		if sig := detectSignificance(context); sig != "" {
			v.Significance = sig
		}
	}
	if v.VariantType == na {
		if t := detectVariantType(context); t != "" {
			v.VariantType = t
		}
	}
}

// normalizeSignificance maps free-text significance cues onto the fixed
// vocabulary; "" when no cue is recognized.
func normalizeSignificance(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "pathogen"):
		return entity.SignificancePathogenic
	case strings.Contains(lower, "vus"), strings.Contains(lower, "uncertain"),
		strings.Contains(lower, "unknown significance"):
		return entity.SignificanceVUS
	case strings.Contains(lower, "benign"):
		return entity.SignificanceBenign
	}
	return ""
}

func detectSignificance(context string) string {
	return normalizeSignificance(context)
}

// detectVariantType maps textual cues onto the variant-type vocabulary.
// Deletion+frameshift and substitution+missense pairs take precedence over
// their bare forms.
func detectVariantType(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "deletion") && strings.Contains(lower, "frameshift"):
		return entity.VariantDeletionFrameshift
	case strings.Contains(lower, "substitution") && strings.Contains(lower, "missense"):
		return entity.VariantSubstitutionMissense
	case strings.Contains(lower, "insertion"):
		return entity.VariantInsertion
	case strings.Contains(lower, "deletion"):
		return entity.VariantDeletion
	}
	return ""
}

// ParseAlleleFraction converts a captured percentage string to a float,
// with ok=false on garbage.
func ParseAlleleFraction(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	return v, err == nil
}
