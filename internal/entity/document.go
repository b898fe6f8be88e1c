package entity

import (
	"sort"
	"strings"
)

// RawDocument is the page-indexed raw text of one input report. It is built
// once per pipeline invocation and never mutated afterwards.
type RawDocument struct {
	pages    map[int]string
	fullText string
}

// NewRawDocument builds a RawDocument from a page-number -> text mapping.
// Pages with empty text are kept in the map (an image-only page is a fact
// worth preserving) but contribute nothing to the full text.
func NewRawDocument(pages map[int]string) *RawDocument {
	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var b strings.Builder
	copied := make(map[int]string, len(pages))
	for _, n := range nums {
		copied[n] = pages[n]
		if t := strings.TrimSpace(pages[n]); t != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(pages[n])
		}
	}
	return &RawDocument{pages: copied, fullText: b.String()}
}

// Page returns the raw text of one page ("" when absent).
func (d *RawDocument) Page(n int) string { return d.pages[n] }

// PageCount returns the number of pages carrying any entry.
func (d *RawDocument) PageCount() int { return len(d.pages) }

// FullText returns the concatenated text of all pages in page order.
func (d *RawDocument) FullText() string { return d.fullText }

// Empty reports whether the document holds no usable text at all.
func (d *RawDocument) Empty() bool {
	return strings.TrimSpace(d.fullText) == ""
}
