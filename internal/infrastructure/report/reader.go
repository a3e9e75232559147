package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// Input column headings accepted for the two URL columns. Operator sheets
// are inconsistent about pluralization.
var (
	sourceURLHeadings    = []string{"Product URL", "Product Urls", "Source URL"}
	canonicalURLHeadings = []string{"RegimenPro Urls", "RegimenPro URL", "Canonical URL"}
)

// ReadPairs parses an input CSV of URL pairs into pair specs with the given
// extraction profiles. Rows with either URL missing are skipped.
func ReadPairs(r io.Reader, sourceProfile, canonicalProfile string) ([]domain.PairSpec, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading pair list: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pair list is empty")
	}

	srcIdx := columnIndex(records[0], sourceURLHeadings)
	canIdx := columnIndex(records[0], canonicalURLHeadings)
	if srcIdx < 0 || canIdx < 0 {
		return nil, fmt.Errorf("pair list must have source and canonical URL columns, got %v", records[0])
	}

	var pairs []domain.PairSpec
	for _, row := range records[1:] {
		if srcIdx >= len(row) || canIdx >= len(row) {
			continue
		}
		src := strings.TrimSpace(row[srcIdx])
		can := strings.TrimSpace(row[canIdx])
		if src == "" || can == "" {
			continue
		}
		pairs = append(pairs, domain.PairSpec{
			SourceURL:        src,
			CanonicalURL:     can,
			SourceProfile:    sourceProfile,
			CanonicalProfile: canonicalProfile,
		})
	}
	return pairs, nil
}

// columnIndex finds the first heading matching any accepted spelling,
// case-insensitively
func columnIndex(header []string, accepted []string) int {
	for i, h := range header {
		for _, a := range accepted {
			if strings.EqualFold(strings.TrimSpace(h), a) {
				return i
			}
		}
	}
	return -1
}
