package usecase

import (
	"log"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// defaultFuzzyThreshold is the similarity ratio a fuzzy-text field must reach
// to count as a match
const defaultFuzzyThreshold = 0.85

// MatchConfig holds configuration for the field matcher
type MatchConfig struct {
	FuzzyThreshold     float64
	EnableDebugLogging bool
}

// FieldMatcher decides per-field whether two normalized values match, using
// the strategy declared by the field's semantic type
type FieldMatcher struct {
	fuzzyThreshold     float64
	enableDebugLogging bool
}

// NewFieldMatcher creates a field matcher with the given configuration
func NewFieldMatcher(config MatchConfig) *FieldMatcher {
	threshold := config.FuzzyThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultFuzzyThreshold
	}

	return &FieldMatcher{
		fuzzyThreshold:     threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Compare evaluates two raw field values under a field spec. The verdict is a
// pure function of the two values and the spec; the similarity score is
// non-nil for fuzzy-text fields only.
//
// Unknown-sentinel policy, applied before any strategy: unknown vs unknown is
// a Match, unknown vs anything else is a Mismatch. Unparseable is reserved
// for values that are present on both sides but structurally malformed.
func (m *FieldMatcher) Compare(a, b string, spec domain.FieldSpec) (domain.Verdict, *float64) {
	aUnknown := isUnknown(a)
	bUnknown := isUnknown(b)

	switch {
	case aUnknown && bUnknown:
		if spec.Type == domain.SemanticFuzzyText {
			return domain.VerdictMatch, scoreOf(1)
		}
		return domain.VerdictMatch, nil
	case aUnknown || bUnknown:
		if spec.Type == domain.SemanticFuzzyText {
			return domain.VerdictMismatch, scoreOf(0)
		}
		return domain.VerdictMismatch, nil
	}

	switch spec.Type {
	case domain.SemanticCurrency:
		return m.compareCurrency(a, b), nil
	case domain.SemanticFuzzyText:
		return m.compareFuzzy(a, b, spec)
	default:
		return m.compareExact(a, b), nil
	}
}

// compareExact matches on case- and whitespace-insensitive equality
func (m *FieldMatcher) compareExact(a, b string) domain.Verdict {
	if FoldText(a) == FoldText(b) {
		return domain.VerdictMatch
	}
	return domain.VerdictMismatch
}

// compareCurrency matches on exact decimal equality after currency
// normalization. Catalog prices are expected to match exactly, so there is no
// rounding tolerance beyond decimal parsing.
func (m *FieldMatcher) compareCurrency(a, b string) domain.Verdict {
	da, okA := NormalizeCurrency(a)
	db, okB := NormalizeCurrency(b)
	if !okA || !okB {
		if m.enableDebugLogging {
			log.Printf("[MATCH] unparseable price: %q vs %q", a, b)
		}
		return domain.VerdictUnparseable
	}
	if da.Equal(db) {
		return domain.VerdictMatch
	}
	return domain.VerdictMismatch
}

// compareFuzzy matches on a normalized edit-similarity ratio against the
// field threshold. The score is reported even on a match, for audit
// visibility.
func (m *FieldMatcher) compareFuzzy(a, b string, spec domain.FieldSpec) (domain.Verdict, *float64) {
	threshold := spec.MatchThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = m.fuzzyThreshold
	}

	ratio := similarityRatio(FoldText(a), FoldText(b))
	if m.enableDebugLogging {
		log.Printf("[MATCH] %s: ratio=%.3f threshold=%.2f", spec.Name, ratio, threshold)
	}

	if ratio >= threshold {
		return domain.VerdictMatch, scoreOf(ratio)
	}
	return domain.VerdictMismatch, scoreOf(ratio)
}

// similarityRatio computes 1 - editDistance/maxLen in [0,1]. Symmetric in its
// arguments.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}

	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}

	dist := levenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

func isUnknown(s string) bool {
	return s == "" || s == domain.Unknown
}

func scoreOf(v float64) *float64 { return &v }
