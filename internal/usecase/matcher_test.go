package usecase

import (
	"testing"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

func TestNewFieldMatcher(t *testing.T) {
	t.Run("uses provided threshold", func(t *testing.T) {
		m := NewFieldMatcher(MatchConfig{FuzzyThreshold: 0.9})
		if m.fuzzyThreshold != 0.9 {
			t.Errorf("fuzzyThreshold = %v, want 0.9", m.fuzzyThreshold)
		}
	})

	t.Run("falls back to default for zero", func(t *testing.T) {
		m := NewFieldMatcher(MatchConfig{})
		if m.fuzzyThreshold != defaultFuzzyThreshold {
			t.Errorf("fuzzyThreshold = %v, want %v", m.fuzzyThreshold, defaultFuzzyThreshold)
		}
	})

	t.Run("falls back to default for out-of-range", func(t *testing.T) {
		m := NewFieldMatcher(MatchConfig{FuzzyThreshold: 1.5})
		if m.fuzzyThreshold != defaultFuzzyThreshold {
			t.Errorf("fuzzyThreshold = %v, want %v", m.fuzzyThreshold, defaultFuzzyThreshold)
		}
	})
}

func TestCompare_ExactText(t *testing.T) {
	m := NewFieldMatcher(MatchConfig{})
	spec := domain.FieldSpec{Name: domain.FieldName, Type: domain.SemanticExactText}

	t.Run("case and whitespace insensitive equality", func(t *testing.T) {
		verdict, score := m.Compare("  Firming   SERUM ", "firming serum", spec)
		if verdict != domain.VerdictMatch {
			t.Errorf("verdict = %v, want Match", verdict)
		}
		if score != nil {
			t.Errorf("score = %v, want nil for exact fields", *score)
		}
	})

	t.Run("different values mismatch", func(t *testing.T) {
		verdict, _ := m.Compare("Firming Serum", "Firming Cream", spec)
		if verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %v, want Mismatch", verdict)
		}
	})
}

func TestCompare_UnknownSentinel(t *testing.T) {
	m := NewFieldMatcher(MatchConfig{})

	t.Run("unknown vs unknown matches for exact fields", func(t *testing.T) {
		spec := domain.FieldSpec{Type: domain.SemanticExactText}
		verdict, _ := m.Compare(domain.Unknown, domain.Unknown, spec)
		if verdict != domain.VerdictMatch {
			t.Errorf("verdict = %v, want Match", verdict)
		}
	})

	t.Run("unknown vs unknown matches for currency fields", func(t *testing.T) {
		spec := domain.FieldSpec{Type: domain.SemanticCurrency}
		verdict, _ := m.Compare(domain.Unknown, domain.Unknown, spec)
		if verdict != domain.VerdictMatch {
			t.Errorf("verdict = %v, want Match", verdict)
		}
	})

	t.Run("unknown vs present always mismatches, never unparseable", func(t *testing.T) {
		specs := []domain.FieldSpec{
			{Type: domain.SemanticExactText},
			{Type: domain.SemanticCurrency},
			{Type: domain.SemanticFuzzyText},
		}
		for _, spec := range specs {
			verdict, _ := m.Compare(domain.Unknown, "24.00", spec)
			if verdict != domain.VerdictMismatch {
				t.Errorf("type %s: verdict = %v, want Mismatch", spec.Type, verdict)
			}
		}
	})

	t.Run("fuzzy unknown pair carries a score", func(t *testing.T) {
		spec := domain.FieldSpec{Type: domain.SemanticFuzzyText}
		verdict, score := m.Compare(domain.Unknown, domain.Unknown, spec)
		if verdict != domain.VerdictMatch {
			t.Errorf("verdict = %v, want Match", verdict)
		}
		if score == nil || *score != 1 {
			t.Errorf("score = %v, want 1", score)
		}
	})
}

func TestCompare_Currency(t *testing.T) {
	m := NewFieldMatcher(MatchConfig{})
	spec := domain.FieldSpec{Name: domain.FieldPrice, Type: domain.SemanticCurrency}

	t.Run("symbol and decimals do not register as drift", func(t *testing.T) {
		verdict, _ := m.Compare("$24.00", "24", spec)
		if verdict != domain.VerdictMatch {
			t.Errorf("verdict = %v, want Match", verdict)
		}
	})

	t.Run("every numeric string matches itself", func(t *testing.T) {
		for _, p := range []string{"0", "19.99", "$1,299.50", "68.00"} {
			verdict, _ := m.Compare(p, p, spec)
			if verdict != domain.VerdictMatch {
				t.Errorf("Compare(%q, %q) = %v, want Match", p, p, verdict)
			}
		}
	})

	t.Run("different amounts mismatch", func(t *testing.T) {
		verdict, _ := m.Compare("$24.00", "$25.00", spec)
		if verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %v, want Mismatch", verdict)
		}
	})

	t.Run("non-numeric side is unparseable", func(t *testing.T) {
		verdict, _ := m.Compare("No price found", "24.00", spec)
		if verdict != domain.VerdictUnparseable {
			t.Errorf("verdict = %v, want Unparseable", verdict)
		}
	})
}

func TestCompare_FuzzyText(t *testing.T) {
	m := NewFieldMatcher(MatchConfig{})
	spec := domain.FieldSpec{Name: domain.FieldDescription, Type: domain.SemanticFuzzyText}

	t.Run("near-identical descriptions match above default threshold", func(t *testing.T) {
		verdict, score := m.Compare("Brightens skin overnight", "Brightens the skin overnight", spec)
		if verdict != domain.VerdictMatch {
			t.Errorf("verdict = %v, want Match", verdict)
		}
		if score == nil || *score < 0.85 {
			t.Errorf("score = %v, want >= 0.85", score)
		}
	})

	t.Run("score is reported on mismatch too", func(t *testing.T) {
		verdict, score := m.Compare("Brightens skin", "Deeply hydrating night cream", spec)
		if verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %v, want Mismatch", verdict)
		}
		if score == nil {
			t.Fatal("score = nil, want a value for audit visibility")
		}
	})

	t.Run("comparison is symmetric", func(t *testing.T) {
		v1, s1 := m.Compare("Brightens skin overnight", "Brightens the skin overnight", spec)
		v2, s2 := m.Compare("Brightens the skin overnight", "Brightens skin overnight", spec)
		if v1 != v2 {
			t.Errorf("verdicts differ: %v vs %v", v1, v2)
		}
		if *s1 != *s2 {
			t.Errorf("scores differ: %v vs %v", *s1, *s2)
		}
	})

	t.Run("spec threshold overrides the default", func(t *testing.T) {
		strict := domain.FieldSpec{Type: domain.SemanticFuzzyText, MatchThreshold: 0.99}
		verdict, _ := m.Compare("Brightens skin overnight", "Brightens the skin overnight", strict)
		if verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %v, want Mismatch at 0.99 threshold", verdict)
		}
	})

	t.Run("identical text scores 1", func(t *testing.T) {
		_, score := m.Compare("same text", "same text", spec)
		if score == nil || *score != 1 {
			t.Errorf("score = %v, want 1", score)
		}
	})
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "abd", 1 - 1.0/3},
		{"kitten", "sitting", 1 - 3.0/7},
	}

	for _, tt := range tests {
		if got := similarityRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("similarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}
