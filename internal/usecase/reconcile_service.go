package usecase

import (
	"fmt"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// ReconcileService turns two extracted records into per-field comparison
// rows. It is a pure transform: no fetching, no writing, no state across
// rows.
type ReconcileService struct {
	matcher *FieldMatcher
}

// NewReconcileService creates a reconcile service around a field matcher
func NewReconcileService(matcher *FieldMatcher) *ReconcileService {
	return &ReconcileService{matcher: matcher}
}

// Reconcile produces exactly one ComparisonRow per field spec, in spec
// order, regardless of how either record was populated
func (s *ReconcileService) Reconcile(recordA, recordB domain.ProductRecord, specs []domain.FieldSpec) []domain.ComparisonRow {
	rows := make([]domain.ComparisonRow, 0, len(specs))
	for _, spec := range specs {
		valueA := recordA.Field(spec.Name)
		valueB := recordB.Field(spec.Name)
		verdict, score := s.matcher.Compare(valueA, valueB, spec)

		rows = append(rows, domain.ComparisonRow{
			Field:   spec.Name,
			ValueA:  valueA,
			ValueB:  valueB,
			Verdict: verdict,
			Score:   score,
		})
	}
	return rows
}

// CompareDocuments extracts both raw documents with their profiles and
// reconciles the results. Used by the HTTP API for inline document pairs and
// by the audit service after fetching.
func (s *ReconcileService) CompareDocuments(
	docA, docB domain.RawDocument,
	profileA, profileB string,
	specs []domain.FieldSpec,
) ([]domain.ComparisonRow, error) {
	recordA, rulesA, err := ExtractWithProfile(docA, profileA)
	if err != nil {
		return nil, fmt.Errorf("source A: %w", err)
	}
	recordB, _, err := ExtractWithProfile(docB, profileB)
	if err != nil {
		return nil, fmt.Errorf("source B: %w", err)
	}

	if len(specs) == 0 {
		specs = DefaultFieldSpecs()
	}
	specs = applyThresholdOverrides(specs, rulesA.FuzzyThresholds)

	return s.Reconcile(recordA, recordB, specs), nil
}

// ExtractWithProfile resolves a profile by name and runs the extractor
// variant its content type calls for
func ExtractWithProfile(doc domain.RawDocument, profile string) (domain.ProductRecord, ExtractionRuleSet, error) {
	rules, err := Profile(profile)
	if err != nil {
		return domain.NewProductRecord(), ExtractionRuleSet{}, err
	}

	var record domain.ProductRecord
	switch rules.ContentType {
	case domain.ContentTypeJSON:
		record, err = NewJSONFeedExtractor().Extract(doc, rules)
	default:
		record, err = NewHTMLExtractor().Extract(doc, rules)
	}
	if err != nil {
		return record, rules, err
	}
	return record, rules, nil
}

// applyThresholdOverrides copies the specs, filling per-field fuzzy
// thresholds from the vendor profile where the spec itself has none
func applyThresholdOverrides(specs []domain.FieldSpec, overrides map[string]float64) []domain.FieldSpec {
	if len(overrides) == 0 {
		return specs
	}
	out := make([]domain.FieldSpec, len(specs))
	copy(out, specs)
	for i := range out {
		if out[i].MatchThreshold == 0 {
			if t, ok := overrides[out[i].Name]; ok {
				out[i].MatchThreshold = t
			}
		}
	}
	return out
}
