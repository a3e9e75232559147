package usecase

import (
	"errors"
	"testing"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

func TestReconcileService_Reconcile(t *testing.T) {
	service := NewReconcileService(NewFieldMatcher(MatchConfig{}))

	recordA := domain.NewProductRecord()
	recordA.Name = "Glow Serum"
	recordA.Price = "$78.00"
	recordA.Description = "Brightens skin overnight"

	recordB := domain.NewProductRecord()
	recordB.Name = "Glow Serum"
	recordB.Price = "78"
	recordB.Description = "Brightens the skin overnight"

	rows := service.Reconcile(recordA, recordB, DefaultFieldSpecs())

	if len(rows) != len(DefaultFieldSpecs()) {
		t.Fatalf("len(rows) = %d, want one row per field spec", len(rows))
	}

	t.Run("rows come back in spec order", func(t *testing.T) {
		for i, spec := range DefaultFieldSpecs() {
			if rows[i].Field != spec.Name {
				t.Errorf("rows[%d].Field = %q, want %q", i, rows[i].Field, spec.Name)
			}
		}
	})

	byField := make(map[string]domain.ComparisonRow, len(rows))
	for _, row := range rows {
		byField[row.Field] = row
	}

	t.Run("exact name match", func(t *testing.T) {
		if byField[domain.FieldName].Verdict != domain.VerdictMatch {
			t.Errorf("name verdict = %q", byField[domain.FieldName].Verdict)
		}
	})
	t.Run("currency match across formatting", func(t *testing.T) {
		if byField[domain.FieldPrice].Verdict != domain.VerdictMatch {
			t.Errorf("price verdict = %q", byField[domain.FieldPrice].Verdict)
		}
	})
	t.Run("fuzzy description match carries a score", func(t *testing.T) {
		row := byField[domain.FieldDescription]
		if row.Verdict != domain.VerdictMatch {
			t.Errorf("description verdict = %q", row.Verdict)
		}
		if row.Score == nil {
			t.Fatal("description row has no score")
		}
		if *row.Score < 0.85 {
			t.Errorf("score = %v, want >= 0.85", *row.Score)
		}
	})
	t.Run("both sides unknown is still a match", func(t *testing.T) {
		if byField[domain.FieldSKU].Verdict != domain.VerdictMatch {
			t.Errorf("sku verdict = %q", byField[domain.FieldSKU].Verdict)
		}
	})
	t.Run("original values survive into the row", func(t *testing.T) {
		row := byField[domain.FieldPrice]
		if row.ValueA != "$78.00" || row.ValueB != "78" {
			t.Errorf("row values = (%q, %q)", row.ValueA, row.ValueB)
		}
	})
}

func TestReconcileService_CompareDocuments(t *testing.T) {
	service := NewReconcileService(NewFieldMatcher(MatchConfig{}))

	docA := jsonDoc(`{"product":{"title":"Night Cream","variants":[{"sku":"NC-100","price":"68.00"}],"body_html":"<p>Restores moisture overnight.</p>"}}`)
	docB := jsonDoc(`{"product":{"title":"Night Cream","variants":[{"sku":"NC-100","price":"$68.00"}],"body_html":"<p>Restores moisture overnight.</p>"}}`)

	rows, err := service.CompareDocuments(docA, docB, ProfileShopifyFeed, ProfileShopifyFirstPara, nil)
	if err != nil {
		t.Fatalf("CompareDocuments() error = %v", err)
	}
	if len(rows) != len(DefaultFieldSpecs()) {
		t.Fatalf("len(rows) = %d", len(rows))
	}
	for _, row := range rows {
		if row.Verdict != domain.VerdictMatch {
			t.Errorf("%s verdict = %q (%q vs %q)", row.Field, row.Verdict, row.ValueA, row.ValueB)
		}
	}
}

func TestReconcileService_CompareDocumentsErrors(t *testing.T) {
	service := NewReconcileService(NewFieldMatcher(MatchConfig{}))
	valid := jsonDoc(`{"product":{"title":"Toner"}}`)

	t.Run("unknown profile", func(t *testing.T) {
		_, err := service.CompareDocuments(valid, valid, "no-such-vendor", ProfileShopifyFeed, nil)
		if !errors.Is(err, domain.ErrUnknownProfile) {
			t.Errorf("error = %v, want ErrUnknownProfile", err)
		}
	})
	t.Run("unparseable side", func(t *testing.T) {
		_, err := service.CompareDocuments(valid, jsonDoc("not json"), ProfileShopifyFeed, ProfileShopifyFeed, nil)
		if !errors.Is(err, domain.ErrExtraction) {
			t.Errorf("error = %v, want ErrExtraction", err)
		}
	})
}

func TestApplyThresholdOverrides(t *testing.T) {
	specs := []domain.FieldSpec{
		{Name: domain.FieldDescription, Type: domain.SemanticFuzzyText},
		{Name: domain.FieldBenefits, Type: domain.SemanticFuzzyText, MatchThreshold: 0.7},
	}
	out := applyThresholdOverrides(specs, map[string]float64{
		domain.FieldDescription: 0.9,
		domain.FieldBenefits:    0.95,
	})

	if out[0].MatchThreshold != 0.9 {
		t.Errorf("override not applied: %v", out[0].MatchThreshold)
	}
	if out[1].MatchThreshold != 0.7 {
		t.Errorf("explicit spec threshold overwritten: %v", out[1].MatchThreshold)
	}
	if specs[0].MatchThreshold != 0 {
		t.Error("input slice mutated")
	}
}
