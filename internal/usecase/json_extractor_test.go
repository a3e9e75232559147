package usecase

import (
	"errors"
	"testing"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

const nightCreamFeed = `{"product":{"title":"Night Cream","variants":[{"sku":"NC-100","price":"68.00"}],"body_html":"<p>Night Cream – Restores moisture overnight.</p><p>Ingredients: shea butter</p>"}}`

func jsonDoc(body string) domain.RawDocument {
	return domain.RawDocument{ContentType: domain.ContentTypeJSON, Body: []byte(body)}
}

func TestJSONFeedExtractor_Extract(t *testing.T) {
	extractor := NewJSONFeedExtractor()
	rules, err := Profile(ProfileShopifyFeed)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	record, err := extractor.Extract(jsonDoc(nightCreamFeed), rules)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if record.Name != "Night Cream" {
		t.Errorf("Name = %q, want Night Cream", record.Name)
	}
	if record.SKU != "NC-100" {
		t.Errorf("SKU = %q, want NC-100", record.SKU)
	}
	if record.Price != "68.00" {
		t.Errorf("Price = %q, want the raw feed text 68.00", record.Price)
	}
	if record.Description != "Restores moisture overnight." {
		t.Errorf("Description = %q, want name prefix stripped and ingredients cut away", record.Description)
	}
}

func TestJSONFeedExtractor_FirstParagraphProfile(t *testing.T) {
	extractor := NewJSONFeedExtractor()
	rules, _ := Profile(ProfileShopifyFirstPara)

	record, err := extractor.Extract(jsonDoc(nightCreamFeed), rules)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if record.Description != "Restores moisture overnight." {
		t.Errorf("Description = %q, want the first clean paragraph", record.Description)
	}
}

func TestJSONFeedExtractor_AccordionProfile(t *testing.T) {
	feed := `{"product":{"title":"Barrier Balm","variants":[{"sku":"BB-7","price":"42.00"}],` +
		`"body_html":"<p>Barrier Balm – Seals in hydration.</p><dl><dt>Ingredients</dt><dd>Shea Butter, Squalane</dd><dt>How to Use</dt><dd>Apply nightly.</dd><dt>Expert Tip</dt><dd>Layer under moisturizer.</dd></dl>"}}`

	extractor := NewJSONFeedExtractor()
	rules, _ := Profile(ProfileShopifyFeedAccordion)

	record, err := extractor.Extract(jsonDoc(feed), rules)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	t.Run("description cut before the first accordion section", func(t *testing.T) {
		if record.Description != "Seals in hydration." {
			t.Errorf("Description = %q", record.Description)
		}
	})
	t.Run("accordion sections resolve through label rules", func(t *testing.T) {
		if got := record.Field(domain.FieldIngredients); got != "Shea Butter, Squalane" {
			t.Errorf("Ingredients = %q", got)
		}
		if got := record.Field(domain.FieldUsage); got != "Apply nightly." {
			t.Errorf("Usage = %q", got)
		}
		if got := record.Field(domain.FieldExpertTip); got != "Layer under moisturizer." {
			t.Errorf("Expert Tip = %q", got)
		}
	})
}

func TestJSONFeedExtractor_MissingPaths(t *testing.T) {
	extractor := NewJSONFeedExtractor()
	rules, _ := Profile(ProfileShopifyFeed)

	record, err := extractor.Extract(jsonDoc(`{"product":{"title":"Eye Cream"}}`), rules)
	if err != nil {
		t.Fatalf("Extract() error = %v, missing paths must not be errors", err)
	}
	if record.Name != "Eye Cream" {
		t.Errorf("Name = %q", record.Name)
	}
	for field, got := range map[string]string{
		domain.FieldSKU:         record.SKU,
		domain.FieldPrice:       record.Price,
		domain.FieldDescription: record.Description,
	} {
		if got != domain.Unknown {
			t.Errorf("%s = %q, want %q", field, got, domain.Unknown)
		}
	}
}

func TestJSONFeedExtractor_InvalidJSON(t *testing.T) {
	extractor := NewJSONFeedExtractor()
	rules, _ := Profile(ProfileShopifyFeed)

	_, err := extractor.Extract(jsonDoc(`{"product": not json`), rules)
	if !errors.Is(err, domain.ErrExtraction) {
		t.Errorf("error = %v, want ErrExtraction", err)
	}
}

func TestResolvePath(t *testing.T) {
	root := map[string]interface{}{
		"product": map[string]interface{}{
			"title": "Toner",
			"variants": []interface{}{
				map[string]interface{}{"price": 24.5, "available": true},
			},
		},
	}

	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"product.title", "Toner", true},
		{"product.variants.0.price", "24.5", true},
		{"product.variants.0.available", "true", true},
		{"product.variants.1.price", "", false},
		{"product.missing", "", false},
		{"product.title.deeper", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := resolvePath(root, tt.path)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("resolvePath(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
