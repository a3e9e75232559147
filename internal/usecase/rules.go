package usecase

import (
	"fmt"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// HTMLRule locates one field inside rendered markup. Exactly one of Selector
// or LabelToken drives the lookup.
type HTMLRule struct {
	// Selector is a CSS selector; the first match in document order wins
	// unless SkipBoilerplate or ItemSelector change the policy
	Selector string

	// Attr reads an attribute of the matched element instead of its text
	// (e.g. content of meta[itemprop=price])
	Attr string

	// LabelToken finds a label-bearing element (LabelSelector, default
	// "dt") whose text contains the token, then reads the value from the
	// element that follows it (ValueSelector, default the immediate
	// sibling)
	LabelToken    string
	LabelSelector string
	ValueSelector string

	// ItemSelector turns the rule into a list rule: the texts of all
	// matches under the located element are joined with ", "
	ItemSelector string

	// SkipBoilerplate takes the first candidate whose text contains no
	// configured boilerplate marker instead of the plain first match
	SkipBoilerplate bool
}

// JSONRule locates one field inside a structured feed
type JSONRule struct {
	// Path is a dot path with numeric array indexes, e.g.
	// "product.variants.0.sku"
	Path string

	// Segment hands the value (embedded HTML) to the description
	// segmenter instead of consuming it raw
	Segment bool

	// HTML applies an HTML rule to the embedded HTML at Path, for feeds
	// that bury accordion sections inside body_html
	HTML *HTMLRule
}

// ExtractionRuleSet declares, per source vendor, how to pull each canonical
// field out of a document. Vendor quirks live here as data; the two
// extractors interpret them with shared control flow.
type ExtractionRuleSet struct {
	Profile     string
	ContentType domain.ContentType

	// One of the two maps is populated, keyed by canonical field name
	HTMLFields map[string]HTMLRule
	JSONFields map[string]JSONRule

	// Segmentation policy for description-like fields
	BoundaryMarkers    []string
	BoilerplateMarkers []string
	FirstParagraph     bool

	// Per-field fuzzy threshold overrides
	FuzzyThresholds map[string]float64
}

// defaultBoundaryMarkers covers the section headings seen across vendor
// catalogs, in cut priority order
var defaultBoundaryMarkers = []string{
	"Ingredients",
	"Key Benefits",
	"Benefits",
	"Skin Concerns",
	"How to Use",
	"Use Instructions",
	"Usage Instructions",
	"Directions",
	"Suggested Use",
	"Usage",
	"Apply",
}

// builtinProfiles are the rule sets distilled from the audited vendor
// catalogs. The canonical side always uses ProfileShopifyFeed.
const (
	ProfileShopifyFeed          = "shopify-feed"
	ProfileShopifyFeedAccordion = "shopify-feed-accordion"
	ProfileShopifyFirstPara     = "shopify-feed-first-paragraph"
	ProfileStorefrontHTML       = "storefront-html"
)

func builtinProfiles() map[string]ExtractionRuleSet {
	feedFields := map[string]JSONRule{
		domain.FieldName:        {Path: "product.title"},
		domain.FieldSKU:         {Path: "product.variants.0.sku"},
		domain.FieldPrice:       {Path: "product.variants.0.price"},
		domain.FieldDescription: {Path: "product.body_html", Segment: true},
	}

	accordionFields := map[string]JSONRule{
		domain.FieldName:        {Path: "product.title"},
		domain.FieldSKU:         {Path: "product.variants.0.sku"},
		domain.FieldPrice:       {Path: "product.variants.0.price"},
		domain.FieldDescription: {Path: "product.body_html", Segment: true},
		domain.FieldIngredients: {Path: "product.body_html", HTML: &HTMLRule{LabelToken: "Ingredient"}},
		domain.FieldUsage:       {Path: "product.body_html", HTML: &HTMLRule{LabelToken: "Use"}},
		domain.FieldExpertTip:   {Path: "product.body_html", HTML: &HTMLRule{LabelToken: "Expert"}},
	}

	return map[string]ExtractionRuleSet{
		ProfileShopifyFeed: {
			Profile:         ProfileShopifyFeed,
			ContentType:     domain.ContentTypeJSON,
			JSONFields:      feedFields,
			BoundaryMarkers: defaultBoundaryMarkers,
		},
		ProfileShopifyFeedAccordion: {
			Profile:         ProfileShopifyFeedAccordion,
			ContentType:     domain.ContentTypeJSON,
			JSONFields:      accordionFields,
			BoundaryMarkers: defaultBoundaryMarkers,
		},
		ProfileShopifyFirstPara: {
			Profile:         ProfileShopifyFirstPara,
			ContentType:     domain.ContentTypeJSON,
			JSONFields:      feedFields,
			BoundaryMarkers: defaultBoundaryMarkers,
			FirstParagraph:  true,
		},
		ProfileStorefrontHTML: {
			Profile:     ProfileStorefrontHTML,
			ContentType: domain.ContentTypeHTML,
			HTMLFields: map[string]HTMLRule{
				domain.FieldName:        {Selector: "h1.product__title"},
				domain.FieldDescription: {Selector: "p.product__description", SkipBoilerplate: true},
				domain.FieldPrice:       {Selector: "meta[itemprop=price]", Attr: "content"},
				domain.FieldIngredients: {Selector: "aside#product-ingredients"},
				domain.FieldBenefits: {
					LabelToken:    "Benefits",
					ValueSelector: "ul.product__details-list",
					ItemSelector:  "li span",
				},
			},
			BoundaryMarkers: defaultBoundaryMarkers,
			BoilerplateMarkers: []string{
				"These statements have not been evaluated",
				"consult your physician",
			},
		},
	}
}

// Profile resolves a registered extraction profile by name
func Profile(name string) (ExtractionRuleSet, error) {
	rules, ok := builtinProfiles()[name]
	if !ok {
		return ExtractionRuleSet{}, fmt.Errorf("%w: %q", domain.ErrUnknownProfile, name)
	}
	return rules, nil
}

// ProfileNames lists the registered profile names
func ProfileNames() []string {
	return []string{
		ProfileShopifyFeed,
		ProfileShopifyFeedAccordion,
		ProfileShopifyFirstPara,
		ProfileStorefrontHTML,
	}
}

// DefaultFieldSpecs is the comparable field set used when a caller does not
// supply its own: names exact, descriptions fuzzy, prices as currency
func DefaultFieldSpecs() []domain.FieldSpec {
	return []domain.FieldSpec{
		{Name: domain.FieldName, Type: domain.SemanticExactText},
		{Name: domain.FieldDescription, Type: domain.SemanticFuzzyText},
		{Name: domain.FieldSKU, Type: domain.SemanticExactText},
		{Name: domain.FieldPrice, Type: domain.SemanticCurrency},
	}
}
