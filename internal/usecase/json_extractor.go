package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// JSONFeedExtractor pulls a ProductRecord out of a structured product feed
// (Shopify-style: title, variants, body_html) via dot-path rules. Descriptive
// fields buried in embedded HTML go through the description segmenter or an
// HTML sub-rule.
type JSONFeedExtractor struct{}

// NewJSONFeedExtractor creates a JSON feed extractor
func NewJSONFeedExtractor() *JSONFeedExtractor {
	return &JSONFeedExtractor{}
}

// Extract applies the rule set's JSON rules to the document. A path that
// resolves to nothing is not an error; the field becomes the Unknown
// sentinel. Invalid JSON is an ExtractionError.
func (e *JSONFeedExtractor) Extract(doc domain.RawDocument, rules ExtractionRuleSet) (domain.ProductRecord, error) {
	record := domain.NewProductRecord()

	var root interface{}
	if err := json.Unmarshal(doc.Body, &root); err != nil {
		return record, fmt.Errorf("%w: invalid JSON: %v", domain.ErrExtraction, err)
	}

	// Name first: segmentation strips the product-name prefix from
	// descriptions, so it must be known before any Segment rule runs.
	if rule, ok := rules.JSONFields[domain.FieldName]; ok {
		record.SetField(domain.FieldName, e.applyRule(root, rule, rules, ""))
	}
	name := record.Name

	for _, field := range sortedFieldNames(rules.JSONFields) {
		if field == domain.FieldName {
			continue
		}
		record.SetField(field, e.applyRule(root, rules.JSONFields[field], rules, name))
	}

	return record, nil
}

// applyRule resolves one JSON rule, "" when the path or sub-rule yields nothing
func (e *JSONFeedExtractor) applyRule(root interface{}, rule JSONRule, rules ExtractionRuleSet, productName string) string {
	raw, ok := resolvePath(root, rule.Path)
	if !ok {
		return ""
	}

	switch {
	case rule.Segment:
		return SegmentDescription(raw, SegmentOptions{
			BoundaryMarkers:    rules.BoundaryMarkers,
			BoilerplateMarkers: rules.BoilerplateMarkers,
			ProductName:        productName,
			FirstParagraph:     rules.FirstParagraph,
		})
	case rule.HTML != nil:
		gdoc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err != nil {
			return ""
		}
		return applyHTMLRule(gdoc, *rule.HTML, rules)
	default:
		return NormalizeText(raw)
	}
}

// resolvePath walks a dot path with numeric array indexes through decoded
// JSON, e.g. "product.variants.0.sku". Scalars render to their decimal text.
func resolvePath(root interface{}, path string) (string, bool) {
	if path == "" {
		return "", false
	}

	current := root
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[part]
			if !ok {
				return "", false
			}
			current = next
		case []interface{}:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return "", false
			}
			current = node[idx]
		default:
			return "", false
		}
	}

	switch v := current.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", false
	default:
		return "", false
	}
}
