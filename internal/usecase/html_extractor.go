package usecase

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// HTMLExtractor pulls a ProductRecord out of rendered markup by interpreting
// the rule set's structural rules
type HTMLExtractor struct{}

// NewHTMLExtractor creates an HTML extractor
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract applies the rule set's HTML rules to the document. A field with no
// matching element resolves to the Unknown sentinel; only a document that
// cannot be parsed at all is an error.
func (e *HTMLExtractor) Extract(doc domain.RawDocument, rules ExtractionRuleSet) (domain.ProductRecord, error) {
	record := domain.NewProductRecord()

	if len(bytes.TrimSpace(doc.Body)) == 0 {
		return record, fmt.Errorf("%w: empty HTML document", domain.ErrExtraction)
	}

	gdoc, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return record, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	// Name first so description segmentation can strip its prefix
	if rule, ok := rules.HTMLFields[domain.FieldName]; ok {
		record.SetField(domain.FieldName, applyHTMLRule(gdoc, rule, rules))
	}

	for _, field := range sortedFieldNames(rules.HTMLFields) {
		if field == domain.FieldName {
			continue
		}
		record.SetField(field, applyHTMLRule(gdoc, rules.HTMLFields[field], rules))
	}

	return record, nil
}

// applyHTMLRule resolves one rule against a parsed document, "" when nothing
// matches
func applyHTMLRule(gdoc *goquery.Document, rule HTMLRule, rules ExtractionRuleSet) string {
	if rule.LabelToken != "" {
		return applyLabelRule(gdoc, rule)
	}

	matches := gdoc.Find(rule.Selector)
	if matches.Length() == 0 {
		return ""
	}

	if rule.Attr != "" {
		attr, _ := matches.First().Attr(rule.Attr)
		return NormalizeText(attr)
	}

	if rule.ItemSelector != "" {
		return joinItems(matches.First().Find(rule.ItemSelector))
	}

	if rule.SkipBoilerplate {
		return firstNonBoilerplate(matches, rules.BoilerplateMarkers)
	}

	return NormalizeText(matches.First().Text())
}

// applyLabelRule finds a label-bearing element containing the token and reads
// the value from the element that follows it, mirroring definition-list
// markup (a dt like "Ingredients" followed by its dd)
func applyLabelRule(gdoc *goquery.Document, rule HTMLRule) string {
	labelSelector := rule.LabelSelector
	if labelSelector == "" {
		labelSelector = "dt"
	}

	var label *goquery.Selection
	gdoc.Find(labelSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), strings.ToLower(rule.LabelToken)) {
			label = s
			return false
		}
		return true
	})
	if label == nil {
		return ""
	}

	value := label.Next()
	if rule.ValueSelector != "" {
		value = label.NextAllFiltered(rule.ValueSelector).First()
		if value.Length() == 0 {
			// Some themes nest the value outside the label's sibling
			// chain; widen to the enclosing container.
			value = label.Parent().Find(rule.ValueSelector).First()
		}
	}
	if value.Length() == 0 {
		return ""
	}

	if rule.ItemSelector != "" {
		return joinItems(value.Find(rule.ItemSelector))
	}
	return NormalizeText(value.Text())
}

// firstNonBoilerplate returns the first candidate whose text contains no
// boilerplate marker, "" when every candidate is boilerplate
func firstNonBoilerplate(matches *goquery.Selection, boilerplate []string) string {
	var result string
	matches.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := NormalizeText(s.Text())
		if text == "" || containsAnyFold(text, boilerplate) {
			return true
		}
		result = text
		return false
	})
	return result
}

// joinItems joins the texts of list items with ", ", skipping empty ones
func joinItems(items *goquery.Selection) string {
	var parts []string
	items.Each(func(_ int, s *goquery.Selection) {
		if text := NormalizeText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, ", ")
}

func sortedFieldNames[R any](fields map[string]R) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
