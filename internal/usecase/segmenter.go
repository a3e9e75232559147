package usecase

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// trailingSeparators are the section-heading leftovers trimmed after a
// marker cut (colons, dashes, bullets). Periods stay.
const trailingSeparators = " \t:;-–—•·"

// leadingSeparators are trimmed after stripping a product-name prefix
const leadingSeparators = " \t:–—-"

// SegmentOptions controls how a narrative description is recovered from a
// larger HTML blob
type SegmentOptions struct {
	// BoundaryMarkers signal the start of a non-description section
	// (e.g. "Ingredients"). Evaluated in order: the first marker found
	// anywhere in the text wins, not the leftmost occurrence overall.
	BoundaryMarkers []string

	// BoilerplateMarkers identify paragraphs to skip in first-paragraph
	// mode (e.g. a generic disclaimer)
	BoilerplateMarkers []string

	// ProductName, when the text begins with it, is stripped along with
	// any immediately following punctuation
	ProductName string

	// FirstParagraph selects the first non-boilerplate paragraph instead
	// of cutting the flattened text at a boundary marker
	FirstParagraph bool
}

// SegmentDescription recovers "just the sales description" from an HTML blob
// that may mix it with ingredients, usage and other sections. An empty result
// is not an error; it resolves to the Unknown sentinel so the comparison step
// flags it.
func SegmentDescription(htmlBlob string, opts SegmentOptions) string {
	decoded := strings.TrimSpace(html.UnescapeString(htmlBlob))
	if decoded == "" {
		return domain.Unknown
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return domain.Unknown
	}

	if opts.FirstParagraph {
		if text := firstCleanParagraph(doc, opts); text != "" {
			return text
		}
		// No usable paragraph; fall back to the marker cut over the
		// flattened text, like sources that put everything in one blob.
	}

	text := stripNamePrefix(flattenText(doc), opts.ProductName)
	text = cutAtBoundary(text, opts.BoundaryMarkers)
	if text == "" {
		return domain.Unknown
	}
	return text
}

// firstCleanParagraph returns the first paragraph that is neither boilerplate
// nor a section block, "" if none qualifies
func firstCleanParagraph(doc *goquery.Document, opts SegmentOptions) string {
	var result string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := NormalizeText(s.Text())
		if text == "" {
			return true
		}
		if containsAnyFold(text, opts.BoundaryMarkers) || containsAnyFold(text, opts.BoilerplateMarkers) {
			return true
		}
		text = stripNamePrefix(text, opts.ProductName)
		result = strings.TrimRight(text, trailingSeparators)
		return false
	})
	return result
}

// flattenText renders a parsed document to whitespace-joined visible text
func flattenText(doc *goquery.Document) string {
	var sb strings.Builder
	for _, node := range doc.Selection.Nodes {
		collectText(node, &sb)
	}
	return NormalizeText(sb.String())
}

// collectText walks the node tree appending text nodes, skipping script and
// style content
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// stripNamePrefix removes a leading product-name prefix and the punctuation
// that typically follows it ("Serum X – a brightening serum" -> "a brightening serum").
// The name is normalized like the text it is matched against, and the
// comparison slices by rune so multi-byte names line up.
func stripNamePrefix(text, productName string) string {
	name := NormalizeText(productName)
	if name == "" || name == domain.Unknown {
		return text
	}
	runes := []rune(text)
	prefix := []rune(name)
	if len(runes) < len(prefix) || !strings.EqualFold(string(runes[:len(prefix)]), name) {
		return text
	}
	return strings.TrimLeft(string(runes[len(prefix):]), leadingSeparators)
}

// cutAtBoundary truncates text just before the first boundary marker found,
// trying markers in the given priority order, and trims trailing separator
// punctuation. Text without any marker passes through unchanged.
func cutAtBoundary(text string, markers []string) string {
	lower := strings.ToLower(text)
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if idx := strings.Index(lower, strings.ToLower(marker)); idx >= 0 {
			return strings.TrimRight(text[:idx], trailingSeparators)
		}
	}
	return text
}
