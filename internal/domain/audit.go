package domain

// PairSpec identifies one vendor/canonical document pair to reconcile
type PairSpec struct {
	// ProductKey identifies the pair in report rows; defaults to SourceURL
	ProductKey string `json:"productKey,omitempty"`

	SourceURL    string `json:"sourceUrl"`
	CanonicalURL string `json:"canonicalUrl"`

	// Extraction profile names, resolved against the profile registry
	SourceProfile    string `json:"sourceProfile"`
	CanonicalProfile string `json:"canonicalProfile"`
}

// ScrapedRecord is one extracted record plus its report metadata, the unit of
// the scrape-dump output
type ScrapedRecord struct {
	URL        string        `json:"url"`
	Record     ProductRecord `json:"record"`
	CapturedAt string        `json:"capturedAt"`
}
