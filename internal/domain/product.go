package domain

// Unknown is the sentinel value for any field a source does not expose or an
// extraction rule could not resolve. Records never carry empty or absent
// fields, so comparison code never branches on missing keys.
const Unknown = "N/A"

// ContentType identifies how a raw document should be parsed
type ContentType string

const (
	ContentTypeHTML ContentType = "html"
	ContentTypeJSON ContentType = "json"
)

// RawDocument is one retrieved source document, unparsed
type RawDocument struct {
	URL         string      `json:"url,omitempty"`
	ContentType ContentType `json:"contentType"`
	Body        []byte      `json:"body"`
}

// Canonical field names shared by both sides of a comparison. They double as
// report column headers, so they keep their operator-facing spelling.
const (
	FieldName        = "Product Name"
	FieldDescription = "Product Description"
	FieldSKU         = "SKU"
	FieldPrice       = "Product Price"
	FieldIngredients = "Ingredients"
	FieldBenefits    = "Benefits"
	FieldSkinConcern = "Skin Concerns"
	FieldUsage       = "Usage Instructions"
	FieldExpertTip   = "Expert Tip"
)

// ProductRecord is the canonical field set extracted from one source.
// Price stays as raw decimal text; parsing happens at comparison time only.
type ProductRecord struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	SKU         string            `json:"sku"`
	Price       string            `json:"price"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// NewProductRecord returns a record with every field set to the Unknown sentinel
func NewProductRecord() ProductRecord {
	return ProductRecord{
		Name:        Unknown,
		Description: Unknown,
		SKU:         Unknown,
		Price:       Unknown,
	}
}

// Field returns the value for a canonical field name, Unknown if the record
// does not carry it
func (r ProductRecord) Field(name string) string {
	switch name {
	case FieldName:
		return r.Name
	case FieldDescription:
		return r.Description
	case FieldSKU:
		return r.SKU
	case FieldPrice:
		return r.Price
	}
	if v, ok := r.Extra[name]; ok && v != "" {
		return v
	}
	return Unknown
}

// SetField stores a value under a canonical field name. Empty values resolve
// to the Unknown sentinel.
func (r *ProductRecord) SetField(name, value string) {
	if value == "" {
		value = Unknown
	}
	switch name {
	case FieldName:
		r.Name = value
	case FieldDescription:
		r.Description = value
	case FieldSKU:
		r.SKU = value
	case FieldPrice:
		r.Price = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[name] = value
	}
}

// SemanticType selects the matching strategy for a field
type SemanticType string

const (
	SemanticExactText SemanticType = "exact-text"
	SemanticCurrency  SemanticType = "currency"
	SemanticFuzzyText SemanticType = "fuzzy-text"
)

// FieldSpec declares one comparable field and its matching semantics
type FieldSpec struct {
	Name string       `json:"name"`
	Type SemanticType `json:"type"`
	// MatchThreshold applies to fuzzy-text fields only; zero means the
	// matcher default
	MatchThreshold float64 `json:"matchThreshold,omitempty"`
}

// Verdict is the outcome of comparing one field across two records
type Verdict string

const (
	VerdictMatch       Verdict = "Match"
	VerdictMismatch    Verdict = "Mismatch"
	VerdictUnparseable Verdict = "Unparseable"
)

// ComparisonRow is the unit of reconciliation output: one field, both values,
// and the verdict. Score is set for fuzzy-text fields only.
type ComparisonRow struct {
	ProductKey string   `json:"productKey,omitempty"`
	Field      string   `json:"field"`
	ValueA     string   `json:"valueA"`
	ValueB     string   `json:"valueB"`
	Verdict    Verdict  `json:"verdict"`
	Score      *float64 `json:"score,omitempty"`
	CapturedAt string   `json:"capturedAt,omitempty"`
}
