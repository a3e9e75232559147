package domain

import (
	"context"
	"time"
)

// DocumentFetcher retrieves a raw document over the network. It is the only
// collaborator that performs I/O on behalf of the pipeline.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*RawDocument, error)
}

// DocumentCache caches fetched documents by URL so the canonical feed is not
// refetched for every vendor page that maps to it
type DocumentCache interface {
	Get(ctx context.Context, key string) (*RawDocument, error)
	Set(ctx context.Context, key string, doc *RawDocument, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ReportWriter persists audit output. The pipeline itself never writes.
type ReportWriter interface {
	WriteRecords(records []ScrapedRecord) error
	WriteComparison(rows []ComparisonRow) error
}

// Clock supplies timestamps for report metadata. Comparison logic never
// reads it.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }
