package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// reportTimeFormat matches the Date/Time Captured column format of the
// operator reports
const reportTimeFormat = "2006-01-02 15:04:05"

// AuditConfig holds configuration for the audit service
type AuditConfig struct {
	Concurrency        int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// AuditService orchestrates catalog audits: fetch both documents of each
// pair, extract, reconcile, and collect report rows. Pairs are independent,
// so they run on a bounded worker pool; a failed pair is skipped and
// counted, never fatal.
type AuditService struct {
	fetcher    domain.DocumentFetcher
	cache      domain.DocumentCache
	clock      domain.Clock
	reconciler *ReconcileService

	concurrency int
	cacheTTL    time.Duration
	debug       bool
}

// NewAuditService creates an audit service with its collaborators
func NewAuditService(
	fetcher domain.DocumentFetcher,
	cache domain.DocumentCache,
	clock domain.Clock,
	reconciler *ReconcileService,
	config AuditConfig,
) *AuditService {
	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &AuditService{
		fetcher:     fetcher,
		cache:       cache,
		clock:       clock,
		reconciler:  reconciler,
		concurrency: concurrency,
		cacheTTL:    cacheTTL,
		debug:       config.EnableDebugLogging,
	}
}

// SkippedPair records a pair that produced no comparison rows and why
type SkippedPair struct {
	Pair   domain.PairSpec `json:"pair"`
	Reason string          `json:"reason"`
}

// RunSummary is the outcome of one audit run
type RunSummary struct {
	RunID     string                 `json:"runId"`
	StartedAt time.Time              `json:"startedAt"`
	Pairs     int                    `json:"pairs"`
	Compared  int                    `json:"compared"`
	Skipped   []SkippedPair          `json:"skipped,omitempty"`
	Records   []domain.ScrapedRecord `json:"records"`
	Rows      []domain.ComparisonRow `json:"rows"`
}

type pairResult struct {
	records []domain.ScrapedRecord
	rows    []domain.ComparisonRow
	err     error
}

// Run reconciles every pair and returns the collected rows in input order
// (rows within a pair follow field-spec order). Specs may be nil for the
// default field set.
func (s *AuditService) Run(ctx context.Context, pairs []domain.PairSpec, specs []domain.FieldSpec) (*RunSummary, error) {
	if len(specs) == 0 {
		specs = DefaultFieldSpecs()
	}

	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: s.clock.Now(),
		Pairs:     len(pairs),
	}

	results := make([]pairResult, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, pair := range pairs {
		g.Go(func() error {
			results[i] = s.processPair(gctx, pair, specs)
			// A failed pair is recorded, not propagated: one bad
			// vendor page must not cancel the run.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, res := range results {
		if res.err != nil {
			log.Printf("[AUDIT] skipping pair %s: %v", pairs[i].SourceURL, res.err)
			summary.Skipped = append(summary.Skipped, SkippedPair{Pair: pairs[i], Reason: res.err.Error()})
			continue
		}
		summary.Compared++
		summary.Records = append(summary.Records, res.records...)
		summary.Rows = append(summary.Rows, res.rows...)
	}

	log.Printf("[AUDIT] run %s: %d pairs, %d compared, %d skipped",
		summary.RunID, summary.Pairs, summary.Compared, len(summary.Skipped))
	return summary, nil
}

// processPair fetches, extracts and reconciles one pair. Any failure skips
// the whole pair: a partial comparison would misreport drift.
func (s *AuditService) processPair(ctx context.Context, pair domain.PairSpec, specs []domain.FieldSpec) pairResult {
	capturedAt := s.clock.Now().Format(reportTimeFormat)

	docA, err := s.fetchDocument(ctx, pair.SourceURL)
	if err != nil {
		return pairResult{err: fmt.Errorf("fetch source: %w", err)}
	}
	docB, err := s.fetchDocument(ctx, pair.CanonicalURL)
	if err != nil {
		return pairResult{err: fmt.Errorf("fetch canonical: %w", err)}
	}

	recordA, rulesA, err := ExtractWithProfile(*docA, pair.SourceProfile)
	if err != nil {
		return pairResult{err: fmt.Errorf("extract source: %w", err)}
	}
	recordB, _, err := ExtractWithProfile(*docB, pair.CanonicalProfile)
	if err != nil {
		return pairResult{err: fmt.Errorf("extract canonical: %w", err)}
	}

	key := pair.ProductKey
	if key == "" {
		key = pair.SourceURL
	}

	rows := s.reconciler.Reconcile(recordA, recordB, applyThresholdOverrides(specs, rulesA.FuzzyThresholds))
	for i := range rows {
		rows[i].ProductKey = key
		rows[i].CapturedAt = capturedAt
	}

	if s.debug {
		log.Printf("[AUDIT] %s: %d rows", key, len(rows))
	}

	return pairResult{
		records: []domain.ScrapedRecord{
			{URL: pair.SourceURL, Record: recordA, CapturedAt: capturedAt},
			{URL: pair.CanonicalURL, Record: recordB, CapturedAt: capturedAt},
		},
		rows: rows,
	}
}

// fetchDocument consults the cache before going to the network. Fetch
// failures surface to the caller; cache failures only cost a refetch.
func (s *AuditService) fetchDocument(ctx context.Context, url string) (*domain.RawDocument, error) {
	if doc, err := s.cache.Get(ctx, url); err == nil && doc != nil {
		if s.debug {
			log.Printf("[AUDIT] cache hit: %s", url)
		}
		return doc, nil
	}

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, url, doc, s.cacheTTL); err != nil && s.debug {
		log.Printf("[AUDIT] cache store failed for %s: %v", url, err)
	}
	return doc, nil
}
