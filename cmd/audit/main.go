package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarahmorr016/RegimenPro-Scrape/config"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/infrastructure/cache"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/infrastructure/fetch"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/infrastructure/report"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/usecase"
)

var (
	inputPath        string
	recordsPath      string
	comparisonPath   string
	sourceProfile    string
	canonicalProfile string
	concurrency      int
	debug            bool
)

var rootCmd = &cobra.Command{
	Use:   "audit",
	Short: "Reconcile vendor catalogs against the RegimenPro store",
	Long: `Reads a CSV of vendor/RegimenPro URL pairs, fetches both documents of
each pair, extracts a canonical product record from each, and reports
per-field match verdicts. Failed pairs are skipped and listed in the run
summary.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV of URL pairs to audit (required)")
	rootCmd.Flags().StringVarP(&recordsPath, "records", "r", "scraped_products.csv", "scrape dump output CSV")
	rootCmd.Flags().StringVarP(&comparisonPath, "comparison", "c", "comparison.csv", "comparison report output CSV")
	rootCmd.Flags().StringVar(&sourceProfile, "source-profile", usecase.ProfileShopifyFeed, "extraction profile for the vendor side")
	rootCmd.Flags().StringVar(&canonicalProfile, "canonical-profile", usecase.ProfileShopifyFirstPara, "extraction profile for the canonical side")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 0, "concurrent pairs (default from config)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "verbose fetch/match logging")
	_ = rootCmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if concurrency <= 0 {
		concurrency = cfg.Audit.Concurrency
	}

	pairs, err := loadPairs()
	if err != nil {
		return err
	}
	log.Printf("[AUDIT] %d pairs loaded from %s", len(pairs), inputPath)

	fetcher := fetch.NewClient(fetch.Config{
		UserAgent:         cfg.Fetch.UserAgent,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		Burst:             cfg.Fetch.Burst,
		Timeout:           cfg.Fetch.Timeout,
	})
	fetcher.SetDebug(debug)

	matcher := usecase.NewFieldMatcher(usecase.MatchConfig{
		FuzzyThreshold:     cfg.Matching.FuzzyThreshold,
		EnableDebugLogging: debug || cfg.Matching.EnableDebugLogging,
	})
	service := usecase.NewAuditService(
		fetcher,
		cache.NewMemoryCache(),
		domain.ClockFunc(time.Now),
		usecase.NewReconcileService(matcher),
		usecase.AuditConfig{
			Concurrency:        concurrency,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: debug,
		},
	)

	summary, err := service.Run(cmd.Context(), pairs, nil)
	if err != nil {
		return fmt.Errorf("audit run failed: %w", err)
	}

	if err := writeReports(summary); err != nil {
		return err
	}

	log.Printf("[AUDIT] run %s complete: %d/%d pairs compared, %d rows",
		summary.RunID, summary.Compared, summary.Pairs, len(summary.Rows))
	for _, skipped := range summary.Skipped {
		log.Printf("[AUDIT] skipped %s: %s", skipped.Pair.SourceURL, skipped.Reason)
	}
	return nil
}

// loadPairs reads the input CSV and rewrites page URLs to feed endpoints for
// JSON profiles
func loadPairs() ([]domain.PairSpec, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening pair list: %w", err)
	}
	defer in.Close()

	pairs, err := report.ReadPairs(in, sourceProfile, canonicalProfile)
	if err != nil {
		return nil, err
	}

	srcRules, err := usecase.Profile(sourceProfile)
	if err != nil {
		return nil, err
	}
	canRules, err := usecase.Profile(canonicalProfile)
	if err != nil {
		return nil, err
	}

	for i := range pairs {
		// Report rows key on the vendor page URL even when the fetch
		// goes to the feed endpoint
		pairs[i].ProductKey = pairs[i].SourceURL

		if srcRules.ContentType == domain.ContentTypeJSON {
			if pairs[i].SourceURL, err = fetch.FeedURL(pairs[i].SourceURL); err != nil {
				return nil, err
			}
		}
		if canRules.ContentType == domain.ContentTypeJSON {
			if pairs[i].CanonicalURL, err = fetch.FeedURL(pairs[i].CanonicalURL); err != nil {
				return nil, err
			}
		}
	}
	return pairs, nil
}

// writeReports persists the scrape dump and comparison report
func writeReports(summary *usecase.RunSummary) error {
	recordsFile, err := os.Create(recordsPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", recordsPath, err)
	}
	defer recordsFile.Close()

	comparisonFile, err := os.Create(comparisonPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", comparisonPath, err)
	}
	defer comparisonFile.Close()

	writer := report.NewCSVWriter(recordsFile, comparisonFile)
	if err := writer.WriteRecords(summary.Records); err != nil {
		return err
	}
	if err := writer.WriteComparison(summary.Rows); err != nil {
		return err
	}

	log.Printf("[AUDIT] reports written: %s, %s", recordsPath, comparisonPath)
	return nil
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
