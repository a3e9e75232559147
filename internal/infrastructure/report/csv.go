package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// Comparison report columns. Kept stable: downstream sheets key on them.
var comparisonHeader = []string{
	"Product URL",
	"Field",
	"Source Value",
	"Canonical Value",
	"Match?",
	"Score",
	"Date/Time Captured",
}

// coreColumns are the scrape-dump columns every record carries; optional
// fields present in any record are appended after them in sorted order
var coreColumns = []string{
	domain.FieldName,
	domain.FieldDescription,
	domain.FieldSKU,
	domain.FieldPrice,
}

// CSVWriter persists audit output as two CSV documents: a dump of every
// extracted record and the per-field comparison report
type CSVWriter struct {
	records    io.Writer
	comparison io.Writer
}

// NewCSVWriter creates a report writer over the two destinations
func NewCSVWriter(records, comparison io.Writer) *CSVWriter {
	return &CSVWriter{records: records, comparison: comparison}
}

// WriteRecords writes the scrape dump: one row per extracted record
func (w *CSVWriter) WriteRecords(records []domain.ScrapedRecord) error {
	extras := extraColumns(records)

	cw := csv.NewWriter(w.records)
	header := append([]string{"Product URL"}, coreColumns...)
	header = append(header, extras...)
	header = append(header, "Date/Time Captured")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing scrape header: %w", err)
	}

	for _, rec := range records {
		row := []string{rec.URL}
		for _, col := range coreColumns {
			row = append(row, rec.Record.Field(col))
		}
		for _, col := range extras {
			row = append(row, rec.Record.Field(col))
		}
		row = append(row, rec.CapturedAt)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing scrape row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteComparison writes the per-field comparison report
func (w *CSVWriter) WriteComparison(rows []domain.ComparisonRow) error {
	cw := csv.NewWriter(w.comparison)
	if err := cw.Write(comparisonHeader); err != nil {
		return fmt.Errorf("writing comparison header: %w", err)
	}

	for _, row := range rows {
		score := ""
		if row.Score != nil {
			score = strconv.FormatFloat(*row.Score, 'f', 3, 64)
		}
		record := []string{
			row.ProductKey,
			row.Field,
			row.ValueA,
			row.ValueB,
			string(row.Verdict),
			score,
			row.CapturedAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing comparison row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// extraColumns collects the optional field names present in any record,
// sorted for a stable header
func extraColumns(records []domain.ScrapedRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for name := range rec.Record.Extra {
			seen[name] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}
