// Package report writes the crawl's output artifacts as flat CSV
// tables for downstream reporting. Artifacts are plain files; a run
// interrupted after some have been written leaves valid output.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seenimoa/fundtrace/pkg/models"
	"github.com/seenimoa/fundtrace/pkg/utils"
)

// Writer writes CSV artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteHoldings writes the per-ticker historical holdings table.
// Returns the artifact path.
func (w *Writer) WriteHoldings(ticker string, holdings []models.Holding) (string, error) {
	ticker = strings.ToUpper(ticker)
	rows := [][]string{{
		"institution_cik", "institution_name", "accession_number",
		"filing_date", "filing_year", "security_name", "cusip", "ticker",
		"shares", "market_value", "source",
	}}
	for _, h := range holdings {
		if !strings.EqualFold(h.Ticker, ticker) {
			continue
		}
		rows = append(rows, []string{
			h.InstitutionCIK,
			h.InstitutionName,
			h.AccessionNumber,
			utils.FormatDate(h.FilingDate),
			strconv.Itoa(h.FilingYear),
			h.SecurityName,
			h.CUSIP,
			h.Ticker,
			formatNumber(h.Shares),
			formatNumber(h.MarketValue),
			string(h.Source),
		})
	}
	return w.write(ticker+"_historical_holdings.csv", rows)
}

// WriteYearlySummaries writes the per-ticker yearly summary table.
func (w *Writer) WriteYearlySummaries(ticker string, summaries []models.YearlySummary) (string, error) {
	rows := [][]string{{
		"year", "ticker", "total_filings", "active_institutions",
		"avg_filings_per_institution", "most_active_institution",
		"quarters_with_activity", "total_institutional_shares",
		"total_market_value", "avg_holding_size", "largest_holder",
		"largest_holder_shares", "concentration_top3_pct",
	}}
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			s.Ticker,
			strconv.Itoa(s.TotalFilings),
			strconv.Itoa(s.ActiveInstitutions),
			formatAvg(s.AvgFilingsPerInstitution),
			s.MostActiveInstitution,
			strconv.Itoa(s.QuartersWithActivity),
			formatNumber(s.TotalShares),
			formatNumber(s.TotalMarketValue),
			formatAvg(s.AvgHoldingSize),
			s.LargestHolder,
			formatNumber(s.LargestHolderShares),
			formatAvg(s.ConcentrationTop3Pct),
		})
	}
	return w.write(strings.ToUpper(ticker)+"_yearly_summary.csv", rows)
}

// WriteTimeline writes the filing timeline artifact for one ticker's
// crawl run.
func (w *Writer) WriteTimeline(ticker string, timeline []models.TimelineEntry) (string, error) {
	rows := [][]string{{
		"institution_cik", "institution_name", "accession_number",
		"form_type", "filing_date", "filing_year", "quarter",
	}}
	for _, e := range timeline {
		rows = append(rows, []string{
			e.InstitutionCIK,
			e.InstitutionName,
			e.AccessionNumber,
			e.FormType,
			utils.FormatDate(e.FilingDate),
			strconv.Itoa(e.FilingYear),
			e.Quarter,
		})
	}
	return w.write(strings.ToUpper(ticker)+"_filing_timeline.csv", rows)
}

// WriteInstitutionProfiles writes the institution filing-pattern
// analysis shared by all tickers in a run.
func (w *Writer) WriteInstitutionProfiles(profiles []models.InstitutionProfile) (string, error) {
	rows := [][]string{{
		"institution_cik", "institution_name", "total_filings",
		"years_active", "avg_filings_per_year", "first_filing_date",
		"last_filing_date", "filing_consistency",
	}}
	for _, p := range profiles {
		rows = append(rows, []string{
			p.CIK,
			p.Name,
			strconv.Itoa(p.TotalFilings),
			strconv.Itoa(p.YearsActive),
			formatAvg(p.AvgFilingsPerYear),
			utils.FormatDate(p.FirstFilingDate),
			utils.FormatDate(p.LastFilingDate),
			p.Consistency,
		})
	}
	return w.write("institution_analysis.csv", rows)
}

func (w *Writer) write(name string, rows [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", w.dir, err)
	}
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	return path, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatAvg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
