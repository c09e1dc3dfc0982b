// Package models defines the standard data models shared across FundTrace:
// filing index entries, canonical holdings records, and derived summaries.
package models

import "time"

// Institution identifies a tracked institutional filer. Supplied from
// the static roster configuration, never derived from filings.
type Institution struct {
	CIK  string `json:"cik"`  // zero-padded 10-digit registry identifier
	Name string `json:"name"` // display name, e.g. "Berkshire Hathaway Inc"
}

// FilingIndexEntry is one holdings-report filing in an institution's
// filing index. Immutable once created by the crawler.
type FilingIndexEntry struct {
	CIK             string    `json:"cik"`
	AccessionNumber string    `json:"accession_number"`
	FilingDate      time.Time `json:"filing_date"`
	FormType        string    `json:"form_type"`
	FilingYear      int       `json:"filing_year"`    // == FilingDate.Year()
	FilingQuarter   int       `json:"filing_quarter"` // ((month-1)/3)+1
}

// ExtractionSource tags which parser tier produced a holding.
type ExtractionSource string

const (
	SourceInfoTable  ExtractionSource = "infotable" // structured information table
	SourcePrimaryDoc ExtractionSource = "primary"   // table embedded in primary document
	SourceFullText   ExtractionSource = "fulltext"  // line-scan fallback, low precision
)

// Scaled reports whether values from this source are stated in
// thousands of dollars and must be scaled to absolute units.
func (s ExtractionSource) Scaled() bool {
	return s == SourceInfoTable || s == SourcePrimaryDoc
}

// LowConfidence reports whether the source tier is the last-resort
// text scan, whose units and precision are not trustworthy.
func (s ExtractionSource) LowConfidence() bool {
	return s == SourceFullText
}

// RawHolding is a single position as extracted from a filing document,
// before numeric coercion and identifier resolution.
type RawHolding struct {
	SecurityName string           `json:"security_name"`
	CUSIP        string           `json:"cusip,omitempty"`
	Shares       string           `json:"shares"` // raw numeric text as reported
	Value        string           `json:"value"`  // raw numeric text as reported
	Source       ExtractionSource `json:"source"`
	RawLine      string           `json:"raw_line,omitempty"` // fulltext tier only
}

// Holding is the canonical normalized holdings record. Share count and
// market value default to 0 on parse failure rather than null; a zero
// is therefore ambiguous between "none held" and "unparseable".
type Holding struct {
	SecurityName string           `json:"security_name"`
	CUSIP        string           `json:"cusip,omitempty"`
	Ticker       string           `json:"ticker,omitempty"` // empty when unresolved
	Shares       float64          `json:"shares"`
	MarketValue  float64          `json:"market_value"` // absolute dollars
	Source       ExtractionSource `json:"source"`

	// Provenance. CIK and AccessionNumber are always non-empty.
	InstitutionCIK  string    `json:"institution_cik"`
	InstitutionName string    `json:"institution_name"`
	AccessionNumber string    `json:"accession_number"`
	FilingDate      time.Time `json:"filing_date"`
	FilingYear      int       `json:"filing_year"`
}

// YearlySummary is the derived per-year ownership statistics for one
// ticker. Recomputed from the holdings set on demand, never stored as
// a source of truth.
type YearlySummary struct {
	Year   int    `json:"year"`
	Ticker string `json:"ticker"`

	// Filing activity, counted over every holdings-bearing filing.
	TotalFilings             int     `json:"total_filings"`
	ActiveInstitutions       int     `json:"active_institutions"`
	AvgFilingsPerInstitution float64 `json:"avg_filings_per_institution"`
	MostActiveInstitution    string  `json:"most_active_institution"`
	QuartersWithActivity     int     `json:"quarters_with_activity"`

	// Share statistics, computed after collapsing each institution to
	// its most recent filing within the year.
	TotalShares          float64 `json:"total_institutional_shares"`
	TotalMarketValue     float64 `json:"total_market_value"`
	AvgHoldingSize       float64 `json:"avg_holding_size"`
	LargestHolder        string  `json:"largest_holder"`
	LargestHolderShares  float64 `json:"largest_holding_shares"`
	ConcentrationTop3Pct float64 `json:"concentration_top3"`
}

// TimelineEntry is one filing in an institution's holdings-report
// timeline, recorded whether or not any holding parsed out of it.
type TimelineEntry struct {
	InstitutionCIK  string    `json:"institution_cik"`
	InstitutionName string    `json:"institution_name"`
	AccessionNumber string    `json:"accession_number"`
	FormType        string    `json:"form_type"`
	FilingDate      time.Time `json:"filing_date"`
	FilingYear      int       `json:"filing_year"`
	Quarter         string    `json:"quarter"` // "Q1".."Q4"
}

// InstitutionProfile summarizes an institution's filing cadence over
// the crawled window.
type InstitutionProfile struct {
	CIK               string    `json:"institution_cik"`
	Name              string    `json:"institution_name"`
	TotalFilings      int       `json:"total_filings"`
	YearsActive       int       `json:"years_active"`
	AvgFilingsPerYear float64   `json:"avg_filings_per_year"`
	FirstFilingDate   time.Time `json:"first_filing_date"`
	LastFilingDate    time.Time `json:"last_filing_date"`
	Consistency       string    `json:"filing_consistency"` // "High", "Medium", "Low"
}
