// Package history derives per-year ownership analytics from the
// normalized holdings set. Summaries are recomputed on demand from the
// holdings records; they are never a source of truth.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/seenimoa/fundtrace/pkg/models"
	"github.com/seenimoa/fundtrace/pkg/utils"
)

// Summarize folds holdings for one ticker into yearly summaries,
// newest year first. Filing-activity counts run over every filing in
// the year; share statistics first collapse each institution to its
// most recent filing that year, so an amended or repeated filing
// contributes once rather than inflating the totals.
func Summarize(holdings []models.Holding, ticker string, startYear, endYear int) []models.YearlySummary {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	byYear := make(map[int][]models.Holding)
	for _, h := range holdings {
		if !strings.EqualFold(h.Ticker, ticker) {
			continue
		}
		if h.FilingYear < startYear || (endYear > 0 && h.FilingYear > endYear) {
			continue
		}
		byYear[h.FilingYear] = append(byYear[h.FilingYear], h)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	summaries := make([]models.YearlySummary, 0, len(years))
	for _, y := range years {
		summaries = append(summaries, summarizeYear(y, ticker, byYear[y]))
	}
	return summaries
}

// filingTotals accumulates one filing's positions in the ticker.
type filingTotals struct {
	date   time.Time
	shares float64
	value  float64
}

func summarizeYear(year int, ticker string, rows []models.Holding) models.YearlySummary {
	s := models.YearlySummary{Year: year, Ticker: ticker}

	// Activity counts over every filing.
	filings := make(map[string]bool)
	perInstFilings := make(map[string]map[string]bool)
	names := make(map[string]string)
	quarters := make(map[int]bool)
	for _, h := range rows {
		filings[h.AccessionNumber] = true
		if perInstFilings[h.InstitutionCIK] == nil {
			perInstFilings[h.InstitutionCIK] = make(map[string]bool)
		}
		perInstFilings[h.InstitutionCIK][h.AccessionNumber] = true
		names[h.InstitutionCIK] = h.InstitutionName
		quarters[utils.FilingQuarter(h.FilingDate)] = true
	}
	s.TotalFilings = len(filings)
	s.ActiveInstitutions = len(perInstFilings)
	s.QuartersWithActivity = len(quarters)
	if s.ActiveInstitutions > 0 {
		s.AvgFilingsPerInstitution = float64(s.TotalFilings) / float64(s.ActiveInstitutions)
	}

	mostActive, mostCount := "", 0
	for cik, accns := range perInstFilings {
		if len(accns) > mostCount || (len(accns) == mostCount && names[cik] < mostActive) {
			mostActive, mostCount = names[cik], len(accns)
		}
	}
	s.MostActiveInstitution = mostActive

	// Share statistics: per institution, keep its most recent filing
	// of the year. Positions inside the kept filing are summed.
	byInstFiling := make(map[string]map[string]*filingTotals)
	for _, h := range rows {
		if byInstFiling[h.InstitutionCIK] == nil {
			byInstFiling[h.InstitutionCIK] = make(map[string]*filingTotals)
		}
		ft := byInstFiling[h.InstitutionCIK][h.AccessionNumber]
		if ft == nil {
			ft = &filingTotals{date: h.FilingDate}
			byInstFiling[h.InstitutionCIK][h.AccessionNumber] = ft
		}
		ft.shares += h.Shares
		ft.value += h.MarketValue
	}

	instShares := make([]float64, 0, len(byInstFiling))
	for cik, byAccn := range byInstFiling {
		var kept *filingTotals
		var keptAccn string
		for accn, ft := range byAccn {
			if kept == nil || ft.date.After(kept.date) ||
				(ft.date.Equal(kept.date) && accn > keptAccn) {
				kept, keptAccn = ft, accn
			}
		}
		s.TotalShares += kept.shares
		s.TotalMarketValue += kept.value
		instShares = append(instShares, kept.shares)
		if kept.shares > s.LargestHolderShares {
			s.LargestHolderShares = kept.shares
			s.LargestHolder = names[cik]
		}
	}
	if n := len(instShares); n > 0 {
		s.AvgHoldingSize = s.TotalShares / float64(n)
	}

	// Top-3 concentration, guarded against a zero total.
	if s.TotalShares > 0 {
		sort.Sort(sort.Reverse(sort.Float64Slice(instShares)))
		top := 0.0
		for i := 0; i < len(instShares) && i < 3; i++ {
			top += instShares[i]
		}
		s.ConcentrationTop3Pct = top / s.TotalShares * 100
	}
	return s
}
