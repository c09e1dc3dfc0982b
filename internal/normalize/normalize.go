// Package normalize converts raw extracted positions into canonical
// holdings records: total numeric coercion, unit scaling keyed on the
// extraction tier, and ticker resolution against the tracked roster.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/seenimoa/fundtrace/internal/resolver"
	"github.com/seenimoa/fundtrace/pkg/models"
)

var (
	// footnoteMarker matches parenthesized digits like "(1)" appended
	// to reported figures as footnote references.
	footnoteMarker = regexp.MustCompile(`\(\d+\)`)
	nonNumeric     = regexp.MustCompile(`[^0-9.\-]`)
)

// CoerceNumber parses a reported numeric string, tolerating thousands
// separators, currency symbols, and footnote markers. Total over any
// input: a string that cannot be coerced yields 0, never an error.
// The zero is lossy, it cannot be told apart from a genuine zero.
func CoerceNumber(s string) float64 {
	s = footnoteMarker.ReplaceAllString(s, "")
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Normalizer canonicalizes raw holdings with identifier resolution.
type Normalizer struct {
	res     *resolver.Resolver
	targets []string
}

// New creates a normalizer resolving against the given target tickers.
// An empty list means every ticker in the resolver's roster.
func New(res *resolver.Resolver, targets []string) *Normalizer {
	cleaned := make([]string, 0, len(targets))
	for _, t := range targets {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		cleaned = res.Tickers()
	}
	return &Normalizer{res: res, targets: cleaned}
}

// Normalize converts one raw position into a canonical Holding using
// the filing's provenance. Structured-tier market values are reported
// in thousands and are scaled to absolute units here; full-text values
// have no known unit and pass through unscaled, flagged low confidence
// by their source tag. Negative share counts are a parse defect and
// clamp to 0.
func (n *Normalizer) Normalize(raw models.RawHolding, filing models.FilingIndexEntry, inst models.Institution) models.Holding {
	shares := CoerceNumber(raw.Shares)
	if shares < 0 {
		shares = 0
	}
	value := CoerceNumber(raw.Value)
	if raw.Source.Scaled() {
		value *= 1000
	}

	ticker := ""
	if t, ok := n.res.TickerByCUSIP(raw.CUSIP); ok {
		ticker = t
	} else if t, ok := n.res.MatchName(raw.SecurityName, n.targets); ok {
		ticker = t
	}

	return models.Holding{
		SecurityName: raw.SecurityName,
		CUSIP:        strings.TrimSpace(raw.CUSIP),
		Ticker:       ticker,
		Shares:       shares,
		MarketValue:  value,
		Source:       raw.Source,

		InstitutionCIK:  inst.CIK,
		InstitutionName: inst.Name,
		AccessionNumber: filing.AccessionNumber,
		FilingDate:      filing.FilingDate,
		FilingYear:      filing.FilingYear,
	}
}

// NormalizeAll canonicalizes a batch from one filing.
func (n *Normalizer) NormalizeAll(raws []models.RawHolding, filing models.FilingIndexEntry, inst models.Institution) []models.Holding {
	out := make([]models.Holding, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw, filing, inst))
	}
	return out
}
