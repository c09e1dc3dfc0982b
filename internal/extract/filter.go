package extract

import (
	"strings"

	"github.com/seenimoa/fundtrace/internal/resolver"
)

// TargetFilter decides whether an extracted position concerns one of
// the tracked securities. A position is kept when its CUSIP resolves
// to a target ticker or a target alias appears in the reported name.
type TargetFilter struct {
	res     *resolver.Resolver
	targets []string
}

// NewTargetFilter builds a filter for the given tickers. An empty
// ticker list means every security in the resolver's roster.
func NewTargetFilter(res *resolver.Resolver, tickers []string) *TargetFilter {
	targets := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		targets = res.Tickers()
	}
	return &TargetFilter{res: res, targets: targets}
}

// Keep reports whether a position with the given reported name and
// CUSIP belongs to a target security.
func (f *TargetFilter) Keep(securityName, cusip string) bool {
	if ticker, ok := f.res.TickerByCUSIP(cusip); ok {
		for _, t := range f.targets {
			if t == ticker {
				return true
			}
		}
	}
	_, ok := f.res.MatchName(securityName, f.targets)
	return ok
}

// Targets returns the tickers this filter selects for.
func (f *TargetFilter) Targets() []string { return f.targets }

// CUSIPFor resolves a target ticker to its CUSIP, empty if unknown.
func (f *TargetFilter) CUSIPFor(ticker string) string {
	c, _ := f.res.CUSIPByTicker(ticker)
	return c
}
