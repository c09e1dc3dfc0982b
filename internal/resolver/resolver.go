// Package resolver maps between ticker symbols and CUSIP security
// identifiers, and matches free-text issuer names against tracked
// securities. Pure lookups over the injected roster; no I/O.
package resolver

import (
	"strings"

	"github.com/seenimoa/fundtrace/internal/config"
)

// Resolver holds the bidirectional ticker/CUSIP mapping and the
// lowercase name aliases for each tracked ticker.
type Resolver struct {
	tickerToCUSIP map[string]string
	cusipToTicker map[string]string
	aliases       map[string][]string // ticker → lowercase aliases (ticker itself included)
}

// New builds a resolver from the security roster.
func New(securities []config.Security) *Resolver {
	r := &Resolver{
		tickerToCUSIP: make(map[string]string, len(securities)),
		cusipToTicker: make(map[string]string, len(securities)),
		aliases:       make(map[string][]string, len(securities)),
	}
	for _, s := range securities {
		ticker := strings.ToUpper(strings.TrimSpace(s.Ticker))
		if ticker == "" {
			continue
		}
		if s.CUSIP != "" {
			r.tickerToCUSIP[ticker] = s.CUSIP
			r.cusipToTicker[s.CUSIP] = ticker
		}
		names := []string{strings.ToLower(ticker)}
		for _, a := range s.Aliases {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				names = append(names, a)
			}
		}
		r.aliases[ticker] = names
	}
	return r
}

// TickerByCUSIP resolves a CUSIP to its ticker. Exact match only;
// absence is not an error.
func (r *Resolver) TickerByCUSIP(cusip string) (string, bool) {
	t, ok := r.cusipToTicker[strings.TrimSpace(cusip)]
	return t, ok
}

// CUSIPByTicker resolves a ticker to its CUSIP. Exact match only.
func (r *Resolver) CUSIPByTicker(ticker string) (string, bool) {
	c, ok := r.tickerToCUSIP[strings.ToUpper(strings.TrimSpace(ticker))]
	return c, ok
}

// MatchName returns the first ticker among targets whose alias appears
// as a case-insensitive substring of the reported security name.
func (r *Resolver) MatchName(securityName string, targets []string) (string, bool) {
	name := strings.ToLower(securityName)
	if name == "" {
		return "", false
	}
	for _, target := range targets {
		ticker := strings.ToUpper(strings.TrimSpace(target))
		for _, alias := range r.aliases[ticker] {
			if strings.Contains(name, alias) {
				return ticker, true
			}
		}
	}
	return "", false
}

// Tickers returns every tracked ticker.
func (r *Resolver) Tickers() []string {
	out := make([]string, 0, len(r.aliases))
	for t := range r.aliases {
		out = append(out, t)
	}
	return out
}
