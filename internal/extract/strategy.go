// Package extract pulls raw holdings out of filing documents. Filings
// span decades of format drift, so extraction is a tiered fallback: a
// structured information-table parse, the same parse against the
// primary document, then a low-precision full-text scan. The first
// tier to yield anything wins.
package extract

import (
	"context"
	"log"

	"github.com/seenimoa/fundtrace/pkg/models"
)

// Document names tried by the structured tiers.
const (
	infoTableDoc  = "infotable.xml"
	primaryDocXML = "primary_doc.xml"
)

// Fetcher is the slice of the archive client the cascade needs.
type Fetcher interface {
	Document(ctx context.Context, cik, accession, name string) ([]byte, error)
	FilingText(ctx context.Context, cik, accession string) ([]byte, error)
}

// Strategy is one extraction tier. An error means the tier could not
// run (fetch failure, unreadable markup); an empty result means it ran
// and found nothing. Both cause fallthrough to the next tier.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, cik, accession string, filter *TargetFilter) ([]models.RawHolding, error)
}

// InfoTableStrategy parses the filing's dedicated information-table
// document.
type InfoTableStrategy struct {
	fetcher Fetcher
}

func (s *InfoTableStrategy) Name() string { return string(models.SourceInfoTable) }

func (s *InfoTableStrategy) Extract(ctx context.Context, cik, accession string, filter *TargetFilter) ([]models.RawHolding, error) {
	data, err := s.fetcher.Document(ctx, cik, accession, infoTableDoc)
	if err != nil {
		return nil, err
	}
	return ParseInfoTable(data, models.SourceInfoTable, filter)
}

// PrimaryDocStrategy applies the same table parse to the filing's
// primary document. Some older filings embed the table there instead
// of a separate file.
type PrimaryDocStrategy struct {
	fetcher Fetcher
}

func (s *PrimaryDocStrategy) Name() string { return string(models.SourcePrimaryDoc) }

func (s *PrimaryDocStrategy) Extract(ctx context.Context, cik, accession string, filter *TargetFilter) ([]models.RawHolding, error) {
	data, err := s.fetcher.Document(ctx, cik, accession, primaryDocXML)
	if err != nil {
		return nil, err
	}
	return ParseInfoTable(data, models.SourcePrimaryDoc, filter)
}

// FullTextStrategy scans the combined filing text blob line by line.
// Last resort for filings that predate structured tables.
type FullTextStrategy struct {
	fetcher Fetcher
}

func (s *FullTextStrategy) Name() string { return string(models.SourceFullText) }

func (s *FullTextStrategy) Extract(ctx context.Context, cik, accession string, filter *TargetFilter) ([]models.RawHolding, error) {
	data, err := s.fetcher.FilingText(ctx, cik, accession)
	if err != nil {
		return nil, err
	}
	return ScanText(data, filter), nil
}

// Cascade evaluates strategies in order until one yields holdings.
type Cascade struct {
	strategies []Strategy
}

// NewCascade builds the standard three-tier cascade.
func NewCascade(fetcher Fetcher) *Cascade {
	return &Cascade{strategies: []Strategy{
		&InfoTableStrategy{fetcher: fetcher},
		&PrimaryDocStrategy{fetcher: fetcher},
		&FullTextStrategy{fetcher: fetcher},
	}}
}

// NewCascadeWith builds a cascade over an explicit strategy order.
func NewCascadeWith(strategies ...Strategy) *Cascade {
	return &Cascade{strategies: strategies}
}

// Extract runs the cascade for one filing. The first tier that yields
// at least one holding short-circuits the rest. Tier errors are logged
// and swallowed; an exhausted cascade returns an empty result, never
// an error, so one unreadable filing cannot abort a batch.
func (c *Cascade) Extract(ctx context.Context, cik, accession string, filter *TargetFilter) []models.RawHolding {
	for _, s := range c.strategies {
		if ctx.Err() != nil {
			return nil
		}
		holdings, err := s.Extract(ctx, cik, accession, filter)
		if err != nil {
			log.Printf("extract: %s tier failed for %s/%s: %v", s.Name(), cik, accession, err)
			continue
		}
		if len(holdings) > 0 {
			return holdings
		}
	}
	return nil
}
