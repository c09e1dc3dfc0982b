// Package crawler walks an institution's filing index and extracts the
// holdings-report filings within a year window. The index is split into
// a recent inline block plus an unbounded list of archived shards; the
// crawler visits all of them, so depth of history costs requests, not
// correctness.
package crawler

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/seenimoa/fundtrace/internal/edgar"
	"github.com/seenimoa/fundtrace/pkg/models"
	"github.com/seenimoa/fundtrace/pkg/utils"
)

// holdingsReportForm is the exact form type of a quarterly holdings
// report. Amendments ("13F-HR/A") and notice filings ("13F-NT") are
// distinct strings and do not match.
const holdingsReportForm = "13F-HR"

// Indexer is the slice of the archive client the crawler needs.
type Indexer interface {
	Submissions(ctx context.Context, cik string) (*edgar.Submissions, error)
	IndexShard(ctx context.Context, name string) (*edgar.FilingSet, error)
}

// Crawler lists holdings-report filings from the archive index.
type Crawler struct {
	index Indexer
}

// New creates a crawler over the given index source.
func New(index Indexer) *Crawler {
	return &Crawler{index: index}
}

// ListHoldingsFilings returns every holdings-report filing for the
// institution whose filing year falls in [startYear, endYear], newest
// first. A shard that fails to fetch or parse is logged and skipped;
// the remaining shards still contribute, so one bad archive page costs
// a slice of history rather than the whole institution.
func (c *Crawler) ListHoldingsFilings(ctx context.Context, cik string, startYear, endYear int) ([]models.FilingIndexEntry, error) {
	subs, err := c.index.Submissions(ctx, cik)
	if err != nil {
		return nil, fmt.Errorf("list filings for CIK %s: %w", cik, err)
	}

	entries := collectFilings(&subs.Filings.Recent, cik, startYear, endYear)

	for _, shard := range subs.Filings.Files {
		set, err := c.index.IndexShard(ctx, shard.Name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("crawler: skipping index shard %s for CIK %s: %v", shard.Name, cik, err)
			continue
		}
		entries = append(entries, collectFilings(set, cik, startYear, endYear)...)
	}

	// Accession tiebreak keeps same-day filings in a stable order
	// across runs.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].FilingDate.Equal(entries[j].FilingDate) {
			return entries[i].FilingDate.After(entries[j].FilingDate)
		}
		return entries[i].AccessionNumber > entries[j].AccessionNumber
	})
	return entries, nil
}

// collectFilings filters one column-oriented filing set down to
// holdings reports within the year window.
func collectFilings(set *edgar.FilingSet, cik string, startYear, endYear int) []models.FilingIndexEntry {
	var out []models.FilingIndexEntry
	for i := 0; i < set.Len(); i++ {
		if set.Form[i] != holdingsReportForm {
			continue
		}
		filed := utils.ParseFilingDate(set.FilingDate[i])
		if filed.IsZero() {
			continue
		}
		year := filed.Year()
		if year < startYear || year > endYear {
			continue
		}
		out = append(out, models.FilingIndexEntry{
			CIK:             cik,
			AccessionNumber: set.AccessionNumber[i],
			FilingDate:      filed,
			FormType:        set.Form[i],
			FilingYear:      year,
			FilingQuarter:   utils.FilingQuarter(filed),
		})
	}
	return out
}
