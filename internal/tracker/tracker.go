// Package tracker orchestrates the crawl pipeline: for each tracked
// institution, list holdings-report filings, run the parser cascade,
// and normalize positions in the target tickers. Institutions fan out
// across a bounded worker group; every archive request still flows
// through the one shared client limiter.
package tracker

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/fundtrace/internal/config"
	"github.com/seenimoa/fundtrace/internal/crawler"
	"github.com/seenimoa/fundtrace/internal/extract"
	"github.com/seenimoa/fundtrace/internal/normalize"
	"github.com/seenimoa/fundtrace/internal/resolver"
	"github.com/seenimoa/fundtrace/pkg/models"
	"github.com/seenimoa/fundtrace/pkg/utils"
)

// ArchiveClient is the full archive surface the pipeline needs.
type ArchiveClient interface {
	crawler.Indexer
	extract.Fetcher
}

// Result is one crawl run's output: the normalized holdings plus the
// complete filing timeline, which records filings whether or not any
// holding parsed out of them.
type Result struct {
	Holdings []models.Holding
	Timeline []models.TimelineEntry
}

// Tracker runs the crawl pipeline over the configured rosters.
type Tracker struct {
	cfg    *config.Config
	client ArchiveClient
	res    *resolver.Resolver
}

// New creates a tracker over the configured rosters and archive client.
func New(cfg *config.Config, client ArchiveClient) *Tracker {
	return &Tracker{
		cfg:    cfg,
		client: client,
		res:    resolver.New(cfg.Roster.Securities),
	}
}

// Resolver exposes the roster resolver for downstream consumers.
func (t *Tracker) Resolver() *resolver.Resolver { return t.res }

// Track crawls every rostered institution for the given tickers. An
// empty ticker list means the full security roster. A failing
// institution is logged and contributes nothing; only cancellation
// aborts the run. Results are ordered newest filing first.
func (t *Tracker) Track(ctx context.Context, tickers []string) (*Result, error) {
	filter := extract.NewTargetFilter(t.res, tickers)
	norm := normalize.New(t.res, filter.Targets())
	cascade := extract.NewCascade(t.client)
	crawl := crawler.New(t.client)
	endYear := time.Now().Year()

	workers := t.cfg.Crawl.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	result := &Result{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, entry := range t.cfg.Roster.Institutions {
		inst := models.Institution{CIK: entry.CIK, Name: entry.Name}
		g.Go(func() error {
			holdings, timeline, err := t.trackInstitution(gctx, inst, crawl, cascade, filter, norm, endYear)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("tracker: skipping institution %s (%s): %v", inst.Name, inst.CIK, err)
				return nil
			}
			mu.Lock()
			result.Holdings = append(result.Holdings, holdings...)
			result.Timeline = append(result.Timeline, timeline...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Accession tiebreaks keep same-day filings in a stable order no
	// matter which worker finished first.
	sort.Slice(result.Holdings, func(i, j int) bool {
		if !result.Holdings[i].FilingDate.Equal(result.Holdings[j].FilingDate) {
			return result.Holdings[i].FilingDate.After(result.Holdings[j].FilingDate)
		}
		return result.Holdings[i].AccessionNumber > result.Holdings[j].AccessionNumber
	})
	sort.Slice(result.Timeline, func(i, j int) bool {
		if !result.Timeline[i].FilingDate.Equal(result.Timeline[j].FilingDate) {
			return result.Timeline[i].FilingDate.After(result.Timeline[j].FilingDate)
		}
		return result.Timeline[i].AccessionNumber > result.Timeline[j].AccessionNumber
	})
	return result, nil
}

// Timeline lists every holdings-report filing for the rostered
// institutions without fetching or parsing any documents.
func (t *Tracker) Timeline(ctx context.Context) ([]models.TimelineEntry, error) {
	crawl := crawler.New(t.client)
	endYear := time.Now().Year()

	var timeline []models.TimelineEntry
	for _, entry := range t.cfg.Roster.Institutions {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		inst := models.Institution{CIK: entry.CIK, Name: entry.Name}
		filings, err := crawl.ListHoldingsFilings(ctx, inst.CIK, t.cfg.Crawl.StartYear, endYear)
		if err != nil {
			log.Printf("tracker: skipping institution %s (%s): %v", inst.Name, inst.CIK, err)
			continue
		}
		timeline = append(timeline, timelineFor(inst, filings)...)
	}
	sort.Slice(timeline, func(i, j int) bool {
		if !timeline[i].FilingDate.Equal(timeline[j].FilingDate) {
			return timeline[i].FilingDate.After(timeline[j].FilingDate)
		}
		return timeline[i].AccessionNumber > timeline[j].AccessionNumber
	})
	return timeline, nil
}

func (t *Tracker) trackInstitution(ctx context.Context, inst models.Institution, crawl *crawler.Crawler, cascade *extract.Cascade, filter *extract.TargetFilter, norm *normalize.Normalizer, endYear int) ([]models.Holding, []models.TimelineEntry, error) {
	filings, err := crawl.ListHoldingsFilings(ctx, inst.CIK, t.cfg.Crawl.StartYear, endYear)
	if err != nil {
		return nil, nil, err
	}

	timeline := timelineFor(inst, filings)

	var holdings []models.Holding
	for _, f := range selectFilings(filings, t.cfg.Crawl) {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		raws := cascade.Extract(ctx, f.CIK, f.AccessionNumber, filter)
		if len(raws) == 0 {
			// Per-filing miss. Expected for filings that never held
			// the targets; never fatal.
			continue
		}
		holdings = append(holdings, norm.NormalizeAll(raws, f, inst)...)
	}
	return holdings, timeline, nil
}

func timelineFor(inst models.Institution, filings []models.FilingIndexEntry) []models.TimelineEntry {
	out := make([]models.TimelineEntry, 0, len(filings))
	for _, f := range filings {
		out = append(out, models.TimelineEntry{
			InstitutionCIK:  inst.CIK,
			InstitutionName: inst.Name,
			AccessionNumber: f.AccessionNumber,
			FormType:        f.FormType,
			FilingDate:      f.FilingDate,
			FilingYear:      f.FilingYear,
			Quarter:         utils.QuarterLabel(f.FilingDate),
		})
	}
	return out
}

// selectFilings picks which filings to parse. Input is newest first:
// years at or after DenseSinceYear are all kept, older filings are
// sampled every OlderFilingStride entries, and the per-institution cap
// applies last. Full-history parses are the dominant cost of a run;
// these knobs trade depth for requests.
func selectFilings(filings []models.FilingIndexEntry, cfg config.CrawlConfig) []models.FilingIndexEntry {
	stride := cfg.OlderFilingStride
	if stride < 1 {
		stride = 1
	}
	var out []models.FilingIndexEntry
	older := 0
	for _, f := range filings {
		if f.FilingYear >= cfg.DenseSinceYear {
			out = append(out, f)
		} else {
			if older%stride == 0 {
				out = append(out, f)
			}
			older++
		}
		if cfg.MaxFilingsPerInstitution > 0 && len(out) >= cfg.MaxFilingsPerInstitution {
			break
		}
	}
	return out
}
