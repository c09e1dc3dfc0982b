package edgar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedEntry is one filing announced in the archive's Atom feed for an
// institution.
type FeedEntry struct {
	Title           string    `json:"title"`
	FormType        string    `json:"form_type"`
	AccessionNumber string    `json:"accession_number"`
	Updated         time.Time `json:"updated"`
	Link            string    `json:"link"`
}

// LatestHoldingsFilings reads the archive's Atom feed of an
// institution's most recent holdings-report filings. Cheaper than a
// full submissions fetch when only new arrivals matter.
func (c *Client) LatestHoldingsFilings(ctx context.Context, cik string) ([]FeedEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s?action=getcompany&CIK=%s&type=13F-HR&owner=include&count=40&output=atom",
		c.feedURL, PadCIK(cik))

	fp := gofeed.NewParser()
	fp.UserAgent = c.userAgent
	fp.Client = c.httpc
	feed, err := fp.ParseURLWithContext(u, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse filings feed for CIK %s: %w", cik, err)
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := FeedEntry{
			Title:           item.Title,
			AccessionNumber: accessionFromFeedID(item.GUID),
			Link:            item.Link,
		}
		if item.UpdatedParsed != nil {
			entry.Updated = *item.UpdatedParsed
		} else if item.PublishedParsed != nil {
			entry.Updated = *item.PublishedParsed
		}
		if i := strings.Index(item.Title, " - "); i > 0 {
			entry.FormType = strings.TrimSpace(item.Title[:i])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// accessionFromFeedID extracts the accession identifier from an Atom
// entry id like "urn:tag:sec.gov,2008:accession-number=0000950123-25-005701".
func accessionFromFeedID(id string) string {
	const marker = "accession-number="
	if i := strings.Index(id, marker); i >= 0 {
		return id[i+len(marker):]
	}
	return ""
}
