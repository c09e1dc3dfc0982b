// Package edgar implements the filing archive client. All requests to
// the archive host flow through one shared rate limiter regardless of
// which institution crawl issues them, and every request carries the
// identifying User-Agent the host requires.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/seenimoa/fundtrace/internal/cache"
	"github.com/seenimoa/fundtrace/internal/config"
	"github.com/seenimoa/fundtrace/internal/infra"
)

const (
	// Submissions indexes change as new filings land; cache briefly.
	submissionsTTL = 1 * time.Hour
	memoryCacheTTL = 30 * time.Minute
)

// Client fetches submissions indexes, index shards, and filing
// documents from the archive host.
type Client struct {
	baseURL   string
	feedURL   string
	userAgent string
	httpc     *http.Client
	limiter   *rate.Limiter
	docs      cache.Cache
	docTTL    time.Duration
}

// NewClient creates an archive client from configuration. Documents
// are cached through a memory tier and, when a cache directory is
// configured, a disk tier that survives interrupted crawls.
func NewClient(cfg config.EdgarConfig) *Client {
	mem := cache.NewMemoryCache(memoryCacheTTL, 10*time.Minute)
	var docs cache.Cache = mem
	if cfg.CacheDir != "" {
		docs = cache.NewLayeredCache(mem, cache.NewDiskCache(cfg.CacheDir, time.Duration(cfg.CacheTTLHours)*time.Hour))
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		feedURL:   strings.TrimRight(cfg.FeedURL, "/"),
		userAgent: cfg.UserAgent,
		httpc:     infra.NewHTTPClient(time.Duration(cfg.TimeoutSec) * time.Second),
		limiter:   rate.NewLimiter(rate.Every(cfg.RequestInterval()), 1),
		docs:      docs,
		docTTL:    time.Duration(cfg.CacheTTLHours) * time.Hour,
	}
}

// PadCIK pads an institution identifier to 10 digits with leading zeros.
func PadCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}

// CleanAccession strips the dashes from an accession identifier, which
// is how the document endpoint addresses a filing's directory.
func CleanAccession(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}

// Submissions fetches an institution's filing index: the recent inline
// list plus references to archived index shards.
func (c *Client) Submissions(ctx context.Context, cik string) (*Submissions, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.baseURL, PadCIK(cik))
	data, err := c.get(ctx, u, submissionsTTL)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions for CIK %s: %w", cik, err)
	}
	var subs Submissions
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parse submissions for CIK %s: %w", cik, err)
	}
	return &subs, nil
}

// IndexShard fetches one archived index shard by its document name.
// Shards carry the filing-set columns at the top level.
func (c *Client) IndexShard(ctx context.Context, name string) (*FilingSet, error) {
	u := fmt.Sprintf("%s/submissions/%s", c.baseURL, name)
	data, err := c.get(ctx, u, c.docTTL)
	if err != nil {
		return nil, fmt.Errorf("fetch index shard %s: %w", name, err)
	}
	var set FilingSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse index shard %s: %w", name, err)
	}
	return &set, nil
}

// Document fetches a named document from a filing's directory.
func (c *Client) Document(ctx context.Context, cik, accession, name string) ([]byte, error) {
	u := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s",
		c.baseURL, PadCIK(cik), CleanAccession(accession), name)
	return c.get(ctx, u, c.docTTL)
}

// FilingText fetches the combined full-text blob of a filing.
func (c *Client) FilingText(ctx context.Context, cik, accession string) ([]byte, error) {
	return c.Document(ctx, cik, accession, accession+".txt")
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"User-Agent":      c.userAgent,
		"Accept-Encoding": "gzip, deflate",
	}
}

// get serves from the document cache when possible; otherwise it waits
// for the shared rate limiter, fetches, and caches the result.
func (c *Client) get(ctx context.Context, url string, ttl time.Duration) ([]byte, error) {
	key := cache.Key(url)
	if data, ok := c.docs.Get(key); ok {
		return data, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	data, err := infra.GetBytes(ctx, c.httpc, url, c.headers())
	if err != nil {
		return nil, err
	}
	_ = c.docs.Set(key, data, ttl)
	return data, nil
}
