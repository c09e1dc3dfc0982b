package extract

import (
	"context"
	"testing"

	"github.com/seenimoa/fundtrace/internal/infra"
	"github.com/seenimoa/fundtrace/pkg/models"
)

// mockFetcher serves canned documents and counts calls per document so
// tests can verify which tiers ran.
type mockFetcher struct {
	docs     map[string][]byte
	docErrs  map[string]error
	fullText []byte
	textErr  error

	docCalls  map[string]int
	textCalls int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		docs:     map[string][]byte{},
		docErrs:  map[string]error{},
		docCalls: map[string]int{},
	}
}

func (m *mockFetcher) Document(ctx context.Context, cik, accession, name string) ([]byte, error) {
	m.docCalls[name]++
	if err := m.docErrs[name]; err != nil {
		return nil, err
	}
	if data, ok := m.docs[name]; ok {
		return data, nil
	}
	return nil, &infra.HTTPStatusError{URL: name, StatusCode: 404}
}

func (m *mockFetcher) FilingText(ctx context.Context, cik, accession string) ([]byte, error) {
	m.textCalls++
	return m.fullText, m.textErr
}

func TestCascadeShortCircuits(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.docs[infoTableDoc] = []byte(sampleInfoTable)

	cascade := NewCascade(fetcher)
	holdings := cascade.Extract(context.Background(), "0001067983", "0001067983-21-000123", testFilter("NVDA"))

	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	if holdings[0].Source != models.SourceInfoTable {
		t.Errorf("source = %q, want %q", holdings[0].Source, models.SourceInfoTable)
	}
	if n := fetcher.docCalls[primaryDocXML]; n != 0 {
		t.Errorf("primary document fetched %d times after info table succeeded", n)
	}
	if fetcher.textCalls != 0 {
		t.Errorf("full text fetched %d times after info table succeeded", fetcher.textCalls)
	}
}

func TestCascadeFallsThroughToPrimaryDoc(t *testing.T) {
	fetcher := newMockFetcher()
	// infotable.xml missing (404), table embedded in the primary doc.
	fetcher.docs[primaryDocXML] = []byte(sampleInfoTable)

	cascade := NewCascade(fetcher)
	holdings := cascade.Extract(context.Background(), "cik", "accn", testFilter("NVDA"))

	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	if holdings[0].Source != models.SourcePrimaryDoc {
		t.Errorf("source = %q, want %q", holdings[0].Source, models.SourcePrimaryDoc)
	}
	if fetcher.docCalls[infoTableDoc] != 1 {
		t.Errorf("info table tier attempted %d times, want 1", fetcher.docCalls[infoTableDoc])
	}
	if fetcher.textCalls != 0 {
		t.Errorf("full text fetched %d times", fetcher.textCalls)
	}
}

func TestCascadeFallsThroughToFullText(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.fullText = []byte("NVDA COMMON STOCK 1,000 50,000\n")

	cascade := NewCascade(fetcher)
	holdings := cascade.Extract(context.Background(), "cik", "accn", testFilter("NVDA"))

	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	if holdings[0].Source != models.SourceFullText {
		t.Errorf("source = %q, want %q", holdings[0].Source, models.SourceFullText)
	}
}

func TestCascadeExhaustedReturnsEmptyNotError(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.textErr = &infra.HTTPStatusError{URL: "text", StatusCode: 500}

	cascade := NewCascade(fetcher)
	holdings := cascade.Extract(context.Background(), "cik", "accn", testFilter("NVDA"))

	if holdings != nil {
		t.Errorf("exhausted cascade returned %d holdings, want none", len(holdings))
	}
	if fetcher.docCalls[infoTableDoc] != 1 || fetcher.docCalls[primaryDocXML] != 1 || fetcher.textCalls != 1 {
		t.Errorf("tiers attempted %d/%d/%d times, want 1/1/1",
			fetcher.docCalls[infoTableDoc], fetcher.docCalls[primaryDocXML], fetcher.textCalls)
	}
}

func TestCascadeStopsOnCancelledContext(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.docs[infoTableDoc] = []byte(sampleInfoTable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cascade := NewCascade(fetcher)
	if holdings := cascade.Extract(ctx, "cik", "accn", testFilter("NVDA")); holdings != nil {
		t.Errorf("cancelled cascade returned %d holdings", len(holdings))
	}
	if fetcher.docCalls[infoTableDoc] != 0 {
		t.Error("cancelled cascade still fetched documents")
	}
}
