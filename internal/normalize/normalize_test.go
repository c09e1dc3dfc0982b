package normalize

import (
	"testing"
	"time"

	"github.com/seenimoa/fundtrace/internal/config"
	"github.com/seenimoa/fundtrace/internal/resolver"
	"github.com/seenimoa/fundtrace/pkg/models"
)

func TestCoerceNumberIsTotal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234.5", 1234.5},
		{"(1)", 0}, // footnote marker, no digits left
		{"", 0},
		{"$1,000", 1000},
		{"500", 500},
		{"1234567", 1234567},
		{"12,345(2)", 12345},
		{"-42", -42},
		{"n/a", 0},
		{"-", 0},
		{".", 0},
		{"  7,000 SH ", 7000},
	}
	for _, tt := range tests {
		if got := CoerceNumber(tt.in); got != tt.want {
			t.Errorf("CoerceNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func testNormalizer() *Normalizer {
	res := resolver.New([]config.Security{
		{Ticker: "NVDA", CUSIP: "67066G104", Aliases: []string{"nvidia"}},
		{Ticker: "AAPL", CUSIP: "037833100", Aliases: []string{"apple"}},
	})
	return New(res, nil)
}

func testProvenance() (models.FilingIndexEntry, models.Institution) {
	filed, _ := time.Parse("2006-01-02", "2021-11-15")
	filing := models.FilingIndexEntry{
		CIK:             "0001067983",
		AccessionNumber: "0001067983-21-000123",
		FilingDate:      filed,
		FormType:        "13F-HR",
		FilingYear:      2021,
		FilingQuarter:   4,
	}
	inst := models.Institution{CIK: "0001067983", Name: "Berkshire Hathaway Inc"}
	return filing, inst
}

func TestNormalizeScalesStructuredTiers(t *testing.T) {
	n := testNormalizer()
	filing, inst := testProvenance()

	for _, source := range []models.ExtractionSource{models.SourceInfoTable, models.SourcePrimaryDoc} {
		h := n.Normalize(models.RawHolding{
			SecurityName: "NVIDIA CORP",
			CUSIP:        "67066G104",
			Shares:       "500",
			Value:        "500",
			Source:       source,
		}, filing, inst)
		if h.MarketValue != 500000 {
			t.Errorf("%s market value = %v, want 500000", source, h.MarketValue)
		}
		if h.Shares != 500 {
			t.Errorf("%s shares = %v, want 500 (share counts are not scaled)", source, h.Shares)
		}
	}
}

func TestNormalizeDoesNotScaleFullText(t *testing.T) {
	n := testNormalizer()
	filing, inst := testProvenance()

	h := n.Normalize(models.RawHolding{
		SecurityName: "NVDA common stock 500 500",
		CUSIP:        "67066G104",
		Shares:       "500",
		Value:        "500",
		Source:       models.SourceFullText,
	}, filing, inst)
	if h.MarketValue != 500 {
		t.Errorf("fulltext market value = %v, want 500 (unit ambiguous, no scaling)", h.MarketValue)
	}
	if !h.Source.LowConfidence() {
		t.Error("fulltext holding not flagged low confidence")
	}
}

func TestNormalizeClampsNegativeShares(t *testing.T) {
	n := testNormalizer()
	filing, inst := testProvenance()

	h := n.Normalize(models.RawHolding{
		SecurityName: "NVIDIA CORP",
		CUSIP:        "67066G104",
		Shares:       "-100",
		Value:        "10",
		Source:       models.SourceInfoTable,
	}, filing, inst)
	if h.Shares != 0 {
		t.Errorf("negative share count = %v, want clamp to 0", h.Shares)
	}
}

func TestNormalizeTickerResolution(t *testing.T) {
	n := testNormalizer()
	filing, inst := testProvenance()

	// CUSIP wins.
	h := n.Normalize(models.RawHolding{
		SecurityName: "SOME UNRELATED NAME",
		CUSIP:        "037833100",
		Shares:       "1",
		Value:        "1",
		Source:       models.SourceInfoTable,
	}, filing, inst)
	if h.Ticker != "AAPL" {
		t.Errorf("CUSIP resolution ticker = %q, want AAPL", h.Ticker)
	}

	// Alias fallback when CUSIP is unknown.
	h = n.Normalize(models.RawHolding{
		SecurityName: "Apple Computer Inc",
		CUSIP:        "000000000",
		Shares:       "1",
		Value:        "1",
		Source:       models.SourceInfoTable,
	}, filing, inst)
	if h.Ticker != "AAPL" {
		t.Errorf("alias resolution ticker = %q, want AAPL", h.Ticker)
	}

	// Unresolved stays empty, not an error.
	h = n.Normalize(models.RawHolding{
		SecurityName: "UNKNOWN CO",
		CUSIP:        "111111111",
		Shares:       "1",
		Value:        "1",
		Source:       models.SourceInfoTable,
	}, filing, inst)
	if h.Ticker != "" {
		t.Errorf("unresolved ticker = %q, want empty", h.Ticker)
	}
}

func TestNormalizeStampsProvenance(t *testing.T) {
	n := testNormalizer()
	filing, inst := testProvenance()

	h := n.Normalize(models.RawHolding{
		SecurityName: "NVIDIA CORP",
		CUSIP:        "67066G104",
		Shares:       "1",
		Value:        "1",
		Source:       models.SourceInfoTable,
	}, filing, inst)
	if h.InstitutionCIK == "" || h.AccessionNumber == "" {
		t.Fatal("holding missing institution or accession provenance")
	}
	if h.FilingYear != filing.FilingDate.Year() {
		t.Errorf("filing year %d != date year %d", h.FilingYear, filing.FilingDate.Year())
	}
}
