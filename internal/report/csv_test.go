package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seenimoa/fundtrace/pkg/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteHoldings(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	filed := time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC)
	holdings := []models.Holding{
		{
			SecurityName:    "NVIDIA CORP",
			CUSIP:           "67066G104",
			Ticker:          "NVDA",
			Shares:          1000,
			MarketValue:     500000,
			Source:          models.SourceInfoTable,
			InstitutionCIK:  "0001067983",
			InstitutionName: "Berkshire Hathaway Inc",
			AccessionNumber: "accn-1",
			FilingDate:      filed,
			FilingYear:      2021,
		},
		{Ticker: "AAPL", InstitutionCIK: "0001067983", AccessionNumber: "accn-2", FilingDate: filed, FilingYear: 2021},
	}

	path, err := w.WriteHoldings("nvda", holdings)
	if err != nil {
		t.Fatalf("WriteHoldings: %v", err)
	}
	if filepath.Base(path) != "NVDA_historical_holdings.csv" {
		t.Errorf("artifact name = %s", filepath.Base(path))
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 NVDA row", len(rows))
	}
	if rows[0][0] != "institution_cik" {
		t.Errorf("header = %v", rows[0])
	}
	got := rows[1]
	if got[3] != "2021-11-15" || got[8] != "1000" || got[9] != "500000" || got[10] != "infotable" {
		t.Errorf("row = %v", got)
	}
}

func TestWriteYearlySummaries(t *testing.T) {
	w := NewWriter(t.TempDir())
	path, err := w.WriteYearlySummaries("NVDA", []models.YearlySummary{
		{
			Year: 2021, Ticker: "NVDA", TotalFilings: 8, ActiveInstitutions: 4,
			AvgFilingsPerInstitution: 2, QuartersWithActivity: 4,
			TotalShares: 1000, ConcentrationTop3Pct: 90,
		},
	})
	if err != nil {
		t.Fatalf("WriteYearlySummaries: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[1][0] != "2021" || rows[1][4] != "2.00" || rows[1][12] != "90.00" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestWriteTimelineAndProfiles(t *testing.T) {
	w := NewWriter(t.TempDir())
	filed := time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC)

	path, err := w.WriteTimeline("NVDA", []models.TimelineEntry{
		{
			InstitutionCIK: "0001067983", InstitutionName: "Berkshire Hathaway Inc",
			AccessionNumber: "accn-1", FormType: "13F-HR",
			FilingDate: filed, FilingYear: 2021, Quarter: "Q4",
		},
	})
	if err != nil {
		t.Fatalf("WriteTimeline: %v", err)
	}
	rows := readCSV(t, path)
	if len(rows) != 2 || rows[1][6] != "Q4" {
		t.Errorf("timeline rows = %v", rows)
	}

	path, err = w.WriteInstitutionProfiles([]models.InstitutionProfile{
		{
			CIK: "0001067983", Name: "Berkshire Hathaway Inc",
			TotalFilings: 12, YearsActive: 3, AvgFilingsPerYear: 4,
			FirstFilingDate: filed.AddDate(-3, 0, 0), LastFilingDate: filed,
			Consistency: "High",
		},
	})
	if err != nil {
		t.Fatalf("WriteInstitutionProfiles: %v", err)
	}
	if filepath.Base(path) != "institution_analysis.csv" {
		t.Errorf("artifact name = %s", filepath.Base(path))
	}
	rows = readCSV(t, path)
	if len(rows) != 2 || rows[1][7] != "High" {
		t.Errorf("profile rows = %v", rows)
	}
}
