package history

import (
	"testing"

	"github.com/seenimoa/fundtrace/pkg/models"
)

func entry(cik, name, accn, date string) models.TimelineEntry {
	d := day(date)
	return models.TimelineEntry{
		InstitutionCIK:  cik,
		InstitutionName: name,
		AccessionNumber: accn,
		FormType:        "13F-HR",
		FilingDate:      d,
		FilingYear:      d.Year(),
	}
}

func TestProfilesConsistency(t *testing.T) {
	timeline := []models.TimelineEntry{
		// Quarterly filer: 4 filings in one year.
		entry("0001", "Quarterly Filer", "q1", "2021-02-14"),
		entry("0001", "Quarterly Filer", "q2", "2021-05-14"),
		entry("0001", "Quarterly Filer", "q3", "2021-08-14"),
		entry("0001", "Quarterly Filer", "q4", "2021-11-14"),
		// Twice a year across two years.
		entry("0002", "Semiannual Filer", "s1", "2020-05-14"),
		entry("0002", "Semiannual Filer", "s2", "2020-11-14"),
		entry("0002", "Semiannual Filer", "s3", "2021-05-14"),
		entry("0002", "Semiannual Filer", "s4", "2021-11-14"),
		// One filing in two years.
		entry("0003", "Sparse Filer", "x1", "2020-11-14"),
		entry("0003", "Sparse Filer", "x2", "2021-11-14"),
	}

	profiles := Profiles(timeline)
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}

	byName := map[string]models.InstitutionProfile{}
	for _, p := range profiles {
		byName[p.Name] = p
	}

	if p := byName["Quarterly Filer"]; p.Consistency != "High" || p.AvgFilingsPerYear != 4 {
		t.Errorf("quarterly filer profile = %+v", p)
	}
	if p := byName["Semiannual Filer"]; p.Consistency != "Medium" || p.YearsActive != 2 {
		t.Errorf("semiannual filer profile = %+v", p)
	}
	if p := byName["Sparse Filer"]; p.Consistency != "Low" || p.TotalFilings != 2 {
		t.Errorf("sparse filer profile = %+v", p)
	}
}

func TestProfilesDateRangeAndOrder(t *testing.T) {
	timeline := []models.TimelineEntry{
		entry("0001", "Inst A", "a1", "2021-11-14"),
		entry("0001", "Inst A", "a2", "2015-02-14"),
		entry("0001", "Inst A", "a3", "2018-08-14"),
		entry("0002", "Inst B", "b1", "2021-05-14"),
	}

	profiles := Profiles(timeline)
	if profiles[0].Name != "Inst A" {
		t.Errorf("profiles[0] = %q, want the most active institution first", profiles[0].Name)
	}
	a := profiles[0]
	if a.FirstFilingDate != day("2015-02-14") || a.LastFilingDate != day("2021-11-14") {
		t.Errorf("first/last filing dates = %v/%v", a.FirstFilingDate, a.LastFilingDate)
	}
	if a.YearsActive != 3 {
		t.Errorf("years active = %d, want 3", a.YearsActive)
	}
}
