package history

import (
	"sort"

	"github.com/seenimoa/fundtrace/pkg/models"
)

// Consistency rating thresholds, in average filings per active year.
// A quarterly filer lands at 4.
const (
	consistencyHigh   = 4
	consistencyMedium = 2
)

// Profiles summarizes each institution's filing cadence from its
// timeline. Sorted by total filings descending, name ascending on ties.
func Profiles(timeline []models.TimelineEntry) []models.InstitutionProfile {
	type acc struct {
		profile models.InstitutionProfile
		years   map[int]bool
	}
	byCIK := make(map[string]*acc)
	for _, e := range timeline {
		a := byCIK[e.InstitutionCIK]
		if a == nil {
			a = &acc{
				profile: models.InstitutionProfile{
					CIK:             e.InstitutionCIK,
					Name:            e.InstitutionName,
					FirstFilingDate: e.FilingDate,
					LastFilingDate:  e.FilingDate,
				},
				years: make(map[int]bool),
			}
			byCIK[e.InstitutionCIK] = a
		}
		a.profile.TotalFilings++
		a.years[e.FilingYear] = true
		if e.FilingDate.Before(a.profile.FirstFilingDate) {
			a.profile.FirstFilingDate = e.FilingDate
		}
		if e.FilingDate.After(a.profile.LastFilingDate) {
			a.profile.LastFilingDate = e.FilingDate
		}
	}

	profiles := make([]models.InstitutionProfile, 0, len(byCIK))
	for _, a := range byCIK {
		p := a.profile
		p.YearsActive = len(a.years)
		if p.YearsActive > 0 {
			p.AvgFilingsPerYear = float64(p.TotalFilings) / float64(p.YearsActive)
		}
		switch {
		case p.AvgFilingsPerYear >= consistencyHigh:
			p.Consistency = "High"
		case p.AvgFilingsPerYear >= consistencyMedium:
			p.Consistency = "Medium"
		default:
			p.Consistency = "Low"
		}
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].TotalFilings != profiles[j].TotalFilings {
			return profiles[i].TotalFilings > profiles[j].TotalFilings
		}
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}
