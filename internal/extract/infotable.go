package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/fundtrace/pkg/models"
)

// Field tag patterns. Matched against namespace-stripped, lowercased
// tag names; filings disagree on exact spelling across decades.
var (
	entryLoose  = regexp.MustCompile(`holding|position|security`)
	fieldName   = regexp.MustCompile(`nameofissuer|issuer|security`)
	fieldCUSIP  = regexp.MustCompile(`cusip`)
	fieldShares = regexp.MustCompile(`sshprnamt|shares|amount`)
	fieldValue  = regexp.MustCompile(`value|marketvalue`)
)

// localName strips any namespace prefix from a tag name. Filings use
// prefixes like "ns1:" inconsistently.
func localName(tag string) string {
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// ParseInfoTable extracts positions from an information-table document.
// The parse is tag-name pattern matching over a repaired tree rather
// than schema validation: tolerant of namespace prefixes, casing, and
// the tag-name drift between filing vintages. An entry without both a
// name and a CUSIP is discarded.
func ParseInfoTable(data []byte, source models.ExtractionSource, filter *TargetFilter) ([]models.RawHolding, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(RepairEntities(data)))
	if err != nil {
		return nil, err
	}

	entries := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		switch localName(goquery.NodeName(s)) {
		case "infotable", "holdings", "holding":
			return true
		}
		return false
	})
	if entries.Length() == 0 {
		// Alternative structure seen in a minority of filings.
		entries = doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return entryLoose.MatchString(localName(goquery.NodeName(s)))
		})
	}

	var holdings []models.RawHolding
	entries.Each(func(_ int, entry *goquery.Selection) {
		h := models.RawHolding{Source: source}
		entry.Find("*").Each(func(_ int, field *goquery.Selection) {
			tag := localName(goquery.NodeName(field))
			text := strings.TrimSpace(field.Text())
			switch {
			case h.SecurityName == "" && fieldName.MatchString(tag):
				h.SecurityName = text
			case h.CUSIP == "" && fieldCUSIP.MatchString(tag):
				h.CUSIP = text
			case h.Shares == "" && fieldShares.MatchString(tag):
				h.Shares = text
			case h.Value == "" && fieldValue.MatchString(tag):
				h.Value = text
			}
		})
		if h.SecurityName == "" || h.CUSIP == "" {
			return
		}
		if h.Shares == "" {
			h.Shares = "0"
		}
		if h.Value == "" {
			h.Value = "0"
		}
		if filter == nil || filter.Keep(h.SecurityName, h.CUSIP) {
			holdings = append(holdings, h)
		}
	})
	return holdings, nil
}
