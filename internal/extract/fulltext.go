package extract

import (
	"bufio"
	"bytes"
	"log"
	"regexp"

	"github.com/seenimoa/fundtrace/pkg/models"
)

// numberToken matches a numeric token with optional thousands
// separators and a decimal part.
var numberToken = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)

// maxScanLine bounds line length when scanning filing blobs, which can
// carry uuencoded attachments on very long lines.
const maxScanLine = 1 << 20

// ScanText scans a filing's combined text blob line by line for
// mentions of any target ticker. On a matching line the first numeric
// token is taken as the share count and the last as the market value.
// Low precision: units are ambiguous and the reported name is the raw
// line itself. Only used when no structured table parses.
func ScanText(data []byte, filter *TargetFilter) []models.RawHolding {
	patterns := make(map[string]*regexp.Regexp, len(filter.Targets()))
	for _, t := range filter.Targets() {
		patterns[t] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
	}

	var holdings []models.RawHolding
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), maxScanLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		for _, ticker := range filter.Targets() {
			if !patterns[ticker].Match(line) {
				continue
			}
			nums := numberToken.FindAllString(string(line), -1)
			if len(nums) == 0 {
				continue
			}
			h := models.RawHolding{
				SecurityName: string(line),
				CUSIP:        filter.CUSIPFor(ticker),
				Shares:       nums[0],
				Source:       models.SourceFullText,
				RawLine:      string(line),
			}
			if len(nums) > 1 {
				h.Value = nums[len(nums)-1]
			} else {
				h.Value = "0"
			}
			holdings = append(holdings, h)
		}
	}
	if err := scanner.Err(); err != nil {
		// A line beyond maxScanLine aborts the scan; anything matched
		// before that point is still returned.
		log.Printf("fulltext scan stopped early: %v", err)
	}
	return holdings
}
