package edgar

// --- Submissions endpoint (data.sec.gov/submissions) ---

// Submissions is the response from the company submissions endpoint.
type Submissions struct {
	CIK        string  `json:"cik"`
	EntityType string  `json:"entityType"`
	Name       string  `json:"name"`
	Filings    Filings `json:"filings"`
}

// Filings groups the inline recent filing list with references to the
// archived index shards that hold the rest of the filing history.
type Filings struct {
	Recent FilingSet  `json:"recent"`
	Files  []ShardRef `json:"files"`
}

// FilingSet is the column-oriented filing list used by both the recent
// block and the archived shards. Rows are correlated by index.
type FilingSet struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// Len returns the number of complete rows in the set. The columns are
// expected to be equal length; the minimum guards ragged responses.
func (fs FilingSet) Len() int {
	n := len(fs.Form)
	if len(fs.AccessionNumber) < n {
		n = len(fs.AccessionNumber)
	}
	if len(fs.FilingDate) < n {
		n = len(fs.FilingDate)
	}
	return n
}

// ShardRef points at one archived index shard document.
type ShardRef struct {
	Name        string `json:"name"`
	FilingCount int    `json:"filingCount"`
	FilingFrom  string `json:"filingFrom"`
	FilingTo    string `json:"filingTo"`
}
