package config

// DefaultInstitutions returns the built-in roster of major
// institutional filers tracked when no roster is configured.
func DefaultInstitutions() []InstitutionEntry {
	return []InstitutionEntry{
		{CIK: "0001067983", Name: "Berkshire Hathaway Inc"},
		{CIK: "0001364742", Name: "Vanguard Group Inc"},
		{CIK: "0000950123", Name: "BlackRock Inc"},
		{CIK: "0001418814", Name: "State Street Corp"},
		{CIK: "0000315066", Name: "Fidelity Management & Research"},
		{CIK: "0001159556", Name: "T. Rowe Price Associates Inc"},
		{CIK: "0000820932", Name: "Capital Research Global Investors"},
		{CIK: "0001011006", Name: "Northern Trust Corp"},
		{CIK: "0000929351", Name: "Goldman Sachs Group Inc"},
		{CIK: "0000886982", Name: "Invesco Ltd"},
		{CIK: "0001019687", Name: "Wellington Management Co"},
		{CIK: "0000902165", Name: "Dimensional Fund Advisors"},
		{CIK: "0001166559", Name: "Ark Investment Management LLC"},
	}
}

// DefaultSecurities returns the built-in roster of tracked tickers
// with their CUSIP identifiers and free-text matching aliases.
func DefaultSecurities() []Security {
	return []Security{
		{Ticker: "NVDA", CUSIP: "67066G104", Aliases: []string{"nvidia"}},
		{Ticker: "AMZN", CUSIP: "023135106", Aliases: []string{"amazon"}},
		{Ticker: "GOOGL", CUSIP: "02079K305", Aliases: []string{"alphabet", "google"}},
		{Ticker: "MSFT", CUSIP: "594918104", Aliases: []string{"microsoft"}},
		{Ticker: "AAPL", CUSIP: "037833100", Aliases: []string{"apple"}},
		{Ticker: "TSLA", CUSIP: "88160R101", Aliases: []string{"tesla"}},
	}
}
