package tvimport

// TickerRemap translates the handful of index tickers the feed spells
// differently from what the journaling service expects. The table is closed
// and hand-maintained: symbol conventions are idiosyncratic per index and
// not derivable from a rule. Unknown tickers pass through unchanged.
type TickerRemap map[string]string

// DefaultTickerRemap returns the known index spellings: the service wants
// the leading '$' the feed drops.
func DefaultTickerRemap() TickerRemap {
	return TickerRemap{
		"SPX": "$SPX",
		"NDX": "$NDX",
		"RUT": "$RUT",
		"VIX": "$VIX",
		"DJX": "$DJX",
	}
}

// Remap returns the journaling service's spelling for ticker.
func (m TickerRemap) Remap(ticker string) string {
	if to, ok := m[ticker]; ok {
		return to
	}
	return ticker
}
