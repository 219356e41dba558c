package tvimport

import "fmt"

// Security is the descriptive record of one instrument in the statement's
// security list.
type Security struct {
	UniqueID string // CUSIP or other unique identifier used by transactions
	Ticker   string
	Name     string
}

// Securities is the statement's security list. It is small and unindexed, a
// linear scan is fine here.
type Securities []Security

// Resolve returns the security whose unique identifier equals uniqueID.
// A transaction referencing an unknown security means the feed itself is
// corrupt, so a missing entry is a fatal data-integrity error, never a
// silent skip.
func (s Securities) Resolve(uniqueID string) (Security, error) {
	for _, sec := range s {
		if sec.UniqueID == uniqueID {
			return sec, nil
		}
	}
	return Security{}, fmt.Errorf("%w: no security with unique id %q", ErrDataIntegrity, uniqueID)
}
