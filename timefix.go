package tvimport

import (
	"fmt"
	"time"
)

// TradeTimeFormat is the ISO-8601 form executions carry, always rendered in
// GMT with an explicit offset.
const TradeTimeFormat = "2006-01-02T15:04:05-07:00"

type instKey struct{ org, fid string }

// TimeFixes maps an institution to the timezone its feed actually reports
// trade times in. OFX data quality varies per brokerage: the registered ones
// nominally claim GMT but really write US-Eastern wall clock. Institutions
// absent from the registry are taken at their word and treated as GMT.
//
// The registry is the single place this correction is declared; new
// brokerages are added as data, through Register or the config file, never
// as new logic.
type TimeFixes struct {
	zones map[instKey]*time.Location
}

// NewTimeFixes returns a registry preloaded with the known-bad brokerages.
func NewTimeFixes() *TimeFixes {
	r := &TimeFixes{zones: make(map[instKey]*time.Location)}
	// Scottrade claims GMT but reports Eastern wall-clock times.
	if err := r.Register("10876", "10876", "America/New_York"); err != nil {
		panic(err)
	}
	return r
}

// Register adds or replaces the rule for one (organization, fid) pair. The
// zone is an IANA timezone name.
func (r *TimeFixes) Register(org, fid, zone string) error {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q for institution %s/%s: %w", zone, org, fid, err)
	}
	r.zones[instKey{org, fid}] = loc
	return nil
}

// Zone returns the timezone assigned to the institution, GMT when it is not
// registered.
func (r *TimeFixes) Zone(inst Institution) *time.Location {
	if loc, ok := r.zones[instKey{inst.Organization, inst.FID}]; ok {
		return loc
	}
	return time.UTC
}

// Normalize re-interprets the naive trade timestamp's wall clock in the
// institution's assigned timezone, then renders the instant in GMT as an
// ISO-8601 string with offset.
func (r *TimeFixes) Normalize(t time.Time, inst Institution) string {
	loc := r.Zone(inst)
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
	return local.UTC().Format(TradeTimeFormat)
}
