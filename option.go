package tvimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// occRegex matches an OCC-style option symbol: a 1-6 character underlying
// (uppercase alphanumeric, space-padded up to the 6 character field), a
// YYMMDD expiration, a call/put flag, a 5 digit whole-dollar strike and a
// 3 digit fractional strike in thousandths of a dollar.
var occRegex = regexp.MustCompile(`^([A-Z0-9]{1,6}) {0,5}(\d{2})(\d{2})(\d{2})([CP])(\d{5})(\d{3})$`)

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// OptionInfo is the decoded form of an OCC-style option symbol. It is
// derived on the fly while building executions and never persisted.
type OptionInfo struct {
	Ticker     string // the symbol as decoded
	Underlying string // underlying ticker, mini suffix stripped
	Mini       bool
	Month      int // 1-12
	Day        int // 1-31
	Year       int // two digits
	Type       OptionType
	Strike     decimal.Decimal
}

// DecodeOptionSymbol parses ticker as an OCC-style option symbol.
//
// An underlying ending in 7, 8 or 9 designates a mini contract and the digit
// is stripped to recover the real ticker. The heuristic is deliberately
// narrow: after stripping, anything but uppercase letters fails the decode
// rather than guessing. Known limitation: a symbol whose digit marks a
// corporate-action adjustment instead of a mini contract is refused too.
func DecodeOptionSymbol(ticker string) (OptionInfo, error) {
	m := occRegex.FindStringSubmatch(ticker)
	if m == nil {
		return OptionInfo{}, fmt.Errorf("%w: %q is not an OCC option symbol", ErrDataIntegrity, ticker)
	}

	underlying := m[1]
	mini := false
	if c := underlying[len(underlying)-1]; c >= '7' && c <= '9' {
		mini = true
		underlying = underlying[:len(underlying)-1]
		for _, r := range underlying {
			if r < 'A' || r > 'Z' {
				return OptionInfo{}, fmt.Errorf("%w: ambiguous mini-option underlying %q in %q", ErrDataIntegrity, m[1], ticker)
			}
		}
	}

	year, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])
	day, _ := strconv.Atoi(m[4])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return OptionInfo{}, fmt.Errorf("%w: invalid expiration in option symbol %q", ErrDataIntegrity, ticker)
	}

	typ := Call
	if m[5] == "P" {
		typ = Put
	}

	whole, _ := strconv.ParseInt(m[6], 10, 64)
	frac, _ := strconv.ParseInt(m[7], 10, 64)

	return OptionInfo{
		Ticker:     ticker,
		Underlying: underlying,
		Mini:       mini,
		Month:      month,
		Day:        day,
		Year:       year,
		Type:       typ,
		Strike:     decimal.New(whole*1000+frac, -3),
	}, nil
}

// Description formats the option the way the journaling service expects,
// e.g. "JAN15 24 150 CALL M". The mini marker is passed in because contract
// size is a second, independent mini signal the builder may have OR'd in.
func (o OptionInfo) Description(mini bool) string {
	month := strings.ToUpper(time.Month(o.Month).String()[:3])
	s := fmt.Sprintf("%s%02d %02d %s %s",
		month, o.Day, o.Year, o.Strike.String(), o.Type)
	if mini {
		s += " M"
	}
	return s
}
