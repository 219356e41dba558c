package tvimport

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrnType is a typed string identifying an investment transaction type. The
// values use the OFX spelling of each type.
type TrnType string

// Transaction types reported by OFX investment statements.
const (
	TrnBuyStock  TrnType = "BUYSTOCK"
	TrnSellStock TrnType = "SELLSTOCK"
	TrnBuyOpt    TrnType = "BUYOPT"
	TrnSellOpt   TrnType = "SELLOPT"
	TrnBuyMF     TrnType = "BUYMF"
	TrnSellMF    TrnType = "SELLMF"
	TrnBuyDebt   TrnType = "BUYDEBT"
	TrnSellDebt  TrnType = "SELLDEBT"
	TrnBuyOther  TrnType = "BUYOTHER"
	TrnSellOther TrnType = "SELLOTHER"
	TrnIncome    TrnType = "INCOME"
	TrnReinvest  TrnType = "REINVEST"
)

// IsOption reports whether the type is an option trade, opening or closing.
func (t TrnType) IsOption() bool { return t == TrnBuyOpt || t == TrnSellOpt }

// IsIncome reports whether the type is an income-like entry. Income carries
// no trade economics and is never journaled.
func (t TrnType) IsIncome() bool { return t == TrnIncome || t == TrnReinvest }

// IsTrade reports whether transactions of this type produce an execution.
func (t TrnType) IsTrade() bool {
	switch t {
	case TrnBuyStock, TrnSellStock, TrnBuyOpt, TrnSellOpt,
		TrnBuyMF, TrnSellMF, TrnBuyDebt, TrnSellDebt,
		TrnBuyOther, TrnSellOther:
		return true
	}
	return false
}

// Institution identifies the brokerage the statement came from. The
// (Organization, FID) pair selects the trade-timestamp correction rule.
type Institution struct {
	Organization string
	FID          string
	Description  string
}

// Transaction is one OFX-reported trade event, immutable input to the
// execution builder.
type Transaction struct {
	// TradeDate is the trade timestamp exactly as the feed reported it. Its
	// wall clock is meaningful, its timezone is not: see TimeFixes.
	TradeDate time.Time

	Type       TrnType
	SecurityID string // unique id resolved against the security list

	Units      decimal.Decimal // signed quantity, negative for sells
	UnitPrice  decimal.Decimal
	Commission decimal.Decimal
	Fees       decimal.Decimal

	// SharesPerContract is the option contract size, 0 when the feed omits
	// it. Not every brokerage populates it correctly.
	SharesPerContract int
}

// Feed is one parsed statement handed to the execution builder: the ordered
// transaction list, the security list and the reporting institution.
type Feed struct {
	Institution  Institution
	Securities   Securities
	Transactions []Transaction
}
