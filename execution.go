package tvimport

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// miniContractSize is the option contract size marking a mini contract;
// standard contracts cover 100 shares.
const miniContractSize = 10

// Execution is one canonical trade-fill record in the journaling service's
// bulk import format.
type Execution struct {
	DateTime   string          `json:"datetime"` // ISO-8601, GMT
	Symbol     string          `json:"symbol"`
	Quantity   decimal.Decimal `json:"quantity"` // signed, negative for sells
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	TransFee   decimal.Decimal `json:"transfee"`
	ECNFee     decimal.Decimal `json:"ecnfee"`
	Option     string          `json:"option,omitempty"` // empty for equities
}

// Builder turns the qualifying transactions of one statement into
// executions. The inputs are read-only; each transaction yields an
// independent execution, strictly in input order.
type Builder struct {
	Securities  Securities
	Institution Institution
	Remap       TickerRemap
	TimeFixes   *TimeFixes
}

// NewBuilder returns a builder for the feed, with the default remap table
// and timestamp fixes.
func NewBuilder(feed *Feed) *Builder {
	return &Builder{
		Securities:  feed.Securities,
		Institution: feed.Institution,
		Remap:       DefaultTickerRemap(),
		TimeFixes:   NewTimeFixes(),
	}
}

// Build creates the execution for one trade transaction.
func (b *Builder) Build(tx Transaction) (Execution, error) {
	if !tx.Type.IsTrade() {
		return Execution{}, fmt.Errorf("%w: cannot build an execution from a %s transaction", ErrDataIntegrity, tx.Type)
	}

	sec, err := b.Securities.Resolve(tx.SecurityID)
	if err != nil {
		return Execution{}, err
	}

	exec := Execution{
		DateTime:   b.TimeFixes.Normalize(tx.TradeDate, b.Institution),
		Symbol:     b.Remap.Remap(sec.Ticker),
		Quantity:   tx.Units,
		Price:      tx.UnitPrice,
		Commission: tx.Commission,
		TransFee:   tx.Fees,
		// The feed has no field for ECN/exchange fees. Zero is a known gap,
		// not a business rule.
		ECNFee: decimal.Zero,
	}

	if tx.Type.IsOption() {
		info, err := DecodeOptionSymbol(sec.Ticker)
		if err != nil {
			return Execution{}, err
		}
		mini := info.Mini
		if !mini {
			// Some feeds only reveal a mini through the contract size.
			mini, err = miniByContractSize(tx)
			if err != nil {
				return Execution{}, err
			}
		}
		exec.Symbol = b.Remap.Remap(info.Underlying)
		exec.Option = info.Description(mini)
	}

	return exec, nil
}

// BuildAll builds executions for every trade transaction, in input order.
// Non-trade entries (income and the like) are skipped. An all-skipped batch
// yields an empty, valid result; the caller reports zero executions and
// stops without contacting the upload service.
func (b *Builder) BuildAll(txs []Transaction) ([]Execution, error) {
	execs := make([]Execution, 0, len(txs))
	for i, tx := range txs {
		if !tx.Type.IsTrade() {
			continue
		}
		exec, err := b.Build(tx)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		execs = append(execs, exec)
	}
	return execs, nil
}

// miniByContractSize reports whether the transaction's contract size marks a
// mini option. Calling it for a non-option transaction is a caller bug and
// fails like any other integrity violation.
func miniByContractSize(tx Transaction) (bool, error) {
	if !tx.Type.IsOption() {
		return false, fmt.Errorf("%w: contract size checked on non-option transaction %s", ErrDataIntegrity, tx.Type)
	}
	return tx.SharesPerContract == miniContractSize, nil
}
