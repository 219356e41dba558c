// Package ofx adapts brokerage statements parsed by the ofxgo library into
// the importer's feed model. All raw OFX protocol handling stays inside
// ofxgo; this package only maps investment transactions, the security list
// and the signon institution.
package ofx

import (
	"fmt"
	"io"
	"os"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	tvimport "github.com/nall/tv-importofx"
)

// ReadFile parses the OFX statement at path into a feed.
func ReadFile(path string) (*tvimport.Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ofx file: %w", err)
	}
	defer f.Close()
	feed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return feed, nil
}

// Parse reads one OFX document and maps it onto the feed model. Transaction
// order within the statement is preserved.
func Parse(r io.Reader) (*tvimport.Feed, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("parse ofx response: %w", err)
	}

	feed := &tvimport.Feed{
		Institution: tvimport.Institution{
			Organization: resp.Signon.Org.String(),
			FID:          resp.Signon.Fid.String(),
		},
	}

	for _, msg := range resp.SecList {
		if list, ok := msg.(*ofxgo.SecurityList); ok {
			feed.Securities = append(feed.Securities, securities(list)...)
		}
	}

	for _, msg := range resp.InvStmt {
		stmt, ok := msg.(*ofxgo.InvStatementResponse)
		if !ok || stmt.InvTranList == nil {
			continue
		}
		for _, tran := range stmt.InvTranList.InvTransactions {
			if tx, ok := mapTransaction(tran); ok {
				feed.Transactions = append(feed.Transactions, tx)
			}
		}
	}

	return feed, nil
}

// securities maps the OFX security list. Every instrument class carries the
// same SecInfo core, which is all the importer needs.
func securities(list *ofxgo.SecurityList) tvimport.Securities {
	var secs tvimport.Securities
	for _, s := range list.Securities {
		var info ofxgo.SecInfo
		switch v := s.(type) {
		case ofxgo.StockInfo:
			info = v.SecInfo
		case ofxgo.OptInfo:
			info = v.SecInfo
		case ofxgo.MFInfo:
			info = v.SecInfo
		case ofxgo.DebtInfo:
			info = v.SecInfo
		case ofxgo.OtherInfo:
			info = v.SecInfo
		default:
			continue
		}
		secs = append(secs, tvimport.Security{
			UniqueID: info.SecID.UniqueID.String(),
			Ticker:   info.Ticker.String(),
			Name:     info.SecName.String(),
		})
	}
	return secs
}

// mapTransaction converts one OFX investment transaction. Entries the
// importer has no use for (transfers, journal entries, margin interest and
// so on) are dropped here; income stays typed so the builder can count what
// it filters.
func mapTransaction(tran ofxgo.InvTransaction) (tvimport.Transaction, bool) {
	switch v := tran.(type) {
	case ofxgo.BuyStock:
		return fromInvBuy(tvimport.TrnBuyStock, v.InvBuy, 0), true
	case ofxgo.SellStock:
		return fromInvSell(tvimport.TrnSellStock, v.InvSell, 0), true
	case ofxgo.BuyOpt:
		return fromInvBuy(tvimport.TrnBuyOpt, v.InvBuy, int(v.ShPerCtrct)), true
	case ofxgo.SellOpt:
		return fromInvSell(tvimport.TrnSellOpt, v.InvSell, int(v.ShPerCtrct)), true
	case ofxgo.BuyMF:
		return fromInvBuy(tvimport.TrnBuyMF, v.InvBuy, 0), true
	case ofxgo.SellMF:
		return fromInvSell(tvimport.TrnSellMF, v.InvSell, 0), true
	case ofxgo.BuyDebt:
		return fromInvBuy(tvimport.TrnBuyDebt, v.InvBuy, 0), true
	case ofxgo.SellDebt:
		return fromInvSell(tvimport.TrnSellDebt, v.InvSell, 0), true
	case ofxgo.BuyOther:
		return fromInvBuy(tvimport.TrnBuyOther, v.InvBuy, 0), true
	case ofxgo.SellOther:
		return fromInvSell(tvimport.TrnSellOther, v.InvSell, 0), true
	case ofxgo.Income:
		return tvimport.Transaction{
			TradeDate:  v.InvTran.DtTrade.Time,
			Type:       tvimport.TrnIncome,
			SecurityID: v.SecID.UniqueID.String(),
		}, true
	case ofxgo.Reinvest:
		return tvimport.Transaction{
			TradeDate:  v.InvTran.DtTrade.Time,
			Type:       tvimport.TrnReinvest,
			SecurityID: v.SecID.UniqueID.String(),
			Units:      amount(v.Units),
			UnitPrice:  amount(v.UnitPrice),
			Commission: amount(v.Commission),
			Fees:       amount(v.Fees),
		}, true
	}
	return tvimport.Transaction{}, false
}

func fromInvBuy(typ tvimport.TrnType, b ofxgo.InvBuy, shPerCtrct int) tvimport.Transaction {
	return tvimport.Transaction{
		TradeDate:         b.InvTran.DtTrade.Time,
		Type:              typ,
		SecurityID:        b.SecID.UniqueID.String(),
		Units:             amount(b.Units),
		UnitPrice:         amount(b.UnitPrice),
		Commission:        amount(b.Commission),
		Fees:              amount(b.Fees),
		SharesPerContract: shPerCtrct,
	}
}

func fromInvSell(typ tvimport.TrnType, s ofxgo.InvSell, shPerCtrct int) tvimport.Transaction {
	return tvimport.Transaction{
		TradeDate:         s.InvTran.DtTrade.Time,
		Type:              typ,
		SecurityID:        s.SecID.UniqueID.String(),
		Units:             amount(s.Units),
		UnitPrice:         amount(s.UnitPrice),
		Commission:        amount(s.Commission),
		Fees:              amount(s.Fees),
		SharesPerContract: shPerCtrct,
	}
}

// amount converts an OFX rational amount to a decimal, keeping well more
// precision than any brokerage reports.
func amount(a ofxgo.Amount) decimal.Decimal {
	return decimal.NewFromBigRat(&a.Rat, 8)
}
