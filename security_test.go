package tvimport

import (
	"errors"
	"testing"
)

func TestSecuritiesResolve(t *testing.T) {
	list := Securities{
		{UniqueID: "037833100", Ticker: "AAPL", Name: "Apple Inc"},
		{UniqueID: "88160R101", Ticker: "TSLA", Name: "Tesla Inc"},
	}

	sec, err := list.Resolve("88160R101")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sec.Ticker != "TSLA" {
		t.Errorf("Resolve ticker = %q, want TSLA", sec.Ticker)
	}
}

func TestSecuritiesResolveMissingIsFatal(t *testing.T) {
	list := Securities{{UniqueID: "037833100", Ticker: "AAPL"}}

	_, err := list.Resolve("nope")
	if err == nil {
		t.Fatal("Resolve accepted an unknown unique id")
	}
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("Resolve error %v is not a data-integrity error", err)
	}
}
