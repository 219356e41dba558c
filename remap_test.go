package tvimport

import "testing"

func TestTickerRemap(t *testing.T) {
	m := DefaultTickerRemap()

	if got := m.Remap("SPX"); got != "$SPX" {
		t.Errorf(`Remap("SPX") = %q, want "$SPX"`, got)
	}
	if got := m.Remap("RUT"); got != "$RUT" {
		t.Errorf(`Remap("RUT") = %q, want "$RUT"`, got)
	}
	// anything outside the table passes through untouched
	if got := m.Remap("AAPL"); got != "AAPL" {
		t.Errorf(`Remap("AAPL") = %q, want "AAPL"`, got)
	}
	if got := m.Remap(""); got != "" {
		t.Errorf(`Remap("") = %q, want ""`, got)
	}
}
