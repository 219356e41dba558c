package tvimport

import (
	"testing"
	"time"
)

var (
	scottrade = Institution{Organization: "10876", FID: "10876", Description: "Scottrade"}
	unknownFi = Institution{Organization: "999", FID: "999", Description: "Somewhere"}
)

func TestNormalizeRegisteredInstitution(t *testing.T) {
	fixes := NewTimeFixes()

	// Eastern standard time: the fake-GMT 09:30 wall clock is really 14:30 GMT.
	naive := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if got, want := fixes.Normalize(naive, scottrade), "2024-01-15T14:30:00+00:00"; got != want {
		t.Errorf("Normalize(winter, scottrade) = %q, want %q", got, want)
	}

	// Eastern daylight time shifts the correction to four hours.
	summer := time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)
	if got, want := fixes.Normalize(summer, scottrade), "2024-07-15T13:30:00+00:00"; got != want {
		t.Errorf("Normalize(summer, scottrade) = %q, want %q", got, want)
	}
}

func TestNormalizeUnknownInstitutionIsGMT(t *testing.T) {
	fixes := NewTimeFixes()
	naive := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if got, want := fixes.Normalize(naive, unknownFi), "2024-01-15T09:30:00+00:00"; got != want {
		t.Errorf("Normalize(naive, unknown) = %q, want %q", got, want)
	}
}

// Re-normalizing an already-GMT output under the generic rule must not move
// the instant.
func TestNormalizeIdempotent(t *testing.T) {
	fixes := NewTimeFixes()
	naive := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	first := fixes.Normalize(naive, scottrade)
	parsed, err := time.Parse(TradeTimeFormat, first)
	if err != nil {
		t.Fatalf("parse %q: %v", first, err)
	}
	if got := fixes.Normalize(parsed, unknownFi); got != first {
		t.Errorf("re-normalized %q to %q, want it unchanged", first, got)
	}
}

func TestRegisterExtendsRegistry(t *testing.T) {
	fixes := NewTimeFixes()
	if err := fixes.Register("42", "42", "America/Chicago"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	inst := Institution{Organization: "42", FID: "42"}
	naive := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if got, want := fixes.Normalize(naive, inst), "2024-01-15T15:30:00+00:00"; got != want {
		t.Errorf("Normalize(naive, central) = %q, want %q", got, want)
	}
}

func TestRegisterRejectsBadZone(t *testing.T) {
	fixes := NewTimeFixes()
	if err := fixes.Register("42", "42", "Mars/Olympus"); err == nil {
		t.Error("Register accepted a bogus timezone")
	}
}
