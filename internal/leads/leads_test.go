package leads

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"x.world":  TierHigh,
		"x.one":    TierHigh,
		"x.online": TierHigh,
		"x.global": TierHigh,
		"x.net":    TierMedium,
		"x.in":     TierMedium,
		"x.co":     TierMedium,
		"x.ai":     TierMedium,
		// Compound suffix evaluated as a whole string.
		"x.co.in": TierMedium,
		"x.xyz":   TierLow,
		"x.com":   TierLow,
		"x.org":   TierLow,
	}
	for domain, expected := range cases {
		domain, expected := domain, expected
		t.Run(domain, func(t *testing.T) {
			t.Parallel()
			if got := Classify(domain); got != expected {
				t.Fatalf("Classify(%q) = %q, want %q", domain, got, expected)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	t.Parallel()

	for i := 0; i < 3; i++ {
		if got := Classify("x.world"); got != TierHigh {
			t.Fatalf("Classify not stable on call %d: %q", i, got)
		}
	}
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	rec := NewRecord("apex.in", "Software", "2021")
	if rec.URL != "http://apex.in" {
		t.Fatalf("URL = %q", rec.URL)
	}
	if rec.Status != "active" {
		t.Fatalf("Status = %q", rec.Status)
	}
	if rec.CompanyName != "N/A" {
		t.Fatalf("CompanyName = %q", rec.CompanyName)
	}
	if rec.LeadType != TierMedium {
		t.Fatalf("LeadType = %q", rec.LeadType)
	}
}
