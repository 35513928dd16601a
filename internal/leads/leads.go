// Package leads defines the result model of a discovery run and the TLD
// tier classification applied to every validated lead.
package leads

import (
	"strings"

	"lead-rec/internal/netutil"
)

// Lead tiers by how likely the holder of the domain is to trade it.
const (
	TierHigh   = "High"
	TierMedium = "Medium"
	TierLow    = "Low"
)

var (
	highTLDs   = []string{"one", "world", "group", "online", "global"}
	mediumTLDs = []string{"in", "net", "co", "ai", "biz"}
)

// Record is one validated lead. Created only after a candidate passed the
// match filter and the liveness probe; never mutated afterwards.
type Record struct {
	Domain        string `json:"domain"`
	URL           string `json:"url"`
	Category      string `json:"category"`
	CopyrightYear string `json:"copyright year"`
	Status        string `json:"status"`
	CompanyName   string `json:"company_name"`
	LeadType      string `json:"lead_type"`
}

// NewRecord builds an active lead for a probed domain.
func NewRecord(domain, category, copyrightYear string) Record {
	return Record{
		Domain:        domain,
		URL:           "http://" + domain,
		Category:      category,
		CopyrightYear: copyrightYear,
		Status:        "active",
		CompanyName:   "N/A",
		LeadType:      Classify(domain),
	}
}

// RunResult maps each seed domain to its leads, and separately each failed
// seed to an error description. A seed appears in exactly one of the two
// maps; an empty lead list means the seed was processed and found nothing.
type RunResult struct {
	Data   map[string][]Record `json:"data"`
	Errors map[string]string   `json:"errors,omitempty"`
}

func NewRunResult() *RunResult {
	return &RunResult{
		Data:   make(map[string][]Record),
		Errors: make(map[string]string),
	}
}

// Classify assigns a lead tier purely from the domain's TLD. Tier membership
// is suffix matching on the whole public suffix, so a compound TLD such as
// "co.in" lands in the tier of its trailing token.
func Classify(domain string) string {
	_, tld := netutil.Split(domain)
	for _, t := range highTLDs {
		if strings.HasSuffix(tld, t) {
			return TierHigh
		}
	}
	for _, t := range mediumTLDs {
		if strings.HasSuffix(tld, t) {
			return TierMedium
		}
	}
	return TierLow
}
