package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lead-rec/internal/logx"
)

var (
	virusTotalBaseURL    = "https://www.virustotal.com/api/v3/domains/"
	virusTotalHTTPClient = &http.Client{Timeout: 15 * time.Second}
)

// virusTotalTLDs is the fixed probe list; the reputation API is queried per
// domain, so the sweep stays deliberately small.
var virusTotalTLDs = []string{"com", "net", "org", "co", "in", "io", "ai"}

// VirusTotal checks a threat-intel passive-DNS database for the existence
// of sld.<tld> records across a short list of common TLDs. Disabled when no
// API key is configured.
type VirusTotal struct {
	apiKey string
}

func NewVirusTotal(apiKey string) *VirusTotal { return &VirusTotal{apiKey: apiKey} }

func (v *VirusTotal) Name() string    { return "virustotal" }
func (v *VirusTotal) TLDScoped() bool { return false }

func (v *VirusTotal) Discover(ctx context.Context, sld, _ string) ([]string, error) {
	if v.apiKey == "" {
		logx.Debugf("virustotal: no API key configured, skipping")
		return nil, nil
	}

	var domains []string
	for _, tld := range virusTotalTLDs {
		domain := sld + "." + tld
		known, err := v.hasRecord(ctx, domain)
		if err != nil {
			// One TLD failing must not sink the rest of the sweep.
			logx.Warnf("virustotal %s: %v", domain, err)
			continue
		}
		if known {
			domains = append(domains, domain)
		}
	}
	logx.Debugf("virustotal %s: %d candidate(s)", sld, len(domains))
	return domains, nil
}

func (v *VirusTotal) hasRecord(ctx context.Context, domain string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, virusTotalBaseURL+url.PathEscape(domain), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("x-apikey", v.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := virusTotalHTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	if _, err := drainBody(resp); err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("virustotal: unexpected status %d", resp.StatusCode)
	}
}
