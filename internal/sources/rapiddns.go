package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lead-rec/internal/logx"
)

var (
	rapidDNSBaseURL    = "https://rapiddns.io/same/"
	rapidDNSHTTPClient = &http.Client{Timeout: 20 * time.Second}
)

// RapidDNS asks the passive-DNS aggregator for every known domain sharing
// the SLD, across all TLDs in a single call.
type RapidDNS struct{}

func NewRapidDNS() *RapidDNS { return &RapidDNS{} }

func (r *RapidDNS) Name() string    { return "rapiddns" }
func (r *RapidDNS) TLDScoped() bool { return false }

func (r *RapidDNS) Discover(ctx context.Context, sld, _ string) ([]string, error) {
	endpoint := rapidDNSBaseURL + url.PathEscape(sld) + "?full=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := rapidDNSHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := drainBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rapiddns: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var domains []string
	doc.Find("table a").Each(func(_ int, sel *goquery.Selection) {
		candidate, ok := keepCandidate(sel.Text(), sld, false)
		if !ok {
			return
		}
		// The aggregator returns subdomain rows too; exact SLD only.
		if _, dup := seen[candidate]; !dup {
			seen[candidate] = struct{}{}
			domains = append(domains, candidate)
		}
	})
	logx.Debugf("rapiddns %s: %d candidate(s)", sld, len(domains))
	return domains, nil
}
