package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lead-rec/internal/logx"
)

var (
	duckduckgoBaseURL    = "https://html.duckduckgo.com/html/"
	duckduckgoHTTPClient = &http.Client{Timeout: 20 * time.Second}
)

// duckduckgoMaxResults bounds how many results one query contributes.
const duckduckgoMaxResults = 20

// DuckDuckGo queries the HTML search endpoint. It is the primary search
// source; unlike the scraped engines it rarely walls off automated clients.
type DuckDuckGo struct{}

func NewDuckDuckGo() *DuckDuckGo { return &DuckDuckGo{} }

func (d *DuckDuckGo) Name() string    { return "duckduckgo" }
func (d *DuckDuckGo) TLDScoped() bool { return true }

func (d *DuckDuckGo) Discover(ctx context.Context, sld, tld string) ([]string, error) {
	if err := serpLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("%q site:.%s", sld, tld)
	endpoint := duckduckgoBaseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := duckduckgoHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := drainBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var domains []string
	count := 0
	doc.Find("a.result__a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if count >= duckduckgoMaxResults {
			return false
		}
		count++
		href, _ := sel.Attr("href")
		candidate, ok := keepCandidate(resolveDuckDuckGoLink(href), sld, true)
		if !ok {
			return true
		}
		if _, dup := seen[candidate]; !dup {
			seen[candidate] = struct{}{}
			domains = append(domains, candidate)
		}
		return true
	})
	logx.Debugf("duckduckgo .%s: %d candidate(s)", tld, len(domains))
	return domains, nil
}

// resolveDuckDuckGoLink unwraps the redirect URLs the HTML endpoint emits
// (…/l/?uddg=<escaped target>). Plain links pass through untouched.
func resolveDuckDuckGoLink(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
