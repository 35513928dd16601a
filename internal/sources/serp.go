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
	"golang.org/x/time/rate"

	"lead-rec/internal/logx"
)

var (
	googleBaseURL = "https://www.google.com/search"
	bingBaseURL   = "https://www.bing.com/search"

	serpHTTPClient = &http.Client{Timeout: 20 * time.Second}

	// One shared limiter across engines; search frontends are quick to
	// throttle bursts of automated queries.
	serpLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 1)
)

// serpEngine describes one result-page scraper. The scrapers are brittle by
// nature: a structural page change or a bot wall is a normal empty-result
// case, not a bug.
type serpEngine struct {
	name         string
	baseURL      func() string
	blockMarkers []string
	extractLinks func(doc *goquery.Document) []string
}

// SERP scrapes a web search engine for `"<sld>" site:.<tld>` and extracts
// result domains whose SLD matches.
type SERP struct {
	engine serpEngine
}

func NewGoogle() *SERP {
	return &SERP{engine: serpEngine{
		name:    "google",
		baseURL: func() string { return googleBaseURL },
		blockMarkers: []string{
			"enablejs",
			"Please click",
			"detected unusual traffic",
		},
		extractLinks: extractGoogleLinks,
	}}
}

func NewBing() *SERP {
	return &SERP{engine: serpEngine{
		name:    "bing",
		baseURL: func() string { return bingBaseURL },
		blockMarkers: []string{
			"verify you are a human",
			"b_captcha",
		},
		extractLinks: extractBingLinks,
	}}
}

func (s *SERP) Name() string    { return s.engine.name }
func (s *SERP) TLDScoped() bool { return true }

func (s *SERP) Discover(ctx context.Context, sld, tld string) ([]string, error) {
	if err := serpLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("%q site:.%s", sld, tld)
	endpoint := s.engine.baseURL() + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := serpHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := drainBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", s.engine.name, resp.StatusCode)
	}

	for _, marker := range s.engine.blockMarkers {
		if bytes.Contains(body, []byte(marker)) {
			logx.Warnf("%s blocked the automated query for .%s; relying on the other sources", s.engine.name, tld)
			return nil, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var domains []string
	for _, link := range s.engine.extractLinks(doc) {
		candidate, ok := keepCandidate(link, sld, true)
		if !ok {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		domains = append(domains, candidate)
	}
	logx.Debugf("%s .%s: %d candidate(s)", s.engine.name, tld, len(domains))
	return domains, nil
}

// Google wraps outbound results as /url?q=<target>&...
func extractGoogleLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "/url?q=") {
			return
		}
		target := strings.TrimPrefix(href, "/url?q=")
		if idx := strings.IndexByte(target, '&'); idx != -1 {
			target = target[:idx]
		}
		if unescaped, err := url.QueryUnescape(target); err == nil {
			target = unescaped
		}
		links = append(links, target)
	})
	return links
}

// Bing links result titles directly at the target URL.
func extractBingLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("li.b_algo h2 a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links
}
