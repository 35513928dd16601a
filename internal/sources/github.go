package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"lead-rec/internal/logx"
	"lead-rec/internal/netutil"
)

var (
	githubBaseURL    = "https://api.github.com"
	githubHTTPClient = &http.Client{Timeout: 30 * time.Second}
)

// githubMaxFiles bounds how many matching files get fetched per query.
const githubMaxFiles = 10

// GitHub searches code for literal `<sld>.` occurrences and regex-extracts
// sld.<tld> tokens from the matching files. Without a token the adapter is
// disabled and contributes nothing; that is not an error condition.
type GitHub struct {
	token string
}

func NewGitHub(token string) *GitHub { return &GitHub{token: token} }

func (g *GitHub) Name() string    { return "github" }
func (g *GitHub) TLDScoped() bool { return false }

type githubSearchResponse struct {
	Items []struct {
		URL string `json:"url"`
	} `json:"items"`
}

func (g *GitHub) Discover(ctx context.Context, sld, _ string) ([]string, error) {
	if g.token == "" {
		logx.Debugf("github: no token configured, skipping")
		return nil, nil
	}

	query := fmt.Sprintf("%q in:file", sld+".")
	endpoint := fmt.Sprintf("%s/search/code?q=%s&per_page=%d", githubBaseURL, url.QueryEscape(query), githubMaxFiles)

	var search githubSearchResponse
	if err := g.getJSON(ctx, endpoint, &search); err != nil {
		return nil, err
	}

	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(sld) + `\.([a-z][a-z0-9-]{1,23})\b`)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var domains []string
	fetched := 0
	for _, item := range search.Items {
		if fetched >= githubMaxFiles {
			break
		}
		fetched++
		content, err := g.getRaw(ctx, item.URL)
		if err != nil {
			logx.Warnf("github: fetch %s: %v", item.URL, err)
			continue
		}
		for _, match := range pattern.FindAllStringSubmatch(string(content), -1) {
			candidate := strings.ToLower(sld + "." + match[1])
			// Tokens like "apex.html" parse to no public suffix and drop out.
			if netutil.Registrable(candidate) != candidate {
				continue
			}
			if _, dup := seen[candidate]; !dup {
				seen[candidate] = struct{}{}
				domains = append(domains, candidate)
			}
		}
	}
	logx.Debugf("github %s: %d candidate(s)", sld, len(domains))
	return domains, nil
}

func (g *GitHub) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := g.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (g *GitHub) getRaw(ctx context.Context, endpoint string) ([]byte, error) {
	return g.get(ctx, endpoint, "application/vnd.github.raw+json")
}

func (g *GitHub) get(ctx context.Context, endpoint, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := githubHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := drainBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
