package probe

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultCategory = "Unknown"
	defaultYear     = "N/A"
)

var enrichClient = &http.Client{Timeout: 5 * time.Second}

// categories are matched in order against the lower-cased page body; the
// first hit wins.
var categories = []string{
	"software",
	"finance",
	"wholesale",
	"agency",
	"consultancy",
	"technology",
	"marketing",
}

// The original data had the copyright glyph in several encodings; match the
// common spellings and accept low recall.
var copyrightPattern = regexp.MustCompile(`(?:©|&copy;|\(c\))\s*(\d{4})`)

const maxEnrichBytes = 1 << 20

// Enrich fetches http://<domain> and extracts a business category and a
// copyright year from the page body. Every failure silently yields the
// defaults; enrichment is never fatal to a lead.
func Enrich(ctx context.Context, domain string) (category, copyrightYear string) {
	category, copyrightYear = defaultCategory, defaultYear

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+domain, nil)
	if err != nil {
		return
	}
	resp, err := enrichClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEnrichBytes))
	if err != nil {
		return
	}

	html := strings.ToLower(string(body))
	for _, cat := range categories {
		if strings.Contains(html, cat) {
			category = strings.ToUpper(cat[:1]) + cat[1:]
			break
		}
	}
	if match := copyrightPattern.FindStringSubmatch(html); match != nil {
		copyrightYear = match[1]
	}
	return
}
