// Package probe decides whether a candidate domain is actually in use and
// best-effort enriches live ones with page-derived metadata.
package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"lead-rec/internal/logx"
)

// DNS resolution is the load-bearing liveness signal; HTTP reachability is
// supplementary. Many live sites firewall HEAD, so an HTTP failure records
// a detail but never disqualifies the domain.
var (
	resolver   hostLookuper = net.DefaultResolver
	headClient              = &http.Client{Timeout: 5 * time.Second}
)

type hostLookuper interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Probe reports whether domain resolves, plus a human-readable detail. When
// DNS fails the probe stops; no HTTP attempt is made.
func Probe(ctx context.Context, domain string) (active bool, detail string) {
	if _, err := resolver.LookupHost(ctx, domain); err != nil {
		return false, fmt.Sprintf("no dns (%v)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "http://"+domain, nil)
	if err != nil {
		return true, fmt.Sprintf("no http (%v)", err)
	}
	resp, err := headClient.Do(req)
	if err != nil {
		return true, fmt.Sprintf("no http (%v)", err)
	}
	resp.Body.Close()
	logx.Debugf("probe %s: HTTP %d", domain, resp.StatusCode)
	return true, fmt.Sprintf("http %d", resp.StatusCode)
}
