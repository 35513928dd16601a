// Package sources implements the candidate discovery adapters. Every
// adapter satisfies Source and tolerates total failure of its backing
// service: errors are reported to the aggregator, which isolates them, and
// a blocked or unconfigured source simply contributes nothing.
package sources

import (
	"context"
	"io"
	"net/http"

	"lead-rec/internal/netutil"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) lead-rec/1.0"

// maxBodyBytes caps how much of any response we read; scrape targets can
// serve arbitrarily large pages.
const maxBodyBytes = 2 << 20

// Source is the uniform discovery capability. TLD-scoped sources are
// invoked once per candidate TLD; the rest are invoked once per seed with
// an empty tld argument.
type Source interface {
	Name() string
	TLDScoped() bool
	Discover(ctx context.Context, sld, tld string) ([]string, error)
}

// keepCandidate reduces a raw link or domain to its registrable form and
// keeps it only when the SLD matches. stripOrg additionally accepts SLDs
// that match after organizational-suffix stripping (apexgroup → apex).
func keepCandidate(raw, wantSLD string, stripOrg bool) (string, bool) {
	sld, tld := netutil.Split(raw)
	if sld == "" || tld == "" {
		return "", false
	}
	if sld != wantSLD {
		if !stripOrg || netutil.StripOrgSuffix(sld) != wantSLD {
			return "", false
		}
	}
	return sld + "." + tld, true
}

func drainBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
