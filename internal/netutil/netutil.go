// Package netutil normalizes domain and URL strings and splits them into
// comparable SLD/TLD pairs using the public suffix list.
package netutil

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// orgSuffixes are organizational tokens stripped from the end of an SLD at
// comparison boundaries, so "apexgroup" still matches the seed SLD "apex".
// Longest tokens first so "technologies" wins over "tech".
var orgSuffixes = []string{
	"international",
	"technologies",
	"enterprises",
	"industries",
	"solutions",
	"services",
	"systems",
	"company",
	"global",
	"group",
	"corp",
	"tech",
	"ltd",
	"llc",
	"inc",
}

// NormalizeDomain extracts a canonical lowercase host from an arbitrary
// domain or URL string. Schemes, credentials, ports, paths and queries are
// stripped; wildcard entries and strings without a dot yield "".
func NormalizeDomain(line string) string {
	candidate := strings.TrimSpace(line)
	if candidate == "" {
		return ""
	}
	if idx := strings.IndexAny(candidate, " \t"); idx != -1 {
		candidate = candidate[:idx]
	}

	if strings.Contains(candidate, "://") {
		if parsed, err := url.Parse(candidate); err == nil && parsed.Hostname() != "" {
			candidate = parsed.Hostname()
		}
	}

	if at := strings.LastIndex(candidate, "@"); at != -1 {
		candidate = candidate[at+1:]
	}
	if idx := strings.IndexAny(candidate, "/?#"); idx != -1 {
		candidate = candidate[:idx]
	}
	if host, _, err := net.SplitHostPort(candidate); err == nil {
		candidate = host
	}

	candidate = strings.Trim(strings.ToLower(candidate), ".")
	if candidate == "" || strings.Contains(candidate, "*") {
		return ""
	}
	if !strings.Contains(candidate, ".") {
		return ""
	}
	if net.ParseIP(candidate) != nil {
		return ""
	}
	return candidate
}

// Split derives the (sld, tld) pair from a domain or URL. The TLD is the
// full public suffix, so multi-label suffixes like "co.uk" stay one unit.
// Unparseable input yields two empty strings, never an error, and repeated
// calls on the same input are stable.
func Split(domainOrURL string) (sld, tld string) {
	host := NormalizeDomain(domainOrURL)
	if host == "" {
		return "", ""
	}

	suffix, icann := publicsuffix.PublicSuffix(host)
	if suffix == "" || suffix == host {
		return "", ""
	}
	// For unlisted TLDs the PSL wildcard rule makes any last label a
	// "suffix"; those are not registrable domains (apex.html, apex.local).
	// Private-section multi-label suffixes (icann=false with a dot) stay.
	if !icann && !strings.Contains(suffix, ".") {
		return "", ""
	}
	rest := strings.TrimSuffix(host, "."+suffix)
	if rest == host || rest == "" {
		return "", ""
	}
	// Registrable label only; subdomains are irrelevant for matching.
	if idx := strings.LastIndex(rest, "."); idx != -1 {
		rest = rest[idx+1:]
	}
	if rest == "" {
		return "", ""
	}
	return rest, suffix
}

// Registrable reconstructs "sld.tld" for a candidate, or "" when the input
// does not parse to a registrable domain.
func Registrable(domainOrURL string) string {
	sld, tld := Split(domainOrURL)
	if sld == "" || tld == "" {
		return ""
	}
	return sld + "." + tld
}

// StripOrgSuffix removes one trailing organizational token from an SLD.
// It is applied only when comparing SLDs, never to stored values, and it
// never strips the label down to nothing.
func StripOrgSuffix(sld string) string {
	for _, suffix := range orgSuffixes {
		if strings.HasSuffix(sld, suffix) && len(sld) > len(suffix) {
			return sld[:len(sld)-len(suffix)]
		}
	}
	return sld
}
