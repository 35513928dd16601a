package app

import (
	"sort"

	"lead-rec/internal/netutil"
)

// filterCandidates keeps only candidates whose SLD equals targetSLD exactly
// (or after organizational-suffix stripping) and which are not the seed
// domain itself. The seed comparison uses the seed's actual registrable
// domain, whatever its TLD, so the pipeline never reports a seed as its own
// lead.
func filterCandidates(candidates []string, targetSLD, seedDomain string) []string {
	seen := make(map[string]struct{})
	var kept []string
	for _, candidate := range candidates {
		sld, tld := netutil.Split(candidate)
		if sld == "" || tld == "" {
			continue
		}
		if sld != targetSLD && netutil.StripOrgSuffix(sld) != targetSLD {
			continue
		}
		registrable := sld + "." + tld
		if registrable == seedDomain {
			continue
		}
		if _, dup := seen[registrable]; dup {
			continue
		}
		seen[registrable] = struct{}{}
		kept = append(kept, registrable)
	}
	sort.Strings(kept)
	return kept
}
