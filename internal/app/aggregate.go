package app

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"lead-rec/internal/logx"
	"lead-rec/internal/sources"
)

// aggregate fans every TLD-scoped source out over the candidate TLD list
// (skipping the seed's own TLD) and runs the unscoped sources once, then
// unions the results. Per-call failures are isolated: a broken source for
// one TLD is a warning, never an abort. The union is independent of
// completion order; the returned slice is sorted for determinism.
func aggregate(ctx context.Context, srcs []sources.Source, sld, excludedTLD string, tlds []string, workers, timeoutS int) []string {
	type call struct {
		src sources.Source
		tld string
	}
	var calls []call
	for _, src := range srcs {
		if !src.TLDScoped() {
			calls = append(calls, call{src: src})
			continue
		}
		for _, tld := range tlds {
			if tld == excludedTLD {
				continue
			}
			calls = append(calls, call{src: src, tld: tld})
		}
	}

	if workers <= 0 {
		workers = 1
	}
	results := make(chan []string, len(calls))
	sem := make(chan struct{}, workers)

	group, groupCtx := errgroup.WithContext(ctx)
	for _, c := range calls {
		current := c
		group.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-groupCtx.Done():
				return nil
			}
			defer func() { <-sem }()

			callCtx, cancel := context.WithTimeout(groupCtx, time.Duration(timeoutS)*time.Second)
			defer cancel()

			found, err := current.src.Discover(callCtx, sld, current.tld)
			if err != nil {
				if current.tld != "" {
					logx.Warnf("%s .%s failed for %q: %v", current.src.Name(), current.tld, sld, err)
				} else {
					logx.Warnf("%s failed for %q: %v", current.src.Name(), sld, err)
				}
				return nil
			}
			results <- found
			return nil
		})
	}
	group.Wait()
	close(results)

	seen := make(map[string]struct{})
	var union []string
	for found := range results {
		for _, domain := range found {
			if _, dup := seen[domain]; dup {
				continue
			}
			seen[domain] = struct{}{}
			union = append(union, domain)
		}
	}
	sort.Strings(union)
	logx.Debugf("aggregate %q: %d unique candidate(s) from %d call(s)", sld, len(union), len(calls))
	return union
}
