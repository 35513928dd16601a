// Package app wires the discovery pipeline together: aggregate candidates
// from the sources, filter to strict SLD matches, probe liveness, enrich
// and classify, and assemble the per-seed result.
package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"lead-rec/internal/config"
	"lead-rec/internal/leads"
	"lead-rec/internal/logx"
	"lead-rec/internal/netutil"
	"lead-rec/internal/probe"
	"lead-rec/internal/report"
	"lead-rec/internal/sources"
)

// Probe hooks, swappable in tests.
var (
	probeFn  = probe.Probe
	enrichFn = probe.Enrich
)

// Run executes a full discovery run and writes the result where the config
// points. Returns an error for process-level failures only; per-seed and
// per-source failures are captured inside the RunResult.
func Run(ctx context.Context, cfg *config.Config) error {
	seeds, err := collectSeeds(cfg)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no seed domains supplied (use -d or -l)")
	}

	result, err := Process(ctx, cfg, defaultSources(cfg), seeds)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return report.Print(os.Stdout, result)
	}
	if err := report.Write(cfg.Output, result); err != nil {
		return err
	}
	logx.Infof("results saved to %s", cfg.Output)
	return nil
}

func defaultSources(cfg *config.Config) []sources.Source {
	return []sources.Source{
		sources.NewDuckDuckGo(),
		sources.NewGoogle(),
		sources.NewBing(),
		sources.NewRapidDNS(),
		sources.NewGitHub(cfg.GitHubToken),
		sources.NewVirusTotal(cfg.VTAPIKey),
	}
}

// Process runs the pipeline for each seed in input order. A seed whose
// pipeline fails lands in the error map and processing continues; a seed
// that succeeds with nothing to show gets an explicit empty list. The run
// stops early only when ctx is cancelled.
func Process(ctx context.Context, cfg *config.Config, srcs []sources.Source, seeds []string) (*leads.RunResult, error) {
	result := leads.NewRunResult()
	for i, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		logx.Infof("processing domain %d/%d: %s", i+1, len(seeds), seed)
		records, err := processSeed(ctx, cfg, srcs, seed)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logx.Errorf("fatal error with %s: %v", seed, err)
			result.Errors[seed] = err.Error()
			continue
		}
		result.Data[seed] = records
	}
	return result, nil
}

func processSeed(ctx context.Context, cfg *config.Config, srcs []sources.Source, seed string) ([]leads.Record, error) {
	sld, tld := netutil.Split(seed)
	if sld == "" {
		return nil, fmt.Errorf("could not derive an SLD from %q", seed)
	}
	seedDomain := sld + "." + tld
	logx.Infof("starting lead search for SLD %q", sld)

	candidates := aggregate(ctx, srcs, sld, tld, cfg.TLDs, cfg.Workers, cfg.TimeoutS)
	matched := filterCandidates(candidates, sld, seedDomain)
	logx.Debugf("%s: %d candidate(s) survived the match filter", seed, len(matched))

	records := make([]leads.Record, 0, len(matched))
	for _, domain := range matched {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		active, detail := probeFn(ctx, domain)
		if !active {
			logx.Debugf("skipping inactive %s (%s)", domain, detail)
			continue
		}
		logx.Infof("probing %s -- active [%s]", domain, detail)
		category, year := enrichFn(ctx, domain)
		records = append(records, leads.NewRecord(domain, category, year))
	}
	return records, nil
}

func collectSeeds(cfg *config.Config) ([]string, error) {
	var seeds []string
	if cfg.Domain != "" {
		seeds = append(seeds, cfg.Domain)
	}
	if cfg.ListFile != "" {
		fromFile, err := ReadSeedFile(cfg.ListFile)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, fromFile...)
	}
	return seeds, nil
}

// ReadSeedFile loads a newline-delimited seed list, skipping blank lines.
func ReadSeedFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed list %q: %w", path, err)
	}
	defer file.Close()

	var seeds []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("seed list %q: %w", path, err)
	}
	return seeds, nil
}
