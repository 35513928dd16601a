package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lead-rec/internal/config"
	"lead-rec/internal/leads"
	"lead-rec/internal/sources"
)

func testConfig() *config.Config {
	return &config.Config{
		TLDs:     []string{"co", "in", "net"},
		Workers:  2,
		TimeoutS: 5,
	}
}

func swapProbes(t *testing.T, probe func(context.Context, string) (bool, string), enrich func(context.Context, string) (string, string)) {
	t.Helper()
	oldProbe, oldEnrich := probeFn, enrichFn
	probeFn = probe
	enrichFn = enrich
	t.Cleanup(func() {
		probeFn = oldProbe
		enrichFn = oldEnrich
	})
}

func TestProcessSingleSeed(t *testing.T) {
	src := &stubSource{
		name:    "stub",
		results: map[string][]string{"": {"apex.in", "apexgroup.net", "other.com", "apex.com"}},
	}
	swapProbes(t,
		func(_ context.Context, domain string) (bool, string) {
			if domain == "apex.in" {
				return true, "http 200"
			}
			return false, "no dns (stub)"
		},
		func(_ context.Context, _ string) (string, string) {
			return "Software", "2021"
		},
	)

	result, err := Process(context.Background(), testConfig(), []sources.Source{src}, []string{"apex.com"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	want := map[string][]leads.Record{
		"apex.com": {{
			Domain:        "apex.in",
			URL:           "http://apex.in",
			Category:      "Software",
			CopyrightYear: "2021",
			Status:        "active",
			CompanyName:   "N/A",
			LeadType:      leads.TierMedium,
		}},
	}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessSecondSeedFailureIsIsolated(t *testing.T) {
	src := &stubSource{
		name:    "stub",
		results: map[string][]string{"": {"apex.in"}},
	}
	swapProbes(t,
		func(_ context.Context, _ string) (bool, string) { return true, "http 200" },
		func(_ context.Context, _ string) (string, string) { return "Unknown", "N/A" },
	)

	// The second seed cannot be reduced to an SLD and must fail on its own
	// without touching the first seed's results.
	result, err := Process(context.Background(), testConfig(), []sources.Source{src}, []string{"apex.com", "???"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if got := result.Data["apex.com"]; len(got) != 1 || got[0].Domain != "apex.in" {
		t.Fatalf("first seed results damaged: %v", got)
	}
	if _, processed := result.Data["???"]; processed {
		t.Fatal("failed seed must not appear in the data map")
	}
	if result.Errors["???"] == "" {
		t.Fatal("failed seed missing from the error map")
	}
}

func TestProcessEmptyResultIsExplicit(t *testing.T) {
	src := &stubSource{name: "stub", results: map[string][]string{}}
	swapProbes(t,
		func(_ context.Context, _ string) (bool, string) { return false, "no dns" },
		func(_ context.Context, _ string) (string, string) { return "Unknown", "N/A" },
	)

	result, err := Process(context.Background(), testConfig(), []sources.Source{src}, []string{"apex.com"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	records, processed := result.Data["apex.com"]
	if !processed {
		t.Fatal("processed seed missing from the data map")
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("want explicit empty list, got %#v", records)
	}
}

func TestProcessStopsOnCancelledContext(t *testing.T) {
	src := &stubSource{name: "stub", results: map[string][]string{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Process(ctx, testConfig(), []sources.Source{src}, []string{"apex.com"})
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(result.Data) != 0 || len(result.Errors) != 0 {
		t.Fatalf("cancelled run must not record seeds, got %v / %v", result.Data, result.Errors)
	}
}

func TestReadSeedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "domains.txt")
	content := "apex.com\n\n  ishaa.ai  \n\nother.net\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSeedFile(path)
	if err != nil {
		t.Fatalf("ReadSeedFile: %v", err)
	}
	want := []string{"apex.com", "ishaa.ai", "other.net"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("seeds mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadSeedFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
