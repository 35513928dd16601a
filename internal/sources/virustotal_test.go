package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVirusTotalDisabledWithoutKey(t *testing.T) {
	t.Parallel()

	got, err := NewVirusTotal("").Discover(context.Background(), "apex", "")
	if err != nil {
		t.Fatalf("unconfigured adapter must not error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unconfigured adapter must return nothing, got %v", got)
	}
}

func TestVirusTotalSweep(t *testing.T) {
	known := map[string]bool{
		"apex.com": true,
		"apex.in":  true,
		"apex.io":  true,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-apikey"); got != "key123" {
			t.Errorf("unexpected api key header: %q", got)
		}
		domain := strings.TrimPrefix(r.URL.Path, "/domains/")
		if known[domain] {
			w.Write([]byte(`{"data":{"id":"` + domain + `"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	oldURL, oldClient := virusTotalBaseURL, virusTotalHTTPClient
	virusTotalBaseURL = srv.URL + "/domains/"
	virusTotalHTTPClient = srv.Client()
	defer func() {
		virusTotalBaseURL = oldURL
		virusTotalHTTPClient = oldClient
	}()

	got, err := NewVirusTotal("key123").Discover(context.Background(), "apex", "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"apex.com", "apex.in", "apex.io"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestVirusTotalPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		domain := strings.TrimPrefix(r.URL.Path, "/domains/")
		switch domain {
		case "apex.net":
			w.Write([]byte(`{"data":{"id":"apex.net"}}`))
		case "apex.org":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	oldURL, oldClient := virusTotalBaseURL, virusTotalHTTPClient
	virusTotalBaseURL = srv.URL + "/domains/"
	virusTotalHTTPClient = srv.Client()
	defer func() {
		virusTotalBaseURL = oldURL
		virusTotalHTTPClient = oldClient
	}()

	// A throttled TLD lookup is skipped, the rest of the sweep continues.
	got, err := NewVirusTotal("key123").Discover(context.Background(), "apex", "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"apex.net"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}
