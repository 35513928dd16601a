package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGitHubDisabledWithoutToken(t *testing.T) {
	t.Parallel()

	got, err := NewGitHub("").Discover(context.Background(), "apex", "")
	if err != nil {
		t.Fatalf("unconfigured adapter must not error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unconfigured adapter must return nothing, got %v", got)
	}
}

func TestGitHubSearchAndExtract(t *testing.T) {
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("unexpected auth header: %q", got)
		}
		switch r.URL.Path {
		case "/search/code":
			if got := r.URL.Query().Get("q"); got != `"apex." in:file` {
				t.Errorf("unexpected query: %s", got)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"items":[{"url":"%s/repos/x/y/contents/conf.txt"}]}`, srvURL)
		case "/repos/x/y/contents/conf.txt":
			if got := r.Header.Get("Accept"); got != "application/vnd.github.raw+json" {
				t.Errorf("unexpected accept header: %q", got)
			}
			w.Write([]byte("endpoint = https://apex.in/api\nmirror: APEX.WORLD\nasset apex.html apex.co\n"))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	oldURL, oldClient := githubBaseURL, githubHTTPClient
	githubBaseURL = srv.URL
	githubHTTPClient = srv.Client()
	defer func() {
		githubBaseURL = oldURL
		githubHTTPClient = oldClient
	}()

	got, err := NewGitHub("tok123").Discover(context.Background(), "apex", "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// "apex.html" is not a registrable domain and must be dropped.
	want := []string{"apex.in", "apex.world", "apex.co"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestGitHubSearchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	oldURL, oldClient := githubBaseURL, githubHTTPClient
	githubBaseURL = srv.URL
	githubHTTPClient = srv.Client()
	defer func() {
		githubBaseURL = oldURL
		githubHTTPClient = oldClient
	}()

	if _, err := NewGitHub("bad").Discover(context.Background(), "apex", ""); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}
