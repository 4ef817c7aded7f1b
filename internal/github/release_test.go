package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *gh.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/commitizen-tools/commitizen/releases/latest", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)
	return client
}

func TestLatestRelease(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, map[string]any{"tag_name": "v4.1.0", "name": "v4.1.0"})
	})

	tag, err := LatestRelease(client)(context.Background(), HookOwner, HookRepo)
	require.NoError(t, err)
	require.Equal(t, "v4.1.0", tag)
}

func TestLatestRelease_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := LatestRelease(client)(context.Background(), HookOwner, HookRepo)
	require.Error(t, err)
	require.Contains(t, err.Error(), "getting latest release of commitizen-tools/commitizen")
}

func TestLatestRelease_EmptyTag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, map[string]any{"name": "untagged"})
	})

	_, err := LatestRelease(client)(context.Background(), HookOwner, HookRepo)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no tag")
}

func TestHookRevision(t *testing.T) {
	failing := func(context.Context, string, string) (string, error) {
		return "", errors.New("offline")
	}
	latest := func(_ context.Context, owner, repo string) (string, error) {
		require.Equal(t, HookOwner, owner)
		require.Equal(t, HookRepo, repo)
		return "v4.1.0", nil
	}

	tests := []struct {
		name    string
		version string
		lookup  ReleaseLookup
		want    string
	}{
		{"release build", "3.2.1", failing, "v3.2.1"},
		{"release build with v", "v3.2.1", failing, "v3.2.1"},
		{"pre-release build", "4.2.0rc1", failing, "v4.2.0rc1"},
		{"describe build", "v3.2.1-4-gabc1234", latest, "v4.1.0"},
		{"dev build", "dev", latest, "v4.1.0"},
		{"dev build offline", "dev", failing, FallbackRevision},
		{"dev build without lookup", "dev", nil, FallbackRevision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HookRevision(context.Background(), logr.Discard(), tt.version, tt.lookup)
			require.Equal(t, tt.want, got)
		})
	}
}
