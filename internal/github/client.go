// Package github looks up commitizen releases on GitHub so development
// builds can pin the pre-commit hook to a published revision.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ClientConfig holds the configuration for creating a GitHub API client.
// Every field falls back to an environment variable when empty.
type ClientConfig struct {
	// Token is a personal access token. Falls back to GITHUB_TOKEN.
	Token string

	// AppID is a GitHub App ID. Falls back to GH_APP_ID.
	AppID int64

	// AppKey is the App's private key PEM content. Falls back to
	// GH_APP_PRIVATE_KEY.
	AppKey string

	// AppKeyPath is the App's private key PEM file, used when AppKey is
	// empty. Falls back to GH_APP_PRIVATE_KEY_PATH.
	AppKeyPath string

	// Owner is the account the App is installed on. Falls back to
	// GH_APP_OWNER.
	Owner string

	// BaseURL is a GitHub Enterprise API URL. Falls back to GITHUB_API_URL.
	BaseURL string
}

// NewClient creates a GitHub API client. Auth resolution order: token,
// then App installation, then anonymous. Public release data is readable
// anonymously; credentials only raise the rate limit.
func NewClient(cfg ClientConfig) (*gh.Client, error) {
	httpClient, err := authenticatedHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	client := gh.NewClient(httpClient)
	if baseURL := resolveString(cfg.BaseURL, "GITHUB_API_URL"); baseURL != "" {
		return client.WithEnterpriseURLs(baseURL, baseURL)
	}
	return client, nil
}

// authenticatedHTTPClient returns nil when no credentials are configured,
// which go-github treats as http.DefaultClient.
func authenticatedHTTPClient(cfg ClientConfig) (*http.Client, error) {
	if token := resolveString(cfg.Token, "GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		return oauth2.NewClient(context.Background(), ts), nil
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	key, err := appKey(cfg)
	if err != nil {
		return nil, err
	}
	if appID == 0 || len(key) == 0 {
		return nil, nil
	}

	owner := resolveString(cfg.Owner, "GH_APP_OWNER")
	if owner == "" {
		return nil, fmt.Errorf("GitHub App authentication needs an installation owner: set GH_APP_OWNER")
	}

	transport, err := installationTransport(appID, key, owner, resolveString(cfg.BaseURL, "GITHUB_API_URL"))
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: transport}, nil
}

// appKey returns the PEM content from AppKey, or reads AppKeyPath.
func appKey(cfg ClientConfig) ([]byte, error) {
	if key := resolveString(cfg.AppKey, "GH_APP_PRIVATE_KEY"); key != "" {
		return []byte(key), nil
	}
	path := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY_PATH")
	if path == "" {
		return nil, nil
	}
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GitHub App private key: %w", err)
	}
	return key, nil
}

func installationTransport(appID int64, key []byte, owner, baseURL string) (*ghinstallation.Transport, error) {
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, appID, key)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = baseURL
	}

	appClient := gh.NewClient(&http.Client{Transport: appTransport})
	if baseURL != "" {
		appClient, err = appClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("setting enterprise URL: %w", err)
		}
	}

	installationID, err := findInstallation(context.Background(), appClient, owner)
	if err != nil {
		return nil, err
	}

	transport, err := ghinstallation.New(http.DefaultTransport, appID, installationID, key)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	if baseURL != "" {
		transport.BaseURL = baseURL
	}
	return transport, nil
}

// findInstallation finds the GitHub App installation for the given owner.
func findInstallation(ctx context.Context, client *gh.Client, owner string) (int64, error) {
	opts := &gh.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}

		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}
