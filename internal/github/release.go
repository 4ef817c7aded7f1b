package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/version"

	"github.com/go-logr/logr"
	gh "github.com/google/go-github/v68/github"
)

// Repository hosting commitizen's pre-commit hooks.
const (
	HookOwner = "commitizen-tools"
	HookRepo  = "commitizen"
)

// FallbackRevision is used when no release can be determined.
const FallbackRevision = "master"

// ReleaseLookup returns the tag name of the latest release of owner/repo.
type ReleaseLookup func(ctx context.Context, owner, repo string) (string, error)

// LatestRelease returns a ReleaseLookup backed by the GitHub releases API.
func LatestRelease(client *gh.Client) ReleaseLookup {
	return func(ctx context.Context, owner, repo string) (string, error) {
		release, _, err := client.Repositories.GetLatestRelease(ctx, owner, repo)
		if err != nil {
			return "", fmt.Errorf("getting latest release of %s/%s: %w", owner, repo, err)
		}
		tag := release.GetTagName()
		if tag == "" {
			return "", errors.New("latest release has no tag")
		}
		return tag, nil
	}
}

// HookRevision returns the revision the pre-commit entry is pinned to.
// A release build pins its own version. Other builds ask lookup for the
// latest published release and fall back to FallbackRevision when that
// fails or lookup is nil.
func HookRevision(ctx context.Context, log logr.Logger, current string, lookup ReleaseLookup) string {
	if version.Valid(current) {
		return "v" + strings.TrimPrefix(current, "v")
	}

	if lookup == nil {
		return FallbackRevision
	}

	tag, err := lookup(ctx, HookOwner, HookRepo)
	if err != nil {
		log.V(1).Info("falling back to default hook revision", "version", current, "error", err.Error())
		return FallbackRevision
	}
	return tag
}
