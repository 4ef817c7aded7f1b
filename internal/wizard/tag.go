package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultTag is used when the repository has no tags.
const DefaultTag = "0.0.1"

// Tag format templates. The placeholder is replaced by the version.
const (
	DefaultTagFormat = "$version"
	VPrefixTagFormat = "v$version"
)

const (
	noTagMessage      = "No Existing Tag. Set tag to " + DefaultTag
	latestTagTitle    = "Please choose the latest tag: "
	tagFormatTitle    = `Please enter the correct version format: (default: "` + DefaultTagFormat + `")`
	vPrefixConfirmFmt = "Is %q the correct tag format?"
)

// ErrTagRequired is returned when the user picks no tag from the list.
var ErrTagRequired = errors.New("tag is required")

// TagSource lists repository tags.
type TagSource interface {
	// LatestTagName returns the tag nearest to HEAD, empty when none.
	LatestTagName() (string, error)

	// TagNames returns all tags, newest first.
	TagNames() ([]string, error)
}

// ResolveTag asks the user which tag marks the current version. Without
// any tags it warns and returns DefaultTag without asking.
func ResolveTag(ctx context.Context, src TagSource, p Prompter, out Printer) (string, error) {
	latest, err := src.LatestTagName()
	if err != nil {
		return "", err
	}
	if latest == "" {
		out.Warn(noTagMessage)
		return DefaultTag, nil
	}

	ok, err := p.Confirm(ctx, fmt.Sprintf("Is %s the latest tag?", latest), false)
	if err != nil {
		return "", err
	}
	if ok {
		return latest, nil
	}

	tags, err := src.TagNames()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		out.Warn(noTagMessage)
		return DefaultTag, nil
	}

	chosen, err := p.Select(ctx, latestTagTitle, tags, "")
	if err != nil {
		return "", err
	}
	if chosen == "" {
		return "", ErrTagRequired
	}
	return chosen, nil
}

// InferTagFormat returns the tag format template for tag. A "v" prefix is
// offered as VPrefixTagFormat; otherwise, or when declined, the user types
// a template. The typed template is used verbatim.
func InferTagFormat(ctx context.Context, tag string, p Prompter) (string, error) {
	if strings.HasPrefix(tag, "v") {
		ok, err := p.Confirm(ctx, fmt.Sprintf(vPrefixConfirmFmt, VPrefixTagFormat), true)
		if err != nil {
			return "", err
		}
		if ok {
			return VPrefixTagFormat, nil
		}
	}

	format, err := p.Text(ctx, tagFormatTitle)
	if err != nil {
		return "", err
	}
	if format == "" {
		return DefaultTagFormat, nil
	}
	return format, nil
}
