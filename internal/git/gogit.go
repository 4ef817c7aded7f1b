package git

import (
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo *gogit.Repository
}

// Open opens the git repository containing path.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	return &GoGitRepository{repo: r}, nil
}

func (r *GoGitRepository) Tags() ([]Tag, error) {
	var tags []Tag

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tag, err := r.resolveTag(ref)
		if err != nil {
			return nil // skip tags that do not point to a commit
		}
		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if !tags[i].When.Equal(tags[j].When) {
			return tags[i].When.After(tags[j].When)
		}
		return tags[i].Name < tags[j].Name
	})

	return tags, nil
}

func (r *GoGitRepository) LatestTag() (Tag, bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// No commits yet.
			return Tag{}, false, nil
		}
		return Tag{}, false, fmt.Errorf("getting HEAD: %w", err)
	}

	tags, err := r.Tags()
	if err != nil {
		return Tag{}, false, err
	}
	if len(tags) == 0 {
		return Tag{}, false, nil
	}

	// Tags are newest first, so the first tag per commit wins.
	byCommit := make(map[plumbing.Hash]Tag, len(tags))
	for _, t := range tags {
		h := plumbing.NewHash(t.TargetSha)
		if _, ok := byCommit[h]; !ok {
			byCommit[h] = t
		}
	}

	// Breadth-first walk so the tag with the fewest commits between it and
	// HEAD is found first.
	seen := make(map[plumbing.Hash]struct{})
	queue := []plumbing.Hash{head.Hash()}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}

		if t, ok := byCommit[h]; ok {
			return t, true, nil
		}

		c, err := r.repo.CommitObject(h)
		if err != nil {
			return Tag{}, false, fmt.Errorf("loading commit %s: %w", h.String(), err)
		}
		queue = append(queue, c.ParentHashes...)
	}

	return Tag{}, false, nil
}

// resolveTag peels a tag reference to its commit and dates it.
// For lightweight tags, the target commit is used directly.
// For annotated tags, the tag object is peeled through to the commit.
func (r *GoGitRepository) resolveTag(ref *plumbing.Reference) (Tag, error) {
	name := ref.Name().Short()

	tagObj, err := r.repo.TagObject(ref.Hash())
	if err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return Tag{}, fmt.Errorf("peeling annotated tag %s: %w", name, err)
		}
		return Tag{
			Name:      name,
			TargetSha: commit.Hash.String(),
			When:      tagObj.Tagger.When,
		}, nil
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return Tag{}, fmt.Errorf("tag %s does not point to a commit: %w", name, err)
	}

	return Tag{
		Name:      name,
		TargetSha: commit.Hash.String(),
		When:      commit.Committer.When,
	}, nil
}
