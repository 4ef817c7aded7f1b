package git

import "fmt"

// TagStore provides the tag queries the init wizard asks of a repository.
// A nil Repository behaves like a repository without tags, which is what a
// project that is not yet under git looks like.
type TagStore struct {
	repo Repository
}

// NewTagStore creates a new TagStore wrapping the given Repository.
func NewTagStore(repo Repository) *TagStore {
	return &TagStore{repo: repo}
}

// LatestTagName returns the name of the tag nearest to HEAD, or an empty
// string when there is none.
func (s *TagStore) LatestTagName() (string, error) {
	if s.repo == nil {
		return "", nil
	}

	tag, ok, err := s.repo.LatestTag()
	if err != nil {
		return "", fmt.Errorf("finding latest tag: %w", err)
	}
	if !ok {
		return "", nil
	}
	return tag.Name, nil
}

// TagNames returns the names of all tags, newest first.
func (s *TagStore) TagNames() ([]string, error) {
	if s.repo == nil {
		return nil, nil
	}

	tags, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}
