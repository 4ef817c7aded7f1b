package git

// Repository provides the low-level git operations needed to seed a
// project configuration. This is the key abstraction point for testing.
type Repository interface {
	// Tags returns all tags in the repository, newest first. Lightweight
	// tags are dated by their target commit, annotated tags by the tagger.
	Tags() ([]Tag, error)

	// LatestTag returns the tag nearest to HEAD among the tags reachable
	// from it. The boolean is false when HEAD has no tagged ancestor or
	// the repository has no commits yet.
	LatestTag() (Tag, bool, error)
}
