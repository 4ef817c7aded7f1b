// Package git discovers the tags a project has already published. It
// defines the Tag entity, a Repository interface backed by go-git, and the
// TagStore used by the init wizard.
package git

import "time"

// Tag is a tag peeled to the commit it marks.
type Tag struct {
	Name      string    // short name, e.g. "v1.0.0"
	TargetSha string    // SHA of the commit this tag points to, peeled
	When      time.Time // tagger date for annotated tags, commit date otherwise
}
