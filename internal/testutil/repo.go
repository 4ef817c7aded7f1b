// Package testutil builds throwaway git repositories whose tag layout is
// fixed by the test, for tag discovery and init end-to-end tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TestRepo is a git repository in t.TempDir(). Every commit and annotated
// tag advances a fake clock so tag dates are strictly ordered.
type TestRepo struct {
	t     testing.TB
	path  string
	repo  *gogit.Repository
	clock time.Time
	n     int
}

// NewTestRepo initializes an empty repository on the master branch.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &TestRepo{
		t:     t,
		path:  dir,
		repo:  repo,
		clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the working tree root.
func (r *TestRepo) Path() string {
	return r.path
}

// AddCommit commits a new file on the current branch and returns the
// commit SHA.
func (r *TestRepo) AddCommit(message string) string {
	r.t.Helper()
	return r.commit(message)
}

// MergeCommit commits on the current branch with HEAD and otherSha as
// parents and returns the commit SHA.
func (r *TestRepo) MergeCommit(message, otherSha string) string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("reading HEAD: %v", err)
	}
	return r.commit(message, head.Hash(), plumbing.NewHash(otherSha))
}

// CreateTag points a lightweight tag at sha.
func (r *TestRepo) CreateTag(name, sha string) {
	r.t.Helper()
	r.setRef(plumbing.NewTagReferenceName(name), sha)
}

// CreateAnnotatedTag creates a tag object for sha, dated after every
// commit made so far.
func (r *TestRepo) CreateAnnotatedTag(name, sha, message string) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, plumbing.NewHash(sha), &gogit.CreateTagOptions{
		Tagger:  r.signature(time.Second),
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("annotated tag %s: %v", name, err)
	}
}

// CreateBranch points a new branch at sha without switching to it.
func (r *TestRepo) CreateBranch(name, sha string) {
	r.t.Helper()
	r.setRef(plumbing.NewBranchReferenceName(name), sha)
}

// Checkout switches the worktree to branch.
func (r *TestRepo) Checkout(branch string) {
	r.t.Helper()
	err := r.worktree().Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		r.t.Fatalf("checkout %s: %v", branch, err)
	}
}

// WriteFile writes name under the repository root without staging it.
func (r *TestRepo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", name, err)
	}
}

// ReadFile returns the content of name under the repository root.
func (r *TestRepo) ReadFile(name string) string {
	r.t.Helper()
	data, err := os.ReadFile(filepath.Join(r.path, name))
	if err != nil {
		r.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// commit stages a fresh file and commits it. Without parents go-git uses
// HEAD.
func (r *TestRepo) commit(message string, parents ...plumbing.Hash) string {
	r.t.Helper()
	r.n++
	name := fmt.Sprintf("change-%03d.txt", r.n)
	r.WriteFile(name, message)

	wt := r.worktree()
	if _, err := wt.Add(name); err != nil {
		r.t.Fatalf("staging %s: %v", name, err)
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:  r.signature(time.Minute),
		Parents: parents,
	})
	if err != nil {
		r.t.Fatalf("commit %q: %v", message, err)
	}
	return hash.String()
}

func (r *TestRepo) setRef(name plumbing.ReferenceName, sha string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(name, plumbing.NewHash(sha))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("setting %s: %v", name, err)
	}
}

func (r *TestRepo) worktree() *gogit.Worktree {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	return wt
}

// signature advances the clock by step and signs with the new time.
func (r *TestRepo) signature(step time.Duration) *object.Signature {
	r.clock = r.clock.Add(step)
	return &object.Signature{Name: "Test", Email: "test@example.com", When: r.clock}
}
