package testable

import (
	"github.com/go-git/go-git/v5"
)

// GitOpener abstracts opening a git repository. Production code uses
// RealGitOpener; tests inject a mock to avoid filesystem dependencies.
type GitOpener interface {
	// Open opens the repository containing path, searching parent
	// directories for the .git directory.
	Open(path string) (GitRepository, error)
}

// GitRepository abstracts the subset of *git.Repository methods used by
// triage. This keeps the interface minimal and easy to mock.
type GitRepository interface {
	// Root returns the absolute path of the worktree root.
	Root() (string, error)
	// Remotes returns the configured remotes.
	Remotes() ([]*git.Remote, error)
}

// RealGitOpener is the production implementation of GitOpener.
type RealGitOpener struct{}

// Open wraps git.PlainOpenWithOptions with parent-directory detection.
func (RealGitOpener) Open(path string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return &RealGitRepository{repo: repo}, nil
}

// RealGitRepository wraps *git.Repository to satisfy GitRepository.
type RealGitRepository struct {
	repo *git.Repository
}

// Root returns the worktree root. Bare repositories have none.
func (r *RealGitRepository) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// Remotes returns a list of remotes in a repository.
func (r *RealGitRepository) Remotes() ([]*git.Remote, error) {
	return r.repo.Remotes()
}

// DefaultGitOpener is the production GitOpener.
var DefaultGitOpener GitOpener = RealGitOpener{}
