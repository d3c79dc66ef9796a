package store

import (
	"log/slog"
	"path/filepath"

	"github.com/davetashner/triage/internal/testable"
)

// DirName is the directory, relative to the project root, holding state.
const DirName = ".triage"

// GitOpener locates the enclosing repository when resolving the state
// directory. Tests can replace this to inject mocks.
var GitOpener testable.GitOpener = testable.DefaultGitOpener

// FS is the file system used to resolve paths.
var FS testable.FileSystem = testable.DefaultFS

// ResolveDir returns the state directory to use for work started in start.
// An explicit override wins (relative overrides are taken relative to
// start). Otherwise state lives in .triage/ at the root of the enclosing git
// worktree, so every subdirectory of a project shares one state; outside a
// repository it lives in start itself.
func ResolveDir(start, override string) (string, error) {
	base, err := FS.Abs(start)
	if err != nil {
		return "", err
	}
	if override != "" {
		if filepath.IsAbs(override) {
			return filepath.Clean(override), nil
		}
		return filepath.Join(base, override), nil
	}
	if root := gitRoot(base); root != "" {
		return filepath.Join(root, DirName), nil
	}
	return filepath.Join(base, DirName), nil
}

func gitRoot(path string) string {
	repo, err := GitOpener.Open(path)
	if err != nil {
		slog.Debug("not inside a git repository", "path", path, "error", err)
		return ""
	}
	root, err := repo.Root()
	if err != nil {
		return ""
	}
	return root
}
