package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/source"
	"github.com/davetashner/triage/internal/testable"
)

// githubAPI builds the GitHub client. Replaced in tests.
var githubAPI = source.NewGitHubAPI

// gitOpener finds the origin remote when github_repo is not configured.
var gitOpener testable.GitOpener = testable.DefaultGitOpener

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Show the GitHub star count of the project",
	Long: `Show the GitHub star count of the repository named by github_repo, or of
the origin remote of the enclosing git repository.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := fetchStars(cmd.Context())
		if err != nil {
			return classify(err)
		}
		lang, _ := i18n.Parse(cfg.Language)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, i18n.MsgStars, n))
		return nil
	},
}

// projectRepo returns the configured repository, falling back to the origin
// remote of the working directory.
func projectRepo() (source.Repo, error) {
	if cfg.GitHubRepo != "" {
		return source.ParseRepo(cfg.GitHubRepo)
	}
	dir, err := cmdFS.Abs(workDir)
	if err != nil {
		return source.Repo{}, err
	}
	repo, err := source.RemoteRepo(gitOpener, dir)
	if err != nil {
		return source.Repo{}, fmt.Errorf("no GitHub repository (set github_repo): %w", err)
	}
	return repo, nil
}

func fetchStars(ctx context.Context) (int, error) {
	repo, err := projectRepo()
	if err != nil {
		return 0, err
	}
	return source.StarCount(ctx, githubAPI(), repo)
}
