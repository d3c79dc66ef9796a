package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/mod/semver"

	"github.com/davetashner/triage/internal/redact"
	"github.com/davetashner/triage/internal/testable"
)

var sshRemotePattern = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)

// ErrNotGitHub is returned when a remote does not point at github.com.
var ErrNotGitHub = errors.New("not a GitHub repository")

// GitHubAPI is the subset of the GitHub REST API triage calls.
type GitHubAPI interface {
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// realGitHubAPI wraps the go-github client to implement GitHubAPI.
type realGitHubAPI struct {
	client *github.Client
}

func (r *realGitHubAPI) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	return r.client.Repositories.Get(ctx, owner, repo)
}

func (r *realGitHubAPI) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	return r.client.Repositories.GetLatestRelease(ctx, owner, repo)
}

// NewGitHubAPI returns a client authenticated with redact.Token when one is
// set. Public repository data works without a token at a lower rate limit.
func NewGitHubAPI() GitHubAPI {
	client := github.NewClient(HTTPClient)
	if token := redact.Token(); token != "" {
		client = client.WithAuthToken(token)
	}
	return &realGitHubAPI{client: client}
}

// Repo is a GitHub owner/name pair.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// ParseRepo accepts "owner/name" or any GitHub remote URL.
func ParseRepo(s string) (Repo, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, "/") == 1 && !strings.Contains(s, ":") {
		owner, name, _ := strings.Cut(s, "/")
		if owner != "" && name != "" {
			return Repo{Owner: owner, Name: strings.TrimSuffix(name, ".git")}, nil
		}
	}
	return ParseGitHubURL(s)
}

// ParseGitHubURL parses an HTTPS or SSH GitHub URL.
func ParseGitHubURL(rawURL string) (Repo, error) {
	if m := sshRemotePattern.FindStringSubmatch(rawURL); m != nil {
		return Repo{Owner: m[1], Name: m[2]}, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Repo{}, fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	if parsed.Host != "github.com" && parsed.Host != "www.github.com" {
		return Repo{}, fmt.Errorf("%w: %q", ErrNotGitHub, rawURL)
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("cannot parse owner/repo from %q", rawURL)
	}
	return Repo{Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}, nil
}

// RemoteRepo returns the GitHub repository behind the origin remote of the
// git repository containing path.
func RemoteRepo(opener testable.GitOpener, path string) (Repo, error) {
	repo, err := opener.Open(path)
	if err != nil {
		return Repo{}, fmt.Errorf("opening repo: %w", err)
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return Repo{}, fmt.Errorf("listing remotes: %w", err)
	}

	var originURLs []string
	for _, r := range remotes {
		if r.Config().Name == "origin" {
			originURLs = r.Config().URLs
			break
		}
	}
	if len(originURLs) == 0 {
		return Repo{}, fmt.Errorf("no origin remote found")
	}
	return ParseGitHubURL(originURLs[0])
}

// StarCount returns the stargazer count of repo.
func StarCount(ctx context.Context, api GitHubAPI, repo Repo) (int, error) {
	r, _, err := api.GetRepository(ctx, repo.Owner, repo.Name)
	if err != nil {
		return 0, &NetworkError{Op: "star count", URL: repo.String(), Err: err}
	}
	return r.GetStargazersCount(), nil
}

// Release describes the newest published release.
type Release struct {
	Tag string
	URL string
}

// LatestRelease returns the newest release of repo.
func LatestRelease(ctx context.Context, api GitHubAPI, repo Repo) (Release, error) {
	r, _, err := api.GetLatestRelease(ctx, repo.Owner, repo.Name)
	if err != nil {
		return Release{}, &NetworkError{Op: "latest release", URL: repo.String(), Err: err}
	}
	return Release{Tag: r.GetTagName(), URL: r.GetHTMLURL()}, nil
}

// NewerVersion reports whether latest is a higher semantic version than
// current. Versions without the leading "v" are accepted. Anything that is
// not a valid semantic version, such as a development build, never
// compares newer.
func NewerVersion(current, latest string) bool {
	c, l := canonical(current), canonical(latest)
	if !semver.IsValid(c) || !semver.IsValid(l) {
		return false
	}
	return semver.Compare(l, c) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
