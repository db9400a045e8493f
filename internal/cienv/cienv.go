// Package cienv reads the GitHub Actions context from the environment.
// Values only seed defaults; every input still reaches the manifest builder
// through its explicit Config.
package cienv

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// GitHub mirrors the subset of GITHUB_* variables the planner cares about.
type GitHub struct {
	Actions         bool   `env:"GITHUB_ACTIONS"`
	EventName       string `env:"GITHUB_EVENT_NAME"`
	Repository      string `env:"GITHUB_REPOSITORY"`
	RepositoryOwner string `env:"GITHUB_REPOSITORY_OWNER"`
	OutputFile      string `env:"GITHUB_OUTPUT"`
}

// Load parses the process environment. Missing variables are not an error;
// outside Actions the struct is simply mostly empty.
func Load() (GitHub, error) {
	var gh GitHub
	if err := env.Parse(&gh); err != nil {
		return GitHub{}, err
	}
	return gh, nil
}

// IsPullRequest reports whether the run was triggered by a change request,
// i.e. whether planning should default to incremental mode.
func (g GitHub) IsPullRequest() bool {
	return g.EventName == "pull_request" || g.EventName == "pull_request_target"
}

// Owner returns the repository owner, falling back to the owner half of
// GITHUB_REPOSITORY when GITHUB_REPOSITORY_OWNER is unset.
func (g GitHub) Owner() string {
	if g.RepositoryOwner != "" {
		return g.RepositoryOwner
	}
	if owner, _, ok := strings.Cut(g.Repository, "/"); ok {
		return owner
	}
	return ""
}
