// Package ci reads the continuous-integration environment signals and
// evaluates the publish gate against them.
package ci

// Default environment variable names for the CI signals. Travis exposes the
// first three; GH_TOKEN is the conventional name for a push credential held
// in encrypted CI settings.
const (
	DefaultRepoSlugVar    = "TRAVIS_REPO_SLUG"
	DefaultPullRequestVar = "TRAVIS_PULL_REQUEST"
	DefaultBranchVar      = "TRAVIS_BRANCH"
	DefaultTokenVar       = "GH_TOKEN"
)

// Signals holds the raw string values read from the CI environment. No
// parsing is applied: the gate compares these byte-for-byte.
type Signals struct {
	RepoSlug    string
	PullRequest string
	Branch      string
	Token       string
}

// LookupFunc resolves an environment variable. Matches os.LookupEnv so the
// process environment can be swapped for a map in tests.
type LookupFunc func(key string) (string, bool)

// SourceVars names the environment variables each signal is read from.
// Zero values fall back to the Travis defaults.
type SourceVars struct {
	RepoSlug    string `yaml:"repo_slug,omitempty"`
	PullRequest string `yaml:"pull_request,omitempty"`
	Branch      string `yaml:"branch,omitempty"`
	Token       string `yaml:"token,omitempty"`
}

func (s SourceVars) withDefaults() SourceVars {
	if s.RepoSlug == "" {
		s.RepoSlug = DefaultRepoSlugVar
	}
	if s.PullRequest == "" {
		s.PullRequest = DefaultPullRequestVar
	}
	if s.Branch == "" {
		s.Branch = DefaultBranchVar
	}
	if s.Token == "" {
		s.Token = DefaultTokenVar
	}
	return s
}

// ReadSignals collects the four signals through lookup. Missing variables
// yield empty strings; the gate treats an empty value as a mismatch, so no
// error is surfaced here.
func ReadSignals(vars SourceVars, lookup LookupFunc) Signals {
	vars = vars.withDefaults()
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return Signals{
		RepoSlug:    get(vars.RepoSlug),
		PullRequest: get(vars.PullRequest),
		Branch:      get(vars.Branch),
		Token:       get(vars.Token),
	}
}
