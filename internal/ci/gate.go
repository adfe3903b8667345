package ci

import "fmt"

// PullRequestFalse is the only pull-request signal value that means "not a
// pull request". Any other value, including "True", "1" or empty, means the
// build originates from a pull request.
const PullRequestFalse = "false"

// SkipReason enumerates why the gate declined to publish.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipSlugMismatch SkipReason = "slug_mismatch"
	SkipPullRequest  SkipReason = "pull_request"
	SkipBranch       SkipReason = "branch_mismatch"
)

// Gate holds the expected values the CI signals must match exactly.
type Gate struct {
	Slug   string // expected owner/project
	Branch string // expected branch, typically master
}

// Decision is the outcome of evaluating the gate.
type Decision struct {
	Proceed bool
	Reason  SkipReason
	Detail  string
}

// Evaluate compares the signals against the gate. All comparisons are exact
// and case-sensitive; the checks run in declaration order and the first
// mismatch wins.
func (g Gate) Evaluate(s Signals) Decision {
	if s.RepoSlug != g.Slug {
		return Decision{
			Reason: SkipSlugMismatch,
			Detail: fmt.Sprintf("repository %q is not %q", s.RepoSlug, g.Slug),
		}
	}
	if s.PullRequest != PullRequestFalse {
		return Decision{
			Reason: SkipPullRequest,
			Detail: fmt.Sprintf("build is for a pull request (signal %q)", s.PullRequest),
		}
	}
	if s.Branch != g.Branch {
		return Decision{
			Reason: SkipBranch,
			Detail: fmt.Sprintf("branch %q is not %q", s.Branch, g.Branch),
		}
	}
	return Decision{Proceed: true}
}

// String renders a human-readable summary of the decision.
func (d Decision) String() string {
	if d.Proceed {
		return "gate passed"
	}
	return fmt.Sprintf("skipped: %s", d.Detail)
}
