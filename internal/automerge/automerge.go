// Package automerge approves and merges pull requests whose checks have all
// passed. It is the housekeeping counterpart to planning: once the planned
// builds go green on a labelled (or bot-authored) PR, nobody should have to
// click the merge button.
package automerge

import (
	"context"
	"fmt"
	"sort"

	"github.com/rockplan/rockplan/internal/logs"
)

// DefaultApproveMessage is the review comment left on a merged PR. It is a
// Sprintf template receiving the PR number.
const DefaultApproveMessage = "All status checks passed for PR #%d."

// DefaultLabel gates auto-merging for human-authored PRs.
const DefaultLabel = "automerge"

const defaultMinPassingChecks = 1

// Check is one status check on a pull request, with the bucket the forge
// sorted it into: pass, fail, pending, skipping or cancel.
type Check struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
}

// CheckSummary groups a PR's checks by bucket.
type CheckSummary struct {
	Passed    []Check
	Failed    []Check
	Pending   []Check
	Skipping  []Check
	Cancelled []Check
}

// SummarizeChecks buckets the given checks. Unknown buckets are dropped.
func SummarizeChecks(checks []Check) CheckSummary {
	var sum CheckSummary
	for _, c := range checks {
		switch c.Bucket {
		case "pass":
			sum.Passed = append(sum.Passed, c)
		case "fail":
			sum.Failed = append(sum.Failed, c)
		case "pending":
			sum.Pending = append(sum.Pending, c)
		case "skipping":
			sum.Skipping = append(sum.Skipping, c)
		case "cancel":
			sum.Cancelled = append(sum.Cancelled, c)
		}
	}
	return sum
}

// Author identifies who opened a pull request.
type Author struct {
	Login string `json:"login"`
	IsBot bool   `json:"is_bot"`
}

// PullRequest is the slice of PR state the merge decision needs.
type PullRequest struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Author    Author   `json:"author"`
	Labels    []string `json:"labels"`
	Mergeable string   `json:"mergeable"`
	BaseRef   string   `json:"baseRefName"`
}

// Config carries the merge policy.
type Config struct {
	// Labels a human-authored PR must all carry to be eligible.
	// Empty means every PR is eligible.
	Labels []string

	// BotAuthors are logins whose PRs are eligible regardless of labels.
	BotAuthors []string

	// MinPassingChecks rejects PRs that pass trivially because almost
	// nothing ran. Zero means 1.
	MinPassingChecks int

	// ApproveMessage is the Sprintf template for the review comment,
	// receiving the PR number. Empty means DefaultApproveMessage.
	ApproveMessage string

	// DryRun logs the approve/merge/rebase calls instead of making them.
	DryRun bool
}

func (c Config) withDefaults() Config {
	if c.MinPassingChecks <= 0 {
		c.MinPassingChecks = defaultMinPassingChecks
	}
	if c.ApproveMessage == "" {
		c.ApproveMessage = DefaultApproveMessage
	}
	return c
}

// Outcome reports what Run did, by PR number.
type Outcome struct {
	Merged  []int
	Rebased []int
	Skipped []int
}

// Engine applies the merge policy through an injected Forge.
type Engine struct {
	cfg   Config
	forge Forge
}

func NewEngine(cfg Config, forge Forge) *Engine {
	return &Engine{cfg: cfg.withDefaults(), forge: forge}
}

// Run walks the open PRs in ascending number order. The first ready PR per
// base branch is approved and merged; later ready PRs on the same base are
// rebased instead, since the merge just moved their base under them.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	if e.forge == nil {
		return nil, fmt.Errorf("automerge: no forge configured")
	}

	prs, err := e.forge.OpenPullRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("automerge: list pull requests: %w", err)
	}
	sort.Slice(prs, func(i, j int) bool { return prs[i].Number < prs[j].Number })

	outcome := &Outcome{}
	mergedBase := make(map[string]bool)

	for _, pr := range prs {
		logs.Infof("PR #%-5d - %q by %s", pr.Number, pr.Title, pr.Author.Login)

		if reason := e.ineligible(pr); reason != "" {
			logs.Infof("   skipped: %s", reason)
			outcome.Skipped = append(outcome.Skipped, pr.Number)
			continue
		}

		checks, err := e.forge.Checks(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("automerge: checks for PR #%d: %w", pr.Number, err)
		}
		if reason := e.notReady(SummarizeChecks(checks)); reason != "" {
			logs.Infof("   skipped: %s", reason)
			outcome.Skipped = append(outcome.Skipped, pr.Number)
			continue
		}

		if mergedBase[pr.BaseRef] {
			if err := e.rebase(ctx, pr); err != nil {
				return nil, err
			}
			outcome.Rebased = append(outcome.Rebased, pr.Number)
			continue
		}

		if err := e.approveAndMerge(ctx, pr); err != nil {
			return nil, err
		}
		mergedBase[pr.BaseRef] = true
		outcome.Merged = append(outcome.Merged, pr.Number)
	}

	return outcome, nil
}

// ineligible returns a skip reason, or "" when the PR may be merged.
// Trusted bot authors bypass the label requirement.
func (e *Engine) ineligible(pr PullRequest) string {
	if !e.labelled(pr) {
		return fmt.Sprintf("not labelled with %v", e.cfg.Labels)
	}
	if pr.Mergeable != "MERGEABLE" {
		return fmt.Sprintf("not mergeable (%s)", pr.Mergeable)
	}
	return ""
}

func (e *Engine) labelled(pr PullRequest) bool {
	if pr.Author.IsBot {
		for _, login := range e.cfg.BotAuthors {
			if pr.Author.Login == login {
				return true
			}
		}
	}

	have := make(map[string]bool, len(pr.Labels))
	for _, l := range pr.Labels {
		have[l] = true
	}
	for _, required := range e.cfg.Labels {
		if !have[required] {
			return false
		}
	}
	return true
}

// notReady returns a skip reason based on check state, or "" when all
// required checks passed. Skipped checks never block; too few passing
// checks do, so a PR cannot merge just because nothing ran.
func (e *Engine) notReady(sum CheckSummary) string {
	if len(sum.Failed) > 0 || len(sum.Pending) > 0 || len(sum.Cancelled) > 0 {
		return fmt.Sprintf("checks not passing (%d failed, %d pending, %d cancelled)",
			len(sum.Failed), len(sum.Pending), len(sum.Cancelled))
	}
	if passed := len(sum.Passed); passed < e.cfg.MinPassingChecks {
		return fmt.Sprintf("passing but with too few checks (%d)", passed)
	}
	return ""
}

func (e *Engine) approveAndMerge(ctx context.Context, pr PullRequest) error {
	message := fmt.Sprintf(e.cfg.ApproveMessage, pr.Number)

	if e.cfg.DryRun {
		logs.Infof("   would approve and merge PR #%d into %s", pr.Number, pr.BaseRef)
		return nil
	}

	if err := e.forge.Approve(ctx, pr.Number, message); err != nil {
		return fmt.Errorf("automerge: approve PR #%d: %w", pr.Number, err)
	}
	if err := e.forge.Merge(ctx, pr.Number); err != nil {
		return fmt.Errorf("automerge: merge PR #%d: %w", pr.Number, err)
	}
	logs.Infof("   merged to %s", pr.BaseRef)
	return nil
}

func (e *Engine) rebase(ctx context.Context, pr PullRequest) error {
	if e.cfg.DryRun {
		logs.Infof("   would rebase PR #%d onto %s", pr.Number, pr.BaseRef)
		return nil
	}

	if err := e.forge.UpdateBranch(ctx, pr.Number); err != nil {
		return fmt.Errorf("automerge: rebase PR #%d: %w", pr.Number, err)
	}
	logs.Infof("   rebased onto %s", pr.BaseRef)
	return nil
}
