package automerge

import (
	"context"
	"strings"
	"testing"
)

func TestCLIForgeOpenPullRequests(t *testing.T) {
	t.Parallel()

	forge := &CLIForge{run: func(ctx context.Context, args ...string) ([]byte, error) {
		cmd := strings.Join(args, " ")
		switch {
		case strings.HasPrefix(cmd, "pr list"):
			return []byte(`[
				{"number": 12, "title": "bump base", "labels": [{"name": "automerge"}, {"name": "deps"}]},
				{"number": 3, "title": "fix walk", "labels": []}
			]`), nil
		case strings.HasPrefix(cmd, "pr view 12"):
			return []byte(`{"mergeable": "MERGEABLE", "baseRefName": "main", "author": {"login": "renovate[bot]", "is_bot": true}}`), nil
		case strings.HasPrefix(cmd, "pr view 3"):
			return []byte(`{"mergeable": "CONFLICTING", "baseRefName": "main", "author": {"login": "dev", "is_bot": false}}`), nil
		default:
			t.Fatalf("unexpected gh invocation: %s", cmd)
			return nil, nil
		}
	}}

	prs, err := forge.OpenPullRequests(t.Context())
	if err != nil {
		t.Fatalf("OpenPullRequests() error = %v", err)
	}
	if len(prs) != 2 {
		t.Fatalf("got %d PRs, want 2", len(prs))
	}

	first := prs[0]
	if first.Number != 12 || first.BaseRef != "main" || first.Mergeable != "MERGEABLE" {
		t.Errorf("unexpected PR: %+v", first)
	}
	if !first.Author.IsBot || first.Author.Login != "renovate[bot]" {
		t.Errorf("author not decoded: %+v", first.Author)
	}
	if len(first.Labels) != 2 || first.Labels[0] != "automerge" {
		t.Errorf("labels not flattened: %v", first.Labels)
	}

	if prs[1].Mergeable != "CONFLICTING" {
		t.Errorf("second PR mergeable = %q", prs[1].Mergeable)
	}
}

func TestCLIForgeChecks(t *testing.T) {
	t.Parallel()

	forge := &CLIForge{run: func(ctx context.Context, args ...string) ([]byte, error) {
		return []byte(`[{"name": "build", "bucket": "pass"}, {"name": "test", "bucket": "fail"}]`), nil
	}}

	checks, err := forge.Checks(t.Context(), 7)
	if err != nil {
		t.Fatalf("Checks() error = %v", err)
	}
	sum := SummarizeChecks(checks)
	if len(sum.Passed) != 1 || len(sum.Failed) != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
