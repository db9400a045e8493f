package automerge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

//go:generate mockgen -source=forge.go -destination=mocks/forge.go -package=mocks

// Forge is the pull-request side of the code host. Implementations must
// tolerate being called with PR numbers they just listed; anything else is
// an error, not a skip.
type Forge interface {
	OpenPullRequests(ctx context.Context) ([]PullRequest, error)
	Checks(ctx context.Context, number int) ([]Check, error)
	Approve(ctx context.Context, number int, message string) error
	Merge(ctx context.Context, number int) error
	UpdateBranch(ctx context.Context, number int) error
}

// CLIForge talks to GitHub through the gh CLI, which already holds the
// runner's authentication. Merges are admin squash merges, matching the
// branch protection setup these repositories use.
type CLIForge struct {
	run func(ctx context.Context, args ...string) ([]byte, error)
}

func NewCLIForge() *CLIForge {
	return &CLIForge{run: runGH}
}

func runGH(ctx context.Context, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "gh", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("gh %s: %s", args[0], string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("gh %s: %w", args[0], err)
	}
	return out, nil
}

// prListItem is the shape of one `gh pr list --json` element. Labels come
// back as objects; the planner only wants the names.
type prListItem struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

type prView struct {
	Mergeable string `json:"mergeable"`
	BaseRef   string `json:"baseRefName"`
	Author    Author `json:"author"`
}

func (f *CLIForge) OpenPullRequests(ctx context.Context) ([]PullRequest, error) {
	out, err := f.run(ctx, "pr", "list", "--state", "open", "--json", "number,labels,title")
	if err != nil {
		return nil, err
	}

	var items []prListItem
	if err := json.Unmarshal(out, &items); err != nil {
		return nil, fmt.Errorf("decode pr list: %w", err)
	}

	prs := make([]PullRequest, 0, len(items))
	for _, item := range items {
		view, err := f.view(ctx, item.Number)
		if err != nil {
			return nil, err
		}

		labels := make([]string, 0, len(item.Labels))
		for _, l := range item.Labels {
			labels = append(labels, l.Name)
		}

		prs = append(prs, PullRequest{
			Number:    item.Number,
			Title:     item.Title,
			Author:    view.Author,
			Labels:    labels,
			Mergeable: view.Mergeable,
			BaseRef:   view.BaseRef,
		})
	}
	return prs, nil
}

func (f *CLIForge) view(ctx context.Context, number int) (prView, error) {
	out, err := f.run(ctx, "pr", "view", strconv.Itoa(number), "--json", "mergeable,baseRefName,author")
	if err != nil {
		return prView{}, err
	}
	var view prView
	if err := json.Unmarshal(out, &view); err != nil {
		return prView{}, fmt.Errorf("decode pr view #%d: %w", number, err)
	}
	return view, nil
}

func (f *CLIForge) Checks(ctx context.Context, number int) ([]Check, error) {
	out, err := f.run(ctx, "pr", "checks", strconv.Itoa(number), "--json", "bucket,name")
	if err != nil {
		return nil, err
	}
	var checks []Check
	if err := json.Unmarshal(out, &checks); err != nil {
		return nil, fmt.Errorf("decode pr checks #%d: %w", number, err)
	}
	return checks, nil
}

func (f *CLIForge) Approve(ctx context.Context, number int, message string) error {
	_, err := f.run(ctx, "pr", "review", strconv.Itoa(number), "--comment", "-b", message)
	return err
}

func (f *CLIForge) Merge(ctx context.Context, number int) error {
	_, err := f.run(ctx, "pr", "merge", strconv.Itoa(number), "--admin", "--squash")
	return err
}

func (f *CLIForge) UpdateBranch(ctx context.Context, number int) error {
	_, err := f.run(ctx, "pr", "update-branch", strconv.Itoa(number), "--rebase")
	return err
}
