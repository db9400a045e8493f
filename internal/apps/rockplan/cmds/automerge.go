package rockplan

import (
	"github.com/spf13/cobra"

	"github.com/caarlos0/env/v11"

	"github.com/rockplan/rockplan/internal/automerge"
	"github.com/rockplan/rockplan/internal/logs"
)

// automergeEnv seeds flag defaults, so the command drops into existing
// workflow definitions that configure the policy through the environment.
type automergeEnv struct {
	ApproveMsg       string   `env:"APPROVE_MSG"`
	BotAuthors       []string `env:"BOT_AUTHORS"`
	DryRun           bool     `env:"DRY_RUN" envDefault:"true"`
	Labels           []string `env:"LABELS" envDefault:"automerge"`
	MinPassingChecks int      `env:"MIN_PASSING_CHECKS" envDefault:"1"`
}

var automergeOpts automerge.Config

func newAutomergeCmd() *cobra.Command {
	defaults := automergeEnv{}
	if err := env.Parse(&defaults); err != nil {
		logs.Warnf("automerge: bad environment defaults: %v", err)
		defaults = automergeEnv{DryRun: true, Labels: []string{automerge.DefaultLabel}, MinPassingChecks: 1}
	}

	cmd := &cobra.Command{
		Use:   "automerge",
		Short: "Approve and merge pull requests whose checks passed",
		Long: `automerge walks the repository's open pull requests and merges the
ones that are labelled (or come from a trusted bot), are mergeable, and
have every check passing. The first ready PR per base branch is merged;
later ones are rebased onto the moved base instead.

Runs in dry-run mode by default; pass --dry-run=false to act.`,
		Args: cobra.NoArgs,
		RunE: automergeCmdRunE,
	}

	f := cmd.Flags()
	f.StringArrayVar(&automergeOpts.Labels, "label", defaults.Labels, "label required on human-authored PRs (repeatable)")
	f.StringArrayVar(&automergeOpts.BotAuthors, "bot-author", defaults.BotAuthors, "bot login trusted without labels (repeatable)")
	f.IntVar(&automergeOpts.MinPassingChecks, "min-passing-checks", defaults.MinPassingChecks, "reject PRs with fewer passing checks")
	f.StringVar(&automergeOpts.ApproveMessage, "approve-msg", defaults.ApproveMsg, "review comment template, receives the PR number")
	f.BoolVar(&automergeOpts.DryRun, "dry-run", defaults.DryRun, "log actions instead of performing them")

	return cmd
}

func automergeCmdRunE(cmd *cobra.Command, args []string) error {
	engine := automerge.NewEngine(automergeOpts, automerge.NewCLIForge())

	outcome, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}

	verb := "merged"
	if automergeOpts.DryRun {
		verb = "would merge"
	}
	logs.Infof("automerge: %s %d PR(s), rebased %d, skipped %d",
		verb, len(outcome.Merged), len(outcome.Rebased), len(outcome.Skipped))
	return nil
}
