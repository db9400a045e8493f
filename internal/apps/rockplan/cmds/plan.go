package rockplan

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rockplan/rockplan/internal/cienv"
	"github.com/rockplan/rockplan/internal/dockerclient"
	"github.com/rockplan/rockplan/internal/ghaout"
	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/manifest"
	"github.com/rockplan/rockplan/internal/registry"
	"github.com/rockplan/rockplan/internal/ui"
)

type planFlags struct {
	registry          string
	owner             string
	multiarch         bool
	defaultArch       string
	runnerLabels      []string
	defaultRunner     string
	revisions         []string
	skipSpaceMaximize []string
	incremental       string
	changedFiles      string
	changed           []string
	concurrency       int
	format            string
	localDaemon       bool
}

var planOpts planFlags

func attachPlanCmdFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&planOpts.registry, "registry", "ghcr.io", "registry host for image references")
	f.StringVar(&planOpts.owner, "owner", "", "registry namespace (defaults to the repository owner in CI)")
	f.BoolVar(&planOpts.multiarch, "multiarch", false, "expand one target per declared platform")
	f.StringVar(&planOpts.defaultArch, "default-arch", manifest.DefaultArch, "architecture assumed when none is declared")
	f.StringArrayVar(&planOpts.runnerLabels, "runner-labels", nil, "arch=label[,label...] runner mapping (repeatable)")
	f.StringVar(&planOpts.defaultRunner, "default-runner", manifest.DefaultRunnerLabel, "runner label for unmapped architectures")
	f.StringArrayVar(&planOpts.revisions, "revision", nil, "arch=revision build-tool pin (repeatable)")
	f.StringArrayVar(&planOpts.skipSpaceMaximize, "skip-space-maximize", nil, "architectures whose runners skip the disk-reclaim step (repeatable)")
	f.StringVar(&planOpts.incremental, "incremental", "auto", "changed-set mode: auto, on or off")
	f.StringVar(&planOpts.changedFiles, "changed-files", "", "file with newline-separated changed paths (relative to PATH)")
	f.StringArrayVar(&planOpts.changed, "changed", nil, "changed path (repeatable, relative to PATH)")
	f.IntVar(&planOpts.concurrency, "concurrency", 0, "parallel registry queries (0 = default)")
	f.StringVar(&planOpts.format, "format", "json", "output format: json, table or github")
	f.BoolVar(&planOpts.localDaemon, "local", false, "check the local docker daemon instead of the remote registry")
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [PATH]",
		Short: "Compute the build matrix for a tree of rocks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  planCmdRunE,
	}
	attachPlanCmdFlags(cmd)
	return cmd
}

func planCmdRunE(cmd *cobra.Command, args []string) error {
	logs.Debugf("running plan...")

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	gh, err := cienv.Load()
	if err != nil {
		return fmt.Errorf("read CI environment: %w", err)
	}

	cfg, err := planConfig(root, planOpts, gh)
	if err != nil {
		return err
	}

	checker, err := buildChecker(planOpts.localDaemon)
	if err != nil {
		return err
	}

	signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignalsCtx()

	plan, err := manifest.NewBuilder(cfg, checker).Build(signalsCtx)
	if err != nil {
		return err
	}
	logs.Infof("planned %d target(s), %d changed", len(plan.Targets), len(plan.Changed))

	switch planOpts.format {
	case "json":
		return writeJSON(os.Stdout, plan)
	case "table":
		return writeTable(os.Stdout, plan)
	case "github":
		return writeGitHub(plan, gh)
	default:
		return fmt.Errorf("unknown format %q (want json, table or github)", planOpts.format)
	}
}

// planConfig folds flags and CI context into the builder's explicit config.
func planConfig(root string, opts planFlags, gh cienv.GitHub) (manifest.Config, error) {
	owner := opts.owner
	if owner == "" {
		owner = gh.Owner()
	}
	if owner == "" {
		return manifest.Config{}, fmt.Errorf("owner is required (set --owner or GITHUB_REPOSITORY_OWNER)")
	}

	runnerLabels, err := parseArchListMap(opts.runnerLabels)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("--runner-labels: %w", err)
	}
	revisions, err := parseArchMap(opts.revisions)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("--revision: %w", err)
	}

	skip := make(map[string]bool, len(opts.skipSpaceMaximize))
	for _, arch := range opts.skipSpaceMaximize {
		skip[arch] = true
	}

	incremental, err := resolveIncremental(opts.incremental, gh)
	if err != nil {
		return manifest.Config{}, err
	}

	changed := append([]string{}, opts.changed...)
	if opts.changedFiles != "" {
		fromFile, err := readChangedFiles(opts.changedFiles)
		if err != nil {
			return manifest.Config{}, err
		}
		changed = append(changed, fromFile...)
	}

	return manifest.Config{
		Root:                root,
		Registry:            opts.registry,
		Owner:               owner,
		Multiarch:           opts.multiarch,
		DefaultArch:         opts.defaultArch,
		RunnerLabels:        runnerLabels,
		DefaultRunnerLabels: []string{opts.defaultRunner},
		RevisionPins:        revisions,
		SkipSpaceMaximize:   skip,
		Incremental:         incremental,
		ChangedFiles:        changed,
		Concurrency:         opts.concurrency,
	}, nil
}

func resolveIncremental(mode string, gh cienv.GitHub) (bool, error) {
	switch mode {
	case "auto":
		return gh.IsPullRequest(), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("unknown --incremental mode %q (want auto, on or off)", mode)
	}
}

func buildChecker(localDaemon bool) (registry.Checker, error) {
	if localDaemon {
		client, err := dockerclient.NewDockerClient()
		if err != nil {
			return nil, fmt.Errorf("connect docker daemon: %w", err)
		}
		return client, nil
	}
	return registry.NewRemote(), nil
}

// parseArchMap parses repeated "arch=value" flags.
func parseArchMap(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		arch, value, ok := strings.Cut(entry, "=")
		if !ok || arch == "" || value == "" {
			return nil, fmt.Errorf("malformed entry %q (want arch=value)", entry)
		}
		out[arch] = value
	}
	return out, nil
}

// parseArchListMap parses repeated "arch=a,b,c" flags.
func parseArchListMap(entries []string) (map[string][]string, error) {
	raw, err := parseArchMap(entries)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	out := make(map[string][]string, len(raw))
	for arch, csv := range raw {
		var labels []string
		for _, label := range strings.Split(csv, ",") {
			if label = strings.TrimSpace(label); label != "" {
				labels = append(labels, label)
			}
		}
		if len(labels) == 0 {
			return nil, fmt.Errorf("no labels for arch %q", arch)
		}
		out[arch] = labels
	}
	return out, nil
}

func readChangedFiles(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read changed-files list: %w", err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

func writeJSON(w *os.File, plan *manifest.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

func writeTable(w *os.File, plan *manifest.Plan) error {
	table := ui.NewTable(
		ui.Column{Header: "Rock"},
		ui.Column{Header: "Version"},
		ui.Column{Header: "Arch"},
		ui.Column{Header: "Image", MaxWidth: 72},
		ui.Column{Header: "Exists"},
		ui.Column{Header: "Changed"},
	)

	changed := make(map[string]struct{}, len(plan.Changed))
	for _, t := range plan.Changed {
		changed[t.Image.String()] = struct{}{}
	}

	for _, t := range plan.Targets {
		_, isChanged := changed[t.Image.String()]
		table.AddRow(
			t.Unit.Name,
			t.Unit.Version,
			t.Arch,
			t.Image.String(),
			fmt.Sprintf("%t", t.Exists),
			fmt.Sprintf("%t", isChanged),
		)
	}
	return table.Render(w)
}

// writeGitHub emits the four job-matrix outputs consumed by the workflows.
func writeGitHub(plan *manifest.Plan, gh cienv.GitHub) error {
	if gh.OutputFile == "" {
		return fmt.Errorf("github format needs GITHUB_OUTPUT to be set")
	}

	f, err := ghaout.OpenFile(gh.OutputFile)
	if err != nil {
		return fmt.Errorf("open GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()

	out := ghaout.New(f)
	outputs := []struct {
		key   string
		value any
	}{
		{"rock-paths", plan.UnitDirs},
		{"oci-images", plan.Images},
		{"build-targets", plan.Targets},
		{"changed-targets", plan.Changed},
	}
	for _, o := range outputs {
		raw, err := json.Marshal(o.value)
		if err != nil {
			return err
		}
		if err := out.Set(o.key, string(raw)); err != nil {
			return err
		}
	}
	return nil
}
