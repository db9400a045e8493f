package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/rockplan/rockplan/internal/discover"
	"github.com/rockplan/rockplan/internal/fsops"
	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/registry"
	"github.com/rockplan/rockplan/internal/rockfile"
	"github.com/rockplan/rockplan/internal/treehash"
)

// Builder computes a Plan from a Config. It mutates nothing; the registry
// existence query is its only external interaction.
type Builder struct {
	cfg     Config
	ops     fsops.Ops
	checker registry.Checker
}

func NewBuilder(cfg Config, checker registry.Checker) *Builder {
	return NewBuilderWithOps(cfg, checker, fsops.DefaultOps())
}

// NewBuilderWithOps allows injecting filesystem dependencies for testing.
func NewBuilderWithOps(cfg Config, checker registry.Checker, ops fsops.Ops) *Builder {
	return &Builder{cfg: cfg.withDefaults(), ops: ops, checker: checker}
}

// Build runs discovery, hashing, target derivation, existence queries and
// changed-set computation. Descriptor validation failures abort the whole
// plan; existence query failures only widen the changed set.
func (b *Builder) Build(ctx context.Context) (*Plan, error) {
	if b.cfg.Registry == "" || b.cfg.Owner == "" {
		return nil, errors.New("manifest: registry and owner are required")
	}

	absRoot, err := b.ops.Path.Abs(b.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve root: %w", err)
	}

	descriptors, err := discover.Descriptors(absRoot, rockfile.Filename, b.ops)
	if err != nil {
		return nil, err
	}
	logs.Debugf("manifest: found %d descriptor(s) under %s", len(descriptors), absRoot)

	plan := &Plan{
		UnitDirs: []string{},
		Images:   []string{},
		Targets:  []Target{},
		Changed:  []Target{},
	}

	for _, descriptorPath := range descriptors {
		unit, targets, unitErr := b.expand(descriptorPath, absRoot)
		if unitErr != nil {
			return nil, unitErr
		}
		plan.UnitDirs = append(plan.UnitDirs, unit.Dir)
		plan.Targets = append(plan.Targets, targets...)
	}

	for _, t := range plan.Targets {
		plan.Images = append(plan.Images, t.Image.String())
	}

	b.queryExistence(ctx, plan.Targets)
	plan.Changed = b.changedSubset(plan.Targets)

	return plan, nil
}

// expand turns one descriptor into its unit and per-architecture targets.
func (b *Builder) expand(descriptorPath, absRoot string) (Unit, []Target, error) {
	rf, err := rockfile.Load(descriptorPath, b.ops)
	if err != nil {
		return Unit{}, nil, err
	}

	dir := b.ops.Path.Dir(descriptorPath)
	dig, err := treehash.Tree(dir, b.ops)
	if err != nil {
		return Unit{}, nil, fmt.Errorf("manifest: hash %s: %w", dir, err)
	}

	relDir, err := b.ops.Path.Rel(absRoot, dir)
	if err != nil {
		return Unit{}, nil, fmt.Errorf("manifest: relativize %s: %w", dir, err)
	}

	unit := Unit{
		Name:    rf.Name,
		Version: rf.Version,
		Dir:     b.ops.Path.ToSlash(relDir),
		Digest:  dig,
	}

	targets := make([]Target, 0, 2)
	for _, arch := range b.architectures(rf) {
		tag := dig.Encoded()
		if b.cfg.Multiarch {
			tag += "-" + arch
		}

		targets = append(targets, Target{
			Unit: unit,
			Arch: arch,
			Image: ImageRef{
				Registry: b.cfg.Registry,
				Owner:    strings.ToLower(b.cfg.Owner),
				Name:     rf.Name,
				Tag:      tag,
			},
			RevisionPin:       b.cfg.RevisionPins[arch],
			RunnerLabels:      b.runnerLabels(arch),
			SkipSpaceMaximize: b.cfg.SkipSpaceMaximize[arch],
		})
	}
	return unit, targets, nil
}

// architectures returns the declared platform set, or the single default
// when multiarch is off or the descriptor declares none.
func (b *Builder) architectures(rf *rockfile.Rockfile) []string {
	if !b.cfg.Multiarch {
		return []string{b.cfg.DefaultArch}
	}
	if arches := rf.Architectures(); len(arches) > 0 {
		return arches
	}
	return []string{b.cfg.DefaultArch}
}

func (b *Builder) runnerLabels(arch string) []string {
	if labels, ok := b.cfg.RunnerLabels[arch]; ok && len(labels) > 0 {
		return labels
	}
	return b.cfg.DefaultRunnerLabels
}

// queryExistence fills Target.Exists with bounded concurrency. Targets are
// independent; each goroutine writes only its own slice element.
func (b *Builder) queryExistence(ctx context.Context, targets []Target) {
	if b.checker == nil {
		logs.Warnf("manifest: no existence checker configured; treating all images as absent")
		return
	}

	sem := make(chan struct{}, b.cfg.Concurrency)
	var wg sync.WaitGroup

	for i := range targets {
		wg.Add(1)
		go func(t *Target) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			t.Exists = b.checker.Exists(ctx, t.Image.String())
		}(&targets[i])
	}

	wg.Wait()
}

// changedSubset applies the incremental rules. A descriptor change always
// wins, even when the registry already holds the computed reference.
func (b *Builder) changedSubset(targets []Target) []Target {
	if !b.cfg.Incremental {
		return append([]Target{}, targets...)
	}

	changedPaths := make(map[string]struct{}, len(b.cfg.ChangedFiles))
	for _, p := range b.cfg.ChangedFiles {
		changedPaths[path.Clean(strings.TrimPrefix(p, "./"))] = struct{}{}
	}

	changed := []Target{}
	for _, t := range targets {
		descriptor := path.Join(t.Unit.Dir, rockfile.Filename)
		_, descriptorChanged := changedPaths[descriptor]
		if descriptorChanged || !t.Exists {
			changed = append(changed, t)
		}
	}
	return changed
}
