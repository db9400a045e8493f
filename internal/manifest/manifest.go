// Package manifest derives the build matrix for a tree of rocks: which
// images the tree describes, what each is called in the registry, and which
// of them actually need building.
package manifest

import (
	"github.com/opencontainers/go-digest"
)

// DefaultArch is the architecture assumed when a descriptor declares no
// platforms or multiarch mode is off.
const DefaultArch = "amd64"

// DefaultRunnerLabel schedules builds that have no explicit runner mapping.
const DefaultRunnerLabel = "ubuntu-22.04"

const defaultConcurrency = 4

// Unit is one discovered rock. Dir is slash-separated and relative to the
// scanned root; it is the unit's identity.
type Unit struct {
	Name    string        `json:"name"`
	Version string        `json:"version"`
	Dir     string        `json:"dir"`
	Digest  digest.Digest `json:"digest"`
}

// ImageRef names an image in a registry. Tag is the unit's content digest
// hex, suffixed with the architecture in multiarch mode.
type ImageRef struct {
	Registry string `json:"registry"`
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	Tag      string `json:"tag"`
}

func (r ImageRef) String() string {
	return r.Registry + "/" + r.Owner + "/" + r.Name + ":" + r.Tag
}

// Target is one (unit, architecture) build.
type Target struct {
	Unit              Unit     `json:"unit"`
	Arch              string   `json:"arch"`
	Image             ImageRef `json:"image"`
	RevisionPin       string   `json:"revision_pin,omitempty"`
	RunnerLabels      []string `json:"runner_labels"`
	SkipSpaceMaximize bool     `json:"skip_space_maximize,omitempty"`

	// Exists records the registry existence query result.
	Exists bool `json:"exists"`
}

// Plan is the builder's full output, shaped for job-matrix consumption.
type Plan struct {
	UnitDirs []string `json:"unit_dirs"`
	Images   []string `json:"images"`
	Targets  []Target `json:"targets"`
	Changed  []Target `json:"changed"`
}

// Config carries every input of a plan run explicitly; the builder reads no
// ambient state.
type Config struct {
	// Root is the directory scanned for descriptors.
	Root string

	// Registry and Owner form the image reference prefix, e.g. ghcr.io/acme.
	Registry string
	Owner    string

	// Multiarch expands a unit into one target per declared platform and
	// suffixes tags with the architecture.
	Multiarch bool

	// DefaultArch substitutes for an empty platform set. Empty means amd64.
	DefaultArch string

	// RunnerLabels maps architecture to runner label lists.
	// DefaultRunnerLabels covers unmapped architectures.
	RunnerLabels        map[string][]string
	DefaultRunnerLabels []string

	// RevisionPins maps architecture to a pinned build-tool revision.
	// Unmapped architectures get an empty pin.
	RevisionPins map[string]string

	// SkipSpaceMaximize marks architectures whose runners must not run the
	// disk-reclaim step before building.
	SkipSpaceMaximize map[string]bool

	// Incremental restricts the changed set to units whose descriptor is in
	// ChangedFiles or whose image is absent. ChangedFiles entries are
	// slash-separated paths relative to Root.
	Incremental  bool
	ChangedFiles []string

	// Concurrency bounds parallel registry queries. Zero means 4.
	Concurrency int
}

func (c Config) withDefaults() Config {
	if c.DefaultArch == "" {
		c.DefaultArch = DefaultArch
	}
	if len(c.DefaultRunnerLabels) == 0 {
		c.DefaultRunnerLabels = []string{DefaultRunnerLabel}
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	return c
}
