// Package rockfile reads and validates rock build descriptors
// (rockcraft.yaml files).
package rockfile

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rockplan/rockplan/internal/fsops"
)

// Filename is the canonical descriptor file name looked up during discovery.
const Filename = "rockcraft.yaml"

// ErrInvalidDescriptor is the sentinel wrapped by all validation failures.
var ErrInvalidDescriptor = errors.New("invalid rock descriptor")

// ValidationError reports a descriptor that cannot drive a build.
// Path is the descriptor file as passed to Load.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidDescriptor, e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDescriptor }

// Platform is one entry of the descriptor's platforms map. Rockcraft allows
// a bare key (null value), so both fields are optional.
type Platform struct {
	BuildOn  []string `yaml:"build-on,omitempty"`
	BuildFor []string `yaml:"build-for,omitempty"`
}

// Rockfile is the typed shape of a rockcraft.yaml. Fields the planner does
// not act on are kept for scaffolding round-trips but otherwise ignored.
type Rockfile struct {
	Name      string               `yaml:"name"`
	Version   string               `yaml:"version"`
	Summary   string               `yaml:"summary,omitempty"`
	Base      string               `yaml:"base,omitempty"`
	BuildBase string               `yaml:"build-base,omitempty"`
	License   string               `yaml:"license,omitempty"`
	Platforms map[string]*Platform `yaml:"platforms,omitempty"`
}

// Architectures returns the declared platform keys in sorted order,
// or nil when the descriptor declares no platforms.
func (r *Rockfile) Architectures() []string {
	if len(r.Platforms) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Platforms))
	for arch := range r.Platforms {
		out = append(out, arch)
	}
	sort.Strings(out)
	return out
}

// Load reads and validates the descriptor at path.
// A missing name or version is a configuration error: downstream build steps
// cannot name the image without them.
func Load(path string, ops fsops.Ops) (*Rockfile, error) {
	data, err := ops.OS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates descriptor bytes. path is used in errors only.
func Parse(path string, data []byte) (*Rockfile, error) {
	var rf Rockfile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("yaml: %v", err)}
	}

	if rf.Name == "" {
		return nil, &ValidationError{Path: path, Reason: "missing required field: name"}
	}
	if rf.Version == "" {
		return nil, &ValidationError{Path: path, Reason: "missing required field: version"}
	}

	return &rf, nil
}
