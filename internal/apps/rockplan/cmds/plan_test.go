package rockplan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rockplan/rockplan/internal/cienv"
)

func TestParseArchMap(t *testing.T) {
	t.Parallel()

	got, err := parseArchMap([]string{"amd64=1903", "arm64=1902"})
	if err != nil {
		t.Fatalf("parseArchMap() error = %v", err)
	}
	want := map[string]string{"amd64": "1903", "arm64": "1902"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseArchMap() = %v, want %v", got, want)
	}
}

func TestParseArchMapEmpty(t *testing.T) {
	t.Parallel()

	got, err := parseArchMap(nil)
	if err != nil {
		t.Fatalf("parseArchMap(nil) error = %v", err)
	}
	if got != nil {
		t.Fatalf("parseArchMap(nil) = %v, want nil", got)
	}
}

func TestParseArchMapMalformed(t *testing.T) {
	t.Parallel()

	for _, entry := range []string{"amd64", "=1903", "amd64="} {
		if _, err := parseArchMap([]string{entry}); err == nil {
			t.Errorf("parseArchMap(%q) expected error", entry)
		}
	}
}

func TestParseArchListMap(t *testing.T) {
	t.Parallel()

	got, err := parseArchListMap([]string{"arm64=self-hosted, linux ,ARM64", "amd64=ubuntu-24.04"})
	if err != nil {
		t.Fatalf("parseArchListMap() error = %v", err)
	}
	want := map[string][]string{
		"arm64": {"self-hosted", "linux", "ARM64"},
		"amd64": {"ubuntu-24.04"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseArchListMap() = %v, want %v", got, want)
	}
}

func TestParseArchListMapNoLabels(t *testing.T) {
	t.Parallel()

	if _, err := parseArchListMap([]string{"arm64=, ,"}); err == nil {
		t.Fatal("expected error for entry with only empty labels")
	}
}

func TestResolveIncremental(t *testing.T) {
	t.Parallel()

	pr := cienv.GitHub{EventName: "pull_request"}
	push := cienv.GitHub{EventName: "push"}

	cases := []struct {
		mode string
		gh   cienv.GitHub
		want bool
	}{
		{"auto", pr, true},
		{"auto", push, false},
		{"on", push, true},
		{"off", pr, false},
	}
	for _, tc := range cases {
		got, err := resolveIncremental(tc.mode, tc.gh)
		if err != nil {
			t.Fatalf("resolveIncremental(%q) error = %v", tc.mode, err)
		}
		if got != tc.want {
			t.Errorf("resolveIncremental(%q, %s) = %t, want %t", tc.mode, tc.gh.EventName, got, tc.want)
		}
	}

	if _, err := resolveIncremental("sometimes", push); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestPlanConfigOwnerFallback(t *testing.T) {
	t.Parallel()

	gh := cienv.GitHub{Repository: "acme/rocks"}
	cfg, err := planConfig(".", planFlags{registry: "ghcr.io", incremental: "auto", defaultRunner: "ubuntu-22.04"}, gh)
	if err != nil {
		t.Fatalf("planConfig() error = %v", err)
	}
	if cfg.Owner != "acme" {
		t.Fatalf("Owner = %q, want %q", cfg.Owner, "acme")
	}
}

func TestPlanConfigOwnerRequired(t *testing.T) {
	t.Parallel()

	_, err := planConfig(".", planFlags{registry: "ghcr.io", incremental: "auto"}, cienv.GitHub{})
	if err == nil {
		t.Fatal("expected error when no owner can be resolved")
	}
}

func TestPlanConfigChangedFiles(t *testing.T) {
	t.Parallel()

	listFile := filepath.Join(t.TempDir(), "changed.txt")
	if err := os.WriteFile(listFile, []byte("svc-a/rockcraft.yaml\n\n  svc-b/main.go  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := planFlags{
		registry:      "ghcr.io",
		owner:         "acme",
		incremental:   "on",
		defaultRunner: "ubuntu-22.04",
		changed:       []string{"svc-c/rockcraft.yaml"},
		changedFiles:  listFile,
	}
	cfg, err := planConfig(".", opts, cienv.GitHub{})
	if err != nil {
		t.Fatalf("planConfig() error = %v", err)
	}

	want := []string{"svc-c/rockcraft.yaml", "svc-a/rockcraft.yaml", "svc-b/main.go"}
	if !reflect.DeepEqual(cfg.ChangedFiles, want) {
		t.Fatalf("ChangedFiles = %v, want %v", cfg.ChangedFiles, want)
	}
	if !cfg.Incremental {
		t.Fatal("Incremental should be on")
	}
}
