package ghaout

import (
	"regexp"
	"strings"
	"testing"
)

func TestSetSingleLine(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := New(&sb).Set("rock-paths", `["svc-a"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if sb.String() != "rock-paths=[\"svc-a\"]\n" {
		t.Fatalf("unexpected output %q", sb.String())
	}
}

func TestSetMultiLineUsesHeredoc(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	value := "line one\nline two"
	if err := New(&sb).Set("targets", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out := sb.String()
	re := regexp.MustCompile(`(?s)^targets<<(ghadelimiter_[0-9a-f]{32})\nline one\nline two\n(ghadelimiter_[0-9a-f]{32})\n$`)
	m := re.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("output not in heredoc form:\n%s", out)
	}
	if m[1] != m[2] {
		t.Fatalf("delimiters differ: %s vs %s", m[1], m[2])
	}
}

func TestSetEmptyKeyRejected(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := New(&sb).Set("", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
}
