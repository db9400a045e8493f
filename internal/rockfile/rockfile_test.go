package rockfile

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseFullDescriptor(t *testing.T) {
	t.Parallel()

	data := []byte(`
name: svc-a
version: "1.0"
summary: A tiny service
base: ubuntu@22.04
build-base: ubuntu@22.04
license: Apache-2.0
platforms:
  amd64:
  arm64:
    build-on: [amd64, arm64]
    build-for: [arm64]
`)

	rf, err := Parse("svc-a/rockcraft.yaml", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if rf.Name != "svc-a" || rf.Version != "1.0" {
		t.Fatalf("unexpected name/version: %q %q", rf.Name, rf.Version)
	}
	if rf.Base != "ubuntu@22.04" {
		t.Fatalf("unexpected base: %q", rf.Base)
	}
	if got := rf.Architectures(); !reflect.DeepEqual(got, []string{"amd64", "arm64"}) {
		t.Fatalf("Architectures = %v", got)
	}
	if rf.Platforms["arm64"] == nil || len(rf.Platforms["arm64"].BuildFor) != 1 {
		t.Fatalf("platform detail lost: %+v", rf.Platforms["arm64"])
	}
}

func TestParseNoPlatforms(t *testing.T) {
	t.Parallel()

	rf, err := Parse("x", []byte("name: svc\nversion: \"2\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if rf.Architectures() != nil {
		t.Fatalf("expected nil architectures, got %v", rf.Architectures())
	}
}

func TestParseMissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data string
	}{
		{"missing name", "version: \"1.0\"\n"},
		{"missing version", "name: svc-a\n"},
		{"not yaml", ":\t:::"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("rocks/bad/rockcraft.yaml", []byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidDescriptor) {
				t.Fatalf("error %v does not wrap ErrInvalidDescriptor", err)
			}
			if !strings.Contains(err.Error(), "rocks/bad/rockcraft.yaml") {
				t.Fatalf("error %q does not name the descriptor path", err)
			}
		})
	}
}
